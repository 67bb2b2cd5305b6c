package reactive

import "testing"

// TestRefBasic covers the single-cell box.
func TestRefBasic(t *testing.T) {
	ctx := NewContext()
	r := ctx.NewRef(1)

	if !IsRef(r) {
		t.Fatal("IsRef = false")
	}
	if got := r.Value(); got != 1 {
		t.Fatalf("Value = %v, want 1", got)
	}

	ran := 0
	ctx.NewEffect(func() { ran++; r.Value() }, nil)
	r.SetValue(2)
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
	r.SetValue(2) // unchanged
	if ran != 2 {
		t.Errorf("ran = %d after unchanged write, want 2", ran)
	}
}

// TestRefOfRef checks wrapping a ref returns it unchanged.
func TestRefOfRef(t *testing.T) {
	ctx := NewContext()
	r := ctx.NewRef(1)
	if ctx.NewRef(r) != r {
		t.Error("NewRef(ref) produced a new ref")
	}
}

// TestRefWrapsContainers checks container values become reactive.
func TestRefWrapsContainers(t *testing.T) {
	ctx := NewContext()
	r := ctx.NewRef(map[string]any{"x": 1})
	obj, ok := r.Value().(*Object)
	if !ok {
		t.Fatalf("Value = %T, want *Object", r.Value())
	}
	ran := 0
	ctx.NewEffect(func() { ran++; obj.Get("x") }, nil)
	obj.Set("x", 2)
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

// TestToRefs checks per-key refs proxy the object.
func TestToRefs(t *testing.T) {
	ctx := NewContext()
	o := newTestObject(ctx, map[string]any{"a": 1, "b": 2})
	refs := ToRefs(o)
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2", len(refs))
	}
	if !IsRef(refs["a"]) {
		t.Error("IsRef(objectRef) = false")
	}
	if got := refs["a"].Value(); got != 1 {
		t.Errorf("a = %v, want 1", got)
	}

	ran := 0
	ctx.NewEffect(func() { ran++; refs["a"].Value() }, nil)
	refs["a"].SetValue(10)
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
	if got := o.Get("a"); got != 10 {
		t.Errorf("o.a = %v, want 10", got)
	}
	// Writes through the object reach the ref's subscribers too.
	o.Set("a", 20)
	if ran != 3 {
		t.Errorf("ran = %d, want 3", ran)
	}
}
