package reactive

import "testing"

// TestComputedLazy checks the getter does not run until first read.
func TestComputedLazy(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	getterRuns := 0
	c := ctx.Computed(func() any {
		getterRuns++
		return s.Get("n").(int) + 1
	})
	if getterRuns != 0 {
		t.Fatalf("getterRuns = %d before read, want 0", getterRuns)
	}
	if got := c.Value(); got != 2 {
		t.Fatalf("Value() = %v, want 2", got)
	}
	if getterRuns != 1 {
		t.Fatalf("getterRuns = %d, want 1", getterRuns)
	}
}

// TestComputedMemoization checks the getter runs at most once between
// dependency changes.
func TestComputedMemoization(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	getterRuns := 0
	c := ctx.Computed(func() any {
		getterRuns++
		return s.Get("n").(int) * 10
	})

	c.Value()
	c.Value()
	c.Value()
	if getterRuns != 1 {
		t.Fatalf("getterRuns = %d after repeated reads, want 1", getterRuns)
	}

	s.Set("n", 2)
	if getterRuns != 1 {
		t.Fatalf("getterRuns = %d right after invalidation, want 1 (lazy)", getterRuns)
	}
	if got := c.Value(); got != 20 {
		t.Fatalf("Value() = %v, want 20", got)
	}
	if getterRuns != 2 {
		t.Fatalf("getterRuns = %d, want 2", getterRuns)
	}
}

// TestComputedChain is the end-to-end chain scenario: a two-computed
// chain under one effect re-runs the effect exactly once per source
// write.
func TestComputedChain(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})

	c1 := ctx.Computed(func() any { return s.Get("n").(int) + 1 })
	c2 := ctx.Computed(func() any { return c1.Value().(int) * 2 })

	var sink any
	effectRuns := 0
	ctx.NewEffect(func() {
		effectRuns++
		sink = c2.Value()
	}, nil)
	if effectRuns != 1 || sink != 2 {
		t.Fatalf("after init: runs = %d, sink = %v", effectRuns, sink)
	}

	s.Set("n", 5)
	if sink != 12 {
		t.Errorf("sink = %v, want 12", sink)
	}
	if effectRuns != 2 {
		t.Errorf("effectRuns = %d, want 2 (exactly once beyond init)", effectRuns)
	}
}

// TestComputedChildRunTracking checks a parent effect picks up the
// computed's dependencies even when the computed was already clean.
func TestComputedChildRunTracking(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	c := ctx.Computed(func() any { return s.Get("n").(int) * 2 })
	c.Value() // warm: computed is clean before the effect reads it

	runs := 0
	ctx.NewEffect(func() {
		runs++
		c.Value()
	}, nil)
	if runs != 1 {
		t.Fatal("effect did not run")
	}
	s.Set("n", 3)
	if runs != 2 {
		t.Errorf("runs = %d, want 2 (transitive dep missed)", runs)
	}
}

// TestWritableComputed checks the setter path.
func TestWritableComputed(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	c := ctx.WritableComputed(
		func() any { return s.Get("n").(int) + 1 },
		func(v any) { s.Set("n", v.(int)-1) },
	)
	c.SetValue(10)
	if got := s.Get("n"); got != 9 {
		t.Errorf("n = %v, want 9", got)
	}
	if got := c.Value(); got != 10 {
		t.Errorf("Value() = %v, want 10", got)
	}
}

// TestComputedReadonlyWarns checks writing a getter-only computed is a
// no-op.
func TestComputedReadonlyWarns(t *testing.T) {
	ctx := NewContext()
	c := ctx.Computed(func() any { return 1 })
	c.SetValue(2)
	if got := c.Value(); got != 1 {
		t.Errorf("Value() = %v, want 1", got)
	}
}

// TestComputedStop checks a stopped computed no longer invalidates.
func TestComputedStop(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	c := ctx.Computed(func() any { return s.Get("n").(int) })
	if got := c.Value(); got != 1 {
		t.Fatalf("Value() = %v", got)
	}

	c.Stop()
	s.Set("n", 2)
	if c.dirty {
		t.Error("stopped computed was invalidated")
	}
}

// TestComputedIsRef checks computed values satisfy the Ref interface.
func TestComputedIsRef(t *testing.T) {
	ctx := NewContext()
	c := ctx.Computed(func() any { return 1 })
	if !IsRef(c) {
		t.Error("IsRef(computed) = false, want true")
	}
	if !c.Effect().Computed() {
		t.Error("computed runner not marked computed")
	}
}
