package reactive

import "testing"

func newTestObject(ctx *Context, m map[string]any) *Object {
	return ctx.MakeReactive(m).(*Object)
}

// TestEffectBasic covers the create/track/trigger/stop lifecycle.
func TestEffectBasic(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})

	ran := 0
	e := ctx.NewEffect(func() {
		ran++
		s.Get("n")
	}, nil)
	if ran != 1 {
		t.Fatalf("ran = %d after create, want 1", ran)
	}

	s.Set("n", 1)
	if ran != 2 {
		t.Fatalf("ran = %d after write, want 2", ran)
	}

	e.Stop()
	s.Set("n", 2)
	if ran != 2 {
		t.Fatalf("ran = %d after stop+write, want 2", ran)
	}
	if e.Active() {
		t.Error("Active() = true after Stop")
	}

	// Stop is idempotent, and a stopped effect still runs its raw
	// function when invoked directly.
	e.Stop()
	e.Run()
	if ran != 3 {
		t.Errorf("ran = %d after manual run of stopped effect, want 3", ran)
	}
	s.Set("n", 3)
	if ran != 3 {
		t.Error("stopped effect re-tracked on manual run")
	}
}

// TestEffectLazy checks the lazy option skips the initial run.
func TestEffectLazy(t *testing.T) {
	ctx := NewContext()
	ran := 0
	e := ctx.NewEffect(func() { ran++ }, &EffectOptions{Lazy: true})
	if ran != 0 {
		t.Fatalf("ran = %d, want 0 before first Run", ran)
	}
	e.Run()
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
}

// TestEffectUnchangedValueDoesNotTrigger checks SET with an equal value
// is a no-op.
func TestEffectUnchangedValueDoesNotTrigger(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 7})
	ran := 0
	ctx.NewEffect(func() { ran++; s.Get("n") }, nil)
	s.Set("n", 7)
	if ran != 1 {
		t.Errorf("ran = %d after unchanged write, want 1", ran)
	}
}

// TestEffectCleanupOnRerun checks stale dependencies are dropped when
// the read set changes between runs.
func TestEffectCleanupOnRerun(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"which": "a", "a": 1, "b": 2})

	ran := 0
	ctx.NewEffect(func() {
		ran++
		if s.Get("which") == "a" {
			s.Get("a")
		} else {
			s.Get("b")
		}
	}, nil)
	if ran != 1 {
		t.Fatal("effect did not run")
	}

	s.Set("which", "b") // switch branches
	if ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	s.Set("a", 10) // no longer read
	if ran != 2 {
		t.Errorf("ran = %d after write to stale dep, want 2", ran)
	}
	s.Set("b", 20)
	if ran != 3 {
		t.Errorf("ran = %d after write to live dep, want 3", ran)
	}
}

// TestEffectSelfTrigger checks an effect writing its own dependency
// does not recurse.
func TestEffectSelfTrigger(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})
	ran := 0
	ctx.NewEffect(func() {
		ran++
		s.Set("n", s.Get("n").(int)+1)
	}, nil)
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	s.Set("n", 100)
	if ran != 2 {
		t.Fatalf("ran = %d, want 2 (no recursion)", ran)
	}
}

// TestNestedEffects checks inner and outer effects track
// independently.
func TestNestedEffects(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"a": 1, "b": 2})

	outerRuns, innerRuns := 0, 0
	ctx.NewEffect(func() {
		outerRuns++
		s.Get("a")
		ctx.NewEffect(func() {
			innerRuns++
			s.Get("b")
		}, nil)
	}, nil)
	if outerRuns != 1 || innerRuns != 1 {
		t.Fatalf("runs = %d/%d, want 1/1", outerRuns, innerRuns)
	}

	s.Set("b", 3) // only the inner effect depends on b
	if outerRuns != 1 {
		t.Errorf("outerRuns = %d after inner dep write, want 1", outerRuns)
	}
	if innerRuns != 2 {
		t.Errorf("innerRuns = %d, want 2", innerRuns)
	}

	s.Set("a", 4) // outer reruns, spawning a fresh inner
	if outerRuns != 2 {
		t.Errorf("outerRuns = %d, want 2", outerRuns)
	}
}

// TestEffectScheduler checks trigger dispatches through the scheduler
// instead of re-running directly.
func TestEffectScheduler(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})

	ran := 0
	var queued []*Effect
	e := ctx.NewEffect(func() {
		ran++
		s.Get("n")
	}, &EffectOptions{
		Scheduler: func(e *Effect) { queued = append(queued, e) },
	})
	if ran != 1 {
		t.Fatal("initial run missing")
	}

	s.Set("n", 1)
	if ran != 1 {
		t.Errorf("ran = %d, want 1 (scheduler defers)", ran)
	}
	if len(queued) != 1 || queued[0] != e {
		t.Fatalf("queued = %v", queued)
	}
	queued[0].Run()
	if ran != 2 {
		t.Errorf("ran = %d after scheduled run, want 2", ran)
	}
}

// TestPauseTracking checks the process-wide tracking gate.
func TestPauseTracking(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})

	ran := 0
	ctx.NewEffect(func() {
		ran++
		ctx.PauseTracking()
		s.Get("n")
		ctx.ResumeTracking()
	}, nil)
	s.Set("n", 1)
	if ran != 1 {
		t.Errorf("ran = %d, want 1 (read was untracked)", ran)
	}
}

// TestDepEffectCoherence checks the two-way index invariant after
// track, retrack and stop.
func TestDepEffectCoherence(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"a": 1, "b": 2})

	e := ctx.NewEffect(func() {
		s.Get("a")
		s.Get("b")
	}, nil)

	assertCoherent := func() {
		t.Helper()
		for _, d := range e.deps {
			if !d.has(e) {
				t.Error("dep in effect.deps does not contain effect")
			}
		}
		for _, m := range ctx.targetMap {
			for _, d := range m.deps {
				if d.has(e) {
					found := false
					for _, ed := range e.deps {
						if ed == d {
							found = true
						}
					}
					if !found {
						t.Error("dep contains effect but is missing from effect.deps")
					}
				}
			}
		}
	}

	assertCoherent()
	if len(e.deps) != 2 {
		t.Fatalf("deps = %d, want 2", len(e.deps))
	}

	s.Set("a", 10) // rerun retracks
	assertCoherent()

	e.Stop()
	assertCoherent()
	if len(e.deps) != 0 {
		t.Errorf("deps = %d after stop, want 0", len(e.deps))
	}
	for _, m := range ctx.targetMap {
		for _, d := range m.deps {
			if d.has(e) {
				t.Error("stopped effect still present in a dep")
			}
		}
	}
}

// TestTriggerOrderComputedFirst checks computed runners fire before
// plain effects within one trigger.
func TestTriggerOrderComputedFirst(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 1})

	var order []string
	var seen any
	c := ctx.Computed(func() any {
		return s.Get("n").(int) * 2
	})
	// Observe the computed so its runner subscribes to s.n.
	ctx.NewEffect(func() {
		order = append(order, "effect")
		seen = c.Value()
	}, nil)

	order = nil
	prevDirty := c.dirty
	s.Set("n", 2)
	if prevDirty {
		t.Fatal("computed should be clean after observed read")
	}
	// The computed scheduler marked dirty before the plain effect ran,
	// so the effect saw a fresh value.
	if len(order) != 1 || order[0] != "effect" {
		t.Fatalf("order = %v", order)
	}
	if seen != 4 {
		t.Errorf("effect saw %v, want 4 (computed invalidated first)", seen)
	}
	if got := c.Value(); got != 4 {
		t.Errorf("computed = %v, want 4", got)
	}
}

// TestEffectDebugHooks checks OnTrack/OnTrigger/OnStop fire.
func TestEffectDebugHooks(t *testing.T) {
	ctx := NewContext()
	s := newTestObject(ctx, map[string]any{"n": 0})

	var tracked, triggered []Op
	stopped := false
	e := ctx.NewEffect(func() { s.Get("n") }, &EffectOptions{
		OnTrack:   func(ev Event) { tracked = append(tracked, ev.Op) },
		OnTrigger: func(ev Event) { triggered = append(triggered, ev.Op) },
		OnStop:    func() { stopped = true },
	})

	if len(tracked) != 1 || tracked[0] != OpGet {
		t.Errorf("tracked = %v, want [get]", tracked)
	}
	s.Set("n", 1)
	if len(triggered) != 1 || triggered[0] != OpSet {
		t.Errorf("triggered = %v, want [set]", triggered)
	}
	e.Stop()
	if !stopped {
		t.Error("OnStop did not fire")
	}
}

// TestEffectUnwrap checks passing an effect to NewEffect reuses its raw
// function.
func TestEffectUnwrap(t *testing.T) {
	ctx := NewContext()
	ran := 0
	e1 := ctx.NewEffect(func() { ran++ }, nil)
	e2 := ctx.NewEffect(e1, nil)
	if ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	if e1 == e2 {
		t.Error("NewEffect returned the same effect")
	}
}
