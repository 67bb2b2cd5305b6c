package reactive

// ComputedRef is a lazily memoized derivation. The getter re-runs only
// when read after a dependency changed; the trigger path merely marks
// it dirty.
type ComputedRef struct {
	ctx    *Context
	effect *Effect
	setter func(any)
	dirty  bool
	value  any
}

// Computed builds a read-only computed from a getter.
func (ctx *Context) Computed(getter func() any) *ComputedRef {
	return ctx.WritableComputed(getter, nil)
}

// WritableComputed builds a computed whose SetValue forwards to setter.
func (ctx *Context) WritableComputed(getter func() any, setter func(any)) *ComputedRef {
	c := &ComputedRef{ctx: ctx, setter: setter, dirty: true}
	c.effect = ctx.newEffect(getter, &EffectOptions{
		Lazy: true,
		// Invalidate only; the recompute happens on next read.
		Scheduler: func(*Effect) { c.dirty = true },
	}, true)
	return c
}

// Value recomputes when dirty, then subscribes the currently active
// effect to every dep of this computed, so dependencies propagate
// through computed chains.
func (c *ComputedRef) Value() any {
	if c.dirty {
		c.value = c.effect.Run()
		c.dirty = false
	}
	c.trackChildRun()
	return c.value
}

// SetValue forwards to the setter; a computed without one warns.
func (c *ComputedRef) SetValue(v any) {
	if c.setter == nil {
		warnf("write operation failed: computed value is readonly")
		return
	}
	c.setter(v)
}

func (c *ComputedRef) refMark() {}

// Effect returns the underlying runner, for Stop.
func (c *ComputedRef) Effect() *Effect { return c.effect }

// Stop stops the underlying runner.
func (c *ComputedRef) Stop() { c.effect.Stop() }

func (c *ComputedRef) trackChildRun() {
	parent := c.ctx.activeEffect()
	if parent == nil || parent == c.effect {
		return
	}
	for _, d := range c.effect.deps {
		if !d.has(parent) {
			d.add(parent)
			parent.deps = append(parent.deps, d)
		}
	}
}
