package reactive

// EffectOptions configures a new effect.
type EffectOptions struct {
	// Lazy skips the initial run.
	Lazy bool

	// Scheduler, when set, receives the effect on trigger instead of
	// an immediate re-run. The scheduler decides when (or whether) to
	// call Run.
	Scheduler func(*Effect)

	// Debug hooks.
	OnTrack   func(Event)
	OnTrigger func(Event)
	OnStop    func()
}

// Effect is a function instrumented to record the cells it reads and to
// be re-invoked when any of them change. A stopped effect behaves as
// the plain wrapped function.
type Effect struct {
	ctx       *Context
	raw       func() any
	active    bool
	computed  bool
	deps      []*dep
	scheduler func(*Effect)
	onTrack   func(Event)
	onTrigger func(Event)
	onStop    func()
}

// NewEffect instruments fn and, unless opts.Lazy, runs it once.
// Passing an *Effect in place of a function reuses its raw function.
func (ctx *Context) NewEffect(fn any, opts *EffectOptions) *Effect {
	var raw func() any
	switch f := fn.(type) {
	case *Effect:
		raw = f.raw
	case func():
		raw = func() any { f(); return nil }
	case func() any:
		raw = f
	default:
		warnf("effect requires a func() or func() any, got %T", fn)
		return nil
	}
	return ctx.newEffect(raw, opts, false)
}

func (ctx *Context) newEffect(raw func() any, opts *EffectOptions, computed bool) *Effect {
	e := &Effect{
		ctx:      ctx,
		raw:      raw,
		active:   true,
		computed: computed,
	}
	if opts != nil {
		e.scheduler = opts.Scheduler
		e.onTrack = opts.OnTrack
		e.onTrigger = opts.OnTrigger
		e.onStop = opts.OnStop
	}
	if opts == nil || !opts.Lazy {
		e.Run()
	}
	return e
}

// Run invokes the effect: previous subscriptions are cleaned up, the
// effect is pushed on the activation stack, and the raw function
// re-tracks whatever it reads. A stopped effect runs without tracking.
// An effect already on the activation stack is skipped, which keeps a
// self-triggering effect from recursing.
func (e *Effect) Run() any {
	if !e.active {
		return e.raw()
	}
	for _, f := range e.ctx.stack {
		if f == e {
			return nil
		}
	}
	e.cleanup()
	e.ctx.stack = append(e.ctx.stack, e)
	defer func() {
		e.ctx.stack = e.ctx.stack[:len(e.ctx.stack)-1]
	}()
	return e.raw()
}

// cleanup removes the effect from every dep it belongs to.
func (e *Effect) cleanup() {
	for _, d := range e.deps {
		d.remove(e)
	}
	e.deps = e.deps[:0]
}

// Stop removes the effect from all deps and disables future tracking.
// Idempotent.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool { return e.active }

// Computed reports whether this is a computed runner; computed runners
// sort ahead of plain effects during trigger.
func (e *Effect) Computed() bool { return e.computed }
