package reactive

// Package-level convenience functions bound to DefaultContext.

// MakeReactive returns a mutable observed view of v.
func MakeReactive(v any) any { return DefaultContext.MakeReactive(v) }

// MakeReadonly returns a readonly observed view of v.
func MakeReadonly(v any) any { return DefaultContext.MakeReadonly(v) }

// MarkNonReactive excludes a raw container from observation.
func MarkNonReactive(v any) any { return DefaultContext.MarkNonReactive(v) }

// MarkReadonly forces MakeReactive to produce a readonly view.
func MarkReadonly(v any) any { return DefaultContext.MarkReadonly(v) }

// NewRef wraps raw in a reactive cell.
func NewRef(raw any) Ref { return DefaultContext.NewRef(raw) }

// Computed builds a read-only computed from a getter.
func Computed(getter func() any) *ComputedRef { return DefaultContext.Computed(getter) }

// WritableComputed builds a computed with a setter.
func WritableComputed(getter func() any, setter func(any)) *ComputedRef {
	return DefaultContext.WritableComputed(getter, setter)
}

// NewEffect instruments fn and, unless opts.Lazy, runs it once.
func NewEffect(fn any, opts *EffectOptions) *Effect { return DefaultContext.NewEffect(fn, opts) }

// Stop stops an effect. Idempotent.
func Stop(e *Effect) { e.Stop() }

// PauseTracking disables dependency tracking on the default context.
func PauseTracking() { DefaultContext.PauseTracking() }

// ResumeTracking re-enables dependency tracking on the default context.
func ResumeTracking() { DefaultContext.ResumeTracking() }

// Lock gates mutation on readonly views of the default context.
func Lock() { DefaultContext.Lock() }

// Unlock allows mutations through readonly views of the default
// context.
func Unlock() { DefaultContext.Unlock() }
