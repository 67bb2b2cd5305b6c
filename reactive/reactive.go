package reactive

import "reflect"

// Observed is implemented by the container views this package creates.
type Observed interface {
	observedContext() *Context
	observedReadonly() bool
	observedRaw() any
}

// Raw container holders. The holder pointer is the cell target: it
// gives every wrapped container a stable, hashable identity.
type (
	objectTarget struct{ m map[string]any }
	sliceTarget  struct{ items []any }
	mapTarget    struct {
		m    map[any]any
		keys []any
	}
	setTarget struct {
		m    map[any]bool
		keys []any
	}
)

// identity returns a stable key for a raw container (its header
// pointer). ok is false for values that cannot be observed.
func identity(v any) (uintptr, bool) {
	switch v.(type) {
	case map[string]any, []any, map[any]any, map[any]bool:
		return reflect.ValueOf(v).Pointer(), true
	}
	return 0, false
}

// MakeReactive returns a mutable observed view of v. It is idempotent:
// wrapping the same raw container twice yields the same view, and
// wrapping a view returns it unchanged. Values that are not supported
// containers are returned as-is with a development warning.
func (ctx *Context) MakeReactive(v any) any {
	if obs, ok := v.(Observed); ok {
		// Readonly views stay readonly.
		return obs
	}
	id, ok := identity(v)
	if !ok {
		warnf("value cannot be made reactive: %T", v)
		return v
	}
	if ctx.nonReactive[id] {
		return v
	}
	if ctx.markedReadonly[id] {
		return ctx.MakeReadonly(v)
	}
	if existing, ok := ctx.rawToReactive[id]; ok {
		return existing
	}
	obs := ctx.observe(v, false)
	ctx.rawToReactive[id] = obs
	return obs
}

// MakeReadonly returns a readonly observed view of v. Wrapping a
// mutable view wraps its raw container instead, so both views share
// state.
func (ctx *Context) MakeReadonly(v any) any {
	if obs, ok := v.(Observed); ok {
		if obs.observedReadonly() {
			return obs
		}
		v = obs.observedRaw()
	}
	id, ok := identity(v)
	if !ok {
		warnf("value cannot be made readonly: %T", v)
		return v
	}
	if ctx.nonReactive[id] {
		return v
	}
	if existing, ok := ctx.rawToReadonly[id]; ok {
		return existing
	}
	obs := ctx.observe(v, true)
	ctx.rawToReadonly[id] = obs
	return obs
}

func (ctx *Context) observe(v any, readonly bool) any {
	id, _ := identity(v)
	switch target := ctx.holder(v, id).(type) {
	case *objectTarget:
		return &Object{ctx: ctx, target: target, readonly: readonly}
	case *sliceTarget:
		return &Slice{ctx: ctx, target: target, readonly: readonly}
	case *mapTarget:
		return &Map{ctx: ctx, target: target, readonly: readonly}
	case *setTarget:
		return &Set{ctx: ctx, target: target, readonly: readonly}
	}
	panic("unreachable: identity accepted an unsupported container")
}

// holder returns the cell target for a raw container, creating it on
// first wrap. The mutable and readonly views of one raw share it.
func (ctx *Context) holder(v any, id uintptr) any {
	if h, ok := ctx.targets[id]; ok {
		return h
	}
	var h any
	switch raw := v.(type) {
	case map[string]any:
		h = &objectTarget{m: raw}
	case []any:
		h = &sliceTarget{items: raw}
	case map[any]any:
		t := &mapTarget{m: raw}
		for k := range raw {
			t.keys = append(t.keys, k)
		}
		h = t
	case map[any]bool:
		t := &setTarget{m: raw}
		for k := range raw {
			t.keys = append(t.keys, k)
		}
		h = t
	}
	ctx.targets[id] = h
	return h
}

// wrapNested wraps container values read out of an observed container,
// leaving everything else untouched.
func (ctx *Context) wrapNested(v any, readonly bool) any {
	if _, ok := identity(v); !ok {
		if _, isObs := v.(Observed); !isObs {
			return v
		}
	}
	if readonly {
		return ctx.MakeReadonly(v)
	}
	return ctx.MakeReactive(v)
}

// ToRaw unwraps an observed view to its raw container; other values
// pass through.
func ToRaw(v any) any {
	if obs, ok := v.(Observed); ok {
		return obs.observedRaw()
	}
	return v
}

// IsReactive reports whether v is a mutable observed view.
func IsReactive(v any) bool {
	obs, ok := v.(Observed)
	return ok && !obs.observedReadonly()
}

// IsReadonly reports whether v is a readonly observed view.
func IsReadonly(v any) bool {
	obs, ok := v.(Observed)
	return ok && obs.observedReadonly()
}

// MarkNonReactive excludes a raw container from observation; wrapping
// it afterwards returns it unchanged.
func (ctx *Context) MarkNonReactive(v any) any {
	if id, ok := identity(v); ok {
		ctx.nonReactive[id] = true
	}
	return v
}

// MarkReadonly forces MakeReactive to produce a readonly view for this
// raw container.
func (ctx *Context) MarkReadonly(v any) any {
	if id, ok := identity(v); ok {
		ctx.markedReadonly[id] = true
	}
	return v
}

// sameValue reports whether old and new compare equal, treating values
// of uncomparable types as always changed.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
