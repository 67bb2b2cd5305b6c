package reactive

// Ref is a single-cell reactive box. Reads track the cell, writes
// trigger its subscribers.
type Ref interface {
	Value() any
	SetValue(any)

	refMark() // marker method to prevent external implementations
}

// valueRef is a standalone reactive cell.
type valueRef struct {
	ctx   *Context
	value any
}

// NewRef wraps raw in a reactive cell. Container values are made
// reactive first; an existing Ref is returned unchanged.
func (ctx *Context) NewRef(raw any) Ref {
	if r, ok := raw.(Ref); ok {
		return r
	}
	return &valueRef{ctx: ctx, value: ctx.convert(raw)}
}

// convert wraps containers reactively and passes other values through.
func (ctx *Context) convert(v any) any {
	if _, ok := identity(v); ok {
		return ctx.MakeReactive(v)
	}
	return v
}

func (r *valueRef) Value() any {
	r.ctx.track(r, OpGet, "")
	return r.value
}

func (r *valueRef) SetValue(v any) {
	v = r.ctx.convert(v)
	if sameValue(r.value, v) {
		return
	}
	old := r.value
	r.value = v
	r.ctx.trigger(r, OpSet, "", &OpInfo{OldValue: old, NewValue: v})
}

func (r *valueRef) refMark() {}

// IsRef reports whether v is a Ref (including computed refs).
func IsRef(v any) bool {
	_, ok := v.(Ref)
	return ok
}

// objectRef proxies one key of an observed object, so destructured
// state keeps its reactivity.
type objectRef struct {
	obj *Object
	key string
}

func (r *objectRef) Value() any     { return r.obj.Get(r.key) }
func (r *objectRef) SetValue(v any) { r.obj.Set(r.key, v) }
func (r *objectRef) refMark()       {}

// ToRefs converts every key of an observed object into a Ref proxying
// that key.
func ToRefs(obj *Object) map[string]Ref {
	refs := make(map[string]Ref, len(obj.target.m))
	for key := range obj.target.m {
		refs[key] = &objectRef{obj: obj, key: key}
	}
	return refs
}
