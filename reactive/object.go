package reactive

// Object is an observed view over a map[string]any treated as a record.
type Object struct {
	ctx      *Context
	target   *objectTarget
	readonly bool
}

func (o *Object) observedContext() *Context { return o.ctx }
func (o *Object) observedReadonly() bool    { return o.readonly }
func (o *Object) observedRaw() any          { return o.target.m }

// rejectWrite reports (and warns about) a mutation attempt on a locked
// readonly view.
func (o *Object) rejectWrite(op Op, key string) bool {
	if o.readonly && o.ctx.locked {
		warnf("%s operation on key %q failed: target is readonly", op, key)
		return true
	}
	return false
}

// Get reads a key, tracking the cell. Container values come back
// wrapped in the same mode as the view.
func (o *Object) Get(key string) any {
	o.ctx.track(o.target, OpGet, key)
	return o.ctx.wrapNested(o.target.m[key], o.readonly)
}

// Set writes a key and triggers: ADD for a new key, SET for a changed
// one. Observed values are stored raw.
func (o *Object) Set(key string, value any) *Object {
	if o.rejectWrite(OpSet, key) {
		return o
	}
	value = ToRaw(value)
	old, had := o.target.m[key]
	o.target.m[key] = value
	if !had {
		o.ctx.trigger(o.target, OpAdd, key, &OpInfo{Key: key, NewValue: value})
	} else if !sameValue(old, value) {
		o.ctx.trigger(o.target, OpSet, key, &OpInfo{Key: key, OldValue: old, NewValue: value})
	}
	return o
}

// Delete removes a key, reporting whether it existed.
func (o *Object) Delete(key string) bool {
	if o.rejectWrite(OpDelete, key) {
		return false
	}
	old, had := o.target.m[key]
	if !had {
		return false
	}
	delete(o.target.m, key)
	o.ctx.trigger(o.target, OpDelete, key, &OpInfo{Key: key, OldValue: old})
	return true
}

// Has reports key presence, tracking the cell.
func (o *Object) Has(key string) bool {
	o.ctx.track(o.target, OpHas, key)
	_, ok := o.target.m[key]
	return ok
}

// Keys returns the keys, tracking the iteration shape.
func (o *Object) Keys() []string {
	o.ctx.track(o.target, OpIterate, IterateKey)
	keys := make([]string, 0, len(o.target.m))
	for k := range o.target.m {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of keys, tracking the iteration shape.
func (o *Object) Len() int {
	o.ctx.track(o.target, OpIterate, IterateKey)
	return len(o.target.m)
}
