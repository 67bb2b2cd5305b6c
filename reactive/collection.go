package reactive

// Map is an observed view over a map[any]any. Keys already present when
// the map is first wrapped iterate first, in Go's map iteration order;
// keys added through the view follow in insertion order.
type Map struct {
	ctx      *Context
	target   *mapTarget
	readonly bool
}

func (m *Map) observedContext() *Context { return m.ctx }
func (m *Map) observedReadonly() bool    { return m.readonly }
func (m *Map) observedRaw() any          { return m.target.m }

func (m *Map) rejectWrite(op Op, key any) bool {
	if m.readonly && m.ctx.locked {
		warnf("%s operation on key %v failed: target is readonly", op, key)
		return true
	}
	return false
}

// Get reads a key, tracking the cell.
func (m *Map) Get(key any) any {
	m.ctx.track(m.target, OpGet, key)
	return m.ctx.wrapNested(m.target.m[key], m.readonly)
}

// Set writes a key: ADD for a new key, SET for a changed one.
func (m *Map) Set(key, value any) *Map {
	if m.rejectWrite(OpSet, key) {
		return m
	}
	value = ToRaw(value)
	old, had := m.target.m[key]
	m.target.m[key] = value
	if !had {
		m.target.keys = append(m.target.keys, key)
		m.ctx.trigger(m.target, OpAdd, key, &OpInfo{Key: key, NewValue: value})
	} else if !sameValue(old, value) {
		m.ctx.trigger(m.target, OpSet, key, &OpInfo{Key: key, OldValue: old, NewValue: value})
	}
	return m
}

// Delete removes a key, reporting whether it existed.
func (m *Map) Delete(key any) bool {
	if m.rejectWrite(OpDelete, key) {
		return false
	}
	old, had := m.target.m[key]
	if !had {
		return false
	}
	delete(m.target.m, key)
	m.target.keys = removeKey(m.target.keys, key)
	m.ctx.trigger(m.target, OpDelete, key, &OpInfo{Key: key, OldValue: old})
	return true
}

// Has reports key presence, tracking the cell.
func (m *Map) Has(key any) bool {
	m.ctx.track(m.target, OpHas, key)
	_, ok := m.target.m[key]
	return ok
}

// Len returns the entry count, tracking the iteration shape.
func (m *Map) Len() int {
	m.ctx.track(m.target, OpIterate, IterateKey)
	return len(m.target.m)
}

// Keys returns the keys in the view's iteration order (see Map),
// tracking the iteration shape.
func (m *Map) Keys() []any {
	m.ctx.track(m.target, OpIterate, IterateKey)
	keys := make([]any, len(m.target.keys))
	copy(keys, m.target.keys)
	return keys
}

// ForEach visits entries in the view's iteration order (see Map),
// tracking the iteration shape. Values come back wrapped in the view's mode.
func (m *Map) ForEach(f func(key, value any)) {
	m.ctx.track(m.target, OpIterate, IterateKey)
	for _, k := range m.target.keys {
		f(k, m.ctx.wrapNested(m.target.m[k], m.readonly))
	}
}

// Clear removes all entries and re-runs every effect depending on any
// key of the map.
func (m *Map) Clear() *Map {
	if m.rejectWrite(OpClear, nil) {
		return m
	}
	if len(m.target.m) == 0 {
		return m
	}
	for k := range m.target.m {
		delete(m.target.m, k)
	}
	m.target.keys = m.target.keys[:0]
	m.ctx.trigger(m.target, OpClear, nil, nil)
	return m
}

// Set is an observed view over a map[any]bool treated as a set.
// Elements already present when the set is first wrapped iterate first,
// in Go's map iteration order; elements added through the view follow
// in insertion order.
type Set struct {
	ctx      *Context
	target   *setTarget
	readonly bool
}

func (s *Set) observedContext() *Context { return s.ctx }
func (s *Set) observedReadonly() bool    { return s.readonly }
func (s *Set) observedRaw() any          { return s.target.m }

func (s *Set) rejectWrite(op Op, key any) bool {
	if s.readonly && s.ctx.locked {
		warnf("%s operation on value %v failed: target is readonly", op, key)
		return true
	}
	return false
}

// Add inserts a value, triggering ADD when it was absent.
func (s *Set) Add(value any) *Set {
	if s.rejectWrite(OpAdd, value) {
		return s
	}
	value = ToRaw(value)
	if s.target.m[value] {
		return s
	}
	s.target.m[value] = true
	s.target.keys = append(s.target.keys, value)
	s.ctx.trigger(s.target, OpAdd, value, &OpInfo{Key: value, NewValue: value})
	return s
}

// Delete removes a value, reporting whether it was present.
func (s *Set) Delete(value any) bool {
	if s.rejectWrite(OpDelete, value) {
		return false
	}
	if !s.target.m[value] {
		return false
	}
	delete(s.target.m, value)
	s.target.keys = removeKey(s.target.keys, value)
	s.ctx.trigger(s.target, OpDelete, value, &OpInfo{Key: value, OldValue: value})
	return true
}

// Has reports membership, tracking the cell.
func (s *Set) Has(value any) bool {
	s.ctx.track(s.target, OpHas, value)
	return s.target.m[value]
}

// Len returns the element count, tracking the iteration shape.
func (s *Set) Len() int {
	s.ctx.track(s.target, OpIterate, IterateKey)
	return len(s.target.m)
}

// Values returns the elements in the view's iteration order (see Set),
// tracking the iteration shape.
func (s *Set) Values() []any {
	s.ctx.track(s.target, OpIterate, IterateKey)
	out := make([]any, len(s.target.keys))
	copy(out, s.target.keys)
	return out
}

// Clear removes all elements and re-runs every effect depending on any
// cell of the set.
func (s *Set) Clear() *Set {
	if s.rejectWrite(OpClear, nil) {
		return s
	}
	if len(s.target.m) == 0 {
		return s
	}
	for k := range s.target.m {
		delete(s.target.m, k)
	}
	s.target.keys = s.target.keys[:0]
	s.ctx.trigger(s.target, OpClear, nil, nil)
	return s
}

func removeKey(keys []any, key any) []any {
	for i, k := range keys {
		if sameValue(k, key) {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
