// Package reactive implements the dependency-tracking engine: observed
// containers record reads and writes as cells (target, key), and
// registered effects re-run when any transitively-read cell changes.
//
// All state lives on a Context. The engine is single-threaded
// cooperative: no locks, no cross-thread publication.
package reactive

import (
	"github.com/kolkov/uvue/internal/warn"
)

// Op classifies a tracked or triggering operation on a cell.
type Op uint8

// Operations. Get, Has and Iterate are pure tracking ops; Set, Add,
// Delete and Clear trigger effects.
const (
	OpGet Op = iota
	OpHas
	OpIterate
	OpSet
	OpAdd
	OpDelete
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpGet:
		return "get"
	case OpHas:
		return "has"
	case OpIterate:
		return "iterate"
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

type iterateKey struct{}

// IterateKey is the sentinel cell key representing the iteration shape
// of a container.
var IterateKey any = iterateKey{}

// lengthKey is the extra cell touched by adds and deletes on slices.
const lengthKey = "length"

// OpInfo carries extra information about a triggering mutation, passed
// to OnTrigger debug hooks.
type OpInfo struct {
	Key      any
	OldValue any
	NewValue any
}

// Event is delivered to OnTrack and OnTrigger debug hooks.
type Event struct {
	Effect *Effect
	Target any
	Op     Op
	Key    any
	Info   *OpInfo
}

// depsMap maps cell keys of one target to their deps, preserving key
// insertion order for CLEAR iteration.
type depsMap struct {
	deps map[any]*dep
	keys []any
}

func (m *depsMap) get(key any) *dep {
	return m.deps[key]
}

func (m *depsMap) getOrCreate(key any) *dep {
	if d, ok := m.deps[key]; ok {
		return d
	}
	d := newDep()
	m.deps[key] = d
	m.keys = append(m.keys, key)
	return d
}

// Context holds the whole reactivity graph: the target map, the effect
// activation stack, the tracking and readonly gates, and the
// raw-to-observed bijections. A process normally uses the package
// default; tests may instantiate independent ones.
type Context struct {
	stack       []*Effect
	shouldTrack bool
	locked      bool

	targetMap map[any]*depsMap

	// targets maps a raw container to its holder, shared by the
	// mutable and readonly views so both address the same cells.
	targets map[uintptr]any

	rawToReactive  map[uintptr]any
	rawToReadonly  map[uintptr]any
	nonReactive    map[uintptr]bool
	markedReadonly map[uintptr]bool
}

// NewContext creates an independent reactivity context.
func NewContext() *Context {
	return &Context{
		shouldTrack:    true,
		locked:         true,
		targetMap:      make(map[any]*depsMap),
		targets:        make(map[uintptr]any),
		rawToReactive:  make(map[uintptr]any),
		rawToReadonly:  make(map[uintptr]any),
		nonReactive:    make(map[uintptr]bool),
		markedReadonly: make(map[uintptr]bool),
	}
}

// DefaultContext backs the package-level convenience functions.
var DefaultContext = NewContext()

// PauseTracking disables dependency tracking. The gate is a plain
// boolean, not a counter.
func (ctx *Context) PauseTracking() { ctx.shouldTrack = false }

// ResumeTracking re-enables dependency tracking.
func (ctx *Context) ResumeTracking() { ctx.shouldTrack = true }

// Lock gates mutation on readonly views: while locked, mutating a
// readonly view warns and does nothing.
func (ctx *Context) Lock() { ctx.locked = true }

// Unlock allows mutations through readonly views to proceed (they
// still trigger effects).
func (ctx *Context) Unlock() { ctx.locked = false }

func (ctx *Context) activeEffect() *Effect {
	if len(ctx.stack) == 0 {
		return nil
	}
	return ctx.stack[len(ctx.stack)-1]
}

// track records that the active effect read the (target, key) cell.
func (ctx *Context) track(target any, op Op, key any) {
	if !ctx.shouldTrack {
		return
	}
	e := ctx.activeEffect()
	if e == nil {
		return
	}
	m := ctx.targetMap[target]
	if m == nil {
		m = &depsMap{deps: make(map[any]*dep)}
		ctx.targetMap[target] = m
	}
	d := m.getOrCreate(key)
	if !d.has(e) {
		d.add(e)
		e.deps = append(e.deps, d)
		if e.onTrack != nil {
			e.onTrack(Event{Effect: e, Target: target, Op: op, Key: key})
		}
	}
}

// trigger re-runs every effect subscribed to the affected cells:
// the key's dep, plus the "length" dep (slices) or the iterate dep
// (other containers) on add/delete, or every dep of the target on
// clear. Computed effects run before plain effects; each bucket runs
// in insertion order.
func (ctx *Context) trigger(target any, op Op, key any, info *OpInfo) {
	m := ctx.targetMap[target]
	if m == nil {
		return
	}

	var plain, computed effectSet
	collect := func(d *dep) {
		if d == nil {
			return
		}
		for _, e := range d.order {
			if e.computed {
				computed.add(e)
			} else {
				plain.add(e)
			}
		}
	}

	if op == OpClear {
		for _, k := range m.keys {
			collect(m.deps[k])
		}
	} else {
		if key != nil {
			collect(m.get(key))
		}
		if op == OpAdd || op == OpDelete {
			if _, isSlice := target.(*sliceTarget); isSlice {
				collect(m.get(lengthKey))
			} else {
				collect(m.get(IterateKey))
			}
		}
	}

	run := func(e *Effect) {
		if e.onTrigger != nil {
			e.onTrigger(Event{Effect: e, Target: target, Op: op, Key: key, Info: info})
		}
		ctx.scheduleRun(e)
	}
	for _, e := range computed.list {
		run(e)
	}
	for _, e := range plain.list {
		run(e)
	}
}

// scheduleRun dispatches through the effect's scheduler when present.
func (ctx *Context) scheduleRun(e *Effect) {
	if e.scheduler != nil {
		e.scheduler(e)
		return
	}
	e.Run()
}

// effectSet is an insertion-ordered set of effects.
type effectSet struct {
	list []*Effect
	seen map[*Effect]bool
}

func (s *effectSet) add(e *Effect) {
	if s.seen == nil {
		s.seen = make(map[*Effect]bool)
	}
	if s.seen[e] {
		return
	}
	s.seen[e] = true
	s.list = append(s.list, e)
}

func warnf(format string, args ...any) {
	warn.Warnf(format, args...)
}
