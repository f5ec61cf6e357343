package eval

import (
	"errors"
	"sort"

	"src.tin.sh/pkg/env"
)

// ErrFnInEnv is returned when a function is written with ScopeEnv.
var ErrFnInEnv = errors.New("functions cannot be stored in the environment")

// AutoRehashOption is the name of the option that controls whether Resolve
// rebuilds the binary cache when a binary is not found. Rehashing is on unless
// the option is "false".
const AutoRehashOption = "autorehash"

// SymbolTable owns the scope stack, the binary cache and the primitive
// registry of a session.
//
// The scope stack always has at least the global frame. Pushes and pops must
// be balanced by the caller.
type SymbolTable struct {
	opts       Options
	scopes     []*scope
	primitives map[string]Primitive
	bins       binCache
}

// NewSymbolTable creates a SymbolTable with only the global frame, all the
// builtin primitives and a freshly built binary cache. A nil opts is treated
// as NoOptions.
func NewSymbolTable(opts Options) *SymbolTable {
	if opts == nil {
		opts = NoOptions
	}
	st := &SymbolTable{
		opts:       opts,
		scopes:     []*scope{newScope(false, true)},
		primitives: Primitives(),
	}
	st.bins.rehash()
	return st
}

// PushScope pushes a new frame. If fn is true, the frame marks a function call
// boundary.
func (st *SymbolTable) PushScope(fn bool) {
	st.scopes = append(st.scopes, newScope(fn, false))
}

// PopScope pops the top frame. Popping the global frame is a programming error
// and panics.
func (st *SymbolTable) PopScope() {
	if len(st.scopes) == 1 {
		panic("PopScope: attempt to pop the global scope")
	}
	st.scopes[len(st.scopes)-1] = nil
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the number of frames, including the global frame.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Write binds name to a variable. If name is an option, the write is
// delegated to the option registry. With ScopeEnv, the process environment is
// written directly. Otherwise the frame is chosen according to spec, and an
// empty value deletes the binding from that frame instead of storing "".
func (st *SymbolTable) Write(name, value string, spec ScopeSpec) error {
	if st.opts.IsOption(name) {
		return st.opts.Set(name, value)
	}
	if spec == ScopeEnv {
		return env.Set(name, value)
	}
	sc := st.frameFor(name, spec)
	if value == "" {
		delete(sc.bindings, name)
	} else {
		sc.bindings[name] = binding{value: value}
	}
	return nil
}

// WriteFn binds name to a function, choosing the frame like Write. A variable
// with the same name in that frame is replaced.
func (st *SymbolTable) WriteFn(name string, fn FnDef, spec ScopeSpec) error {
	if spec == ScopeEnv {
		return ErrFnInEnv
	}
	fn = fn.Clone()
	st.frameFor(name, spec).bindings[name] = binding{fn: &fn}
	return nil
}

// Binds a parameter of a function call in the top frame. Unlike Write, option
// names get no special treatment.
func (st *SymbolTable) bindParam(name, value string) {
	if value != "" {
		st.top().bindings[name] = binding{value: value}
	}
}

func (st *SymbolTable) frameFor(name string, spec ScopeSpec) *scope {
	switch spec {
	case ScopeGlobal:
		return st.scopes[0]
	case ScopeLocal:
		return st.top()
	case ScopeDefault:
		for i := len(st.scopes) - 1; i >= 0; i-- {
			sc := st.scopes[i]
			if _, ok := sc.bindings[name]; ok {
				return sc
			}
			if sc.fn {
				// Don't act through the function barrier.
				break
			}
		}
		return st.top()
	default:
		panic("frameFor: bad scope spec " + spec.String())
	}
}

func (st *SymbolTable) top() *scope {
	return st.scopes[len(st.scopes)-1]
}

// Rehash rebuilds the binary cache from the search path.
func (st *SymbolTable) Rehash() {
	st.bins.rehash()
}

// Binaries returns a copy of the binary cache.
func (st *SymbolTable) Binaries() map[string]string {
	m := make(map[string]string, len(st.bins.paths))
	for name, path := range st.bins.paths {
		m[name] = path
	}
	return m
}

func (st *SymbolTable) autoRehash() bool {
	v, ok := st.opts.Get(AutoRehashOption)
	return !ok || v != "false"
}

func (st *SymbolTable) primitiveNames() []string {
	names := make([]string, 0, len(st.primitives))
	for name := range st.primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
