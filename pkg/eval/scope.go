package eval

// ScopeSpec selects the frame a binding operation writes to. It is a policy
// for one write, not a stored value.
type ScopeSpec int

const (
	// ScopeDefault updates the innermost frame that already binds the name,
	// searching no further than the innermost function boundary, and falls
	// back to the top frame.
	ScopeDefault ScopeSpec = iota
	// ScopeLocal writes to the top frame.
	ScopeLocal
	// ScopeGlobal writes to the global frame.
	ScopeGlobal
	// ScopeEnv writes to the process environment, bypassing all frames.
	ScopeEnv
)

var scopeSpecNames = [...]string{
	ScopeDefault: "default",
	ScopeLocal:   "local",
	ScopeGlobal:  "global",
	ScopeEnv:     "environment",
}

func (spec ScopeSpec) String() string {
	if spec < 0 || int(spec) >= len(scopeSpecNames) {
		return "unknown"
	}
	return scopeSpecNames[spec]
}

// A binding is exactly one of a variable or a function. Variables and
// functions share one namespace per scope.
type binding struct {
	value string
	fn    *FnDef
}

func (b binding) isFn() bool { return b.fn != nil }

// One frame of the scope stack.
type scope struct {
	bindings map[string]binding
	// Whether this frame is the top-level frame of a function call.
	fn bool
	// Whether this is the global frame. Only the bottom frame is global.
	global bool
}

func newScope(fn, global bool) *scope {
	return &scope{make(map[string]binding), fn, global}
}
