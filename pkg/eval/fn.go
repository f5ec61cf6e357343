package eval

// FnDef is a user-defined function.
//
// The body is kept as literal source lines and interpreted again on every
// call, so calling a function costs time proportional to the size of its body
// each time.
type FnDef struct {
	Name   string
	Inline bool
	// Names of positional parameters.
	Args []string
	// Name of the parameter receiving the remaining arguments; empty if the
	// function has none.
	Vararg string
	// Fixed trailing parameters. Reserved; the definition path never
	// populates them.
	Postargs []string
	Lines    []string
}

// Clone returns a deep copy of fn.
func (fn FnDef) Clone() FnDef {
	fn.Args = cloneStrings(fn.Args)
	fn.Postargs = cloneStrings(fn.Postargs)
	fn.Lines = cloneStrings(fn.Lines)
	return fn
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
