package eval

import (
	"io"

	"src.tin.sh/pkg/eval/args"
)

// PrimitiveFunc is the call contract of every primitive. It receives the
// arguments of the statement (without the primitive's own name), exclusive
// access to the session, and an optional input stream opened for it; it
// returns the status code, 0 meaning success. Nonzero codes are specific to
// each primitive.
type PrimitiveFunc func(sess *Session, argv []args.Arg, in io.Reader) int

// Primitive is a native operation registered under a fixed name. Primitives
// are immutable after the registry is built and are copied freely.
type Primitive struct {
	Name string
	Desc string
	Run  PrimitiveFunc
}

// BlankName is the name of the primitive the executor invokes for an empty or
// comment-only line.
const BlankName = "__blank"

var builtinPrimitives = map[string]Primitive{}

// Called from init functions of the builtin_fn_*.go files.
func addPrimitives(ps ...Primitive) {
	for _, p := range ps {
		if _, exists := builtinPrimitives[p.Name]; exists {
			panic("duplicate primitive " + p.Name)
		}
		builtinPrimitives[p.Name] = p
	}
}

// Primitives returns a copy of the registry of builtin primitives.
func Primitives() map[string]Primitive {
	m := make(map[string]Primitive, len(builtinPrimitives))
	for name, p := range builtinPrimitives {
		m[name] = p
	}
	return m
}

