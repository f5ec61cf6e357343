package eval

import (
	"sort"
	"strings"

	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/fsutil"
)

// Kind is a set of symbol kinds.
type Kind uint8

// Symbol kinds.
const (
	BinaryKind Kind = 1 << iota
	PrimitiveKind
	VariableKind
	EnvironmentKind
	FunctionKind

	AllKinds = BinaryKind | PrimitiveKind | VariableKind | EnvironmentKind | FunctionKind
)

var kindNames = []struct {
	k    Kind
	name string
}{
	{BinaryKind, "binary"},
	{PrimitiveKind, "primitive"},
	{VariableKind, "variable"},
	{EnvironmentKind, "environment"},
	{FunctionKind, "function"},
}

func (k Kind) String() string {
	var names []string
	for _, kn := range kindNames {
		if k&kn.k != 0 {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Symbol is the outcome of resolving a name. It is one of BinarySymbol,
// PrimitiveSymbol, VariableSymbol, EnvironmentSymbol and FunctionSymbol.
type Symbol interface {
	Kind() Kind
}

// BinarySymbol is an external executable.
type BinarySymbol struct{ Path string }

// PrimitiveSymbol is a native primitive.
type PrimitiveSymbol struct{ Primitive Primitive }

// VariableSymbol is a scoped variable or an option.
type VariableSymbol struct{ Value string }

// EnvironmentSymbol is an environment variable.
type EnvironmentSymbol struct{ Value string }

// FunctionSymbol is a user-defined function. Fn is a copy of the stored
// definition.
type FunctionSymbol struct{ Fn FnDef }

func (BinarySymbol) Kind() Kind      { return BinaryKind }
func (PrimitiveSymbol) Kind() Kind   { return PrimitiveKind }
func (VariableSymbol) Kind() Kind    { return VariableKind }
func (EnvironmentSymbol) Kind() Kind { return EnvironmentKind }
func (FunctionSymbol) Kind() Kind    { return FunctionKind }

// Resolve looks up name among the requested kinds. The first hit wins, in this
// order:
//
//  1. Options, if variables or functions are requested. An option name
//     always resolves to a variable holding its current value, and never
//     falls through to the rest of the search.
//  2. Scoped bindings, innermost frame first. A variable binding is only
//     returned if variables are requested, and a function binding only if
//     functions are requested.
//  3. The process environment.
//  4. Primitives.
//  5. Binaries: the binary cache, then name as a literal path, then the
//     binary cache again after rebuilding it.
func (st *SymbolTable) Resolve(name string, kinds Kind) (Symbol, bool) {
	if kinds&(VariableKind|FunctionKind) != 0 {
		if st.opts.IsOption(name) {
			if v, ok := st.opts.Get(name); ok {
				return VariableSymbol{v}, true
			}
			return nil, false
		}

		for i := len(st.scopes) - 1; i >= 0; i-- {
			b, ok := st.scopes[i].bindings[name]
			if !ok {
				continue
			}
			if b.isFn() {
				if kinds&FunctionKind != 0 {
					return FunctionSymbol{b.fn.Clone()}, true
				}
			} else if kinds&VariableKind != 0 {
				return VariableSymbol{b.value}, true
			}
		}
	}

	if kinds&EnvironmentKind != 0 {
		if v, ok := env.Lookup(name); ok {
			return EnvironmentSymbol{v}, true
		}
	}

	if kinds&PrimitiveKind != 0 {
		if p, ok := st.primitives[name]; ok {
			return PrimitiveSymbol{p}, true
		}
	}

	if kinds&BinaryKind != 0 {
		if path, ok := st.bins.lookup(name); ok {
			return BinarySymbol{path}, true
		}
		// The executable bit is not checked here either.
		if fsutil.Exists(name) {
			return BinarySymbol{name}, true
		}
		if st.autoRehash() {
			logger.Printf("%s not found, rehashing", name)
			st.bins.rehash()
			if path, ok := st.bins.lookup(name); ok {
				return BinarySymbol{path}, true
			}
		}
	}

	return nil, false
}

// PrefixResolve returns all distinct names starting with prefix among the
// requested kinds, for completion. Matches are grouped in the order scoped
// variables (innermost frame first), environment variables, primitives and
// binaries, and sorted within each frame or group. The binary cache is never
// rebuilt.
//
// Function bindings are not included, even when FunctionKind is requested.
func (st *SymbolTable) PrefixResolve(prefix string, kinds Kind) []string {
	var res []string
	seen := make(map[string]bool)
	add := func(names []string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				res = append(res, name)
			}
		}
	}

	if kinds&VariableKind != 0 {
		for i := len(st.scopes) - 1; i >= 0; i-- {
			var names []string
			for name, b := range st.scopes[i].bindings {
				if !b.isFn() && strings.HasPrefix(name, prefix) {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			add(names)
		}
	}

	if kinds&EnvironmentKind != 0 {
		add(filterPrefix(env.Names(), prefix))
	}

	if kinds&PrimitiveKind != 0 {
		add(filterPrefix(st.primitiveNames(), prefix))
	}

	if kinds&BinaryKind != 0 {
		add(st.bins.namesWithPrefix(prefix))
	}

	return res
}

func filterPrefix(names []string, prefix string) []string {
	var filtered []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
