package eval_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tin.sh/pkg/env"
	. "src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/must"
	"src.tin.sh/pkg/testutil"
	"src.tin.sh/pkg/tt"
)

func TestKindString(t *testing.T) {
	tt.Test(t, tt.Fn("Kind.String", Kind.String), tt.Table{
		tt.Args(Kind(0)).Rets("none"),
		tt.Args(BinaryKind).Rets("binary"),
		tt.Args(VariableKind|FunctionKind).Rets("variable|function"),
		tt.Args(AllKinds).Rets("binary|primitive|variable|environment|function"),
	})
}

func TestResolve_FunctionAndVariableAreDistinct(t *testing.T) {
	sess, _, _ := setup(t)
	st := sess.Symbols
	st.WriteFn("f", FnDef{Name: "f"}, ScopeGlobal)
	st.Write("v", "value", ScopeGlobal)

	mustNotResolve(t, st, "f", VariableKind)
	mustNotResolve(t, st, "v", FunctionKind)
}

func TestResolve_FunctionHiddenFromVariableLookupFallsThrough(t *testing.T) {
	sess, _, _ := setup(t)
	st := sess.Symbols
	st.Write("x", "outer", ScopeGlobal)
	st.PushScope(false)
	st.WriteFn("x", FnDef{Name: "x"}, ScopeLocal)
	mustResolveVar(t, st, "x", "outer")
}

func TestResolve_Order(t *testing.T) {
	sess, _, _ := setup(t)
	st := sess.Symbols
	testutil.Setenv(t, "cd", "from-env")

	// Environment shadows primitives.
	if sym, _ := st.Resolve("cd", AllKinds); sym != (EnvironmentSymbol{"from-env"}) {
		t.Errorf("Resolve(cd) -> %#v, want environment", sym)
	}
	// Scoped bindings shadow the environment.
	st.Write("cd", "from-scope", ScopeGlobal)
	if sym, _ := st.Resolve("cd", AllKinds); sym != (VariableSymbol{"from-scope"}) {
		t.Errorf("Resolve(cd) -> %#v, want variable", sym)
	}
	// Only requested kinds are considered.
	sym, ok := st.Resolve("cd", PrimitiveKind)
	if p, isPrim := sym.(PrimitiveSymbol); !ok || !isPrim || p.Primitive.Name != "cd" {
		t.Errorf("Resolve(cd, PrimitiveKind) -> %#v, want primitive cd", sym)
	}
}

func TestResolve_Option(t *testing.T) {
	opts := testOptions{"debug": "true", "broken": "unreadable"}
	sess, _, _ := setupWithOptions(t, opts)
	st := sess.Symbols
	testutil.Setenv(t, "broken", "from-env")

	mustResolveVar(t, st, "debug", "true")
	// An option short-circuits the search even if it can't be read.
	mustNotResolve(t, st, "broken", VariableKind|EnvironmentKind)
	// Options are not considered unless variables or functions are requested.
	if sym, _ := st.Resolve("broken", EnvironmentKind); sym != (EnvironmentSymbol{"from-env"}) {
		t.Errorf("Resolve(broken, EnvironmentKind) -> %#v, want environment", sym)
	}
}

func TestResolve_ReturnsCopyOfFunction(t *testing.T) {
	sess, _, _ := setup(t)
	st := sess.Symbols
	st.WriteFn("f", FnDef{Name: "f", Lines: []string{"true"}}, ScopeGlobal)

	sym, _ := st.Resolve("f", FunctionKind)
	sym.(FunctionSymbol).Fn.Lines[0] = "false"

	sym, _ = st.Resolve("f", FunctionKind)
	if got := sym.(FunctionSymbol).Fn.Lines; !cmp.Equal(got, []string{"true"}) {
		t.Errorf("stored function body changed to %v", got)
	}
}

func TestResolve_Binary(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"a": testutil.Dir{},
		"b": testutil.Dir{"tool": testutil.File{Perm: 0755, Content: ""}},
	})
	testutil.Setenv(t, env.PATH, "a:b")
	st := NewSymbolTable(nil)
	wantPath := filepath.Join(dir, "b", "tool")

	if sym, _ := st.Resolve("tool", BinaryKind); sym != (BinarySymbol{wantPath}) {
		t.Errorf("Resolve(tool) -> %#v, want %s", sym, wantPath)
	}

	// Stale until rehashed.
	must.OK(os.Remove(wantPath))
	if sym, _ := st.Resolve("tool", BinaryKind); sym != (BinarySymbol{wantPath}) {
		t.Errorf("Resolve(tool) after removal -> %#v, want stale %s", sym, wantPath)
	}

	st.Rehash()
	mustNotResolve(t, st, "tool", BinaryKind)
}

func TestResolve_BinaryFirstDirectoryWins(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"a": testutil.Dir{"tool": ""},
		"b": testutil.Dir{"tool": ""},
	})
	testutil.Setenv(t, env.PATH, "a:b")
	st := NewSymbolTable(nil)

	want := BinarySymbol{filepath.Join(dir, "a", "tool")}
	if sym, _ := st.Resolve("tool", BinaryKind); sym != want {
		t.Errorf("Resolve(tool) -> %#v, want %#v", sym, want)
	}
}

func TestResolve_BinaryNotExecutable(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"bin": testutil.Dir{"data": "not a program"}})
	testutil.Setenv(t, env.PATH, filepath.Join(dir, "bin"))
	st := NewSymbolTable(nil)

	if _, ok := st.Resolve("data", BinaryKind); !ok {
		t.Errorf("non-executable file in search path not resolved")
	}
}

func TestResolve_BinaryLiteralPath(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"script": "echo"})
	testutil.Setenv(t, env.PATH, "")
	st := NewSymbolTable(nil)

	if sym, _ := st.Resolve("./script", BinaryKind); sym != (BinarySymbol{"./script"}) {
		t.Errorf("Resolve(./script) -> %#v, want literal path", sym)
	}
}

func TestResolve_AutoRehash(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"bin": testutil.Dir{}})
	bin := filepath.Join(dir, "bin")
	testutil.Setenv(t, env.PATH, bin)
	for _, test := range []struct {
		autorehash string
		wantFound  bool
	}{
		{"true", true},
		{"false", false},
	} {
		st := NewSymbolTable(testOptions{AutoRehashOption: test.autorehash})
		name := "new-" + test.autorehash
		// Created after the cache is built, outside the working directory so
		// that the literal path probe doesn't find it.
		must.WriteFile(filepath.Join(bin, name), "")
		_, found := st.Resolve(name, BinaryKind)
		if found != test.wantFound {
			t.Errorf("with autorehash=%s, Resolve found %v, want %v",
				test.autorehash, found, test.wantFound)
		}
	}
}

func TestPrefixResolve(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"bin": testutil.Dir{"foobin": "", "bar": ""}})
	testutil.Setenv(t, env.PATH, filepath.Join(dir, "bin"))
	testutil.Setenv(t, "fooenv", "")
	st := NewSymbolTable(nil)

	st.Write("foo0", "v", ScopeGlobal)
	st.Write("foo1", "v", ScopeGlobal)
	st.WriteFn("foofn", FnDef{Name: "foofn"}, ScopeGlobal)
	st.PushScope(false)
	st.Write("foo2", "v", ScopeLocal)
	st.Write("foo1", "v", ScopeLocal)

	got := st.PrefixResolve("foo", AllKinds)
	want := []string{"foo1", "foo2", "foo0", "fooenv", "foobin"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PrefixResolve (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(primitiveNames(), st.PrefixResolve("", PrimitiveKind)); diff != "" {
		t.Errorf("PrefixResolve of primitives (-want +got):\n%s", diff)
	}
}

func TestPrefixResolve_DoesNotRehash(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"bin": testutil.Dir{}})
	testutil.Setenv(t, env.PATH, filepath.Join(dir, "bin"))
	st := NewSymbolTable(nil)
	must.WriteFile(filepath.Join(dir, "bin", "late"), "")

	if got := st.PrefixResolve("la", BinaryKind); len(got) != 0 {
		t.Errorf("PrefixResolve -> %v, want nothing", got)
	}
}
