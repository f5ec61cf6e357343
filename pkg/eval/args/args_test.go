package args

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tin.sh/pkg/tt"
)

func TestFlatten(t *testing.T) {
	tt.Test(t, tt.Fn("Flatten", Flatten), tt.Table{
		tt.Args([]Arg(nil)).Rets([]string(nil)),
		tt.Args(Texts("a", "b")).Rets([]string{"a", "b"}),
		tt.Args([]Arg{Text("x"), Block{"echo 1", "echo 2"}}).
			Rets([]string{"x", "echo 1", "echo 2"}),
		tt.Args([]Arg{Redir{Fd: 2, Op: ">", Target: "err"}}).
			Rets([]string{"2>err"}),
	})
}

func TestMustText(t *testing.T) {
	if got := MustText(Text("foo")); got != "foo" {
		t.Errorf("MustText -> %q, want %q", got, "foo")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("MustText on a Block didn't panic")
		}
	}()
	MustText(Block{"x"})
}

func TestMustBlock(t *testing.T) {
	lines := MustBlock(Block{"a", "b"})
	if diff := cmp.Diff([]string{"a", "b"}, lines); diff != "" {
		t.Errorf("MustBlock (-want +got):\n%s", diff)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("MustBlock on Text didn't panic")
		}
	}()
	MustBlock(Text("x"))
}

func TestKindPredicates(t *testing.T) {
	tt.Test(t, tt.Fn("IsText", IsText), tt.Table{
		tt.Args(Text("a")).Rets(true),
		tt.Args(Block{}).Rets(false),
		tt.Args(Redir{}).Rets(false),
	})
	tt.Test(t, tt.Fn("IsBlock", IsBlock), tt.Table{
		tt.Args(Text("a")).Rets(false),
		tt.Args(Block{}).Rets(true),
	})
}

func TestRepr(t *testing.T) {
	got := Repr([]Arg{Text("ifx"), Text("true"), Block{"a", "b"}, Redir{Fd: 1, Op: ">>", Target: "log"}})
	want := "ifx true { a; b } 1>>log"
	if got != want {
		t.Errorf("Repr -> %q, want %q", got, want)
	}
}
