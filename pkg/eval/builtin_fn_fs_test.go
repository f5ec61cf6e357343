package eval_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/must"
	"src.tin.sh/pkg/testutil"
)

func TestCd_Home(t *testing.T) {
	testutil.InTempDir(t)
	testutil.SaveEnv(t, env.PWD)
	home := testutil.TempHome(t)
	sess, _, _ := setup(t)

	if status := call(sess, "cd"); status != 0 {
		t.Errorf("cd -> %d, want 0", status)
	}
	checkWd(t, home)
}

func TestCd_NoHome(t *testing.T) {
	testutil.InTempDir(t)
	testutil.Unsetenv(t, env.HOME)
	sess, _, stderr := setup(t)

	if status := call(sess, "cd"); status != 2 {
		t.Errorf("cd -> %d, want 2", status)
	}
	if !strings.Contains(stderr.String(), "HOME") {
		t.Errorf("warning %q doesn't mention HOME", stderr)
	}
}

func TestCd_CanonicalizesPath(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.SaveEnv(t, env.PWD)
	must.MkdirAll("d/sub")
	must.OK(os.Symlink("d", "link"))
	sess, _, _ := setup(t)

	if status := call(sess, "cd", texts("link/sub/..")...); status != 0 {
		t.Errorf("cd -> %d, want 0", status)
	}
	checkWd(t, filepath.Join(dir, "d"))
}

func TestCd_CallsHooks(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.SaveEnv(t, env.PWD)
	must.MkdirAll("d")
	sess, _, _ := setup(t)
	var hookDir string
	sess.AfterChdir = append(sess.AfterChdir, func(dir string) { hookDir = dir })

	call(sess, "cd", texts("d")...)
	if want := filepath.Join(dir, "d"); hookDir != want {
		t.Errorf("hook called with %q, want %q", hookDir, want)
	}
}

func TestCd_Errors(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"file": ""})

	for _, argv := range [][]string{{"nonexistent"}, {"file"}, {"a", "b"}} {
		sess, _, stderr := setup(t)
		var hookCalled bool
		sess.AfterChdir = append(sess.AfterChdir, func(string) { hookCalled = true })
		if status := call(sess, "cd", texts(argv...)...); status != 2 {
			t.Errorf("cd %v -> %d, want 2", argv, status)
		}
		if !strings.HasPrefix(stderr.String(), "cd: ") {
			t.Errorf("cd %v warned %q, want cd: prefix", argv, stderr)
		}
		if hookCalled {
			t.Errorf("cd %v called the hook", argv)
		}
		if wd := must.OK1(os.Getwd()); wd != dir {
			t.Errorf("cd %v changed working directory to %q", argv, wd)
		}
	}
}

func checkWd(t *testing.T, want string) {
	t.Helper()
	if wd := must.OK1(os.Getwd()); wd != want {
		t.Errorf("working directory is %q, want %q", wd, want)
	}
	if pwd := os.Getenv(env.PWD); pwd != want {
		t.Errorf("$PWD is %q, want %q", pwd, want)
	}
}
