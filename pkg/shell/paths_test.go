package shell

import (
	"io"
	"path/filepath"
	"testing"

	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/prog"
	"src.tin.sh/pkg/testutil"
)

func TestMakePaths_Defaults(t *testing.T) {
	home := testutil.TempHome(t)
	testutil.Unsetenv(t, env.XDG_CONFIG_HOME)
	testutil.Unsetenv(t, env.XDG_STATE_HOME)

	got := MakePaths(io.Discard, &prog.Flags{})
	want := Paths{
		RC:   filepath.Join(home, ".config", "tin", "rc.tin"),
		Opts: filepath.Join(home, ".config", "tin", "opts.yaml"),
		DB:   filepath.Join(home, ".local", "state", "tin", "db"),
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMakePaths_XDG(t *testing.T) {
	testutil.TempHome(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, "/config")
	testutil.Setenv(t, env.XDG_STATE_HOME, "/state")

	got := MakePaths(io.Discard, &prog.Flags{})
	want := Paths{
		RC:   filepath.Join("/config", "tin", "rc.tin"),
		Opts: filepath.Join("/config", "tin", "opts.yaml"),
		DB:   filepath.Join("/state", "tin", "db"),
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMakePaths_Flags(t *testing.T) {
	testutil.TempHome(t)

	got := MakePaths(io.Discard, &prog.Flags{RC: "rc", DB: "db", Opts: "opts"})
	if want := (Paths{RC: "rc", DB: "db", Opts: "opts"}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	got = MakePaths(io.Discard, &prog.Flags{RC: "rc", NoRC: true})
	if got.RC != "" {
		t.Errorf("got RC %q with --norc, want empty", got.RC)
	}
}
