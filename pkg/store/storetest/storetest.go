// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tin.sh/pkg/store/storedefs"
)

var cmds = []string{"set x = 1", "cd /tmp", "set y = 2", "echo $x"}

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%q) -> %v, %v, want %v, nil", cmd, seq, err, wantSeq)
		}
	}
	endSeq, _ := store.NextCmdSeq()
	if endSeq != startSeq+len(cmds) {
		t.Errorf("store.NextCmdSeq() -> %v, want %v", endSeq, startSeq+len(cmds))
	}

	got, err := store.CmdsWithSeq(startSeq+1, startSeq+3)
	want := []storedefs.Cmd{{Text: cmds[1], Seq: startSeq + 1}, {Text: cmds[2], Seq: startSeq + 2}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq (-want +got):\n%s\nerror: %v", diff, err)
	}

	all, err := store.CmdsWithSeq(startSeq, endSeq+10)
	if len(all) != len(cmds) || err != nil {
		t.Errorf("store.CmdsWithSeq past the end -> %v, %v", all, err)
	}
}

// TestDir tests the directory history functionality of a Store.
func TestDir(t *testing.T, store storedefs.Store) {
	for _, path := range []string{"/usr/local", "/usr", "/usr/local"} {
		if err := store.AddDir(path, 1); err != nil {
			t.Errorf("store.AddDir(%q) -> %v", path, err)
		}
	}

	dirs, err := store.Dirs(storedefs.NoBlacklist)
	if err != nil {
		t.Fatalf("store.Dirs() -> error %v", err)
	}
	wantPaths := []string{"/usr/local", "/usr"}
	var gotPaths []string
	for _, d := range dirs {
		gotPaths = append(gotPaths, d.Path)
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("store.Dirs() paths (-want +got):\n%s", diff)
	}

	dirs, _ = store.Dirs(map[string]struct{}{"/usr": {}})
	if len(dirs) != 1 || dirs[0].Path != "/usr/local" {
		t.Errorf("store.Dirs() with blacklist -> %v", dirs)
	}

	store.DelDir("/usr/local")
	dirs, _ = store.Dirs(storedefs.NoBlacklist)
	if len(dirs) != 1 || dirs[0].Path != "/usr" {
		t.Errorf("store.Dirs() after deletion -> %v", dirs)
	}
}
