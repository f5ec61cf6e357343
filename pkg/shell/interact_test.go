package shell

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/must"
	"src.tin.sh/pkg/opts"
	"src.tin.sh/pkg/store/storedefs"
	"src.tin.sh/pkg/testutil"
)

func TestInteract_SingleStatement(t *testing.T) {
	f := setup(t, "read\nhello\n")

	Interact(f.fds, &InteractConfig{})
	f.testOut(t, 1, "hello\n")
}

func TestInteract_PromptIsWrittenToStderr(t *testing.T) {
	f := setup(t, "set prompt = %\n")

	Interact(f.fds, &InteractConfig{})
	f.testOut(t, 2, "tin> %")
}

func TestInteract_ReadsUntilBlockIsClosed(t *testing.T) {
	f := setup(t, "ifx {\nread\n}\nfrom block\n")

	Interact(f.fds, &InteractConfig{})
	f.testOut(t, 1, "from block\n")
	f.testOutSnippet(t, 2, continuationPrompt)
}

func TestInteract_UnclosedBlockAtEOF(t *testing.T) {
	f := setup(t, "ifx {\nread\n")

	status := Interact(f.fds, &InteractConfig{})
	if status != 2 {
		t.Errorf("got status %d, want 2", status)
	}
	f.testOutSnippet(t, 2, "unclosed block")
}

func TestInteract_ReturnsLastStatus(t *testing.T) {
	f := setup(t, "nosuchcmd\n")

	status := Interact(f.fds, &InteractConfig{})
	if status != StatusNotFound {
		t.Errorf("got status %d, want %d", status, StatusNotFound)
	}
	f.testOutSnippet(t, 2, "nosuchcmd: command not found")
}

func TestInteract_RecordsHistory(t *testing.T) {
	f := setup(t, "set x = 1\n\nhistory\n")

	Interact(f.fds, &InteractConfig{})
	f.testOut(t, 1, "    1  set x = 1\n    2  history\n")
}

func TestInteract_RcFile(t *testing.T) {
	f := setup(t, "")
	must.WriteFile("rc.tin", "read <greeting")
	must.WriteFile("greeting", "hello from rc\n")

	Interact(f.fds, &InteractConfig{Paths: Paths{RC: "rc.tin"}})
	f.testOut(t, 1, "hello from rc\n")
}

func TestInteract_RcFile_NonexistentIsOK(t *testing.T) {
	f := setup(t, "")

	Interact(f.fds, &InteractConfig{Paths: Paths{RC: "rc.tin"}})
	f.testOut(t, 1, "")
	f.testOut(t, 2, "tin> ")
}

func TestInteract_RcFile_NotUTF8(t *testing.T) {
	f := setup(t, "")
	must.WriteFile("rc.tin", "\xff")

	Interact(f.fds, &InteractConfig{Paths: Paths{RC: "rc.tin"}})
	f.testOutSnippet(t, 2, errSourceNotUTF8.Error())
}

func TestInteract_OptsFile(t *testing.T) {
	f := setup(t, "")
	must.WriteFile("opts.yaml", "prompt: '% '\n")

	Interact(f.fds, &InteractConfig{Paths: Paths{Opts: "opts.yaml"}})
	f.testOut(t, 2, "% ")
}

func TestInteract_BadOptsFile(t *testing.T) {
	f := setup(t, "")
	must.WriteFile("opts.yaml", "histsize: many\n")

	Interact(f.fds, &InteractConfig{Paths: Paths{Opts: "opts.yaml"}})
	f.testOutSnippet(t, 2, "Warning:")
}

func TestInteract_PersistsHistoryAndDirs(t *testing.T) {
	f := setup(t, "cd /\n")
	testutil.SaveEnv(t, env.PWD)
	db := filepath.Join(must.OK1(os.Getwd()), "state", "db")

	Interact(f.fds, &InteractConfig{Paths: Paths{DB: db}})

	rt, cleanup := setupShell(f.fds, Paths{DB: db})
	defer cleanup()
	texts := must.OK1(rt.log.Texts())
	if diff := cmp.Diff([]string{"cd /"}, texts); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/"}, rt.dirs()); diff != "" {
		t.Errorf("dirs (-want +got):\n%s", diff)
	}
}

func TestReadCode(t *testing.T) {
	ed := newMinEditor(bufio.NewReader(strings.NewReader("a {\nb\n}\nc")), io.Discard)
	code, err := readCode(ed, "> ")
	if code != "a {\nb\n}" || err != nil {
		t.Errorf("got %q, %v", code, err)
	}
	code, err = readCode(ed, "> ")
	if code != "c" || err != nil {
		t.Errorf("got %q, %v", code, err)
	}
	_, err = readCode(ed, "> ")
	if err != io.EOF {
		t.Errorf("got error %v, want io.EOF", err)
	}
}

func TestPrompt(t *testing.T) {
	home := testutil.TempHome(t)
	testutil.Chdir(t, home)
	o := opts.New()
	must.OK(o.Set(opts.Prompt, `\w $ `))
	if got := prompt(o); got != "~ $ " {
		t.Errorf("prompt() -> %q, want %q", got, "~ $ ")
	}
}

func TestRuntime_DirsForgetsMissingDirs(t *testing.T) {
	f := setup(t, "")
	wd := must.OK1(os.Getwd())
	db := filepath.Join(wd, "state", "db")
	rt, cleanup := setupShell(f.fds, Paths{DB: db})
	defer cleanup()

	gone := filepath.Join(wd, "gone")
	must.MkdirAll(gone)
	rt.store.AddDir(gone, 1)
	rt.store.AddDir(wd, 1)
	must.OK(os.Remove(gone))

	if diff := cmp.Diff([]string{wd}, rt.dirs()); diff != "" {
		t.Errorf("dirs (-want +got):\n%s", diff)
	}
	stored := must.OK1(rt.store.Dirs(storedefs.NoBlacklist))
	if len(stored) != 1 || stored[0].Path != wd {
		t.Errorf("stored dirs after listing -> %v, want only %s", stored, wd)
	}
}
