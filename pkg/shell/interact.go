package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"src.tin.sh/pkg/fsutil"
	"src.tin.sh/pkg/opts"
	"src.tin.sh/pkg/sys"
)

// Determines whether a panic results in a rescue shell being launched. It is
// set to false by tests.
var interactiveRescueShell = true

// Prompt shown while the braces of the code read so far don't balance.
const continuationPrompt = "... "

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Paths Paths
}

// Interactive mode panic handler.
func handlePanic(stderr io.Writer) {
	r := recover()
	if r != nil {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, sys.DumpStack())
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, r)
		fmt.Fprintln(stderr, "\nExecing recovery shell /bin/sh")
		syscall.Exec("/bin/sh", []string{"/bin/sh"}, os.Environ())
	}
}

// Interact runs an interactive shell session until the end of input, and
// returns the status of the last statement.
func Interact(fds [3]*os.File, cfg *InteractConfig) int {
	if interactiveRescueShell {
		defer handlePanic(fds[2])
	}
	rt, cleanup := setupShell(fds, cfg.Paths)
	defer cleanup()

	var ed editor
	if sys.IsATTY(fds[0]) {
		history, err := rt.log.Texts()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot read history:", err)
		}
		ed = newLineEditor(history, func(line string, pos int) (string, []string, string) {
			return Complete(rt.sess, rt.dirs, line, pos)
		})
	} else {
		in := bufio.NewReader(fds[0])
		// Statements reading stdin continue from where the editor stops.
		rt.sess.Stdin = in
		rt.ex.ProcStdin = fds[0]
		ed = newMinEditor(in, fds[2])
	}
	defer func() { ed.Close() }()

	if cfg.Paths.RC != "" {
		if err := sourceRC(rt, cfg.Paths.RC); err != nil {
			fmt.Fprintln(fds[2], "tin:", err)
		}
	}

	for {
		code, err := readCode(ed, prompt(rt.opts))
		if err == io.EOF {
			break
		} else if err == errAborted {
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				break
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			ed.Close()
			in := bufio.NewReader(fds[0])
			rt.sess.Stdin = in
			rt.ex.ProcStdin = fds[0]
			ed = newMinEditor(in, fds[2])
			continue
		}

		if err := rt.log.Record(code); err != nil {
			logger.Println("failed to record history:", err)
		}
		rt.ex.Source(rt.sess, code)
	}
	return rt.ex.Status()
}

// Reads lines until the braces in them balance, and returns them joined.
func readCode(ed editor, firstPrompt string) (string, error) {
	code, err := ed.ReadLine(firstPrompt)
	if err != nil {
		return "", err
	}
	for {
		var synErr *SyntaxError
		if err := Check(code); !errors.As(err, &synErr) || !synErr.Unclosed {
			return code, nil
		}
		line, err := ed.ReadLine(continuationPrompt)
		if err == io.EOF {
			// Let the executor report the unclosed block.
			return code, nil
		} else if err != nil {
			return "", err
		}
		code += "\n" + line
	}
}

// Returns the prompt from the prompt option, with \w replaced by the working
// directory.
func prompt(o *opts.Registry) string {
	p := o.Text(opts.Prompt)
	if strings.Contains(p, `\w`) {
		p = strings.ReplaceAll(p, `\w`, fsutil.Getwd())
	}
	return p
}

// Runs the rc file. A missing rc file is not an error.
func sourceRC(rt *runtime, rcPath string) error {
	absPath, err := filepath.Abs(rcPath)
	if err != nil {
		return fmt.Errorf("cannot get full path of rc file: %v", err)
	}
	code, err := readFileUTF8(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	rt.ex.Source(rt.sess, code)
	return nil
}
