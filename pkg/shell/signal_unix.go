//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

func signalOf(err *exec.ExitError) (int, bool) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
