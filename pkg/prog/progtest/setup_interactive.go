//go:build unix

package progtest

import (
	"os"

	"github.com/creack/pty"
	"src.tin.sh/pkg/testutil"
)

// OpenPty opens a pseudo terminal pair and closes both ends when the test
// finishes. The test is skipped if the system can't allocate one.
func OpenPty(c interface {
	testutil.Cleanuper
	testutil.Skipper
}) (ptmx, tty *os.File) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		c.Skipf("pty.Open: %v", err)
		return nil, nil
	}
	c.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty
}
