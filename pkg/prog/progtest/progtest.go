// Package progtest contains utilities for testing subprograms.
package progtest

import (
	"io"
	"os"
	"testing"

	"src.tin.sh/pkg/must"
	"src.tin.sh/pkg/prog"
)

// Result is the outcome of running a program.
type Result struct {
	Stdout string
	Stderr string
	Exit   int
}

// Run runs the program with the given stdin content and command line
// arguments, not including the program name. Stdout and stderr are captured
// with pipes that are drained concurrently, so programs writing more than the
// capacity of a pipe don't deadlock.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) Result {
	t.Helper()
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	stdout := drain(r1)
	stderr := drain(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, append([]string{"tin"}, args...), p)
	r0.Close()
	w1.Close()
	w2.Close()
	return Result{<-stdout, <-stderr, exit}
}

func drain(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(must.ReadAllAndClose(r))
	}()
	return ch
}
