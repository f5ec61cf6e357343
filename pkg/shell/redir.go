package shell

import (
	"fmt"
	"io"
	"os"

	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/eval/args"
)

// Redirections of the standard streams of one statement.
type redirs struct {
	// Nil when not redirected.
	in       io.Reader
	out, err io.Writer

	files []*os.File
}

// Opens the targets of the redirections of fd 0, 1 and 2 in argv, and returns
// the remaining arguments. Other redirections are left in place for the
// command to interpret. A target of the form &1 or &2 refers to the
// destination of fd 1 or 2 at that point.
func openRedirs(sess *eval.Session, argv []args.Arg) ([]args.Arg, *redirs, error) {
	r := &redirs{}
	var rest []args.Arg
	for _, a := range argv {
		rd, ok := a.(args.Redir)
		if !ok || !r.handles(rd) {
			rest = append(rest, a)
			continue
		}
		if rd.Target[0] == '&' {
			var w io.Writer
			switch rd.Target {
			case "&1":
				w = r.stdout(sess)
			case "&2":
				w = r.stderr(sess)
			default:
				r.close()
				return nil, nil, fmt.Errorf("bad redirection %s", rd)
			}
			r.setOutput(rd.Fd, w)
			continue
		}

		var f *os.File
		var err error
		switch rd.Op {
		case "<":
			f, err = os.Open(rd.Target)
		case ">":
			f, err = os.Create(rd.Target)
		case ">>":
			f, err = os.OpenFile(rd.Target, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		}
		if err != nil {
			r.close()
			return nil, nil, err
		}
		r.files = append(r.files, f)
		if rd.Fd == 0 {
			r.in = f
		} else {
			r.setOutput(rd.Fd, f)
		}
	}
	return rest, r, nil
}

func (r *redirs) handles(rd args.Redir) bool {
	if rd.Op == "<" {
		return rd.Fd == 0 && rd.Target[0] != '&'
	}
	return rd.Fd == 1 || rd.Fd == 2
}

func (r *redirs) setOutput(fd int, w io.Writer) {
	if fd == 1 {
		r.out = w
	} else {
		r.err = w
	}
}

func (r *redirs) stdin(sess *eval.Session) io.Reader {
	if r.in != nil {
		return r.in
	}
	return sess.Stdin
}

func (r *redirs) stdout(sess *eval.Session) io.Writer {
	if r.out != nil {
		return r.out
	}
	return sess.Stdout
}

func (r *redirs) stderr(sess *eval.Session) io.Writer {
	if r.err != nil {
		return r.err
	}
	return sess.Stderr
}

// Points the streams of the session to the redirection targets, and returns a
// function that restores them.
func (r *redirs) apply(sess *eval.Session) func() {
	oldOut, oldErr := sess.Stdout, sess.Stderr
	sess.Stdout, sess.Stderr = r.stdout(sess), r.stderr(sess)
	restoreIn := func() {}
	if r.in != nil {
		restoreIn = sess.RedirectStdin(r.in)
	}
	return func() {
		restoreIn()
		sess.Stdout, sess.Stderr = oldOut, oldErr
	}
}

func (r *redirs) close() {
	for _, f := range r.files {
		f.Close()
	}
}
