package eval

import (
	"io"
	"strconv"

	"src.tin.sh/pkg/eval/args"
)

// Builtins that have not been put into their own groups go here.

func init() {
	addPrimitives(
		Primitive{Name: "exit", Desc: "Exit the shell", Run: exit},
		Primitive{Name: "history", Desc: "List command history", Run: history},
		Primitive{Name: "read", Desc: "Read a line from the input and echo it", Run: read},
		Primitive{Name: "eval", Desc: "Execute the arguments as a statement", Run: evalPrimitive},
	)
}

// exit [CODE]
//
// Never returns in production, since OSExit terminates the process.
func exit(sess *Session, argv []args.Arg, _ io.Reader) int {
	code := 0
	if words := args.Flatten(argv); len(words) > 0 {
		n, err := strconv.Atoi(words[0])
		if err != nil {
			sess.warnf("exit", "numeric argument required")
			code = 2
		} else {
			code = n
		}
	}
	for _, hook := range sess.BeforeExit {
		hook()
	}
	OSExit(code)
	return code
}

func history(sess *Session, _ []args.Arg, _ io.Reader) int {
	if sess.History == nil {
		sess.warnf("history", "no history log")
		return 0
	}
	if err := sess.History.Print(sess.Stdout); err != nil {
		sess.warnf("history", "%v", err)
	}
	return 0
}

// Reads one line from in, or the session's stdin if in is nil, and writes it
// out verbatim.
func read(sess *Session, _ []args.Arg, in io.Reader) int {
	var line string
	var err error
	if in != nil {
		line, err = readLine(in)
	} else {
		line, err = sess.stdin().ReadString('\n')
	}
	if err != nil && err != io.EOF {
		sess.warnf("read", "%v", err)
		return 2
	}
	io.WriteString(sess.Stdout, line)
	return 0
}

// Reads up to and including the first newline one byte at a time, so that
// nothing after the line is consumed from r.
func readLine(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			line = append(line, buf[0])
			if buf[0] == '\n' {
				return string(line), nil
			}
		}
		if err != nil {
			return string(line), err
		}
	}
}

func evalPrimitive(sess *Session, argv []args.Arg, _ io.Reader) int {
	return sess.Executor.ExecStatement(sess, argv)
}
