package eval

import (
	"io"

	"src.tin.sh/pkg/eval/args"
)

// Flow control primitives.

func init() {
	addPrimitives(
		Primitive{
			Name: "ifx",
			Desc: "Run a block if a statement succeeds",
			Run:  ifx,
		},
		Primitive{
			Name: BlankName,
			Desc: "Run attached blocks of an empty line",
			Run:  blank,
		},
	)
}

// ifx STATEMENT... { BLOCK }
//
// The block runs in the current frame.
func ifx(sess *Session, argv []args.Arg, _ io.Reader) int {
	if len(argv) == 0 || !args.IsBlock(argv[len(argv)-1]) {
		sess.warnf("ifx", "usage: ifx STATEMENT... { BLOCK }")
		return 3
	}
	body := args.MustBlock(argv[len(argv)-1])
	status := sess.Executor.ExecStatement(sess, argv[:len(argv)-1])
	if status != 0 {
		return status
	}
	return sess.Executor.ExecBlock(sess, body)
}

// Runs each attached block in a frame of its own. Non-block arguments are
// ignored. Without blocks the status is 0 regardless of earlier statements.
func blank(sess *Session, argv []args.Arg, _ io.Reader) int {
	status := 0
	for _, a := range argv {
		if b, ok := a.(args.Block); ok {
			sess.Symbols.PushScope(false)
			status = sess.Executor.ExecBlock(sess, b)
			sess.Symbols.PopScope()
		}
	}
	return status
}
