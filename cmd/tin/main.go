// Tin is a small line-oriented shell. Every word of a statement is resolved
// against shell variables, the environment, native primitives and the
// executables on the search path, and the statement runs whatever its first
// word names.
package main

import (
	"os"

	"src.tin.sh/pkg/buildinfo"
	"src.tin.sh/pkg/lsp"
	"src.tin.sh/pkg/prog"
	"src.tin.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program{}, shell.Program{})))
}
