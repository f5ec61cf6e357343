package shell

import (
	"strings"

	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/fsutil"
	"src.tin.sh/pkg/opts"
)

// Complete completes the word before pos in line, and returns the text before
// the word, the candidates and the text after pos. A word starting with $
// completes to variable and environment names, the first word of a statement
// to commands, the first argument of set to option names, and the argument
// of cd to directories in dirs, best first.
func Complete(sess *eval.Session, dirs func() []string, line string, pos int) (string, []string, string) {
	if pos > len(line) {
		pos = len(line)
	}
	head, tail := line[:pos], line[pos:]
	start := strings.LastIndexAny(head, " \t") + 1
	word := head[start:]
	before := strings.Fields(head[:start])
	head = head[:start]

	var cands []string
	switch {
	case strings.HasPrefix(word, "$"):
		for _, name := range sess.Symbols.PrefixResolve(word[1:], eval.VariableKind|eval.EnvironmentKind) {
			cands = append(cands, "$"+name)
		}
	case len(before) == 0 || before[len(before)-1] == "{" || before[len(before)-1] == "}":
		cands = sess.Symbols.PrefixResolve(word, eval.PrimitiveKind|eval.BinaryKind)
	case len(before) == 1 && before[0] == "set":
		for _, name := range opts.Names() {
			if strings.HasPrefix(name, word) {
				cands = append(cands, name)
			}
		}
	case len(before) == 1 && before[0] == "cd" && dirs != nil:
		for _, dir := range dirs() {
			if strings.HasPrefix(dir, word) {
				cands = append(cands, dir)
			} else if abbr := fsutil.TildeAbbr(dir); strings.HasPrefix(abbr, word) {
				cands = append(cands, abbr)
			}
		}
	}
	return head, cands, tail
}
