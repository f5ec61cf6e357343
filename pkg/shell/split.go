package shell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"src.tin.sh/pkg/eval/args"
)

// The line splitter is deliberately simple. A line is split on whitespace;
// there is no quoting. A word starting with "#" starts a comment that extends
// to the end of the line. A line whose last word is "{" opens a block, which
// extends to the matching line whose first word is "}". The lines in between
// are kept verbatim as a Block argument of the statement and only split when
// the block is run. A closing line of "} {" opens another block for the same
// statement.

// A statement: its arguments, including attached blocks, and the number of
// the line it starts at, counting from 1.
type statement struct {
	argv []args.Arg
	line int
}

// SyntaxError is returned when the braces of a piece of code don't balance.
type SyntaxError struct {
	// Line number, counting from 1.
	Line int
	Msg  string
	// Whether the error is caused by the code ending within a block. More
	// input may fix such an error.
	Unclosed bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// SplitLines splits code into lines.
func SplitLines(code string) []string {
	code = strings.TrimSuffix(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	if code == "" {
		return nil
	}
	return strings.Split(code, "\n")
}

// Check returns the first syntax error in code, or nil.
func Check(code string) error {
	_, err := parse(SplitLines(code))
	return err
}

func parse(lines []string) ([]statement, error) {
	var stmts []statement
	for i := 0; i < len(lines); i++ {
		stmt := statement{line: i + 1}
		words := fields(lines[i])
		if len(words) > 0 && words[0] == "}" {
			return nil, &SyntaxError{Line: i + 1, Msg: "unexpected }"}
		}
		for len(words) > 0 && words[len(words)-1] == "{" {
			stmt.argv = append(stmt.argv, wordArgs(words[:len(words)-1])...)
			end, err := findClose(lines, i)
			if err != nil {
				return nil, err
			}
			stmt.argv = append(stmt.argv, args.Block(append([]string(nil), lines[i+1:end]...)))
			i = end
			words = fields(lines[end])[1:]
			if len(words) > 0 && (len(words) > 1 || words[0] != "{") {
				return nil, &SyntaxError{Line: end + 1, Msg: "unexpected text after }"}
			}
		}
		stmt.argv = append(stmt.argv, wordArgs(words)...)
		if len(stmt.argv) > 0 {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// Returns the index of the line closing the block opened at lines[open].
func findClose(lines []string, open int) (int, error) {
	depth := 1
	for i := open + 1; i < len(lines); i++ {
		words := fields(lines[i])
		if len(words) == 0 {
			continue
		}
		if words[0] == "}" {
			depth--
			if depth == 0 {
				return i, nil
			}
		}
		if words[len(words)-1] == "{" {
			depth++
		}
	}
	return 0, &SyntaxError{Line: open + 1, Msg: "unclosed block", Unclosed: true}
}

func fields(line string) []string {
	words := strings.Fields(line)
	for i, word := range words {
		if strings.HasPrefix(word, "#") {
			return words[:i]
		}
	}
	return words
}

var redirPattern = regexp.MustCompile(`^([0-9]*)(>>|>|<)(.+)$`)

func wordArgs(words []string) []args.Arg {
	argv := make([]args.Arg, len(words))
	for i, word := range words {
		argv[i] = wordArg(word)
	}
	return argv
}

func wordArg(word string) args.Arg {
	m := redirPattern.FindStringSubmatch(word)
	if m == nil {
		return args.Text(word)
	}
	fd := 1
	if m[2] == "<" {
		fd = 0
	}
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Too many digits.
			return args.Text(word)
		}
		fd = n
	}
	return args.Redir{Fd: fd, Op: m[2], Target: m[3]}
}
