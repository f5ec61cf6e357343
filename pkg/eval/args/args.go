// Package args implements the argument model shared by primitives and the
// executor.
//
// An Arg is one token of a command line. It is exactly one of:
//
//   - Text, a plain word;
//   - Block, a deferred sequence of source lines that is only executed when a
//     consumer decides to, which lets primitives implement control flow
//     without a separate syntax tree;
//   - Redir, a redirection spec.
//
// The set of kinds is closed. Consumers switch on the concrete type and panic
// on anything else, so that adding a kind forces every consumer to be
// revisited.
package args

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is one argument of a command line.
type Arg interface {
	isArg()
}

// Text is a plain text argument.
type Text string

// Block is a deferred block of source lines.
type Block []string

// Redir is a redirection spec, such as "2>err.log".
type Redir struct {
	// Fd is the file descriptor being redirected.
	Fd int
	// Op is one of "<", ">" and ">>".
	Op string
	// Target is the file name or, when prefixed with "&", the file descriptor
	// redirected to.
	Target string
}

func (Text) isArg()  {}
func (Block) isArg() {}
func (Redir) isArg() {}

func (r Redir) String() string {
	return strconv.Itoa(r.Fd) + r.Op + r.Target
}

// IsText reports whether a is a Text argument.
func IsText(a Arg) bool {
	_, ok := a.(Text)
	return ok
}

// IsBlock reports whether a is a Block argument.
func IsBlock(a Arg) bool {
	_, ok := a.(Block)
	return ok
}

// MustText returns the text of a Text argument. Supplying any other kind of
// argument is a programming error and panics.
func MustText(a Arg) string {
	if t, ok := a.(Text); ok {
		return string(t)
	}
	panic(fmt.Sprintf("argument %v is %T, not Text", a, a))
}

// MustBlock returns the lines of a Block argument. Supplying any other kind of
// argument is a programming error and panics.
func MustBlock(a Arg) []string {
	if b, ok := a.(Block); ok {
		return []string(b)
	}
	panic(fmt.Sprintf("argument %v is %T, not Block", a, a))
}

// Texts converts words to Text arguments.
func Texts(words ...string) []Arg {
	argv := make([]Arg, len(words))
	for i, word := range words {
		argv[i] = Text(word)
	}
	return argv
}

// Flatten converts arguments to plain text tokens, discarding their
// structure. A Text becomes itself, a Block becomes its lines, and a Redir
// becomes its string form.
func Flatten(argv []Arg) []string {
	var words []string
	for _, a := range argv {
		words = append(words, flattenOne(a)...)
	}
	return words
}

func flattenOne(a Arg) []string {
	switch a := a.(type) {
	case Text:
		return []string{string(a)}
	case Block:
		return append([]string(nil), a...)
	case Redir:
		return []string{a.String()}
	default:
		panic(fmt.Sprintf("unknown argument kind %T", a))
	}
}

// Repr returns a string representation of arguments for diagnostics, with
// blocks shown in braces.
func Repr(argv []Arg) string {
	var sb strings.Builder
	for i, a := range argv {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch a := a.(type) {
		case Text:
			sb.WriteString(string(a))
		case Block:
			sb.WriteString("{ ")
			sb.WriteString(strings.Join(a, "; "))
			sb.WriteString(" }")
		case Redir:
			sb.WriteString(a.String())
		default:
			panic(fmt.Sprintf("unknown argument kind %T", a))
		}
	}
	return sb.String()
}
