package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// This type is the interface that the line editor has to satisfy.
type editor interface {
	// ReadLine reads one line, without the line ending. It returns
	// errAborted if the user aborts the line and io.EOF at the end of input.
	ReadLine(prompt string) (string, error)
	Close() error
}

var errAborted = errors.New("aborted")

// A line editor for terminals.
type lineEditor struct {
	st *liner.State
}

// Creates a lineEditor with the given history, completing words with the
// given function.
func newLineEditor(history []string, complete liner.WordCompleter) *lineEditor {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetWordCompleter(complete)
	for _, line := range history {
		st.AppendHistory(line)
	}
	return &lineEditor{st}
}

func (ed *lineEditor) ReadLine(prompt string) (string, error) {
	line, err := ed.st.Prompt(prompt)
	switch err {
	case nil:
		if strings.TrimSpace(line) != "" {
			ed.st.AppendHistory(line)
		}
		return line, nil
	case liner.ErrPromptAborted:
		return "", errAborted
	default:
		return line, err
	}
}

func (ed *lineEditor) Close() error {
	return ed.st.Close()
}

// A line editor that reads from a non-terminal. It shares its buffer with the
// reader the session reads stdin from, so that statements reading stdin see
// the lines following them.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newMinEditor(in *bufio.Reader, out io.Writer) *minEditor {
	return &minEditor{in, out}
}

func (ed *minEditor) ReadLine(prompt string) (string, error) {
	fmt.Fprint(ed.out, prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (ed *minEditor) Close() error { return nil }

