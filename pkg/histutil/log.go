package histutil

import (
	"fmt"
	"io"
	"strings"

	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[histutil] ")

// Log is the command history log of a session.
type Log struct {
	store Store
	size  func() int
}

var _ eval.History = (*Log)(nil)

// NewLog returns a Log over a Store. The size function is consulted on every
// Print for the maximum number of entries to print; a non-positive size
// prints everything.
func NewLog(s Store, size func() int) *Log {
	return &Log{s, size}
}

// Record adds a line to the history. Blank lines are not recorded.
func (l *Log) Record(line string) error {
	line = strings.TrimRight(line, "\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	_, err := l.store.AddCmd(line)
	if err != nil {
		logger.Println("failed to record command:", err)
	}
	return err
}

// Print writes the most recent entries to w, each with its sequence number.
func (l *Log) Print(w io.Writer) error {
	cmds, err := l.store.AllCmds()
	if err != nil {
		return err
	}
	if n := l.size(); n > 0 && len(cmds) > n {
		cmds = cmds[len(cmds)-n:]
	}
	for _, cmd := range cmds {
		if _, err := fmt.Fprintf(w, "%5d  %s\n", cmd.Seq, cmd.Text); err != nil {
			return err
		}
	}
	return nil
}

// Texts returns the text of all entries, oldest first.
func (l *Log) Texts() ([]string, error) {
	cmds, err := l.store.AllCmds()
	texts := make([]string, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.Text
	}
	return texts, err
}
