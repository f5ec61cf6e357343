// Package opts implements the registry of shell options.
//
// Options are named, typed settings that live outside the scope stack. They
// are read and written through the same names as variables, and take
// precedence over them.
package opts

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"src.tin.sh/pkg/eval"
)

// Names of options.
const (
	Debug      = "debug"
	AutoRehash = eval.AutoRehashOption
	Prompt     = "prompt"
	HistSize   = "histsize"
)

// ErrUnknownOption is returned when setting a name that is not an option.
var ErrUnknownOption = errors.New("unknown option")

type kind int

const (
	boolKind kind = iota
	intKind
	stringKind
)

type option struct {
	kind kind
	def  string
	desc string
}

var options = map[string]option{
	Debug:      {boolKind, "false", "trace dispatch of statements to stderr"},
	AutoRehash: {boolKind, "true", "rebuild the binary cache when a command is not found"},
	Prompt:     {stringKind, "tin> ", "prompt of the interactive mode"},
	HistSize:   {intKind, "1000", "number of entries printed by history"},
}

// Registry holds the current values of all options. Its zero value is not
// usable; create one with New.
type Registry struct {
	values map[string]string
}

var _ eval.Options = (*Registry)(nil)

// New returns a Registry with every option at its default value.
func New() *Registry {
	values := make(map[string]string, len(options))
	for name, opt := range options {
		values[name] = opt.def
	}
	return &Registry{values}
}

// IsOption reports whether name is an option.
func (r *Registry) IsOption(name string) bool {
	_, ok := options[name]
	return ok
}

// Get returns the current value of an option.
func (r *Registry) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set sets an option. An empty value restores the default. Boolean values
// are normalized to "true" or "false", and integer options only accept
// non-negative integers.
func (r *Registry) Set(name, value string) error {
	opt, ok := options[name]
	if !ok {
		return errors.Wrap(ErrUnknownOption, name)
	}
	if value == "" {
		r.values[name] = opt.def
		return nil
	}
	switch opt.kind {
	case boolKind:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Errorf("option %s: %q is not a boolean", name, value)
		}
		value = strconv.FormatBool(b)
	case intKind:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.Errorf("option %s: %q is not a non-negative integer", name, value)
		}
		value = strconv.Itoa(n)
	}
	r.values[name] = value
	return nil
}

// Int returns the value of an integer option.
func (r *Registry) Int(name string) int {
	n, _ := strconv.Atoi(r.values[name])
	return n
}

// Text returns the value of an option.
func (r *Registry) Text(name string) string {
	return r.values[name]
}

// Names returns the sorted names of all options.
func Names() []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description of an option.
func Describe(name string) string {
	return options[name].desc
}
