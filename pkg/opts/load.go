package opts

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML mapping from option names to values and sets each
// option. Scalars of any type are accepted and converted to text; null
// restores the default. All invalid entries are reported together, and the
// valid ones are still applied.
func (r *Registry) Load(rd io.Reader) error {
	var raw map[string]any
	err := yaml.NewDecoder(rd).Decode(&raw)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "parse options")
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		value, err := scalarString(raw[name])
		if err == nil {
			err = r.Set(name, value)
		} else {
			err = errors.Wrapf(err, "option %s", name)
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}

// LoadFile is like Load, but reads from a file.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(r.Load(f), path)
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, int, float64:
		return fmt.Sprint(v), nil
	default:
		return "", errors.Errorf("value of type %T is not a scalar", v)
	}
}
