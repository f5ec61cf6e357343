// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.tin.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"src.tin.sh/pkg/prog"
)

// Version identifies the version of tin. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "tin --version". It
// can be overridden when building tin.
var VersionSuffix = "-dev.unknown"

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version {
		return prog.ErrNotSuitable
	}
	fmt.Fprintf(fds[1], "tin %s%s (%s)\n", Version, VersionSuffix, runtime.Version())
	return nil
}
