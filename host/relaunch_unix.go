//go:build unix

package host

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

var (
	executablePath = os.Executable
	execProcess    = syscall.Exec
)

// relaunch replaces the process image, so the PID, process group and
// controlling terminal stay the same.
func relaunch(args, env []string) error {
	executable, err := executablePath()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}
	if err := execProcess(executable, args, env); err != nil {
		return errors.Wrapf(err, "executing '%s'", executable)
	}
	return nil
}
