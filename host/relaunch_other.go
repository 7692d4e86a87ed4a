//go:build !unix

package host

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// relaunch starts a fresh copy of the executable, then exits.
func relaunch(args, env []string) error {
	executable, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}
	cmd := exec.Command(executable, args[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting '%s'", executable)
	}
	os.Exit(0)
	return nil
}
