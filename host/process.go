package host

import "os"

// Process controls the running application process.
type Process interface {
	Exit(code int)
	Relaunch() error
}

type OSProcess struct{}

func (OSProcess) Exit(code int) {
	os.Exit(code)
}

// Relaunch restarts the current executable with the same arguments and
// environment. It only returns on failure.
func (OSProcess) Relaunch() error {
	return relaunch(os.Args, os.Environ())
}
