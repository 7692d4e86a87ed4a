package notification

import (
	"context"
	"os/exec"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/pkg/errors"
)

// Sender delivers a notification through the platform's native API.
type Sender interface {
	Send(title, body, icon string) error
}

type beeepSender struct{}

func (beeepSender) Send(title, body, icon string) error {
	return errors.Wrap(beeep.Notify(title, body, icon), "sending desktop notification")
}

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "running %s: %s", name, strings.TrimSpace(string(out)))
	}
	return nil
}
