// Package notification delivers user-facing desktop notifications, choosing
// between the native notification API and a notify-send invocation based on
// the desktop environment.
package notification

import (
	"context"
	"runtime"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultTitle  = "RH-Chat"
	notifyCommand = "notify-send"
)

type Content struct {
	Icon Icon
	Body string
}

type Dispatcher struct {
	title      string
	icons      IconSet
	detect     func() string
	permission Permission
	sender     Sender
	runner     Runner
	logger     log.Logger

	desktopOnce sync.Once
	desktop     string
}

type Option func(*Dispatcher)

func WithTitle(title string) Option {
	return func(d *Dispatcher) {
		d.title = title
	}
}

func WithIcons(icons IconSet) Option {
	return func(d *Dispatcher) {
		d.icons = icons
	}
}

// WithDesktopDetector replaces DetectDesktopEnvironment. The detector is
// called at most once per Dispatcher.
func WithDesktopDetector(detect func() string) Option {
	return func(d *Dispatcher) {
		d.detect = detect
	}
}

func WithPermission(permission Permission) Option {
	return func(d *Dispatcher) {
		d.permission = permission
	}
}

func WithSender(sender Sender) Option {
	return func(d *Dispatcher) {
		d.sender = sender
	}
}

func WithRunner(runner Runner) Option {
	return func(d *Dispatcher) {
		d.runner = runner
	}
}

func WithLogger(logger log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = log.With(logger, "component", "notification")
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		title:  DefaultTitle,
		icons:  IconsFor(runtime.GOOS),
		detect: DetectDesktopEnvironment,
		sender: beeepSender{},
		runner: execRunner{},
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.permission == nil {
		d.permission = NewPermission()
	}
	return d
}

// DesktopEnvironment returns the desktop environment, detecting it on the
// first call only.
func (d *Dispatcher) DesktopEnvironment() string {
	d.desktopOnce.Do(func() {
		d.desktop = d.detect()
		level.Debug(d.logger).Log("msg", "detected desktop environment", "desktop", d.desktop)
	})
	return d.desktop
}

// Send blocks until the notification has been handed to the backend. On
// gnome it runs notify-send with critical urgency and never consults the
// permission API. Elsewhere it asks for permission when needed and drops the
// notification without error if permission is denied.
func (d *Dispatcher) Send(ctx context.Context, content Content) error {
	icon := d.icons.Resolve(content.Icon)

	if d.DesktopEnvironment() == DesktopGnome {
		return d.runner.Run(ctx, notifyCommand, "-u", "critical", "-i", icon, d.title, content.Body)
	}

	granted, err := d.permission.IsGranted(ctx)
	if err != nil {
		level.Debug(d.logger).Log("msg", "permission query failed", "err", err)
		granted = false
	}
	if !granted {
		state, err := d.permission.Request(ctx)
		if err != nil {
			level.Debug(d.logger).Log("msg", "permission request failed", "err", err)
		}
		granted = err == nil && state == PermissionGranted
	}
	if !granted {
		level.Info(d.logger).Log("msg", "notification permission denied, dropping notification", "icon", content.Icon)
		return nil
	}

	return d.sender.Send(d.title, content.Body, icon)
}
