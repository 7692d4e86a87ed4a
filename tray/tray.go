// Package tray builds the application's action menu: bring the main window
// forward, restart, and exit after signing the user out.
package tray

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/host"
	"github.com/rhchat/rhchat-desktop/notification"
)

const Tooltip = "RH-Chat"

const logoutFailed = "logout failed"

const (
	ItemShowMainWindow = "showMainWindow"
	ItemRestart        = "Restart"
	ItemExit           = "Exit"
)

type Item struct {
	ID     string
	Text   string
	Action func(ctx context.Context) error
}

type Menu struct {
	Tooltip string
	Items   []Item
}

type Logouter interface {
	Logout(ctx context.Context) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, content notification.Content) error
}

type Deps struct {
	Window   host.Window
	Process  host.Process
	Session  Logouter
	Notifier Notifier
	Logger   log.Logger
}

func New(deps Deps) *Menu {
	if deps.Logger == nil {
		deps.Logger = log.NewNopLogger()
	}
	deps.Logger = log.With(deps.Logger, "component", "tray")

	return &Menu{
		Tooltip: Tooltip,
		Items: []Item{
			{ID: ItemShowMainWindow, Text: "Show main window", Action: showMainWindow(deps.Window)},
			{ID: ItemRestart, Text: "Restart", Action: restart(deps.Process)},
			{ID: ItemExit, Text: "Exit", Action: exit(deps)},
		},
	}
}

// Activate runs the action of the item with the given ID.
func (m *Menu) Activate(ctx context.Context, id string) error {
	for _, item := range m.Items {
		if item.ID == id {
			return item.Action(ctx)
		}
	}
	return errors.Errorf("unknown menu item: %s", id)
}

// Click is what a primary click on the tray icon does.
func (m *Menu) Click(ctx context.Context) error {
	return m.Activate(ctx, ItemShowMainWindow)
}

func showMainWindow(window host.Window) func(context.Context) error {
	return func(ctx context.Context) error {
		visible, err := window.IsVisible(ctx)
		if err != nil {
			return errors.Wrap(err, "querying window visibility")
		}
		if !visible {
			if err := window.Show(ctx); err != nil {
				return errors.Wrap(err, "showing window")
			}
		} else {
			minimized, err := window.IsMinimized(ctx)
			if err != nil {
				return errors.Wrap(err, "querying window state")
			}
			if minimized {
				if err := window.Unminimize(ctx); err != nil {
					return errors.Wrap(err, "restoring window")
				}
			}
		}
		return errors.Wrap(window.SetFocus(ctx), "focusing window")
	}
}

func restart(process host.Process) func(context.Context) error {
	return func(ctx context.Context) error {
		return errors.Wrap(process.Relaunch(), "relaunching")
	}
}

func exit(deps Deps) func(context.Context) error {
	return func(ctx context.Context) error {
		defer deps.Process.Exit(0)

		content := notification.Content{Icon: notification.Success}
		message, err := deps.Session.Logout(ctx)
		if err != nil {
			level.Warn(deps.Logger).Log("msg", "logout failed", "err", err)
			content = notification.Content{Icon: notification.Error, Body: errorMessage(err)}
		} else {
			content.Body = message
		}

		if err := deps.Notifier.Send(ctx, content); err != nil {
			level.Warn(deps.Logger).Log("msg", "failed to notify", "err", err)
		}
		return nil
	}
}

func errorMessage(err error) string {
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return logoutFailed
}
