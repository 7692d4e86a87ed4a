// Package host holds the application-shell capabilities the tray calls into.
package host

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Window is the application's main window.
type Window interface {
	IsVisible(ctx context.Context) (bool, error)
	Show(ctx context.Context) error
	IsMinimized(ctx context.Context) (bool, error)
	Unminimize(ctx context.Context) error
	SetFocus(ctx context.Context) error
}

// HeadlessWindow stands in for the main window when the process runs
// without one. It tracks visibility in memory and logs each transition.
type HeadlessWindow struct {
	logger    log.Logger
	visible   bool
	minimized bool
	focused   bool
}

func NewHeadlessWindow(logger log.Logger) *HeadlessWindow {
	return &HeadlessWindow{logger: log.With(logger, "component", "window")}
}

func (w *HeadlessWindow) IsVisible(ctx context.Context) (bool, error) {
	return w.visible, nil
}

func (w *HeadlessWindow) Show(ctx context.Context) error {
	w.visible = true
	level.Info(w.logger).Log("msg", "main window shown")
	return nil
}

func (w *HeadlessWindow) IsMinimized(ctx context.Context) (bool, error) {
	return w.minimized, nil
}

func (w *HeadlessWindow) Minimize() {
	w.minimized = true
}

func (w *HeadlessWindow) Unminimize(ctx context.Context) error {
	w.minimized = false
	level.Info(w.logger).Log("msg", "main window restored")
	return nil
}

func (w *HeadlessWindow) SetFocus(ctx context.Context) error {
	w.focused = true
	level.Info(w.logger).Log("msg", "main window focused")
	return nil
}

func (w *HeadlessWindow) Focused() bool {
	return w.focused
}
