//go:build linux

package notification

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const notificationsService = "org.freedesktop.Notifications"

// busPermission treats notifications as granted when the session bus has a
// notification server. Requesting permission asks the bus to activate one.
type busPermission struct {
	connect func(ctx context.Context) (*dbus.Conn, error)
}

func newPlatformPermission() Permission {
	return &busPermission{
		connect: func(ctx context.Context) (*dbus.Conn, error) {
			return dbus.ConnectSessionBus(dbus.WithContext(ctx))
		},
	}
}

func (b *busPermission) IsGranted(ctx context.Context) (bool, error) {
	conn, err := b.connect(ctx)
	if err != nil {
		return false, errors.Wrap(err, "connecting to session bus")
	}
	defer conn.Close()

	var hasOwner bool
	err = conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, notificationsService).
		Store(&hasOwner)
	if err != nil {
		return false, errors.Wrapf(err, "looking up owner of %s", notificationsService)
	}
	return hasOwner, nil
}

func (b *busPermission) Request(ctx context.Context) (PermissionState, error) {
	conn, err := b.connect(ctx)
	if err != nil {
		return PermissionDenied, errors.Wrap(err, "connecting to session bus")
	}
	defer conn.Close()

	var result uint32
	err = conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.StartServiceByName", 0, notificationsService, uint32(0)).
		Store(&result)
	if err != nil {
		return PermissionDenied, errors.Wrapf(err, "starting %s", notificationsService)
	}
	return PermissionGranted, nil
}
