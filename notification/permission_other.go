//go:build !linux

package notification

import "context"

// Outside linux the native backend manages its own consent.
type grantedPermission struct{}

func newPlatformPermission() Permission {
	return grantedPermission{}
}

func (grantedPermission) IsGranted(ctx context.Context) (bool, error) {
	return true, nil
}

func (grantedPermission) Request(ctx context.Context) (PermissionState, error) {
	return PermissionGranted, nil
}
