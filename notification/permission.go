package notification

import "context"

type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionDefault PermissionState = "default"
)

// Permission is the host's notification permission API. The state is owned
// by the host and queried on every dispatch.
type Permission interface {
	IsGranted(ctx context.Context) (bool, error)
	Request(ctx context.Context) (PermissionState, error)
}

// NewPermission returns the permission checker for the current platform.
func NewPermission() Permission {
	return newPlatformPermission()
}
