package notification

import "testing"

func TestDetectDesktopEnvironment(t *testing.T) {
	testCases := []struct {
		title    string
		env      map[string]string
		expected string
	}{
		{title: "GNOME", env: map[string]string{"XDG_CURRENT_DESKTOP": "GNOME"}, expected: "gnome"},
		{title: "Ubuntu session", env: map[string]string{"XDG_CURRENT_DESKTOP": "ubuntu:GNOME"}, expected: "gnome"},
		{title: "KDE", env: map[string]string{"XDG_CURRENT_DESKTOP": "KDE"}, expected: "kde"},
		{title: "Cinnamon", env: map[string]string{"XDG_CURRENT_DESKTOP": "X-Cinnamon"}, expected: "cinnamon"},
		{title: "Deepin", env: map[string]string{"XDG_CURRENT_DESKTOP": "Deepin"}, expected: "dde"},
		{title: "Desktop session fallback", env: map[string]string{"DESKTOP_SESSION": "xfce"}, expected: "xfce"},
		{title: "GNOME session id", env: map[string]string{"GNOME_DESKTOP_SESSION_ID": "this-is-deprecated"}, expected: "gnome"},
		{title: "Sway socket", env: map[string]string{"SWAYSOCK": "/run/user/1000/sway-ipc.sock"}, expected: "sway"},
		{title: "Nothing set", env: map[string]string{}, expected: "unknown"},
		{title: "Unrecognized", env: map[string]string{"XDG_CURRENT_DESKTOP": "Weird"}, expected: "unknown"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual := detectDesktopEnvironment(func(key string) string { return tt.env[key] })
			if actual != tt.expected {
				t.Errorf("unexpected desktop: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}
