package notification

import (
	"os"
	"strings"
)

const (
	DesktopGnome   = "gnome"
	DesktopUnknown = "unknown"
)

// desktopNames maps lower-cased XDG_CURRENT_DESKTOP entries to the names
// reported by DetectDesktopEnvironment.
var desktopNames = map[string]string{
	"kde":             "kde",
	"plasma":          "kde",
	"gnome":           "gnome",
	"gnome-classic":   "gnome",
	"gnome-flashback": "gnome",
	"ubuntu":          "gnome",
	"mate":            "mate",
	"xfce":            "xfce",
	"x-cinnamon":      "cinnamon",
	"cinnamon":        "cinnamon",
	"unity":           "unity",
	"cosmic":          "cosmic",
	"lxde":            "lxde",
	"lxqt":            "lxqt",
	"enlightenment":   "enlightenment",
	"deepin":          "dde",
	"dde":             "dde",
	"hyprland":        "hyprland",
	"trinity":         "tde",
	"sway":            "sway",
	"rox":             "rox",
	"razor":           "razor",
	"pantheon":        "pantheon",
	"ede":             "ede",
	"endless":         "endless",
}

// DetectDesktopEnvironment identifies the running desktop environment from
// the process environment. It returns DesktopUnknown when nothing matches.
func DetectDesktopEnvironment() string {
	return detectDesktopEnvironment(os.Getenv)
}

func detectDesktopEnvironment(getenv func(string) string) string {
	for _, entry := range strings.Split(getenv("XDG_CURRENT_DESKTOP"), ":") {
		if name, ok := desktopNames[strings.ToLower(strings.TrimSpace(entry))]; ok {
			return name
		}
	}

	session := strings.ToLower(getenv("DESKTOP_SESSION"))
	if name, ok := desktopNames[session]; ok {
		return name
	}
	if strings.HasPrefix(session, "cosmic") {
		return "cosmic"
	}

	switch {
	case getenv("GNOME_DESKTOP_SESSION_ID") != "":
		return DesktopGnome
	case getenv("KDE_FULL_SESSION") != "":
		return "kde"
	case getenv("MATE_DESKTOP_SESSION_ID") != "":
		return "mate"
	case getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		return "hyprland"
	case getenv("SWAYSOCK") != "":
		return "sway"
	}
	return DesktopUnknown
}
