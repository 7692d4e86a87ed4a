package notification

type Icon int

const (
	Success Icon = iota
	Warning
	Error
	Info
)

func (i Icon) String() string {
	switch i {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// ParseIcon maps "success", "warning", "error" and "info" to their Icon.
func ParseIcon(s string) (Icon, bool) {
	for _, icon := range []Icon{Success, Warning, Error, Info} {
		if icon.String() == s {
			return icon, true
		}
	}
	return Info, false
}

// IconSet holds the resource handed to the notification backend for each icon.
type IconSet struct {
	Success string
	Warning string
	Error   string
	Info    string
}

var (
	linuxIcons = IconSet{
		Success: "dialog-ok",
		Warning: "dialog-warning",
		Error:   "dialog-error",
		Info:    "dialog-information",
	}
	bundledIcons = IconSet{
		Success: "assets/success.png",
		Warning: "assets/warning.png",
		Error:   "assets/error.png",
		Info:    "assets/info.png",
	}
)

// IconsFor returns icon-theme names on linux and bundled image assets on
// every other platform.
func IconsFor(goos string) IconSet {
	if goos == "linux" {
		return linuxIcons
	}
	return bundledIcons
}

func (s IconSet) Resolve(icon Icon) string {
	switch icon {
	case Success:
		return s.Success
	case Warning:
		return s.Warning
	case Error:
		return s.Error
	default:
		return s.Info
	}
}
