package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "beeep",
		LicenseName: "BSD License",
		Link:        "https://github.com/gen2brain/beeep/blob/master/LICENSE",
	},
	{
		ModuleName:  "dbus",
		LicenseName: "BSD License",
		Link:        "https://github.com/godbus/dbus/blob/master/LICENSE",
	},
	{
		ModuleName:  "bubbletea",
		LicenseName: "MIT License",
		Link:        "https://github.com/charmbracelet/bubbletea/blob/master/LICENSE",
	},
	{
		ModuleName:  "lipgloss",
		LicenseName: "MIT License",
		Link:        "https://github.com/charmbracelet/lipgloss/blob/master/LICENSE",
	},
	{
		ModuleName:  "bubbles",
		LicenseName: "MIT License",
		Link:        "https://github.com/charmbracelet/bubbles/blob/master/LICENSE",
	},
	{
		ModuleName:  "chi",
		LicenseName: "MIT License",
		Link:        "https://github.com/go-chi/chi/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-kit/log",
		LicenseName: "MIT License",
		Link:        "https://github.com/go-kit/log/blob/main/LICENSE",
	},
	{
		ModuleName:  "uuid",
		LicenseName: "BSD License",
		Link:        "https://github.com/google/uuid/blob/master/LICENSE",
	},
	{
		ModuleName:  "yaml.v3",
		LicenseName: "MIT License / Apache License",
		Link:        "https://github.com/go-yaml/yaml/blob/v3/LICENSE",
	},
	{
		ModuleName:  "x/crypto",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/crypto/+/master:LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
