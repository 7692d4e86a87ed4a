package flags

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/input"
	"github.com/rhchat/rhchat-desktop/output"
)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	ConfigPath string
	LogLevel   string
	Icon       string

	Version  bool
	Licenses bool
	Help     bool

	InputOptions  input.Options
	OutputOptions output.Options
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// Parse reads the global flags. args[0] is the program name; parsing stops
// at the command name.
func Parse(args []string) ([]string, FlagSet, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) ([]string, FlagSet, *OptionSet, error) {
	optionSet := &OptionSet{}
	var ignoreStdin bool
	var verbose bool
	var pretty bool
	var noColor bool
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print

	flagSet := getopt.New()
	flagSet.SetProgram("rhchat")
	flagSet.SetParameters("COMMAND [ARGS...]")
	flagSet.StringVarLong(&optionSet.ConfigPath, "config", 'c', "path to the YAML config file", "FILE")
	flagSet.StringVarLong(&optionSet.LogLevel, "log-level", 0, "debug, info, warn or error (overrides the config file)", "LEVEL")
	flagSet.BoolVarLong(&verbose, "verbose", 'v', "same as --log-level=debug")
	flagSet.StringVarLong(&optionSet.Icon, "icon", 'i', "icon of the notify command: success, warning, error or info", "ICON")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output of the request command should contain (hb)")
	flagSet.BoolVarLong(&pretty, "pretty", 0, "format JSON response bodies even when stdout is not a terminal")
	flagSet.BoolVarLong(&noColor, "no-color", 0, "disable colored output")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.BoolVarLong(&optionSet.OutputOptions.Download, "download", 'd', "save the response body to a file")
	flagSet.StringVarLong(&optionSet.OutputOptions.OutputFile, "output", 'o', "file the downloaded body is written to", "FILE")
	flagSet.BoolVarLong(&optionSet.OutputOptions.Overwrite, "overwrite", 0, "overwrite an existing download")
	flagSet.BoolVarLong(&optionSet.Version, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.Licenses, "licenses", 0, "print licenses of dependencies and exit")
	flagSet.BoolVarLong(&optionSet.Help, "help", 'h', "print this help and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, nil, nil, errors.Wrap(err, "parsing flags")
	}

	if verbose && optionSet.LogLevel == "" {
		optionSet.LogLevel = "debug"
	}

	// Check stdin
	if !ignoreStdin && !terminalInfo.stdinIsTerminal {
		optionSet.InputOptions.ReadStdin = true
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, terminalInfo, &optionSet.OutputOptions); err != nil {
		return nil, nil, nil, err
	}

	optionSet.OutputOptions.EnableFormat = pretty || terminalInfo.stdoutIsTerminal
	optionSet.OutputOptions.EnableColor = !noColor && terminalInfo.stdoutIsTerminal

	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, terminalInfo terminalInfo, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if terminalInfo.stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
	} else {
		for _, c := range printFlag {
			switch c {
			case 'h':
				outputOptions.PrintResponseHeader = true
			case 'b':
				outputOptions.PrintResponseBody = true
			default:
				return errors.Errorf("Invalid char in --print value (must be consist of hb): %c", c)
			}
		}
	}
	return nil
}
