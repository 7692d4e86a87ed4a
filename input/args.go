package input

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reMethod          = regexp.MustCompile(`^[a-zA-Z]+$`)
	reHeaderFieldName = regexp.MustCompile("^[-!#$%&'*+.^_|~a-zA-Z0-9]+$")
	reScheme          = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
)

type itemType int

const (
	unknownItem itemType = iota
	httpHeaderItem
	urlParameterItem
	dataFieldItem
	rawJSONFieldItem
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

type state struct {
	stdinConsumed bool
}

// ParseArgs parses "[METHOD] PATH [ITEM...]".
func ParseArgs(args []string, stdin io.Reader, options *Options) (*Input, error) {
	var argMethod string
	var argTarget string
	var argItems []string
	switch len(args) {
	case 0:
		return nil, newUsageError("PATH is required")
	case 1:
		argTarget = args[0]
	default:
		if reMethod.MatchString(args[0]) {
			argMethod = args[0]
			argTarget = args[1]
			argItems = args[2:]
		} else {
			argTarget = args[0]
			argItems = args[1:]
		}
	}

	in := Input{}
	state := state{}

	target, outURL, err := parseTarget(argTarget)
	if err != nil {
		return nil, err
	}
	in.Target = target
	in.OutURL = outURL

	for _, arg := range argItems {
		if err := parseItem(arg, stdin, &state, &in); err != nil {
			return nil, err
		}
	}
	if options.ReadStdin && !state.stdinConsumed {
		if len(in.Fields) > 0 || len(in.RawJSONFields) > 0 {
			return nil, errors.New("request body (from stdin) and request item (key=value) cannot be mixed")
		}
		in.Raw, err = ioutil.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}
		if !json.Valid(in.Raw) {
			return nil, errors.New("request body (from stdin) is not valid JSON")
		}
		state.stdinConsumed = true
	}

	if argMethod != "" {
		in.Method = strings.ToUpper(argMethod)
	} else {
		in.Method = guessMethod(&in)
	}

	return &in, nil
}

func guessMethod(in *Input) string {
	if in.hasBody() {
		return "POST"
	}
	return "GET"
}

// parseTarget decides whether s is a path for the base URL or an absolute
// URL. ":8080/hello" is shorthand for "http://localhost:8080/hello".
func parseTarget(s string) (string, bool, error) {
	if s == "" {
		return "", false, newUsageError("PATH must not be empty")
	}
	if strings.HasPrefix(s, ":") {
		s = "http://localhost" + s
	}
	if !reScheme.MatchString(s) {
		return s, false, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), true, nil
}

func parseItem(s string, stdin io.Reader, state *state, in *Input) error {
	itemType, name, value := splitItem(s)
	switch itemType {
	case dataFieldItem:
		field, err := parseField(name, value, stdin, state)
		if err != nil {
			return err
		}
		in.Fields = append(in.Fields, field)
	case rawJSONFieldItem:
		field, err := parseField(name, value, stdin, state)
		if err != nil {
			return err
		}
		if !field.IsFile && !json.Valid([]byte(field.Value)) {
			return errors.Errorf("invalid JSON at '%s': %s", name, field.Value)
		}
		in.RawJSONFields = append(in.RawJSONFields, field)
	case httpHeaderItem:
		if !isValidHeaderFieldName(name) {
			return errors.Errorf("invalid header field name: %s", name)
		}
		field, err := parseField(name, value, stdin, state)
		if err != nil {
			return err
		}
		in.Header = append(in.Header, field)
	case urlParameterItem:
		field, err := parseField(name, value, stdin, state)
		if err != nil {
			return err
		}
		in.Parameters = append(in.Parameters, field)
	default:
		return errors.Errorf("unknown request item: %s", s)
	}
	return nil
}

func splitItem(s string) (itemType, string, string) {
	for i, c := range s {
		switch c {
		case ':':
			if i+1 < len(s) && s[i+1] == '=' {
				return rawJSONFieldItem, s[:i], s[i+2:]
			} else {
				return httpHeaderItem, s[:i], s[i+1:]
			}
		case '=':
			if i+1 < len(s) && s[i+1] == '=' {
				return urlParameterItem, s[:i], s[i+2:]
			} else {
				return dataFieldItem, s[:i], s[i+1:]
			}
		}
	}
	return unknownItem, "", ""
}

func isValidHeaderFieldName(s string) bool {
	return reHeaderFieldName.MatchString(s)
}

func parseField(name, value string, stdin io.Reader, state *state) (Field, error) {
	if strings.HasPrefix(value, "@") {
		if value[1:] == "-" {
			b, err := ioutil.ReadAll(stdin)
			if err != nil {
				return Field{}, errors.Wrapf(err, "reading stdin for '%s'", name)
			}
			state.stdinConsumed = true
			return Field{Name: name, Value: string(b), IsFile: false}, nil
		} else {
			return Field{Name: name, Value: value[1:], IsFile: true}, nil
		}
	} else {
		return Field{Name: name, Value: value, IsFile: false}, nil
	}
}
