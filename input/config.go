package input

import (
	"encoding/json"
	"io/ioutil"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/exchange"
)

func (in *Input) hasBody() bool {
	return in.Raw != nil || len(in.Fields) > 0 || len(in.RawJSONFields) > 0
}

// RequestConfig turns the parsed command line into a pipeline call. Values
// given as @file are read here.
func (in *Input) RequestConfig() (exchange.RequestConfig, error) {
	params := make([]Field, 0, len(in.Parameters))
	for _, field := range in.Parameters {
		value, err := resolveFieldValue(field)
		if err != nil {
			return exchange.RequestConfig{}, err
		}
		params = append(params, Field{Name: field.Name, Value: value})
	}

	config := exchange.RequestConfig{
		Method: exchange.Method(in.Method),
		URL:    in.Target + encodeQuery(in.Target, params),
		OutURL: in.OutURL,
	}

	if len(in.Header) > 0 {
		config.Header = make(map[string]string, len(in.Header))
		for _, field := range in.Header {
			value, err := resolveFieldValue(field)
			if err != nil {
				return exchange.RequestConfig{}, err
			}
			config.Header[field.Name] = value
		}
	}

	data, err := in.buildData()
	if err != nil {
		return exchange.RequestConfig{}, err
	}
	config.Data = data
	return config, nil
}

func (in *Input) buildData() (interface{}, error) {
	if in.Raw != nil {
		return json.RawMessage(in.Raw), nil
	}
	if len(in.Fields) == 0 && len(in.RawJSONFields) == 0 {
		return nil, nil
	}

	obj := map[string]interface{}{}
	for _, field := range in.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		obj[field.Name] = value
	}
	for _, field := range in.RawJSONFields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		if !json.Valid([]byte(value)) {
			return nil, errors.Errorf("invalid JSON at '%s': %s", field.Name, value)
		}
		obj[field.Name] = json.RawMessage(value)
	}
	return obj, nil
}

func encodeQuery(target string, params []Field) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	separator := "?"
	if strings.Contains(target, "?") {
		separator = "&"
	}
	return separator + strings.Join(parts, "&")
}

func resolveFieldValue(field Field) (string, error) {
	if !field.IsFile {
		return field.Value, nil
	}
	b, err := ioutil.ReadFile(field.Value)
	if err != nil {
		return "", errors.Wrapf(err, "reading '%s'", field.Value)
	}
	return string(b), nil
}
