package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/version"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// RequestConfig describes a single call made through a Client.
type RequestConfig struct {
	Method Method
	URL    string
	Data   interface{}
	Header map[string]string
	// OutURL sends URL as-is instead of appending it to the base URL.
	OutURL bool
}

func BuildHTTPRequest(ctx context.Context, targetURL string, config RequestConfig) (*http.Request, error) {
	method, err := parseMethod(config.Method)
	if err != nil {
		return nil, err
	}

	bodyTuple, err := buildHTTPBody(config)
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, string(method), targetURL, bodyTuple.body)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for '%s'", targetURL)
	}
	r.ContentLength = bodyTuple.contentLength
	r.Header = buildHTTPHeader(config)
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", "rhchat/"+version.Current().String())
	}
	return r, nil
}

func parseMethod(m Method) (Method, error) {
	if m == "" {
		return MethodGet, nil
	}
	method := Method(strings.ToUpper(string(m)))
	switch method {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return method, nil
	default:
		return "", errors.Errorf("unsupported method: %s", m)
	}
}

func resolveURL(baseURL string, config RequestConfig) string {
	if config.OutURL {
		return config.URL
	}
	return baseURL + config.URL
}

// mergeHeader returns a new map holding defaults overlaid by perCall.
func mergeHeader(defaults, perCall map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(perCall))
	for name, value := range defaults {
		merged[name] = value
	}
	for name, value := range perCall {
		merged[name] = value
	}
	return merged
}

func buildHTTPHeader(config RequestConfig) http.Header {
	names := make([]string, 0, len(config.Header))
	for name := range config.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(http.Header)
	for _, name := range names {
		header.Set(name, config.Header[name])
	}
	return header
}

// isNil also reports typed nils such as map[string]string(nil).
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

type bodyTuple struct {
	body          io.ReadCloser
	contentLength int64
}

func buildHTTPBody(config RequestConfig) (bodyTuple, error) {
	if isNil(config.Data) {
		return bodyTuple{}, nil
	}
	body, err := json.Marshal(config.Data)
	if err != nil {
		return bodyTuple{}, errors.Wrap(err, "marshaling JSON of HTTP body")
	}
	return bodyTuple{
		body:          ioutil.NopCloser(bytes.NewReader(body)),
		contentLength: int64(len(body)),
	}, nil
}
