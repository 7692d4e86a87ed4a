package exchange

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"reflect"
	"testing"

	"github.com/rhchat/rhchat-desktop/version"
)

func TestBuildHTTPRequest(t *testing.T) {
	// Setup
	config := RequestConfig{
		Method: MethodPost,
		URL:    "/messages",
		Data:   map[string]interface{}{"hoge": "fuga"},
		Header: map[string]string{
			"X-Foo":        "fizz buzz",
			"Content-Type": "application/json",
		},
	}

	// Exercise
	actual, err := BuildHTTPRequest(context.Background(), "http://localhost:4000/messages", config)
	if err != nil {
		t.Fatalf("unexpected error: err=%v", err)
	}

	// Verify
	if actual.Method != "POST" {
		t.Errorf("unexpected method: expected=%v, actual=%v", "POST", actual.Method)
	}
	if actual.URL.String() != "http://localhost:4000/messages" {
		t.Errorf("unexpected URL: actual=%v", actual.URL)
	}
	expectedHeader := http.Header{
		"X-Foo":        []string{"fizz buzz"},
		"Content-Type": []string{"application/json"},
		"User-Agent":   []string{"rhchat/" + version.Current().String()},
	}
	if !reflect.DeepEqual(expectedHeader, actual.Header) {
		t.Errorf("unexpected header: expected=%v, actual=%v", expectedHeader, actual.Header)
	}
	expectedBody := `{"hoge": "fuga"}`
	actualBody := readAll(t, actual.Body)
	if !isEquivalentJSON(t, expectedBody, actualBody) {
		t.Errorf("unexpected body: expected=%v, actual=%v", expectedBody, actualBody)
	}
}

func TestBuildHTTPRequest_UnsupportedMethod(t *testing.T) {
	_, err := BuildHTTPRequest(context.Background(), "http://localhost/", RequestConfig{Method: "TRACE"})
	if err == nil {
		t.Fatal("expected error for unsupported method")
	}
}

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		title    string
		method   Method
		expected Method
	}{
		{title: "Empty defaults to GET", method: "", expected: MethodGet},
		{title: "Upper case", method: "PATCH", expected: MethodPatch},
		{title: "Lower case", method: "delete", expected: MethodDelete},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := parseMethod(tt.method)
			if err != nil {
				t.Fatalf("unexpected error: err=%v", err)
			}
			if actual != tt.expected {
				t.Errorf("unexpected method: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	testCases := []struct {
		title    string
		baseURL  string
		config   RequestConfig
		expected string
	}{
		{
			title:    "Relative path is appended verbatim",
			baseURL:  "http://example.com/api",
			config:   RequestConfig{URL: "/user/logout"},
			expected: "http://example.com/api/user/logout",
		},
		{
			title:    "No normalization of slashes",
			baseURL:  "http://example.com/api/",
			config:   RequestConfig{URL: "/user"},
			expected: "http://example.com/api//user",
		},
		{
			title:    "OutURL ignores base URL",
			baseURL:  "http://example.com/api",
			config:   RequestConfig{URL: "https://other.example.org/x?y=1", OutURL: true},
			expected: "https://other.example.org/x?y=1",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual := resolveURL(tt.baseURL, tt.config)
			if actual != tt.expected {
				t.Errorf("unexpected URL: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}

func TestMergeHeader(t *testing.T) {
	// Setup
	defaults := map[string]string{"A": "1"}
	perCall := map[string]string{"A": "2", "B": "3"}

	// Exercise
	merged := mergeHeader(defaults, perCall)

	// Verify
	expected := map[string]string{"A": "2", "B": "3"}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("unexpected header: expected=%v, actual=%v", expected, merged)
	}
	if defaults["A"] != "1" || len(defaults) != 1 {
		t.Errorf("defaults must not be modified: %v", defaults)
	}
}

func TestBuildHTTPBody_EmptyBody(t *testing.T) {
	actual, err := buildHTTPBody(RequestConfig{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := bodyTuple{}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("unexpected body tuple: expected=%+v, actual=%+v", expected, actual)
	}
}

func TestBuildHTTPBody_TypedNilData(t *testing.T) {
	var user *struct{ Name string }
	testCases := []struct {
		title string
		data  interface{}
	}{
		{title: "Nil map", data: map[string]string(nil)},
		{title: "Nil slice", data: []int(nil)},
		{title: "Nil pointer", data: user},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := buildHTTPBody(RequestConfig{Data: tt.data})
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if !reflect.DeepEqual(actual, bodyTuple{}) {
				t.Errorf("expected no body, got %+v", actual)
			}
		})
	}
}

func TestBuildHTTPBody_EmptyMapIsSent(t *testing.T) {
	actual, err := buildHTTPBody(RequestConfig{Data: map[string]string{}})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if body := readAll(t, actual.body); body != "{}" {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestBuildHTTPBody_JSONBody(t *testing.T) {
	// Setup
	config := RequestConfig{
		Data: struct {
			UserName string   `json:"userName"`
			Tags     []string `json:"tags"`
		}{UserName: "alice", Tags: []string{"a", "b"}},
	}

	// Exercise
	bodyTuple, err := buildHTTPBody(config)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expectedBody := `{"userName": "alice", "tags": ["a", "b"]}`
	actualBody := readAll(t, bodyTuple.body)
	if !isEquivalentJSON(t, expectedBody, actualBody) {
		t.Errorf("unexpected body: expected=%s, actual=%s", expectedBody, actualBody)
	}
	if bodyTuple.contentLength != int64(len(actualBody)) {
		t.Errorf("invalid content length: len(body)=%v, actual=%v", len(actualBody), bodyTuple.contentLength)
	}
}

func TestBuildHTTPBody_Unmarshalable(t *testing.T) {
	_, err := buildHTTPBody(RequestConfig{Data: make(chan int)})
	if err == nil {
		t.Fatal("expected error for a value that cannot be encoded")
	}
}

func isEquivalentJSON(t *testing.T, json1, json2 string) bool {
	var obj1, obj2 interface{}
	if err := json.Unmarshal([]byte(json1), &obj1); err != nil {
		t.Fatalf("failed to unmarshal json1: %v", err)
	}
	if err := json.Unmarshal([]byte(json2), &obj2); err != nil {
		t.Fatalf("failed to unmarshal json2: %v", err)
	}
	return reflect.DeepEqual(obj1, obj2)
}

func readAll(t *testing.T, reader io.Reader) string {
	b, err := ioutil.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read all: %s", err)
	}
	return string(b)
}
