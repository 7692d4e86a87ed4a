package exchange

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func newTestClient(t *testing.T, ts *httptest.Server, options Options) *Client {
	t.Helper()
	if options.BaseURL == "" {
		options.BaseURL = ts.URL
	}
	client, err := NewClient(options)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	return client
}

func TestClient_Request_ConcatenatesBaseURL(t *testing.T) {
	// Setup
	var receivedPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{BaseURL: ts.URL + "/api"})

	// Exercise
	resp, err := client.Request(context.Background(), RequestConfig{URL: "/user/logout"})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if receivedPath != "/api/user/logout" {
		t.Errorf("unexpected path: actual=%s", receivedPath)
	}
	if resp.URL != ts.URL+"/api/user/logout" {
		t.Errorf("unexpected final URL: actual=%s", resp.URL)
	}
}

func TestClient_Request_OutURL(t *testing.T) {
	// Setup
	var hit bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path == "/elsewhere"
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{BaseURL: "http://127.0.0.1:1/never"})

	// Exercise
	_, err := client.Request(context.Background(), RequestConfig{URL: ts.URL + "/elsewhere", OutURL: true})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if !hit {
		t.Error("request did not reach the absolute URL")
	}
}

func TestClient_Request_MergesHeaders(t *testing.T) {
	// Setup
	var received http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Clone()
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{Header: map[string]string{"A": "1"}})
	callHeader := map[string]string{"A": "2", "B": "3"}

	// Exercise
	_, err := client.Request(context.Background(), RequestConfig{Header: callHeader})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if received.Get("A") != "2" || received.Get("B") != "3" {
		t.Errorf("unexpected header: %v", received)
	}
	if received.Get("Content-Type") != "application/json" {
		t.Errorf("missing default content type: %v", received)
	}
	if len(callHeader) != 2 {
		t.Errorf("caller header map was modified: %v", callHeader)
	}
}

func TestClient_Request_SetHeaderReturnsSameClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})

	if got := client.SetHeader("Authorization", "Bearer t"); got != client {
		t.Fatal("SetHeader must return the same client")
	}
	if _, err := client.Request(context.Background(), RequestConfig{}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
}

func TestClient_Request_InterceptorOrder(t *testing.T) {
	// Setup
	var received string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Trace")
		_, _ = w.Write([]byte("body"))
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})
	appendTrace := func(s string) RequestInterceptor {
		return func(config RequestConfig) RequestConfig {
			config.Header["X-Trace"] += s
			return config
		}
	}
	appendBody := func(s string) ResponseInterceptor {
		return func(response *Response) *Response {
			response.Body = append(response.Body, s...)
			return response
		}
	}
	returned := client.
		AddRequestInterceptor(appendTrace("1")).
		AddRequestInterceptor(appendTrace("2")).
		AddResponseInterceptor(appendBody("-a")).
		AddResponseInterceptor(appendBody("-b"))
	if returned != client {
		t.Fatal("Add*Interceptor must return the same client")
	}

	// Exercise
	resp, err := client.Request(context.Background(), RequestConfig{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if received != "12" {
		t.Errorf("request interceptors applied out of order: %q", received)
	}
	if string(resp.Body) != "body-a-b" {
		t.Errorf("response interceptors applied out of order: %q", resp.Body)
	}
}

func TestClient_Request_NotFoundSkipsResponseInterceptors(t *testing.T) {
	// Setup
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Reason", "missing")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such thing"))
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})
	called := 0
	client.AddResponseInterceptor(func(response *Response) *Response {
		called++
		return response
	})

	// Exercise
	resp, err := client.Request(context.Background(), RequestConfig{URL: "/missing"})

	// Verify
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	if called != 0 {
		t.Errorf("response interceptor invoked %d times", called)
	}
	httpErr, ok := errors.Cause(err).(*HTTPError)
	if !ok {
		t.Fatalf("unexpected error type: %T", errors.Cause(err))
	}
	if httpErr.StatusCode != 404 || httpErr.Status != "Not Found" {
		t.Errorf("unexpected status: %d %s", httpErr.StatusCode, httpErr.Status)
	}
	if string(httpErr.Body) != "no such thing" {
		t.Errorf("unexpected body: %q", httpErr.Body)
	}
	if httpErr.Header.Get("X-Reason") != "missing" {
		t.Errorf("unexpected header: %v", httpErr.Header)
	}
	if httpErr.URL != ts.URL+"/missing" {
		t.Errorf("unexpected URL: %s", httpErr.URL)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error message should mention the status: %s", err)
	}
}

func TestClient_Request_SendsJSONBody(t *testing.T) {
	// Setup
	var receivedMethod, receivedBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		b, _ := ioutil.ReadAll(r.Body)
		receivedBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})

	// Exercise
	resp, err := client.Request(context.Background(), RequestConfig{
		Method: MethodPut,
		Data:   map[string]int{"n": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if receivedMethod != "PUT" {
		t.Errorf("unexpected method: %s", receivedMethod)
	}
	if !isEquivalentJSON(t, `{"n": 1}`, receivedBody) {
		t.Errorf("unexpected body: %s", receivedBody)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

func TestClient_Request_NoBodyWithoutData(t *testing.T) {
	var contentLength int64 = -2
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})

	if _, err := client.Request(context.Background(), RequestConfig{Method: MethodDelete}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if contentLength != 0 {
		t.Errorf("expected empty body, content length=%d", contentLength)
	}
}

func TestClient_Request_NilFromResponseInterceptor(t *testing.T) {
	// Setup
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})
	var laterCalled bool
	client.
		AddResponseInterceptor(func(resp *Response) *Response { return nil }).
		AddResponseInterceptor(func(resp *Response) *Response {
			laterCalled = true
			return resp
		})

	// Exercise
	resp, err := client.Request(context.Background(), RequestConfig{})

	// Verify
	if err == nil || resp != nil {
		t.Fatalf("expected error and no response, got resp=%v err=%v", resp, err)
	}
	if laterCalled {
		t.Error("interceptors after a nil result should not run")
	}
}

func TestClient_Request_TypedNilDataSendsNoBody(t *testing.T) {
	var contentLength int64 = -2
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})

	config := RequestConfig{Method: MethodPost, Data: map[string]string(nil)}
	if _, err := client.Request(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if contentLength != 0 {
		t.Errorf("expected empty body, content length=%d", contentLength)
	}
}

func TestClient_Request_ResponseJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": 200, "message": "bye"}`))
	}))
	defer ts.Close()
	client := newTestClient(t, ts, Options{})

	resp, err := client.Request(context.Background(), RequestConfig{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	var data struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := resp.JSON(&data); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Code: 200, Message: "bye"}
	if !reflect.DeepEqual(data, expected) {
		t.Errorf("unexpected data: expected=%+v, actual=%+v", expected, data)
	}
}

func TestClient_Request_ConnectionRefused(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if _, err := client.Request(context.Background(), RequestConfig{URL: "/"}); err == nil {
		t.Fatal("expected error for connection refused")
	}
}
