package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func redirectChain(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := strconv.Atoi(r.URL.Query().Get("n"))
		if n > 0 {
			http.Redirect(w, r, "/?n="+strconv.Itoa(n-1), http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestBuildHTTPClient_FollowsUpToMaxRedirections(t *testing.T) {
	ts := redirectChain(t)
	defer ts.Close()
	client := newTestClient(t, ts, Options{MaxRedirections: 3})

	if _, err := client.Request(context.Background(), RequestConfig{URL: "/?n=3"}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if _, err := client.Request(context.Background(), RequestConfig{URL: "/?n=4"}); err == nil {
		t.Fatal("expected error when exceeding the redirect limit")
	}
}

func TestBuildHTTPClient_NoRedirects(t *testing.T) {
	// Setup
	ts := redirectChain(t)
	defer ts.Close()
	client := newTestClient(t, ts, Options{MaxRedirections: NoRedirects})

	// Exercise
	_, redirected := client.Request(context.Background(), RequestConfig{URL: "/?n=1"})
	_, direct := client.Request(context.Background(), RequestConfig{URL: "/?n=0"})

	// Verify
	if redirected == nil {
		t.Error("expected error for a redirect when redirects are disabled")
	}
	if direct != nil {
		t.Errorf("unexpected error: err=%+v", direct)
	}
}

func TestBuildHTTPClient_Defaults(t *testing.T) {
	// Setup
	options := &Options{}

	// Exercise
	client, err := BuildHTTPClient(options)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if client.Timeout != 0 {
		t.Errorf("only the connect phase is bounded, got overall timeout %v", client.Timeout)
	}
	if _, ok := client.Transport.(*http.Transport); !ok {
		t.Errorf("unexpected transport: %T", client.Transport)
	}
	if options.connectTimeout() != 5*time.Second {
		t.Errorf("unexpected default connect timeout: %v", options.connectTimeout())
	}
	if options.maxRedirections() != 5 {
		t.Errorf("unexpected default max redirections: %d", options.maxRedirections())
	}
}

type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return http.DefaultTransport.RoundTrip(r)
}

func TestBuildHTTPClient_CustomTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()
	transport := &countingTransport{}
	client := newTestClient(t, ts, Options{Transport: transport})

	if _, err := client.Request(context.Background(), RequestConfig{}); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if transport.calls != 1 {
		t.Errorf("expected a single attempt, got %d", transport.calls)
	}
}
