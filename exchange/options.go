package exchange

import (
	"net/http"
	"time"

	"github.com/go-kit/log"
)

const (
	DefaultConnectTimeout  = 5000 * time.Millisecond
	DefaultMaxRedirections = 5

	// NoRedirects as Options.MaxRedirections makes any redirect an error.
	NoRedirects = -1
)

type Options struct {
	BaseURL              string
	Header               map[string]string
	ConnectTimeout       time.Duration
	MaxRedirections      int // 0 means DefaultMaxRedirections, NoRedirects disables them
	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor

	// Transport replaces the default transport when non-nil.
	Transport http.RoundTripper
	Logger    log.Logger
}

func (o *Options) connectTimeout() time.Duration {
	if o.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return o.ConnectTimeout
}

func (o *Options) maxRedirections() int {
	if o.MaxRedirections < 0 {
		return 0
	}
	if o.MaxRedirections == 0 {
		return DefaultMaxRedirections
	}
	return o.MaxRedirections
}
