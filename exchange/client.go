package exchange

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

func BuildHTTPClient(options *Options) (*http.Client, error) {
	maxRedirections := options.maxRedirections()
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirections {
			return errors.Errorf("stopped after %d redirects", maxRedirections)
		}
		return nil
	}

	client := http.Client{
		CheckRedirect: checkRedirect,
	}

	var transp http.RoundTripper
	if options.Transport == nil {
		httpTransport := http.DefaultTransport.(*http.Transport).Clone()
		dialer := &net.Dialer{
			Timeout:   options.connectTimeout(),
			KeepAlive: 30 * time.Second,
		}
		httpTransport.DialContext = dialer.DialContext
		transp = httpTransport
	} else {
		transp = options.Transport
	}
	client.Transport = transp

	return &client, nil
}
