package exchange

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

type RequestInterceptor func(config RequestConfig) RequestConfig

type ResponseInterceptor func(response *Response) *Response

// Client sends requests relative to a base URL, passing every request and
// every successful response through its interceptor chains in registration
// order.
type Client struct {
	mu                   sync.RWMutex
	baseURL              string
	header               map[string]string
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor

	httpClient *http.Client
	logger     log.Logger
}

func NewClient(options Options) (*Client, error) {
	httpClient, err := BuildHTTPClient(&options)
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	c := &Client{
		baseURL:              options.BaseURL,
		header:               mergeHeader(options.Header, nil),
		requestInterceptors:  append([]RequestInterceptor(nil), options.RequestInterceptors...),
		responseInterceptors: append([]ResponseInterceptor(nil), options.ResponseInterceptors...),
		httpClient:           httpClient,
		logger:               log.With(logger, "component", "exchange"),
	}
	c.SetHeader("Content-Type", "application/json")
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) AddRequestInterceptor(interceptor RequestInterceptor) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
	return c
}

func (c *Client) AddResponseInterceptor(interceptor ResponseInterceptor) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
	return c
}

func (c *Client) SetHeader(key, value string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header[key] = value
	return c
}

// Request performs a single attempt. A non-2xx status yields an *HTTPError
// and skips the response interceptors. A response interceptor returning nil
// fails the request.
func (c *Client) Request(ctx context.Context, config RequestConfig) (*Response, error) {
	c.mu.RLock()
	targetURL := resolveURL(c.baseURL, config)
	config.Header = mergeHeader(c.header, config.Header)
	requestInterceptors := c.requestInterceptors
	responseInterceptors := c.responseInterceptors
	c.mu.RUnlock()

	for _, interceptor := range requestInterceptors {
		config = interceptor(config)
	}

	r, err := BuildHTTPRequest(ctx, targetURL, config)
	if err != nil {
		return nil, err
	}

	level.Debug(c.logger).Log("msg", "sending request", "method", r.Method, "url", targetURL)
	resp, err := c.httpClient.Do(r)
	if err != nil {
		level.Warn(c.logger).Log("msg", "request failed", "method", r.Method, "url", targetURL, "err", err)
		return nil, errors.Wrap(err, "sending HTTP request")
	}

	response, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	if !response.OK() {
		level.Warn(c.logger).Log("msg", "unexpected status", "method", r.Method, "url", response.URL, "status", response.StatusCode)
		return nil, newHTTPError(response)
	}

	for i, interceptor := range responseInterceptors {
		response = interceptor(response)
		if response == nil {
			return nil, errors.Errorf("response interceptor %d returned nil", i)
		}
	}
	return response, nil
}
