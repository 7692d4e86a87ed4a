package exchange

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Response struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Not Found".
	Status string
	Proto  string
	Header http.Header
	Body   []byte
	// URL is the final URL after redirects.
	URL string
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "parsing response body as JSON")
	}
	return nil
}

// HTTPError is returned by Client.Request when the status is outside 2xx.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
	Header     http.Header
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d, %s, %s, %v, %s",
		e.StatusCode, e.Status, e.Body, e.Header, e.URL)
}

func newHTTPError(r *Response) error {
	return errors.WithStack(&HTTPError{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Body:       r.Body,
		Header:     r.Header,
		URL:        r.URL,
	})
}

func readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	var finalURL string
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     reasonPhrase(resp),
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       body,
		URL:        finalURL,
	}, nil
}

func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
	if phrase == "" {
		return http.StatusText(resp.StatusCode)
	}
	return phrase
}
