package output

import (
	"io"
	"net/http"

	"github.com/rhchat/rhchat-desktop/exchange"
)

type Printer interface {
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintHeader(header http.Header) error
	PrintBody(body []byte, contentType string) error
}

func NewPrinter(w io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      w,
			EnableColor: options.EnableColor,
		})
	}
	return NewPlainPrinter(w)
}

// Print writes the parts of resp selected by options.
func Print(p Printer, resp *exchange.Response, options *Options) error {
	if options.PrintResponseHeader {
		if err := p.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := p.PrintHeader(resp.Header); err != nil {
			return err
		}
	}
	if options.PrintResponseBody {
		if err := p.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}

// PrintHTTPError prints the failed response carried by err.
func PrintHTTPError(p Printer, err *exchange.HTTPError, options *Options) error {
	return Print(p, &exchange.Response{
		StatusCode: err.StatusCode,
		Status:     err.Status,
		Header:     err.Header,
		Body:       err.Body,
		URL:        err.URL,
	}, options)
}
