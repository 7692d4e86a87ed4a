package output

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/pkg/errors"
)

type PlainPrinter struct {
	writer io.Writer
}

func NewPlainPrinter(writer io.Writer) Printer {
	return &PlainPrinter{
		writer: writer,
	}
}

func (p *PlainPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	fmt.Fprintln(p.writer, statusLine(proto, status, statusCode))
	return nil
}

func (p *PlainPrinter) PrintHeader(header http.Header) error {
	for _, name := range sortedNames(header) {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s: %s\n", name, value)
		}
	}
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PlainPrinter) PrintBody(body []byte, contentType string) error {
	if _, err := p.writer.Write(body); err != nil {
		return errors.Wrap(err, "printing response body")
	}
	return nil
}

func statusLine(proto string, status string, statusCode int) string {
	if proto == "" {
		return fmt.Sprintf("%d %s", statusCode, status)
	}
	return fmt.Sprintf("%s %d %s", proto, statusCode, status)
}

func sortedNames(header http.Header) []string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
