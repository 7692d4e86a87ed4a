package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	jsonPalette   *JSONPalette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

type HeaderPalette struct {
	Proto          aurora.Color
	Status         aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:          aurora.BlueFg,
	Status:         aurora.BrownFg | aurora.BoldFm,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

type JSONPalette struct {
	Name    aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Name:    aurora.BlueFg | aurora.BoldFm,
	String:  aurora.BrownFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.MagentaFg,
	Null:    aurora.RedFg,
}

const indent = "    "

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		jsonPalette:   &defaultJSONPalette,
	}
}

func (p *PrettyPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	code := strconv.Itoa(statusCode) + " " + status
	if proto == "" {
		fmt.Fprintf(p.writer, "%s\n", p.aurora.Colorize(code, p.headerPalette.Status))
		return nil
	}
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(proto, p.headerPalette.Proto),
		p.aurora.Colorize(code, p.headerPalette.Status))
	return nil
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	for _, name := range sortedNames(header) {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = contentType[:semicolon]
	}

	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func (p *PrettyPrinter) PrintBody(body []byte, contentType string) error {
	// Fallback to PlainPrinter when the body is not JSON
	if !isJSON(contentType) || !json.Valid(body) {
		return p.plain.PrintBody(body, contentType)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var buf bytes.Buffer
	if err := p.writeJSON(&buf, decoder, 0); err != nil {
		return errors.Wrap(err, "formatting JSON")
	}
	buf.WriteString("\n")
	if _, err := p.writer.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "printing response body")
	}
	return nil
}

// writeJSON re-emits one JSON value from the token stream, indented and
// colored. Object keys keep the order they arrived in.
func (p *PrettyPrinter) writeJSON(w *bytes.Buffer, decoder *json.Decoder, depth int) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	switch v := token.(type) {
	case json.Delim:
		return p.writeComposite(w, decoder, v, depth)
	case string:
		w.WriteString(p.colorize(quote(v), p.jsonPalette.String))
	case json.Number:
		w.WriteString(p.colorize(v.String(), p.jsonPalette.Number))
	case bool:
		w.WriteString(p.colorize(strconv.FormatBool(v), p.jsonPalette.Boolean))
	case nil:
		w.WriteString(p.colorize("null", p.jsonPalette.Null))
	default:
		return errors.Errorf("unexpected JSON token: %v", token)
	}
	return nil
}

func (p *PrettyPrinter) writeComposite(w *bytes.Buffer, decoder *json.Decoder, open json.Delim, depth int) error {
	closing := "]"
	if open == '{' {
		closing = "}"
	}
	w.WriteString(string(open))
	if !decoder.More() {
		_, err := decoder.Token()
		w.WriteString(closing)
		return err
	}

	w.WriteString("\n")
	for first := true; decoder.More(); first = false {
		if !first {
			w.WriteString(",\n")
		}
		w.WriteString(strings.Repeat(indent, depth+1))
		if open == '{' {
			token, err := decoder.Token()
			if err != nil {
				return err
			}
			name, _ := token.(string)
			w.WriteString(p.colorize(quote(name), p.jsonPalette.Name))
			w.WriteString(": ")
		}
		if err := p.writeJSON(w, decoder, depth+1); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	w.WriteString("\n")
	w.WriteString(strings.Repeat(indent, depth))
	w.WriteString(closing)
	return nil
}

func (p *PrettyPrinter) colorize(s string, color aurora.Color) string {
	return p.aurora.Colorize(s, color).String()
}

func quote(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
