// Package outfmt renders extraction results for CLI output.
package outfmt

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/tsawler/cellpath"
)

// Format represents the output format type.
type Format string

const (
	// FormatJSON is pretty-printed JSON (default).
	FormatJSON Format = "json"
	// FormatJSONL is newline-delimited JSON, one result per line.
	FormatJSONL Format = "jsonl"
	// FormatText is one context string per line.
	FormatText Format = "text"
	// FormatCSV is two-column CSV: joined path, value.
	FormatCSV Format = "csv"
)

// ParseFormat converts a string to a Format. Empty string defaults to
// FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatJSONL:
		return FormatJSONL, nil
	case FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", errors.New("invalid --format (expected json|jsonl|text|csv)")
	}
}

// Printer handles result output across formats.
type Printer struct {
	w         io.Writer
	format    Format
	separator string
	query     string
}

// NewPrinter creates a Printer writing to w in the given format. The
// separator joins path segments in CSV output; query, when non-empty, is
// a jq expression applied to the structured result data instead of the
// configured format.
func NewPrinter(w io.Writer, format Format, separator, query string) *Printer {
	return &Printer{
		w:         w,
		format:    format,
		separator: separator,
		query:     query,
	}
}

// PrintResults renders one table's results.
func (p *Printer) PrintResults(results []cellpath.Result) error {
	if p.query != "" {
		return p.printQuery(results)
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(results)
	case FormatJSONL:
		for _, r := range results {
			if err := p.printLine(r); err != nil {
				return err
			}
		}
		return nil
	case FormatText:
		for _, r := range results {
			if _, err := fmt.Fprintln(p.w, r.Context); err != nil {
				return err
			}
		}
		return nil
	case FormatCSV:
		return p.printCSV(results)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// PrintResultSets renders results for multiple tables. JSON output is an
// array of arrays; the line-oriented formats emit every table's rows in
// order.
func (p *Printer) PrintResultSets(sets [][]cellpath.Result) error {
	if p.query != "" {
		return p.printQuery(sets)
	}

	if p.format == FormatJSON {
		return p.printJSON(sets)
	}
	for _, set := range sets {
		if err := p.PrintResults(set); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (p *Printer) printLine(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (p *Printer) printCSV(results []cellpath.Result) error {
	cw := csv.NewWriter(p.w)
	for _, r := range results {
		record := []string{strings.Join(r.Path, p.separator), r.Value}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// printQuery applies the jq expression to the data and emits each output
// value as a JSON line.
func (p *Printer) printQuery(data any) error {
	parsed, err := gojq.Parse(p.query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	// gojq operates on generic JSON values; round-trip the typed results.
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	iter := code.Run(generic)
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", qerr)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
