// Package cellpath provides a fluent API for extracting semantic header
// paths from tables in HTML documents and Excel workbooks.
//
// Every data cell in a table is governed by the headers above it and to
// its left; cellpath resolves that ownership and pairs each cell value
// with its ordered header path:
//
//	results, err := cellpath.Open("report.html").Results()
//	if err != nil {
//	    // handle error
//	}
//	for _, r := range results {
//	    fmt.Println(r.Context) // "Revenue → Q1: 100"
//	}
//
// With options:
//
//	results, err := cellpath.Open("data.xlsx").
//	    Sheet("Q1 Results").
//	    Start("B3").
//	    HeaderCols(2).
//	    Results()
//
// For element sequences produced elsewhere, the lower-level grid package
// and [Untabulate] are also available.
package cellpath

import (
	"sort"
	"strings"

	"github.com/tsawler/cellpath/grid"
)

// DefaultSeparator joins path segments in context strings.
const DefaultSeparator = " → "

// Result pairs one data cell with the header path that governs it.
type Result struct {
	// Path holds the governing header labels, outermost first.
	Path []string `json:"path"`
	// Value is the cell's own text.
	Value string `json:"value"`
	// Context is the path joined with the configured separator, followed
	// by the value.
	Context string `json:"context"`
}

// Untabulate resolves header ownership for a complete element sequence
// and returns one Result per data element, in row-major order. An empty
// separator selects [DefaultSeparator].
func Untabulate(elements []grid.Element, separator string) ([]Result, error) {
	if separator == "" {
		separator = DefaultSeparator
	}

	p, err := grid.Build(elements)
	if err != nil {
		return nil, err
	}

	var data []grid.Element
	for _, el := range elements {
		if el.Role == grid.RoleData {
			data = append(data, el)
		}
	}
	sort.SliceStable(data, func(i, j int) bool {
		if data[i].Row != data[j].Row {
			return data[i].Row < data[j].Row
		}
		return data[i].Col < data[j].Col
	})

	results := make([]Result, 0, len(data))
	for _, el := range data {
		path := p.Path(el.Row, el.Col)
		if path == nil {
			path = []string{}
		}

		context := el.Text
		if len(path) > 0 {
			context = strings.Join(path, separator) + ": " + el.Text
		}

		results = append(results, Result{
			Path:    path,
			Value:   el.Text,
			Context: context,
		})
	}
	return results, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	results := cellpath.Must(cellpath.Open("report.html").Results())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
