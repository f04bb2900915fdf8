package cellpath

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/cellpath/format"
	"github.com/tsawler/cellpath/grid"
	"github.com/tsawler/cellpath/htmldoc"
	"github.com/tsawler/cellpath/xlsx"
)

// Extractor provides a fluent interface for extracting header paths from
// HTML documents and Excel workbooks. Each configuration method returns a
// new Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source: a filename, or an in-memory reader for HTML
	filename string
	source   io.Reader
	format   format.Format

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// Open creates an Extractor for a file, detecting the format from the
// filename extension. Unrecognized extensions are sniffed from content
// when a terminal operation runs.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// HTML creates an Extractor reading HTML from r.
func HTML(r io.Reader) *Extractor {
	return &Extractor{
		source:  r,
		format:  format.HTML,
		options: defaultOptions(),
	}
}

// HTMLFile creates an Extractor for an HTML file.
func HTMLFile(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.HTML,
		options:  defaultOptions(),
	}
}

// XLSX creates an Extractor for an Excel file.
func XLSX(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.XLSX,
		options:  defaultOptions(),
	}
}

// clone creates a copy of the Extractor with cloned options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		format:   e.format,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// Separator sets the string joining path segments in context strings.
func (e *Extractor) Separator(sep string) *Extractor {
	newE := e.clone()
	newE.options.separator = sep
	return newE
}

// TableID restricts HTML extraction to the table with the given id
// attribute.
func (e *Extractor) TableID(id string) *Extractor {
	newE := e.clone()
	newE.options.tableID = id
	return newE
}

// Sheet selects the worksheet by name. The default is the active sheet.
func (e *Extractor) Sheet(name string) *Extractor {
	newE := e.clone()
	newE.options.sheet = name
	return newE
}

// Start sets the table region's top-left cell from an A1-style reference
// such as "B3".
func (e *Extractor) Start(ref string) *Extractor {
	newE := e.clone()
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		newE.err = fmt.Errorf("invalid cell reference %q: %w", ref, err)
		return newE
	}
	newE.options.startRow = row
	newE.options.startCol = col
	return newE
}

// HeaderRows sets the number of header rows at the top of the table
// region (default 1).
func (e *Extractor) HeaderRows(n int) *Extractor {
	newE := e.clone()
	newE.options.headerRows = n
	return newE
}

// HeaderCols sets the number of header columns on the left of the table
// region (default 1).
func (e *Extractor) HeaderCols(n int) *Extractor {
	newE := e.clone()
	newE.options.headerCols = n
	return newE
}

// Elements extracts the raw grid elements from the source without
// resolving paths.
func (e *Extractor) Elements() ([]grid.Element, error) {
	if e.err != nil {
		return nil, e.err
	}

	switch e.format {
	case format.HTML:
		r, cleanup, err := e.htmlSource()
		if err != nil {
			return nil, err
		}
		defer cleanup()
		if e.options.tableID != "" {
			return htmldoc.ParseTableByID(r, e.options.tableID)
		}
		return htmldoc.ParseTable(r)

	case format.XLSX:
		return xlsx.ParseFile(e.filename, e.xlsxOptions())

	default:
		return e.sniffElements()
	}
}

// Results extracts one Result per data cell from the first (or selected)
// table.
func (e *Extractor) Results() ([]Result, error) {
	elements, err := e.Elements()
	if err != nil {
		return nil, err
	}
	return Untabulate(elements, e.options.separator)
}

// ResultSets extracts results for every table in an HTML document, in
// document order. For XLSX sources it returns a single set.
func (e *Extractor) ResultSets() ([][]Result, error) {
	if e.err != nil {
		return nil, e.err
	}

	if e.format != format.HTML {
		results, err := e.Results()
		if err != nil {
			return nil, err
		}
		return [][]Result{results}, nil
	}

	r, cleanup, err := e.htmlSource()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tables, err := htmldoc.ParseAllTables(r)
	if err != nil {
		return nil, err
	}

	sets := make([][]Result, 0, len(tables))
	for _, elements := range tables {
		results, err := Untabulate(elements, e.options.separator)
		if err != nil {
			return nil, err
		}
		sets = append(sets, results)
	}
	return sets, nil
}

// Strings extracts the context strings of the first (or selected) table.
func (e *Extractor) Strings() ([]string, error) {
	results, err := e.Results()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Context
	}
	return out, nil
}

// htmlSource returns the HTML input stream and a cleanup function.
func (e *Extractor) htmlSource() (io.Reader, func(), error) {
	if e.source != nil {
		return e.source, func() {}, nil
	}
	if e.filename == "" {
		return nil, nil, fmt.Errorf("no source specified")
	}
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// sniffElements handles files whose extension did not identify a format.
func (e *Extractor) sniffElements() ([]grid.Element, error) {
	if e.filename == "" {
		return nil, fmt.Errorf("unsupported input format")
	}

	f, err := os.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	detected, data, err := format.DetectFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	switch detected {
	case format.HTML:
		if e.options.tableID != "" {
			return htmldoc.ParseTableByID(bytes.NewReader(data), e.options.tableID)
		}
		return htmldoc.ParseTable(bytes.NewReader(data))
	case format.XLSX:
		return xlsx.ParseFile(e.filename, e.xlsxOptions())
	default:
		return nil, fmt.Errorf("unsupported file format: %s", e.filename)
	}
}

// xlsxOptions maps the extractor's options onto the xlsx adapter.
func (e *Extractor) xlsxOptions() xlsx.Options {
	return xlsx.Options{
		Sheet:      e.options.sheet,
		StartRow:   e.options.startRow,
		StartCol:   e.options.startCol,
		HeaderRows: e.options.headerRows,
		HeaderCols: e.options.headerCols,
	}
}
