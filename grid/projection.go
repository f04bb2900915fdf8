package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidSpan indicates an element with a row or column span below 1.
var ErrInvalidSpan = errors.New("span must be at least 1")

// Config controls projection construction.
type Config struct {
	// RowHeaderIncludesOwnRow controls whether a row header governs data
	// cells on its own row. The default (true) makes a header at row r
	// appear in paths for cells at row r; setting it false requires the
	// header to originate strictly above the queried row, matching the
	// column-header rule.
	RowHeaderIncludesOwnRow bool
}

// DefaultConfig returns the default projection configuration.
func DefaultConfig() Config {
	return Config{
		RowHeaderIncludesOwnRow: true,
	}
}

// pathEntry records one header's claim on a row or column.
type pathEntry struct {
	originRow int
	label     string
}

// Projection is a read-only index from table coordinates to the headers
// that own them. Build it once with [Build]; it is immutable afterward
// and safe for concurrent readers.
type Projection struct {
	cfg      Config
	rowIndex map[int][]pathEntry
	colIndex map[int][]pathEntry
}

// Build constructs a Projection from a complete element sequence using
// the default configuration. It fails only if an element has a row or
// column span below 1. An empty sequence yields an empty, queryable
// projection.
func Build(elements []Element) (*Projection, error) {
	return BuildWithConfig(elements, DefaultConfig())
}

// BuildWithConfig constructs a Projection with explicit configuration.
func BuildWithConfig(elements []Element, cfg Config) (*Projection, error) {
	for _, el := range elements {
		if el.RowSpan < 1 || el.ColSpan < 1 {
			return nil, fmt.Errorf("element at (%d,%d): %w", el.Row, el.Col, ErrInvalidSpan)
		}
	}

	// The boundary between row headers and column headers is the top-left
	// corner of the data region.
	firstDataRow := math.MaxInt
	firstDataCol := math.MaxInt
	for _, el := range elements {
		if el.Role != RoleData {
			continue
		}
		if el.Row < firstDataRow {
			firstDataRow = el.Row
		}
		if el.Col < firstDataCol {
			firstDataCol = el.Col
		}
	}

	p := &Projection{
		cfg:      cfg,
		rowIndex: make(map[int][]pathEntry),
		colIndex: make(map[int][]pathEntry),
	}

	for _, el := range elements {
		if el.Role != RoleHeader {
			continue
		}
		label := strings.TrimSpace(el.Text)
		if label == "" {
			continue
		}

		if el.Col < firstDataCol && el.Row >= firstDataRow {
			// Row header: left of the data region and within its rows.
			// Owns every row it spans.
			for r := el.Row; r < el.Row+el.RowSpan; r++ {
				p.rowIndex[r] = append(p.rowIndex[r], pathEntry{originRow: el.Row, label: label})
			}
		} else {
			// Column header: above or outside the data region.
			// Owns every column it spans.
			for c := el.Col; c < el.Col+el.ColSpan; c++ {
				p.colIndex[c] = append(p.colIndex[c], pathEntry{originRow: el.Row, label: label})
			}
		}
	}

	// Row lists are sorted by origin and deduplicated by label, keeping
	// the earliest origin. Column lists are only sorted; deduplication
	// across row and column headers happens at query time.
	for r, entries := range p.rowIndex {
		sortByOrigin(entries)
		p.rowIndex[r] = dedupeByLabel(entries)
	}
	for _, entries := range p.colIndex {
		sortByOrigin(entries)
	}

	return p, nil
}

// sortByOrigin sorts entries by origin row, preserving input order for
// equal origins.
func sortByOrigin(entries []pathEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].originRow < entries[j].originRow
	})
}

// dedupeByLabel removes repeated labels, keeping the first occurrence.
func dedupeByLabel(entries []pathEntry) []pathEntry {
	seen := make(map[string]bool, len(entries))
	result := entries[:0]
	for _, e := range entries {
		if seen[e.label] {
			continue
		}
		seen[e.label] = true
		result = append(result, e)
	}
	return result
}

// Path returns the ordered sequence of header labels governing the cell
// at the given 1-based coordinates, outermost first, each label at most
// once. Row-header context accumulates before column-header context.
//
// Path is total: coordinates with no registered headers, including
// out-of-range or negative ones, yield an empty path.
func (p *Projection) Path(row, col int) []string {
	var path []string
	seen := make(map[string]bool)

	// A cell in column 1 is itself on the row-header axis and must not
	// inherit its own row's header as context.
	if col > 1 {
		for _, e := range p.rowIndex[row] {
			include := e.originRow <= row
			if !p.cfg.RowHeaderIncludesOwnRow {
				include = e.originRow < row
			}
			if include && !seen[e.label] {
				seen[e.label] = true
				path = append(path, e.label)
			}
		}
	}

	// A column header never governs its own row.
	for _, e := range p.colIndex[col] {
		if e.originRow < row && !seen[e.label] {
			seen[e.label] = true
			path = append(path, e.label)
		}
	}

	return path
}
