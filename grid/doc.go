// Package grid resolves table header ownership into per-cell semantic paths.
//
// The package consumes a flat sequence of [Element] values describing the
// occupied regions of a table (position, span, header/data role, text) and
// builds a [Projection]: a read-only index answering, for any data
// coordinate, the ordered sequence of header labels that govern it.
//
//	elements := []grid.Element{
//	    grid.Header(1, 2, 1, 1, "Q1"),
//	    grid.Header(2, 1, 1, 1, "Revenue"),
//	    grid.Data(2, 2, "100"),
//	}
//	p, err := grid.Build(elements)
//	if err != nil {
//	    // handle error
//	}
//	path := p.Path(2, 2) // ["Revenue", "Q1"]
//
// # Classification
//
// A header's position relative to the data region, not merely its column,
// decides whether it scopes by row or by column. Construction first finds
// the minimum row and column among data elements; a header left of the
// first data column and at or below the first data row is a row header
// owning the rows it spans, and every other header is a column header
// owning the columns it spans. A corner cell in column 1 above the first
// data row is therefore a column header.
//
// # Queries
//
// [Projection.Path] accumulates row-header labels first (outer context),
// then column-header labels, each deduplicated in order of first
// appearance. A column header never governs its own row; a row header
// does govern its own row for cells right of column 1. Coordinates with
// no registered headers yield an empty path, never an error.
//
// Projections are immutable after construction and safe for concurrent
// readers without synchronization.
package grid
