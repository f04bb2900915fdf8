package grid

import "strings"

// Role classifies an element as semantic context or measured value.
type Role int

const (
	// RoleData indicates a cell holding a value to be contextualized.
	RoleData Role = iota
	// RoleHeader indicates a cell providing semantic context.
	RoleHeader
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleHeader:
		return "header"
	case RoleData:
		return "data"
	default:
		return "unknown"
	}
}

// Element describes one occupied region of a table grid.
//
// Row and Col are the 1-based origin coordinates; the region occupies
// rows [Row, Row+RowSpan) and columns [Col, Col+ColSpan). Producers emit
// exactly one Element per region, at its origin; coordinates covered by a
// span but not its origin are omitted entirely.
type Element struct {
	Role    Role
	Row     int
	Col     int
	RowSpan int
	ColSpan int
	Text    string
}

// New creates an Element with the given role, position, and span.
// Text is stored with surrounding whitespace trimmed.
func New(role Role, row, col, rowSpan, colSpan int, text string) Element {
	return Element{
		Role:    role,
		Row:     row,
		Col:     col,
		RowSpan: rowSpan,
		ColSpan: colSpan,
		Text:    strings.TrimSpace(text),
	}
}

// Header creates a header element. A header whose trimmed text is empty
// carries no scoping authority and is ignored at construction.
func Header(row, col, rowSpan, colSpan int, text string) Element {
	return New(RoleHeader, row, col, rowSpan, colSpan, text)
}

// Data creates a non-spanning data element.
func Data(row, col int, text string) Element {
	return New(RoleData, row, col, 1, 1, text)
}
