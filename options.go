package cellpath

// ExtractOptions holds configuration for path extraction.
type ExtractOptions struct {
	// Shared
	separator string

	// HTML
	tableID string

	// XLSX (1-indexed in API, stored as-is)
	sheet      string
	startRow   int
	startCol   int
	headerRows int
	headerCols int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		separator:  DefaultSeparator,
		tableID:    "",
		sheet:      "",
		startRow:   1,
		startCol:   1,
		headerRows: 1,
		headerCols: 1,
	}
}

// clone creates a copy of ExtractOptions. All fields are values, so a
// shallow copy suffices; the method exists so the fluent chain stays
// immutable if reference fields are ever added.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
