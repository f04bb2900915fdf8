// Package xlsx extracts table grid elements from Excel worksheets.
//
// Unlike HTML, a worksheet carries no header markup; the caller declares
// the header window (rows at the top, columns on the left of the table
// region) through [Options]. Merged ranges are resolved to a single
// spanning header element at their origin, and blank cells inside the
// header columns inherit the label above them (fill-down), matching how
// spreadsheet authors leave a repeated section label implicit.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/cellpath/grid"
)

// Options configure worksheet extraction.
type Options struct {
	// Sheet is the worksheet name. Empty selects the active sheet.
	Sheet string

	// StartRow and StartCol locate the table region's top-left cell,
	// 1-based in worksheet coordinates. Emitted elements are re-based so
	// the start cell becomes (1,1).
	StartRow int
	StartCol int

	// HeaderRows and HeaderCols declare the header window relative to the
	// start cell.
	HeaderRows int
	HeaderCols int
}

// DefaultOptions returns extraction options for a table at A1 with one
// header row and one header column.
func DefaultOptions() Options {
	return Options{
		StartRow:   1,
		StartCol:   1,
		HeaderRows: 1,
		HeaderCols: 1,
	}
}

// ParseFile opens an Excel file and extracts grid elements from one
// worksheet.
func ParseFile(filename string, opts Options) ([]grid.Element, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	return ParseWorksheet(f, opts)
}

// mergeSpan records the extent of a merged range at its origin.
type mergeSpan struct {
	rowSpan int
	colSpan int
}

// ParseWorksheet extracts grid elements from a worksheet in an open
// workbook.
func ParseWorksheet(f *excelize.File, opts Options) ([]grid.Element, error) {
	if opts.StartRow < 1 {
		opts.StartRow = 1
	}
	if opts.StartCol < 1 {
		opts.StartCol = 1
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	origins, covered, err := mergedRegions(f, sheet)
	if err != nil {
		return nil, err
	}

	var elements []grid.Element

	// Last non-blank label seen per header column, for fill-down.
	fillDown := make(map[int]string)

	for rowIdx, rowCells := range rows {
		absRow := rowIdx + 1
		if absRow < opts.StartRow {
			continue
		}
		row := absRow - opts.StartRow + 1

		for colIdx, value := range rowCells {
			absCol := colIdx + 1
			if absCol < opts.StartCol {
				continue
			}
			col := absCol - opts.StartCol + 1

			if covered[[2]int{absRow, absCol}] {
				continue
			}

			text := strings.TrimSpace(value)
			span, merged := origins[[2]int{absRow, absCol}]
			if !merged {
				span = mergeSpan{rowSpan: 1, colSpan: 1}
			}

			isHeader := row <= opts.HeaderRows || col <= opts.HeaderCols ||
				span.rowSpan > 1 || span.colSpan > 1

			if isHeader && col <= opts.HeaderCols {
				if text == "" {
					text = fillDown[col]
				} else {
					fillDown[col] = text
				}
			}

			if text == "" {
				continue
			}

			role := grid.RoleData
			if isHeader {
				role = grid.RoleHeader
			}
			elements = append(elements, grid.New(role, row, col, span.rowSpan, span.colSpan, text))
		}
	}

	return elements, nil
}

// mergedRegions indexes a sheet's merged ranges by origin and by covered
// coordinate.
func mergedRegions(f *excelize.File, sheet string) (map[[2]int]mergeSpan, map[[2]int]bool, error) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading merged cells: %w", err)
	}

	origins := make(map[[2]int]mergeSpan)
	covered := make(map[[2]int]bool)

	for _, mc := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, nil, fmt.Errorf("parsing merge range start: %w", err)
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, nil, fmt.Errorf("parsing merge range end: %w", err)
		}

		origins[[2]int{startRow, startCol}] = mergeSpan{
			rowSpan: endRow - startRow + 1,
			colSpan: endCol - startCol + 1,
		}
		for r := startRow; r <= endRow; r++ {
			for c := startCol; c <= endCol; c++ {
				if r == startRow && c == startCol {
					continue
				}
				covered[[2]int{r, c}] = true
			}
		}
	}

	return origins, covered, nil
}
