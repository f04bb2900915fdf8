// Package htmldoc extracts table grid elements from HTML documents.
//
// The package walks <table> markup with rowspan/colspan occupancy
// bookkeeping and produces the flat element sequence consumed by the
// grid package: one element per occupied region, recorded at its origin
// coordinate. Cells reached by a span but not at its origin are omitted.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/cellpath/grid"
)

// ErrTableNotFound indicates the document contains no table.
var ErrTableNotFound = errors.New("no table found in document")

// ParseTable extracts grid elements from the first table in the document.
func ParseTable(r io.Reader) ([]grid.Element, error) {
	tables, err := ParseAllTables(r)
	if err != nil {
		return nil, err
	}
	return tables[0], nil
}

// ParseAllTables extracts grid elements from every table in the document,
// in document order. Tables nested inside another table's cells are not
// reported separately.
func ParseAllTables(r io.Reader) ([][]grid.Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var nodes []*html.Node
	collectTables(doc, &nodes)
	if len(nodes) == 0 {
		return nil, ErrTableNotFound
	}

	tables := make([][]grid.Element, 0, len(nodes))
	for _, n := range nodes {
		tables = append(tables, extractTable(n))
	}
	return tables, nil
}

// ParseTableByID extracts grid elements from the table with the given id
// attribute.
func ParseTableByID(r io.Reader, id string) ([]grid.Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var nodes []*html.Node
	collectTables(doc, &nodes)
	for _, n := range nodes {
		if attrValue(n, "id") == id {
			return extractTable(n), nil
		}
	}
	return nil, fmt.Errorf("no table with id %q: %w", id, ErrTableNotFound)
}

// ParseFile extracts grid elements from the first table in an HTML file.
func ParseFile(filename string) ([]grid.Element, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseTable(f)
}

// collectTables gathers table nodes in document order, without descending
// into tables already found.
func collectTables(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "table" {
			*out = append(*out, n)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, out)
	}
}

// extractTable converts one table node into grid elements.
func extractTable(tableNode *html.Node) []grid.Element {
	var elements []grid.Element

	// Coordinates reserved by rowspan/colspan regions from earlier cells.
	occupied := make(map[[2]int]bool)
	rowNum := 0

	for _, section := range tableSections(tableNode) {
		for tr := section.node.FirstChild; tr != nil; tr = tr.NextSibling {
			if tr.Type != html.ElementNode || tr.Data != "tr" {
				continue
			}
			rowNum++
			col := 1

			for c := tr.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
					continue
				}

				// Skip columns claimed by spans from rows above.
				for occupied[[2]int{rowNum, col}] {
					col++
				}

				rowSpan := spanAttr(c, "rowspan")
				colSpan := spanAttr(c, "colspan")

				role := grid.RoleData
				if c.Data == "th" || section.isHeader || rowSpan > 1 || colSpan > 1 {
					// Spanning regions are structurally incompatible with
					// being an atomic data point.
					role = grid.RoleHeader
				}

				elements = append(elements, grid.New(role, rowNum, col, rowSpan, colSpan, cellText(c)))

				for r := rowNum; r < rowNum+rowSpan; r++ {
					for cc := col; cc < col+colSpan; cc++ {
						occupied[[2]int{r, cc}] = true
					}
				}
				col += colSpan
			}
		}
	}

	return elements
}

// tableSection pairs a row container with whether its rows are headers.
type tableSection struct {
	node     *html.Node
	isHeader bool
}

// tableSections returns the row containers of a table in document order.
// Rows placed directly under <table> are treated as one anonymous body.
func tableSections(tableNode *html.Node) []tableSection {
	var sections []tableSection
	hasDirectRows := false

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			sections = append(sections, tableSection{node: c, isHeader: true})
		case "tbody", "tfoot":
			sections = append(sections, tableSection{node: c})
		case "tr":
			hasDirectRows = true
		}
	}

	if hasDirectRows {
		sections = append(sections, tableSection{node: tableNode})
	}
	return sections
}

// spanAttr parses a rowspan/colspan attribute, defaulting to 1 for
// missing or malformed values. HTML's "span to end of section" zero value
// is clamped to 1.
func spanAttr(n *html.Node, key string) int {
	v := attrValue(n, key)
	if v == "" {
		return 1
	}
	span, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || span < 1 {
		return 1
	}
	return span
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// cellText extracts the text content of a cell, NFC-normalized with
// interior whitespace collapsed.
func cellText(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)
	return norm.NFC.String(strings.Join(strings.Fields(sb.String()), " "))
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li":
			sb.WriteString(" ")
		}
	}
}

// shouldSkipElement returns true for elements whose content is never
// table text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}
