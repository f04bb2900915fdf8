// Package format provides input format detection for the cellpath CLI.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML indicates an HTML document.
	HTML
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Detect determines input format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".xlsx", ".xlsm":
		return XLSX
	default:
		return Unknown
	}
}

// DetectFromMagic checks content bytes to determine format. It is more
// reliable than extension-based detection. Returns Unknown when the
// content is neither recognizable HTML nor a spreadsheet ZIP archive.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic (XLSX is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return detectZIPFormat(data)
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}

	upper := strings.ToUpper(string(data[start:]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<TABLE") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// detectZIPFormat inspects a ZIP archive for spreadsheet markers.
func detectZIPFormat(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX
		}
	}
	return Unknown
}

// DetectFromReader reads the full content and determines its format.
func DetectFromReader(r io.Reader) (Format, []byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Unknown, nil, err
	}
	return DetectFromMagic(data), data, nil
}
