// Package documents defines the extracted-document records consumed by the
// classification pipeline and the bounded text samples built from them.
// Extraction itself (text, slides, spreadsheet schemas) happens upstream;
// this package only models the extractor's output boundary.
package documents

import (
	"path"
	"strings"
)

// ExtractKind identifies the structural shape of an extracted document.
type ExtractKind string

// Extract kinds produced by the upstream extractor.
const (
	KindText    ExtractKind = "text"
	KindSlides  ExtractKind = "slides"
	KindTabular ExtractKind = "tabular_schema"
	KindSkip    ExtractKind = "skip"
)

// Slide holds the text content of one slide in a deck.
type Slide struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Sheet summarizes one worksheet: its name, dimensions, and leading columns.
type Sheet struct {
	Name    string   `json:"sheet"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Columns []string `json:"columns"`
}

// TabularSchema summarizes a workbook as sheet names plus column headers.
type TabularSchema struct {
	Sheets []Sheet `json:"sheets"`
}

// Extract is the payload produced by the extractor for one document.
// Exactly one of Text, Slides, or Schema is populated depending on Type.
type Extract struct {
	Type   ExtractKind    `json:"type"`
	Text   string         `json:"text,omitempty"`
	Slides []Slide        `json:"slides,omitempty"`
	Schema *TabularSchema `json:"schema,omitempty"`
}

// Document is one extracted-document record. Identity is ContentHash;
// records are immutable once produced by the extractor.
type Document struct {
	SourcePath  string  `json:"source_path"`
	ContentHash string  `json:"sha256"`
	Extract     Extract `json:"extract"`
}

// Kind returns the document's extract kind.
func (d *Document) Kind() ExtractKind {
	return d.Extract.Type
}

// Filename returns the final path segment of SourcePath.
func (d *Document) Filename() string {
	return path.Base(strings.ReplaceAll(d.SourcePath, "\\", "/"))
}

// PathContext returns the last (up to) four path segments joined with " / ",
// giving the oracle folder context without leaking the full tree.
func (d *Document) PathContext() string {
	clean := strings.ReplaceAll(d.SourcePath, "\\", "/")

	var parts []string
	for _, seg := range strings.Split(clean, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}

	if len(parts) > 4 {
		parts = parts[len(parts)-4:]
	}

	return strings.Join(parts, " / ")
}
