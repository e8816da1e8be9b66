package documents

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
)

// The upstream extractor labels spreadsheet schemas "xlsx_schema";
// curator normalizes that to the format-neutral tabular kind.
const legacyTabularKind = "xlsx_schema"

// Lines in extracted JSONL can carry large text payloads.
const maxLineBytes = 16 * 1024 * 1024

// UnmarshalJSON decodes an extract payload, tolerating the two slide
// encodings the extractor has produced: an ordered array, or an object
// keyed by slide number.
func (e *Extract) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   string          `json:"type"`
		Text   string          `json:"text"`
		Slides json.RawMessage `json:"slides"`
		Schema *TabularSchema  `json:"schema"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Type = ExtractKind(raw.Type)
	if raw.Type == legacyTabularKind {
		e.Type = KindTabular
	}
	e.Text = raw.Text
	e.Schema = raw.Schema

	if len(raw.Slides) == 0 {
		return nil
	}

	var list []Slide
	if err := json.Unmarshal(raw.Slides, &list); err == nil {
		e.Slides = list
		return nil
	}

	var keyed map[string]Slide
	if err := json.Unmarshal(raw.Slides, &keyed); err != nil {
		return fmt.Errorf("decode slides: %w", err)
	}

	for key, slide := range keyed {
		if n, err := strconv.Atoi(key); err == nil {
			slide.Number = n
		}
		list = append(list, slide)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	e.Slides = list

	return nil
}

// ReadAll decodes extracted-document JSONL from r, one record per line.
// Records without a content hash or with a skip payload are dropped with
// a warning rather than failing the batch.
func ReadAll(r io.Reader, logger *slog.Logger) ([]Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var docs []Document
	line := 0

	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode record at line %d: %w", line, err)
		}

		if doc.ContentHash == "" {
			logger.Warn("skipping record without content hash", "line", line, "source_path", doc.SourcePath)
			continue
		}
		if doc.Kind() == KindSkip || doc.Kind() == "" {
			logger.Warn("skipping unextracted record", "line", line, "source_path", doc.SourcePath)
			continue
		}

		docs = append(docs, doc)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read extracted records: %w", err)
	}

	return docs, nil
}
