package documents

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	sampleJoiner     = "\n...\n"
	headShare        = 0.7
	maxSampledSlides = 3
)

// BuildSample converts a document's extract payload into a single bounded
// string suitable for classification. The function is pure and
// deterministic; identical inputs always produce identical samples.
//
// Text that exceeds the budget keeps a head portion and a tail portion —
// boilerplate and contact details tend to sit at both ends of a document,
// so head-only truncation loses signal.
func BuildSample(doc *Document, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	switch doc.Kind() {
	case KindText:
		return sampleText(doc.Extract.Text, maxChars)
	case KindSlides:
		return sampleSlides(doc.Extract.Slides, maxChars)
	case KindTabular:
		return sampleSchema(doc.Extract.Schema, maxChars)
	default:
		return ""
	}
}

func sampleText(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	headBudget := int(float64(maxChars) * headShare)
	tailBudget := maxChars - headBudget - len(sampleJoiner)

	// Extreme small budgets: fall back to head-only.
	if tailBudget <= 0 {
		return text[:maxChars]
	}

	return text[:headBudget] + sampleJoiner + text[len(text)-tailBudget:]
}

func sampleSlides(slides []Slide, maxChars int) string {
	var parts []string

	for i, slide := range slides {
		if i >= maxSampledSlides {
			break
		}
		if slide.Title == "" && slide.Body == "" {
			continue
		}

		number := slide.Number
		if number == 0 {
			number = i + 1
		}
		parts = append(parts, fmt.Sprintf("[Slide %d] %s\n%s", number, slide.Title, slide.Body))
	}

	return truncate(strings.Join(parts, "\n\n"), maxChars)
}

func sampleSchema(schema *TabularSchema, maxChars int) string {
	if schema == nil {
		return ""
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}

	return truncate(string(data), maxChars)
}

func truncate(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	return s[:maxChars]
}
