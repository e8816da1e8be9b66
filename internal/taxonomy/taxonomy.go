// Package taxonomy defines the fixed label set that classification results
// are forced onto, along with per-label synonym and pattern hints.
// A Taxonomy is loaded once per run and treated as read-only afterwards.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultUnknownLabel is the sentinel assigned when no allowed label applies.
const DefaultUnknownLabel = "unmapped_other"

const maxHintTokens = 14

// Pattern holds trigger tokens for a label. A document matching any of
// MustAny is a candidate for the label.
type Pattern struct {
	MustAny []string `yaml:"must_any"`
}

// Taxonomy is the ordered set of allowed labels plus per-label hints.
type Taxonomy struct {
	Labels   []string            `yaml:"labels"`
	Synonyms map[string][]string `yaml:"synonyms"`
	Patterns map[string]Pattern  `yaml:"patterns"`

	// UnknownLabel is the sentinel used for out-of-taxonomy results.
	// It is not itself a member of Labels.
	UnknownLabel string `yaml:"unknown_label"`

	index map[string]struct{}
}

// Load reads a taxonomy document, optionally merges a separate patterns
// document, and validates the result. patternsPath may be empty when the
// taxonomy file carries its own patterns section.
func Load(taxonomyPath, patternsPath string) (*Taxonomy, error) {
	data, err := os.ReadFile(taxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", taxonomyPath, err)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", taxonomyPath, err)
	}

	if patternsPath != "" {
		raw, err := os.ReadFile(patternsPath)
		if err != nil {
			return nil, fmt.Errorf("read patterns %s: %w", patternsPath, err)
		}

		patterns := make(map[string]Pattern)
		if err := yaml.Unmarshal(raw, &patterns); err != nil {
			return nil, fmt.Errorf("parse patterns %s: %w", patternsPath, err)
		}

		if tax.Patterns == nil {
			tax.Patterns = make(map[string]Pattern, len(patterns))
		}
		for label, p := range patterns {
			tax.Patterns[label] = p
		}
	}

	if err := tax.Finalize(); err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", taxonomyPath, err)
	}

	return &tax, nil
}

// Finalize applies defaults, builds the label index, and validates.
// It must be called on any Taxonomy constructed outside Load.
func (t *Taxonomy) Finalize() error {
	if t.UnknownLabel == "" {
		t.UnknownLabel = DefaultUnknownLabel
	}
	if t.Synonyms == nil {
		t.Synonyms = map[string][]string{}
	}
	if t.Patterns == nil {
		t.Patterns = map[string]Pattern{}
	}

	if len(t.Labels) == 0 {
		return fmt.Errorf("no labels defined")
	}

	t.index = make(map[string]struct{}, len(t.Labels))
	for _, label := range t.Labels {
		if label == "" {
			return fmt.Errorf("empty label")
		}
		if _, dup := t.index[label]; dup {
			return fmt.Errorf("duplicate label %q", label)
		}
		t.index[label] = struct{}{}
	}

	if _, clash := t.index[t.UnknownLabel]; clash {
		return fmt.Errorf("unknown label %q must not be a taxonomy member", t.UnknownLabel)
	}

	return nil
}

// Contains reports whether label is an allowed taxonomy member.
func (t *Taxonomy) Contains(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Tokens returns the deduplicated hint tokens for a label: its synonyms,
// its must-any pattern tokens, and the label name with underscores
// replaced by spaces. All tokens are lowercased.
func (t *Taxonomy) Tokens(label string) []string {
	seen := make(map[string]struct{})
	var tokens []string

	add := func(tok string) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			return
		}
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, s := range t.Synonyms[label] {
		add(s)
	}
	for _, p := range t.Patterns[label].MustAny {
		add(p)
	}
	add(strings.ReplaceAll(label, "_", " "))

	return tokens
}

// Hints renders per-label hint lines for the oracle prompt, e.g.
// "press_release: news release, for immediate release". Labels without
// any synonym or pattern tokens are omitted. At most 14 tokens per label.
func (t *Taxonomy) Hints() string {
	var lines []string

	for _, label := range t.Labels {
		seen := make(map[string]struct{})
		var tokens []string
		for _, tok := range append(append([]string{}, t.Synonyms[label]...), t.Patterns[label].MustAny...) {
			if tok == "" {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) > maxHintTokens {
			tokens = tokens[:maxHintTokens]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(tokens, ", ")))
	}

	return strings.Join(lines, "\n")
}
