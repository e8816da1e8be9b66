// Package oracle defines the classification oracle boundary: the component
// that maps a bounded document sample to a raw label proposal. The live
// implementation calls an OpenAI-compatible chat model; a pure keyword
// voter stands in when no model is configured so the decision pipeline
// stays fully testable offline.
package oracle

import (
	"context"
	"errors"

	"github.com/JaimeStill/curator/internal/documents"
)

// Sentinel errors for oracle operations.
var (
	// ErrExhausted indicates the live oracle failed after all retry attempts.
	ErrExhausted = errors.New("oracle retries exhausted")
	// ErrMalformed indicates the oracle returned output that could not be
	// parsed into a raw result.
	ErrMalformed = errors.New("malformed oracle output")
)

// Request carries everything the oracle may use to propose a label.
type Request struct {
	Sample      string
	Filename    string
	PathContext string
	Kind        documents.ExtractKind
	Labels      []string
	LabelHints  string
}

// RawResult is the oracle's unvalidated proposal. Confidence is nil when
// the oracle omitted it; downstream coercion supplies conservative defaults.
type RawResult struct {
	DocType           string
	DocSubtype        string
	Confidence        *float64
	Evidence          []string
	ProposedNewLabel  string
	UncertaintyReason string
}

// Oracle proposes a raw classification for one document sample. Name
// identifies the deciding model for the audit trail.
type Oracle interface {
	Classify(ctx context.Context, req Request) (RawResult, error)
	Name() string
}
