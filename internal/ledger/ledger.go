// Package ledger persists classification results and triage entries to
// Postgres. The ledger doubles as the run checkpoint: a (campaign,
// content hash) pair present in the table means the document is done and
// a resumed run skips it.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Row is one persisted classification result. Identity within a campaign
// is the document content hash; re-running a document upserts its row.
type Row struct {
	Campaign    string    `json:"campaign"`
	SourcePath  string    `json:"source_path"`
	ContentHash string    `json:"content_hash"`
	DocType     string    `json:"doc_type"`
	DocSubtype  string    `json:"doc_subtype"`
	Confidence  float64   `json:"confidence"`
	ExtractKind string    `json:"extract_kind"`
	Coerced     bool      `json:"coerced"`
	Model       string    `json:"model"`
	RunID       uuid.UUID `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TriageEntry records why a classified document needs human review,
// preserving the model's original answer next to the final one.
type TriageEntry struct {
	ID                uuid.UUID `json:"id"`
	Campaign          string    `json:"campaign"`
	ContentHash       string    `json:"content_hash"`
	SourcePath        string    `json:"source_path"`
	Reasons           []string  `json:"reasons"`
	ModelDocType      string    `json:"model_doc_type"`
	FinalDocType      string    `json:"final_doc_type"`
	ProposedNewLabel  string    `json:"proposed_new_label"`
	UncertaintyReason string    `json:"uncertainty_reason"`
	Confidence        float64   `json:"confidence"`
	Evidence          string    `json:"evidence"`
	CreatedAt         time.Time `json:"created_at"`
}
