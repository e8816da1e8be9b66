package ledger

import (
	"strings"

	"github.com/JaimeStill/curator/pkg/query"
	"github.com/JaimeStill/curator/pkg/repository"
)

var triageProjection = query.
	NewProjectionMap("public", "triage_entries", "t").
	Project("id", "ID").
	Project("campaign", "Campaign").
	Project("content_hash", "ContentHash").
	Project("source_path", "SourcePath").
	Project("reasons", "Reasons").
	Project("model_doc_type", "ModelDocType").
	Project("final_doc_type", "FinalDocType").
	Project("proposed_new_label", "ProposedNewLabel").
	Project("uncertainty_reason", "UncertaintyReason").
	Project("confidence", "Confidence").
	Project("evidence", "Evidence").
	Project("created_at", "CreatedAt")

var triageSort = query.SortField{Field: "SourcePath"}

// Reasons are stored as a comma-joined TEXT column; the reason identifiers
// never contain commas.
func joinReasons(reasons []string) string {
	return strings.Join(reasons, ",")
}

func splitReasons(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func scanTriageEntry(s repository.Scanner) (TriageEntry, error) {
	var e TriageEntry
	var reasons string

	err := s.Scan(
		&e.ID,
		&e.Campaign,
		&e.ContentHash,
		&e.SourcePath,
		&reasons,
		&e.ModelDocType,
		&e.FinalDocType,
		&e.ProposedNewLabel,
		&e.UncertaintyReason,
		&e.Confidence,
		&e.Evidence,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}

	e.Reasons = splitReasons(reasons)
	return e, nil
}
