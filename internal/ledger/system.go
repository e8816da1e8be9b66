package ledger

import "context"

// System defines the public contract for ledger persistence.
type System interface {
	// Insert upserts one classification row and its triage entry (when
	// present) in a single transaction.
	Insert(ctx context.Context, row *Row, triage *TriageEntry) error

	// SeenHashes returns the content hashes already recorded for a
	// campaign, used as the resume checkpoint.
	SeenHashes(ctx context.Context, campaign string) (map[string]struct{}, error)

	// Reset deletes a campaign's rows and triage entries ahead of a
	// forced reclassification.
	Reset(ctx context.Context, campaign string) error

	// Triage lists a campaign's triage entries ordered by source path.
	Triage(ctx context.Context, campaign string) ([]TriageEntry, error)
}
