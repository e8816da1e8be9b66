package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/curator/pkg/query"
	"github.com/JaimeStill/curator/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a ledger repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "ledger"),
	}
}

func (r *repo) Insert(ctx context.Context, row *Row, triage *TriageEntry) error {
	upsertQ := `
		INSERT INTO classifications(
			campaign, source_path, content_hash, doc_type, doc_subtype,
			confidence, extract_kind, coerced, model, run_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (campaign, content_hash) DO UPDATE SET
			source_path = EXCLUDED.source_path,
			doc_type = EXCLUDED.doc_type,
			doc_subtype = EXCLUDED.doc_subtype,
			confidence = EXCLUDED.confidence,
			extract_kind = EXCLUDED.extract_kind,
			coerced = EXCLUDED.coerced,
			model = EXCLUDED.model,
			run_id = EXCLUDED.run_id,
			created_at = NOW()`

	upsertArgs := []any{
		row.Campaign,
		row.SourcePath,
		row.ContentHash,
		row.DocType,
		row.DocSubtype,
		row.Confidence,
		row.ExtractKind,
		row.Coerced,
		row.Model,
		row.RunID,
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, upsertQ, upsertArgs...); err != nil {
			return struct{}{}, fmt.Errorf("upsert classification: %w", err)
		}

		// A rerun replaces the document's triage entry, present or not.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM triage_entries WHERE campaign = $1 AND content_hash = $2",
			row.Campaign, row.ContentHash,
		); err != nil {
			return struct{}{}, fmt.Errorf("clear triage entry: %w", err)
		}

		if triage == nil {
			return struct{}{}, nil
		}

		id := triage.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		insertQ := `
			INSERT INTO triage_entries(
				id, campaign, content_hash, source_path, reasons,
				model_doc_type, final_doc_type, proposed_new_label,
				uncertainty_reason, confidence, evidence
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		if _, err := tx.ExecContext(ctx, insertQ,
			id,
			triage.Campaign,
			triage.ContentHash,
			triage.SourcePath,
			joinReasons(triage.Reasons),
			triage.ModelDocType,
			triage.FinalDocType,
			triage.ProposedNewLabel,
			triage.UncertaintyReason,
			triage.Confidence,
			triage.Evidence,
		); err != nil {
			return struct{}{}, fmt.Errorf("insert triage entry: %w", err)
		}

		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return nil
}

func (r *repo) SeenHashes(ctx context.Context, campaign string) (map[string]struct{}, error) {
	hashes, err := repository.QueryMany(ctx, r.db,
		"SELECT content_hash FROM classifications WHERE campaign = $1",
		[]any{campaign},
		func(s repository.Scanner) (string, error) {
			var h string
			err := s.Scan(&h)
			return h, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query seen hashes: %w", err)
	}

	seen := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		seen[h] = struct{}{}
	}

	r.logger.Info("loaded checkpoint", "campaign", campaign, "seen", len(seen))
	return seen, nil
}

func (r *repo) Reset(ctx context.Context, campaign string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM triage_entries WHERE campaign = $1", campaign,
		); err != nil {
			return struct{}{}, fmt.Errorf("delete triage entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM classifications WHERE campaign = $1", campaign,
		); err != nil {
			return struct{}{}, fmt.Errorf("delete classifications: %w", err)
		}
		return struct{}{}, nil
	})

	if err != nil {
		return err
	}

	r.logger.Info("campaign reset", "campaign", campaign)
	return nil
}

func (r *repo) Triage(ctx context.Context, campaign string) ([]TriageEntry, error) {
	q, args := query.
		NewBuilder(triageProjection, triageSort).
		WhereEquals("Campaign", &campaign).
		Build()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanTriageEntry)
	if err != nil {
		return nil, fmt.Errorf("query triage entries: %w", err)
	}

	return entries, nil
}
