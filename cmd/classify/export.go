package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/JaimeStill/curator/internal/ledger"
	"github.com/JaimeStill/curator/pkg/storage"
)

// exportTriage publishes the campaign's triage entries to blob storage as
// CSV for the review workflow.
func exportTriage(ctx context.Context, store ledger.System, blobs storage.System, campaign string, logger *slog.Logger) error {
	entries, err := store.Triage(ctx, campaign)
	if err != nil {
		return fmt.Errorf("list triage entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"source_path", "content_hash", "reasons", "model_doc_type",
		"final_doc_type", "proposed_new_label", "uncertainty_reason",
		"confidence", "evidence",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write triage header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.SourcePath,
			e.ContentHash,
			strings.Join(e.Reasons, ","),
			e.ModelDocType,
			e.FinalDocType,
			e.ProposedNewLabel,
			e.UncertaintyReason,
			strconv.FormatFloat(e.Confidence, 'f', 2, 64),
			e.Evidence,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write triage row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush triage csv: %w", err)
	}

	key := campaign + "/triage.csv"
	if err := blobs.Upload(ctx, key, &buf, "text/csv"); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	logger.Info("triage exported", "key", key, "entries", len(entries))
	return nil
}
