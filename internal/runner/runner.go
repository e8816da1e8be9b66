// Package runner executes classification batches: it fans documents out to
// a bounded worker pool, runs each through the oracle and decision pipeline,
// and persists results incrementally so an interrupted run resumes where it
// stopped.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/engine"
	"github.com/JaimeStill/curator/internal/ledger"
	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

const maxTriageEvidence = 4

// Summary reports what a run did.
type Summary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Triaged   int `json:"triaged"`
}

// Runner coordinates one campaign's classification batch.
type Runner struct {
	oracle   oracle.Oracle
	pipeline *engine.Pipeline
	store    ledger.System
	tax      *taxonomy.Taxonomy
	cfg      *Config
	logger   *slog.Logger
}

// New creates a batch runner over the given oracle, decision pipeline,
// and ledger.
func New(
	o oracle.Oracle,
	pipeline *engine.Pipeline,
	store ledger.System,
	tax *taxonomy.Taxonomy,
	cfg *Config,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		oracle:   o,
		pipeline: pipeline,
		store:    store,
		tax:      tax,
		cfg:      cfg,
		logger:   logger.With("system", "runner"),
	}
}

// Run classifies every document not already checkpointed for the campaign.
// force discards the existing checkpoint first. A document whose
// classification fails still produces a conservative ledger row; only
// persistence errors abort the batch.
func (r *Runner) Run(ctx context.Context, campaign string, docs []documents.Document, force bool) (Summary, error) {
	if force {
		if err := r.store.Reset(ctx, campaign); err != nil {
			return Summary{}, fmt.Errorf("reset campaign %s: %w", campaign, err)
		}
	}

	seen, err := r.store.SeenHashes(ctx, campaign)
	if err != nil {
		return Summary{}, fmt.Errorf("load checkpoint: %w", err)
	}

	runID := uuid.New()
	hints := r.tax.Hints()

	r.logger.Info("run started",
		"campaign", campaign,
		"run_id", runID,
		"documents", len(docs),
		"checkpointed", len(seen),
		"workers", r.cfg.Workers,
		"oracle", r.oracle.Name(),
	)

	var processed, skipped, failed, triaged atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := range docs {
		doc := &docs[i]

		if _, done := seen[doc.ContentHash]; done {
			skipped.Add(1)
			continue
		}

		g.Go(func() error {
			outcome, classifyErr := r.classify(gctx, doc, hints)

			row, entry := r.materialize(campaign, runID, doc, outcome)
			if err := r.store.Insert(gctx, row, entry); err != nil {
				return fmt.Errorf("persist %s: %w", doc.SourcePath, err)
			}

			if classifyErr != nil {
				failed.Add(1)
			}
			if entry != nil {
				triaged.Add(1)
			}

			if n := processed.Add(1); n%int64(r.cfg.ProgressEvery) == 0 {
				r.logger.Info("progress",
					"campaign", campaign,
					"processed", n,
					"triaged", triaged.Load(),
					"failed", failed.Load(),
				)
			}
			return nil
		})
	}

	waitErr := g.Wait()

	summary := Summary{
		Processed: int(processed.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
		Triaged:   int(triaged.Load()),
	}

	r.logger.Info("run complete",
		"campaign", campaign,
		"run_id", runID,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"triaged", summary.Triaged,
	)

	return summary, waitErr
}

// classify runs one document through the oracle and pipeline. Oracle and
// pipeline failures degrade to the failure outcome; the returned error only
// reports that degradation for counting.
func (r *Runner) classify(ctx context.Context, doc *documents.Document, hints string) (engine.Outcome, error) {
	sample := documents.BuildSample(doc, r.cfg.SampleChars)

	raw, err := r.oracle.Classify(ctx, oracle.Request{
		Sample:      sample,
		Filename:    doc.Filename(),
		PathContext: doc.PathContext(),
		Kind:        doc.Kind(),
		Labels:      r.tax.Labels,
		LabelHints:  hints,
	})
	if err != nil {
		r.logger.Warn("classification failed",
			"source_path", doc.SourcePath,
			"error", err,
		)
		return r.pipeline.Failure(err), err
	}

	return r.pipeline.Evaluate(doc, sample, raw), nil
}

func (r *Runner) materialize(campaign string, runID uuid.UUID, doc *documents.Document, outcome engine.Outcome) (*ledger.Row, *ledger.TriageEntry) {
	res := outcome.Result

	row := &ledger.Row{
		Campaign:    campaign,
		SourcePath:  doc.SourcePath,
		ContentHash: doc.ContentHash,
		DocType:     res.DocType,
		DocSubtype:  res.DocSubtype,
		Confidence:  res.Confidence,
		ExtractKind: string(doc.Kind()),
		Coerced:     res.Coerced,
		Model:       r.oracle.Name(),
		RunID:       runID,
	}

	if len(outcome.Reasons) == 0 {
		return row, nil
	}

	evidence := res.Evidence
	if len(evidence) > maxTriageEvidence {
		evidence = evidence[:maxTriageEvidence]
	}

	return row, &ledger.TriageEntry{
		Campaign:          campaign,
		ContentHash:       doc.ContentHash,
		SourcePath:        doc.SourcePath,
		Reasons:           outcome.Reasons,
		ModelDocType:      res.ModelDocType,
		FinalDocType:      res.DocType,
		ProposedNewLabel:  res.ProposedNewLabel,
		UncertaintyReason: res.UncertaintyReason,
		Confidence:        res.Confidence,
		Evidence:          strings.Join(evidence, " | "),
	}
}
