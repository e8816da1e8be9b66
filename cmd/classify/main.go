package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/JaimeStill/curator/internal/config"
	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/engine"
	"github.com/JaimeStill/curator/internal/infrastructure"
	"github.com/JaimeStill/curator/internal/ledger"
	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/runner"
	"github.com/JaimeStill/curator/internal/taxonomy"
	"github.com/JaimeStill/curator/pkg/storage"
)

func main() {
	var (
		campaign = flag.String("campaign", "", "Campaign name, or path to its extracted-document JSONL")
		input    = flag.String("input", "", "Extracted-document JSONL: local path or blob key")
		model    = flag.String("model", "", "Override the configured oracle model")
		force    = flag.Bool("force", false, "Discard the campaign checkpoint and reclassify everything")
		strict   = flag.Bool("strict", false, "Fail instead of falling back to the heuristic oracle")
		workers  = flag.Int("workers", 0, "Concurrent classification workers")
	)
	flag.Parse()

	if *campaign == "" {
		log.Fatal("classify: -campaign is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	if *model != "" {
		cfg.Oracle.Model = *model
	}
	if *workers > 0 {
		cfg.Runner.Workers = *workers
	}
	if *strict {
		cfg.Oracle.Strict = true
	}
	if cfg.Oracle.Strict && !cfg.Oracle.Live() {
		log.Fatal("classify: strict mode requires a configured oracle token or base_url")
	}

	tax, err := taxonomy.Load(cfg.TaxonomyPath, cfg.PatternsPath)
	if err != nil {
		log.Fatal("taxonomy load failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	logger := infra.Logger
	logger.Info("curator starting",
		"version", cfg.Version,
		"env", cfg.Env(),
		"campaign", *campaign,
		"labels", len(tax.Labels),
	)

	ctx, stop := signal.NotifyContext(infra.Lifecycle.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orc, err := buildOracle(cfg, tax, logger)
	if err != nil {
		log.Fatal("oracle init failed: ", err)
	}

	name, key := resolveCampaign(*campaign, *input)

	docs, err := readDocuments(ctx, infra.Storage, key, logger)
	if err != nil {
		log.Fatal("input read failed: ", err)
	}

	store := ledger.New(infra.Database.Connection(), logger)
	pipeline := engine.NewPipeline(tax, &cfg.Engine)
	batch := runner.New(orc, pipeline, store, tax, &cfg.Runner, logger)

	summary, err := batch.Run(ctx, name, docs, *force)
	if err != nil {
		logger.Error("run failed", "campaign", name, "error", err)
		os.Exit(1)
	}

	if infra.Storage != nil && summary.Triaged > 0 {
		if err := exportTriage(ctx, store, infra.Storage, name, logger); err != nil {
			logger.Error("triage export failed", "campaign", name, "error", err)
		}
	}

	logger.Info("curator finished",
		"campaign", name,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"triaged", summary.Triaged,
	)
}

// buildOracle selects the live oracle when one is configured, otherwise the
// offline heuristic stand-in. Strict configurations never reach the
// fallback; that is enforced before infrastructure startup.
func buildOracle(cfg *config.Config, tax *taxonomy.Taxonomy, logger *slog.Logger) (oracle.Oracle, error) {
	if cfg.Oracle.Live() {
		return oracle.NewOpenAI(&cfg.Oracle, logger)
	}

	logger.Warn("no oracle configured, falling back to heuristic keyword voting")
	return oracle.NewHeuristic(tax), nil
}

// resolveCampaign derives the campaign name and input location. When the
// campaign argument is itself a JSONL path, the name comes from its base
// filename; otherwise the input defaults to <campaign>/extracted.jsonl.
func resolveCampaign(campaign, input string) (name, key string) {
	if input != "" {
		return campaign, input
	}

	if info, err := os.Stat(campaign); err == nil && !info.IsDir() {
		base := filepath.Base(campaign)
		return strings.TrimSuffix(base, filepath.Ext(base)), campaign
	}

	return campaign, campaign + "/extracted.jsonl"
}

// readDocuments opens the input as a local file first, then as a blob key
// when storage is configured.
func readDocuments(ctx context.Context, store storage.System, key string, logger *slog.Logger) ([]documents.Document, error) {
	var reader io.ReadCloser

	if f, err := os.Open(key); err == nil {
		reader = f
	} else if store != nil {
		blob, err := store.Download(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", key, err)
		}
		reader = blob
	} else {
		return nil, fmt.Errorf("input %s not found and no blob storage configured", key)
	}
	defer reader.Close()

	docs, err := documents.ReadAll(reader, logger)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	logger.Info("input loaded", "key", key, "documents", len(docs))
	return docs, nil
}
