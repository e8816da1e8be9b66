package oracle

import (
	"context"
	"strings"

	"github.com/JaimeStill/curator/internal/taxonomy"
)

const (
	heuristicBase    = 0.40
	heuristicPerHit  = 0.10
	heuristicCeiling = 0.75
	heuristicMissed  = 0.30
	maxScoredHits    = 4
	maxEvidence      = 5
)

// Heuristic is the offline oracle stand-in: a pure keyword voter over
// taxonomy hint tokens. It never makes network calls, never fails, and is
// fully deterministic, which keeps the decision pipeline unit-testable
// without a configured model.
type Heuristic struct {
	tax *taxonomy.Taxonomy
}

// NewHeuristic creates a keyword-voting oracle over the given taxonomy.
func NewHeuristic(tax *taxonomy.Taxonomy) *Heuristic {
	return &Heuristic{tax: tax}
}

// Name identifies the heuristic oracle in the audit trail.
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Classify scores each allowed label by counting its hint tokens in the
// sample, filename, and path context, and proposes the best-scoring label.
// Labels are scored in taxonomy order; earlier labels win ties. With no
// hits at all it proposes the unknown sentinel at low confidence.
func (h *Heuristic) Classify(_ context.Context, req Request) (RawResult, error) {
	hay := strings.ToLower(req.Sample + " " + req.Filename + " " + req.PathContext)

	var (
		bestLabel  string
		bestHits   int
		bestTokens []string
	)

	for _, label := range h.tax.Labels {
		hits := 0
		var matched []string
		for _, tok := range h.tax.Tokens(label) {
			if strings.Contains(hay, tok) {
				hits++
				if len(matched) < maxEvidence {
					matched = append(matched, tok)
				}
			}
		}
		if hits > bestHits {
			bestLabel, bestHits, bestTokens = label, hits, matched
		}
	}

	if bestHits == 0 {
		conf := heuristicMissed
		return RawResult{
			DocType:           h.tax.UnknownLabel,
			DocSubtype:        "unknown",
			Confidence:        &conf,
			UncertaintyReason: "no taxonomy tokens matched",
		}, nil
	}

	conf := heuristicBase + heuristicPerHit*float64(min(bestHits, maxScoredHits))
	if conf > heuristicCeiling {
		conf = heuristicCeiling
	}

	return RawResult{
		DocType:    bestLabel,
		DocSubtype: "keyword match",
		Confidence: &conf,
		Evidence:   bestTokens,
	}, nil
}
