package engine

import (
	"strings"

	"github.com/JaimeStill/curator/internal/taxonomy"
)

// GenericVoter rescues results the oracle parked in a low-signal generic
// bucket. It counts taxonomy token hits in the haystack for every label and
// moves the result to the strict winner when the evidence is strong enough.
type GenericVoter struct {
	tax *taxonomy.Taxonomy
	cfg *Config
}

func NewGenericVoter(tax *taxonomy.Taxonomy, cfg *Config) *GenericVoter {
	return &GenericVoter{tax: tax, cfg: cfg}
}

// Apply re-labels res in place when a different label's tokens dominate the
// haystack. Locked results are untouchable; eligibility requires either low
// confidence or membership in a generic bucket so a confident specific label
// is never second-guessed.
func (v *GenericVoter) Apply(res *Result, hay string) {
	if res.Locked() {
		return
	}
	if res.Confidence >= v.cfg.VoteGate && !v.cfg.isGeneric(res.DocType) {
		return
	}

	best := res.DocType
	bestHits := 0
	for _, label := range v.tax.Labels {
		hits := 0
		for _, token := range v.tax.Tokens(label) {
			if strings.Contains(hay, token) {
				hits++
			}
		}
		// Strict greater-than: ties keep the earlier label, so taxonomy
		// order is the deterministic tie-break.
		if hits > bestHits {
			best, bestHits = label, hits
		}
	}

	if bestHits < v.cfg.VoteMinHits || best == res.DocType {
		return
	}

	res.DocType = best
	if res.Confidence < v.cfg.VoteFloor {
		res.Confidence = v.cfg.VoteFloor
	}
	res.Decider = PrecedenceGenericVote
}
