package engine

import "fmt"

// Config holds the engine's decision thresholds. The vote and constraint
// constants are behavioral parameters tuned against real campaign corpora;
// they are exposed here rather than hardcoded so runs can adjust them.
type Config struct {
	// LowConfidence is the triage threshold: final confidence at or below
	// this value flags the document for human review.
	LowConfidence float64 `toml:"low_confidence"`
	// VoteMinHits is the minimum token-overlap score before the generic
	// voter may relabel.
	VoteMinHits int `toml:"vote_min_hits"`
	// VoteGate blocks the generic voter when current confidence is at or
	// above this value, unless the current label is a generic bucket member.
	VoteGate float64 `toml:"vote_gate"`
	// VoteFloor is the confidence floor applied when the vote relabels.
	VoteFloor float64 `toml:"vote_floor"`
	// ConstraintCeiling caps confidence after a format-driven relabel;
	// a constraint adjustment is never asserted with full confidence.
	ConstraintCeiling float64 `toml:"constraint_ceiling"`
	// GenericLabels is the low-information bucket the voter may displace
	// even at high confidence.
	GenericLabels []string `toml:"generic_labels"`
}

// Finalize applies defaults and validates threshold ranges.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.LowConfidence != 0 {
		c.LowConfidence = overlay.LowConfidence
	}
	if overlay.VoteMinHits != 0 {
		c.VoteMinHits = overlay.VoteMinHits
	}
	if overlay.VoteGate != 0 {
		c.VoteGate = overlay.VoteGate
	}
	if overlay.VoteFloor != 0 {
		c.VoteFloor = overlay.VoteFloor
	}
	if overlay.ConstraintCeiling != 0 {
		c.ConstraintCeiling = overlay.ConstraintCeiling
	}
	if len(overlay.GenericLabels) > 0 {
		c.GenericLabels = overlay.GenericLabels
	}
}

func (c *Config) loadDefaults() {
	if c.LowConfidence == 0 {
		c.LowConfidence = 0.65
	}
	if c.VoteMinHits == 0 {
		c.VoteMinHits = 2
	}
	if c.VoteGate == 0 {
		c.VoteGate = 0.85
	}
	if c.VoteFloor == 0 {
		c.VoteFloor = 0.88
	}
	if c.ConstraintCeiling == 0 {
		c.ConstraintCeiling = 0.85
	}
	if c.GenericLabels == nil {
		c.GenericLabels = []string{"press_statement", "messaging_one_pager"}
	}
}

func (c *Config) validate() error {
	for name, v := range map[string]float64{
		"low_confidence":     c.LowConfidence,
		"vote_gate":          c.VoteGate,
		"vote_floor":         c.VoteFloor,
		"constraint_ceiling": c.ConstraintCeiling,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1]", name)
		}
	}
	if c.VoteMinHits < 1 {
		return fmt.Errorf("vote_min_hits must be at least 1")
	}
	return nil
}

func (c *Config) isGeneric(label string) bool {
	for _, g := range c.GenericLabels {
		if g == label {
			return true
		}
	}
	return false
}
