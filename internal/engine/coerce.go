package engine

import (
	"math"
	"strings"

	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

const (
	maxEvidenceEntries = 5
	maxEvidenceChars   = 120
	maxSubtypeChars    = 160

	coercedDefaultConfidence = 0.4
	coercedConfidenceCeiling = 0.6
	validDefaultConfidence   = 0.5
)

// Coerce forces a raw oracle proposal onto the allowed label set. An
// out-of-taxonomy label becomes the unknown sentinel with its confidence
// capped, preserving what the oracle originally said for the audit trail.
func Coerce(raw oracle.RawResult, tax *taxonomy.Taxonomy) Result {
	res := Result{
		DocSubtype:        truncate(raw.DocSubtype, maxSubtypeChars),
		Evidence:          boundEvidence(raw.Evidence),
		ModelDocType:      raw.DocType,
		ProposedNewLabel:  strings.TrimSpace(raw.ProposedNewLabel),
		UncertaintyReason: strings.TrimSpace(raw.UncertaintyReason),
	}

	if !tax.Contains(raw.DocType) {
		res.DocType = tax.UnknownLabel
		res.Coerced = true
		// Keep the oracle's honesty, but never let a coerced result
		// look high-confidence.
		res.Confidence = clamp(confidenceOr(raw.Confidence, coercedDefaultConfidence), 0, coercedConfidenceCeiling)
		return res
	}

	res.DocType = raw.DocType
	res.Confidence = clamp(confidenceOr(raw.Confidence, validDefaultConfidence), 0, 1)
	return res
}

func boundEvidence(evidence []string) []string {
	if len(evidence) > maxEvidenceEntries {
		evidence = evidence[:maxEvidenceEntries]
	}

	bounded := make([]string, 0, len(evidence))
	for _, e := range evidence {
		bounded = append(bounded, truncate(e, maxEvidenceChars))
	}
	return bounded
}

func confidenceOr(c *float64, fallback float64) float64 {
	if c == nil || math.IsNaN(*c) {
		return fallback
	}
	return *c
}

func clamp(v, low, high float64) float64 {
	return math.Min(math.Max(v, low), high)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
