package engine

// Triage reasons attached to rows that need human review. Values are stable
// identifiers persisted to the ledger.
const (
	ReasonLabelNotInTaxonomy   = "suggested_label_not_in_taxonomy"
	ReasonLowConfidence        = "low_confidence"
	ReasonConstraintAdjustment = "extract_constraint_adjustment"
	ReasonClassificationError  = "classification_error"
)

// TriageReasons inspects a finished result and returns every applicable
// reason, in a fixed order so repeated runs produce identical rows.
func TriageReasons(res *Result, cfg *Config) []string {
	var reasons []string

	if res.Coerced {
		reasons = append(reasons, ReasonLabelNotInTaxonomy)
	}
	if res.Confidence <= cfg.LowConfidence {
		reasons = append(reasons, ReasonLowConfidence)
	}
	if res.ConstraintAdjustedFrom != "" {
		reasons = append(reasons, ReasonConstraintAdjustment)
	}

	return reasons
}
