package engine

import (
	"strings"

	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

// Outcome is a fully evaluated classification: the terminal result plus the
// triage reasons it accumulated.
type Outcome struct {
	Result  Result
	Reasons []string
}

// Pipeline runs a raw oracle answer through every decision stage in fixed
// order. Evaluating the same inputs always yields the same outcome.
type Pipeline struct {
	tax        *taxonomy.Taxonomy
	cfg        *Config
	overrides  *OverrideEngine
	voter      *GenericVoter
	constraint *ConstraintEnforcer
}

func NewPipeline(tax *taxonomy.Taxonomy, cfg *Config) *Pipeline {
	return &Pipeline{
		tax:        tax,
		cfg:        cfg,
		overrides:  NewOverrideEngine(tax),
		voter:      NewGenericVoter(tax, cfg),
		constraint: NewConstraintEnforcer(tax, cfg),
	}
}

// Evaluate coerces raw into taxonomy space and applies overrides, the
// generic vote, and extract constraints. The haystack uses the coerced
// subtype so every stage sees the same text.
func (p *Pipeline) Evaluate(doc *documents.Document, sample string, raw oracle.RawResult) Outcome {
	res := Coerce(raw, p.tax)

	rc := NewRuleContext(doc, res.DocSubtype, sample)
	p.overrides.Apply(&res, rc)
	p.voter.Apply(&res, rc.Hay)
	p.constraint.Apply(&res, doc, rc.Hay)

	// The terminal label must be inside the taxonomy whatever the stages
	// did; anything else is a bug upstream, so fail safe to the sentinel.
	if !p.tax.Contains(res.DocType) {
		res.DocType = p.tax.UnknownLabel
		res.Coerced = true
	}

	return Outcome{
		Result:  res,
		Reasons: TriageReasons(&res, p.cfg),
	}
}

// Failure builds the outcome recorded when classification of a document
// errored. The row lands in triage rather than vanishing from the ledger.
func (p *Pipeline) Failure(err error) Outcome {
	msg := strings.TrimSpace(err.Error())
	if len(msg) > maxEvidenceChars {
		msg = msg[:maxEvidenceChars]
	}

	return Outcome{
		Result: Result{
			DocType:           p.tax.UnknownLabel,
			DocSubtype:        "unknown",
			Confidence:        0.30,
			Evidence:          []string{msg},
			UncertaintyReason: "classification failed",
			Decider:           PrecedenceOracle,
		},
		Reasons: []string{ReasonClassificationError},
	}
}
