// Package engine implements the layered classification decision pipeline:
// label coercion onto the taxonomy, ordered heuristic override rules, a
// token-overlap fallback voter, per-format constraint enforcement, and
// triage selection. Every stage is pure and deterministic; the only
// mutable state is the Result threaded through one document's evaluation.
package engine

// LockState marks a result whose label has been pinned by a
// high-precision rule. Once locked, later rules and the generic voter
// leave the label alone; constraint enforcement may still adjust it for
// format validity.
type LockState int

// Lock states.
const (
	Unlocked LockState = iota
	Locked
)

// Precedence identifies which mechanism decided the current label.
// Explicit rules outrank the generic vote, which outranks
// constraint adjustment.
type Precedence int

// Precedence levels, strongest first.
const (
	PrecedenceOracle Precedence = iota
	PrecedenceExplicitRule
	PrecedenceGenericVote
	PrecedenceConstraintAdjustment
)

// String returns the precedence name for logging.
func (p Precedence) String() string {
	switch p {
	case PrecedenceExplicitRule:
		return "explicit_rule"
	case PrecedenceGenericVote:
		return "generic_vote"
	case PrecedenceConstraintAdjustment:
		return "constraint_adjustment"
	default:
		return "oracle"
	}
}

// Result is the classification state for one document as it moves through
// the pipeline. Lock and Decider are transient processing markers and are
// never persisted or exported.
type Result struct {
	DocType    string
	DocSubtype string
	Confidence float64
	Evidence   []string

	// Coerced marks results whose oracle label fell outside the taxonomy.
	Coerced bool

	// Audit fields preserved for triage; not required downstream.
	ModelDocType           string
	ProposedNewLabel       string
	UncertaintyReason      string
	ConstraintAdjustedFrom string

	Lock    LockState
	Decider Precedence
}

// Locked reports whether the label has been pinned.
func (r *Result) Locked() bool {
	return r.Lock == Locked
}
