package engine

import (
	"strings"

	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

// RuleContext is the lowercase view of one document that override rules
// match against. Hay composes path, oracle subtype, sample, and filename;
// Filename and Path allow narrower, higher-precision checks.
type RuleContext struct {
	Hay      string
	Filename string
	Path     string
	Kind     documents.ExtractKind
}

// NewRuleContext lowercases and composes the rule inputs.
func NewRuleContext(doc *documents.Document, subtype, sample string) RuleContext {
	return RuleContext{
		Hay: strings.ToLower(strings.Join([]string{
			doc.SourcePath, subtype, sample, doc.Filename(),
		}, " ")),
		Filename: strings.ToLower(doc.Filename()),
		Path:     strings.ToLower(doc.SourcePath),
		Kind:     doc.Kind(),
	}
}

func (rc RuleContext) has(needle string) bool {
	return strings.Contains(rc.Hay, needle)
}

func (rc RuleContext) hasAny(needles []string) bool {
	for _, n := range needles {
		if strings.Contains(rc.Hay, n) {
			return true
		}
	}
	return false
}

func (rc RuleContext) filenameHas(needle string) bool {
	return strings.Contains(rc.Filename, needle)
}

// Rule pairs a trigger predicate with an effect. Rules are data: the engine
// evaluates them strictly in table order, so precedence can be unit-tested
// rule by rule and reordered deliberately rather than by accident.
type Rule struct {
	Name string
	When func(rc RuleContext) bool
	Then func(res *Result, rc RuleContext)
}

// OverrideEngine applies the ordered heuristic rule table. High-precision
// structural markers come before broader topical rules: a later broad rule
// firing after a narrow correct one would silently overwrite it.
type OverrideEngine struct {
	tax   *taxonomy.Taxonomy
	rules []Rule
}

// Trigger token sets. Shared between rules that need to agree on what
// counts as release boilerplate.
var (
	releaseMarkers = []string{"for immediate release", "media contact", "###"}

	placeholderTokens = []string{
		"contact name", "contact email", "contact phone",
		"[contact", "<contact",
		"xxx",
		"january xx", "jan xx",
		// dateline variants with an unfilled day, including stray
		// spaces and dash styles
		" los angeles—xx", " los angeles — xx", " los angeles–xx",
		" los angeles xx", " los angeles, xx", " los angeles,  xx",
		" xx, 20", " xx 20",
	}

	mediaResponseCues = []string{
		"data request response", "data request", "media inquiry",
		"q&a", "responses below", "as requested",
	}

	proposalCues = []string{
		"proposal", "application", "session", "workshop",
		"learning objectives", "abstract", "cfp",
	}

	calendarCues = []string{`"editorial calendar`, "content calendar", "social calendar"}

	quotedMonths = []string{
		`"january"`, `"february"`, `"march"`, `"april"`, `"may"`, `"june"`,
		`"july"`, `"august"`, `"september"`, `"october"`, `"november"`, `"december"`,
	}

	planCues = []string{
		"guiding question", "research question", "methodology",
		"time frame", "limitations", "scope",
	}

	interviewCues = []string{
		"interview guide", "stakeholder interview",
		"interview objectives", "interview questions",
	}

	workbackCues = []string{"work back plan", "workback", "reverse timeline"}

	speakingCues = []string{"speaking opportunities", "call for speakers", "cfp"}

	donationCues = []string{
		"givebutter", "donation page", "donor cta",
		"donate", "your gift", "make a gift",
	}

	bioCues = []string{" bio", "biograph", "panelist", "about the speaker", "headshot"}
)

// NewOverrideEngine builds the rule table over the given taxonomy.
func NewOverrideEngine(tax *taxonomy.Taxonomy) *OverrideEngine {
	e := &OverrideEngine{tax: tax}
	e.rules = e.buildRules()
	return e
}

// Apply evaluates every rule in table order. Individual effects respect the
// lock; the engine never stops early because later rules may carry
// lock-bypassing corrections (the pitch conflict rule).
func (e *OverrideEngine) Apply(res *Result, rc RuleContext) {
	for _, rule := range e.rules {
		if rule.When(rc) {
			rule.Then(res, rc)
		}
	}
}

// Rules exposes the ordered table for rule-by-rule tests.
func (e *OverrideEngine) Rules() []Rule {
	return e.rules
}

// setLabel is the standard rule effect: respect an existing lock, apply the
// label when the taxonomy allows it, raise the confidence floor (never
// lower), and optionally lock.
func (e *OverrideEngine) setLabel(res *Result, label string, floor float64, lock bool) {
	if res.Locked() {
		return
	}
	if !e.tax.Contains(label) {
		return
	}

	if res.DocType != label {
		res.DocType = label
	}
	if res.Confidence < floor {
		res.Confidence = floor
	}
	res.Decider = PrecedenceExplicitRule
	if lock {
		res.Lock = Locked
	}
}

func (e *OverrideEngine) buildRules() []Rule {
	return []Rule{
		{
			// Explicit release boilerplate is the strongest body signal.
			Name: "release_boilerplate",
			When: func(rc RuleContext) bool { return rc.hasAny(releaseMarkers) },
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "press_release", 0.90, true)
			},
		},
		{
			// Filename evidence is treated as equally authoritative to
			// body markers.
			Name: "release_filename",
			When: func(rc RuleContext) bool { return rc.filenameHas("release") },
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "press_release", 0.90, true)
			},
		},
		{
			// Conflict rule: a "pitch" file carrying release boilerplate and
			// unfilled placeholders is a template artifact. Route it to the
			// filename's label but cap confidence so it reaches human review
			// instead of asserting false certainty. This correction
			// deliberately bypasses an earlier boilerplate lock.
			Name: "pitch_template_conflict",
			When: func(rc RuleContext) bool {
				return rc.filenameHas("pitch") &&
					rc.hasAny(releaseMarkers) &&
					rc.hasAny(placeholderTokens)
			},
			Then: func(res *Result, rc RuleContext) {
				if !e.tax.Contains("pitch_email") {
					return
				}
				res.DocType = "pitch_email"
				if res.Confidence > 0.60 {
					res.Confidence = 0.60
				}
				res.Decider = PrecedenceExplicitRule
				res.Lock = Locked
			},
		},
		{
			// Media responses (data requests, inquiries, Q&A) before the
			// pitch and bio rules; talking points are a different beast.
			Name: "media_response",
			When: func(rc RuleContext) bool {
				if rc.has("talking points") {
					return false
				}
				return rc.hasAny(mediaResponseCues) ||
					rc.filenameHas("data request response") ||
					rc.filenameHas("fox response") ||
					rc.filenameHas("lat data request")
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "media_response", 0.91, true)
			},
		},
		{
			// Filename beats accidental bios for real guides.
			Name: "interview_guide_filename",
			When: func(rc RuleContext) bool { return rc.filenameHas("interview guide") },
			Then: func(res *Result, rc RuleContext) {
				e.setInterviewGuide(res)
			},
		},
		{
			Name: "media_list_filename",
			When: func(rc RuleContext) bool {
				return rc.Kind == documents.KindTabular && rc.filenameHas("media list")
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "media_list", 0.90, true)
			},
		},
		{
			// "statement" in the filename prefers press_statement when the
			// body lacks release boilerplate.
			Name: "statement_filename",
			When: func(rc RuleContext) bool {
				return rc.filenameHas("statement") && !rc.hasAny(releaseMarkers)
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "press_statement", 0.90, false)
			},
		},
		{
			Name: "speaking_tracker_filename",
			When: func(rc RuleContext) bool {
				return rc.Kind == documents.KindTabular && rc.filenameHas("speaking opportunities")
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "speaking_tracker", 0.90, true)
			},
		},
		{
			Name: "conference_proposal",
			When: func(rc RuleContext) bool {
				return strings.Contains(rc.Path, "conference") && rc.hasAny(proposalCues)
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "conference_proposal", 0.90, true)
			},
		},
		{
			Name: "editorial_calendar",
			When: func(rc RuleContext) bool {
				if rc.Kind != documents.KindTabular {
					return false
				}
				return rc.has("editorial calendar") ||
					rc.hasAny(calendarCues) ||
					rc.hasAny(quotedMonths)
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "editorial_calendar", 0.90, true)
			},
		},
		{
			Name: "analysis_plan",
			When: func(rc RuleContext) bool {
				return rc.filenameHas("media analysis plan") || rc.hasAny(planCues)
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "work_plan|strategy_memo", 0.90, true)
			},
		},
		{
			Name: "interview_guide_body",
			When: func(rc RuleContext) bool { return rc.hasAny(interviewCues) },
			Then: func(res *Result, rc RuleContext) {
				e.setInterviewGuide(res)
			},
		},
		{
			Name: "workback_plan",
			When: func(rc RuleContext) bool { return rc.hasAny(workbackCues) },
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "workback_plan", 0.90, false)
			},
		},
		{
			// Timeline only when the filename or path says so, and the body
			// is not actually an interview document.
			Name: "timeline",
			When: func(rc RuleContext) bool {
				named := rc.filenameHas("timeline") || strings.Contains(rc.Path, "timeline")
				return named && !rc.hasAny([]string{"stakeholder interview", "interview"})
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "timeline", 0.90, false)
			},
		},
		{
			Name: "speaking_tracker_body",
			When: func(rc RuleContext) bool { return rc.hasAny(speakingCues) },
			Then: func(res *Result, rc RuleContext) {
				switch {
				case e.tax.Contains("speaking_tracker"):
					e.setLabel(res, "speaking_tracker", 0.90, false)
				case e.tax.Contains("competitive_analysis"):
					e.setLabel(res, "competitive_analysis", 0.85, false)
				default:
					e.setLabel(res, "media_list", 0.85, false)
				}
			},
		},
		{
			Name: "donation_copy",
			When: func(rc RuleContext) bool { return rc.hasAny(donationCues) },
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "platform_copy_edits", 0.90, false)
			},
		},
		{
			Name: "pitch_filename",
			When: func(rc RuleContext) bool {
				named := rc.filenameHas("pitch") || rc.filenameHas("embargo")
				return named && !rc.hasAny(releaseMarkers)
			},
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "pitch_email", 0.92, true)
			},
		},
		{
			// Bios last among the topical rules so proposals and guides win.
			Name: "bio_profile",
			When: func(rc RuleContext) bool { return rc.hasAny(bioCues) },
			Then: func(res *Result, rc RuleContext) {
				e.setLabel(res, "bio_profile", 0.90, false)
			},
		},
		{
			// Correction: talking points mis-bucketed into platform copy.
			Name: "talking_points_correction",
			When: func(rc RuleContext) bool { return rc.has("talking points") },
			Then: func(res *Result, rc RuleContext) {
				if res.DocType == "platform_copy_edits" {
					e.setLabel(res, "talking_points", 0.90, true)
				}
			},
		},
	}
}

func (e *OverrideEngine) setInterviewGuide(res *Result) {
	if e.tax.Contains("interview_guide") {
		e.setLabel(res, "interview_guide", 0.90, true)
		return
	}
	e.setLabel(res, "interview_question_bank", 0.90, true)
}
