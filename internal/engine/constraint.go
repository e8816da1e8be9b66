package engine

import (
	"strings"

	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

// Labels that are structurally plausible for each extract kind. A tabular
// workbook cannot be a press release no matter what the oracle says.
var (
	tabularLabels = map[string]struct{}{
		"editorial_calendar":   {},
		"media_list":           {},
		"coverage_tracker":     {},
		"story_bank":           {},
		"speaking_tracker":     {},
		"competitive_analysis": {},
	}

	slideLabels = map[string]struct{}{
		"deck|training_materials": {},
		"deck|analysis_report":    {},
	}
)

// ConstraintEnforcer reconciles a label with the document's extract kind.
// Format validity outranks every upstream decision, so it runs on locked
// results too.
type ConstraintEnforcer struct {
	tax *taxonomy.Taxonomy
	cfg *Config
}

func NewConstraintEnforcer(tax *taxonomy.Taxonomy, cfg *Config) *ConstraintEnforcer {
	return &ConstraintEnforcer{tax: tax, cfg: cfg}
}

// Apply reassigns res to a kind-compatible label when the current label is
// structurally impossible. An adjusted result records the displaced label
// and has its confidence capped so it surfaces in triage.
func (c *ConstraintEnforcer) Apply(res *Result, doc *documents.Document, hay string) {
	var adjusted string

	switch doc.Kind() {
	case documents.KindTabular:
		if _, ok := tabularLabels[res.DocType]; ok {
			return
		}
		adjusted = c.tabularFallback(strings.ToLower(doc.Filename()), hay)
	case documents.KindSlides:
		if _, ok := slideLabels[res.DocType]; ok {
			return
		}
		adjusted = c.slideFallback(hay)
	default:
		return
	}

	if !c.tax.Contains(adjusted) {
		return
	}

	res.ConstraintAdjustedFrom = res.DocType
	res.DocType = adjusted
	if res.Confidence > c.cfg.ConstraintCeiling {
		res.Confidence = c.cfg.ConstraintCeiling
	}
	res.Decider = PrecedenceConstraintAdjustment
}

// Workbook fallback cue vocabulary, most specific first.
var (
	competitiveCues = []string{
		"peer org", "peer organizations", "competitive", "competitor",
		"benchmark", "matrix", "rubric", "criteria",
	}
	mediaListColumns = []string{"reporter", "outlet", "beat", "email"}
	coverageCues     = []string{
		"coverage", "headline", "link", "status", "published", "url",
		"earned media",
	}
	speakingTrackerCues = []string{"speaking", "cfp", "call for speakers"}
)

// tabularFallback picks the most plausible workbook label from content cues,
// evaluated in decreasing specificity. media_list is the terminal default
// because untyped tracking sheets are overwhelmingly contact lists.
func (c *ConstraintEnforcer) tabularFallback(filename, hay string) string {
	switch {
	case strings.Contains(hay, "story bank") || strings.Contains(filename, "story bank"):
		return "story_bank"
	case containsAny(hay, competitiveCues):
		return "competitive_analysis"
	case strings.Contains(hay, "media list") || strings.Contains(filename, "media list"):
		return "media_list"
	case strings.Contains(hay, "calendar"):
		return "editorial_calendar"
	case containsAny(hay, mediaListColumns):
		return "media_list"
	case containsAny(hay, coverageCues):
		return "coverage_tracker"
	case containsAny(hay, speakingTrackerCues):
		if c.tax.Contains("speaking_tracker") {
			return "speaking_tracker"
		}
		return "media_list"
	default:
		return "media_list"
	}
}

func (c *ConstraintEnforcer) slideFallback(hay string) string {
	if containsAny(hay, []string{"analysis", "findings", "insights", "kpi"}) {
		return "deck|analysis_report"
	}
	return "deck|training_materials"
}

func containsAny(hay string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(hay, n) {
			return true
		}
	}
	return false
}
