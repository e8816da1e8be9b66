package engine_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/curator/internal/engine"
	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()

	tax := &taxonomy.Taxonomy{
		Labels: []string{
			"press_release",
			"press_statement",
			"pitch_email",
			"media_response",
			"talking_points",
			"messaging_one_pager",
			"bio_profile",
			"interview_guide",
			"conference_proposal",
			"editorial_calendar",
			"media_list",
			"coverage_tracker",
			"story_bank",
			"speaking_tracker",
			"competitive_analysis",
			"workback_plan",
			"timeline",
			"work_plan|strategy_memo",
			"platform_copy_edits",
			"deck|training_materials",
			"deck|analysis_report",
		},
		Synonyms: map[string][]string{
			"media_list":       {"outlet", "reporter", "beat"},
			"coverage_tracker": {"coverage", "placement"},
			"press_release":    {"for immediate release"},
		},
	}
	if err := tax.Finalize(); err != nil {
		t.Fatalf("finalize taxonomy: %v", err)
	}

	return tax
}

func confidence(v float64) *float64 {
	return &v
}

func TestCoerce(t *testing.T) {
	tax := testTaxonomy(t)

	tests := []struct {
		name           string
		raw            oracle.RawResult
		wantType       string
		wantConfidence float64
		wantCoerced    bool
	}{
		{
			name:           "valid label passes through",
			raw:            oracle.RawResult{DocType: "press_release", Confidence: confidence(0.82)},
			wantType:       "press_release",
			wantConfidence: 0.82,
		},
		{
			name:           "missing confidence defaults",
			raw:            oracle.RawResult{DocType: "media_list"},
			wantType:       "media_list",
			wantConfidence: 0.5,
		},
		{
			name:           "confidence clamped to one",
			raw:            oracle.RawResult{DocType: "media_list", Confidence: confidence(1.7)},
			wantType:       "media_list",
			wantConfidence: 1,
		},
		{
			name:           "unknown label coerced to sentinel",
			raw:            oracle.RawResult{DocType: "newsletter_blurb", Confidence: confidence(0.9)},
			wantType:       tax.UnknownLabel,
			wantConfidence: 0.6,
			wantCoerced:    true,
		},
		{
			name:           "coerced missing confidence defaults low",
			raw:            oracle.RawResult{DocType: "newsletter_blurb"},
			wantType:       tax.UnknownLabel,
			wantConfidence: 0.4,
			wantCoerced:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Coerce(tt.raw, tax)

			if res.DocType != tt.wantType {
				t.Errorf("doc type = %q, want %q", res.DocType, tt.wantType)
			}
			if res.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", res.Confidence, tt.wantConfidence)
			}
			if res.Coerced != tt.wantCoerced {
				t.Errorf("coerced = %v, want %v", res.Coerced, tt.wantCoerced)
			}
		})
	}
}

func TestCoerceBoundsEvidence(t *testing.T) {
	tax := testTaxonomy(t)

	long := strings.Repeat("x", 500)
	raw := oracle.RawResult{
		DocType:    "press_release",
		DocSubtype: strings.Repeat("s", 500),
		Evidence:   []string{long, long, long, long, long, long, long},
	}

	res := engine.Coerce(raw, tax)

	if len(res.Evidence) != 5 {
		t.Fatalf("evidence entries = %d, want 5", len(res.Evidence))
	}
	for i, e := range res.Evidence {
		if len(e) > 120 {
			t.Errorf("evidence[%d] length = %d, want <= 120", i, len(e))
		}
	}
	if len(res.DocSubtype) > 160 {
		t.Errorf("subtype length = %d, want <= 160", len(res.DocSubtype))
	}
}

func TestCoercePreservesAudit(t *testing.T) {
	tax := testTaxonomy(t)

	raw := oracle.RawResult{
		DocType:           "newsletter_blurb",
		ProposedNewLabel:  "newsletter_blurb",
		UncertaintyReason: "no matching label",
	}

	res := engine.Coerce(raw, tax)

	if res.ModelDocType != "newsletter_blurb" {
		t.Errorf("model doc type = %q, want original label", res.ModelDocType)
	}
	if res.ProposedNewLabel != "newsletter_blurb" {
		t.Errorf("proposed label = %q, want preserved", res.ProposedNewLabel)
	}
	if res.UncertaintyReason != "no matching label" {
		t.Errorf("uncertainty reason = %q, want preserved", res.UncertaintyReason)
	}
}
