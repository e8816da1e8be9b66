package engine_test

import (
	"testing"

	"github.com/JaimeStill/curator/internal/documents"
	"github.com/JaimeStill/curator/internal/engine"
	"github.com/JaimeStill/curator/internal/taxonomy"
)

func tabularDoc(name string) *documents.Document {
	return &documents.Document{
		SourcePath:  "campaigns/acme/" + name,
		ContentHash: "abc123",
		Extract:     documents.Extract{Type: documents.KindTabular},
	}
}

func slidesDoc(name string) *documents.Document {
	return &documents.Document{
		SourcePath:  "campaigns/acme/" + name,
		ContentHash: "def456",
		Extract:     documents.Extract{Type: documents.KindSlides},
	}
}

func TestConstraintEnforcer(t *testing.T) {
	tax := testTaxonomy(t)
	cfg := testEngineConfig(t)
	enforcer := engine.NewConstraintEnforcer(tax, cfg)

	tests := []struct {
		name           string
		doc            *documents.Document
		start          engine.Result
		hay            string
		wantType       string
		wantAdjusted   string
		wantConfidence float64
	}{
		{
			name:           "compatible tabular label untouched",
			doc:            tabularDoc("tracker.xlsx"),
			start:          engine.Result{DocType: "coverage_tracker", Confidence: 0.9},
			hay:            "coverage placement",
			wantType:       "coverage_tracker",
			wantConfidence: 0.9,
		},
		{
			name:           "press release on a workbook becomes media_list from columns",
			doc:            tabularDoc("contacts.xlsx"),
			start:          engine.Result{DocType: "press_release", Confidence: 0.95},
			hay:            "columns reporter outlet beat email",
			wantType:       "media_list",
			wantAdjusted:   "press_release",
			wantConfidence: 0.85,
		},
		{
			name:           "story bank cue wins over column cues",
			doc:            tabularDoc("ideas.xlsx"),
			start:          engine.Result{DocType: "talking_points", Confidence: 0.7},
			hay:            "story bank of pitches with reporter column",
			wantType:       "story_bank",
			wantAdjusted:   "talking_points",
			wantConfidence: 0.7,
		},
		{
			name:           "competitor cue selects competitive_analysis",
			doc:            tabularDoc("landscape.xlsx"),
			start:          engine.Result{DocType: "press_statement", Confidence: 0.9},
			hay:            "competitor share of voice",
			wantType:       "competitive_analysis",
			wantAdjusted:   "press_statement",
			wantConfidence: 0.85,
		},
		{
			name:           "benchmark matrix selects competitive_analysis",
			doc:            tabularDoc("scoring.xlsx"),
			start:          engine.Result{DocType: "press_statement", Confidence: 0.9},
			hay:            "benchmark matrix against peer organizations",
			wantType:       "competitive_analysis",
			wantAdjusted:   "press_statement",
			wantConfidence: 0.85,
		},
		{
			name:           "bare calendar cue selects editorial_calendar",
			doc:            tabularDoc("q1.xlsx"),
			start:          engine.Result{DocType: "press_release", Confidence: 0.9},
			hay:            "q1 calendar of planned posts",
			wantType:       "editorial_calendar",
			wantAdjusted:   "press_release",
			wantConfidence: 0.85,
		},
		{
			name:           "headline and url cues select coverage_tracker",
			doc:            tabularDoc("clips.xlsx"),
			start:          engine.Result{DocType: "press_release", Confidence: 0.9},
			hay:            "headline url published status",
			wantType:       "coverage_tracker",
			wantAdjusted:   "press_release",
			wantConfidence: 0.85,
		},
		{
			name:           "cfp cue selects speaking_tracker",
			doc:            tabularDoc("panels.xlsx"),
			start:          engine.Result{DocType: "press_release", Confidence: 0.9},
			hay:            "cfp deadlines for the fall",
			wantType:       "speaking_tracker",
			wantAdjusted:   "press_release",
			wantConfidence: 0.85,
		},
		{
			name:           "cueless workbook defaults to media_list",
			doc:            tabularDoc("untitled.xlsx"),
			start:          engine.Result{DocType: "messaging_one_pager", Confidence: 0.5},
			hay:            "sheet1 10 rows",
			wantType:       "media_list",
			wantAdjusted:   "messaging_one_pager",
			wantConfidence: 0.5,
		},
		{
			name:           "deck with analysis cues becomes analysis report",
			doc:            slidesDoc("results.pptx"),
			start:          engine.Result{DocType: "press_release", Confidence: 0.9},
			hay:            "kpi findings from the campaign",
			wantType:       "deck|analysis_report",
			wantAdjusted:   "press_release",
			wantConfidence: 0.85,
		},
		{
			name:           "deck without analysis cues becomes training materials",
			doc:            slidesDoc("onboarding.pptx"),
			start:          engine.Result{DocType: "talking_points", Confidence: 0.9},
			hay:            "welcome to the team",
			wantType:       "deck|training_materials",
			wantAdjusted:   "talking_points",
			wantConfidence: 0.85,
		},
		{
			name:           "text documents are unconstrained",
			doc:            &documents.Document{SourcePath: "memo.docx", Extract: documents.Extract{Type: documents.KindText}},
			start:          engine.Result{DocType: "press_release", Confidence: 0.95},
			hay:            "for immediate release",
			wantType:       "press_release",
			wantConfidence: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.start
			enforcer.Apply(&res, tt.doc, tt.hay)

			if res.DocType != tt.wantType {
				t.Errorf("doc type = %q, want %q", res.DocType, tt.wantType)
			}
			if res.ConstraintAdjustedFrom != tt.wantAdjusted {
				t.Errorf("adjusted from = %q, want %q", res.ConstraintAdjustedFrom, tt.wantAdjusted)
			}
			if res.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", res.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestConstraintEnforcerSpeakingFallsBackToMediaList(t *testing.T) {
	tax := &taxonomy.Taxonomy{
		Labels: []string{"press_release", "media_list", "editorial_calendar"},
	}
	if err := tax.Finalize(); err != nil {
		t.Fatalf("finalize taxonomy: %v", err)
	}
	enforcer := engine.NewConstraintEnforcer(tax, testEngineConfig(t))

	res := engine.Result{DocType: "press_release", Confidence: 0.9}
	enforcer.Apply(&res, tabularDoc("panels.xlsx"), "call for speakers deadlines")

	if res.DocType != "media_list" {
		t.Errorf("doc type = %q, want media_list when speaking_tracker is not in the taxonomy", res.DocType)
	}
}

func TestConstraintEnforcerAppliesToLockedResults(t *testing.T) {
	tax := testTaxonomy(t)
	cfg := testEngineConfig(t)
	enforcer := engine.NewConstraintEnforcer(tax, cfg)

	res := engine.Result{DocType: "press_release", Confidence: 0.95, Lock: engine.Locked}
	enforcer.Apply(&res, tabularDoc("contacts.xlsx"), "reporter outlet beat")

	if res.DocType != "media_list" {
		t.Errorf("doc type = %q, want media_list despite lock", res.DocType)
	}
	if res.Confidence != 0.85 {
		t.Errorf("confidence = %v, want capped 0.85", res.Confidence)
	}
}
