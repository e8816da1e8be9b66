package engine_test

import (
	"testing"

	"github.com/JaimeStill/curator/internal/engine"
)

func testEngineConfig(t *testing.T) *engine.Config {
	t.Helper()

	cfg := &engine.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize engine config: %v", err)
	}

	return cfg
}

func TestGenericVoter(t *testing.T) {
	tax := testTaxonomy(t)
	cfg := testEngineConfig(t)
	voter := engine.NewGenericVoter(tax, cfg)

	tests := []struct {
		name           string
		start          engine.Result
		hay            string
		wantType       string
		wantConfidence float64
	}{
		{
			name:           "two token hits relabel a generic bucket",
			start:          engine.Result{DocType: "messaging_one_pager", Confidence: 0.9},
			hay:            "columns outlet reporter email",
			wantType:       "media_list",
			wantConfidence: 0.9,
		},
		{
			name:           "vote raises confidence to the floor",
			start:          engine.Result{DocType: "messaging_one_pager", Confidence: 0.5},
			hay:            "columns outlet reporter email",
			wantType:       "media_list",
			wantConfidence: 0.88,
		},
		{
			name:           "single hit is not enough",
			start:          engine.Result{DocType: "messaging_one_pager", Confidence: 0.5},
			hay:            "one mention of an outlet",
			wantType:       "messaging_one_pager",
			wantConfidence: 0.5,
		},
		{
			name:           "confident specific label is never displaced",
			start:          engine.Result{DocType: "talking_points", Confidence: 0.9},
			hay:            "outlet reporter beat coverage",
			wantType:       "talking_points",
			wantConfidence: 0.9,
		},
		{
			name:           "low confidence specific label is eligible",
			start:          engine.Result{DocType: "talking_points", Confidence: 0.5},
			hay:            "outlet reporter beat",
			wantType:       "media_list",
			wantConfidence: 0.88,
		},
		{
			name:           "taxonomy order breaks score ties",
			start:          engine.Result{DocType: "messaging_one_pager", Confidence: 0.4},
			hay:            "outlet reporter coverage placement",
			wantType:       "media_list",
			wantConfidence: 0.88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.start
			voter.Apply(&res, tt.hay)

			if res.DocType != tt.wantType {
				t.Errorf("doc type = %q, want %q", res.DocType, tt.wantType)
			}
			if res.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", res.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestGenericVoterRespectsLock(t *testing.T) {
	tax := testTaxonomy(t)
	cfg := testEngineConfig(t)
	voter := engine.NewGenericVoter(tax, cfg)

	res := engine.Result{DocType: "press_statement", Confidence: 0.5, Lock: engine.Locked}
	voter.Apply(&res, "outlet reporter beat")

	if res.DocType != "press_statement" {
		t.Errorf("doc type = %q, want locked label preserved", res.DocType)
	}
}
