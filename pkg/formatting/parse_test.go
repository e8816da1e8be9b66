package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/curator/pkg/formatting"
)

type rawResult struct {
	DocType    string  `json:"doc_type"`
	Confidence float64 `json:"confidence"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType string
		wantConf float64
	}{
		{
			name:     "plain json",
			content:  `{"doc_type":"press_release","confidence":0.9}`,
			wantType: "press_release",
			wantConf: 0.9,
		},
		{
			name:     "fenced code block",
			content:  "```json\n{\"doc_type\":\"pitch_email\",\"confidence\":0.7}\n```",
			wantType: "pitch_email",
			wantConf: 0.7,
		},
		{
			name:     "fence without language tag",
			content:  "```\n{\"doc_type\":\"media_list\",\"confidence\":0.8}\n```",
			wantType: "media_list",
			wantConf: 0.8,
		},
		{
			name:     "noisy text with embedded object",
			content:  "some pre\n{ \"doc_type\": \"bio_profile\", \"confidence\": 0.5 }\npost",
			wantType: "bio_profile",
			wantConf: 0.5,
		},
		{
			name:     "leading whitespace",
			content:  "\n\n  {\"doc_type\":\"timeline\",\"confidence\":0.6}",
			wantType: "timeline",
			wantConf: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[rawResult](tt.content)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got.DocType != tt.wantType {
				t.Errorf("DocType = %q, want %q", got.DocType, tt.wantType)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	contents := []string{
		"",
		"not json at all",
		"```json\nstill not json\n```",
	}

	for _, content := range contents {
		if _, err := formatting.Parse[rawResult](content); !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("Parse(%q) error = %v, want ErrParseFailed", content, err)
		}
	}
}
