package documents_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/curator/internal/documents"
)

func textDoc(text string) *documents.Document {
	return &documents.Document{
		SourcePath:  "campaign/docs/a.txt",
		ContentHash: "abc",
		Extract:     documents.Extract{Type: documents.KindText, Text: text},
	}
}

func TestBuildSampleTextWithinBudget(t *testing.T) {
	doc := textDoc("short document")
	if got := documents.BuildSample(doc, 100); got != "short document" {
		t.Errorf("BuildSample = %q, want verbatim text", got)
	}
}

func TestBuildSampleTextHeadAndTail(t *testing.T) {
	text := strings.Repeat("A", 3000) + "END"
	doc := textDoc(text)

	got := documents.BuildSample(doc, 1000)

	if len(got) > 1000 {
		t.Errorf("sample length = %d, exceeds budget 1000", len(got))
	}
	if !strings.Contains(got, "END") {
		t.Error("tail portion lost during truncation")
	}
	if !strings.HasPrefix(got, "AAA") {
		t.Error("head portion lost during truncation")
	}
	if !strings.Contains(got, "\n...\n") {
		t.Error("missing head/tail separator")
	}
}

func TestBuildSampleTextTinyBudget(t *testing.T) {
	doc := textDoc(strings.Repeat("B", 50))

	got := documents.BuildSample(doc, 4)

	if got != "BBBB" {
		t.Errorf("BuildSample = %q, want head-only fallback for tiny budget", got)
	}
}

func TestBuildSampleSlides(t *testing.T) {
	doc := &documents.Document{
		SourcePath:  "campaign/deck.pptx",
		ContentHash: "abc",
		Extract: documents.Extract{
			Type: documents.KindSlides,
			Slides: []documents.Slide{
				{Number: 1, Title: "Intro", Body: "Welcome"},
				{Number: 2},
				{Number: 3, Title: "Findings", Body: "KPIs up"},
				{Number: 4, Title: "Never sampled", Body: "fourth slide"},
			},
		},
	}

	got := documents.BuildSample(doc, 500)

	if !strings.Contains(got, "[Slide 1] Intro\nWelcome") {
		t.Errorf("missing first slide: %q", got)
	}
	if !strings.Contains(got, "[Slide 3] Findings") {
		t.Errorf("missing third slide: %q", got)
	}
	if strings.Contains(got, "Never sampled") {
		t.Error("sampled beyond the first three slides")
	}
	if strings.Contains(got, "[Slide 2]") {
		t.Error("empty slide should be skipped")
	}
}

func TestBuildSampleSchema(t *testing.T) {
	doc := &documents.Document{
		SourcePath:  "campaign/Media_List_Q1.xlsx",
		ContentHash: "abc",
		Extract: documents.Extract{
			Type: documents.KindTabular,
			Schema: &documents.TabularSchema{
				Sheets: []documents.Sheet{
					{Name: "Outlets", Rows: 120, Cols: 4, Columns: []string{"Outlet", "Reporter", "Email", "Beat"}},
				},
			},
		},
	}

	got := documents.BuildSample(doc, 500)

	for _, want := range []string{"Outlets", "Reporter", "Beat"} {
		if !strings.Contains(got, want) {
			t.Errorf("schema sample missing %q: %q", want, got)
		}
	}
}

func TestBuildSampleDeterministic(t *testing.T) {
	doc := textDoc(strings.Repeat("word ", 2000))

	first := documents.BuildSample(doc, 1000)
	for i := 0; i < 5; i++ {
		if got := documents.BuildSample(doc, 1000); got != first {
			t.Fatal("BuildSample is not deterministic")
		}
	}
}

func TestBuildSampleSkipKind(t *testing.T) {
	doc := &documents.Document{
		SourcePath:  "campaign/archive.zip",
		ContentHash: "abc",
		Extract:     documents.Extract{Type: documents.KindSkip},
	}
	if got := documents.BuildSample(doc, 100); got != "" {
		t.Errorf("BuildSample = %q, want empty for skip kind", got)
	}
}
