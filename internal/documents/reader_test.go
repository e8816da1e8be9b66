package documents_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/curator/internal/documents"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadAll(t *testing.T) {
	input := strings.Join([]string{
		`{"source_path":"c/a.docx","sha256":"h1","extract":{"type":"text","text":"hello"}}`,
		`{"source_path":"c/deck.pptx","sha256":"h2","extract":{"type":"slides","slides":{"1":{"title":"T","body":"B"}}}}`,
		`{"source_path":"c/list.xlsx","sha256":"h3","extract":{"type":"xlsx_schema","schema":{"sheets":[{"sheet":"S1","rows":2,"cols":2,"columns":["Outlet","Email"]}]}}}`,
		`{"source_path":"c/archive.zip","sha256":"h4","extract":{"type":"skip"}}`,
		`{"source_path":"c/nohash.txt","extract":{"type":"text","text":"x"}}`,
	}, "\n")

	docs, err := documents.ReadAll(strings.NewReader(input), discard())
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("len(docs) = %d, want 3 (skip and hashless records dropped)", len(docs))
	}

	if docs[0].Kind() != documents.KindText || docs[0].Extract.Text != "hello" {
		t.Errorf("text record decoded incorrectly: %+v", docs[0])
	}

	if docs[1].Kind() != documents.KindSlides {
		t.Fatalf("slides record kind = %q", docs[1].Kind())
	}
	if len(docs[1].Extract.Slides) != 1 || docs[1].Extract.Slides[0].Title != "T" {
		t.Errorf("keyed slides decoded incorrectly: %+v", docs[1].Extract.Slides)
	}
	if docs[1].Extract.Slides[0].Number != 1 {
		t.Errorf("slide number = %d, want 1", docs[1].Extract.Slides[0].Number)
	}

	if docs[2].Kind() != documents.KindTabular {
		t.Errorf("legacy xlsx_schema kind not normalized: %q", docs[2].Kind())
	}
}

func TestReadAllSlideOrdering(t *testing.T) {
	input := `{"source_path":"c/d.pptx","sha256":"h","extract":{"type":"slides","slides":{"2":{"title":"Second"},"1":{"title":"First"},"10":{"title":"Tenth"}}}}`

	docs, err := documents.ReadAll(strings.NewReader(input), discard())
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}

	slides := docs[0].Extract.Slides
	if len(slides) != 3 {
		t.Fatalf("len(slides) = %d, want 3", len(slides))
	}
	want := []string{"First", "Second", "Tenth"}
	for i, title := range want {
		if slides[i].Title != title {
			t.Errorf("slides[%d].Title = %q, want %q (numeric ordering)", i, slides[i].Title, title)
		}
	}
}

func TestReadAllMalformedLine(t *testing.T) {
	if _, err := documents.ReadAll(strings.NewReader("{not json"), discard()); err == nil {
		t.Error("expected error for malformed JSONL line")
	}
}

func TestFilenameAndPathContext(t *testing.T) {
	doc := documents.Document{SourcePath: "/data/raw/q3/comms/press/Q3_Press_Release_FINAL.pdf"}

	if got := doc.Filename(); got != "Q3_Press_Release_FINAL.pdf" {
		t.Errorf("Filename = %q", got)
	}
	if got := doc.PathContext(); got != "q3 / comms / press / Q3_Press_Release_FINAL.pdf" {
		t.Errorf("PathContext = %q", got)
	}

	windows := documents.Document{SourcePath: `C:\docs\pitch.docx`}
	if got := windows.Filename(); got != "pitch.docx" {
		t.Errorf("windows Filename = %q", got)
	}
}
