package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"answerforge/internal/extract"
	"answerforge/internal/markup"
	"answerforge/internal/qbank"
)

func testMeta(n int) qbank.RunMeta {
	return qbank.RunMeta{
		Subject:       "Biology",
		Mode:          qbank.ModeUnderstand,
		QuestionCount: n,
		GeneratedAt:   time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
	}
}

func TestAnswers_RoundTrip(t *testing.T) {
	in := Input{
		Meta: testMeta(2),
		Sections: []Section{
			{
				Question: qbank.Question{Ordinal: 1, Text: "What is osmosis?"},
				Blocks:   markup.Normalize("Osmosis is the diffusion of water across a membrane.", markup.DefaultOptions("Biology")),
			},
			{
				Question: qbank.Question{Ordinal: 2, Text: "Name the cell organelles."},
				Blocks:   markup.Normalize("- nucleus\n- mitochondria\n- ribosomes", markup.DefaultOptions("Biology")),
			},
		},
	}

	data, err := Answers(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty document")
	}

	var we extract.WordExtractor
	text, err := we.Extract(bytes.NewReader(data), "answers.docx")
	if err != nil {
		t.Fatalf("re-extract failed: %v", err)
	}

	wantInOrder := []string{
		"College Answer Generator",
		"Comprehensive Answers for Biology",
		"Question 1",
		"Q1: What is osmosis?",
		"Answer:",
		"Osmosis is the diffusion of water across a membrane.",
		"Question 2",
		"Q2: Name the cell organelles.",
		"• nucleus",
		"• mitochondria",
		"• ribosomes",
	}
	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(text[pos:], want)
		if idx < 0 {
			t.Fatalf("missing or out of order: %q\nfull text:\n%s", want, text)
		}
		pos += idx + len(want)
	}
}

func TestAnswers_PlaceholderSectionLabelled(t *testing.T) {
	in := Input{
		Meta: testMeta(1),
		Sections: []Section{
			{
				Question:    qbank.Question{Ordinal: 1, Text: "Unanswerable question text."},
				Blocks:      []markup.Block{{Kind: markup.KindParagraph, Text: "Could not generate."}},
				Placeholder: true,
			},
		},
	}

	data, err := Answers(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var we extract.WordExtractor
	text, err := we.Extract(bytes.NewReader(data), "answers.docx")
	if err != nil {
		t.Fatalf("re-extract failed: %v", err)
	}
	if !strings.Contains(text, "Answer (unable to generate):") {
		t.Errorf("placeholder label missing:\n%s", text)
	}
}

func TestAnswers_CoverDetails(t *testing.T) {
	meta := testMeta(1)
	meta.CustomInstructions = true
	in := Input{
		Meta: meta,
		Sections: []Section{
			{
				Question: qbank.Question{Ordinal: 1, Text: "A question long enough to pass."},
				Blocks:   []markup.Block{{Kind: markup.KindParagraph, Text: "An answer."}},
			},
		},
	}

	data, err := Answers(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var we extract.WordExtractor
	text, err := we.Extract(bytes.NewReader(data), "answers.docx")
	if err != nil {
		t.Fatalf("re-extract failed: %v", err)
	}
	for _, want := range []string{
		"Subject: Biology",
		"Answer Mode: " + qbank.ModeUnderstand,
		"Total Questions: 1",
		"Generated On: March 14, 2026 at 3:09 PM",
		"Custom Instructions: Yes",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("cover missing %q", want)
		}
	}
}

func TestAnswers_RejectsBadOrdinals(t *testing.T) {
	in := Input{
		Meta: testMeta(1),
		Sections: []Section{
			{Question: qbank.Question{Ordinal: 5, Text: "wrongly numbered"}},
		},
	}
	if _, err := Answers(in); err == nil {
		t.Fatal("expected error for non-contiguous ordinals")
	}
}

func TestAnswers_RejectsEmptyQuestion(t *testing.T) {
	in := Input{
		Meta: testMeta(1),
		Sections: []Section{
			{Question: qbank.Question{Ordinal: 1, Text: "   "}},
		},
	}
	if _, err := Answers(in); err == nil {
		t.Fatal("expected error for empty question text")
	}
}

func TestAnswers_SpecialCharactersSurvive(t *testing.T) {
	in := Input{
		Meta: testMeta(1),
		Sections: []Section{
			{
				Question: qbank.Question{Ordinal: 1, Text: "Is 5 < 7 && 7 > 5?"},
				Blocks:   []markup.Block{{Kind: markup.KindParagraph, Text: `Yes, "5 < 7" holds & so does "7 > 5".`}},
			},
		},
	}
	data, err := Answers(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var we extract.WordExtractor
	text, err := we.Extract(bytes.NewReader(data), "answers.docx")
	if err != nil {
		t.Fatalf("re-extract failed: %v", err)
	}
	if !strings.Contains(text, "5 < 7") || !strings.Contains(text, "&") {
		t.Errorf("special characters mangled:\n%s", text)
	}
}
