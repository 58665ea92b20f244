package extract

import (
	"errors"
	"strings"
	"testing"

	"answerforge/internal/qbank"
)

func TestFormatForFile(t *testing.T) {
	cases := map[string]qbank.Format{
		"bank.pdf":   qbank.FormatPDF,
		"bank.DOCX":  qbank.FormatWord,
		"scan.png":   qbank.FormatImage,
		"notes.txt":  qbank.FormatText,
		"notes.md":   qbank.FormatMarkdown,
		"page.html":  qbank.FormatHTML,
		"table.csv":  qbank.FormatCSV,
		"photo.jpeg": qbank.FormatImage,
	}
	for name, want := range cases {
		got, err := FormatForFile(name)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}

	if _, err := FormatForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedFile("archive.zip") {
		t.Error("zip should not be supported")
	}
}

func TestDocument_Text(t *testing.T) {
	text, err := Document([]byte("line one\nline two"), qbank.FormatText, "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "line one\nline two" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestDocument_EmptyIsErrNoText(t *testing.T) {
	_, err := Document([]byte("   \n\n  "), qbank.FormatText, "blank.txt")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestDocument_SentinelOnlyIsErrNoText(t *testing.T) {
	_, err := Document([]byte("--- Page 1 ---\n--- Page 2 ---\n"), qbank.FormatText, "empty.txt")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for sentinel-only text, got %v", err)
	}
}

func TestDocument_UnknownFormat(t *testing.T) {
	if _, err := Document([]byte("x"), qbank.Format("weird"), "x.weird"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCSVExtractor(t *testing.T) {
	in := "topic,question\nalgebra,solve for x\ngeometry,find the angle"
	var ex CSVExtractor
	text, err := ex.Extract(strings.NewReader(in), "bank.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "topic: algebra, question: solve for x\ntopic: geometry, question: find the angle"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestCSVExtractor_RaggedRows(t *testing.T) {
	in := "a,b\n1,2,3\nonly"
	var ex CSVExtractor
	text, err := ex.Extract(strings.NewReader(in), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "a: 1, b: 2, 3") {
		t.Errorf("extra cell dropped: %q", text)
	}
	if !strings.Contains(text, "a: only") {
		t.Errorf("short row dropped: %q", text)
	}
}

func TestMarkdownExtractor(t *testing.T) {
	in := "# Chapter One\n\nSome body text here.\n\n- item alpha\n- item beta\n\n```\ncode line\n```\n"
	var ex MarkdownExtractor
	text, err := ex.Extract(strings.NewReader(in), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Chapter One", "Some body text here.", "item alpha", "item beta", "code line"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
	if strings.Contains(text, "#") || strings.Contains(text, "```") {
		t.Errorf("markdown syntax leaked: %q", text)
	}
}

func TestHTMLExtractor(t *testing.T) {
	in := `<html><head><title>skip me</title><style>p{color:red}</style></head>
<body><h1>Questions</h1><p>What is gravity?</p><script>var x=1;</script></body></html>`
	var ex HTMLExtractor
	text, err := ex.Extract(strings.NewReader(in), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Questions") || !strings.Contains(text, "What is gravity?") {
		t.Errorf("content missing: %q", text)
	}
	if strings.Contains(text, "skip me") || strings.Contains(text, "color:red") || strings.Contains(text, "var x") {
		t.Errorf("head/script/style content leaked: %q", text)
	}
}

func TestReferenceTexts_SkipsBadFiles(t *testing.T) {
	files := []NamedBytes{
		{Name: "good.txt", Data: []byte("usable reference text")},
		{Name: "bad.zip", Data: []byte("whatever")},
		{Name: "empty.txt", Data: []byte("  ")},
	}
	texts, errs := ReferenceTexts(files)
	if len(texts) != 1 {
		t.Fatalf("expected 1 usable text, got %d", len(texts))
	}
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if texts[0] != "usable reference text" {
		t.Errorf("unexpected text: %q", texts[0])
	}
}

func TestImageExtractor_OCRUnavailable(t *testing.T) {
	// Without the ocr build tag the stub engine reports unavailability.
	var ex ImageExtractor
	_, err := ex.Extract(strings.NewReader("not a real image"), "scan.png")
	if err == nil {
		t.Skip("ocr engine compiled in")
	}
	if !errors.Is(err, ErrOCRUnavailable) {
		t.Errorf("expected ErrOCRUnavailable, got %v", err)
	}
}
