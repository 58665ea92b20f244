package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func entry(id, subject string, at time.Time) Entry {
	return Entry{
		ID:            id,
		Subject:       subject,
		Mode:          "Understand Mode",
		QuestionCount: 3,
		GeneratedAt:   at,
	}
}

func TestLog_AppendAndList(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"))
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	if err := l.Append(entry("a", "Physics", base)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Append(entry("b", "Biology", base.Add(time.Hour))); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "a" {
		t.Errorf("expected newest first, got %q then %q", entries[0].ID, entries[1].ID)
	}
}

func TestLog_ListMissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "absent.jsonl"))
	entries, err := l.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list, got %d", len(entries))
	}
}

func TestLog_DeleteTombstonesAndRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "answers.docx")
	if err := os.WriteFile(out, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(filepath.Join(dir, "history.jsonl"))
	e := entry("a", "Physics", time.Now())
	e.OutputPath = out
	if err := l.Append(e); err != nil {
		t.Fatalf("append: %v", err)
	}

	ok, err := l.Delete("a")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to find the entry")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output document not removed")
	}

	entries, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("tombstoned entry still listed: %v", entries)
	}
}

func TestLog_DeleteUnknownID(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"))
	if err := l.Append(entry("a", "Physics", time.Now())); err != nil {
		t.Fatalf("append: %v", err)
	}
	ok, err := l.Delete("missing")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Error("expected ok=false for unknown id")
	}
}

func TestLog_Get(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"))
	if err := l.Append(entry("a", "Physics", time.Now())); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, ok, err := l.Get("a")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Subject != "Physics" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestLog_Clear(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "answers.docx")
	if err := os.WriteFile(out, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(filepath.Join(dir, "history.jsonl"))
	e := entry("a", "Physics", time.Now())
	e.OutputPath = out
	l.Append(e)
	l.Append(entry("b", "Biology", time.Now()))

	n, err := l.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output document not removed")
	}
	entries, _ := l.List()
	if len(entries) != 0 {
		t.Errorf("log not empty after clear: %v", entries)
	}
}

func TestLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l := New(path)
	if err := l.Append(entry("a", "Physics", time.Now())); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json\n")
	f.Close()

	entries, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 valid entry, got %d", len(entries))
	}
}
