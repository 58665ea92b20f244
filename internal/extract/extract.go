// Package extract converts source documents into a single normalized text
// stream. Page boundaries are marked with a sentinel line and pages keep
// their top-to-bottom order.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"answerforge/internal/qbank"
)

var (
	// ErrNoText means the document decoded cleanly but yielded no readable
	// text (empty text layer, encrypted PDF, garbled content).
	ErrNoText = errors.New("no readable text found in document")

	// ErrNoTextInImage means OCR ran but recognized nothing.
	ErrNoTextInImage = errors.New("no text recognized in image")

	// ErrOCRUnavailable means the OCR engine is not compiled in or failed to
	// start; the caller should suggest a text-based format instead.
	ErrOCRUnavailable = errors.New("ocr engine unavailable")
)

// Extractor converts raw document bytes into normalized text.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// ForFormat returns the extractor for a declared format tag.
func ForFormat(format qbank.Format) (Extractor, error) {
	switch format {
	case qbank.FormatPDF:
		return &PDFExtractor{}, nil
	case qbank.FormatWord:
		return &WordExtractor{}, nil
	case qbank.FormatImage:
		return &ImageExtractor{}, nil
	case qbank.FormatText:
		return &TextExtractor{}, nil
	case qbank.FormatMarkdown:
		return &MarkdownExtractor{}, nil
	case qbank.FormatHTML:
		return &HTMLExtractor{}, nil
	case qbank.FormatCSV:
		return &CSVExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatForFile maps a filename extension to a format tag.
func FormatForFile(filename string) (qbank.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return qbank.FormatPDF, nil
	case ".docx":
		return qbank.FormatWord, nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return qbank.FormatImage, nil
	case ".txt":
		return qbank.FormatText, nil
	case ".md", ".markdown":
		return qbank.FormatMarkdown, nil
	case ".html", ".htm":
		return qbank.FormatHTML, nil
	case ".csv":
		return qbank.FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedFile checks whether a filename maps to a known format.
func IsSupportedFile(filename string) bool {
	_, err := FormatForFile(filename)
	return err == nil
}

// Document extracts normalized text from a source document. The document is
// only read; any temp files created along the way are removed on every exit
// path.
func Document(data []byte, format qbank.Format, filename string) (string, error) {
	ex, err := ForFormat(format)
	if err != nil {
		return "", err
	}
	text, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(stripSentinels(text)) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// NamedBytes is an in-memory file with its original name.
type NamedBytes struct {
	Name string
	Data []byte
}

// ReferenceTexts extracts each reference file, skipping files that cannot be
// read. One unreadable notes file must not sink the rest.
func ReferenceTexts(files []NamedBytes) (texts []string, errs []error) {
	for _, f := range files {
		format, err := FormatForFile(f.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		text, err := Document(f.Data, format, f.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		texts = append(texts, text)
	}
	return texts, errs
}

func pageSentinel(n int) string {
	return fmt.Sprintf(qbank.PageSentinel, n)
}

// stripSentinels removes page-boundary markers so emptiness checks see only
// document content.
func stripSentinels(text string) string {
	var b strings.Builder
	for _, line := range splitLines(text) {
		if strings.HasPrefix(strings.TrimSpace(line), "--- Page ") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// splitLines splits s into lines, each keeping its trailing newline; a
// final line without a newline is still included (strings.Lines semantics,
// which needs Go 1.24).
func splitLines(s string) []string {
	var out []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i+1])
		s = s[i+1:]
	}
	return out
}
