package extract

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor pulls the text layer out of a PDF. Each page is tried three
// ways: plain text extraction, a layout-preserving reflow of positioned
// glyphs, then a row/cell walk for tabular pages. Pages are joined with a
// page-boundary sentinel.
type PDFExtractor struct{}

// minPageText is the threshold below which a page's plain-text result is
// considered near-empty and the relaxed modes are tried.
const minPageText = 8

func (p *PDFExtractor) Extract(r io.Reader, filename string) (string, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "answerforge-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, extractPage(page))
	}

	var buf strings.Builder
	for i, text := range pages {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(pageSentinel(i + 1))
		buf.WriteString("\n\n")
		buf.WriteString(strings.TrimSpace(text))
	}
	return buf.String(), nil
}

func extractPage(page pdflib.Page) string {
	text, err := page.GetPlainText(nil)
	if err == nil && len(strings.TrimSpace(text)) >= minPageText {
		return text
	}

	if reflow := reflowContent(page); len(strings.TrimSpace(reflow)) >= minPageText {
		return reflow
	}

	return extractRows(page)
}

// reflowContent rebuilds page text from positioned glyph runs, tolerating
// fonts the plain-text pass cannot decode. Runs are sorted top-to-bottom then
// left-to-right and grouped into lines by their Y coordinate.
func reflowContent(page pdflib.Page) (out string) {
	// Malformed content streams panic inside the lib.
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	texts := make([]pdflib.Text, len(content.Text))
	copy(texts, content.Text)
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y // PDF origin is bottom-left
		}
		return texts[i].X < texts[j].X
	})

	const yTolerance = 2.0
	var buf strings.Builder
	lastY := texts[0].Y
	for i, t := range texts {
		if i > 0 {
			if lastY-t.Y > yTolerance {
				buf.WriteString("\n")
				lastY = t.Y
			}
		}
		buf.WriteString(t.S)
	}
	return buf.String()
}

// extractRows walks the page's row structure and concatenates cell text with
// separators, the last resort for pages that are pure tables.
func extractRows(page pdflib.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var buf strings.Builder
	for _, row := range rows {
		var cells []string
		for _, word := range row.Content {
			if s := strings.TrimSpace(word.S); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) == 0 {
			continue
		}
		buf.WriteString(strings.Join(cells, " | "))
		buf.WriteString("\n")
	}
	return buf.String()
}
