package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// WordExtractor handles .docx files: paragraph text in document order, then
// table cell text row-major per table in document order.
type WordExtractor struct{}

func (p *WordExtractor) Extract(r io.Reader, filename string) (string, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "answerforge-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var paras []string
	var tables []*docx.Table
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if text := paragraphText(it); text != "" {
				paras = append(paras, text)
			}
		case *docx.Table:
			tables = append(tables, it)
		}
	}

	var buf strings.Builder
	buf.WriteString(strings.Join(paras, "\n"))
	for _, tbl := range tables {
		if cells := tableText(tbl); cells != "" {
			buf.WriteString("\n\n")
			buf.WriteString(cells)
		}
	}
	return buf.String(), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func tableText(tbl *docx.Table) string {
	var lines []string
	for _, row := range tbl.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var cellBuf strings.Builder
			for _, para := range cell.Paragraphs {
				if text := paragraphText(para); text != "" {
					if cellBuf.Len() > 0 {
						cellBuf.WriteString(" ")
					}
					cellBuf.WriteString(text)
				}
			}
			if s := cellBuf.String(); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}
	return strings.Join(lines, "\n")
}
