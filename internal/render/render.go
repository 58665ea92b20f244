// Package render serializes classified answer blocks into a paginated
// Word document: a cover section, then one section per question separated by
// hard page breaks.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"answerforge/internal/markup"
	"answerforge/internal/qbank"
)

// Font sizes in half-points, as go-docx expects.
const (
	sizeTitle    = "56"
	sizeSubtitle = "32"
	sizeHeading  = "26"
	sizeQuestion = "26"
	sizeBody     = "22"
	sizeCode     = "20"
)

const (
	monoFont  = "Courier New"
	codeShade = "D9D9D9"
	grayText  = "595959"
)

// Section is one question with its classified answer blocks.
type Section struct {
	Question qbank.Question
	Blocks   []markup.Block

	// Placeholder marks sections whose answer could not be generated; they
	// are labelled clearly in the output.
	Placeholder bool
}

// Input is a complete render request.
type Input struct {
	Meta     qbank.RunMeta
	Sections []Section
}

// Answers builds the output document and returns its bytes. Structurally
// invalid input (bad ordinals, empty question text) fails fast: a malformed
// section reaching this stage is an upstream defect, not a per-block
// condition to recover from. Odd paragraph text never fails: runs are
// serialized through XML marshalling, so special characters cannot break the
// document.
func Answers(in Input) ([]byte, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	doc := docx.New().WithDefaultTheme()

	writeCover(doc, in.Meta)

	for _, section := range in.Sections {
		doc.AddParagraph().AddPageBreaks()
		writeSection(doc, section)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func validate(in Input) error {
	for i, s := range in.Sections {
		if s.Question.Ordinal != i+1 {
			return fmt.Errorf("render: section %d has ordinal %d, want %d", i, s.Question.Ordinal, i+1)
		}
		if strings.TrimSpace(s.Question.Text) == "" {
			return fmt.Errorf("render: section %d has empty question text", i)
		}
	}
	return nil
}

func writeSection(doc *docx.Docx, section Section) {
	head := doc.AddParagraph()
	head.AddText(fmt.Sprintf("Question %d", section.Question.Ordinal)).Size(sizeHeading).Bold()

	q := doc.AddParagraph()
	q.AddText(fmt.Sprintf("Q%d: ", section.Question.Ordinal)).Size(sizeQuestion).Bold()
	writeSpans(q, markup.ParseSpans(section.Question.Text), sizeQuestion)

	label := doc.AddParagraph()
	if section.Placeholder {
		label.AddText("Answer (unable to generate):").Size(sizeBody).Bold().Color(grayText)
	} else {
		label.AddText("Answer:").Size(sizeBody).Bold()
	}

	for _, block := range section.Blocks {
		writeBlock(doc, block)
	}
}

func writeBlock(doc *docx.Docx, block markup.Block) {
	switch block.Kind {
	case markup.KindHeading:
		p := doc.AddParagraph()
		writeSpansStyled(p, markup.ParseSpans(block.Text), sizeHeading, true)

	case markup.KindCode:
		// Line breaks are preserved exactly: one paragraph per line, no
		// re-flowing.
		for _, line := range block.Lines {
			p := doc.AddParagraph()
			if line == "" {
				line = " "
			}
			r := p.AddText(line)
			r.Size(sizeCode).Font(monoFont, "", monoFont, "default")
			r.Shade("clear", "auto", codeShade)
		}

	case markup.KindMath:
		p := doc.AddParagraph().Justification("center")
		p.AddText(block.Text).Size(sizeBody).Font(monoFont, "", monoFont, "default")

	case markup.KindList:
		for _, item := range block.Items {
			p := doc.AddParagraph()
			p.AddText("• ").Size(sizeBody)
			writeSpans(p, markup.ParseSpans(item), sizeBody)
		}

	default:
		p := doc.AddParagraph().Justification("both")
		writeSpans(p, markup.ParseSpans(block.Text), sizeBody)
	}
}

func writeSpans(p *docx.Paragraph, spans []markup.Span, size string) {
	writeSpansStyled(p, spans, size, false)
}

func writeSpansStyled(p *docx.Paragraph, spans []markup.Span, size string, forceBold bool) {
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		r := p.AddText(span.Text).Size(size)
		if span.Bold || forceBold {
			r.Bold()
		}
		if span.Italic {
			r.Italic()
		}
	}
}
