package render

import (
	"fmt"

	"github.com/fumiama/go-docx"

	"answerforge/internal/qbank"
)

// writeCover emits the title page: title, subject subtitle, run details and
// the mode description.
func writeCover(doc *docx.Docx, meta qbank.RunMeta) {
	title := doc.AddParagraph().Justification("center")
	title.AddText("College Answer Generator").Size(sizeTitle).Bold()

	subtitle := doc.AddParagraph().Justification("center")
	subtitle.AddText(fmt.Sprintf("Comprehensive Answers for %s", meta.Subject)).Size(sizeSubtitle).Color(grayText)

	doc.AddParagraph() // spacer

	details := [][2]string{
		{"Subject", meta.Subject},
		{"Answer Mode", meta.Mode},
		{"Total Questions", fmt.Sprintf("%d", meta.QuestionCount)},
		{"Generated On", meta.GeneratedAt.Format("January 2, 2006 at 3:04 PM")},
	}
	if meta.CustomInstructions {
		details = append(details, [2]string{"Custom Instructions", "Yes"})
	}

	for _, d := range details {
		p := doc.AddParagraph()
		p.AddText(d[0] + ": ").Size(sizeBody).Bold()
		p.AddText(d[1]).Size(sizeBody)
	}

	doc.AddParagraph() // spacer

	desc := doc.AddParagraph().Justification("center")
	desc.AddText(qbank.ModeDescription(meta.Mode)).Size(sizeBody).Italic().Color(grayText)
}
