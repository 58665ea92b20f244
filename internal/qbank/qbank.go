package qbank

import "time"

// Format identifies the declared encoding of a source document.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatWord     Format = "word"
	FormatImage    Format = "image"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

// PageSentinel marks page boundaries in normalized text, e.g. "--- Page 2 ---".
const PageSentinel = "--- Page %d ---"

// Question is one segmented question unit. Ordinals are assigned by the
// segmenter in discovery order, starting at 1, independent of any numbering
// found in the source text.
type Question struct {
	Ordinal   int    `json:"ordinal"`
	Text      string `json:"text"`
	FirstLine int    `json:"first_line,omitempty"` // 1-based line in normalized text, 0 if unknown
	LastLine  int    `json:"last_line,omitempty"`
}

// AnswerRecord pairs a question with its generated answer. Records are created
// exactly once per question and never mutated; ordinals match the question
// list 1:1 with no gaps or duplicates.
type AnswerRecord struct {
	Ordinal  int    `json:"ordinal"`
	Question string `json:"question"`
	Answer   string `json:"answer"`

	// Placeholder is set when the answer is a substitute for a failed or
	// capacity-limited generation call rather than real model output.
	Placeholder bool `json:"placeholder,omitempty"`
}

// RunMeta describes one generation run for the cover page and history log.
type RunMeta struct {
	Subject            string    `json:"subject"`
	Mode               string    `json:"mode"`
	QuestionCount      int       `json:"question_count"`
	CustomInstructions bool      `json:"custom_instructions"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Answer generation modes, carried over from the prompt templates.
const (
	ModeUnderstand = "Understand Mode"
	ModeExam       = "Exam Mode"
)

// ModeDescription returns the one-line cover-page description for a mode.
func ModeDescription(mode string) string {
	if mode == ModeUnderstand {
		return "Detailed explanations with analogies, examples, and comprehensive understanding focus."
	}
	return "Concise, exam-focused answers with key points and formal academic language."
}
