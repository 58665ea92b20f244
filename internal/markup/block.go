// Package markup classifies free-form generated answer text into typed
// content blocks ready for rendering. Normalization is total: every
// non-empty answer yields at least one block, and hostile markup degrades to
// plain text instead of failing.
package markup

// Kind tags a classified content block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindCode
	KindMath
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindCode:
		return "code"
	case KindMath:
		return "math"
	default:
		return "paragraph"
	}
}

// Block is one classified unit of answer content.
type Block struct {
	Kind Kind

	// Text holds heading or paragraph content (inline emphasis markers
	// intact) or the translated math expression.
	Text string

	// Items holds list entries, leading markers stripped, order preserved.
	Items []string

	// Lines holds code lines, verbatim apart from width wrapping; Language
	// is the fence info string when one was present.
	Lines    []string
	Language string
}
