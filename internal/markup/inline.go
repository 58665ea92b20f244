package markup

import (
	"regexp"
	"strings"
)

// Span is a run of text with its emphasis resolved. A parsed span sequence
// never carries marker characters, so downstream rendering cannot end up
// with an unterminated emphasis span.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

var (
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	htmlTagRe    = regexp.MustCompile(`<[^<>]+>`)
)

// emphasis markers, longest first so "**" is not read as two "*".
var emphasisMarkers = []string{"**", "__", "*", "_"}

// ParseSpans resolves bold (**text**, __text__) and italic (*text*, _text_)
// markers into spans. Backtick inline code becomes bracket-wrapped plain
// text. Markers without a matching closer are kept as literal text.
func ParseSpans(s string) []Span {
	s = inlineCodeRe.ReplaceAllString(s, "[$1]")

	var spans []Span
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(s) {
		marker := markerAt(s, i)
		if marker == "" {
			plain.WriteByte(s[i])
			i++
			continue
		}
		closing := strings.Index(s[i+len(marker):], marker)
		if closing < 0 || closing == 0 {
			// Unbalanced or empty span: the marker is just text.
			plain.WriteString(marker)
			i += len(marker)
			continue
		}
		inner := s[i+len(marker) : i+len(marker)+closing]
		flush()
		spans = append(spans, Span{
			Text:   inner,
			Bold:   len(marker) == 2,
			Italic: len(marker) == 1,
		})
		i += 2*len(marker) + closing
	}
	flush()

	return spans
}

func markerAt(s string, i int) string {
	for _, m := range emphasisMarkers {
		if strings.HasPrefix(s[i:], m) {
			return m
		}
	}
	return ""
}

// stripTags removes HTML-ish tags from text destined for styled rendering,
// so stray markup in a generated answer can never be interpreted
// structurally.
func stripTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}
