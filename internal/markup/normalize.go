package markup

import (
	"regexp"
	"strings"
)

// Options controls classification.
type Options struct {
	// Subject is the active subject context; code classification only
	// triggers when it is one of ProgrammingSubjects.
	Subject string

	// ProgrammingSubjects is the configurable set of subjects whose answers
	// may legitimately contain code. Matching is case-insensitive.
	ProgrammingSubjects []string

	// CodeWrapWidth is the column at which code lines wrap (default 76,
	// minimum 40).
	CodeWrapWidth int
}

// DefaultProgrammingSubjects seeds the subject-aware code gate. The set is
// data, not code: deployments extend it through configuration.
var DefaultProgrammingSubjects = []string{
	"computer science",
	"programming",
	"software engineering",
	"information technology",
	"data structures",
	"algorithms",
	"engineering",
}

// DefaultOptions returns classification options for a subject.
func DefaultOptions(subject string) Options {
	return Options{
		Subject:             subject,
		ProgrammingSubjects: DefaultProgrammingSubjects,
		CodeWrapWidth:       76,
	}
}

var (
	blankLineRe  = regexp.MustCompile(`\n\s*\n`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hashHeadRe   = regexp.MustCompile(`^#{1,4}\s+`)
	listMarkerRe = regexp.MustCompile(`^([-•*]|\d{1,3}\.)\s+`)
	upperOnlyRe  = regexp.MustCompile(`^[^a-z]*[A-Z][^a-z]*$`)
)

// headingLabels are label tokens that open a section heading.
var headingLabels = []string{"DEFINITION", "EXPLANATION", "EXAMPLE", "ANSWER", "SOLUTION"}

// Normalize splits answer text on blank lines and classifies each section.
// Classification priority: code, math, heading, list, paragraph; first match
// wins. Every non-empty input yields at least one block.
func Normalize(answer string, opts Options) []Block {
	if opts.CodeWrapWidth <= 0 {
		opts.CodeWrapWidth = 76
	}
	if opts.CodeWrapWidth < 40 {
		opts.CodeWrapWidth = 40
	}

	var blocks []Block
	for _, section := range blankLineRe.Split(answer, -1) {
		section = strings.Trim(section, "\n")
		if strings.TrimSpace(section) == "" {
			continue
		}
		blocks = append(blocks, classify(section, opts))
	}

	if len(blocks) == 0 && answer != "" {
		blocks = append(blocks, Block{Kind: KindParagraph, Text: strings.TrimSpace(answer)})
	}
	return blocks
}

func classify(section string, opts Options) Block {
	switch {
	case isCode(section, opts):
		lines, lang := parseCode(section, opts.CodeWrapWidth)
		return Block{Kind: KindCode, Lines: lines, Language: lang}

	case isMath(section):
		return Block{Kind: KindMath, Text: translateMath(section)}

	case isHeading(section):
		return Block{Kind: KindHeading, Text: headingText(section)}

	case isList(section):
		return Block{Kind: KindList, Items: listItems(section)}

	default:
		return Block{Kind: KindParagraph, Text: paragraphText(section)}
	}
}

// isCode: fenced sections always count; otherwise code idioms count only for
// programming subjects, so prose in non-technical subjects that happens to
// resemble code is never captured.
func isCode(section string, opts Options) bool {
	if strings.HasPrefix(strings.TrimSpace(section), "```") {
		return true
	}
	if !isProgrammingSubject(opts) {
		return false
	}
	return looksLikeCode(section)
}

func isProgrammingSubject(opts Options) bool {
	subject := strings.ToLower(strings.TrimSpace(opts.Subject))
	for _, s := range opts.ProgrammingSubjects {
		if subject == strings.ToLower(s) {
			return true
		}
	}
	return false
}

func isHeading(section string) bool {
	if strings.Contains(section, "\n") {
		return false
	}
	line := strings.TrimSpace(section)
	if line == "" {
		return false
	}
	if strings.HasSuffix(line, ":") && len(line) < 100 {
		return true
	}
	if hashHeadRe.MatchString(line) {
		return true
	}
	stripped := strings.Trim(line, "*_ ")
	for _, label := range headingLabels {
		if strings.HasPrefix(strings.ToUpper(stripped), label) {
			return true
		}
	}
	return upperOnlyRe.MatchString(line)
}

func headingText(section string) string {
	line := strings.TrimSpace(section)
	line = hashHeadRe.ReplaceAllString(line, "")
	line = strings.TrimSpace(strings.Trim(line, "*"))
	return stripTags(line)
}

func isList(section string) bool {
	lines := nonEmptyLines(section)
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if listMarkerRe.MatchString(line) {
			return true
		}
	}
	return false
}

func listItems(section string) []string {
	var items []string
	for _, line := range nonEmptyLines(section) {
		item := listMarkerRe.ReplaceAllString(line, "")
		items = append(items, stripTags(strings.TrimSpace(item)))
	}
	return items
}

func paragraphText(section string) string {
	return stripTags(strings.TrimSpace(whitespaceRe.ReplaceAllString(section, " ")))
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

func nonEmptyLines(section string) []string {
	var lines []string
	for _, line := range splitLines(section) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
