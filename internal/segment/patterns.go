package segment

import "regexp"

// startRule matches a line that begins a new question. The second capture
// group, when present, is the remainder of the line after the matched prefix;
// the question text starts there.
type startRule struct {
	name string
	re   *regexp.Regexp
}

// startRules is the ordered question-start table. Order matters: several
// rules can match the same line, so structural numbering forms are tried
// first, then dash forms, sub-item labels, and last the loose numeric-prefix
// heuristic. Kept as data so new bank layouts mean a new row, not new code.
var startRules = []startRule{
	{"dot-number", regexp.MustCompile(`^(\d{1,4})\.\s+(.+)$`)},
	{"paren-number", regexp.MustCompile(`^(\d{1,4})\)\s+(.+)$`)},
	{"wrapped-number", regexp.MustCompile(`^\((\d{1,4})\)\s+(.+)$`)},
	{"q-number", regexp.MustCompile(`(?i)^q(\d{1,4})[.)]\s*(.+)$`)},
	{"question-number", regexp.MustCompile(`(?i)^question\s+(\d{1,4})[.)]\s*(.+)$`)},
	{"dash-number", regexp.MustCompile(`^(\d{1,4})\s*[-–]\s+(.+)$`)},
	{"lower-label", regexp.MustCompile(`^([a-z])\)\s+(.+)$`)},
	{"upper-label", regexp.MustCompile(`^([A-Z])\)\s+(.+)$`)},
	{"loose-number", regexp.MustCompile(`^(\d{1,4})\s+(.{20,})$`)},
}

// answerMarkerRe matches lines that open an answer; such a line terminates
// the current question without being consumed into it.
var answerMarkerRe = regexp.MustCompile(`(?i)^(answer|ans|solution|sol)\s*:`)

// trailingAnswerRe strips an answer fragment that shares a line with the
// question ("What is X? Answer: ...").
var trailingAnswerRe = regexp.MustCompile(`(?i)\s*\b(answer|ans|solution|sol)\s*:.*$`)

// adminPrefixRe matches administrative text that is never a question: page
// headers, section labels, exam metadata and the like, when followed by a
// colon or a number.
var adminPrefixRe = regexp.MustCompile(`(?i)^(page|section|chapter|unit|note|instruction|direction|answer|solution|hint|total|maximum|minimum|name|roll|class|date)\s*(:|\d)`)

// digitsPunctRe matches units that are nothing but numerals, punctuation and
// whitespace.
var digitsPunctRe = regexp.MustCompile(`^[\d\s[:punct:]]+$`)

// pageSentinelRe matches the extractor's page-boundary markers.
var pageSentinelRe = regexp.MustCompile(`^--- Page \d+ ---$`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// fallbackKeywords is the interrogative/instructional vocabulary for the
// recovery pass, matched case-insensitively as substrings.
var fallbackKeywords = []string{
	"what", "how", "why", "when", "where", "which", "who",
	"define", "explain", "describe", "calculate", "find", "solve",
	"prove", "derive", "analyze", "compare", "discuss",
}
