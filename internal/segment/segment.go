// Package segment partitions normalized text into an ordered list of
// question units. The scan is a fold over the line sequence: one in-progress
// accumulator, no state shared between calls.
package segment

import (
	"strings"

	"answerforge/internal/qbank"
)

// minFallbackLineLen gates the recovery pass: shorter lines are noise.
const minFallbackLineLen = 15

type unit struct {
	text      string // remainder after the start-rule prefix, plus continuations
	raw       string // full matched line, plus continuations
	firstLine int
	lastLine  int
}

// Questions scans normalized text and returns question units in discovery
// order, ordinals renumbered 1..n (source numbering is not trusted to be
// contiguous or correct). An empty result is a normal value, not an error:
// the caller surfaces it as "no questions found".
func Questions(text string) []qbank.Question {
	lines := strings.Split(text, "\n")

	units := scan(lines)
	units = filter(units)
	if len(units) == 0 {
		units = fallback(lines)
	}

	questions := make([]qbank.Question, 0, len(units))
	for i, u := range units {
		questions = append(questions, qbank.Question{
			Ordinal:   i + 1,
			Text:      u.text,
			FirstLine: u.firstLine,
			LastLine:  u.lastLine,
		})
	}
	return questions
}

// scan is the primary accumulator pass.
func scan(lines []string) []unit {
	var out []unit
	var acc unit
	accActive := false

	emit := func() {
		if accActive && strings.TrimSpace(acc.text) != "" {
			acc.text = strings.TrimSpace(acc.text)
			out = append(out, acc)
		}
		acc = unit{}
		accActive = false
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || pageSentinelRe.MatchString(line) {
			continue
		}
		lineNo := i + 1

		if remainder, ok := matchStart(line); ok {
			emit()
			acc = unit{text: remainder, raw: line, firstLine: lineNo, lastLine: lineNo}
			accActive = true
			continue
		}

		if !accActive {
			continue
		}

		// An answer marker terminates the question implicitly; its text is
		// never consumed into the question.
		if answerMarkerRe.MatchString(line) {
			emit()
			continue
		}

		acc.text += " " + line
		acc.raw += " " + line
		acc.lastLine = lineNo
	}
	emit()

	return out
}

// matchStart tries the ordered start-rule table; first match wins.
func matchStart(line string) (remainder string, ok bool) {
	for _, rule := range startRules {
		m := rule.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if len(m) > 2 && m[2] != "" {
			return strings.TrimSpace(m[2]), true
		}
		return line, true
	}
	return "", false
}

// filter drops emitted units that cannot be real questions and rewrites each
// survivor to its cleaned text. The token-count gate runs on the raw unit,
// numbering prefix included, so a terse question like "1. Define a stack."
// survives while a bare label does not.
func filter(units []unit) []unit {
	var out []unit
	for _, u := range units {
		clean := Clean(u.text)
		if len(strings.Fields(Clean(u.raw))) <= 3 {
			continue
		}
		if digitsPunctRe.MatchString(clean) {
			continue
		}
		if adminPrefixRe.MatchString(clean) {
			continue
		}
		u.text = clean
		out = append(out, u)
	}
	return out
}

// Clean strips a trailing answer fragment and collapses whitespace.
func Clean(text string) string {
	text = trailingAnswerRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// fallback is the looser recovery pass, used only when the primary pass
// yields nothing: any sufficiently long line that looks interrogative or
// instructional is taken as a question, unfiltered, in line order.
func fallback(lines []string) []unit {
	var out []unit
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) <= minFallbackLineLen {
			continue
		}
		if strings.HasSuffix(line, "?") || containsKeyword(line) {
			out = append(out, unit{text: line, firstLine: i + 1, lastLine: i + 1})
		}
	}
	return out
}

func containsKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
