package markup

import (
	"regexp"
	"strings"
)

var (
	fenceRe = regexp.MustCompile("^```\\s*([A-Za-z0-9+#.-]*)\\s*$")

	// codeKeywordRe matches common code idioms: declaration keywords
	// adjacent to an identifier.
	codeKeywordRe = regexp.MustCompile(`(?m)\b(def|func|function|class|import|return|var|const|print|public|private|void|int|for|while)\s+[\w(]`)
)

// continuationIndent prefixes wrapped code-line remainders.
const continuationIndent = "    "

// lookbackWindow is how far back from the wrap column a break boundary is
// searched before force-breaking mid-token.
const lookbackWindow = 20

// looksLikeCode reports whether a non-fenced section reads as code: keyword
// idioms or a high density of balanced parentheses. Callers additionally
// gate this on the subject being a programming one.
func looksLikeCode(section string) bool {
	if codeKeywordRe.MatchString(section) {
		return true
	}
	open := strings.Count(section, "(")
	closed := strings.Count(section, ")")
	return open > 2 && closed > 2 && open == closed
}

// parseCode strips fence markers, captures a fence language if present, and
// wraps overlong lines.
func parseCode(section string, wrapWidth int) ([]string, string) {
	var lines []string
	language := ""
	for _, line := range splitLines(section) {
		line = strings.TrimRight(line, "\n")
		if m := fenceRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if language == "" {
				language = m[1]
			}
			continue
		}
		lines = append(lines, line)
	}
	// Trim blank edges left by the fences.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return wrapCodeLines(lines, wrapWidth), language
}

// wrapCodeLines breaks lines exceeding width at the nearest preceding
// whitespace or punctuation boundary within the lookback window, indenting
// continuations. A line is only split mid-token when no boundary exists in
// the window.
func wrapCodeLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	var out []string
	for _, line := range lines {
		keep := true
		for len(line) > width {
			cut := breakColumn(line, width)
			out = append(out, line[:cut])
			rest := strings.TrimLeft(line[cut:], " ")
			if rest == "" {
				// Trailing spaces past the cut carry nothing to wrap.
				keep = false
				break
			}
			line = continuationIndent + rest
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

// breakColumn finds the split point for an overlong line.
func breakColumn(line string, width int) int {
	lo := width - lookbackWindow
	if lo < 1 {
		lo = 1
	}
	for i := width; i >= lo; i-- {
		c := line[i-1]
		if c == ' ' || c == '\t' || c == ',' || c == ';' || c == '(' || c == ')' ||
			c == '{' || c == '}' || c == '[' || c == ']' || c == '.' {
			return i
		}
	}
	return width
}
