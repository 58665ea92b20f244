package markup

import (
	"regexp"
	"strings"
)

var (
	dollarSpanRe = regexp.MustCompile(`\$[^$\n]+\$`)
	fracRe       = regexp.MustCompile(`\\[dt]?frac\{([^{}]*)\}\{([^{}]*)\}`)
	caretExpRe   = regexp.MustCompile(`[A-Za-z0-9)\]]\^\{?[A-Za-z0-9+\-]`)
	subscriptRe  = regexp.MustCompile(`[A-Za-z0-9)\]]_\{?[A-Za-z0-9]`)
)

// mathMacros is the fixed macro vocabulary translated to literal symbols,
// applied in order (longer names before their prefixes).
var mathMacros = []struct{ macro, symbol string }{
	{`\sqrt`, "√"},
	{`\sum`, "Σ"},
	{`\prod`, "Π"},
	{`\int`, "∫"},
	{`\infty`, "∞"},
	{`\approx`, "≈"},
	{`\neq`, "≠"},
	{`\leq`, "≤"},
	{`\geq`, "≥"},
	{`\le`, "≤"},
	{`\ge`, "≥"},
	{`\pm`, "±"},
	{`\times`, "×"},
	{`\div`, "÷"},
	{`\cdot`, "·"},
	{`\rightarrow`, "→"},
	{`\to`, "→"},
	{`\alpha`, "α"},
	{`\beta`, "β"},
	{`\gamma`, "γ"},
	{`\delta`, "δ"},
	{`\epsilon`, "ε"},
	{`\theta`, "θ"},
	{`\lambda`, "λ"},
	{`\mu`, "μ"},
	{`\pi`, "π"},
	{`\sigma`, "σ"},
	{`\phi`, "φ"},
	{`\omega`, "ω"},
	{`\Delta`, "Δ"},
	{`\Sigma`, "Σ"},
	{`\Omega`, "Ω"},
}

// isMath reports whether a section looks like mathematical notation: dollar
// delimiters, a known macro token, or exponent/subscript notation.
func isMath(section string) bool {
	if dollarSpanRe.MatchString(section) {
		return true
	}
	for _, m := range mathMacros {
		if strings.Contains(section, m.macro) {
			return true
		}
	}
	if fracRe.MatchString(section) {
		return true
	}
	return caretExpRe.MatchString(section) || subscriptRe.MatchString(section)
}

// translateMath rewrites the macro vocabulary to literal symbols and strips
// delimiter markers. Unknown macros are left as-is rather than dropped.
func translateMath(section string) string {
	s := fracRe.ReplaceAllString(section, "($1)/($2)")
	for _, m := range mathMacros {
		s = strings.ReplaceAll(s, m.macro, m.symbol)
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
