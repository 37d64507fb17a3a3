package module

import (
	"regexp"
	"strings"
)

type matchKind uint8

const (
	matchLiteral matchKind = iota
	matchTemplate
	matchWildcard
)

var placeholderPattern = regexp.MustCompile(`\{[^{}/]+\}`)

// pathMatcher is a compiled path pattern. Precedence is fixed: a pattern
// with "*" is a wildcard even if it also has placeholders.
type pathMatcher struct {
	pattern string
	kind    matchKind
	re      *regexp.Regexp
}

func compilePattern(pattern string) pathMatcher {
	m := pathMatcher{pattern: pattern, kind: matchLiteral}

	switch {
	case strings.Contains(pattern, "*"):
		parts := strings.Split(pattern, "*")
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}
		m.kind = matchWildcard
		// unanchored: a search, not a full match
		m.re = regexp.MustCompile("(?i)" + strings.Join(parts, ".*"))
	case placeholderPattern.MatchString(pattern):
		var b strings.Builder
		b.WriteString("(?i)^")
		last := 0
		for _, loc := range placeholderPattern.FindAllStringIndex(pattern, -1) {
			b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
			b.WriteString("[^/]+")
			last = loc[1]
		}
		b.WriteString(regexp.QuoteMeta(pattern[last:]))
		b.WriteString("$")
		m.kind = matchTemplate
		m.re = regexp.MustCompile(b.String())
	}
	return m
}

func (m pathMatcher) Match(path string) bool {
	if m.kind == matchLiteral {
		return strings.EqualFold(m.pattern, path)
	}
	return m.re.MatchString(path)
}

// MatchPath compiles pattern and matches it against path in one go.
func MatchPath(pattern, path string) bool {
	return compilePattern(pattern).Match(path)
}
