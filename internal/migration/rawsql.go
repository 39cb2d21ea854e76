package migration

import (
	"regexp"
	"strings"
)

// ExtractStatements pulls the forward SQL statements out of a RunSQL
// argument list. Only forward statements matter here: a commit applies
// forward SQL, so everything from a top-level reverse_sql keyword on is
// discarded before the argument shape is examined.
//
// The function never fails; unrecognizable input comes back trimmed but
// otherwise verbatim so later pattern matching still gets a chance.
func ExtractStatements(argText string) []string {
	text := strings.TrimSpace(truncateAtReverseSQL(argText))
	text = stripSQLKeyword(text)
	if text == "" {
		return nil
	}

	// Triple quotes first: a plain-quote check would match their prefix.
	if inner, ok := cutDelimited(text, `"""`); ok {
		return []string{strings.TrimSpace(inner)}
	}
	if inner, ok := cutDelimited(text, `'''`); ok {
		return []string{strings.TrimSpace(inner)}
	}
	if text[0] == '"' || text[0] == '\'' {
		if inner, ok := cutQuoted(text); ok {
			return []string{inner}
		}
	}
	if text[0] == '[' || text[0] == '(' {
		if items, ok := parseStringList(text); ok {
			return items
		}
		return allQuotedSubstrings(text)
	}
	return []string{text}
}

// stripSQLKeyword drops a leading "sql =" keyword argument so both the
// positional and the keyword RunSQL spelling land on the same shape.
func stripSQLKeyword(s string) string {
	rest := strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(rest), "sql") {
		return s
	}
	rest = strings.TrimSpace(rest[3:])
	if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
		return strings.TrimSpace(rest[1:])
	}
	return s
}

// truncateAtReverseSQL cuts the argument text at the first reverse_sql
// keyword that sits at the top nesting level and outside any string
// literal. A reverse_sql inside a quoted statement or a nested list is
// part of the forward payload and must survive.
func truncateAtReverseSQL(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'' || c == '"':
			i = skipStringLiteral(s, i)
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			if strings.EqualFold(s[i:j], "reverse_sql") {
				return strings.TrimRight(s[:i], " \t\r\n,")
			}
			i = j - 1
		}
	}
	return s
}

// cutDelimited returns the text between a leading delimiter and its
// closing occurrence, e.g. the body of a triple-quoted block.
func cutDelimited(s, delim string) (string, bool) {
	if !strings.HasPrefix(s, delim) {
		return "", false
	}
	rest := s[len(delim):]
	end := strings.Index(rest, delim)
	if end < 0 {
		return rest, true // unterminated: best effort
	}
	return rest[:end], true
}

// cutQuoted parses a leading single- or double-quoted literal, honoring
// backslash escapes, and returns its unescaped content.
func cutQuoted(s string) (string, bool) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(s[i+1])
			i++
		case c == quote:
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true // unterminated: best effort
}

// parseStringList parses a bracketed or parenthesized sequence of string
// literals ("['a', 'b']" or "('a', 'b')") without evaluating anything
// else. Any non-string element fails the parse so the caller can fall
// back to substring extraction.
func parseStringList(s string) ([]string, bool) {
	open := s[0]
	var closing byte = ']'
	if open == '(' {
		closing = ')'
	}
	rest := strings.TrimSpace(s[1:])

	var items []string
	for {
		if rest == "" {
			return items, true // unterminated: best effort
		}
		if rest[0] == closing {
			return items, true
		}
		var inner string
		switch {
		case strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, "'''"):
			delim := rest[:3]
			body, _ := cutDelimited(rest, delim)
			inner = strings.TrimSpace(body)
			rest = rest[min(len(rest), 3+len(body)+3):]
		case rest[0] == '"' || rest[0] == '\'':
			end := skipStringLiteral(rest, 0)
			if end >= len(rest) {
				return nil, false
			}
			body, ok := cutQuoted(rest[:end+1])
			if !ok {
				return nil, false
			}
			inner = body
			rest = rest[end+1:]
		default:
			return nil, false
		}
		items = append(items, inner)
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, ",") {
			rest = strings.TrimSpace(rest[1:])
		}
	}
}

var quotedSubstringRe = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

// allQuotedSubstrings is the fallback for list arguments the mini-parser
// rejects: every quoted substring is treated as a candidate statement.
func allQuotedSubstrings(s string) []string {
	var out []string
	for _, m := range quotedSubstringRe.FindAllStringSubmatch(s, -1) {
		for _, g := range m[1:] {
			if g != "" {
				out = append(out, g)
			}
		}
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(s)}
	}
	return out
}

// skipStringLiteral advances from an opening quote at position i to the
// index of the matching closing quote (or the last byte when the literal
// is unterminated). Triple-quoted literals are recognized as a unit.
func skipStringLiteral(s string, i int) int {
	quote := s[i]
	if i+2 < len(s) && s[i+1] == quote && s[i+2] == quote {
		delim := s[i : i+3]
		end := strings.Index(s[i+3:], delim)
		if end < 0 {
			return len(s) - 1
		}
		return i + 3 + end + 2
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(s) - 1
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
