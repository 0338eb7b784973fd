package ebuild

import (
	"strings"
)

// scanner walks the lines of an ebuild document once, forward only.
// Lines consumed by a construct (function body, multi-line quote or
// array) are never reconsidered.
type scanner struct {
	lines []string
	pos   int
}

func newScanner(content string) *scanner {
	return &scanner{lines: strings.Split(content, "\n")}
}

// next consumes and returns the next line, trimmed.
func (s *scanner) next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := strings.TrimSpace(s.lines[s.pos])
	s.pos++
	return line, true
}

// peek returns the next line, trimmed, without consuming it.
func (s *scanner) peek() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	return strings.TrimSpace(s.lines[s.pos]), true
}

// nextAssignment scans forward to the next variable assignment and
// returns its name and raw (pre-substitution) value. ok is false once
// the document is exhausted.
func (s *scanner) nextAssignment() (name, value string, ok bool) {
	for {
		line, more := s.next()
		if !more {
			return "", "", false
		}

		// Comments and blank lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Shell functions: name() { ... } or function name { ... }
		if s.isFunctionStart(line) {
			s.skipFunction(line)
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		name = strings.TrimSpace(line[:eq])
		if !validName(name) {
			continue
		}

		return name, s.extractValue(strings.TrimSpace(line[eq+1:])), true
	}
}

// isFunctionStart reports whether line opens a shell function body,
// with the opening brace on the same line or the next.
func (s *scanner) isFunctionStart(line string) bool {
	if !strings.Contains(line, "()") && !strings.HasPrefix(line, "function ") {
		return false
	}
	if strings.Contains(line, "{") {
		return true
	}
	next, ok := s.peek()
	return ok && strings.HasPrefix(next, "{")
}

// skipFunction consumes lines until the brace balance opened by the
// function header closes. Unterminated bodies stop at end of input.
func (s *scanner) skipFunction(line string) {
	balance := 0
	for {
		balance += strings.Count(line, "{")
		balance -= strings.Count(line, "}")
		if balance <= 0 && strings.Contains(line, "}") {
			return
		}
		next, ok := s.next()
		if !ok {
			return
		}
		line = next
	}
}

// validName reports whether name is a plausible shell variable name:
// non-empty, alphanumerics and underscores only.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// extractValue turns the text after the '=' into a single value string,
// consuming continuation lines for multi-line quotes and arrays.
func (s *scanner) extractValue(rest string) string {
	rest = stripComment(rest)

	// Array assignment: VAR=( a b c ), possibly spanning lines, with
	// the opening paren allowed on the following line
	if strings.HasPrefix(rest, "(") {
		return s.extractArray(rest)
	}
	if rest == "" {
		if next, ok := s.peek(); ok && strings.HasPrefix(next, "(") {
			return s.extractArray("")
		}
		return ""
	}

	// Multi-line quoted value: opening quote with no close on this line
	if quote := rest[0]; quote == '"' || quote == '\'' {
		if !strings.ContainsRune(rest[1:], rune(quote)) {
			return s.extractQuoted(rest[1:], byte(quote))
		}
	}

	// Simple value; strip one pair of surrounding quotes
	if len(rest) >= 2 {
		first, last := rest[0], rest[len(rest)-1]
		if first == last && (first == '"' || first == '\'') {
			return rest[1 : len(rest)-1]
		}
	}
	return rest
}

// extractArray collects the text between the array parentheses.
// rest is the first line's remainder (possibly empty when the opening
// paren sits on the following line).
func (s *scanner) extractArray(rest string) string {
	current := rest
	if current == "" {
		next, ok := s.next()
		if !ok {
			return ""
		}
		current = next
	}

	var content string
	if strings.Contains(current, ")") {
		// Single line: take what sits between the parens
		end := strings.LastIndexByte(current, ')')
		if open := strings.IndexByte(current, '('); open >= 0 {
			content = current[open+1 : end]
		} else {
			content = current[:end]
		}
	} else {
		content = strings.TrimPrefix(current, "(")
		for {
			next, ok := s.next()
			if !ok {
				break
			}
			if end := strings.IndexByte(next, ')'); end >= 0 {
				content += " " + next[:end]
				break
			}
			content += " " + next
		}
	}
	return normalizeWhitespace(content)
}

// extractQuoted collects a multi-line quoted value, truncating at the
// first line that contains the closing quote. Unterminated quotes run
// to end of input.
func (s *scanner) extractQuoted(content string, quote byte) string {
	for {
		next, ok := s.next()
		if !ok {
			break
		}
		if end := strings.IndexByte(next, quote); end >= 0 {
			content += " " + next[:end]
			break
		}
		content += " " + next
	}
	return normalizeWhitespace(content)
}

// stripComment removes a trailing #-comment, but only when the '#' is
// not inside an open quote. Quote parity is a heuristic: it counts both
// quote characters without distinguishing them, so a literal unbalanced
// quote in the value can fool it.
func stripComment(value string) string {
	hash := strings.IndexByte(value, '#')
	if hash < 0 {
		return value
	}
	quotes := 0
	for i := 0; i < hash; i++ {
		if value[i] == '"' || value[i] == '\'' {
			quotes++
		}
	}
	if quotes%2 != 0 {
		return value
	}
	return strings.TrimRight(value[:hash], " \t")
}

// normalizeWhitespace collapses all runs of whitespace to single
// spaces, discarding the original indentation of continuation lines.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
