package literal

import (
	"fmt"
	"strings"
)

// Header is the comment block at the top of a property file. It is informative
// only and ignored when the file is read back.
type Header struct {
	Class    string
	Name     string
	Referent string
	// Hidden counts properties kept in the document but not shown in the file.
	Hidden int
}

// Assignment is one "Name = literal" entry of a property file.
type Assignment struct {
	Name    string
	Literal string
	Line    int // 1-based line of the name
}

// SyntaxError reports a line that is not a valid assignment.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// IsName reports whether s can appear on the left of an assignment.
func IsName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}

// Render writes a property file.
func Render(h Header, assignments []Assignment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "-- %s Properties\n", oneLine(h.Class))
	fmt.Fprintf(&b, "-- Class: %s\n", oneLine(h.Class))
	fmt.Fprintf(&b, "-- Name: %s\n", oneLine(h.Name))
	fmt.Fprintf(&b, "-- Referent: %s\n", oneLine(h.Referent))
	b.WriteString("-- Edit values below; header lines are ignored on rebuild.\n")

	if h.Hidden > 0 {
		fmt.Fprintf(&b, "-- %d other properties are kept in the place file and not shown here.\n", h.Hidden)
	}

	b.WriteString("\n")

	for _, a := range assignments {
		b.WriteString(a.Name)
		b.WriteString(" = ")
		b.WriteString(a.Literal)
		b.WriteString("\n")
	}

	return b.String()
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Split reads the assignments of a property file in order. Lines that cannot be
// read are reported and skipped; the rest of the file is still returned.
func Split(text string) ([]Assignment, []*SyntaxError) {
	var (
		assignments []Assignment
		errs        []*SyntaxError

		open  *Assignment // field block still missing its closing brace
		depth int
		block []string
	)

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i, raw := range lines {
		lineNo := i + 1
		line := stripComment(raw)

		if open != nil {
			block = append(block, line)
			depth += braceDelta(line)

			if depth <= 0 {
				open.Literal = strings.TrimSpace(strings.Join(block, "\n"))
				assignments = append(assignments, *open)
				open, block = nil, nil
			}

			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			errs = append(errs, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("expected Name = value, got %q", line)})
			continue
		}

		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if !IsName(name) {
			errs = append(errs, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("invalid property name %q", name)})
			continue
		}

		if value == "" {
			errs = append(errs, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("missing value for %s", name)})
			continue
		}

		a := Assignment{Name: name, Literal: value, Line: lineNo}

		if d := braceDelta(value); d > 0 {
			open, depth, block = &a, d, []string{value}
			continue
		}

		assignments = append(assignments, a)
	}

	if open != nil {
		errs = append(errs, &SyntaxError{Line: open.Line, Msg: fmt.Sprintf("unterminated field block for %s", open.Name)})
	}

	return assignments, errs
}

// Dedupe keeps the last assignment of each name at the position of that last
// occurrence and returns the overridden ones separately.
func Dedupe(assignments []Assignment) (kept, overridden []Assignment) {
	last := make(map[string]int, len(assignments))
	for i, a := range assignments {
		last[a.Name] = i
	}

	for i, a := range assignments {
		if last[a.Name] == i {
			kept = append(kept, a)
		} else {
			overridden = append(overridden, a)
		}
	}

	return kept, overridden
}

// stripComment removes a "--" comment that starts outside a quoted string.
func stripComment(line string) string {
	inString, escaped := false, false

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}

	return line
}

// braceDelta counts unquoted opening minus closing braces.
func braceDelta(s string) int {
	inString, escaped, depth := false, false, 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}

	return depth
}
