// Package literal converts property values to and from the human-editable
// literal syntax used in property files.
package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/placefold/internal/model"
)

const indent = "    "

func invalid(kind m.Kind, format string, args ...any) *m.InvalidLiteralError {
	return &m.InvalidLiteralError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// ToLiteral renders v as a literal of the given kind.
func ToLiteral(kind m.Kind, v m.Value) (string, error) {
	if v == nil {
		return "", invalid(kind, "no value")
	}

	if v.Kind() != kind {
		return "", invalid(kind, "value is a %s", v.Kind())
	}

	switch v := v.(type) {
	case m.ValueString:
		return strconv.Quote(string(v)), nil
	case m.ValueProtectedString:
		return strconv.Quote(string(v)), nil
	case m.ValueBool:
		return strconv.FormatBool(bool(v)), nil
	case m.ValueInt:
		return strconv.FormatInt(int64(v), 10), nil
	case m.ValueInt64:
		return strconv.FormatInt(int64(v), 10), nil
	case m.ValueToken:
		return strconv.FormatUint(uint64(v), 10), nil
	case m.ValueBrickColor:
		return strconv.FormatUint(uint64(v), 10), nil
	case m.ValueFloat:
		return formatFloat(float64(v), 32), nil
	case m.ValueDouble:
		return formatFloat(float64(v), 64), nil
	}

	components, ok := m.Components(v)
	if !ok {
		return "", invalid(kind, "unsupported kind")
	}

	var b strings.Builder

	b.WriteString("{\n")

	for i, f := range m.Fields(kind) {
		b.WriteString(indent)
		b.WriteString(f.Name)
		b.WriteString(" = ")

		if f.Type == m.FieldFloat32 {
			b.WriteString(formatFloat(components[i], 32))
		} else {
			b.WriteString(strconv.FormatInt(int64(components[i]), 10))
		}

		b.WriteString(",\n")
	}

	b.WriteString("}")

	return b.String(), nil
}

// FromLiteral parses text as a literal of the given kind. Errors are
// *model.InvalidLiteralError.
func FromLiteral(kind m.Kind, text string) (m.Value, error) {
	text = strings.TrimSpace(text)

	switch kind {
	case m.KindString, m.KindProtectedString:
		s, err := unquote(kind, text)
		if err != nil {
			return nil, err
		}

		// Unquote turns raw invalid UTF-8 into U+FFFD, so the text is checked too.
		if !utf8.ValidString(text) || !m.IsXMLText(s) {
			return nil, invalid(kind, "contains characters XML cannot represent")
		}

		if kind == m.KindString {
			return m.ValueString(s), nil
		}

		return m.ValueProtectedString(s), nil
	case m.KindBool:
		switch text {
		case "true":
			return m.ValueBool(true), nil
		case "false":
			return m.ValueBool(false), nil
		}

		return nil, invalid(kind, "%q is neither true nor false", text)
	case m.KindInt:
		n, err := parseInt(kind, text, 32)
		return m.ValueInt(n), err
	case m.KindInt64:
		n, err := parseInt(kind, text, 64)
		return m.ValueInt64(n), err
	case m.KindToken:
		n, err := parseUint(kind, text, 32)
		return m.ValueToken(n), err
	case m.KindBrickColor:
		n, err := parseUint(kind, text, 32)
		return m.ValueBrickColor(n), err
	case m.KindFloat:
		f, err := parseFloat(kind, text, 32)
		return m.ValueFloat(f), err
	case m.KindDouble:
		f, err := parseFloat(kind, text, 64)
		return m.ValueDouble(f), err
	}

	if m.IsComposite(kind) {
		return parseComposite(kind, text)
	}

	return nil, invalid(kind, "unsupported kind")
}

func unquote(kind m.Kind, text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", invalid(kind, "expected a double-quoted string")
	}

	s, err := strconv.Unquote(text)
	if err != nil {
		return "", invalid(kind, "bad quoting in %s", text)
	}

	return s, nil
}

func parseInt(kind m.Kind, text string, bits int) (int64, error) {
	n, err := strconv.ParseInt(text, 10, bits)
	if err != nil {
		return 0, numberError(kind, text, err)
	}

	return n, nil
}

func parseUint(kind m.Kind, text string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return 0, numberError(kind, text, err)
	}

	return n, nil
}

func numberError(kind m.Kind, text string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return invalid(kind, "%s is out of range", text)
	}

	return invalid(kind, "%q is not a number", text)
}

func parseFloat(kind m.Kind, text string, bits int) (float64, error) {
	switch text {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}

	if !isDecimal(text) {
		return 0, invalid(kind, "%q is not a number", text)
	}

	f, err := strconv.ParseFloat(text, bits)
	if err != nil {
		return 0, numberError(kind, text, err)
	}

	return f, nil
}

// isDecimal accepts [+-]digits[.digits][(e|E)[+-]digits] with at least one
// mantissa digit.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}

	if i < len(s) && s[i] == '.' {
		i++

		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}

	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}

		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}

		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	return strconv.FormatFloat(f, 'g', -1, bits)
}

// parseComposite reads a field block. Fields may come in any order, separated
// by commas or newlines, and "--" starts a comment that runs to the end of the
// line.
func parseComposite(kind m.Kind, text string) (m.Value, error) {
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") || len(text) < 2 {
		return nil, invalid(kind, "expected a { ... } field block")
	}

	body := text[1 : len(text)-1]
	if strings.ContainsAny(body, "{}") {
		return nil, invalid(kind, "unbalanced braces")
	}

	fields := m.Fields(kind)
	index := make(map[string]int, len(fields))

	for i, f := range fields {
		index[f.Name] = i
	}

	components := make([]float64, len(fields))
	seen := make([]bool, len(fields))

	for _, line := range strings.Split(body, "\n") {
		if c := strings.Index(line, "--"); c >= 0 {
			line = line[:c]
		}

		for _, item := range strings.Split(line, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}

			name, value, ok := strings.Cut(item, "=")
			if !ok {
				return nil, invalid(kind, "expected Field = value, got %q", item)
			}

			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)

			i, known := index[name]
			if !known {
				return nil, invalid(kind, "unknown field %q", name)
			}

			if seen[i] {
				return nil, invalid(kind, "duplicate field %s", name)
			}

			seen[i] = true

			x, err := parseField(kind, fields[i], value)
			if err != nil {
				return nil, err
			}

			components[i] = x
		}
	}

	for i, f := range fields {
		if !seen[i] {
			return nil, invalid(kind, "missing field %s", f.Name)
		}
	}

	v, err := m.FromComponents(kind, components)
	if err != nil {
		return nil, invalid(kind, "%v", err)
	}

	return v, nil
}

func parseField(kind m.Kind, f m.Field, text string) (float64, error) {
	var (
		x   float64
		err error
	)

	switch f.Type {
	case m.FieldFloat32:
		x, err = parseFloat(kind, text, 32)
	case m.FieldInt32:
		var n int64
		n, err = parseInt(kind, text, 32)
		x = float64(n)
	case m.FieldUint8:
		var n uint64
		n, err = parseUint(kind, text, 8)
		x = float64(n)
	}

	if err != nil {
		if ile, ok := err.(*m.InvalidLiteralError); ok {
			ile.Reason = f.Name + ": " + ile.Reason
		}

		return 0, err
	}

	return x, nil
}
