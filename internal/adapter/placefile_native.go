package adapter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/placefold/internal/model"
)

// nativeComposite reports whether kind is stored as child field elements.
// Color3uint8 is a field block in property files but a packed integer in XML.
func nativeComposite(kind m.Kind) bool {
	return m.IsComposite(kind) && kind != m.KindColor3uint8
}

func decodeScalar(kind m.Kind, text string) (m.Value, error) {
	trimmed := strings.TrimSpace(text)

	switch kind {
	case m.KindString:
		return m.ValueString(text), nil
	case m.KindProtectedString:
		return m.ValueProtectedString(text), nil
	case m.KindBool:
		switch trimmed {
		case "true", "True", "TRUE":
			return m.ValueBool(true), nil
		case "false", "False", "FALSE":
			return m.ValueBool(false), nil
		}

		return nil, fmt.Errorf("invalid bool %q", trimmed)
	case m.KindInt:
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, err
		}

		return m.ValueInt(n), nil
	case m.KindInt64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, err
		}

		return m.ValueInt64(n), nil
	case m.KindFloat:
		f, err := strconv.ParseFloat(trimmed, 32)
		if err != nil {
			return nil, err
		}

		return m.ValueFloat(f), nil
	case m.KindDouble:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, err
		}

		return m.ValueDouble(f), nil
	case m.KindToken:
		n, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			return nil, err
		}

		return m.ValueToken(n), nil
	case m.KindBrickColor:
		n, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			return nil, err
		}

		return m.ValueBrickColor(n), nil
	case m.KindColor3uint8:
		n, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			return nil, err
		}

		return m.ValueColor3uint8{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
	}

	return nil, fmt.Errorf("%s is not a scalar kind", kind)
}

func decodeComposite(kind m.Kind, fields map[string]fieldContent) (m.Value, error) {
	schema := m.Fields(kind)
	components := make([]float64, len(schema))

	for i, f := range schema {
		fc, ok := fields[f.Name]
		if !ok {
			return nil, fmt.Errorf("missing field %s", f.Name)
		}

		s := strings.TrimSpace(fc.text)

		switch f.Type {
		case m.FieldFloat32:
			x, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}

			components[i] = x
		case m.FieldInt32:
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}

			components[i] = float64(n)
		case m.FieldUint8:
			n, err := strconv.ParseUint(s, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}

			components[i] = float64(n)
		}
	}

	return m.FromComponents(kind, components)
}

// EncodeValue renders the inner text of a scalar property.
func (a *LocalPlaceFileAdapter) EncodeValue(value m.Value) (string, error) {
	switch v := value.(type) {
	case m.ValueString:
		return escapeText(string(v)), nil
	case m.ValueProtectedString:
		return escapeText(string(v)), nil
	case m.ValueBool:
		return strconv.FormatBool(bool(v)), nil
	case m.ValueInt:
		return strconv.FormatInt(int64(v), 10), nil
	case m.ValueInt64:
		return strconv.FormatInt(int64(v), 10), nil
	case m.ValueFloat:
		return encodeFloat(float64(v), 32), nil
	case m.ValueDouble:
		return encodeFloat(float64(v), 64), nil
	case m.ValueToken:
		return strconv.FormatUint(uint64(v), 10), nil
	case m.ValueBrickColor:
		return strconv.FormatUint(uint64(v), 10), nil
	case m.ValueColor3uint8:
		packed := uint64(0xFF)<<24 | uint64(v.R)<<16 | uint64(v.G)<<8 | uint64(v.B)
		return strconv.FormatUint(packed, 10), nil
	case nil:
		return "", errors.New("nil value")
	}

	return "", fmt.Errorf("%s has no scalar encoding", value.Kind())
}

// EncodeField renders the inner text of one composite field element.
func (a *LocalPlaceFileAdapter) EncodeField(value m.Value, field string) (string, error) {
	components, ok := m.Components(value)
	if !ok {
		return "", fmt.Errorf("%s is not a composite kind", value.Kind())
	}

	for i, f := range m.Fields(value.Kind()) {
		if f.Name != field {
			continue
		}

		if f.Type == m.FieldFloat32 {
			return encodeFloat(components[i], 32), nil
		}

		return strconv.FormatInt(int64(components[i]), 10), nil
	}

	return "", fmt.Errorf("%s has no field %s", value.Kind(), field)
}

// EncodeScript renders a script body. CDATA sections are split around any
// "]]>" in the body.
func (a *LocalPlaceFileAdapter) EncodeScript(body string, cdata, crlf bool) string {
	body = m.NormalizeNewlines(body)
	if crlf {
		body = strings.ReplaceAll(body, "\n", "\r\n")
	}

	if !cdata {
		return escapeText(body)
	}

	return "<![CDATA[" + strings.ReplaceAll(body, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// SerializeProperty renders a complete property element in compact form.
func (a *LocalPlaceFileAdapter) SerializeProperty(tag, name string, value m.Value) (string, error) {
	if value == nil {
		return "", errors.New("nil value")
	}

	var b strings.Builder

	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` name="`)

	if err := xml.EscapeText(&b, []byte(name)); err != nil {
		return "", err
	}

	b.WriteString(`">`)

	switch {
	case value.Kind() == m.KindProtectedString:
		b.WriteString(a.EncodeScript(string(value.(m.ValueProtectedString)), true, false))
	case nativeComposite(value.Kind()):
		for _, f := range m.Fields(value.Kind()) {
			text, err := a.EncodeField(value, f.Name)
			if err != nil {
				return "", err
			}

			b.WriteString("<" + f.Name + ">" + text + "</" + f.Name + ">")
		}
	default:
		text, err := a.EncodeValue(value)
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")

	return b.String(), nil
}

func encodeFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}

	return strconv.FormatFloat(f, 'g', -1, bits)
}

// escapeText escapes character data. Carriage returns are written as
// character references so XML line-ending normalization keeps them.
func escapeText(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && width == 1 {
			b.WriteRune(utf8.RuneError)

			i += width

			continue
		}

		i += width

		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '\r':
			b.WriteString("&#13;")
		case !m.IsXMLChar(r):
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
