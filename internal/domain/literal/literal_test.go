package literal

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/placefold/internal/model"
)

func sampleValues() []m.Value {
	return []m.Value{
		m.ValueString("Baseplate"),
		m.ValueString("multi\nline \"quoted\" \t tab \x00 \xff"),
		m.ValueProtectedString("print('hi')\n"),
		m.ValueBool(true),
		m.ValueBool(false),
		m.ValueInt(math.MinInt32),
		m.ValueInt64(math.MaxInt64),
		m.ValueToken(math.MaxUint32),
		m.ValueBrickColor(194),
		m.ValueFloat(0.1),
		m.ValueFloat(float32(math.Copysign(0, -1))),
		m.ValueFloat(float32(math.Inf(-1))),
		m.ValueFloat(float32(math.NaN())),
		m.ValueFloat(3.4028235e38),
		m.ValueDouble(1e-300),
		m.ValueDouble(math.Inf(1)),
		m.ValueVector2{X: 0.5, Y: -1},
		m.ValueVector3{X: 4, Y: 1, Z: 2},
		m.ValueColor3{R: 0.1, G: 0.2, B: 0.3},
		m.ValueColor3uint8{R: 0, G: 128, B: 255},
		m.ValueUDim{Scale: 1, Offset: math.MinInt32},
		m.ValueUDim2{X: m.ValueUDim{Scale: 0.5, Offset: 10}, Y: m.ValueUDim{Scale: 0, Offset: -3}},
		m.ValueCFrame{
			Position: m.ValueVector3{X: 1, Y: 2.5, Z: -3},
			Rotation: [9]float32{1, 0, 0, 0, float32(math.NaN()), 0, 0, 0, 1},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range sampleValues() {
		t.Run(string(v.Kind()), func(t *testing.T) {
			text, err := ToLiteral(v.Kind(), v)
			require.NoError(t, err)

			got, err := FromLiteral(v.Kind(), text)
			require.NoError(t, err, "literal: %s", text)
			assert.True(t, m.Equal(v, got), "literal %s: want %#v, got %#v", text, v, got)
		})
	}
}

func TestToLiteral_Format(t *testing.T) {
	tests := []struct {
		value m.Value
		want  string
	}{
		{m.ValueString("Baseplate"), `"Baseplate"`},
		{m.ValueString("a\nb"), `"a\nb"`},
		{m.ValueBool(true), "true"},
		{m.ValueInt(-7), "-7"},
		{m.ValueFloat(0.1), "0.1"},
		{m.ValueFloat(float32(math.Inf(1))), "inf"},
		{m.ValueDouble(math.NaN()), "nan"},
		{m.ValueDouble(1e21), "1e+21"},
		{m.ValueVector3{X: 4, Y: 1, Z: 2}, "{\n    X = 4,\n    Y = 1,\n    Z = 2,\n}"},
		{m.ValueUDim{Scale: 0.5, Offset: 12}, "{\n    S = 0.5,\n    O = 12,\n}"},
		{m.ValueColor3uint8{R: 1, G: 2, B: 3}, "{\n    R = 1,\n    G = 2,\n    B = 3,\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ToLiteral(tt.value.Kind(), tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ToLiteral(m.KindInt, m.ValueBool(true))
	assert.Error(t, err)

	_, err = ToLiteral(m.KindInt, nil)
	assert.Error(t, err)
}

func TestFromLiteral_Accepts(t *testing.T) {
	tests := []struct {
		name string
		kind m.Kind
		text string
		want m.Value
	}{
		{"fields any order one line", m.KindVector3, "{ Z = 2, X = 4, Y = 1 }", m.ValueVector3{X: 4, Y: 1, Z: 2}},
		{"newline separated no commas", m.KindVector3, "{\n  X = 4\n  Y = 2.0\n  Z = 2\n}", m.ValueVector3{X: 4, Y: 2, Z: 2}},
		{"comment inside block", m.KindVector2, "{\n X = 1, -- left\n Y = 2,\n}", m.ValueVector2{X: 1, Y: 2}},
		{"exponent float", m.KindDouble, "-1.5e3", m.ValueDouble(-1500)},
		{"leading dot", m.KindFloat, ".5", m.ValueFloat(0.5)},
		{"trailing dot", m.KindFloat, "5.", m.ValueFloat(5)},
		{"plus sign", m.KindInt, "+12", m.ValueInt(12)},
		{"surrounding space", m.KindBool, "  false ", m.ValueBool(false)},
		{"escaped string", m.KindString, `"tab\there"`, m.ValueString("tab\there")},
		{"udim2", m.KindUDim2, "{XS = 1, XO = -2, YS = 0.5, YO = 3}", m.ValueUDim2{X: m.ValueUDim{Scale: 1, Offset: -2}, Y: m.ValueUDim{Scale: 0.5, Offset: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromLiteral(tt.kind, tt.text)
			require.NoError(t, err)
			assert.True(t, m.Equal(tt.want, got), "want %#v, got %#v", tt.want, got)
		})
	}
}

func TestFromLiteral_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind m.Kind
		text string
	}{
		{"missing field", m.KindVector3, "{ X = 1, Y = 2 }"},
		{"unknown field", m.KindVector3, "{ X = 1, Y = 2, Z = 3, W = 4 }"},
		{"duplicate field", m.KindVector3, "{ X = 1, X = 1, Y = 2, Z = 3 }"},
		{"non numeric field", m.KindVector3, "{ X = one, Y = 2, Z = 3 }"},
		{"int field with fraction", m.KindUDim, "{ S = 1, O = 1.5 }"},
		{"uint8 out of range", m.KindColor3uint8, "{ R = 256, G = 0, B = 0 }"},
		{"no braces", m.KindVector2, "X = 1, Y = 2"},
		{"nested braces", m.KindVector2, "{ X = {1}, Y = 2 }"},
		{"missing equals", m.KindVector2, "{ X 1, Y = 2 }"},
		{"int32 overflow", m.KindInt, "2147483648"},
		{"negative token", m.KindToken, "-1"},
		{"int as float", m.KindInt, "1.0"},
		{"hex int", m.KindInt64, "0x10"},
		{"underscore int", m.KindInt, "1_000"},
		{"hex float", m.KindDouble, "0x1p-2"},
		{"word float", m.KindFloat, "Infinity"},
		{"float32 overflow", m.KindFloat, "1e39"},
		{"empty float", m.KindFloat, ""},
		{"capital bool", m.KindBool, "True"},
		{"numeric bool", m.KindBool, "1"},
		{"unquoted string", m.KindString, "Baseplate"},
		{"single quoted string", m.KindString, "'Baseplate'"},
		{"bad escape", m.KindString, `"\q"`},
		{"unterminated string", m.KindString, `"abc`},
		{"control character", m.KindString, `"Base\x01plate"`},
		{"invalid utf-8", m.KindProtectedString, `"Base\xffplate"`},
		{"raw invalid utf-8", m.KindString, "\"Base\xffplate\""},
		{"unsupported kind", m.Kind("BinaryString"), `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLiteral(tt.kind, tt.text)
			require.Error(t, err)

			var ile *m.InvalidLiteralError
			require.True(t, errors.As(err, &ile), "got %T", err)
			assert.Equal(t, tt.kind, ile.Kind)
			assert.NotEmpty(t, ile.Reason)
		})
	}
}

func TestIsDecimal(t *testing.T) {
	for _, s := range []string{"0", "-0", "1.5", ".5", "5.", "1e5", "1E-5", "+3"} {
		assert.True(t, isDecimal(s), s)
	}

	for _, s := range []string{"", ".", "e5", "1e", "1e+", "--1", "1.2.3", "nan", "1f"} {
		assert.False(t, isDecimal(s), s)
	}
}
