package model

import "math"

// Kind identifies the type of a property value. The set is fixed; tags outside
// of it are preserved in the document but never exported or rewritten.
type Kind string

// Supported property kinds. The values match the canonical XML tag names.
const (
	KindString          Kind = "string"
	KindProtectedString Kind = "ProtectedString"
	KindBool            Kind = "bool"
	KindInt             Kind = "int"
	KindInt64           Kind = "int64"
	KindFloat           Kind = "float"
	KindDouble          Kind = "double"
	KindToken           Kind = "token"
	KindBrickColor      Kind = "BrickColor"
	KindVector2         Kind = "Vector2"
	KindVector3         Kind = "Vector3"
	KindColor3          Kind = "Color3"
	KindColor3uint8     Kind = "Color3uint8"
	KindUDim            Kind = "UDim"
	KindUDim2           Kind = "UDim2"
	KindCFrame          Kind = "CoordinateFrame"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{
	KindString, KindProtectedString, KindBool, KindInt, KindInt64, KindFloat,
	KindDouble, KindToken, KindBrickColor, KindVector2, KindVector3, KindColor3,
	KindColor3uint8, KindUDim, KindUDim2, KindCFrame,
}

// KindFromTag maps an XML property tag to its kind.
func KindFromTag(tag string) (Kind, bool) {
	if tag == "CFrame" {
		return KindCFrame, true
	}

	for _, k := range Kinds {
		if string(k) == tag {
			return k, true
		}
	}

	return "", false
}

// Value is a typed property value.
type Value interface {
	Kind() Kind
}

// Scalar values.
type (
	ValueString          string
	ValueProtectedString string
	ValueBool            bool
	ValueInt             int32
	ValueInt64           int64
	ValueFloat           float32
	ValueDouble          float64
	ValueToken           uint32
	ValueBrickColor      uint32
)

// ValueVector2 is a two-component float vector.
type ValueVector2 struct {
	X, Y float32
}

// ValueVector3 is a three-component float vector.
type ValueVector3 struct {
	X, Y, Z float32
}

// ValueColor3 is a color with float channels in [0, 1].
type ValueColor3 struct {
	R, G, B float32
}

// ValueColor3uint8 is a color with byte channels.
type ValueColor3uint8 struct {
	R, G, B uint8
}

// ValueUDim is a scale/offset pair.
type ValueUDim struct {
	Scale  float32
	Offset int32
}

// ValueUDim2 is a pair of UDims.
type ValueUDim2 struct {
	X, Y ValueUDim
}

// ValueCFrame is a position plus a row-major 3x3 rotation matrix.
type ValueCFrame struct {
	Position ValueVector3
	Rotation [9]float32
}

func (ValueString) Kind() Kind          { return KindString }
func (ValueProtectedString) Kind() Kind { return KindProtectedString }
func (ValueBool) Kind() Kind            { return KindBool }
func (ValueInt) Kind() Kind             { return KindInt }
func (ValueInt64) Kind() Kind           { return KindInt64 }
func (ValueFloat) Kind() Kind           { return KindFloat }
func (ValueDouble) Kind() Kind          { return KindDouble }
func (ValueToken) Kind() Kind           { return KindToken }
func (ValueBrickColor) Kind() Kind      { return KindBrickColor }
func (ValueVector2) Kind() Kind         { return KindVector2 }
func (ValueVector3) Kind() Kind         { return KindVector3 }
func (ValueColor3) Kind() Kind          { return KindColor3 }
func (ValueColor3uint8) Kind() Kind     { return KindColor3uint8 }
func (ValueUDim) Kind() Kind            { return KindUDim }
func (ValueUDim2) Kind() Kind           { return KindUDim2 }
func (ValueCFrame) Kind() Kind          { return KindCFrame }

// Equal reports whether two values are exactly equal. Floats compare by value
// with no tolerance, signed zeros are distinct and all NaNs are equal. Strings
// compare byte-exact after line ending normalization.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case ValueString:
		return NormalizeNewlines(string(av)) == NormalizeNewlines(string(b.(ValueString)))
	case ValueProtectedString:
		return NormalizeNewlines(string(av)) == NormalizeNewlines(string(b.(ValueProtectedString)))
	case ValueFloat:
		return SameNumber(float64(av), float64(b.(ValueFloat)))
	case ValueDouble:
		return SameNumber(float64(av), float64(b.(ValueDouble)))
	}

	if ca, ok := Components(a); ok {
		cb, _ := Components(b)

		for i := range ca {
			if !SameNumber(ca[i], cb[i]) {
				return false
			}
		}

		return true
	}

	return a == b
}

// SameNumber is the exact numeric comparison used by Equal.
func SameNumber(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return a == b && math.Signbit(a) == math.Signbit(b)
}
