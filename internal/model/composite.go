package model

import (
	"fmt"
	"math"
)

// FieldType is the numeric type of a composite field.
type FieldType int

// Composite field types.
const (
	FieldFloat32 FieldType = iota
	FieldInt32
	FieldUint8
)

// Field names one component of a composite kind.
type Field struct {
	Name string
	Type FieldType
}

var compositeFields = map[Kind][]Field{
	KindVector2: {{"X", FieldFloat32}, {"Y", FieldFloat32}},
	KindVector3: {{"X", FieldFloat32}, {"Y", FieldFloat32}, {"Z", FieldFloat32}},
	KindColor3:  {{"R", FieldFloat32}, {"G", FieldFloat32}, {"B", FieldFloat32}},
	KindColor3uint8: {
		{"R", FieldUint8}, {"G", FieldUint8}, {"B", FieldUint8},
	},
	KindUDim: {{"S", FieldFloat32}, {"O", FieldInt32}},
	KindUDim2: {
		{"XS", FieldFloat32}, {"XO", FieldInt32}, {"YS", FieldFloat32}, {"YO", FieldInt32},
	},
	KindCFrame: {
		{"X", FieldFloat32}, {"Y", FieldFloat32}, {"Z", FieldFloat32},
		{"R00", FieldFloat32}, {"R01", FieldFloat32}, {"R02", FieldFloat32},
		{"R10", FieldFloat32}, {"R11", FieldFloat32}, {"R12", FieldFloat32},
		{"R20", FieldFloat32}, {"R21", FieldFloat32}, {"R22", FieldFloat32},
	},
}

// Fields returns the ordered fields of a composite kind, or nil for scalars.
func Fields(kind Kind) []Field {
	return compositeFields[kind]
}

// IsComposite reports whether kind is rendered as a field block.
func IsComposite(kind Kind) bool {
	_, ok := compositeFields[kind]
	return ok
}

// Components flattens a composite value into its fields in canonical order.
func Components(v Value) ([]float64, bool) {
	switch v := v.(type) {
	case ValueVector2:
		return []float64{float64(v.X), float64(v.Y)}, true
	case ValueVector3:
		return []float64{float64(v.X), float64(v.Y), float64(v.Z)}, true
	case ValueColor3:
		return []float64{float64(v.R), float64(v.G), float64(v.B)}, true
	case ValueColor3uint8:
		return []float64{float64(v.R), float64(v.G), float64(v.B)}, true
	case ValueUDim:
		return []float64{float64(v.Scale), float64(v.Offset)}, true
	case ValueUDim2:
		return []float64{
			float64(v.X.Scale), float64(v.X.Offset),
			float64(v.Y.Scale), float64(v.Y.Offset),
		}, true
	case ValueCFrame:
		c := make([]float64, 0, 12)
		c = append(c, float64(v.Position.X), float64(v.Position.Y), float64(v.Position.Z))

		for _, r := range v.Rotation {
			c = append(c, float64(r))
		}

		return c, true
	}

	return nil, false
}

// FromComponents builds a composite value from fields in canonical order. Each
// component must already be representable in its field type.
func FromComponents(kind Kind, c []float64) (Value, error) {
	fields := Fields(kind)
	if fields == nil {
		return nil, fmt.Errorf("%s is not a composite kind", kind)
	}

	if len(c) != len(fields) {
		return nil, fmt.Errorf("%s expects %d components, got %d", kind, len(fields), len(c))
	}

	for i, f := range fields {
		if err := CheckComponent(f.Type, c[i]); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", kind, f.Name, err)
		}
	}

	f32 := func(i int) float32 { return float32(c[i]) }

	switch kind {
	case KindVector2:
		return ValueVector2{X: f32(0), Y: f32(1)}, nil
	case KindVector3:
		return ValueVector3{X: f32(0), Y: f32(1), Z: f32(2)}, nil
	case KindColor3:
		return ValueColor3{R: f32(0), G: f32(1), B: f32(2)}, nil
	case KindColor3uint8:
		return ValueColor3uint8{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}, nil
	case KindUDim:
		return ValueUDim{Scale: f32(0), Offset: int32(c[1])}, nil
	case KindUDim2:
		return ValueUDim2{
			X: ValueUDim{Scale: f32(0), Offset: int32(c[1])},
			Y: ValueUDim{Scale: f32(2), Offset: int32(c[3])},
		}, nil
	case KindCFrame:
		v := ValueCFrame{Position: ValueVector3{X: f32(0), Y: f32(1), Z: f32(2)}}
		for i := range v.Rotation {
			v.Rotation[i] = f32(3 + i)
		}

		return v, nil
	}

	return nil, fmt.Errorf("%s is not a composite kind", kind)
}

// CheckComponent verifies that x fits the field type without loss.
func CheckComponent(t FieldType, x float64) error {
	switch t {
	case FieldInt32:
		if x != math.Trunc(x) || x < math.MinInt32 || x > math.MaxInt32 {
			return fmt.Errorf("%v is not a 32-bit integer", x)
		}
	case FieldUint8:
		if x != math.Trunc(x) || x < 0 || x > math.MaxUint8 {
			return fmt.Errorf("%v is not in range 0-255", x)
		}
	case FieldFloat32:
		if !math.IsNaN(x) && !math.IsInf(x, 0) && float64(float32(x)) != x {
			return fmt.Errorf("%v is not a 32-bit float", x)
		}
	}

	return nil
}
