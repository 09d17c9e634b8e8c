package fit

import "fmt"

// ValueKind tags the concrete representation a TypedValue carries.
type ValueKind int

const (
	KindEnum ValueKind = iota
	KindSint8
	KindUint8
	KindSint16
	KindUint16
	KindSint32
	KindUint32
	KindSint64
	KindUint64
	KindUint8z
	KindUint16z
	KindUint32z
	KindUint64z
	KindFloat32
	KindFloat64
	KindString
	KindByte
	KindDateTime
	KindUnknown
)

// EnumVariant is a raw enum value plus its resolved name, when the catalog
// knows one.
type EnumVariant struct {
	Raw   uint32
	Name  string
	Known bool
}

// TypedValue is the tagged union every decoded field element is represented
// as. Exactly one of the typed accessors is meaningful for a given Kind;
// Invalid marks a value that matched its type's invalid-sentinel pattern.
type TypedValue struct {
	Kind    ValueKind
	Int     int64
	Uint    uint64
	Float   float64
	Str     string
	Bytes   []byte
	Enum    EnumVariant
	Invalid bool
}

func (v TypedValue) String() string {
	switch v.Kind {
	case KindEnum:
		if v.Enum.Known {
			return v.Enum.Name
		}
		return fmt.Sprintf("Unknown(%d)", v.Enum.Raw)
	case KindSint8, KindSint16, KindSint32, KindSint64:
		return fmt.Sprintf("%d", v.Int)
	case KindUint8, KindUint16, KindUint32, KindUint64,
		KindUint8z, KindUint16z, KindUint32z, KindUint64z, KindDateTime:
		return fmt.Sprintf("%d", v.Uint)
	case KindFloat32, KindFloat64:
		return fmt.Sprintf("%v", v.Float)
	case KindString:
		return v.Str
	case KindByte, KindUnknown:
		return fmt.Sprintf("%x", v.Bytes)
	default:
		return "?"
	}
}

// elementBitWidth returns the size in bytes of the base representation this
// value was parsed from, used by ApplyScaleOffset to pick the promotion
// target (Float32 for <=4 byte inputs, Float64 for 8-byte inputs).
func (v TypedValue) elementBitWidth() int {
	switch v.Kind {
	case KindSint8, KindUint8, KindUint8z:
		return 1
	case KindSint16, KindUint16, KindUint16z:
		return 2
	case KindSint32, KindUint32, KindUint32z, KindDateTime, KindFloat32:
		return 4
	case KindSint64, KindUint64, KindUint64z, KindFloat64:
		return 8
	default:
		return 0
	}
}

func (v TypedValue) rawFloat() (float64, bool) {
	switch v.Kind {
	case KindSint8, KindSint16, KindSint32, KindSint64:
		return float64(v.Int), true
	case KindUint8, KindUint16, KindUint32, KindUint64,
		KindUint8z, KindUint16z, KindUint32z, KindUint64z, KindDateTime:
		return float64(v.Uint), true
	case KindFloat32, KindFloat64:
		return v.Float, true
	default:
		return 0, false
	}
}

// ApplyScaleOffset computes result = (raw/scale) - offset, promoting to
// Float32 for values parsed from an 8/16/32-bit base and Float64 for
// 64-bit bases. DateTime is scaled then truncated back to a uint32.
// Invalid values and non-numeric kinds pass through unchanged. A zero
// scale is a hard error.
func ApplyScaleOffset(v TypedValue, scale, offset float64) (TypedValue, error) {
	if v.Invalid {
		return v, nil
	}
	raw, ok := v.rawFloat()
	if !ok {
		return v, nil
	}
	if scale == 0 {
		return TypedValue{}, errScaleByZero()
	}
	result := raw/scale - offset

	if v.Kind == KindDateTime {
		return TypedValue{Kind: KindDateTime, Uint: uint64(uint32(result))}, nil
	}
	if v.elementBitWidth() >= 8 {
		return TypedValue{Kind: KindFloat64, Float: result}, nil
	}
	return TypedValue{Kind: KindFloat32, Float: float64(float32(result))}, nil
}
