package fit

import (
	"encoding/binary"
	"math"
)

// BaseType is the on-wire element type byte declared by a definition field.
type BaseType uint8

const (
	BaseEnum    BaseType = 0x00
	BaseSint8   BaseType = 0x01
	BaseUint8   BaseType = 0x02
	BaseSint16  BaseType = 0x83
	BaseUint16  BaseType = 0x84
	BaseSint32  BaseType = 0x85
	BaseUint32  BaseType = 0x86
	BaseString  BaseType = 0x07
	BaseFloat32 BaseType = 0x88
	BaseFloat64 BaseType = 0x89
	BaseUint8z  BaseType = 0x0A
	BaseUint16z BaseType = 0x8B
	BaseUint32z BaseType = 0x8C
	BaseByte    BaseType = 0x0D
	BaseSint64  BaseType = 0x8E
	BaseUint64  BaseType = 0x8F
	BaseUint64z BaseType = 0x90
)

type baseTypeSpec struct {
	elemSize int
	kind     ValueKind
	parse    func(raw []byte, order binary.ByteOrder) TypedValue
}

var baseTypeSpecs = map[BaseType]baseTypeSpec{
	BaseEnum: {1, KindEnum, func(raw []byte, _ binary.ByteOrder) TypedValue {
		v := raw[0]
		return TypedValue{Kind: KindEnum, Enum: EnumVariant{Raw: uint32(v)}, Invalid: v == 0xFF}
	}},
	BaseSint8: {1, KindSint8, func(raw []byte, _ binary.ByteOrder) TypedValue {
		v := int8(raw[0])
		return TypedValue{Kind: KindSint8, Int: int64(v), Invalid: v == 0x7F}
	}},
	BaseUint8: {1, KindUint8, func(raw []byte, _ binary.ByteOrder) TypedValue {
		v := raw[0]
		return TypedValue{Kind: KindUint8, Uint: uint64(v), Invalid: v == 0xFF}
	}},
	BaseSint16: {2, KindSint16, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := int16(order.Uint16(raw))
		return TypedValue{Kind: KindSint16, Int: int64(v), Invalid: v == 0x7FFF}
	}},
	BaseUint16: {2, KindUint16, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint16(raw)
		return TypedValue{Kind: KindUint16, Uint: uint64(v), Invalid: v == 0xFFFF}
	}},
	BaseSint32: {4, KindSint32, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := int32(order.Uint32(raw))
		return TypedValue{Kind: KindSint32, Int: int64(v), Invalid: v == 0x7FFFFFFF}
	}},
	BaseUint32: {4, KindUint32, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint32(raw)
		return TypedValue{Kind: KindUint32, Uint: uint64(v), Invalid: v == 0xFFFFFFFF}
	}},
	BaseFloat32: {4, KindFloat32, func(raw []byte, order binary.ByteOrder) TypedValue {
		bits := order.Uint32(raw)
		return TypedValue{Kind: KindFloat32, Float: float64(math.Float32frombits(bits)), Invalid: bits == 0xFFFFFFFF}
	}},
	BaseFloat64: {8, KindFloat64, func(raw []byte, order binary.ByteOrder) TypedValue {
		bits := order.Uint64(raw)
		return TypedValue{Kind: KindFloat64, Float: math.Float64frombits(bits), Invalid: bits == 0xFFFFFFFFFFFFFFFF}
	}},
	BaseUint8z: {1, KindUint8z, func(raw []byte, _ binary.ByteOrder) TypedValue {
		v := raw[0]
		return TypedValue{Kind: KindUint8z, Uint: uint64(v), Invalid: v == 0x00}
	}},
	BaseUint16z: {2, KindUint16z, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint16(raw)
		return TypedValue{Kind: KindUint16z, Uint: uint64(v), Invalid: v == 0x0000}
	}},
	BaseUint32z: {4, KindUint32z, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint32(raw)
		return TypedValue{Kind: KindUint32z, Uint: uint64(v), Invalid: v == 0x00000000}
	}},
	BaseSint64: {8, KindSint64, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := int64(order.Uint64(raw))
		return TypedValue{Kind: KindSint64, Int: v, Invalid: v == 0x7FFFFFFFFFFFFFFF}
	}},
	BaseUint64: {8, KindUint64, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint64(raw)
		return TypedValue{Kind: KindUint64, Uint: v, Invalid: v == 0xFFFFFFFFFFFFFFFF}
	}},
	BaseUint64z: {8, KindUint64z, func(raw []byte, order binary.ByteOrder) TypedValue {
		v := order.Uint64(raw)
		return TypedValue{Kind: KindUint64z, Uint: v, Invalid: v == 0x0000000000000000}
	}},
}

// decodeValues consumes size bytes according to base and produces the
// element list a DataMessageField carries. String, Byte and Unknown are
// whole-run types and always yield exactly one value; numeric types yield
// size/elemSize values.
func decodeValues(base BaseType, order binary.ByteOrder, raw []byte) ([]TypedValue, error) {
	switch base {
	case BaseString:
		return []TypedValue{decodeString(raw)}, nil
	case BaseByte:
		return []TypedValue{decodeByteArray(raw)}, nil
	}

	spec, ok := baseTypeSpecs[base]
	if !ok {
		return []TypedValue{{Kind: KindUnknown, Bytes: append([]byte(nil), raw...), Invalid: true}}, nil
	}
	if len(raw)%spec.elemSize != 0 {
		return nil, errDataNotAligned(len(raw), spec.elemSize)
	}

	count := len(raw) / spec.elemSize
	out := make([]TypedValue, count)
	for i := 0; i < count; i++ {
		out[i] = spec.parse(raw[i*spec.elemSize:(i+1)*spec.elemSize], order)
	}
	return out, nil
}

func decodeString(raw []byte) TypedValue {
	end := len(raw)
	for i, b := range raw {
		if b == 0x00 {
			end = i
			break
		}
	}
	return TypedValue{Kind: KindString, Str: string(raw[:end])}
}

func decodeByteArray(raw []byte) TypedValue {
	return TypedValue{Kind: KindByte, Bytes: append([]byte(nil), raw...), Invalid: allBytesEqual(raw, 0xFF)}
}

func allBytesEqual(raw []byte, value byte) bool {
	if len(raw) == 0 {
		return false
	}
	for _, b := range raw {
		if b != value {
			return false
		}
	}
	return true
}

// baseTypeElementSize reports the element size in bytes of a base type, or
// 1 for the whole-run types (String/Byte) and for any unrecognized code.
func baseTypeElementSize(base BaseType) int {
	if spec, ok := baseTypeSpecs[base]; ok {
		return spec.elemSize
	}
	return 1
}
