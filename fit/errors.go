package fit

import "fmt"

// ErrorKind identifies one variant of the decoder's error taxonomy. Every
// failure the decoder can produce is one of these; none are recovered from
// locally.
type ErrorKind int

const (
	ErrInvalidHeaderSize ErrorKind = iota
	ErrInvalidHeaderType
	ErrHeaderMalformed
	ErrInvalidHeaderCRC
	ErrInvalidBodyCRC
	ErrContentExhausted
	ErrContentPrematurelyEmpty
	ErrNoDefinitionMessageFound
	ErrNoDescriptionFound
	ErrTimestampMissingForCompressedTimestamp
	ErrDataNotAligned
	ErrScaleByZero
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidHeaderSize:
		return "InvalidHeaderSize"
	case ErrInvalidHeaderType:
		return "InvalidHeaderType"
	case ErrHeaderMalformed:
		return "HeaderMalformed"
	case ErrInvalidHeaderCRC:
		return "InvalidHeaderCRC"
	case ErrInvalidBodyCRC:
		return "InvalidBodyCRC"
	case ErrContentExhausted:
		return "ContentExhausted"
	case ErrContentPrematurelyEmpty:
		return "ContentPrematurelyEmpty"
	case ErrNoDefinitionMessageFound:
		return "NoDefinitionMessageFound"
	case ErrNoDescriptionFound:
		return "NoDescriptionFound"
	case ErrTimestampMissingForCompressedTimestamp:
		return "TimestampMissingForCompressedTimestamp"
	case ErrDataNotAligned:
		return "DataNotAligned"
	case ErrScaleByZero:
		return "ScaleByZero"
	default:
		return "Unknown"
	}
}

// DecodeError is the single error type the decoder returns. Kind identifies
// the taxonomy variant; the numeric fields are populated for the variants
// that carry context (CRC mismatches, misaligned sizes, unresolved ids).
type DecodeError struct {
	Kind ErrorKind

	Expected uint16
	Actual   uint16

	LocalID uint8

	DevIndex uint8
	FieldNum uint8

	Size        int
	ElementSize int

	msg string
}

func (e *DecodeError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.Kind.String()
}

func newError(kind ErrorKind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func errInvalidHeaderSize(size uint8) *DecodeError {
	return newError(ErrInvalidHeaderSize, "invalid fit header size: %d", size)
}

func errInvalidHeaderType() *DecodeError {
	return newError(ErrInvalidHeaderType, "header magic is not \".FIT\"")
}

func errHeaderMalformed(err error) *DecodeError {
	return newError(ErrHeaderMalformed, "premature end of input in header: %v", err)
}

func errInvalidHeaderCRC(expected, actual uint16) *DecodeError {
	e := newError(ErrInvalidHeaderCRC, "header crc mismatch: expected 0x%04X, got 0x%04X", expected, actual)
	e.Expected, e.Actual = expected, actual
	return e
}

func errInvalidBodyCRC(expected, actual uint16) *DecodeError {
	e := newError(ErrInvalidBodyCRC, "body crc mismatch: expected 0x%04X, got 0x%04X", expected, actual)
	e.Expected, e.Actual = expected, actual
	return e
}

func errContentExhausted() *DecodeError {
	return newError(ErrContentExhausted, "reader byte budget exhausted")
}

func errContentPrematurelyEmpty(err error) *DecodeError {
	return newError(ErrContentPrematurelyEmpty, "source exhausted before budget: %v", err)
}

func errNoDefinitionMessageFound(localID uint8) *DecodeError {
	e := newError(ErrNoDefinitionMessageFound, "no definition installed for local id %d", localID)
	e.LocalID = localID
	return e
}

func errNoDescriptionFound(devIndex, fieldNum uint8) *DecodeError {
	e := newError(ErrNoDescriptionFound, "no developer field description for (dev_index=%d, field_num=%d)", devIndex, fieldNum)
	e.DevIndex, e.FieldNum = devIndex, fieldNum
	return e
}

func errTimestampMissingForCompressedTimestamp() *DecodeError {
	return newError(ErrTimestampMissingForCompressedTimestamp, "compressed timestamp record before any full timestamp")
}

func errDataNotAligned(size, elementSize int) *DecodeError {
	e := newError(ErrDataNotAligned, "field size %d is not a multiple of element size %d", size, elementSize)
	e.Size, e.ElementSize = size, elementSize
	return e
}

func errScaleByZero() *DecodeError {
	return newError(ErrScaleByZero, "scale is zero")
}
