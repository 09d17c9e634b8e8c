package fit

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

const (
	compressedHeaderMask = 0x80
	definitionMask       = 0x40
	devDataPresentMask   = 0x20
	localIDMask          = 0x0F

	compressedLocalIDMask = 0x60
	compressedOffsetMask  = 0x1F
)

// DataMessage is one decoded record: its global message kind, the local id
// it was addressed by at decode time, and its ordered field list.
type DataMessage struct {
	LocalID       uint8
	GlobalMessage GlobalMessageKind
	Fields        []DataMessageField
}

// DataMessageField is one field of a decoded message: its resolved identity
// and the non-empty list of values it carried.
type DataMessageField struct {
	Identity FieldIdentity
	Values   []TypedValue
}

// LastTimestamp returns the maximum DateTime value carried by any field of
// the message, used by the record engine to advance the compressed
// timestamp base (spec.md §4.4.4).
func (m DataMessage) LastTimestamp() (uint32, bool) {
	var (
		max   uint32
		found bool
	)
	for _, f := range m.Fields {
		for _, v := range f.Values {
			if v.Kind != KindDateTime || v.Invalid {
				continue
			}
			ts := uint32(v.Uint)
			if !found || ts > max {
				max = ts
				found = true
			}
		}
	}
	return max, found
}

// Decoder holds the mutable state of a single decode invocation: the
// local-id schema table, the developer-field schema table, and the
// compressed-timestamp base. None of this is shared across invocations.
type Decoder struct {
	definitions     map[uint8]*Definition
	devDescriptions map[uint8]map[uint8]DeveloperFieldDescription
	timestampBase   *uint32
	log             logrus.FieldLogger
}

// NewDecoder constructs a Decoder ready to decode one FIT stream.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		definitions:     make(map[uint8]*Definition),
		devDescriptions: make(map[uint8]map[uint8]DeveloperFieldDescription),
		log:             silentLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) parseRecord(r *Reader) (*DataMessage, error) {
	headerByte, err := r.NextU8()
	if err != nil {
		return nil, err
	}

	switch {
	case headerByte&compressedHeaderMask != 0:
		localID := (headerByte & compressedLocalIDMask) >> 5
		offset := headerByte & compressedOffsetMask
		return d.parseCompressedRecord(r, localID, offset)
	case headerByte&definitionMask != 0:
		devFieldsPresent := headerByte&devDataPresentMask != 0
		localID := headerByte & localIDMask
		if err := d.parseDefinitionRecord(r, localID, devFieldsPresent); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		localID := headerByte & localIDMask
		def, ok := d.definitions[localID]
		if !ok {
			return nil, errNoDefinitionMessageFound(localID)
		}
		return d.parseDataRecord(r, def, nil)
	}
}

func (d *Decoder) parseDefinitionRecord(r *Reader, localID uint8, devFieldsPresent bool) error {
	if _, err := r.NextU8(); err != nil { // reserved
		return err
	}
	archByte, err := r.NextU8()
	if err != nil {
		return err
	}
	order := endiannessOf(archByte)

	globalNum, err := r.NextU16(order)
	if err != nil {
		return err
	}
	kind := GlobalMessageKind(globalNum)

	fieldCount, err := r.NextU8()
	if err != nil {
		return err
	}

	fields := make([]DefinitionField, 0, int(fieldCount))
	for i := 0; i < int(fieldCount); i++ {
		fieldNum, err := r.NextU8()
		if err != nil {
			return err
		}
		size, err := r.NextU8()
		if err != nil {
			return err
		}
		baseRaw, err := r.NextU8()
		if err != nil {
			return err
		}

		desc, found := lookupField(kind, fieldNum)
		if !found {
			desc = unknownFieldDefault
		}
		base := desc.base
		if err := validateFieldSize(base, size); err != nil {
			return err
		}

		fields = append(fields, DefinitionField{
			Identity:       FieldIdentity{Number: fieldNum, Name: desc.name},
			FieldNumber:    fieldNum,
			SizeBytes:      size,
			Base:           base,
			Enum:           desc.enum,
			Endianness:     order,
			Scale:          desc.scale,
			Offset:         desc.offset,
			HasScaleOffset: desc.hasScaleOffset,
			Dynamic:        desc.dynamic,
			DateTime:       desc.dateTime,
		})
		_ = baseRaw // the catalog-declared base takes precedence over the wire byte
	}

	if devFieldsPresent {
		devCount, err := r.NextU8()
		if err != nil {
			return err
		}
		for i := 0; i < int(devCount); i++ {
			fieldNum, err := r.NextU8()
			if err != nil {
				return err
			}
			size, err := r.NextU8()
			if err != nil {
				return err
			}
			devIdx, err := r.NextU8()
			if err != nil {
				return err
			}
			byField, ok := d.devDescriptions[devIdx]
			if !ok {
				return errNoDescriptionFound(devIdx, fieldNum)
			}
			desc, ok := byField[fieldNum]
			if !ok {
				return errNoDescriptionFound(devIdx, fieldNum)
			}
			if err := validateFieldSize(desc.BaseType, size); err != nil {
				return err
			}
			descCopy := desc
			fields = append(fields, DefinitionField{
				Identity:    FieldIdentity{Number: fieldNum, Developer: &descCopy},
				FieldNumber: fieldNum,
				SizeBytes:   size,
				Base:        desc.BaseType,
				Endianness:  order,
			})
		}
	}

	d.definitions[localID] = &Definition{
		GlobalMessage: kind,
		LocalID:       localID,
		Endianness:    order,
		Fields:        fields,
	}
	d.log.WithFields(logrus.Fields{"local_id": localID, "global_message": kind.String(), "fields": len(fields)}).Debug("installed definition")
	return nil
}

func (d *Decoder) parseDataRecord(r *Reader, def *Definition, syntheticTimestamp *uint32) (*DataMessage, error) {
	msg := &DataMessage{LocalID: def.LocalID, GlobalMessage: def.GlobalMessage}

	if syntheticTimestamp != nil {
		msg.Fields = append(msg.Fields, DataMessageField{
			Identity: FieldIdentity{Number: 253, Name: "timestamp"},
			Values:   []TypedValue{{Kind: KindDateTime, Uint: uint64(*syntheticTimestamp)}},
		})
	}

	for _, fd := range def.Fields {
		effective := fieldDescriptor{
			name: fd.Identity.Name, base: fd.Base, enum: fd.Enum, scale: fd.Scale, offset: fd.Offset,
			hasScaleOffset: fd.HasScaleOffset, dynamic: fd.Dynamic, dateTime: fd.DateTime,
		}
		if fd.Dynamic {
			effective = resolveDynamicField(def.GlobalMessage, fd.FieldNumber, msg.Fields, effective)
		}

		raw, err := r.NextBytes(int(fd.SizeBytes))
		if err != nil {
			return nil, err
		}

		values, err := decodeValues(effective.base, fd.Endianness, raw)
		if err != nil {
			return nil, err
		}

		if effective.enum != nil {
			for i, v := range values {
				switch v.Kind {
				case KindEnum:
					values[i].Enum = resolveEnum(effective.enum, v.Enum.Raw)
				case KindUint8, KindUint16, KindUint32:
					values[i] = TypedValue{Kind: KindEnum, Enum: resolveEnum(effective.enum, uint32(v.Uint)), Invalid: v.Invalid}
				}
			}
		}

		if effective.dateTime {
			for i, v := range values {
				values[i] = TypedValue{Kind: KindDateTime, Uint: v.Uint}
			}
		}

		if effective.hasScaleOffset {
			for i, v := range values {
				scaled, err := ApplyScaleOffset(v, effective.scale, effective.offset)
				if err != nil {
					return nil, err
				}
				values[i] = scaled
			}
		}

		identity := fd.Identity
		if fd.Dynamic {
			identity = FieldIdentity{Number: fd.FieldNumber, Name: effective.name}
		}
		msg.Fields = append(msg.Fields, DataMessageField{Identity: identity, Values: values})
	}

	if ts, ok := msg.LastTimestamp(); ok {
		if d.timestampBase == nil || ts > *d.timestampBase {
			base := ts
			d.timestampBase = &base
		}
	}

	if def.GlobalMessage == MesgFieldDescription {
		if desc, ok := harvestDeveloperDescription(*msg); ok {
			if d.devDescriptions[desc.DeveloperIndex] == nil {
				d.devDescriptions[desc.DeveloperIndex] = make(map[uint8]DeveloperFieldDescription)
			}
			d.devDescriptions[desc.DeveloperIndex][desc.FieldNumber] = desc
		}
	}

	return msg, nil
}

// reconstructTimestamp implements spec.md §4.4.3's compressed-timestamp
// recovery: the 5 offset bits replace the low bits of the rolling base,
// with a +0x20 rollover correction when the offset has wrapped past the
// base's own low bits.
func reconstructTimestamp(last uint32, offset uint8) uint32 {
	next := (last & 0xFFFFFFE0) | uint32(offset)
	if uint32(offset) < (last & 0x1F) {
		next += 0x20
	}
	return next
}

func (d *Decoder) parseCompressedRecord(r *Reader, localID, offset uint8) (*DataMessage, error) {
	if d.timestampBase == nil {
		return nil, errTimestampMissingForCompressedTimestamp()
	}
	next := reconstructTimestamp(*d.timestampBase, offset)
	d.timestampBase = &next

	def, ok := d.definitions[localID]
	if !ok {
		return nil, errNoDefinitionMessageFound(localID)
	}
	ts := next
	return d.parseDataRecord(r, def, &ts)
}

func endiannessOf(archByte uint8) binary.ByteOrder {
	if archByte == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
