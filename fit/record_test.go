package fit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconstructTimestampSequence(t *testing.T) {
	base := uint32(0x1111113B)
	offsets := []uint8{0b11011, 0b11101, 0b00010, 0b00101, 0b00001}
	expected := []uint32{0x1111113B, 0x1111113D, 0x11111142, 0x11111145, 0x11111161}

	last := base
	for i, offset := range offsets {
		last = reconstructTimestamp(last, offset)
		require.Equal(t, expected[i], last, "offset index %d", i)
	}
}

func TestDecodeRecordPair_DefinitionThenData(t *testing.T) {
	body := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02, // definition: local0, Record, field heart_rate u8
		0x00, 0x7A, // data: local0, heart_rate=122
	}
	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	msg, err := d.parseRecord(r)
	require.NoError(t, err)
	require.Nil(t, msg, "definition record must not emit a message")

	msg, err = d.parseRecord(r)
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.Equal(t, MesgRecord, msg.GlobalMessage)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, "heart_rate", msg.Fields[0].Identity.Name)
	require.Equal(t, uint64(122), msg.Fields[0].Values[0].Uint)
}

func TestLocalIDRebinding(t *testing.T) {
	defRecord := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02, // local0 = Record{heart_rate}
	}
	dataRecord := []byte{0x00, 0x64} // heart_rate=100

	rebindDef := []byte{
		0x40, 0x00, 0x00, 0x15, 0x00, 0x01, 0x00, 0x01, 0x00, // local0 = Event{event enum}
	}
	rebindData := []byte{0x00, 0x00} // event=0 (Timer)

	body := append(append(append([]byte{}, defRecord...), dataRecord...), append(rebindDef, rebindData...)...)

	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r)
	require.NoError(t, err)
	msg, err := d.parseRecord(r)
	require.NoError(t, err)
	require.Equal(t, MesgRecord, msg.GlobalMessage)

	_, err = d.parseRecord(r)
	require.NoError(t, err)
	msg, err = d.parseRecord(r)
	require.NoError(t, err)
	require.Equal(t, MesgEvent, msg.GlobalMessage)
	require.Equal(t, "event", msg.Fields[0].Identity.Name)
}

func TestNoDefinitionMessageFound(t *testing.T) {
	body := []byte{0x05, 0x00} // data record for unbound local id 5
	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrNoDefinitionMessageFound, decErr.Kind)
	require.Equal(t, uint8(5), decErr.LocalID)
}

func TestDeveloperFieldLifecycle(t *testing.T) {
	fieldDescDef := []byte{
		0x41, 0x00, 0x00, 0xCE, 0x00, 0x04, // local1 = FieldDescription, 4 fields
		0x00, 0x01, 0x02, // developer_data_index u8
		0x01, 0x01, 0x02, // field_definition_number u8
		0x02, 0x01, 0x00, // fit_base_type_id enum
		0x03, 0x08, 0x07, // field_name string[8]
	}
	fieldDescData := append([]byte{0x01, 0x05, 0x0A, 0x02}, []byte("custom\x00\x00")...)

	defWithDevField := []byte{
		0x62, 0x00, 0x00, 0x14, 0x00, 0x00, // local2 = Record, 0 regular fields, dev fields present
		0x01,             // 1 developer field
		0x0A, 0x01, 0x05, // field_num=10, size=1, dev_index=5
	}
	dataWithDevField := []byte{0x02, 0xC8}

	body := append(append(append([]byte{}, fieldDescDef...), fieldDescData...), append(defWithDevField, dataWithDevField...)...)

	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r) // install FieldDescription definition
	require.NoError(t, err)
	_, err = d.parseRecord(r) // decode FieldDescription data, harvest developer description
	require.NoError(t, err)

	_, err = d.parseRecord(r) // install definition referencing the developer field
	require.NoError(t, err)
	msg, err := d.parseRecord(r)
	require.NoError(t, err)
	require.NotNil(t, msg.Fields[0].Identity.Developer)
	require.Equal(t, "custom", msg.Fields[0].Identity.Developer.Name)
	require.Equal(t, uint64(200), msg.Fields[0].Values[0].Uint)
}

func TestDynamicSubfieldEventData(t *testing.T) {
	def := []byte{
		0x43, 0x00, 0x00, 0x15, 0x00, 0x02, // local3 = Event, 2 fields
		0x00, 0x01, 0x00, // event, enum, size1
		0x03, 0x04, 0x86, // data, uint32, size4
	}

	speedHighAlert := []byte{0x03, 0x0F, 0x33, 0x00, 0x00, 0x00}
	tankPressure := []byte{0x03, 0x48, 0x33, 0x00, 0x00, 0x00}

	body := append(append(append([]byte{}, def...), speedHighAlert...), tankPressure...)
	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r)
	require.NoError(t, err)

	msg, err := d.parseRecord(r)
	require.NoError(t, err)
	require.Equal(t, "speed_high_alert_value", msg.Fields[1].Identity.Name)
	require.Equal(t, KindFloat32, msg.Fields[1].Values[0].Kind)
	require.InDelta(t, 0.051, msg.Fields[1].Values[0].Float, 1e-6)

	msg, err = d.parseRecord(r)
	require.NoError(t, err)
	require.Equal(t, "data", msg.Fields[1].Identity.Name)
	require.Equal(t, KindUint32, msg.Fields[1].Values[0].Kind)
	require.Equal(t, uint64(51), msg.Fields[1].Values[0].Uint)
}

func TestCompressedTimestampRecordMissingBase(t *testing.T) {
	def := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02,
	}
	compressed := []byte{0x81, 0x7A} // bit7 set, local=0, offset=1

	body := append(append([]byte{}, def...), compressed...)
	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r)
	require.NoError(t, err)

	_, err = d.parseRecord(r)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrTimestampMissingForCompressedTimestamp, decErr.Kind)
}

func TestCompressedTimestampAfterNormalRecord(t *testing.T) {
	// local0 = Record{timestamp}, carries the full timestamp the base is
	// seeded from.
	tsDef := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0xFD, 0x04, 0x86,
	}
	tsData := []byte{0x3B, 0x11, 0x11, 0x11} // timestamp = 0x1111113B LE

	// local1 = Record{heart_rate}, used by the compressed record below so its
	// body doesn't also have to carry a redundant timestamp field.
	hrDef := []byte{
		0x41, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02,
	}
	compressed := []byte{0xA1, 0x7A} // bit7 set, local=1, offset=1, heart_rate=122

	body := append(append(append([]byte{}, tsDef...), 0x00), tsData...)
	body = append(body, hrDef...)
	body = append(body, compressed...)

	d := NewDecoder()
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r) // install local0 definition
	require.NoError(t, err)

	msg, err := d.parseRecord(r) // decode local0 data, seeding the timestamp base
	require.NoError(t, err)
	require.Equal(t, KindDateTime, msg.Fields[0].Values[0].Kind)
	require.Equal(t, uint64(0x1111113B), msg.Fields[0].Values[0].Uint)

	_, err = d.parseRecord(r) // install local1 definition
	require.NoError(t, err)

	msg, err = d.parseRecord(r) // decode the compressed record driven by the real base above
	require.NoError(t, err)
	require.Equal(t, "timestamp", msg.Fields[0].Identity.Name)
	require.Equal(t, KindDateTime, msg.Fields[0].Values[0].Kind)
	require.Equal(t, uint64(reconstructTimestamp(0x1111113B, 1)), msg.Fields[0].Values[0].Uint)
	require.Equal(t, "heart_rate", msg.Fields[1].Identity.Name)
	require.Equal(t, uint64(122), msg.Fields[1].Values[0].Uint)
}

func TestCompressedTimestampPrependsSyntheticField(t *testing.T) {
	def := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02,
	}
	compressed := []byte{0x81, 0x7A} // bit7 set, local=0, offset=1

	body := append(append([]byte{}, def...), compressed...)
	d := NewDecoder()
	base := uint32(0x1111113B)
	d.timestampBase = &base
	r := NewReader(uint32(len(body)), bytes.NewReader(body))

	_, err := d.parseRecord(r)
	require.NoError(t, err)

	msg, err := d.parseRecord(r)
	require.NoError(t, err)
	require.Equal(t, "timestamp", msg.Fields[0].Identity.Name)
	require.Equal(t, KindDateTime, msg.Fields[0].Values[0].Kind)
}
