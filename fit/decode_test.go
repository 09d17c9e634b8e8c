package fit

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildStream(t *testing.T, body []byte) []byte {
	t.Helper()
	header := []byte{
		0x0C, 0x00, 0x0D, 0x00, 0x00, 0x00, 0x00, 0x00,
		'.', 'F', 'I', 'T',
	}
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(body)))

	crc := Checksum(body)
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)

	stream := append([]byte{}, header...)
	stream = append(stream, body...)
	stream = append(stream, crcBytes...)
	return stream
}

func TestDecodeEndToEndSingleHeartRateRecord(t *testing.T) {
	body := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02, // local0 = Record{heart_rate}
		0x00, 0x7A, // heart_rate = 122
	}
	stream := buildStream(t, body)

	f, err := Decode(bytes.NewReader(stream))
	require.NoError(t, err)
	require.Equal(t, uint32(len(body)), f.Header.DataSize)
	require.Len(t, f.Messages, 1)
	require.Equal(t, MesgRecord, f.Messages[0].GlobalMessage)
	require.Equal(t, "heart_rate", f.Messages[0].Fields[0].Identity.Name)
	require.Equal(t, uint64(122), f.Messages[0].Fields[0].Values[0].Uint)
}

func TestDecodeRejectsBodyCRCMismatch(t *testing.T) {
	body := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02,
		0x00, 0x7A,
	}
	stream := buildStream(t, body)
	// corrupt the trailing CRC.
	stream[len(stream)-1] ^= 0xFF
	stream[len(stream)-2] ^= 0xFF

	_, err := Decode(bytes.NewReader(stream))
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrInvalidBodyCRC, decErr.Kind)
	require.NotEqual(t, decErr.Expected, decErr.Actual)
}

func TestDecodeRejectsDataForUnboundLocalID(t *testing.T) {
	body := []byte{0x05, 0x00}
	stream := buildStream(t, body)

	_, err := Decode(bytes.NewReader(stream))
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrNoDefinitionMessageFound, decErr.Kind)
}

func TestDecodeBudgetConservation(t *testing.T) {
	body := []byte{
		0x40, 0x00, 0x00, 0x14, 0x00, 0x01, 0x03, 0x01, 0x02,
		0x00, 0x01,
		0x00, 0x02,
		0x00, 0x03,
	}
	stream := buildStream(t, body)
	src := bytes.NewReader(stream)

	f, err := Decode(src)
	require.NoError(t, err)
	require.Len(t, f.Messages, 3)
	// header(12) + body + trailing crc(2) must equal the whole stream, and
	// the decoder must have consumed all of it.
	require.Equal(t, len(stream), 12+len(body)+2)
	require.Zero(t, src.Len())
}
