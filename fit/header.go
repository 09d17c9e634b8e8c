package fit

import (
	"encoding/binary"
	"io"
)

const (
	headerSizeNoCRC = 12
	headerSizeCRC   = 14
)

// FileHeader is the 12- or 14-byte preamble of a FIT stream.
type FileHeader struct {
	Size         uint8
	Protocol     uint8
	Profile      uint16
	DataSize     uint32
	HasHeaderCRC bool
	HeaderCRC    uint16
}

// ParseHeader consumes exactly header.Size bytes from src, verifies the
// ".FIT" magic and, when present, the header CRC, and returns the parsed
// header. It leaves src positioned at the first body byte.
func ParseHeader(src io.Reader) (FileHeader, error) {
	var first [1]byte
	if _, err := io.ReadFull(src, first[:]); err != nil {
		return FileHeader{}, errHeaderMalformed(err)
	}
	size := first[0]
	if size != headerSizeNoCRC && size != headerSizeCRC {
		return FileHeader{}, errInvalidHeaderSize(size)
	}

	rest := make([]byte, int(size)-1)
	if _, err := io.ReadFull(src, rest); err != nil {
		return FileHeader{}, errHeaderMalformed(err)
	}

	full := make([]byte, size)
	full[0] = size
	copy(full[1:], rest)

	if string(full[8:12]) != ".FIT" {
		return FileHeader{}, errInvalidHeaderType()
	}

	h := FileHeader{
		Size:     size,
		Protocol: full[1],
		Profile:  binary.LittleEndian.Uint16(full[2:4]),
		DataSize: binary.LittleEndian.Uint32(full[4:8]),
	}

	if size == headerSizeCRC {
		stored := binary.LittleEndian.Uint16(full[12:14])
		computed := Checksum(full[:12])
		h.HasHeaderCRC = true
		h.HeaderCRC = stored
		if stored != computed {
			return FileHeader{}, errInvalidHeaderCRC(computed, stored)
		}
	}

	return h, nil
}
