package fit

import (
	"encoding/binary"
	"io"
)

// Reader is a bounded, CRC-accumulating cursor over an io.Reader. It tracks
// an exact remaining-byte budget and never reads past it; every byte it
// successfully consumes updates a running FIT CRC-16.
type Reader struct {
	budget uint32
	src    io.Reader
	crc    crcAccumulator
	scratch [8]byte
}

// NewReader constructs a Reader that will consume at most budget bytes from
// src.
func NewReader(budget uint32, src io.Reader) *Reader {
	return &Reader{budget: budget, src: src}
}

// IsEmpty reports whether the byte budget has been fully consumed.
func (r *Reader) IsEmpty() bool {
	return r.budget == 0
}

// CurrentCRC snapshots the running CRC-16 over every byte read so far.
func (r *Reader) CurrentCRC() uint16 {
	return r.crc.value
}

// NextU8 returns the next byte, or ErrContentExhausted if the budget is
// spent, or ErrContentPrematurelyEmpty if the underlying source ends first.
func (r *Reader) NextU8() (byte, error) {
	if r.budget == 0 {
		return 0, errContentExhausted()
	}
	if _, err := io.ReadFull(r.src, r.scratch[:1]); err != nil {
		return 0, errContentPrematurelyEmpty(err)
	}
	r.budget--
	b := r.scratch[0]
	r.crc.update(b)
	return b, nil
}

// NextBytes returns the next n bytes in order.
func (r *Reader) NextBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.NextU8()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// NextU16 composes two bytes under the given byte order.
func (r *Reader) NextU16(order binary.ByteOrder) (uint16, error) {
	b, err := r.NextBytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// NextU32 composes four bytes under the given byte order.
func (r *Reader) NextU32(order binary.ByteOrder) (uint32, error) {
	b, err := r.NextBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// NextU64 composes eight bytes under the given byte order.
func (r *Reader) NextU64(order binary.ByteOrder) (uint64, error) {
	b, err := r.NextBytes(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}
