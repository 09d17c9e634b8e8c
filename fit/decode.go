package fit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// File is the fully decoded result of one FIT stream: its header and the
// ordered sequence of data messages the record engine produced.
type File struct {
	Header          FileHeader
	Messages        []DataMessage
	DefinitionCount int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger overrides the decoder's debug-trace logger. The default is
// silent, so library consumers pay nothing unless they opt in.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Decoder) { d.log = log }
}

func silentLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Decode parses one FIT stream: the header, the record body, and the
// trailing body CRC. It returns on the first error; there is no partial
// result.
func Decode(r io.Reader, opts ...Option) (*File, error) {
	header, err := ParseHeader(r)
	if err != nil {
		return nil, fmt.Errorf("parse fit header: %w", err)
	}

	d := NewDecoder(opts...)
	reader := NewReader(header.DataSize, r)

	var (
		messages []DataMessage
		defCount int
	)
	for !reader.IsEmpty() {
		msg, err := d.parseRecord(reader)
		if err != nil {
			return nil, fmt.Errorf("parse fit record: %w", err)
		}
		if msg != nil {
			messages = append(messages, *msg)
		} else {
			defCount++
		}
	}

	expected := reader.CurrentCRC()
	crcReader := NewReader(2, r)
	actual, err := crcReader.NextU16(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("read trailing crc: %w", err)
	}
	if actual != expected {
		return nil, errInvalidBodyCRC(expected, actual)
	}

	return &File{Header: header, Messages: messages, DefinitionCount: defCount}, nil
}
