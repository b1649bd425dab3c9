// Package wire implements the fixed-layout octet encoding shared with the
// other room implementations. All multi-byte integers are big-endian
// (network order); the exact byte layout is a compatibility contract.
package wire

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned when a read runs past the end of the buffer.
var ErrShortBuffer = errors.New("wire: read past end of buffer")

// OctetReader is a bounded positional reader over one datagram. Every read
// either consumes exactly the requested width or fails with ErrShortBuffer
// without advancing.
type OctetReader struct {
	buf []byte
	pos int
}

// NewOctetReader wraps buf. The reader does not copy; callers must not mutate
// buf while reading.
func NewOctetReader(buf []byte) *OctetReader {
	return &OctetReader{buf: buf}
}

// Remaining returns the number of unread octets.
func (r *OctetReader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *OctetReader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 consumes one octet.
func (r *OctetReader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 consumes two octets, network order.
func (r *OctetReader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint64 consumes eight octets, network order.
func (r *OctetReader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
