package wire

import (
	"errors"
	"testing"
)

func TestOctetReader_ReadSequence(t *testing.T) {
	r := NewOctetReader([]byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03})

	if got := r.Remaining(); got != 11 {
		t.Fatalf("Remaining = %d, want 11", got)
	}

	u8, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if u8 != 0x01 {
		t.Errorf("ReadUint8 = 0x%02X, want 0x01", u8)
	}

	u16, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if u16 != 0x0002 {
		t.Errorf("ReadUint16 = 0x%04X, want 0x0002", u16)
	}

	u64, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64 failed: %v", err)
	}
	if u64 != 0x0000000000000003 {
		t.Errorf("ReadUint64 = %d, want 3", u64)
	}

	if got := r.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestOctetReader_ShortBuffer(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		read func(r *OctetReader) error
	}{
		{"uint8 from empty", nil, func(r *OctetReader) error { _, err := r.ReadUint8(); return err }},
		{"uint16 from one octet", []byte{0x01}, func(r *OctetReader) error { _, err := r.ReadUint16(); return err }},
		{"uint64 from seven octets", make([]byte, 7), func(r *OctetReader) error { _, err := r.ReadUint64(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewOctetReader(tt.buf)
			remaining := r.Remaining()
			if err := tt.read(r); !errors.Is(err, ErrShortBuffer) {
				t.Errorf("err = %v, want ErrShortBuffer", err)
			}
			// A failed read must not advance.
			if r.Remaining() != remaining {
				t.Errorf("Remaining = %d, want %d", r.Remaining(), remaining)
			}
		})
	}
}
