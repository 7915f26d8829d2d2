package compactbinary

import (
	"errors"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Reader decodes protocol events from an in-memory buffer.
type Reader struct {
	data []byte
	off  int
}

var _ ProtocolReader = (*Reader)(nil)

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) fail(err error) error {
	return fmt.Errorf("%w at offset %d", err, r.off)
}

func (r *Reader) readByte() (uint8, error) {
	if r.off >= len(r.data) {
		return 0, r.fail(ErrTruncated)
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// varint reads an unsigned varint that must fit in bits. Encodings longer
// than the width allows are rejected even when their value would fit.
func (r *Reader) varint(bits int) (uint64, error) {
	v, n := protowire.ConsumeVarint(r.data[r.off:])
	if n < 0 {
		if errors.Is(protowire.ParseError(n), io.ErrUnexpectedEOF) {
			return 0, r.fail(ErrTruncated)
		}
		return 0, r.fail(ErrOverflow)
	}
	if n > (bits+6)/7 || (bits < 64 && v>>bits != 0) {
		return 0, r.fail(ErrOverflow)
	}
	r.off += n
	return v, nil
}

func (r *Reader) fixed(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, r.fail(ErrTruncated)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadStructBegin(isBase bool) error { return nil }

func (r *Reader) ReadStructEnd(isBase bool) error { return nil }

func (r *Reader) ReadFieldBegin() (uint8, uint16, error) {
	raw, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}
	typ := raw & 31
	switch raw >> 5 {
	case 6:
		lo, err := r.readByte()
		if err != nil {
			return 0, 0, err
		}
		return typ, uint16(lo), nil
	case 7:
		lo, err := r.readByte()
		if err != nil {
			return 0, 0, err
		}
		hi, err := r.readByte()
		if err != nil {
			return 0, 0, err
		}
		return typ, uint16(lo) | uint16(hi)<<8, nil
	default:
		return typ, uint16(raw >> 5), nil
	}
}

func (r *Reader) ReadFieldEnd() error { return nil }

func (r *Reader) ReadContainerBegin() (uint32, uint8, error) {
	elem, err := r.containerType()
	if err != nil {
		return 0, 0, err
	}
	size, err := r.containerSize(1)
	if err != nil {
		return 0, 0, err
	}
	return size, elem, nil
}

func (r *Reader) ReadMapContainerBegin() (uint32, uint8, uint8, error) {
	key, err := r.containerType()
	if err != nil {
		return 0, 0, 0, err
	}
	value, err := r.containerType()
	if err != nil {
		return 0, 0, 0, err
	}
	size, err := r.containerSize(2)
	if err != nil {
		return 0, 0, 0, err
	}
	return size, key, value, nil
}

func (r *Reader) containerType() (uint8, error) {
	raw, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if raw>>5 != 0 {
		return 0, r.fail(ErrInvalidContainer)
	}
	return raw, nil
}

// containerSize reads a container length. Every encoded value takes at least
// one byte, so a size needing more than the remaining input is rejected
// before anything is allocated.
func (r *Reader) containerSize(perEntry uint64) (uint32, error) {
	v, err := r.varint(32)
	if err != nil {
		return 0, err
	}
	if v*perEntry > uint64(r.Remaining()) {
		return 0, r.fail(ErrContainerTooLarge)
	}
	return uint32(v), nil
}

func (r *Reader) ReadContainerEnd() error { return nil }

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	r.off--
	return false, r.fail(ErrInvalidBool)
}

func (r *Reader) ReadUInt8() (uint8, error) { return r.readByte() }

func (r *Reader) ReadUInt16() (uint16, error) {
	v, err := r.varint(16)
	return uint16(v), err
}

func (r *Reader) ReadUInt32() (uint32, error) {
	v, err := r.varint(32)
	return uint32(v), err
}

func (r *Reader) ReadUInt64() (uint64, error) {
	return r.varint(64)
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.readByte()
	return int8(b), err
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.varint(16)
	return int16(protowire.DecodeZigZag(v)), err
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.varint(32)
	return int32(protowire.DecodeZigZag(v)), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.varint(64)
	return protowire.DecodeZigZag(v), err
}

func (r *Reader) ReadFloat() (float32, error) {
	v, n := protowire.ConsumeFixed32(r.data[r.off:])
	if n < 0 {
		return 0, r.fail(ErrTruncated)
	}
	r.off += n
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadDouble() (float64, error) {
	v, n := protowire.ConsumeFixed64(r.data[r.off:])
	if n < 0 {
		return 0, r.fail(ErrTruncated)
	}
	r.off += n
	return math.Float64frombits(v), nil
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.varint(32)
	if err != nil {
		return "", err
	}
	if n > uint64(r.Remaining()) {
		return "", r.fail(ErrTruncated)
	}
	b, _ := r.fixed(int(n))
	return string(b), nil
}
