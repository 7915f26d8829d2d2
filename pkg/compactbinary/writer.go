package compactbinary

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Writer encodes protocol events into an in-memory buffer.
type Writer struct {
	buf []byte
}

var _ ProtocolWriter = (*Writer)(nil)

// NewWriter returns a Writer appending to buf, which may be nil.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Bytes returns the encoded output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset discards the output and keeps the buffer's capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

func (w *Writer) WriteStructBegin(isBase bool) {}

func (w *Writer) WriteStructEnd(isBase bool) {
	if isBase {
		w.buf = append(w.buf, TypeStopBase)
	} else {
		w.buf = append(w.buf, TypeStop)
	}
}

func (w *Writer) WriteFieldBegin(typ uint8, id uint16) {
	switch {
	case id <= 5:
		w.buf = append(w.buf, typ|uint8(id)<<5)
	case id <= 0xff:
		w.buf = append(w.buf, typ|6<<5, uint8(id))
	default:
		w.buf = append(w.buf, typ|7<<5, uint8(id), uint8(id>>8))
	}
}

func (w *Writer) WriteFieldEnd() {}

// WriteFieldOmitted produces no bytes; omission is implied by absence.
func (w *Writer) WriteFieldOmitted(typ uint8, id uint16) {}

func (w *Writer) WriteContainerBegin(size int, elemType uint8) {
	w.buf = append(w.buf, elemType)
	w.WriteUInt32(uint32(size))
}

func (w *Writer) WriteMapContainerBegin(size int, keyType, valueType uint8) {
	w.buf = append(w.buf, keyType, valueType)
	w.WriteUInt32(uint32(size))
}

func (w *Writer) WriteContainerEnd() {}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteUInt8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) WriteUInt16(v uint16) { w.buf = protowire.AppendVarint(w.buf, uint64(v)) }

func (w *Writer) WriteUInt32(v uint32) { w.buf = protowire.AppendVarint(w.buf, uint64(v)) }

func (w *Writer) WriteUInt64(v uint64) { w.buf = protowire.AppendVarint(w.buf, v) }

func (w *Writer) WriteInt8(v int8) { w.buf = append(w.buf, uint8(v)) }

func (w *Writer) WriteInt16(v int16) { w.WriteUInt64(protowire.EncodeZigZag(int64(v))) }

func (w *Writer) WriteInt32(v int32) { w.WriteUInt64(protowire.EncodeZigZag(int64(v))) }

func (w *Writer) WriteInt64(v int64) { w.WriteUInt64(protowire.EncodeZigZag(v)) }

func (w *Writer) WriteFloat(v float32) {
	w.buf = protowire.AppendFixed32(w.buf, math.Float32bits(v))
}

func (w *Writer) WriteDouble(v float64) {
	w.buf = protowire.AppendFixed64(w.buf, math.Float64bits(v))
}

func (w *Writer) WriteString(v string) {
	w.WriteUInt32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}
