package compactbinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  []byte
	}{
		{"bool true", func(w *Writer) { w.WriteBool(true) }, []byte{1}},
		{"bool false", func(w *Writer) { w.WriteBool(false) }, []byte{0}},
		{"uint8", func(w *Writer) { w.WriteUInt8(200) }, []byte{200}},
		{"uint16 varint", func(w *Writer) { w.WriteUInt16(300) }, []byte{0xAC, 0x02}},
		{"uint32 small", func(w *Writer) { w.WriteUInt32(127) }, []byte{0x7F}},
		{"uint64 max", func(w *Writer) { w.WriteUInt64(^uint64(0)) }, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
		{"int8 raw", func(w *Writer) { w.WriteInt8(-2) }, []byte{0xFE}},
		{"int16 zigzag", func(w *Writer) { w.WriteInt16(-1) }, []byte{0x01}},
		{"int32 zigzag positive", func(w *Writer) { w.WriteInt32(5) }, []byte{0x0A}},
		{"int32 zigzag negative", func(w *Writer) { w.WriteInt32(-3) }, []byte{0x05}},
		{"int64 zigzag", func(w *Writer) { w.WriteInt64(64) }, []byte{0x80, 0x01}},
		{"float", func(w *Writer) { w.WriteFloat(1.5) }, []byte{0x00, 0x00, 0xC0, 0x3F}},
		{"double", func(w *Writer) { w.WriteDouble(1.5) }, []byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F}},
		{"string", func(w *Writer) { w.WriteString("abc") }, []byte{3, 'a', 'b', 'c'}},
		{"empty string", func(w *Writer) { w.WriteString("") }, []byte{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(nil)
			tt.write(w)
			assert.Equal(t, tt.want, w.Bytes())
		})
	}
}

func TestWriterFieldHeaders(t *testing.T) {
	tests := []struct {
		id   uint16
		want []byte
	}{
		{0, []byte{0x10}},
		{1, []byte{0x30}},
		{5, []byte{0xB0}},
		{6, []byte{0xD0, 0x06}},
		{255, []byte{0xD0, 0xFF}},
		{256, []byte{0xF0, 0x00, 0x01}},
		{300, []byte{0xF0, 0x2C, 0x01}},
	}
	for _, tt := range tests {
		w := NewWriter(nil)
		w.WriteFieldBegin(TypeInt32, tt.id)
		assert.Equal(t, tt.want, w.Bytes(), "id %d", tt.id)
	}
}

func TestWriterFraming(t *testing.T) {
	w := NewWriter(nil)
	w.WriteStructBegin(false)
	w.WriteFieldBegin(TypeInt32, 1)
	w.WriteInt32(5)
	w.WriteFieldEnd()
	w.WriteFieldOmitted(TypeInt32, 2)
	w.WriteStructEnd(false)
	assert.Equal(t, []byte{0x30, 0x0A, 0x00}, w.Bytes())

	w.Reset()
	w.WriteStructEnd(true)
	assert.Equal(t, []byte{0x01}, w.Bytes())

	w.Reset()
	w.WriteContainerBegin(3, TypeInt32)
	w.WriteMapContainerBegin(2, TypeString, TypeDouble)
	w.WriteContainerEnd()
	assert.Equal(t, []byte{16, 3, 9, 8, 2}, w.Bytes())
}
