package compactbinary

import (
	"fmt"
	"strconv"
)

// Recorder is a ProtocolWriter that logs every event as a string, e.g.
// "FieldBegin(16,1)" or "Int32(5)". Tests use it to check which fields a
// serializer writes or omits without decoding bytes.
type Recorder struct {
	Events []string
}

var _ ProtocolWriter = (*Recorder)(nil)

func (r *Recorder) add(format string, args ...any) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

func (r *Recorder) WriteStructBegin(isBase bool) { r.add("StructBegin(%t)", isBase) }
func (r *Recorder) WriteStructEnd(isBase bool)   { r.add("StructEnd(%t)", isBase) }

func (r *Recorder) WriteFieldBegin(typ uint8, id uint16)   { r.add("FieldBegin(%d,%d)", typ, id) }
func (r *Recorder) WriteFieldEnd()                         { r.add("FieldEnd") }
func (r *Recorder) WriteFieldOmitted(typ uint8, id uint16) { r.add("FieldOmitted(%d,%d)", typ, id) }

func (r *Recorder) WriteContainerBegin(size int, elemType uint8) {
	r.add("ContainerBegin(%d,%d)", size, elemType)
}

func (r *Recorder) WriteMapContainerBegin(size int, keyType, valueType uint8) {
	r.add("MapContainerBegin(%d,%d,%d)", size, keyType, valueType)
}

func (r *Recorder) WriteContainerEnd() { r.add("ContainerEnd") }

func (r *Recorder) WriteBool(v bool)     { r.add("Bool(%t)", v) }
func (r *Recorder) WriteUInt8(v uint8)   { r.add("UInt8(%d)", v) }
func (r *Recorder) WriteUInt16(v uint16) { r.add("UInt16(%d)", v) }
func (r *Recorder) WriteUInt32(v uint32) { r.add("UInt32(%d)", v) }
func (r *Recorder) WriteUInt64(v uint64) { r.add("UInt64(%d)", v) }
func (r *Recorder) WriteInt8(v int8)     { r.add("Int8(%d)", v) }
func (r *Recorder) WriteInt16(v int16)   { r.add("Int16(%d)", v) }
func (r *Recorder) WriteInt32(v int32)   { r.add("Int32(%d)", v) }
func (r *Recorder) WriteInt64(v int64)   { r.add("Int64(%d)", v) }
func (r *Recorder) WriteString(v string) { r.add("String(%q)", v) }

func (r *Recorder) WriteFloat(v float32) {
	r.add("Float(%s)", strconv.FormatFloat(float64(v), 'g', -1, 32))
}

func (r *Recorder) WriteDouble(v float64) {
	r.add("Double(%s)", strconv.FormatFloat(v, 'g', -1, 64))
}

// Count returns how many recorded events equal event.
func (r *Recorder) Count(event string) int {
	n := 0
	for _, e := range r.Events {
		if e == event {
			n++
		}
	}
	return n
}
