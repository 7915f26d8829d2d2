package compactbinary

import "fmt"

// Wire type tags.
const (
	TypeStop     uint8 = 0
	TypeStopBase uint8 = 1
	TypeBool     uint8 = 2
	TypeUInt8    uint8 = 3
	TypeUInt16   uint8 = 4
	TypeUInt32   uint8 = 5
	TypeUInt64   uint8 = 6
	TypeFloat    uint8 = 7
	TypeDouble   uint8 = 8
	TypeString   uint8 = 9
	TypeStruct   uint8 = 10
	TypeList     uint8 = 11
	TypeSet      uint8 = 12
	TypeMap      uint8 = 13
	TypeInt8     uint8 = 14
	TypeInt16    uint8 = 15
	TypeInt32    uint8 = 16
	TypeInt64    uint8 = 17
	TypeWString  uint8 = 18
)

var typeNames = map[uint8]string{
	TypeStop:     "stop",
	TypeStopBase: "stop_base",
	TypeBool:     "bool",
	TypeUInt8:    "uint8",
	TypeUInt16:   "uint16",
	TypeUInt32:   "uint32",
	TypeUInt64:   "uint64",
	TypeFloat:    "float",
	TypeDouble:   "double",
	TypeString:   "string",
	TypeStruct:   "struct",
	TypeList:     "list",
	TypeSet:      "set",
	TypeMap:      "map",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeWString:  "wstring",
}

// TypeName returns a readable name for a wire type tag.
func TypeName(t uint8) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown:%d", t)
}

// ProtocolWriter is the event sink generated serializers write to.
type ProtocolWriter interface {
	WriteStructBegin(isBase bool)
	WriteStructEnd(isBase bool)
	WriteFieldBegin(typ uint8, id uint16)
	WriteFieldEnd()
	WriteFieldOmitted(typ uint8, id uint16)
	WriteContainerBegin(size int, elemType uint8)
	WriteMapContainerBegin(size int, keyType, valueType uint8)
	WriteContainerEnd()

	WriteBool(v bool)
	WriteUInt8(v uint8)
	WriteUInt16(v uint16)
	WriteUInt32(v uint32)
	WriteUInt64(v uint64)
	WriteInt8(v int8)
	WriteInt16(v int16)
	WriteInt32(v int32)
	WriteInt64(v int64)
	WriteFloat(v float32)
	WriteDouble(v float64)
	WriteString(v string)
}

// ProtocolReader is the event source generated deserializers read from.
// Every method reports malformed or truncated input as an error.
type ProtocolReader interface {
	ReadStructBegin(isBase bool) error
	ReadStructEnd(isBase bool) error
	ReadFieldBegin() (typ uint8, id uint16, err error)
	ReadFieldEnd() error
	ReadContainerBegin() (size uint32, elemType uint8, err error)
	ReadMapContainerBegin() (size uint32, keyType, valueType uint8, err error)
	ReadContainerEnd() error

	ReadBool() (bool, error)
	ReadUInt8() (uint8, error)
	ReadUInt16() (uint16, error)
	ReadUInt32() (uint32, error)
	ReadUInt64() (uint64, error)
	ReadInt8() (int8, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	ReadString() (string, error)
}

// ReadEnum reads an enum value. Enums travel as BT_INT32.
func ReadEnum[E ~int32](r ProtocolReader) (E, error) {
	v, err := r.ReadInt32()
	return E(v), err
}
