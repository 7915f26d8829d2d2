package compactbinary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() []byte {
	w := NewWriter(nil)
	w.WriteStructBegin(false)
	w.WriteFieldBegin(TypeString, 1)
	w.WriteString("hi")
	w.WriteFieldBegin(TypeList, 2)
	w.WriteContainerBegin(2, TypeInt32)
	w.WriteInt32(1)
	w.WriteInt32(-1)
	w.WriteContainerEnd()
	w.WriteFieldBegin(TypeMap, 3)
	w.WriteMapContainerBegin(1, TypeString, TypeDouble)
	w.WriteString("a")
	w.WriteDouble(1.5)
	w.WriteContainerEnd()
	w.WriteFieldBegin(TypeStruct, 40)
	w.WriteFieldBegin(TypeBool, 1)
	w.WriteBool(true)
	w.WriteStructEnd(false)
	w.WriteStructEnd(false)
	return w.Bytes()
}

func TestDump(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Dump(&out, samplePayload()))

	want := `(struct) {
  <1> = (string) "hi"
  <2> = (list) [
    (int32) 1
    (int32) -1
  ]
  <3> = (map) {
    (string) "a" = (double) 1.5
  }
  <40> = (struct) {
    <1> = (bool) true
  }
}
`
	assert.Equal(t, want, out.String())
}

func TestDumpEmptyStruct(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Dump(&out, []byte{TypeStop}))
	assert.Equal(t, "(struct) {\n}\n", out.String())
}

func TestDumpSet(t *testing.T) {
	w := NewWriter(nil)
	w.WriteFieldBegin(TypeSet, 1)
	w.WriteContainerBegin(1, TypeUInt8)
	w.WriteUInt8(9)
	w.WriteStructEnd(false)

	var out strings.Builder
	require.NoError(t, Dump(&out, w.Bytes()))
	assert.Contains(t, out.String(), "<1> = (set) <\n    (uint8) 9\n  >\n")
}

func TestDumpErrors(t *testing.T) {
	t.Run("truncated keeps partial output", func(t *testing.T) {
		data := samplePayload()
		var out strings.Builder
		err := Dump(&out, data[:len(data)-6])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncated)
		assert.True(t, strings.HasPrefix(out.String(), "(struct) {\n  <1> = (string) \"hi\"\n"))
	})

	t.Run("trailing bytes", func(t *testing.T) {
		var out strings.Builder
		err := Dump(&out, []byte{TypeStop, 0x42})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 trailing bytes")
	})

	t.Run("unknown wire type", func(t *testing.T) {
		var out strings.Builder
		err := Dump(&out, []byte{0x20 | TypeWString, 0})
		require.Error(t, err)
		assert.Contains(t, out.String(), "<1> = (wstring)")
	})

	t.Run("base stop in top-level struct", func(t *testing.T) {
		var out strings.Builder
		err := Dump(&out, []byte{TypeStopBase})
		assert.ErrorIs(t, err, ErrMismatch)
	})
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	rec.WriteStructBegin(false)
	rec.WriteFieldBegin(TypeInt32, 1)
	rec.WriteInt32(5)
	rec.WriteFieldEnd()
	rec.WriteFieldOmitted(TypeString, 2)
	rec.WriteFieldBegin(TypeMap, 3)
	rec.WriteMapContainerBegin(1, TypeString, TypeFloat)
	rec.WriteString("k")
	rec.WriteFloat(0.5)
	rec.WriteContainerEnd()
	rec.WriteFieldEnd()
	rec.WriteStructEnd(false)

	assert.Equal(t, []string{
		"StructBegin(false)",
		"FieldBegin(16,1)",
		"Int32(5)",
		"FieldEnd",
		"FieldOmitted(9,2)",
		"FieldBegin(13,3)",
		"MapContainerBegin(1,9,7)",
		`String("k")`,
		"Float(0.5)",
		"ContainerEnd",
		"FieldEnd",
		"StructEnd(false)",
	}, rec.Events)
	assert.Equal(t, 2, rec.Count("FieldEnd"))
	assert.Zero(t, rec.Count("FieldOmitted(16,1)"))
}
