package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtures = "../../testdata/schemas"

func TestLoadShapes(t *testing.T) {
	s, err := Load(filepath.Join(fixtures, "shapes.json"))
	require.NoError(t, err)

	require.Len(t, s.Declarations, 3)
	assert.Len(t, s.Digest, 64)
	assert.Len(t, s.Structs(), 2)
	assert.Len(t, s.Enums(), 1)

	shape, ok := s.Declarations[0].(*Struct)
	require.True(t, ok)
	assert.Equal(t, "Shape", shape.Name)
	assert.Equal(t, []string{"test", "shapes"}, shape.Namespace)
	assert.Equal(t, "test.shapes.Shape", shape.QualifiedName())
	require.Len(t, shape.Fields, 9)

	name := shape.Fields[0]
	assert.Equal(t, uint16(1), name.Ordinal)
	assert.Equal(t, Required, name.Modifier)
	assert.Equal(t, Primitive{Kind: String}, name.Type)
	assert.Nil(t, name.Default)

	color := shape.Fields[1]
	en, ok := AsEnum(color.Type)
	require.True(t, ok)
	assert.Same(t, s.Declarations[1], Declaration(en), "user types share the top-level declaration")
	require.NotNil(t, color.Default)
	assert.Equal(t, Default{Kind: DefaultEnum, Text: "Green"}, *color.Default)

	origin, ok := AsStruct(shape.Fields[2].Type)
	require.True(t, ok)
	assert.Same(t, s.Declarations[2], Declaration(origin))

	assert.Equal(t, "vector<Point>", shape.Fields[3].Type.String())
	assert.Equal(t, "map<string, double>", shape.Fields[4].Type.String())
	assert.Equal(t, "map<uint16, Point>", shape.Fields[8].Type.String())

	scale := shape.Fields[7]
	require.NotNil(t, scale.Default)
	assert.Equal(t, Default{Kind: DefaultFloat, Text: "1.5"}, *scale.Default)
}

func TestLoadEnumImplicitValues(t *testing.T) {
	s, err := Load(filepath.Join(fixtures, "shapes.json"))
	require.NoError(t, err)

	color := s.Enums()[0]
	assert.Equal(t, []Constant{{"Red", 0}, {"Green", 1}, {"Blue", 5}}, color.Constants)

	nested, err := Load(filepath.Join(fixtures, "nested.json"))
	require.NoError(t, err)
	var level *Enum
	for _, en := range nested.Enums() {
		if en.Name == "Level" {
			level = en
		}
	}
	require.NotNil(t, level)
	assert.Equal(t, []Constant{{"Low", -1}, {"Medium", 0}, {"VeryHigh", 10}}, level.Constants)
}

func TestLoadNestedDefaults(t *testing.T) {
	s, err := Load(filepath.Join(fixtures, "nested.json"))
	require.NoError(t, err)

	var node, leaf *Struct
	for _, st := range s.Structs() {
		switch st.Name {
		case "Node":
			node = st
		case "Leaf":
			leaf = st
		}
	}
	require.NotNil(t, node)
	require.NotNil(t, leaf)

	weight, ok := leaf.Field(2)
	require.True(t, ok)
	assert.Equal(t, "2.0", weight.Default.Text, "integral float defaults keep a decimal point")

	count, _ := node.Field(5)
	assert.Equal(t, Default{Kind: DefaultInteger, Text: "7"}, *count.Default)
	delta, _ := node.Field(6)
	assert.Equal(t, "-3", delta.Default.Text)
	enabled, _ := node.Field(7)
	assert.Equal(t, Default{Kind: DefaultBool, Text: "true"}, *enabled.Default)

	_, ok = node.Field(99)
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeLoad, le.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode("broken.json", []byte(`{"declarations": [`))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeStructure, le.Code)
}

func TestDecodeMissingDeclarations(t *testing.T) {
	_, err := Decode("empty.json", []byte(`{"namespaces": []}`))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Error(), "missing declarations list")
}

func TestDecodeYAML(t *testing.T) {
	doc := `
declarations:
  - tag: Enum
    declName: Mode
    declNamespaces:
      - name: [demo]
    declAttributes: []
    enumConstants:
      - constantName: "Off"
        constantValue: ~
      - constantName: "On"
        constantValue: ~
  - tag: Struct
    declName: Switch
    declNamespaces:
      - name: [demo]
    declParams: []
    declAttributes: []
    structBase: ~
    structFields:
      - fieldOrdinal: 1
        fieldName: mode
        fieldModifier: Optional
        fieldType:
          type: user
          declaration:
            tag: Enum
            declName: Mode
            declNamespaces:
              - name: [demo]
            enumConstants:
              - constantName: "Off"
              - constantName: "On"
        fieldDefault:
          type: enum
          value: "On"
`
	s, err := Decode("switch.yaml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, s.Declarations, 2)

	sw := s.Structs()[0]
	require.Len(t, sw.Fields, 1)
	en, ok := AsEnum(sw.Fields[0].Type)
	require.True(t, ok)
	assert.Same(t, s.Declarations[0], Declaration(en))
	assert.Equal(t, "On", sw.Fields[0].Default.Text)
}

func TestDecodeCUE(t *testing.T) {
	doc := `
declarations: [{
	tag:      "Struct"
	declName: "Pair"
	declNamespaces: [{name: ["demo"]}]
	structFields: [
		{fieldOrdinal: 1, fieldName: "left", fieldType: "int64"},
		{fieldOrdinal: 2, fieldName: "right", fieldType: "int64"},
	]
}]
`
	s, err := Decode("pair.cue", []byte(doc))
	require.NoError(t, err)

	pair := s.Structs()[0]
	require.Len(t, pair.Fields, 2)
	assert.Equal(t, Optional, pair.Fields[0].Modifier, "modifier defaults to optional")
	assert.Equal(t, Primitive{Kind: Int64}, pair.Fields[1].Type)
}

func TestDecodeNormalizesIdentifiers(t *testing.T) {
	// "e" followed by a combining acute accent normalizes to U+00E9.
	doc := `{"declarations": [{"tag": "Struct", "declName": "` + "Cafe\u0301" + `", "declNamespaces": [{"name": ["n"]}],
		"structFields": []}]}`
	s, err := Decode("nfc.json", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", s.Declarations[0].Info().Name)
}

func TestDecodeStructDeclaredOnlyInsideUserType(t *testing.T) {
	inner := `{"tag": "Struct", "declName": "Inner", "declNamespaces": [{"name": ["n"]}],
		"structFields": [{"fieldOrdinal": 1, "fieldName": "x", "fieldType": "int32",
			"fieldDefault": {"type": "integer", "value": 7}}]}`
	doc := `{"declarations": [{"tag": "Struct", "declName": "Outer", "declNamespaces": [{"name": ["n"]}],
		"structFields": [
			{"fieldOrdinal": 1, "fieldName": "items", "fieldType": {"type": "vector", "element": {"type": "user", "declaration": ` + inner + `}}},
			{"fieldOrdinal": 2, "fieldName": "one", "fieldType": {"type": "user", "declaration": ` + inner + `}}]}]}`

	s, err := Decode("outer.json", []byte(doc))
	require.NoError(t, err)
	require.Len(t, s.Declarations, 1)

	outer := s.Structs()[0]
	items, ok := outer.Field(1)
	require.True(t, ok)
	st, ok := AsStruct(items.Type.(List).Elem)
	require.True(t, ok)
	require.Len(t, st.Fields, 1)
	assert.Equal(t, Default{Kind: DefaultInteger, Text: "7"}, *st.Fields[0].Default)

	one, _ := outer.Field(2)
	same, ok := AsStruct(one.Type)
	require.True(t, ok)
	assert.Same(t, st, same, "copies of one declaration share a struct")

	// Field errors inside the embedded copy are reported like top-level ones.
	bad := strings.Replace(doc, `"fieldOrdinal": 1, "fieldName": "x"`, `"fieldOrdinal": 70000, "fieldName": "x"`, 1)
	_, err = Decode("outer.json", []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n.Inner.x: ordinal 70000 out of range")
}

func TestDecodeRejects(t *testing.T) {
	field := func(body string) string {
		return `{"declarations": [
			{"tag": "Enum", "declName": "E", "declNamespaces": [{"name": ["n"]}],
			 "enumConstants": [{"constantName": "A", "constantValue": null}]},
			{"tag": "Struct", "declName": "S", "declNamespaces": [{"name": ["n"]}],
			 "structFields": [` + body + `]}]}`
	}
	enumRef := `{"type": "user", "declaration": {"tag": "Enum", "declName": "E", "declNamespaces": [{"name": ["n"]}],
		"enumConstants": [{"constantName": "A", "constantValue": null}]}}`

	tests := []struct {
		name string
		doc  string
		code string
	}{
		{
			name: "struct with params",
			doc:  `{"declarations": [{"tag": "Struct", "declName": "S", "declParams": [{"paramName": "T"}], "structFields": []}]}`,
			code: ErrCodeStructShape,
		},
		{
			name: "struct with attributes",
			doc:  `{"declarations": [{"tag": "Struct", "declName": "S", "declAttributes": [{"attrName": ["x"]}], "structFields": []}]}`,
			code: ErrCodeStructShape,
		},
		{
			name: "struct with base",
			doc:  `{"declarations": [{"tag": "Struct", "declName": "S", "structBase": "B", "structFields": []}]}`,
			code: ErrCodeStructShape,
		},
		{
			name: "enum with attributes",
			doc: `{"declarations": [{"tag": "Enum", "declName": "E", "declAttributes": [{"attrName": ["x"]}],
				"enumConstants": [{"constantName": "A"}]}]}`,
			code: ErrCodeEnumShape,
		},
		{
			name: "enum without constants",
			doc:  `{"declarations": [{"tag": "Enum", "declName": "E", "enumConstants": []}]}`,
			code: ErrCodeEnumShape,
		},
		{
			name: "enum value out of range",
			doc:  `{"declarations": [{"tag": "Enum", "declName": "E", "enumConstants": [{"constantName": "A", "constantValue": 4294967296}]}]}`,
			code: ErrCodeEnumShape,
		},
		{
			name: "two namespace entries",
			doc:  `{"declarations": [{"tag": "Struct", "declName": "S", "declNamespaces": [{"name": ["a"]}, {"name": ["b"]}], "structFields": []}]}`,
			code: ErrCodeNamespace,
		},
		{
			name: "unsupported declaration tag",
			doc:  `{"declarations": [{"tag": "Service", "declName": "S"}]}`,
			code: ErrCodeDeclTag,
		},
		{
			name: "duplicate declaration",
			doc: `{"declarations": [{"tag": "Struct", "declName": "S", "structFields": []},
				{"tag": "Struct", "declName": "S", "structFields": []}]}`,
			code: ErrCodeDuplicate,
		},
		{
			name: "duplicate ordinal",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "int32"}, {"fieldOrdinal": 1, "fieldName": "b", "fieldType": "int32"}`),
			code: ErrCodeDuplicate,
		},
		{
			name: "duplicate field name",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "int32"}, {"fieldOrdinal": 2, "fieldName": "a", "fieldType": "int32"}`),
			code: ErrCodeDuplicate,
		},
		{
			name: "unknown primitive",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "wstring"}`),
			code: ErrCodePrimitive,
		},
		{
			name: "set container",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": {"type": "set", "element": "int32"}}`),
			code: ErrCodeTypeTag,
		},
		{
			name: "nullable",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": {"type": "nullable", "element": "int32"}}`),
			code: ErrCodeTypeTag,
		},
		{
			name: "unknown primitive inside vector",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": {"type": "vector", "element": "blob"}}`),
			code: ErrCodePrimitive,
		},
		{
			name: "enum default naming a missing constant",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": ` + enumRef + `, "fieldDefault": {"type": "enum", "value": "Z"}}`),
			code: ErrCodeDefault,
		},
		{
			name: "integer default out of range",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "uint8", "fieldDefault": {"type": "integer", "value": 256}}`),
			code: ErrCodeDefault,
		},
		{
			name: "negative default on unsigned",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "uint32", "fieldDefault": {"type": "integer", "value": -1}}`),
			code: ErrCodeDefault,
		},
		{
			name: "float default on integer",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "int32", "fieldDefault": {"type": "float", "value": 1.5}}`),
			code: ErrCodeDefault,
		},
		{
			name: "string default",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "string", "fieldDefault": {"type": "string", "value": "x"}}`),
			code: ErrCodeDefault,
		},
		{
			name: "nothing default",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "int32", "fieldDefault": {"type": "nothing"}}`),
			code: ErrCodeDefault,
		},
		{
			name: "bool default on integer",
			doc:  field(`{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "int32", "fieldDefault": {"type": "bool", "value": true}}`),
			code: ErrCodeDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode("bad.json", []byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, s, "no partial schema on failure")

			var ue *UnsupportedError
			require.True(t, errors.As(err, &ue), "got %T: %v", err, err)
			assert.Equal(t, tt.code, ue.Code)
			assert.Contains(t, ue.Error(), tt.code)
		})
	}
}

func TestUnsupportedErrorNamesDeclaration(t *testing.T) {
	doc := `{"declarations": [{"tag": "Struct", "declName": "S", "declNamespaces": [{"name": ["n"]}],
		"structFields": [{"fieldOrdinal": 1, "fieldName": "a", "fieldType": "blob"}]}]}`
	_, err := Decode("bad.json", []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n.S.a")
	assert.Contains(t, err.Error(), "bad.json")
}
