package cpp

import (
	"fmt"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

func emitReaders(w *codegen.LineWriter, structs []*schema.Struct) {
	ns := codegen.NewNamespaceStack(scopes{w})
	ns.TransitionTo(bondLite)

	for _, st := range structs {
		w.Line(0, "template<typename TReader>")
		w.Line(0, "bool Deserialize(TReader& reader, %s& value, bool isBase)", qualifiedName(st, nil))
		w.Line(0, "{")
		failIfNot(w, 1, "reader.ReadStructBegin(isBase)")
		w.Blank()

		w.Line(1, "uint8_t type;")
		w.Line(1, "uint16_t id;")
		w.Line(1, "for (;;) {")
		failIfNot(w, 2, "reader.ReadFieldBegin(type, id)")
		w.Blank()

		w.Line(2, "if (type == BT_STOP || type == BT_STOP_BASE) {")
		w.Line(3, "if (isBase != (type == BT_STOP_BASE)) {")
		w.Line(4, "return false;")
		w.Line(3, "}")
		w.Line(3, "break;")
		w.Line(2, "}")
		w.Blank()

		w.Line(2, "switch (id) {")
		for i := range st.Fields {
			f := &st.Fields[i]
			w.Line(3, "case %d: {", f.Ordinal)
			fieldReader(w, f, 4)
			w.Line(4, "break;")
			w.Line(3, "}")
			w.Blank()
		}
		w.Line(3, "default:")
		w.Line(4, "return false;")
		w.Line(2, "}")
		w.Blank()

		failIfNot(w, 2, "reader.ReadFieldEnd()")
		w.Line(1, "}")
		w.Blank()

		failIfNot(w, 1, "reader.ReadStructEnd(isBase)")
		w.Blank()

		w.Line(1, "return true;")
		w.Line(0, "}")
		w.Blank()
	}

	ns.Close()
}

func fieldReader(w *codegen.LineWriter, f *schema.Field, indent int) {
	v := "value." + f.Name
	if _, ok := schema.AsEnum(f.Type); ok {
		enumSizeAssert(w, indent, v)
	}
	itemReader(w, f.Type, v, indent)
}

func itemReader(w *codegen.LineWriter, t schema.TypeExpr, v string, indent int) {
	switch t := t.(type) {
	case schema.Primitive:
		failIfNot(w, indent, fmt.Sprintf("reader.Read%s(%s)", primitives[t.Kind].method, v))

	case schema.UserType:
		if _, ok := t.Decl.(*schema.Enum); ok {
			item := fmt.Sprintf("item%d", indent)
			w.Line(indent, "int32_t %s;", item)
			failIfNot(w, indent, fmt.Sprintf("reader.ReadInt32(%s)", item))
			w.Line(indent, "%s = static_cast<%s>(%s);", v, templateArg(typeName(t, nil)), item)
		} else {
			failIfNot(w, indent, fmt.Sprintf("Deserialize(reader, %s, false)", v))
		}

	case schema.List:
		size, typ, i := varName("size", indent), varName("type", indent), varName("i", indent)
		w.Line(indent, "uint32_t %s;", size)
		w.Line(indent, "uint8_t %s;", typ)
		failIfNot(w, indent, fmt.Sprintf("reader.ReadContainerBegin(%s, %s)", size, typ))
		w.Line(indent, "if (%s != %s) {", typ, codegen.WireTag(t.Elem))
		w.Line(indent+1, "return false;")
		w.Line(indent, "}")
		w.Line(indent, "%s.resize(%s);", v, size)
		w.Line(indent, "for (unsigned %s = 0; %s < %s; %s++) {", i, i, size, i)
		elementReader(w, t.Elem, fmt.Sprintf("%s[%s]", v, i), indent+1)
		w.Line(indent, "}")
		failIfNot(w, indent, "reader.ReadContainerEnd()")

	case schema.Map:
		size, i := varName("size", indent), varName("i", indent)
		keyType, valueType, key := varName("keyType", indent), varName("valueType", indent), varName("key", indent)
		w.Line(indent, "uint32_t %s;", size)
		w.Line(indent, "uint8_t %s, %s;", keyType, valueType)
		failIfNot(w, indent, fmt.Sprintf("reader.ReadMapContainerBegin(%s, %s, %s)", size, keyType, valueType))
		w.Line(indent, "if (%s != %s || %s != %s) {", keyType, codegen.WireTag(t.Key), valueType, codegen.WireTag(t.Elem))
		w.Line(indent+1, "return false;")
		w.Line(indent, "}")
		w.Line(indent, "for (unsigned %s = 0; %s < %s; %s++) {", i, i, size, i)
		w.Line(indent+1, "%s %s;", typeName(t.Key, nil), key)
		elementReader(w, t.Key, key, indent+1)
		elementReader(w, t.Elem, fmt.Sprintf("%s[%s]", v, key), indent+1)
		w.Line(indent, "}")
		failIfNot(w, indent, "reader.ReadContainerEnd()")
	}
}

func elementReader(w *codegen.LineWriter, t schema.TypeExpr, v string, indent int) {
	if _, ok := schema.AsEnum(t); ok {
		enumSizeAssert(w, indent, v)
	}
	itemReader(w, t, v, indent)
}

func failIfNot(w *codegen.LineWriter, indent int, call string) {
	w.Line(indent, "if (!%s) {", call)
	w.Line(indent+1, "return false;")
	w.Line(indent, "}")
}

func varName(base string, indent int) string {
	return fmt.Sprintf("%s%d", base, indent)
}
