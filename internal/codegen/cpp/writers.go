package cpp

import (
	"fmt"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

var bondLite = []string{"bond_lite"}

func emitWriters(w *codegen.LineWriter, structs []*schema.Struct) {
	ns := codegen.NewNamespaceStack(scopes{w})
	ns.TransitionTo(bondLite)

	for _, st := range structs {
		w.Line(0, "template<typename TWriter>")
		w.Line(0, "void Serialize(TWriter& writer, %s const& value, bool isBase)", qualifiedName(st, nil))
		w.Line(0, "{")
		w.Line(1, "writer.WriteStructBegin(nullptr, isBase);")
		w.Blank()

		for i := range st.Fields {
			fieldWriter(w, &st.Fields[i], 1)
			w.Blank()
		}

		w.Line(1, "writer.WriteStructEnd(isBase);")
		w.Line(0, "}")
		w.Blank()
	}

	ns.Close()
}

func fieldWriter(w *codegen.LineWriter, f *schema.Field, indent int) {
	v := "value." + f.Name
	tag := codegen.WireTag(f.Type)

	if codegen.Presence(f.Type) == codegen.PresenceAlways {
		if _, ok := schema.AsEnum(f.Type); ok {
			enumSizeAssert(w, indent, v)
		}
		w.Line(indent, "writer.WriteFieldBegin(%s, %d, nullptr);", tag, f.Ordinal)
		itemWriter(w, f.Type, v, indent)
		w.Line(indent, "writer.WriteFieldEnd();")
		return
	}

	w.Line(indent, "if (%s) {", isSet(f, v))
	w.Line(indent+1, "writer.WriteFieldBegin(%s, %d, nullptr);", tag, f.Ordinal)
	itemWriter(w, f.Type, v, indent+1)
	w.Line(indent+1, "writer.WriteFieldEnd();")
	w.Line(indent, "} else {")
	w.Line(indent+1, "writer.WriteFieldOmitted(%s, %d, nullptr);", tag, f.Ordinal)
	w.Line(indent, "}")
}

// isSet is the presence test for fields that may be omitted.
func isSet(f *schema.Field, v string) string {
	if codegen.Presence(f.Type) == codegen.PresenceNonEmpty {
		return fmt.Sprintf("!%s.empty()", v)
	}
	return fmt.Sprintf("%s != %s", v, defaultValue(f, nil))
}

func itemWriter(w *codegen.LineWriter, t schema.TypeExpr, v string, indent int) {
	switch t := t.(type) {
	case schema.Primitive:
		w.Line(indent, "writer.Write%s(%s);", primitives[t.Kind].method, v)

	case schema.UserType:
		if _, ok := t.Decl.(*schema.Enum); ok {
			w.Line(indent, "writer.WriteInt32(static_cast<int32_t>(%s));", v)
		} else {
			w.Line(indent, "Serialize(writer, %s, false);", v)
		}

	case schema.List:
		item := varName("item", indent)
		w.Line(indent, "writer.WriteContainerBegin(%s.size(), %s);", v, codegen.WireTag(t.Elem))
		w.Line(indent, "for (auto const& %s : %s) {", item, v)
		elementWriter(w, t.Elem, item, indent+1)
		w.Line(indent, "}")
		w.Line(indent, "writer.WriteContainerEnd();")

	case schema.Map:
		item := varName("item", indent)
		w.Line(indent, "writer.WriteMapContainerBegin(%s.size(), %s, %s);", v, codegen.WireTag(t.Key), codegen.WireTag(t.Elem))
		w.Line(indent, "for (auto const& %s : %s) {", item, v)
		elementWriter(w, t.Key, item+".first", indent+1)
		elementWriter(w, t.Elem, item+".second", indent+1)
		w.Line(indent, "}")
		w.Line(indent, "writer.WriteContainerEnd();")
	}
}

func elementWriter(w *codegen.LineWriter, t schema.TypeExpr, v string, indent int) {
	if _, ok := schema.AsEnum(t); ok {
		enumSizeAssert(w, indent, v)
	}
	itemWriter(w, t, v, indent)
}

// enumSizeAssert guards the narrowing of an enum value to int32 on the wire.
func enumSizeAssert(w *codegen.LineWriter, indent int, v string) {
	w.Line(indent, `static_assert(sizeof(%s) == 4, "Invalid size of enum");`, v)
}
