package golang

import (
	"fmt"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

func emitWriters(f *file, structs []*schema.Struct) {
	w := f.body
	for _, st := range structs {
		w.Blank()
		w.Line(0, "// Serialize%s writes value as a %s struct.", st.Name, st.Name)
		w.Line(0, "func Serialize%s(w %s, value *%s, isBase bool) {", st.Name, f.rt("ProtocolWriter"), st.Name)
		w.Line(1, "w.WriteStructBegin(isBase)")
		w.Blank()

		for i := range st.Fields {
			fieldWriter(f, &st.Fields[i], 1)
			w.Blank()
		}

		w.Line(1, "w.WriteStructEnd(isBase)")
		w.Line(0, "}")
	}
}

func fieldWriter(f *file, fd *schema.Field, indent int) {
	w := f.body
	v := "value." + fieldName(fd.Name)
	tag := codegen.WireTag(fd.Type)

	if codegen.Presence(fd.Type) == codegen.PresenceAlways {
		if _, ok := schema.AsEnum(fd.Type); ok {
			enumSizeAssert(f, indent, v)
		}
		w.Line(indent, "w.WriteFieldBegin(%s, %d)", tag, fd.Ordinal)
		itemWriter(f, fd.Type, v, indent)
		w.Line(indent, "w.WriteFieldEnd()")
		return
	}

	w.Line(indent, "if %s {", isSet(fd, v))
	w.Line(indent+1, "w.WriteFieldBegin(%s, %d)", tag, fd.Ordinal)
	itemWriter(f, fd.Type, v, indent+1)
	w.Line(indent+1, "w.WriteFieldEnd()")
	w.Line(indent, "} else {")
	w.Line(indent+1, "w.WriteFieldOmitted(%s, %d)", tag, fd.Ordinal)
	w.Line(indent, "}")
}

// isSet is the presence test for fields that may be omitted.
func isSet(fd *schema.Field, v string) string {
	switch t := fd.Type.(type) {
	case schema.Primitive:
		switch {
		case t.Kind == schema.String:
			return v + ` != ""`
		case t.Kind == schema.Bool && defaultValue(fd) == "true":
			return "!" + v
		case t.Kind == schema.Bool:
			return v
		}
	case schema.List, schema.Map:
		return fmt.Sprintf("len(%s) != 0", v)
	}
	return fmt.Sprintf("%s != %s", v, defaultValue(fd))
}

func itemWriter(f *file, t schema.TypeExpr, v string, indent int) {
	w := f.body
	switch t := t.(type) {
	case schema.Primitive:
		w.Line(indent, "w.Write%s(%s)", primitives[t.Kind].method, v)

	case schema.UserType:
		if _, ok := t.Decl.(*schema.Enum); ok {
			w.Line(indent, "w.WriteInt32(int32(%s))", v)
		} else {
			w.Line(indent, "Serialize%s(w, &%s, false)", t.Decl.Info().Name, v)
		}

	case schema.List:
		item := varName("item", indent)
		w.Line(indent, "w.WriteContainerBegin(len(%s), %s)", v, codegen.WireTag(t.Elem))
		w.Line(indent, "for _, %s := range %s {", item, v)
		elementWriter(f, t.Elem, item, indent+1)
		w.Line(indent, "}")
		w.Line(indent, "w.WriteContainerEnd()")

	case schema.Map:
		f.use("maps")
		f.use("slices")
		key, item := varName("key", indent), varName("item", indent)
		w.Line(indent, "w.WriteMapContainerBegin(len(%s), %s, %s)", v, codegen.WireTag(t.Key), codegen.WireTag(t.Elem))
		w.Line(indent, "for _, %s := range slices.Sorted(maps.Keys(%s)) {", key, v)
		w.Line(indent+1, "%s := %s[%s]", item, v, key)
		elementWriter(f, t.Key, key, indent+1)
		elementWriter(f, t.Elem, item, indent+1)
		w.Line(indent, "}")
		w.Line(indent, "w.WriteContainerEnd()")
	}
}

func elementWriter(f *file, t schema.TypeExpr, v string, indent int) {
	if _, ok := schema.AsEnum(t); ok {
		enumSizeAssert(f, indent, v)
	}
	itemWriter(f, t, v, indent)
}

// enumSizeAssert fails to compile unless v is exactly four bytes wide.
func enumSizeAssert(f *file, indent int, v string) {
	f.use("unsafe")
	f.body.Line(indent, "_ = [1]struct{}{}[unsafe.Sizeof(%s)-4]", v)
}

func varName(base string, indent int) string {
	return fmt.Sprintf("%s%d", base, indent)
}
