package golang

import (
	"fmt"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

// field identifies the struct field a reader is decoding; mismatch errors
// name it.
type field struct {
	structName string
	ordinal    uint16
}

func emitReaders(f *file, structs []*schema.Struct) {
	w := f.body
	for _, st := range structs {
		name := st.QualifiedName()

		w.Blank()
		w.Line(0, "// Deserialize%s reads a %s struct into value.", st.Name, st.Name)
		w.Line(0, "func Deserialize%s(r %s, value *%s, isBase bool) error {", st.Name, f.rt("ProtocolReader"), st.Name)
		returnIfErr(w, 1, "r.ReadStructBegin(isBase)")
		w.Blank()

		w.Line(1, "for {")
		w.Line(2, "typ, id, err := r.ReadFieldBegin()")
		w.Line(2, "if err != nil {")
		w.Line(3, "return err")
		w.Line(2, "}")
		w.Blank()

		w.Line(2, "if typ == BT_STOP || typ == BT_STOP_BASE {")
		w.Line(3, "if isBase != (typ == BT_STOP_BASE) {")
		w.Line(4, "return %s(%q, isBase, typ)", f.rt("StopTypeError"), name)
		w.Line(3, "}")
		w.Line(3, "break")
		w.Line(2, "}")
		w.Blank()

		w.Line(2, "switch id {")
		for i := range st.Fields {
			fd := &st.Fields[i]
			w.Line(2, "case %d:", fd.Ordinal)
			fieldReader(f, field{name, fd.Ordinal}, fd, 3)
		}
		w.Line(2, "default:")
		w.Line(3, "return %s(%q, id)", f.rt("UnknownFieldError"), name)
		w.Line(2, "}")
		w.Blank()

		returnIfErr(w, 2, "r.ReadFieldEnd()")
		w.Line(1, "}")
		w.Blank()

		w.Line(1, "return r.ReadStructEnd(isBase)")
		w.Line(0, "}")
	}
}

func fieldReader(f *file, at field, fd *schema.Field, indent int) {
	v := "value." + fieldName(fd.Name)
	if _, ok := schema.AsEnum(fd.Type); ok {
		enumSizeAssert(f, indent, v)
	}
	itemReader(f, at, fd.Type, v, indent)
}

// itemReader decodes one value of type t into the addressable expression v.
// An err variable is always in scope.
func itemReader(f *file, at field, t schema.TypeExpr, v string, indent int) {
	w := f.body
	switch t := t.(type) {
	case schema.Primitive:
		assignOrReturn(w, indent, v, fmt.Sprintf("r.Read%s()", primitives[t.Kind].method))

	case schema.UserType:
		if _, ok := t.Decl.(*schema.Enum); ok {
			assignOrReturn(w, indent, v, fmt.Sprintf("%s[%s](r)", f.rt("ReadEnum"), t.Decl.Info().Name))
		} else {
			returnIfErr(w, indent, fmt.Sprintf("Deserialize%s(r, &%s, false)", t.Decl.Info().Name, v))
		}

	case schema.List:
		size, typ, i := varName("size", indent), varName("type", indent), varName("i", indent)
		w.Line(indent, "%s, %s, err := r.ReadContainerBegin()", size, typ)
		w.Line(indent, "if err != nil {")
		w.Line(indent+1, "return err")
		w.Line(indent, "}")
		checkType(f, at, indent, typ, t.Elem)
		w.Line(indent, "%s = make(%s, %s)", v, goType(t), size)
		w.Line(indent, "for %s := range %s {", i, v)
		if start, ok := initialValue(t.Elem); ok {
			w.Line(indent+1, "%s[%s] = %s", v, i, start)
		}
		elementReader(f, at, t.Elem, fmt.Sprintf("%s[%s]", v, i), indent+1)
		w.Line(indent, "}")
		returnIfErr(w, indent, "r.ReadContainerEnd()")

	case schema.Map:
		size := varName("size", indent)
		keyType, valueType := varName("keyType", indent), varName("valueType", indent)
		key, item := varName("key", indent+1), varName("item", indent+1)
		w.Line(indent, "%s, %s, %s, err := r.ReadMapContainerBegin()", size, keyType, valueType)
		w.Line(indent, "if err != nil {")
		w.Line(indent+1, "return err")
		w.Line(indent, "}")
		checkType(f, at, indent, keyType, t.Key)
		checkType(f, at, indent, valueType, t.Elem)
		w.Line(indent, "%s = make(%s, %s)", v, goType(t), size)
		w.Line(indent, "for range %s {", size)
		w.Line(indent+1, "var %s %s", key, goType(t.Key))
		elementReader(f, at, t.Key, key, indent+1)
		if start, ok := initialValue(t.Elem); ok {
			w.Line(indent+1, "%s := %s", item, start)
		} else {
			w.Line(indent+1, "var %s %s", item, goType(t.Elem))
		}
		elementReader(f, at, t.Elem, item, indent+1)
		w.Line(indent+1, "%s[%s] = %s", v, key, item)
		w.Line(indent, "}")
		returnIfErr(w, indent, "r.ReadContainerEnd()")
	}
}

func elementReader(f *file, at field, t schema.TypeExpr, v string, indent int) {
	if _, ok := schema.AsEnum(t); ok {
		enumSizeAssert(f, indent, v)
	}
	itemReader(f, at, t, v, indent)
}

// initialValue is the expression a container element of type t starts from
// before it is decoded. It is empty when the zero value already holds the
// defaults.
func initialValue(t schema.TypeExpr) (string, bool) {
	st, ok := schema.AsStruct(t)
	if !ok || !needsInit(st, nil) {
		return "", false
	}
	return fmt.Sprintf("*New%s()", st.Name), true
}

// checkType rejects a container whose announced element type differs from
// the declared one.
func checkType(f *file, at field, indent int, got string, want schema.TypeExpr) {
	tag := codegen.WireTag(want)
	f.body.Line(indent, "if %s != %s {", got, tag)
	f.body.Line(indent+1, "return %s(%q, %d, %s, %s)", f.rt("ElementTypeError"), at.structName, at.ordinal, tag, got)
	f.body.Line(indent, "}")
}

func assignOrReturn(w *codegen.LineWriter, indent int, v, call string) {
	w.Line(indent, "if %s, err = %s; err != nil {", v, call)
	w.Line(indent+1, "return err")
	w.Line(indent, "}")
}

func returnIfErr(w *codegen.LineWriter, indent int, call string) {
	w.Line(indent, "if err := %s; err != nil {", call)
	w.Line(indent+1, "return err")
	w.Line(indent, "}")
}
