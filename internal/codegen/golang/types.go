package golang

import (
	"fmt"

	"github.com/roach88/bondgen/internal/schema"
)

func emitTypes(f *file, decls []schema.Declaration) {
	for _, d := range decls {
		switch d := d.(type) {
		case *schema.Struct:
			structType(f, d)
		case *schema.Enum:
			enumType(f, d)
		}
	}
}

func enumType(f *file, en *schema.Enum) {
	w := f.body
	w.Blank()
	w.Line(0, "// %s is %s. It travels as BT_INT32.", en.Name, en.QualifiedName())
	w.Line(0, "type %s int32", en.Name)
	w.Blank()
	w.Line(0, "const (")
	for _, k := range en.Constants {
		w.Line(1, "%s %s = %d", enumConstant(en, k.Name), en.Name, k.Value)
	}
	w.Line(0, ")")
}

func structType(f *file, st *schema.Struct) {
	w := f.body
	w.Blank()
	w.Line(0, "// %s is %s.", st.Name, st.QualifiedName())
	if len(st.Fields) == 0 {
		w.Line(0, "type %s struct{}", st.Name)
	} else {
		w.Line(0, "type %s struct {", st.Name)
		for i := range st.Fields {
			fd := &st.Fields[i]
			w.Line(1, "%s %s // %d: %s %s %s", fieldName(fd.Name), goType(fd.Type), fd.Ordinal, fd.Modifier, fd.Type, fd.Name)
		}
		w.Line(0, "}")
	}

	w.Blank()
	w.Line(0, "// New%s returns a %s holding the schema defaults.", st.Name, st.Name)
	w.Line(0, "func New%s() *%s {", st.Name, st.Name)
	var inits []*schema.Field
	for i := range st.Fields {
		if hasDefault(&st.Fields[i]) {
			inits = append(inits, &st.Fields[i])
		}
	}
	if len(inits) == 0 {
		w.Line(1, "return &%s{}", st.Name)
	} else {
		w.Line(1, "return &%s{", st.Name)
		for _, fd := range inits {
			if inner, ok := schema.AsStruct(fd.Type); ok {
				w.Line(2, "%s: *New%s(),", fieldName(fd.Name), inner.Name)
			} else {
				w.Line(2, "%s: %s,", fieldName(fd.Name), defaultValue(fd))
			}
		}
		w.Line(1, "}")
	}
	w.Line(0, "}")

	w.Blank()
	w.Line(0, "// Equal reports whether v and other hold equal field values.")
	w.Line(0, "func (v *%s) Equal(other *%s) bool {", st.Name, st.Name)
	if len(st.Fields) == 0 {
		w.Line(1, "return true")
	}
	for i := range st.Fields {
		fd := &st.Fields[i]
		name := fieldName(fd.Name)
		lead, end := "\t", " &&"
		if i == 0 {
			lead = "return "
		}
		if i == len(st.Fields)-1 {
			end = ""
		}
		w.Line(1, "%s%s%s", lead, equalExpr(f, fd.Type, "v."+name, "other."+name), end)
	}
	w.Line(0, "}")
}

// equalExpr compares a and b of type t. Containers of comparable elements
// use slices.Equal and maps.Equal; anything holding a struct compares
// through Equal.
func equalExpr(f *file, t schema.TypeExpr, a, b string) string {
	switch t := t.(type) {
	case schema.UserType:
		if _, ok := t.Decl.(*schema.Struct); ok {
			return fmt.Sprintf("%s.Equal(&%s)", a, b)
		}
	case schema.List:
		f.use("slices")
		if isComparable(t.Elem) {
			return fmt.Sprintf("slices.Equal(%s, %s)", a, b)
		}
		return fmt.Sprintf("slices.EqualFunc(%s, %s, %s)", a, b, equalFunc(f, t.Elem))
	case schema.Map:
		f.use("maps")
		if isComparable(t.Elem) {
			return fmt.Sprintf("maps.Equal(%s, %s)", a, b)
		}
		return fmt.Sprintf("maps.EqualFunc(%s, %s, %s)", a, b, equalFunc(f, t.Elem))
	}
	return fmt.Sprintf("%s == %s", a, b)
}

func equalFunc(f *file, t schema.TypeExpr) string {
	typ := goType(t)
	return fmt.Sprintf("func(x, y %s) bool { return %s }", typ, equalExpr(f, t, "x", "y"))
}

// isComparable reports whether values of t can be compared with ==.
func isComparable(t schema.TypeExpr) bool {
	switch t := t.(type) {
	case schema.Primitive:
		return true
	case schema.UserType:
		_, ok := t.Decl.(*schema.Enum)
		return ok
	}
	return false
}
