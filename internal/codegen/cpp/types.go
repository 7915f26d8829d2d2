package cpp

import (
	"unicode/utf8"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

func emitTypes(w *codegen.LineWriter, decls []schema.Declaration) {
	ns := codegen.NewNamespaceStack(scopes{w})
	for _, d := range decls {
		ns.TransitionTo(d.Info().Namespace)
		switch d := d.(type) {
		case *schema.Struct:
			structType(w, d)
		case *schema.Enum:
			enumType(w, d)
		}
	}
	ns.Close()
}

func structType(w *codegen.LineWriter, st *schema.Struct) {
	rel := st.Namespace
	w.Line(0, "struct %s {", st.Name)

	for i := range st.Fields {
		f := &st.Fields[i]
		w.Line(1, "// %d: %s %s %s", f.Ordinal, f.Modifier, f.Type, f.Name)
		if def := defaultValue(f, rel); def != "" {
			w.Line(1, "%s %s = %s;", typeName(f.Type, rel), f.Name, def)
		} else {
			w.Line(1, "%s %s;", typeName(f.Type, rel), f.Name)
		}
	}

	w.Blank()
	w.Line(1, "bool operator==(%s const& other) const", st.Name)
	w.Line(1, "{")
	if len(st.Fields) == 0 {
		w.Line(2, "return true;")
	}
	for i, f := range st.Fields {
		lead, end := "    &&", ""
		if i == 0 {
			lead = "return"
		}
		if i == len(st.Fields)-1 {
			end = ";"
		}
		w.Line(2, "%s (%s == other.%s)%s", lead, f.Name, f.Name, end)
	}
	w.Line(1, "}")

	w.Blank()
	w.Line(1, "bool operator!=(%s const& other) const", st.Name)
	w.Line(1, "{")
	w.Line(2, "return !(*this == other);")
	w.Line(1, "}")
	w.Line(0, "};")
	w.Blank()
}

// enumType nests the enum in _bond_enumerators::<Name> so the constants do not
// leak into the enclosing namespace, then pulls the type itself back in.
func enumType(w *codegen.LineWriter, en *schema.Enum) {
	w.Line(0, "namespace _bond_enumerators {")
	w.Line(0, "namespace %s {", en.Name)
	enumBody(w, en)
	w.Line(0, "}")
	w.Line(0, "}")
	w.Line(0, "using namespace _bond_enumerators::%s;", en.Name)
	w.Blank()
}

func enumBody(w *codegen.LineWriter, en *schema.Enum) {
	width := 0
	for _, c := range en.Constants {
		width = max(width, utf8.RuneCountInString(c.Name))
	}

	w.Line(0, "enum %s {", en.Name)
	for i, c := range en.Constants {
		sep := ","
		if i == len(en.Constants)-1 {
			sep = ""
		}
		w.Line(1, "%-*s = %d%s", width, c.Name, c.Value, sep)
	}
	w.Line(0, "};")
}
