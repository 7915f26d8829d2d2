package golang

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

var primitives = map[schema.PrimitiveKind]struct {
	gotype string
	zero   string
	method string
}{
	schema.Bool:   {"bool", "false", "Bool"},
	schema.Int8:   {"int8", "0", "Int8"},
	schema.Int16:  {"int16", "0", "Int16"},
	schema.Int32:  {"int32", "0", "Int32"},
	schema.Int64:  {"int64", "0", "Int64"},
	schema.UInt8:  {"uint8", "0", "UInt8"},
	schema.UInt16: {"uint16", "0", "UInt16"},
	schema.UInt32: {"uint32", "0", "UInt32"},
	schema.UInt64: {"uint64", "0", "UInt64"},
	schema.Float:  {"float32", "0", "Float"},
	schema.Double: {"float64", "0", "Double"},
	schema.String: {"string", `""`, "String"},
}

// goType returns the Go spelling of t. Namespaces are flattened, so user
// types are referred to by their bare name.
func goType(t schema.TypeExpr) string {
	switch t := t.(type) {
	case schema.Primitive:
		return primitives[t.Kind].gotype
	case schema.UserType:
		return t.Decl.Info().Name
	case schema.List:
		return "[]" + goType(t.Elem)
	case schema.Map:
		return "map[" + goType(t.Key) + "]" + goType(t.Elem)
	}
	panic(fmt.Sprintf("golang: unexpected type expression %T", t))
}

// fieldName exports a schema field name by upper-casing its first rune.
func fieldName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// enumConstant is the package-level name of an enumerator.
func enumConstant(en *schema.Enum, name string) string {
	return en.Name + "_" + name
}

// defaultValue returns the Go literal f starts out with.
func defaultValue(f *schema.Field) string {
	if f.Default == nil {
		if p, ok := f.Type.(schema.Primitive); ok {
			return primitives[p.Kind].zero
		}
		return ""
	}
	if f.Default.Kind == schema.DefaultEnum {
		en, _ := schema.AsEnum(f.Type)
		return enumConstant(en, f.Default.Text)
	}
	return f.Default.Text
}

// hasDefault reports whether f starts out with something other than the Go
// zero value of its type.
func hasDefault(f *schema.Field) bool {
	if st, ok := schema.AsStruct(f.Type); ok {
		return needsInit(st, nil)
	}
	return f.Default != nil
}

// needsInit reports whether NewT has anything to set for st.
func needsInit(st *schema.Struct, seen map[*schema.Struct]bool) bool {
	if seen[st] {
		return false
	}
	if seen == nil {
		seen = make(map[*schema.Struct]bool)
	}
	seen[st] = true

	for i := range st.Fields {
		f := &st.Fields[i]
		if inner, ok := schema.AsStruct(f.Type); ok {
			if needsInit(inner, seen) {
				return true
			}
			continue
		}
		if f.Default != nil {
			return true
		}
	}
	return false
}

// checkNames rejects schemas the flattened Go package cannot hold: two
// declarations producing the same identifier, fields whose exported names
// collide, and map keys that have no ordering.
func checkNames(in *codegen.Input) error {
	owners := make(map[string]schema.Declaration)
	claim := func(d schema.Declaration, ident string) error {
		if prev, ok := owners[ident]; ok && prev != d {
			return clash(in, d, "", fmt.Sprintf("Go identifier %s is also generated for %s",
				ident, prev.Info().QualifiedName()))
		}
		owners[ident] = d
		return nil
	}

	for _, d := range in.Decls {
		switch d := d.(type) {
		case *schema.Enum:
			if err := claim(d, d.Name); err != nil {
				return err
			}
			for _, k := range d.Constants {
				if err := claim(d, enumConstant(d, k.Name)); err != nil {
					return err
				}
			}

		case *schema.Struct:
			for _, ident := range []string{d.Name, "New" + d.Name, "Serialize" + d.Name, "Deserialize" + d.Name} {
				if err := claim(d, ident); err != nil {
					return err
				}
			}
			if err := checkFields(in, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFields(in *codegen.Input, st *schema.Struct) error {
	seen := make(map[string]string)
	for i := range st.Fields {
		f := &st.Fields[i]
		name := fieldName(f.Name)
		if name == "_" || name == "Equal" {
			return clash(in, st, f.Name, fmt.Sprintf("field name %s is reserved in Go output", name))
		}
		if prev, ok := seen[name]; ok {
			return clash(in, st, f.Name, fmt.Sprintf("exported field name %s is also used by field %s", name, prev))
		}
		seen[name] = f.Name

		if err := checkKeys(in, st, f, f.Type); err != nil {
			return err
		}
	}
	return nil
}

func checkKeys(in *codegen.Input, st *schema.Struct, f *schema.Field, t schema.TypeExpr) error {
	switch t := t.(type) {
	case schema.List:
		return checkKeys(in, st, f, t.Elem)
	case schema.Map:
		ok := false
		switch k := t.Key.(type) {
		case schema.Primitive:
			ok = k.Kind != schema.Bool
		case schema.UserType:
			_, ok = k.Decl.(*schema.Enum)
		}
		if !ok {
			return &schema.UnsupportedError{
				Code: schema.ErrCodeTargetSupport, Path: in.Schema.Path,
				Decl: st.QualifiedName(), Field: f.Name, Pos: f.Pos,
				Message: fmt.Sprintf("map key %s is not supported by the go target; keys must be ordered primitives or enums", t.Key),
			}
		}
		return checkKeys(in, st, f, t.Elem)
	}
	return nil
}

func clash(in *codegen.Input, d schema.Declaration, field, msg string) error {
	return &schema.UnsupportedError{
		Code: schema.ErrCodeTargetClash, Path: in.Schema.Path,
		Decl: d.Info().QualifiedName(), Field: field, Pos: d.Info().Pos,
		Message: msg,
	}
}
