package cpp

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/bondgen/internal/schema"
)

type primitiveInfo struct {
	cpp    string // C++ type
	zero   string // initializer when the schema gives no default; empty for none
	method string // suffix of the protocol Write/Read method
}

var primitives = map[schema.PrimitiveKind]primitiveInfo{
	schema.Bool:   {"bool", "false", "Bool"},
	schema.Int8:   {"int8_t", "0", "Int8"},
	schema.Int16:  {"int16_t", "0", "Int16"},
	schema.Int32:  {"int32_t", "0", "Int32"},
	schema.Int64:  {"int64_t", "0", "Int64"},
	schema.UInt8:  {"uint8_t", "0", "UInt8"},
	schema.UInt16: {"uint16_t", "0", "UInt16"},
	schema.UInt32: {"uint32_t", "0", "UInt32"},
	schema.UInt64: {"uint64_t", "0", "UInt64"},
	schema.Float:  {"float", "0.0f", "Float"},
	schema.Double: {"double", "0.0", "Double"},
	schema.String: {"std::string", "", "String"},
}

// qualifiedName spells decl as seen from inside the namespace path rel.
// Leading segments shared with rel are dropped; with nothing shared the name
// is fully qualified with a leading "::". A nil rel always yields the fully
// qualified name.
func qualifiedName(decl schema.Declaration, rel []string) string {
	info := decl.Info()
	skip := 0
	for skip < len(info.Namespace) && skip < len(rel) && info.Namespace[skip] == rel[skip] {
		skip++
	}

	var parts []string
	if skip == 0 {
		parts = append(parts, "")
	}
	parts = append(parts, info.Namespace[skip:]...)
	parts = append(parts, info.Name)
	return strings.Join(parts, "::")
}

// typeName returns the C++ spelling of t relative to rel.
func typeName(t schema.TypeExpr, rel []string) string {
	switch t := t.(type) {
	case schema.Primitive:
		return primitives[t.Kind].cpp
	case schema.UserType:
		return qualifiedName(t.Decl, rel)
	case schema.List:
		return "std::vector<" + templateArg(typeName(t.Elem, rel)) + ">"
	case schema.Map:
		return "std::map<" + templateArg(typeName(t.Key, rel)) + ", " + typeName(t.Elem, rel) + ">"
	}
	panic("cpp: unexpected type expression")
}

// templateArg keeps "<" and a leading "::" apart; "<:" is a digraph for "[".
func templateArg(name string) string {
	if strings.HasPrefix(name, ":") {
		return " " + name
	}
	return name
}

// defaultValue returns the initializer for f, or "" when the field has none.
func defaultValue(f *schema.Field, rel []string) string {
	if f.Default == nil {
		if p, ok := f.Type.(schema.Primitive); ok {
			return primitives[p.Kind].zero
		}
		return ""
	}

	switch f.Default.Kind {
	case schema.DefaultEnum:
		en, _ := schema.AsEnum(f.Type)
		return qualifiedName(en, rel) + "::" + f.Default.Text
	case schema.DefaultFloat:
		if p, ok := f.Type.(schema.Primitive); ok && p.Kind == schema.Float {
			return f.Default.Text + "f"
		}
	case schema.DefaultInteger:
		if p, ok := f.Type.(schema.Primitive); ok {
			return integerLiteral(p.Kind, f.Default.Text)
		}
	}
	return f.Default.Text
}

// integerLiteral spells text so that the literal itself has a type able to
// hold it. The minimum of a signed type cannot be written directly, since
// "-N" negates a literal N that is already out of range.
func integerLiteral(k schema.PrimitiveKind, text string) string {
	switch k {
	case schema.Int32:
		if text == "-2147483648" {
			return "(-2147483647 - 1)"
		}
	case schema.Int64:
		if text == "-9223372036854775808" {
			return "(-9223372036854775807LL - 1)"
		}
		if i, err := strconv.ParseInt(text, 10, 64); err == nil && (i < math.MinInt32 || i > math.MaxInt32) {
			return text + "LL"
		}
	case schema.UInt32:
		if u, err := strconv.ParseUint(text, 10, 32); err == nil && u > math.MaxInt32 {
			return text + "u"
		}
	case schema.UInt64:
		if u, err := strconv.ParseUint(text, 10, 64); err == nil && u > math.MaxInt32 {
			return text + "ULL"
		}
	}
	return text
}
