package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"
	"golang.org/x/text/unicode/norm"
)

// Load reads and validates the schema document at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeLoad,
			Path:    path,
			Message: fmt.Sprintf("cannot read schema: %v", err),
			Err:     err,
		}
	}
	return Decode(path, data)
}

// Decode validates a schema document already in memory. The extension of
// path selects the syntax: .cue, .yaml/.yml, anything else is JSON.
//
// Validation is fail fast: the first unsupported construct aborts decoding and
// no partial Schema is returned.
func Decode(path string, data []byte) (*Schema, error) {
	root, err := compile(path, data)
	if err != nil {
		return nil, err
	}

	list := root.LookupPath(cue.ParsePath("declarations"))
	if !list.Exists() {
		return nil, &LoadError{Code: ErrCodeStructure, Path: path, Message: "missing declarations list", Pos: root.Pos()}
	}
	raws, err := elements(path, list)
	if err != nil {
		return nil, err
	}

	d := &decoder{path: path, byName: make(map[string]Declaration)}
	sum := sha256.Sum256(data)
	s := &Schema{Path: path, Digest: hex.EncodeToString(sum[:])}

	// Headers first so that fields may refer to declarations that come later
	// in the document.
	for _, rv := range raws {
		decl, err := d.header(rv)
		if err != nil {
			return nil, err
		}
		q := decl.Info().QualifiedName()
		if _, dup := d.byName[q]; dup {
			return nil, &UnsupportedError{
				Code: ErrCodeDuplicate, Path: path, Decl: q, Pos: rv.Pos(),
				Message: "declared more than once",
			}
		}
		d.byName[q] = decl
		s.Declarations = append(s.Declarations, decl)
	}

	for i, rv := range raws {
		st, ok := s.Declarations[i].(*Struct)
		if !ok {
			continue
		}
		if err := d.fields(rv, st); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func compile(path string, data []byte) (cue.Value, error) {
	ctx := cuecontext.New()

	var v cue.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml":
		f, err := cueyaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, cueError(path, err)
		}
		v = ctx.BuildFile(f)
	default:
		expr, err := cuejson.Extract(path, data)
		if err != nil {
			return cue.Value{}, cueError(path, err)
		}
		v = ctx.BuildExpr(expr)
	}

	if err := v.Err(); err != nil {
		return cue.Value{}, cueError(path, err)
	}
	return v, nil
}

type decoder struct {
	path   string
	byName map[string]Declaration

	// foreign holds declarations referenced by user types but not declared
	// at the top level of this document.
	foreign map[string]Declaration
}

func (d *decoder) header(v cue.Value) (Declaration, error) {
	tag, err := d.str(v, "tag")
	if err != nil {
		return nil, err
	}
	name, err := d.str(v, "declName")
	if err != nil {
		return nil, err
	}
	name = ident(name)
	if name == "" {
		return nil, d.structure(v, "declName is empty")
	}
	ns, err := d.namespace(v, name)
	if err != nil {
		return nil, err
	}
	info := DeclInfo{Name: name, Namespace: ns, Pos: v.Pos()}

	switch tag {
	case "Struct":
		if n := d.count(v, "declParams"); n != 0 {
			return nil, d.unsupported(ErrCodeStructShape, info.QualifiedName(), "", v, "struct with type parameters")
		}
		if n := d.count(v, "declAttributes"); n != 0 {
			return nil, d.unsupported(ErrCodeStructShape, info.QualifiedName(), "", v, "struct with attributes")
		}
		if base := v.LookupPath(cue.ParsePath("structBase")); base.Exists() && base.Kind() != cue.NullKind {
			return nil, d.unsupported(ErrCodeStructShape, info.QualifiedName(), "", base, "struct with a base struct")
		}
		return &Struct{DeclInfo: info}, nil

	case "Enum":
		if n := d.count(v, "declAttributes"); n != 0 {
			return nil, d.unsupported(ErrCodeEnumShape, info.QualifiedName(), "", v, "enum with attributes")
		}
		en := &Enum{DeclInfo: info}
		if err := d.constants(v, en); err != nil {
			return nil, err
		}
		return en, nil

	default:
		return nil, d.unsupported(ErrCodeDeclTag, info.QualifiedName(), "", v, fmt.Sprintf("unsupported declaration tag %q", tag))
	}
}

func (d *decoder) namespace(v cue.Value, name string) ([]string, error) {
	list := v.LookupPath(cue.ParsePath("declNamespaces"))
	if !list.Exists() {
		return nil, nil
	}
	entries, err := elements(d.path, list)
	if err != nil {
		return nil, err
	}
	switch len(entries) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, d.unsupported(ErrCodeNamespace, name, "", list, "more than one entry in declNamespaces")
	}

	segs, err := elements(d.path, entries[0].LookupPath(cue.ParsePath("name")))
	if err != nil {
		return nil, err
	}
	ns := make([]string, 0, len(segs))
	for _, sv := range segs {
		seg, err := sv.String()
		if err != nil {
			return nil, cueError(d.path, err)
		}
		ns = append(ns, ident(seg))
	}
	return ns, nil
}

func (d *decoder) constants(v cue.Value, en *Enum) error {
	list := v.LookupPath(cue.ParsePath("enumConstants"))
	items, err := elements(d.path, list)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return d.unsupported(ErrCodeEnumShape, en.QualifiedName(), "", v, "enum has no constants")
	}

	seen := make(map[string]bool, len(items))
	next := int64(0)
	for _, cv := range items {
		name, err := d.str(cv, "constantName")
		if err != nil {
			return err
		}
		name = ident(name)
		if seen[name] {
			return d.unsupported(ErrCodeEnumShape, en.QualifiedName(), name, cv, "duplicate constant")
		}
		seen[name] = true

		value := next
		if raw := cv.LookupPath(cue.ParsePath("constantValue")); raw.Exists() && raw.Kind() != cue.NullKind {
			value, err = raw.Int64()
			if err != nil {
				return cueError(d.path, err)
			}
		}
		if value < math.MinInt32 || value > math.MaxInt32 {
			return d.unsupported(ErrCodeEnumShape, en.QualifiedName(), name, cv, fmt.Sprintf("value %d does not fit in int32", value))
		}
		en.Constants = append(en.Constants, Constant{Name: name, Value: value})
		next = value + 1
	}
	return nil
}

func (d *decoder) fields(v cue.Value, st *Struct) error {
	list := v.LookupPath(cue.ParsePath("structFields"))
	if !list.Exists() {
		return nil
	}
	items, err := elements(d.path, list)
	if err != nil {
		return err
	}

	qname := st.QualifiedName()
	byOrdinal := make(map[uint16]bool, len(items))
	byName := make(map[string]bool, len(items))
	for _, fv := range items {
		f, err := d.field(fv, qname)
		if err != nil {
			return err
		}
		if byOrdinal[f.Ordinal] {
			return d.unsupported(ErrCodeDuplicate, qname, f.Name, fv, fmt.Sprintf("duplicate ordinal %d", f.Ordinal))
		}
		if byName[f.Name] {
			return d.unsupported(ErrCodeDuplicate, qname, f.Name, fv, "duplicate field name")
		}
		byOrdinal[f.Ordinal] = true
		byName[f.Name] = true
		st.Fields = append(st.Fields, f)
	}
	return nil
}

var modifiers = map[string]Modifier{
	"Optional":         Optional,
	"Required":         Required,
	"RequiredOptional": RequiredOptional,
}

func (d *decoder) field(v cue.Value, qname string) (Field, error) {
	var f Field
	f.Pos = v.Pos()

	name, err := d.str(v, "fieldName")
	if err != nil {
		return f, err
	}
	f.Name = ident(name)

	ordv := v.LookupPath(cue.ParsePath("fieldOrdinal"))
	ord, err := ordv.Int64()
	if err != nil {
		return f, d.structure(v, fmt.Sprintf("%s.%s: fieldOrdinal: %v", qname, f.Name, err))
	}
	if ord < 0 || ord > math.MaxUint16 {
		return f, d.structure(ordv, fmt.Sprintf("%s.%s: ordinal %d out of range", qname, f.Name, ord))
	}
	f.Ordinal = uint16(ord)

	f.Modifier = Optional
	if mv := v.LookupPath(cue.ParsePath("fieldModifier")); mv.Exists() {
		s, err := mv.String()
		if err != nil {
			return f, cueError(d.path, err)
		}
		m, ok := modifiers[s]
		if !ok {
			return f, d.structure(mv, fmt.Sprintf("%s.%s: unknown modifier %q", qname, f.Name, s))
		}
		f.Modifier = m
	}

	tv := v.LookupPath(cue.ParsePath("fieldType"))
	if !tv.Exists() {
		return f, d.structure(v, fmt.Sprintf("%s.%s: missing fieldType", qname, f.Name))
	}
	f.Type, err = d.typeExpr(tv, qname, f.Name)
	if err != nil {
		return f, err
	}

	if dv := v.LookupPath(cue.ParsePath("fieldDefault")); dv.Exists() && dv.Kind() != cue.NullKind {
		f.Default, err = d.defaultValue(dv, f.Type, qname, f.Name)
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

func (d *decoder) typeExpr(v cue.Value, qname, field string) (TypeExpr, error) {
	if v.Kind() == cue.StringKind {
		name, _ := v.String()
		kind, ok := ParsePrimitive(name)
		if !ok {
			return nil, d.unsupported(ErrCodePrimitive, qname, field, v, fmt.Sprintf("unknown field type %q", name))
		}
		return Primitive{Kind: kind}, nil
	}

	tag, err := d.str(v, "type")
	if err != nil {
		return nil, err
	}
	switch tag {
	case "user":
		decl, err := d.resolve(v.LookupPath(cue.ParsePath("declaration")))
		if err != nil {
			return nil, err
		}
		return UserType{Decl: decl}, nil

	case "vector":
		elem, err := d.typeExpr(v.LookupPath(cue.ParsePath("element")), qname, field)
		if err != nil {
			return nil, err
		}
		return List{Elem: elem}, nil

	case "map":
		key, err := d.typeExpr(v.LookupPath(cue.ParsePath("key")), qname, field)
		if err != nil {
			return nil, err
		}
		elem, err := d.typeExpr(v.LookupPath(cue.ParsePath("element")), qname, field)
		if err != nil {
			return nil, err
		}
		return Map{Key: key, Elem: elem}, nil

	default:
		return nil, d.unsupported(ErrCodeTypeTag, qname, field, v, fmt.Sprintf("unsupported fieldType %q", tag))
	}
}

// resolve maps an embedded declaration copy onto the shared Declaration with
// the same qualified name. A struct declared only inside a user type gets its
// fields from the first copy seen.
func (d *decoder) resolve(v cue.Value) (Declaration, error) {
	if !v.Exists() {
		return nil, d.structure(v, "user type without declaration")
	}
	decl, err := d.header(v)
	if err != nil {
		return nil, err
	}
	q := decl.Info().QualifiedName()
	if known, ok := d.byName[q]; ok {
		return known, nil
	}
	if known, ok := d.foreign[q]; ok {
		return known, nil
	}
	if d.foreign == nil {
		d.foreign = make(map[string]Declaration)
	}
	d.foreign[q] = decl
	if st, ok := decl.(*Struct); ok {
		if err := d.fields(v, st); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (d *decoder) defaultValue(v cue.Value, t TypeExpr, qname, field string) (*Default, error) {
	kind, err := d.str(v, "type")
	if err != nil {
		return nil, err
	}
	val := v.LookupPath(cue.ParsePath("value"))
	bad := func(msg string) error {
		return d.unsupported(ErrCodeDefault, qname, field, v, msg)
	}

	switch kind {
	case "enum":
		en, ok := AsEnum(t)
		if !ok {
			return nil, bad(fmt.Sprintf("enum default on %s field", t))
		}
		name, err := val.String()
		if err != nil {
			return nil, cueError(d.path, err)
		}
		name = ident(name)
		if _, ok := en.Constant(name); !ok {
			return nil, bad(fmt.Sprintf("enum %s has no constant %s", en.Name, name))
		}
		return &Default{Kind: DefaultEnum, Text: name}, nil

	case "bool":
		p, ok := t.(Primitive)
		if !ok || p.Kind != Bool {
			return nil, bad(fmt.Sprintf("bool default on %s field", t))
		}
		b, err := val.Bool()
		if err != nil {
			return nil, cueError(d.path, err)
		}
		return &Default{Kind: DefaultBool, Text: strconv.FormatBool(b)}, nil

	case "integer", "float":
		p, ok := t.(Primitive)
		if !ok || !(p.Kind.IsInteger() || p.Kind.IsFloat()) {
			return nil, bad(fmt.Sprintf("numeric default on %s field", t))
		}
		if p.Kind.IsFloat() {
			return floatDefault(val, p.Kind, bad)
		}
		if kind == "float" {
			return nil, bad(fmt.Sprintf("float default on %s field", t))
		}
		return integerDefault(val, p.Kind, bad)

	default:
		return nil, bad(fmt.Sprintf("unsupported fieldDefault %q", kind))
	}
}

func integerDefault(v cue.Value, k PrimitiveKind, bad func(string) error) (*Default, error) {
	switch k {
	case UInt8, UInt16, UInt32, UInt64:
		u, err := v.Uint64()
		if err != nil {
			return nil, bad(fmt.Sprintf("default out of range for %s", k))
		}
		limits := map[PrimitiveKind]uint64{UInt8: math.MaxUint8, UInt16: math.MaxUint16, UInt32: math.MaxUint32, UInt64: math.MaxUint64}
		if u > limits[k] {
			return nil, bad(fmt.Sprintf("default %d out of range for %s", u, k))
		}
		return &Default{Kind: DefaultInteger, Text: strconv.FormatUint(u, 10)}, nil
	default:
		i, err := v.Int64()
		if err != nil {
			return nil, bad(fmt.Sprintf("default out of range for %s", k))
		}
		limits := map[PrimitiveKind][2]int64{
			Int8:  {math.MinInt8, math.MaxInt8},
			Int16: {math.MinInt16, math.MaxInt16},
			Int32: {math.MinInt32, math.MaxInt32},
			Int64: {math.MinInt64, math.MaxInt64},
		}
		if r := limits[k]; i < r[0] || i > r[1] {
			return nil, bad(fmt.Sprintf("default %d out of range for %s", i, k))
		}
		return &Default{Kind: DefaultInteger, Text: strconv.FormatInt(i, 10)}, nil
	}
}

func floatDefault(v cue.Value, k PrimitiveKind, bad func(string) error) (*Default, error) {
	var f float64
	if v.Kind() == cue.IntKind {
		i, err := v.Int64()
		if err != nil {
			return nil, bad(fmt.Sprintf("default out of range for %s", k))
		}
		f = float64(i)
	} else {
		var err error
		if f, err = v.Float64(); err != nil {
			return nil, bad(fmt.Sprintf("default out of range for %s", k))
		}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || (k == Float && math.Abs(f) > math.MaxFloat32) {
		return nil, bad(fmt.Sprintf("default out of range for %s", k))
	}
	return &Default{Kind: DefaultFloat, Text: FormatFloat(f)}, nil
}

// FormatFloat spells f as a literal that always reads back as floating point:
// the result carries a decimal point or an exponent.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (d *decoder) str(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", d.structure(v, fmt.Sprintf("missing %s", field))
	}
	s, err := fv.String()
	if err != nil {
		return "", cueError(d.path, err)
	}
	return s, nil
}

// count returns the length of an optional list field; absent and null count
// as empty.
func (d *decoder) count(v cue.Value, field string) int {
	lv := v.LookupPath(cue.ParsePath(field))
	if !lv.Exists() || lv.Kind() == cue.NullKind {
		return 0
	}
	n, err := lv.Len().Int64()
	if err != nil {
		return 0
	}
	return int(n)
}

func (d *decoder) structure(v cue.Value, msg string) error {
	return &LoadError{Code: ErrCodeStructure, Path: d.path, Message: msg, Pos: v.Pos()}
}

func (d *decoder) unsupported(code, decl, field string, v cue.Value, msg string) error {
	return &UnsupportedError{Code: code, Path: d.path, Decl: decl, Field: field, Message: msg, Pos: v.Pos()}
}

func elements(path string, v cue.Value) ([]cue.Value, error) {
	if !v.Exists() || v.Kind() == cue.NullKind {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, cueError(path, err)
	}
	var out []cue.Value
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out, nil
}

func ident(s string) string {
	return norm.NFC.String(s)
}
