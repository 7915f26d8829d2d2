package schema

import "fmt"

// TypeExpr is a sealed interface over the four type expression variants:
// Primitive, UserType, List and Map.
type TypeExpr interface {
	fmt.Stringer
	typeExpr()
}

// PrimitiveKind enumerates the scalar types a field may have.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float
	Double
	String
)

var primitiveNames = [...]string{
	Bool:   "bool",
	Int8:   "int8",
	Int16:  "int16",
	Int32:  "int32",
	Int64:  "int64",
	UInt8:  "uint8",
	UInt16: "uint16",
	UInt32: "uint32",
	UInt64: "uint64",
	Float:  "float",
	Double: "double",
	String: "string",
}

// ParsePrimitive maps a schema type name to its kind.
func ParsePrimitive(name string) (PrimitiveKind, bool) {
	for k, n := range primitiveNames {
		if n == name {
			return PrimitiveKind(k), true
		}
	}
	return 0, false
}

// String returns the schema spelling of the kind.
func (k PrimitiveKind) String() string {
	if k < 0 || int(k) >= len(primitiveNames) {
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
	return primitiveNames[k]
}

// IsInteger reports whether k is one of the signed or unsigned integer kinds.
func (k PrimitiveKind) IsInteger() bool {
	return k >= Int8 && k <= UInt64
}

// IsFloat reports whether k is float or double.
func (k PrimitiveKind) IsFloat() bool {
	return k == Float || k == Double
}

// Primitive is a scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) typeExpr() {}

func (p Primitive) String() string {
	return p.Kind.String()
}

// UserType refers to a struct or enum declaration.
type UserType struct {
	Decl Declaration
}

func (UserType) typeExpr() {}

func (u UserType) String() string {
	return u.Decl.Info().Name
}

// List is a sequence container (Bond vector).
type List struct {
	Elem TypeExpr
}

func (List) typeExpr() {}

func (l List) String() string {
	return fmt.Sprintf("vector<%s>", l.Elem)
}

// Map is an associative container.
type Map struct {
	Key  TypeExpr
	Elem TypeExpr
}

func (Map) typeExpr() {}

func (m Map) String() string {
	return fmt.Sprintf("map<%s, %s>", m.Key, m.Elem)
}

// AsEnum returns the enum a type refers to, if any.
func AsEnum(t TypeExpr) (*Enum, bool) {
	if u, ok := t.(UserType); ok {
		en, ok := u.Decl.(*Enum)
		return en, ok
	}
	return nil, false
}

// AsStruct returns the struct a type refers to, if any.
func AsStruct(t TypeExpr) (*Struct, bool) {
	if u, ok := t.(UserType); ok {
		st, ok := u.Decl.(*Struct)
		return st, ok
	}
	return nil, false
}
