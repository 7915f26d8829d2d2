package schema

import (
	"strings"

	"cuelang.org/go/cue/token"
)

// Declaration is a sealed interface implemented by *Struct and *Enum only.
// Callers switch on the concrete type.
type Declaration interface {
	Info() *DeclInfo
	declaration()
}

// DeclInfo holds what every declaration has in common.
type DeclInfo struct {
	Name      string
	Namespace []string
	Pos       token.Pos
}

// Info returns the shared declaration header.
func (d *DeclInfo) Info() *DeclInfo {
	return d
}

// QualifiedName joins the namespace path and the name with dots.
func (d *DeclInfo) QualifiedName() string {
	if len(d.Namespace) == 0 {
		return d.Name
	}
	return strings.Join(d.Namespace, ".") + "." + d.Name
}

// Struct is a flat struct declaration.
type Struct struct {
	DeclInfo
	Fields []Field
}

func (*Struct) declaration() {}

// Field returns the field with the given ordinal.
func (s *Struct) Field(ordinal uint16) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Ordinal == ordinal {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Enum is an enumeration. On the wire every enum is a 4-byte signed integer.
type Enum struct {
	DeclInfo
	Constants []Constant
}

func (*Enum) declaration() {}

// Constant returns the constant with the given name.
func (e *Enum) Constant(name string) (Constant, bool) {
	for _, c := range e.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return Constant{}, false
}

// Constant is one enumerator.
type Constant struct {
	Name  string
	Value int64
}

// Modifier is the declared field modifier. It is informational only: presence
// on the wire is always derived from the field value.
type Modifier string

const (
	Optional         Modifier = "optional"
	Required         Modifier = "required"
	RequiredOptional Modifier = "requiredoptional"
)

// Field is one struct member.
type Field struct {
	Ordinal  uint16
	Name     string
	Modifier Modifier
	Type     TypeExpr
	Default  *Default // nil when the schema gives none
	Pos      token.Pos
}

// DefaultKind tells how a Default literal is spelled.
type DefaultKind int

const (
	DefaultInteger DefaultKind = iota
	DefaultFloat
	DefaultBool
	DefaultEnum
)

// Default is an explicit default value. Text holds the canonical spelling:
// a decimal integer, a float literal, "true"/"false" or an enum constant name.
type Default struct {
	Kind DefaultKind
	Text string
}

// Schema is one loaded schema document.
type Schema struct {
	// Path is the document path as given by the caller.
	Path string

	// Digest is the hex sha256 of the raw document bytes.
	Digest string

	Declarations []Declaration
}

// Structs returns the struct declarations in document order.
func (s *Schema) Structs() []*Struct {
	var out []*Struct
	for _, d := range s.Declarations {
		if st, ok := d.(*Struct); ok {
			out = append(out, st)
		}
	}
	return out
}

// Enums returns the enum declarations in document order.
func (s *Schema) Enums() []*Enum {
	var out []*Enum
	for _, d := range s.Declarations {
		if en, ok := d.(*Enum); ok {
			out = append(out, en)
		}
	}
	return out
}
