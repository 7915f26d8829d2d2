package codegen

import (
	"fmt"
	"strings"

	"github.com/roach88/bondgen/internal/schema"
)

// WireTag returns the symbolic wire tag for t. Enums travel as BT_INT32.
func WireTag(t schema.TypeExpr) string {
	switch t := t.(type) {
	case schema.Primitive:
		return "BT_" + strings.ToUpper(t.Kind.String())
	case schema.UserType:
		switch t.Decl.(type) {
		case *schema.Struct:
			return "BT_STRUCT"
		case *schema.Enum:
			return "BT_INT32"
		}
	case schema.List:
		return "BT_LIST"
	case schema.Map:
		return "BT_MAP"
	}
	panic(fmt.Sprintf("codegen: unexpected type expression %T", t))
}

// PresenceKind selects the rule that decides whether a field is written.
type PresenceKind int

const (
	// PresenceNotDefault writes primitives whose value differs from the
	// field default.
	PresenceNotDefault PresenceKind = iota

	// PresenceNonEmpty writes containers and strings holding at least one
	// element.
	PresenceNonEmpty

	// PresenceAlways writes enums and nested structs unconditionally.
	PresenceAlways
)

func (k PresenceKind) String() string {
	switch k {
	case PresenceNotDefault:
		return "not-default"
	case PresenceNonEmpty:
		return "non-empty"
	case PresenceAlways:
		return "always"
	}
	return fmt.Sprintf("PresenceKind(%d)", int(k))
}

// Presence returns the presence rule for a field of type t. A string with no
// explicit default behaves like a container.
func Presence(t schema.TypeExpr) PresenceKind {
	switch t := t.(type) {
	case schema.Primitive:
		if t.Kind == schema.String {
			return PresenceNonEmpty
		}
		return PresenceNotDefault
	case schema.UserType:
		return PresenceAlways
	case schema.List, schema.Map:
		return PresenceNonEmpty
	}
	panic(fmt.Sprintf("codegen: unexpected type expression %T", t))
}
