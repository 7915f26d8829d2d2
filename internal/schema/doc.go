// Package schema provides the declaration model consumed by the generators.
//
// A schema document is a list of struct and enum declarations, each living in
// a namespace path. Documents are read through CUE, so the same shape can be
// supplied as Bond JSON (the output of `gbc schema`), CUE or YAML.
//
// Declarations are immutable after loading. Generators only read them; nothing
// in this package keeps state between documents.
//
// Key constraints:
//   - Structs are flat: no type parameters, no attributes, no base struct.
//   - Field ordinals are unique per struct and are the only identity on the wire.
//   - Type expressions are a closed set: Primitive, UserType, List, Map.
package schema
