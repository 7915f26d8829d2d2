// Package golang renders Go source for a schema: value types, Serialize and
// Deserialize functions over the pkg/compactbinary protocol interfaces, and a
// constants file holding the wire tags. Namespaces are flattened into a
// single Go package.
package golang
