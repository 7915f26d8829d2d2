// Package cpp renders schemas as C++ headers for the bond_lite runtime.
//
// For a schema file X the target produces:
//
//	X_types.hpp    value types with inline defaults and operator==/!=
//	X_writers.hpp  bond_lite::Serialize overloads, one per struct
//	X_readers.hpp  bond_lite::Deserialize overloads, one per struct
//
// plus BondConstTypes.hpp, shared by every schema, holding the wire tag
// enumerations. Writers and readers are templates over the protocol writer
// and reader, so the same code drives Compact Binary or any other protocol
// exposing the same method set.
package cpp
