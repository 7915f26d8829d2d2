// Package codegen is the target-independent half of the generator.
//
// A Target turns one sorted declaration list into three artifacts (types,
// writers, readers). Generate drives a Target over a loaded schema and keeps
// everything in memory; WriteArtifacts then replaces the files on disk in one
// step, so a failed schema never leaves a truncated artifact behind.
//
// The helpers here are shared by every target:
//
//	LineWriter      indent-aware line builder
//	NamespaceStack  open/close transitions between namespace paths
//	WireTag         symbolic wire tag of a type expression
//	Presence        rule deciding whether a field is written or omitted
//	Banner          deterministic provenance header
package codegen
