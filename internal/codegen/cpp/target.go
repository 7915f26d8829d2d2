package cpp

import (
	"fmt"
	"path/filepath"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

// ConstantsHeader is the file name of the shared wire constants header.
const ConstantsHeader = "BondConstTypes.hpp"

// Target is the C++ code generator.
type Target struct{}

// New returns the C++ target.
func New() *Target {
	return &Target{}
}

func (*Target) Name() string { return "cpp" }

func (*Target) ArtifactName(stem string, kind codegen.Kind) string {
	return fmt.Sprintf("%s_%s.hpp", stem, kind)
}

func (t *Target) Emit(kind codegen.Kind, in *codegen.Input) ([]byte, error) {
	w := codegen.NewLineWriter("    ")
	switch kind {
	case codegen.KindTypes:
		header(w, in.Source, "<cstdint>", "<string>", "<vector>", "<map>")
		emitTypes(w, in.Decls)
	case codegen.KindWriters:
		header(w, in.Source, quote(ConstantsHeader), quote(t.ArtifactName(in.Stem, codegen.KindTypes)))
		emitWriters(w, in.Structs())
	case codegen.KindReaders:
		header(w, in.Source, quote(ConstantsHeader), quote(t.ArtifactName(in.Stem, codegen.KindTypes)))
		emitReaders(w, in.Structs())
	default:
		return nil, fmt.Errorf("unknown artifact kind %v", kind)
	}
	return w.Bytes(), nil
}

// Constants renders BondConstTypes.hpp.
func (*Target) Constants(c *schema.Constants) (codegen.Artifact, error) {
	w := codegen.NewLineWriter("    ")
	header(w, filepath.Base(c.Path))
	w.Blank()
	w.Line(0, "namespace bond_lite {")
	for _, en := range c.Enums {
		w.Blank()
		enumBody(w, en)
	}
	w.Line(0, "} // namespace bond_lite")
	return codegen.Artifact{Name: ConstantsHeader, Content: w.Bytes()}, nil
}

func header(w *codegen.LineWriter, source string, includes ...string) {
	codegen.Banner(w, source)
	w.Blank()
	w.Line(0, "#pragma once")
	for _, inc := range includes {
		w.Line(0, "#include %s", inc)
	}
}

func quote(name string) string {
	return `"` + name + `"`
}

// scopes writes C++ namespace blocks for a NamespaceStack.
type scopes struct {
	w *codegen.LineWriter
}

func (s scopes) OpenScopes(names []string) {
	s.w.Blank()
	for _, n := range names {
		s.w.Line(0, "namespace %s {", n)
	}
	s.w.Blank()
}

func (s scopes) CloseScope(name string) {
	s.w.Line(0, "} // namespace %s", name)
}
