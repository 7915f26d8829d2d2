package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/bondgen/internal/schema"
)

// Kind names one of the three per-schema artifacts.
type Kind int

const (
	KindTypes Kind = iota
	KindWriters
	KindReaders
)

// Kinds lists the per-schema artifacts in emission order.
var Kinds = []Kind{KindTypes, KindWriters, KindReaders}

func (k Kind) String() string {
	switch k {
	case KindTypes:
		return "types"
	case KindWriters:
		return "writers"
	case KindReaders:
		return "readers"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Artifact is one generated file, fully rendered.
type Artifact struct {
	Name    string
	Content []byte
}

// Input is what a Target sees for one schema document.
type Input struct {
	Schema *schema.Schema

	// Decls is the declaration list stable-sorted by namespace.
	Decls []schema.Declaration

	// Source is the document base name shown in banners.
	Source string

	// Stem is Source without its extension; artifact names derive from it.
	Stem string
}

// NewInput prepares s for emission.
func NewInput(s *schema.Schema) *Input {
	source := filepath.Base(s.Path)
	return &Input{
		Schema: s,
		Decls:  schema.SortByNamespace(s.Declarations),
		Source: source,
		Stem:   strings.TrimSuffix(source, filepath.Ext(source)),
	}
}

// Structs returns the sorted struct declarations.
func (in *Input) Structs() []*schema.Struct {
	var out []*schema.Struct
	for _, d := range in.Decls {
		if st, ok := d.(*schema.Struct); ok {
			out = append(out, st)
		}
	}
	return out
}

// Target renders artifacts for one output language.
type Target interface {
	// Name is the value accepted by --target.
	Name() string

	// ArtifactName returns the file name of a per-schema artifact.
	ArtifactName(stem string, kind Kind) string

	// Emit renders one per-schema artifact.
	Emit(kind Kind, in *Input) ([]byte, error)

	// Constants renders the shared wire constants artifact.
	Constants(c *schema.Constants) (Artifact, error)
}

// Generate renders the three artifacts of s. On error no artifact is
// returned.
func Generate(s *schema.Schema, t Target) ([]Artifact, error) {
	in := NewInput(s)

	arts := make([]Artifact, 0, len(Kinds))
	for _, k := range Kinds {
		content, err := t.Emit(k, in)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", t.Name(), k, err)
		}
		arts = append(arts, Artifact{Name: t.ArtifactName(in.Stem, k), Content: content})
	}
	return arts, nil
}
