package golang

import (
	"fmt"
	"go/format"
	"go/token"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

// DefaultRuntime is the import path of the protocol runtime generated code
// depends on.
const DefaultRuntime = "github.com/roach88/bondgen/pkg/compactbinary"

// ConstantsFile is the file name of the shared wire constants artifact.
const ConstantsFile = "bond_const.go"

// DefaultPackage is the package clause used when none is configured.
const DefaultPackage = "bond"

// Options configures the Go target.
type Options struct {
	// Package is the package clause of every artifact, the constants file
	// included. Empty selects DefaultPackage.
	Package string

	// Runtime is the import path of the protocol runtime. Empty selects
	// DefaultRuntime.
	Runtime string
}

// Target is the Go code generator.
type Target struct {
	opts Options
}

// New returns the Go target.
func New(opts Options) *Target {
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	return &Target{opts: opts}
}

func (*Target) Name() string { return "go" }

func (*Target) ArtifactName(stem string, kind codegen.Kind) string {
	return fmt.Sprintf("%s_%s.go", stem, kind)
}

func (t *Target) Emit(kind codegen.Kind, in *codegen.Input) ([]byte, error) {
	if err := checkNames(in); err != nil {
		return nil, err
	}

	f := newFile(t.opts.Runtime)
	switch kind {
	case codegen.KindTypes:
		emitTypes(f, in.Decls)
	case codegen.KindWriters:
		emitWriters(f, in.Structs())
	case codegen.KindReaders:
		emitReaders(f, in.Structs())
	default:
		return nil, fmt.Errorf("unknown artifact kind %v", kind)
	}
	return f.render(in.Source, t.opts.Package)
}

// Constants renders bond_const.go. Each enumeration becomes a block of
// untyped constants so the tags convert to uint8 at the call site.
func (t *Target) Constants(c *schema.Constants) (codegen.Artifact, error) {
	f := newFile(t.opts.Runtime)
	for _, en := range c.Enums {
		f.body.Blank()
		f.body.Line(0, "// %s values.", en.Name)
		f.body.Line(0, "const (")
		for _, k := range en.Constants {
			f.body.Line(1, "%s = %d", k.Name, k.Value)
		}
		f.body.Line(0, ")")
	}

	content, err := f.render(filepath.Base(c.Path), t.opts.Package)
	if err != nil {
		return codegen.Artifact{}, err
	}
	return codegen.Artifact{Name: ConstantsFile, Content: content}, nil
}

// PackageFor returns the package clause for files written to dir: its base
// name lower-cased, with dashes and dots turned into underscores. It returns
// DefaultPackage when that is not an identifier.
func PackageFor(dir string) string {
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return unicode.ToLower(r)
	}, filepath.Base(dir))
	if name == "_" || !token.IsIdentifier(name) {
		return DefaultPackage
	}
	return name
}

// file collects the body of one Go source file and the imports it uses.
type file struct {
	body    *codegen.LineWriter
	imports map[string]bool
	runtime string
}

func newFile(runtime string) *file {
	return &file{
		body:    codegen.NewLineWriter("\t"),
		imports: make(map[string]bool),
		runtime: runtime,
	}
}

func (f *file) use(imp string) {
	f.imports[imp] = true
}

// rt qualifies name with the runtime package and records the import.
func (f *file) rt(name string) string {
	f.use(f.runtime)
	return path.Base(f.runtime) + "." + name
}

func (f *file) render(source, pkg string) ([]byte, error) {
	w := codegen.NewLineWriter("\t")
	w.Line(0, "// Code generated by %s. DO NOT EDIT.", codegen.ToolName)
	w.Blank()
	codegen.Banner(w, source)
	w.Blank()
	w.Line(0, "package %s", pkg)

	var std []string
	for imp := range f.imports {
		if imp != f.runtime {
			std = append(std, imp)
		}
	}
	slices.Sort(std)

	if len(f.imports) > 0 {
		w.Blank()
		w.Line(0, "import (")
		for _, imp := range std {
			w.Line(1, "%q", imp)
		}
		if f.imports[f.runtime] {
			if len(std) > 0 {
				w.Blank()
			}
			w.Line(1, "%q", f.runtime)
		}
		w.Line(0, ")")
	}

	src := append(w.Bytes(), f.body.Bytes()...)
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}
