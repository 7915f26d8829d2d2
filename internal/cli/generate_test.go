package cli

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/codegen/cpp"
	"github.com/roach88/bondgen/internal/schema"
	"github.com/roach88/bondgen/internal/testutil"
)

func TestGenerateCpp(t *testing.T) {
	out := t.TempDir()
	cmd := NewGenerateCommand(&RootOptions{Format: "text"})

	output, err := execute(cmd, testutil.SchemaPath(t, "shapes.json"), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, output, "shapes_types.hpp, shapes_writers.hpp, shapes_readers.hpp")
	assert.Contains(t, output, "1 generated, 0 unchanged, 0 failed")

	arts, err := codegen.Generate(testutil.LoadSchema(t, "shapes.json"), cpp.New())
	require.NoError(t, err)
	for _, a := range arts {
		got, err := os.ReadFile(filepath.Join(out, a.Name))
		require.NoError(t, err)
		assert.Equal(t, string(a.Content), string(got), a.Name)
	}
	assert.FileExists(t, filepath.Join(out, cpp.ConstantsHeader))
}

func TestGenerateGo(t *testing.T) {
	out := t.TempDir()
	cmd := NewGenerateCommand(&RootOptions{Format: "text"})

	_, err := execute(cmd, testutil.SchemaPath(t, "shapes.json"), "-o", out, "-t", "go", "--go-package", "model")
	require.NoError(t, err)

	for _, name := range []string{"shapes_types.go", "shapes_writers.go", "shapes_readers.go", "bond_const.go"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "package model", name)
	}
}

func TestGenerateGoDefaultPackage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wire")
	cmd := NewGenerateCommand(&RootOptions{Format: "text"})

	_, err := execute(cmd, testutil.SchemaPath(t, "shapes.json"), testutil.SchemaPath(t, "nested.json"), "-o", out, "-t", "go")
	require.NoError(t, err)

	names, err := filepath.Glob(filepath.Join(out, "*.go"))
	require.NoError(t, err)
	require.Len(t, names, 7)

	fset := token.NewFileSet()
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, nil, parser.PackageClauseOnly)
		require.NoError(t, err, name)
		assert.Equal(t, "wire", f.Name.Name, name)
	}
}

func TestGenerateContinuesAfterFailedFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	bad := writeFile(t, dir, "bad.json", unsupportedDoc)
	good := testutil.SchemaPath(t, "shapes.json")

	cmd := NewGenerateCommand(&RootOptions{Format: "json"})
	output, err := execute(cmd, bad, good, "-o", out)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 schema document(s) failed")

	status, result, cliErr := decodeResponse[GenerateResult](t, output)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, schema.ErrCodeTypeTag, cliErr.Code)

	require.Len(t, result.Files, 2)
	assert.Equal(t, StatusFailed, result.Files[0].Status)
	assert.Equal(t, schema.ErrCodeTypeTag, result.Files[0].Error.Code)
	assert.Contains(t, result.Files[0].Error.Message, "bad.json")
	assert.Equal(t, StatusGenerated, result.Files[1].Status)
	assert.NotEmpty(t, result.RunID)

	assert.NoFileExists(t, filepath.Join(out, "bad_types.hpp"))
	assert.FileExists(t, filepath.Join(out, "shapes_types.hpp"))
}

func TestGenerateTextReportsFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", unsupportedDoc)

	cmd := NewGenerateCommand(&RootOptions{Format: "text"})
	output, err := execute(cmd, bad, "-o", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, output, "✗ "+bad)
	assert.Contains(t, output, "E214: ")
	assert.Contains(t, output, "0 generated, 0 unchanged, 1 failed")
}

func TestGenerateSkipsUnchangedInputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	db := filepath.Join(dir, "manifest.db")
	input := testutil.SchemaPath(t, "shapes.json")

	run := func(extra ...string) GenerateResult {
		t.Helper()
		cmd := NewGenerateCommand(&RootOptions{Format: "json"})
		output, err := execute(cmd, append([]string{input, "-o", out, "--cache", db}, extra...)...)
		require.NoError(t, err)
		_, result, _ := decodeResponse[GenerateResult](t, output)
		require.Len(t, result.Files, 1)
		return result
	}

	first := run()
	assert.Equal(t, StatusGenerated, first.Files[0].Status)

	second := run()
	assert.Equal(t, StatusUnchanged, second.Files[0].Status)
	assert.NotEqual(t, first.RunID, second.RunID)

	forced := run("--force")
	assert.Equal(t, StatusGenerated, forced.Files[0].Status)

	// A hand-edited artifact is regenerated.
	require.NoError(t, os.WriteFile(filepath.Join(out, "shapes_readers.hpp"), []byte("edited"), 0o644))
	edited := run()
	assert.Equal(t, StatusGenerated, edited.Files[0].Status)

	// Switching target is a different generation.
	cmd := NewGenerateCommand(&RootOptions{Format: "json"})
	output, err := execute(cmd, input, "-o", out, "--cache", db, "-t", "go")
	require.NoError(t, err)
	_, goRun, _ := decodeResponse[GenerateResult](t, output)
	assert.Equal(t, StatusGenerated, goRun.Files[0].Status)
}

func TestGenerateLogsWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cmd := NewGenerateCommand(&RootOptions{Format: "json", Logger: zap.New(core)})

	output, err := execute(cmd, testutil.SchemaPath(t, "nested.json"), "-o", t.TempDir())
	require.NoError(t, err)
	_, result, _ := decodeResponse[GenerateResult](t, output)

	entries := logs.FilterMessage("generated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, result.RunID, fields["run_id"])
	assert.Equal(t, "cpp", fields["target"])
	assert.Equal(t, testutil.SchemaPath(t, "nested.json"), fields["input"])
}

func TestGenerateConstantsFailureIsFatal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	cmd := NewGenerateCommand(&RootOptions{Format: "json"})

	output, err := execute(cmd, testutil.SchemaPath(t, "shapes.json"), "-o", out, "--const", "/nonexistent/bond_const.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	status, _, cliErr := decodeResponse[GenerateResult](t, output)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, schema.ErrCodeLoad, cliErr.Code)
	assert.NoDirExists(t, out)
}

func TestGenerateUsageErrors(t *testing.T) {
	shapes := testutil.SchemaPath(t, "shapes.json")

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"no inputs", []string{"-o", t.TempDir()}, ErrCodeNoInputs},
		{"missing input", []string{"/nonexistent/a.json"}, ErrCodeNotFound},
		{"unknown target", []string{shapes, "-t", "rust"}, ErrCodeUsage},
		{"invalid go package", []string{shapes, "-t", "go", "--go-package", "my-model"}, ErrCodeUsage},
		{"missing config", []string{shapes}, ErrCodeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &RootOptions{Format: "text"}
			if tt.code == ErrCodeConfig {
				root.Config = filepath.Join(t.TempDir(), "bondgen.yaml")
			}
			output, err := execute(NewGenerateCommand(root), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, output, "Error ["+tt.code+"]")
		})
	}
}

func TestGenerateFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bondgen.yaml", `
target: go
output: gen
inputs:
  - `+testutil.SchemaPath(t, "shapes.json")+`
go:
  package: wire
`)

	_, err := execute(NewGenerateCommand(&RootOptions{Format: "text", Config: path}))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "gen", "shapes_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package wire")

	// Flags win over the file.
	out := t.TempDir()
	_, err = execute(NewGenerateCommand(&RootOptions{Format: "text", Config: path}),
		"-o", out, "--go-package", "other")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(out, "shapes_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package other")
}

func TestGenerateTargetFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bondgen.yaml", `
target: go
go:
  package: wire
`)
	out := t.TempDir()

	_, err := execute(NewGenerateCommand(&RootOptions{Format: "text", Config: path}),
		testutil.SchemaPath(t, "shapes.json"), "-o", out, "--target", "cpp")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "shapes_types.hpp"))
	assert.FileExists(t, filepath.Join(out, cpp.ConstantsHeader))
	assert.NoFileExists(t, filepath.Join(out, "shapes_types.go"))
}
