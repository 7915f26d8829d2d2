package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/bondgen/internal/schema"
)

// SchemaPath returns the path of a fixture under the repository's
// testdata/schemas directory.
func SchemaPath(t testing.TB, name string) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot locate testutil source")
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "schemas", name)
}

// LoadSchema loads a fixture schema and fails the test on error.
func LoadSchema(t testing.TB, name string) *schema.Schema {
	t.Helper()

	s, err := schema.Load(SchemaPath(t, name))
	require.NoError(t, err)
	return s
}

// LoadConstants loads the built-in constants document.
func LoadConstants(t testing.TB) *schema.Constants {
	t.Helper()

	c, err := schema.LoadConstants("")
	require.NoError(t, err)
	return c
}
