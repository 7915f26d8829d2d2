package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// unsupportedDoc uses a set, which no target can generate.
const unsupportedDoc = `{"declarations": [{"tag": "Struct", "declName": "S", "structFields": [
	{"fieldOrdinal": 1, "fieldName": "s", "fieldType": {"type": "set", "element": "int32"}}]}]}`

// clashDoc is valid for C++ but flattens to two S types in Go.
const clashDoc = `{"declarations": [
	{"tag": "Struct", "declName": "S", "declNamespaces": [{"name": ["a"]}], "structFields": []},
	{"tag": "Struct", "declName": "S", "declNamespaces": [{"name": ["b"]}], "structFields": []}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse decodes a JSON CLIResponse whose data has type T.
func decodeResponse[T any](t *testing.T, out string) (string, T, *CLIError) {
	t.Helper()
	var resp struct {
		Status string    `json:"status"`
		Data   T         `json:"data"`
		Error  *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp.Status, resp.Data, resp.Error
}
