package schema

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed bond_const.json
var defaultConstants []byte

// DefaultConstantsName is the document name used for the embedded constants.
const DefaultConstantsName = "bond_const.json"

// RequiredTags lists the wire tag names generated code refers to. A constants
// document must define all of them with pairwise distinct values.
var RequiredTags = []string{
	"BT_STOP", "BT_STOP_BASE",
	"BT_BOOL",
	"BT_UINT8", "BT_UINT16", "BT_UINT32", "BT_UINT64",
	"BT_FLOAT", "BT_DOUBLE", "BT_STRING",
	"BT_STRUCT", "BT_LIST", "BT_MAP",
	"BT_INT8", "BT_INT16", "BT_INT32", "BT_INT64",
}

// Constants is a loaded wire constants document: flat enumerations whose
// constant names are the symbolic wire tags.
type Constants struct {
	Path   string
	Digest string
	Enums  []*Enum

	values map[string]int64
}

// LoadConstants reads the constants document at path. An empty path selects
// the built-in bond_const.json.
func LoadConstants(path string) (*Constants, error) {
	if path == "" {
		return DecodeConstants(DefaultConstantsName, defaultConstants)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeLoad,
			Path:    path,
			Message: fmt.Sprintf("cannot read constants: %v", err),
			Err:     err,
		}
	}
	return DecodeConstants(path, data)
}

// DecodeConstants validates a constants document already in memory.
func DecodeConstants(path string, data []byte) (*Constants, error) {
	s, err := Decode(path, data)
	if err != nil {
		return nil, err
	}

	c := &Constants{Path: path, Digest: s.Digest, values: make(map[string]int64)}
	for _, decl := range s.Declarations {
		en, ok := decl.(*Enum)
		if !ok {
			return nil, &UnsupportedError{
				Code: ErrCodeConstants, Path: path, Decl: decl.Info().QualifiedName(), Pos: decl.Info().Pos,
				Message: "constants document may only declare enums",
			}
		}
		c.Enums = append(c.Enums, en)
		for _, k := range en.Constants {
			if _, dup := c.values[k.Name]; dup {
				return nil, &UnsupportedError{
					Code: ErrCodeConstants, Path: path, Decl: en.QualifiedName(), Field: k.Name, Pos: en.Pos,
					Message: "constant defined by more than one enum",
				}
			}
			c.values[k.Name] = k.Value
		}
	}

	owner := make(map[int64]string, len(RequiredTags))
	for _, name := range RequiredTags {
		v, ok := c.values[name]
		if !ok {
			return nil, &UnsupportedError{Code: ErrCodeConstants, Path: path, Message: fmt.Sprintf("missing wire tag %s", name)}
		}
		if prev, taken := owner[v]; taken {
			return nil, &UnsupportedError{
				Code: ErrCodeConstants, Path: path,
				Message: fmt.Sprintf("wire tags %s and %s share value %d", prev, name, v),
			}
		}
		owner[v] = name
	}
	return c, nil
}

// Value returns the value of a named constant.
func (c *Constants) Value(name string) (int64, bool) {
	v, ok := c.values[name]
	return v, ok
}
