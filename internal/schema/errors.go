package schema

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes carried by LoadError and UnsupportedError.
const (
	ErrCodeLoad          = "E201" // document missing or unreadable
	ErrCodeStructure     = "E202" // document does not have the expected shape
	ErrCodeStructShape   = "E210" // struct with params, attributes or base
	ErrCodeNamespace     = "E211" // more than one namespace entry
	ErrCodeDuplicate     = "E212" // duplicate ordinal or field name
	ErrCodePrimitive     = "E213" // unknown primitive type name
	ErrCodeTypeTag       = "E214" // unsupported type expression tag
	ErrCodeDeclTag       = "E215" // unsupported declaration tag
	ErrCodeDefault       = "E216" // default incompatible with field type
	ErrCodeEnumShape     = "E217" // enum with attributes or bad constant
	ErrCodeConstants     = "E220" // constants document is missing a required tag
	ErrCodeTargetClash   = "E230" // generated names collide in the target language
	ErrCodeTargetSupport = "E231" // construct the target language cannot express
)

// LoadError reports a document that is missing, unreadable or malformed.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports a well-formed construct the generator rejects.
type UnsupportedError struct {
	Code    string
	Path    string
	Decl    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *UnsupportedError) Error() string {
	loc := e.Path
	if e.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%d:%d", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	subject := e.Decl
	if e.Field != "" {
		subject += "." + e.Field
	}
	if subject == "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %s", loc, e.Code, subject, e.Message)
}

// cueError turns a CUE error into a LoadError, keeping the first position.
func cueError(path string, err error) error {
	if err == nil {
		return nil
	}

	le := &LoadError{Code: ErrCodeStructure, Path: path, Message: err.Error(), Err: err}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return le
	}

	first := errs[0]
	le.Message = first.Error()
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
