package compactbinary

import (
	"errors"
	"fmt"
)

// Decoding errors. Reader methods wrap them with the input offset.
var (
	ErrTruncated         = errors.New("compactbinary: unexpected end of input")
	ErrOverflow          = errors.New("compactbinary: varint overflows target type")
	ErrInvalidBool       = errors.New("compactbinary: invalid bool value")
	ErrInvalidContainer  = errors.New("compactbinary: invalid container header")
	ErrContainerTooLarge = errors.New("compactbinary: container size exceeds remaining input")
)

// ErrMismatch matches every *MismatchError via errors.Is.
var ErrMismatch = errors.New("compactbinary: payload does not match schema")

// MismatchKind classifies a MismatchError.
type MismatchKind int

const (
	// UnknownField: a field id the struct does not declare.
	UnknownField MismatchKind = iota
	// ElementType: a container announced an unexpected element, key or value type.
	ElementType
	// StopType: BT_STOP_BASE ended a non-base struct or the other way round.
	StopType
)

// MismatchError reports a well-formed payload that does not fit the schema
// a deserializer was generated from.
type MismatchError struct {
	Kind    MismatchKind
	Struct  string
	Ordinal uint16
	Want    uint8
	Got     uint8
	IsBase  bool
}

func (e *MismatchError) Error() string {
	switch e.Kind {
	case UnknownField:
		return fmt.Sprintf("compactbinary: %s: unknown field %d", e.Struct, e.Ordinal)
	case ElementType:
		return fmt.Sprintf("compactbinary: %s: field %d: container type %s, want %s",
			e.Struct, e.Ordinal, TypeName(e.Got), TypeName(e.Want))
	case StopType:
		return fmt.Sprintf("compactbinary: %s: %s ends struct with isBase=%t",
			e.Struct, TypeName(e.Got), e.IsBase)
	}
	return fmt.Sprintf("compactbinary: %s: mismatch", e.Struct)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// UnknownFieldError is returned by generated readers for undeclared ids.
func UnknownFieldError(structName string, id uint16) error {
	return &MismatchError{Kind: UnknownField, Struct: structName, Ordinal: id}
}

// ElementTypeError is returned by generated readers when a container header
// carries a different type than the schema declares.
func ElementTypeError(structName string, id uint16, want, got uint8) error {
	return &MismatchError{Kind: ElementType, Struct: structName, Ordinal: id, Want: want, Got: got}
}

// StopTypeError is returned by generated readers when the stop marker does
// not agree with isBase.
func StopTypeError(structName string, isBase bool, got uint8) error {
	return &MismatchError{Kind: StopType, Struct: structName, IsBase: isBase, Got: got}
}
