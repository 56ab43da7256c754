package description

import (
	"errors"
	"fmt"
)

// Kind classifies why a description line was rejected.
type Kind int

const (
	MalformedLine Kind = iota + 1
	UnknownShapeID
	DuplicateShapeID
	UnknownAttribute
	InvalidAttributeValue
	// DegenerateScale is never attached to a line; the reconciler reports it
	// when a box had to be replaced instead of scaled.
	DegenerateScale
)

func (k Kind) String() string {
	switch k {
	case MalformedLine:
		return "malformed_line"
	case UnknownShapeID:
		return "unknown_shape_id"
	case DuplicateShapeID:
		return "duplicate_shape_id"
	case UnknownAttribute:
		return "unknown_attribute"
	case InvalidAttributeValue:
		return "invalid_attribute_value"
	case DegenerateScale:
		return "degenerate_scale"
	default:
		return "unknown"
	}
}

var (
	ErrMalformedLine         = errors.New("malformed line")
	ErrUnknownShapeID        = errors.New("unknown shape id")
	ErrDuplicateShapeID      = errors.New("duplicate shape id")
	ErrUnknownAttribute      = errors.New("unknown attribute")
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
	ErrDegenerateScale       = errors.New("degenerate scale")
)

func (k Kind) sentinel() error {
	switch k {
	case MalformedLine:
		return ErrMalformedLine
	case UnknownShapeID:
		return ErrUnknownShapeID
	case DuplicateShapeID:
		return ErrDuplicateShapeID
	case UnknownAttribute:
		return ErrUnknownAttribute
	case InvalidAttributeValue:
		return ErrInvalidAttributeValue
	case DegenerateScale:
		return ErrDegenerateScale
	}
	return nil
}

// LineError describes a rejected description line. It matches the sentinel
// of its kind under errors.Is.
type LineError struct {
	Kind    Kind
	Line    int // zero-based
	Message string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line+1, e.Kind.sentinel(), e.Message)
}

func (e *LineError) Unwrap() error {
	return e.Kind.sentinel()
}

func lineErrorf(kind Kind, line int, format string, args ...any) *LineError {
	return &LineError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
