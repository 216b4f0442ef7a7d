package mesh

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the parsers and the model matches
// exactly one of these with errors.Is.
var (
	ErrIOFailure       = errors.New("i/o failure")
	ErrMalformedHeader = errors.New("malformed header")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrDegenerateFace  = errors.New("degenerate face")
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	ErrEmptyModel      = errors.New("model contains no meshes")
)

// ParseError describes where a load failed. Kind is one of the Err* values above;
// Err, when set, is the underlying cause (an os or strconv error).
type ParseError struct {
	Kind   error
	Format string
	Path   string
	Line   int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Format != "" {
		b.WriteString(e.Format)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("parse error")
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// WithPath returns err annotated with the path of the file being loaded.
// A *ParseError gets its Path field set; any other error is wrapped.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Path == "" {
			annotated := *pe
			annotated.Path = path
			return &annotated
		}
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
