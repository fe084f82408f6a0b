package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by errors.Is for lookups of absent elements.
var ErrNotFound = errors.New("layout element not found")

type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("layout element %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type ViolationKind string

const (
	OutOfBounds  ViolationKind = "out_of_bounds"
	MissingKey   ViolationKind = "missing_key"
	BadColor     ViolationKind = "bad_color"
	DuplicateKey ViolationKind = "duplicate_key"
	BadType      ViolationKind = "bad_type"
	NotMapping   ViolationKind = "not_mapping"
)

// Violation is one problem found in a layout document. Element is the dotted
// path of the offending element ("bases.first").
type Violation struct {
	Element string
	Kind    ViolationKind
	Message string
	Line    int
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", v.Line)
	}
	if v.Element != "" {
		b.WriteString(v.Element)
		b.WriteString(": ")
	}
	b.WriteString(string(v.Kind))
	if v.Message != "" {
		b.WriteString(": ")
		b.WriteString(v.Message)
	}
	return b.String()
}

// ValidationError carries every violation found in one pass over a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid layout (%d violations): %s", len(e.Violations), strings.Join(parts, "; "))
}

// For returns the violations that reference element or one of its children.
func (e *ValidationError) For(element string) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Element == element || strings.HasPrefix(v.Element, element+".") {
			out = append(out, v)
		}
	}
	return out
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
