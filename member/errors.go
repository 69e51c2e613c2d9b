package member

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"member-binder/flags"
)

var (
	ErrNotFound       = errors.New("member not found")
	ErrAmbiguous      = errors.New("ambiguous member match")
	ErrTypeMismatch   = errors.New("value type mismatch")
	ErrNullAssignment = errors.New("null assigned to non-nullable member")
	ErrUnsupported    = errors.New("unsupported member operation")
)

// NotFoundError reports that no member satisfied a binding query.
type NotFoundError struct {
	Kind  Kind
	Type  reflect.Type
	Name  string
	Flags flags.Binding
	// Suggestions holds close names of the same kind, nearest first.
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found on %s with flags %s",
		strings.ToLower(e.Kind.String()), e.Name, typeName(e.Type), e.Flags)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousMatchError reports several equally good candidates.
type AmbiguousMatchError struct {
	Kind       Kind
	Type       reflect.Type
	Name       string
	Candidates []*Descriptor
}

func (e *AmbiguousMatchError) Error() string {
	parts := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		parts = append(parts, c.String())
	}

	return fmt.Sprintf("ambiguous %s %q on %s: %s",
		strings.ToLower(e.Kind.String()), e.Name, typeName(e.Type), strings.Join(parts, "; "))
}

func (e *AmbiguousMatchError) Is(target error) bool { return target == ErrAmbiguous }

// TypeMismatchError reports a value that is not assignable to a member or parameter.
type TypeMismatchError struct {
	Member   string
	Expected reflect.Type
	Actual   reflect.Type
	// Reason is a short explanation, e.g. "implicit numeric conversion".
	Reason string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("%s: cannot assign %s to %s", e.Member, typeName(e.Actual), typeName(e.Expected))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// NullAssignmentError reports nil assigned to a member whose type cannot be nil.
type NullAssignmentError struct {
	Member   string
	Expected reflect.Type
}

func (e *NullAssignmentError) Error() string {
	return fmt.Sprintf("%s: cannot assign nil to %s", e.Member, typeName(e.Expected))
}

func (e *NullAssignmentError) Is(target error) bool { return target == ErrNullAssignment }

// UnsupportedOperationError reports a get, set, invoke or construct that the member
// does not provide.
type UnsupportedOperationError struct {
	Member string
	Op     string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s is not supported", e.Member, e.Op)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupported }

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}
