package access

import (
	"errors"
	"fmt"

	"member-binder/member"
)

var (
	ErrNilInstance    = errors.New("instance member accessed without an instance")
	ErrNotAddressable = errors.New("instance must be passed by pointer to be modified")
	ErrNilEmbedded    = errors.New("member is promoted through a nil embedded pointer")
	ErrArgCount       = errors.New("wrong number of arguments")
)

// Accessor is a compiled capability bound to one resolved member. Accessors are
// immutable and safe for concurrent use.
type Accessor interface {
	Descriptor() *member.Descriptor
}

type Getter interface {
	Accessor
	Get(instance any) (any, error)
}

type Setter interface {
	Accessor
	Set(instance, value any) error
}

type Invoker interface {
	Accessor
	Invoke(instance any, args []any) (any, error)
}

type Constructor interface {
	Accessor
	Construct(args []any) (any, error)
}

// Compile builds the accessor variant matching d.Kind.
func Compile(d *member.Descriptor) (Accessor, error) {
	switch d.Kind {
	case member.Field:
		return newField(d), nil
	case member.Property:
		return newProperty(d), nil
	case member.Method:
		return newMethod(d), nil
	case member.Constructor:
		return newConstructor(d), nil
	default:
		return nil, fmt.Errorf("compile %s: %w", d, member.ErrUnsupported)
	}
}

// Get reads through a, failing when a has no getter.
func Get(a Accessor, instance any) (any, error) {
	g, ok := a.(Getter)
	if !ok {
		return nil, unsupported(a.Descriptor(), "get")
	}

	return g.Get(instance)
}

// Set writes through a, failing when a has no setter.
func Set(a Accessor, instance, value any) error {
	s, ok := a.(Setter)
	if !ok {
		return unsupported(a.Descriptor(), "set")
	}

	return s.Set(instance, value)
}

// Invoke calls through a, failing when a is not invocable.
func Invoke(a Accessor, instance any, args []any) (any, error) {
	inv, ok := a.(Invoker)
	if !ok {
		return nil, unsupported(a.Descriptor(), "invoke")
	}

	return inv.Invoke(instance, args)
}

// Construct creates an instance through a, failing when a is not a constructor.
func Construct(a Accessor, args []any) (any, error) {
	c, ok := a.(Constructor)
	if !ok {
		return nil, unsupported(a.Descriptor(), "construct")
	}

	return c.Construct(args)
}

func unsupported(d *member.Descriptor, op string) error {
	return &member.UnsupportedOperationError{Member: label(d), Op: op}
}

// label names a member in error messages, e.g. "people.Person.Age".
func label(d *member.Descriptor) string {
	if d.Owner == nil {
		return d.Name
	}

	return d.Owner.String() + "." + d.Name
}
