package member

import (
	"go/token"
	"reflect"
	"strings"
)

// Descriptor is a resolved member. It is immutable once returned by a resolver.
type Descriptor struct {
	// Owner is the type the member was resolved against.
	Owner reflect.Type
	// Kind of the member.
	Kind Kind
	// Name as declared, possibly qualified by an interface prefix ("Swimmer.Swim").
	Name string
	// Type is the value type of a field or property, the first non-error result of a
	// method (nil when there is none), or the constructed type of a constructor.
	Type reflect.Type
	// DeclaringType is the level of the embedding hierarchy that declares the member.
	DeclaringType reflect.Type
	// Depth of DeclaringType below Owner, 0 for members declared by Owner itself.
	Depth int
	// Public is false for unexported fields and lower-case registered members.
	Public bool
	// Static members are registered on the type and need no instance.
	Static bool
	// Params lists parameter types of methods and constructors, receiver excluded.
	Params []reflect.Type
	// Variadic is set when the last parameter is a variadic slice.
	Variadic bool
	// Results lists every result type of a method, constructor or getter.
	Results []reflect.Type

	// Index is the field path from Owner for instance fields and, for registered
	// instance methods, the path to the embedded struct the receiver is taken from.
	Index []int
	// Func is the callable behind a method or constructor. Reflect-discovered methods
	// take a *Owner receiver as first argument, registered methods take their own
	// receiver type.
	Func reflect.Value
	// Receiver is the receiver parameter type of Func, nil for static members.
	Receiver reflect.Type
	// Getter and Setter back a property. Either may be invalid.
	Getter, Setter reflect.Value
	// Via is the field path from Owner to the embedded pointer or interface a
	// reflect-discovered method or property getter is promoted through. SetterVia
	// is the same for a property setter. Both are nil when no such hop exists.
	Via, SetterVia []int
	// Addr points at the storage of a static field.
	Addr reflect.Value
}

// SimpleName strips an interface qualifier, "Swimmer.Swim" becomes "Swim".
func (d *Descriptor) SimpleName() string {
	return TrimQualifier(d.Name)
}

// CanGet reports whether the member has a readable value.
func (d *Descriptor) CanGet() bool {
	switch d.Kind {
	default:
		return false
	case Field:
		return true
	case Property:
		return d.Getter.IsValid()
	}
}

// CanSet reports whether the member has a writable value.
func (d *Descriptor) CanSet() bool {
	switch d.Kind {
	default:
		return false
	case Field:
		return true
	case Property:
		return d.Setter.IsValid()
	}
}

// String renders e.g. "method people.Person.Walk(float64)".
func (d *Descriptor) String() string {
	var b strings.Builder

	b.WriteString(strings.ToLower(d.Kind.String()))
	b.WriteByte(' ')

	if d.Static {
		b.WriteString("static ")
	}

	if d.Owner != nil {
		b.WriteString(d.Owner.String())
		b.WriteByte('.')
	}

	b.WriteString(d.Name)

	if d.Kind.IsCallable() {
		b.WriteByte('(')
		for i, p := range d.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if d.Variadic && i == len(d.Params)-1 {
				b.WriteString("..." + p.Elem().String())
				continue
			}
			b.WriteString(p.String())
		}
		b.WriteByte(')')
	}

	if d.Type != nil && d.Kind != Constructor {
		b.WriteByte(' ')
		b.WriteString(d.Type.String())
	}

	return b.String()
}

// TrimQualifier returns the part after the last '.' of name.
func TrimQualifier(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// IsExportedName reports whether name, after trimming any qualifier, starts
// with an upper-case letter.
func IsExportedName(name string) bool {
	return token.IsExported(TrimQualifier(name))
}
