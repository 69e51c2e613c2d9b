package resolve

import (
	"reflect"
)

// NullArg stands for an argument whose value is nil and whose type is unknown.
// It is what ArgTypes reports for a nil argument.
type NullArg struct{}

var nullArgType = reflect.TypeFor[NullArg]()

// ArgTypes returns the dynamic types of args, NullArg's type for nil entries.
// The result is never nil, so an empty args list still constrains arity.
func ArgTypes(args []any) []reflect.Type {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		if a == nil {
			out[i] = nullArgType
			continue
		}

		out[i] = reflect.TypeOf(a)
	}

	return out
}

// Nilable reports whether a value of type t can be nil.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
}

// IsNull reports whether t denotes a nil argument.
func IsNull(t reflect.Type) bool {
	return t == nil || t == nullArgType
}

// conversions returns how many arguments need an implicit conversion to bind to
// params, or -1 when args cannot bind. Identical types cost nothing; assignment
// to an interface or other assignable type, binding by reference and passing nil
// cost one each. Numeric widening is never applied.
func conversions(params []reflect.Type, variadic bool, args []reflect.Type) int {
	fixed := len(params)
	if variadic {
		fixed--
	}

	switch {
	case !variadic && len(args) != len(params):
		return -1
	case variadic && len(args) < fixed:
		return -1
	}

	total := 0
	for i := range fixed {
		c := argCost(params[i], args[i])
		if c < 0 {
			return -1
		}

		total += c
	}

	if !variadic {
		return total
	}

	rest := args[fixed:]
	slice := params[fixed]

	// a single trailing slice is passed as is
	if len(rest) == 1 && !IsNull(rest[0]) {
		if c := argCost(slice, rest[0]); c >= 0 {
			return total + c
		}
	}

	for _, a := range rest {
		c := argCost(slice.Elem(), a)
		if c < 0 {
			return -1
		}

		total += c
	}

	return total
}

func argCost(param, arg reflect.Type) int {
	switch {
	case IsNull(arg):
		if Nilable(param) {
			return 1
		}

		return -1
	case arg == param:
		return 0
	case arg.AssignableTo(param):
		return 1
	case param.Kind() == reflect.Pointer && arg.AssignableTo(param.Elem()):
		// by reference: the invoker passes a pointer to a copy and writes it back
		return 1
	default:
		return -1
	}
}
