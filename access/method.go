package access

import (
	"fmt"
	"reflect"

	"member-binder/member"
)

var errorType = reflect.TypeFor[error]()

// MethodInvoker calls a method or a registered function.
//
// Pointer parameters bind by reference: when the argument slot holds a value of
// the pointee type, or an untyped nil, the invoker passes a pointer to a fresh
// copy and stores the pointee back into the slot after the call. Pass a typed
// nil pointer to hand the method a nil pointer instead.
type MethodInvoker struct {
	d *member.Descriptor
}

func newMethod(d *member.Descriptor) *MethodInvoker {
	return &MethodInvoker{d: d}
}

func (a *MethodInvoker) Descriptor() *member.Descriptor { return a.d }

// Invoke calls the method on instance, which is ignored for static methods. A
// trailing error result is returned as the error; the remaining results are
// returned as nil, a single value or a []any. Methods with a pointer receiver
// need instance passed by pointer and fail with ErrNotAddressable otherwise.
func (a *MethodInvoker) Invoke(instance any, args []any) (any, error) {
	var in []reflect.Value

	if !a.d.Static {
		recv, err := a.receiver(instance)
		if err != nil {
			return nil, err
		}

		in = append(in, recv)
	}

	return call(a.d, a.d.Func, in, args)
}

func (a *MethodInvoker) receiver(instance any) (reflect.Value, error) {
	owner, err := receiver(a.d, instance, a.mutates())
	if err != nil {
		return reflect.Value{}, err
	}

	if err := promotedFrom(a.d, owner, a.d.Via); err != nil {
		return reflect.Value{}, err
	}

	// registered methods may be declared by an embedded type
	v := owner
	if len(a.d.Index) > 0 {
		v, err = fieldByIndex(owner, a.d.Index, false)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", label(a.d), err)
		}

		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("%s: %w", label(a.d), ErrNilEmbedded)
			}

			v = v.Elem()
		}
	}

	if a.d.Receiver != nil && a.d.Receiver.Kind() == reflect.Pointer {
		return v.Addr(), nil
	}

	return v, nil
}

// mutates reports whether the method may modify its receiver, so that calling
// it on a copy would lose the change.
func (a *MethodInvoker) mutates() bool {
	if a.d.Receiver == nil || a.d.Receiver.Kind() != reflect.Pointer {
		return false
	}

	// reflect-discovered methods take *Owner even when declared on a value
	// receiver or promoted through an embedded pointer
	if _, ok := a.d.Owner.MethodByName(a.d.Name); ok {
		m, _ := reflect.PointerTo(a.d.Owner).MethodByName(a.d.Name)
		return m.Func.Pointer() != a.d.Func.Pointer()
	}

	return true
}

// byRef remembers an argument slot to write back after the call.
type byRef struct {
	slot int
	ptr  reflect.Value
}

// call binds args to d's parameters, calls fn with prefix followed by the bound
// arguments and unpacks the results.
func call(d *member.Descriptor, fn reflect.Value, prefix []reflect.Value, args []any) (any, error) {
	in, refs, spread, err := bindArgs(d, args)
	if err != nil {
		return nil, err
	}

	in = append(prefix, in...)

	var out []reflect.Value
	if d.Variadic && !spread {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}

	for _, r := range refs {
		args[r.slot] = r.ptr.Elem().Interface()
	}

	return results(out)
}

func bindArgs(d *member.Descriptor, args []any) (in []reflect.Value, refs []byRef, spread bool, err error) {
	params := d.Params

	fixed := len(params)
	if d.Variadic {
		fixed--
	}

	switch {
	case !d.Variadic && len(args) != len(params), d.Variadic && len(args) < fixed:
		return nil, nil, false, fmt.Errorf("%s: %w: want %d, got %d", label(d), ErrArgCount, len(params), len(args))
	}

	in = make([]reflect.Value, 0, len(args))

	bind := func(i int, t reflect.Type) error {
		name := fmt.Sprintf("%s argument %d", label(d), i)
		arg := args[i]

		if t.Kind() == reflect.Pointer {
			if arg == nil {
				p := reflect.New(t.Elem())
				in = append(in, p)
				refs = append(refs, byRef{slot: i, ptr: p})

				return nil
			}

			if at := reflect.TypeOf(arg); !at.AssignableTo(t) && at.AssignableTo(t.Elem()) {
				p := reflect.New(t.Elem())
				p.Elem().Set(reflect.ValueOf(arg))
				in = append(in, p)
				refs = append(refs, byRef{slot: i, ptr: p})

				return nil
			}
		}

		v, err := assignable(name, t, arg)
		if err != nil {
			return err
		}

		in = append(in, v)

		return nil
	}

	for i := range fixed {
		if err := bind(i, params[i]); err != nil {
			return nil, nil, false, err
		}
	}

	if !d.Variadic {
		return in, refs, true, nil
	}

	slice := params[fixed]

	// a single trailing slice is passed whole
	if len(args) == len(params) && args[fixed] != nil && reflect.TypeOf(args[fixed]).AssignableTo(slice) {
		return append(in, reflect.ValueOf(args[fixed])), refs, false, nil
	}

	for i := fixed; i < len(args); i++ {
		if err := bind(i, slice.Elem()); err != nil {
			return nil, nil, false, err
		}
	}

	return in, refs, true, nil
}

func results(out []reflect.Value) (any, error) {
	var err error

	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}

		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return result(out[0]), err
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = result(v)
		}

		return values, err
	}
}
