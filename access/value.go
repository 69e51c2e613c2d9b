package access

import (
	"fmt"
	"reflect"
	"unsafe"

	"member-binder/member"
	"member-binder/primitive"
	"member-binder/resolve"
)

// assignable converts value into a reflect.Value that can be stored in a slot
// of type t. Only Go assignability applies: no numeric conversion, and nil is
// refused for types that cannot hold it.
func assignable(name string, t reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		if resolve.Nilable(t) {
			return reflect.Zero(t), nil
		}

		return reflect.Value{}, &member.NullAssignmentError{Member: name, Expected: t}
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	return reflect.Value{}, &member.TypeMismatchError{
		Member:   name,
		Expected: t,
		Actual:   v.Type(),
		Reason:   primitive.ExplainMismatch(v.Type(), t),
	}
}

// receiver returns an addressable value of owner taken from instance. A value
// that is not addressable is copied, unless write is set.
func receiver(d *member.Descriptor, instance any, write bool) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, fmt.Errorf("%s: %w", label(d), ErrNilInstance)
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer && v.Type() != d.Owner {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", label(d), ErrNilInstance)
		}

		v = v.Elem()
	}

	if v.Type() != d.Owner {
		return reflect.Value{}, &member.TypeMismatchError{
			Member:   label(d),
			Expected: d.Owner,
			Actual:   reflect.TypeOf(instance),
			Reason:   "instance is not of the owner type",
		}
	}

	if v.CanAddr() {
		return v, nil
	}

	if write {
		return reflect.Value{}, fmt.Errorf("%s: %w", label(d), ErrNotAddressable)
	}

	c := reflect.New(v.Type()).Elem()
	c.Set(v)

	return c, nil
}

// fieldByIndex walks index from v. Nil embedded pointers are allocated when
// alloc is set and reported as ErrNilEmbedded otherwise. The returned value is
// settable even for unexported fields.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}, ErrNilEmbedded
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = settable(v.Field(x))
	}

	return v, nil
}

// promotedFrom reports ErrNilEmbedded when path ends at, or crosses, a nil
// embedded pointer or interface of owner.
func promotedFrom(d *member.Descriptor, owner reflect.Value, path []int) error {
	if len(path) == 0 {
		return nil
	}

	v, err := fieldByIndex(owner, path, false)
	if err == nil && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		err = ErrNilEmbedded
	}

	if err != nil {
		return fmt.Errorf("%s: %w", label(d), err)
	}

	return nil
}

// settable lifts the read-only flag reflect puts on unexported fields.
func settable(v reflect.Value) reflect.Value {
	if v.CanSet() || !v.CanAddr() {
		return v
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// result turns a reflect result into an any, keeping the dynamic value of
// interface results.
func result(v reflect.Value) any {
	if v.Kind() == reflect.Interface && v.IsNil() {
		return nil
	}

	return v.Interface()
}

// Check reports whether value could be stored through a without storing it.
func Check(a Accessor, value any) error {
	d := a.Descriptor()
	if !d.CanSet() {
		return unsupported(d, "set")
	}

	_, err := assignable(label(d), d.Type, value)

	return err
}
