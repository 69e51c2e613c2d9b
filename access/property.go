package access

import (
	"reflect"

	"member-binder/member"
)

// PropertyAccessor drives a getter/setter pair. Either side may be missing, in
// which case the operation fails with *member.UnsupportedOperationError.
type PropertyAccessor struct {
	d *member.Descriptor
}

func newProperty(d *member.Descriptor) *PropertyAccessor {
	return &PropertyAccessor{d: d}
}

func (a *PropertyAccessor) Descriptor() *member.Descriptor { return a.d }

func (a *PropertyAccessor) Get(instance any) (any, error) {
	if !a.d.Getter.IsValid() {
		return nil, unsupported(a.d, "get")
	}

	in, err := a.receiverArgs(instance, a.d.Via, false)
	if err != nil {
		return nil, err
	}

	return result(a.d.Getter.Call(in)[0]), nil
}

func (a *PropertyAccessor) Set(instance, value any) error {
	if !a.d.Setter.IsValid() {
		return unsupported(a.d, "set")
	}

	v, err := assignable(label(a.d), a.d.Type, value)
	if err != nil {
		return err
	}

	in, err := a.receiverArgs(instance, a.d.SetterVia, true)
	if err != nil {
		return err
	}

	out := a.d.Setter.Call(append(in, v))
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}

func (a *PropertyAccessor) receiverArgs(instance any, via []int, write bool) ([]reflect.Value, error) {
	if a.d.Static {
		return nil, nil
	}

	owner, err := receiver(a.d, instance, write)
	if err != nil {
		return nil, err
	}

	if err := promotedFrom(a.d, owner, via); err != nil {
		return nil, err
	}

	return []reflect.Value{owner.Addr()}, nil
}
