package access

import (
	"fmt"

	"member-binder/member"
)

// FieldAccessor reads and writes a struct field or a registered static field.
type FieldAccessor struct {
	d *member.Descriptor
}

func newField(d *member.Descriptor) *FieldAccessor {
	return &FieldAccessor{d: d}
}

func (a *FieldAccessor) Descriptor() *member.Descriptor { return a.d }

// Get returns the field value. Static fields ignore instance.
func (a *FieldAccessor) Get(instance any) (any, error) {
	if a.d.Static {
		return a.d.Addr.Interface(), nil
	}

	v, err := receiver(a.d, instance, false)
	if err != nil {
		return nil, err
	}

	f, err := fieldByIndex(v, a.d.Index, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label(a.d), err)
	}

	return f.Interface(), nil
}

// Set stores value into the field of instance, which must be a pointer. Nil
// embedded pointers on the way are allocated.
func (a *FieldAccessor) Set(instance, value any) error {
	v, err := assignable(label(a.d), a.d.Type, value)
	if err != nil {
		return err
	}

	if a.d.Static {
		settable(a.d.Addr).Set(v)
		return nil
	}

	owner, err := receiver(a.d, instance, true)
	if err != nil {
		return err
	}

	f, err := fieldByIndex(owner, a.d.Index, true)
	if err != nil {
		return fmt.Errorf("%s: %w", label(a.d), err)
	}

	f.Set(v)

	return nil
}
