package access

import (
	"reflect"

	"member-binder/member"
)

// ConstructorInvoker creates instances of the owner type. Results are always
// pointers: the zero-value constructor returns new(T), factories returning T
// have their result copied into a new *T.
type ConstructorInvoker struct {
	d *member.Descriptor
}

func newConstructor(d *member.Descriptor) *ConstructorInvoker {
	return &ConstructorInvoker{d: d}
}

func (a *ConstructorInvoker) Descriptor() *member.Descriptor { return a.d }

func (a *ConstructorInvoker) Construct(args []any) (any, error) {
	if !a.d.Func.IsValid() {
		if _, _, _, err := bindArgs(a.d, args); err != nil {
			return nil, err
		}

		return reflect.New(a.d.Type).Interface(), nil
	}

	v, err := call(a.d, a.d.Func, nil, args)
	if err != nil || v == nil {
		return nil, err
	}

	if rv := reflect.ValueOf(v); rv.Type() == a.d.Type {
		p := reflect.New(a.d.Type)
		p.Elem().Set(rv)

		return p.Interface(), nil
	}

	return v, nil
}
