package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"member-binder/member"
)

var (
	ErrNotAFunction     = errors.New("registered member is not a function")
	ErrNotAPointer      = errors.New("static field must be registered through a non-nil pointer")
	ErrReceiverMismatch = errors.New("first parameter of a registered method must be the owner type or a pointer to it")
	ErrBadConstructor   = errors.New("constructor must return the owner type or a pointer to it, optionally followed by an error")
	ErrBadProperty      = errors.New("property needs a getter func() V and/or a setter func(V) [error] of the same V")
	ErrDuplicateMember  = errors.New("member with the same name and signature is already registered")
)

var errorType = reflect.TypeFor[error]()

// Default is the process-wide registry used by resolvers created without one.
var Default = NewRegistry()

// Registry holds members Go reflection cannot discover: static fields, static
// methods and properties, constructors and methods bound from plain functions.
// Members are keyed by their owner type and are safe to register concurrently.
type Registry struct {
	mu      sync.RWMutex
	members map[reflect.Type][]*member.Descriptor
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[reflect.Type][]*member.Descriptor)}
}

// RegisterStaticField binds name on t to the variable ptr points at.
func (r *Registry) RegisterStaticField(t reflect.Type, name string, ptr any) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%s.%s: %w", t, name, ErrNotAPointer)
	}

	return r.add(&member.Descriptor{
		Kind:   member.Field,
		Name:   name,
		Type:   v.Type().Elem(),
		Static: true,
		Addr:   v.Elem(),
	}, t)
}

// RegisterStaticMethod binds name on t to fn.
func (r *Registry) RegisterStaticMethod(t reflect.Type, name string, fn any) error {
	fv, err := funcValue(t, name, fn)
	if err != nil {
		return err
	}

	d := callable(member.Method, name, fv, 0)
	d.Static = true

	return r.add(d, t)
}

// RegisterStaticProperty binds name on t to a getter func() V and/or a setter func(V) [error].
// Pass nil for a missing accessor.
func (r *Registry) RegisterStaticProperty(t reflect.Type, name string, getter, setter any) error {
	d := &member.Descriptor{Kind: member.Property, Name: name, Static: true}

	if getter != nil {
		gv, err := funcValue(t, name, getter)
		if err != nil {
			return err
		}

		gt := gv.Type()
		if gt.NumIn() != 0 || gt.NumOut() != 1 {
			return fmt.Errorf("%s.%s getter: %w", t, name, ErrBadProperty)
		}

		d.Getter = gv
		d.Type = gt.Out(0)
		d.Results = []reflect.Type{gt.Out(0)}
	}

	if setter != nil {
		sv, err := funcValue(t, name, setter)
		if err != nil {
			return err
		}

		st := sv.Type()
		if !isSetterSignature(st, 0) || d.Type != nil && st.In(0) != d.Type {
			return fmt.Errorf("%s.%s setter: %w", t, name, ErrBadProperty)
		}

		d.Setter = sv
		d.Type = st.In(0)
	}

	if d.Type == nil {
		return fmt.Errorf("%s.%s: %w", t, name, ErrBadProperty)
	}

	return r.add(d, t)
}

// RegisterMethod binds name on t to fn, whose first parameter receives the
// instance (t or *t). The name may be qualified by an interface prefix, as in
// "Swimmer.Swim", to model an explicitly implemented interface member.
func (r *Registry) RegisterMethod(t reflect.Type, name string, fn any) error {
	t = Normalize(t)

	fv, err := funcValue(t, name, fn)
	if err != nil {
		return err
	}

	ft := fv.Type()
	if ft.NumIn() == 0 || (ft.In(0) != t && ft.In(0) != reflect.PointerTo(t)) {
		return fmt.Errorf("%s.%s: %w", t, name, ErrReceiverMismatch)
	}

	d := callable(member.Method, name, fv, 1)
	d.Receiver = ft.In(0)

	return r.add(d, t)
}

// RegisterConstructor adds a factory for t. The name only decides visibility and
// appears in diagnostics; constructors are matched by their parameters.
func (r *Registry) RegisterConstructor(t reflect.Type, name string, fn any) error {
	t = Normalize(t)

	fv, err := funcValue(t, name, fn)
	if err != nil {
		return err
	}

	ft := fv.Type()

	out := ft.NumOut()
	if out == 2 && ft.Out(1) != errorType {
		out = 0
	}

	if out != 1 && out != 2 || ft.Out(0) != t && ft.Out(0) != reflect.PointerTo(t) {
		return fmt.Errorf("%s.%s: %w", t, name, ErrBadConstructor)
	}

	d := callable(member.Constructor, name, fv, 0)
	d.Type = t

	return r.add(d, t)
}

// lookup returns the members registered on t. The slice must not be modified.
func (r *Registry) lookup(t reflect.Type) []*member.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.members[t]
}

// Types returns a snapshot of every owner type with registered members.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.members))
	for t := range r.members {
		out = append(out, t)
	}

	return out
}

func (r *Registry) add(d *member.Descriptor, t reflect.Type) error {
	t = Normalize(t)

	d.Owner = t
	d.DeclaringType = t
	d.Public = member.IsExportedName(d.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[t] {
		if existing.Kind == d.Kind && existing.Name == d.Name && existing.Static == d.Static &&
			slices.Equal(existing.Params, d.Params) {
			return fmt.Errorf("%s: %w", d, ErrDuplicateMember)
		}
	}

	// copy on write, readers hold the previous slice without locking
	next := make([]*member.Descriptor, 0, len(r.members[t])+1)
	next = append(next, r.members[t]...)
	r.members[t] = append(next, d)

	return nil
}

func funcValue(t reflect.Type, name string, fn any) (reflect.Value, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%s.%s: %w", t, name, ErrNotAFunction)
	}

	return fv, nil
}

// callable builds a method or constructor descriptor from fn, skipping the first
// skip parameters.
func callable(kind member.Kind, name string, fn reflect.Value, skip int) *member.Descriptor {
	ft := fn.Type()

	d := &member.Descriptor{
		Kind:     kind,
		Name:     name,
		Func:     fn,
		Variadic: ft.IsVariadic(),
	}

	for i := skip; i < ft.NumIn(); i++ {
		d.Params = append(d.Params, ft.In(i))
	}

	for i := range ft.NumOut() {
		d.Results = append(d.Results, ft.Out(i))
	}

	d.Type = valueResult(d.Results)

	return d
}

// valueResult is the first result that is not a trailing error.
func valueResult(results []reflect.Type) reflect.Type {
	if len(results) == 0 || len(results) == 1 && results[0] == errorType {
		return nil
	}

	return results[0]
}

func isSetterSignature(ft reflect.Type, skip int) bool {
	if ft.NumIn() != skip+1 || ft.IsVariadic() {
		return false
	}

	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	default:
		return false
	}
}

// RegisterStaticField registers into Default.
func RegisterStaticField(t reflect.Type, name string, ptr any) error {
	return Default.RegisterStaticField(t, name, ptr)
}

// RegisterStaticMethod registers into Default.
func RegisterStaticMethod(t reflect.Type, name string, fn any) error {
	return Default.RegisterStaticMethod(t, name, fn)
}

// RegisterStaticProperty registers into Default.
func RegisterStaticProperty(t reflect.Type, name string, getter, setter any) error {
	return Default.RegisterStaticProperty(t, name, getter, setter)
}

// RegisterMethod registers into Default.
func RegisterMethod(t reflect.Type, name string, fn any) error {
	return Default.RegisterMethod(t, name, fn)
}

// RegisterConstructor registers into Default.
func RegisterConstructor(t reflect.Type, name string, fn any) error {
	return Default.RegisterConstructor(t, name, fn)
}
