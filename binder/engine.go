// Package binder ties member resolution, accessor caching and mapping together
// behind name-based calls such as GetFieldValue and CallMethod.
//
// Binding flags are always passed explicitly. A target is either an instance,
// or a reflect.Type for static members.
package binder

import (
	"reflect"

	"member-binder/access"
	"member-binder/flags"
	"member-binder/mapper"
	"member-binder/member"
	"member-binder/resolve"
)

// Engine owns a resolver, an accessor cache and a mapper. It is safe for
// concurrent use.
type Engine struct {
	resolver *resolve.Resolver
	cache    *access.Cache
	mapper   *mapper.Mapper
}

type options struct {
	registry *resolve.Registry
	cache    *access.Cache
}

type Option func(*options)

// WithRegistry makes the engine read registered members from reg instead of
// resolve.Default.
func WithRegistry(reg *resolve.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithCache shares an accessor cache between engines using the same registry.
func WithCache(c *access.Cache) Option {
	return func(o *options) { o.cache = c }
}

func New(opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.cache == nil {
		o.cache = access.NewCache()
	}

	r := resolve.New(o.registry)

	return &Engine{
		resolver: r,
		cache:    o.cache,
		mapper:   mapper.New(r, o.cache),
	}
}

func (e *Engine) Resolver() *resolve.Resolver { return e.resolver }
func (e *Engine) Cache() *access.Cache { return e.cache }
func (e *Engine) Mapper() *mapper.Mapper { return e.mapper }

// Bind returns the cached accessor for q.
func (e *Engine) Bind(q resolve.Query) (access.Accessor, error) {
	return e.cache.Bind(e.resolver, q)
}

// Field returns the accessor of field name on t.
func (e *Engine) Field(t reflect.Type, name string, fl flags.Binding) (access.Accessor, error) {
	return e.Bind(resolve.Query{Type: t, Kind: member.Field, Name: name, Flags: fl})
}

// Property returns the accessor of property name on t.
func (e *Engine) Property(t reflect.Type, name string, fl flags.Binding) (access.Accessor, error) {
	return e.Bind(resolve.Query{Type: t, Kind: member.Property, Name: name, Flags: fl})
}

// Method returns the invoker of method name on t. A nil argTypes matches any
// parameter list.
func (e *Engine) Method(t reflect.Type, name string, fl flags.Binding, argTypes []reflect.Type) (access.Accessor, error) {
	return e.Bind(resolve.Query{Type: t, Kind: member.Method, Name: name, Flags: fl, Args: argTypes})
}

// Constructor returns the constructor of t taking argTypes.
func (e *Engine) Constructor(t reflect.Type, fl flags.Binding, argTypes []reflect.Type) (access.Accessor, error) {
	return e.Bind(resolve.Query{Type: t, Kind: member.Constructor, Flags: fl, Args: argTypes})
}

// target splits a call target into its type and the instance to pass to
// accessors, nil for a reflect.Type target.
func target(obj any) (reflect.Type, any) {
	if t, ok := obj.(reflect.Type); ok {
		return t, nil
	}

	return reflect.TypeOf(obj), obj
}

// staticFlags narrows fl to static members when obj is a reflect.Type.
func staticFlags(obj any, fl flags.Binding) flags.Binding {
	if _, ok := obj.(reflect.Type); ok {
		return fl.Without(flags.Instance)
	}

	return fl
}

func (e *Engine) GetFieldValue(obj any, name string, fl flags.Binding) (any, error) {
	t, inst := target(obj)

	a, err := e.Field(t, name, staticFlags(obj, fl))
	if err != nil {
		return nil, err
	}

	return access.Get(a, inst)
}

func (e *Engine) SetFieldValue(obj any, name string, value any, fl flags.Binding) error {
	t, inst := target(obj)

	a, err := e.Field(t, name, staticFlags(obj, fl))
	if err != nil {
		return err
	}

	return access.Set(a, inst, value)
}

func (e *Engine) GetPropertyValue(obj any, name string, fl flags.Binding) (any, error) {
	t, inst := target(obj)

	a, err := e.Property(t, name, staticFlags(obj, fl))
	if err != nil {
		return nil, err
	}

	return access.Get(a, inst)
}

func (e *Engine) SetPropertyValue(obj any, name string, value any, fl flags.Binding) error {
	t, inst := target(obj)

	a, err := e.Property(t, name, staticFlags(obj, fl))
	if err != nil {
		return err
	}

	return access.Set(a, inst, value)
}

// CallMethod resolves name against the dynamic types of args and invokes it.
// By-reference arguments are written back into args.
func (e *Engine) CallMethod(obj any, name string, fl flags.Binding, args ...any) (any, error) {
	return e.CallMethodTyped(obj, name, fl, resolve.ArgTypes(args), args)
}

// CallMethodTyped resolves name against argTypes instead of the dynamic types
// of args. Use it to select a by-reference overload, e.g. passing
// reflect.PointerTo(float64) for an out parameter.
func (e *Engine) CallMethodTyped(obj any, name string, fl flags.Binding, argTypes []reflect.Type, args []any) (any, error) {
	t, inst := target(obj)

	a, err := e.Method(t, name, staticFlags(obj, fl), argTypes)
	if err != nil {
		return nil, err
	}

	return access.Invoke(a, inst, args)
}

// CreateInstance constructs a *T using the constructor matching args.
func (e *Engine) CreateInstance(t reflect.Type, fl flags.Binding, args ...any) (any, error) {
	a, err := e.Constructor(t, fl, resolve.ArgTypes(args))
	if err != nil {
		return nil, err
	}

	return access.Construct(a, args)
}

// Map copies members from source to target as selected by spec.
func (e *Engine) Map(source, target any, spec mapper.Spec) (any, error) {
	return e.mapper.Map(source, target, spec)
}

func (e *Engine) MapFields(source, target any, names ...string) (any, error) {
	return e.mapper.Map(source, target, mapper.Fields(names...))
}

func (e *Engine) MapProperties(source, target any, names ...string) (any, error) {
	return e.mapper.Map(source, target, mapper.Properties(names...))
}

func (e *Engine) MapFieldsToProperties(source, target any, names ...string) (any, error) {
	return e.mapper.Map(source, target, mapper.FieldsToProperties(names...))
}

func (e *Engine) MapPropertiesToFields(source, target any, names ...string) (any, error) {
	return e.mapper.Map(source, target, mapper.PropertiesToFields(names...))
}
