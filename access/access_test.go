package access_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-binder/access"
	"member-binder/flags"
	"member-binder/member"
	"member-binder/people"
	"member-binder/resolve"
)

var (
	personType   = reflect.TypeFor[people.Person]()
	employeeType = reflect.TypeFor[people.Employee]()
)

type fixture struct {
	resolver *resolve.Resolver
	cache    *access.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := resolve.NewRegistry()
	require.NoError(t, people.Register(reg))

	return &fixture{resolver: resolve.New(reg), cache: access.NewCache()}
}

func (f *fixture) bind(t *testing.T, q resolve.Query) access.Accessor {
	t.Helper()

	a, err := f.cache.Bind(f.resolver, q)
	require.NoError(t, err)

	return a
}

func (f *fixture) field(t *testing.T, owner reflect.Type, name string, fl flags.Binding) access.Accessor {
	t.Helper()

	return f.bind(t, resolve.Query{Type: owner, Kind: member.Field, Name: name, Flags: fl})
}

func (f *fixture) property(t *testing.T, owner reflect.Type, name string) access.Accessor {
	t.Helper()

	return f.bind(t, resolve.Query{Type: owner, Kind: member.Property, Name: name, Flags: flags.Default})
}

func (f *fixture) method(t *testing.T, owner reflect.Type, name string, fl flags.Binding, args ...any) access.Accessor {
	t.Helper()

	return f.bind(t, resolve.Query{Type: owner, Kind: member.Method, Name: name, Flags: fl, Args: resolve.ArgTypes(args)})
}

func TestFieldAccessor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := &people.Person{}

	t.Run("unexported round trip", func(t *testing.T) {
		name := f.field(t, personType, "name", flags.InstanceAnyVisibility)

		require.NoError(t, access.Set(name, p, "Ann"))

		got, err := access.Get(name, p)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)
		assert.Equal(t, "Ann", p.Name())
	})

	t.Run("read from a value copy", func(t *testing.T) {
		age := f.field(t, personType, "age", flags.InstanceAnyVisibility)

		p.SetAge(41)

		got, err := access.Get(age, *p)
		require.NoError(t, err)
		assert.Equal(t, 41, got)
	})

	t.Run("write to a value is refused", func(t *testing.T) {
		age := f.field(t, personType, "age", flags.InstanceAnyVisibility)

		err := access.Set(age, *p, 7)
		require.ErrorIs(t, err, access.ErrNotAddressable)
		assert.Equal(t, 41, p.Age())
	})

	t.Run("no implicit numeric conversion", func(t *testing.T) {
		meters := f.field(t, personType, "metersTravelled", flags.InstanceAnyVisibility)

		err := access.Set(meters, p, 10)
		require.ErrorIs(t, err, member.ErrTypeMismatch)

		var mismatch *member.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, reflect.TypeFor[float64](), mismatch.Expected)
		assert.Equal(t, reflect.TypeFor[int](), mismatch.Actual)
		assert.Contains(t, mismatch.Reason, "lossy")

		err = access.Set(meters, p, int32(10))
		require.ErrorAs(t, err, &mismatch)
		assert.Contains(t, mismatch.Reason, "widening")

		assert.InDelta(t, 0.0, p.MetersTravelled(), 0)
	})

	t.Run("nil into a value field", func(t *testing.T) {
		age := f.field(t, personType, "age", flags.InstanceAnyVisibility)

		err := access.Set(age, p, nil)
		require.ErrorIs(t, err, member.ErrNullAssignment)
		assert.ErrorContains(t, err, "people.Person.age")
	})

	t.Run("nil into a pointer field", func(t *testing.T) {
		nick := f.field(t, personType, "Nickname", flags.Default)

		name := "annie"
		p.Nickname = &name

		require.NoError(t, access.Set(nick, p, nil))
		assert.Nil(t, p.Nickname)
	})

	t.Run("wrong instance type", func(t *testing.T) {
		name := f.field(t, personType, "name", flags.InstanceAnyVisibility)

		_, err := access.Get(name, &people.Visitor{})
		assert.ErrorIs(t, err, member.ErrTypeMismatch)

		_, err = access.Get(name, nil)
		assert.ErrorIs(t, err, access.ErrNilInstance)

		_, err = access.Get(name, (*people.Person)(nil))
		assert.ErrorIs(t, err, access.ErrNilInstance)
	})

	t.Run("promoted field of an embedded struct", func(t *testing.T) {
		e := &people.Employee{}
		name := f.field(t, employeeType, "name", flags.InstanceAnyVisibility)

		require.NoError(t, access.Set(name, e, "Robert"))
		assert.Equal(t, "Robert", e.Name())
	})
}

type Node struct {
	*Leaf
}

type Leaf struct {
	Value int
}

func TestFieldAccessor_EmbeddedPointer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	value := f.field(t, reflect.TypeFor[Node](), "Value", flags.Default)

	n := &Node{}

	_, err := access.Get(value, n)
	require.ErrorIs(t, err, access.ErrNilEmbedded)

	require.NoError(t, access.Set(value, n, 3))
	require.NotNil(t, n.Leaf)
	assert.Equal(t, 3, n.Value)
}

type Shelf struct {
	*Crate
}

type Crate struct {
	items int
}

func (c *Crate) Count() int     { return c.items }
func (c *Crate) SetCount(n int) { c.items = n }
func (c *Crate) Add(n int)      { c.items += n }

type Loud struct {
	fmt.Stringer
}

func TestAccessor_PromotedThroughNilEmbedded(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	shelfType := reflect.TypeFor[Shelf]()

	count := f.property(t, shelfType, "Count")
	add := f.method(t, shelfType, "Add", flags.Default, 1)
	assert.Equal(t, []int{0}, add.Descriptor().Via)

	s := &Shelf{}

	_, err := access.Get(count, s)
	require.ErrorIs(t, err, access.ErrNilEmbedded)
	require.ErrorIs(t, access.Set(count, s, 2), access.ErrNilEmbedded)

	_, err = access.Invoke(add, s, []any{1})
	require.ErrorIs(t, err, access.ErrNilEmbedded)

	s.Crate = &Crate{}
	require.NoError(t, access.Set(count, s, 2))

	_, err = access.Invoke(add, s, []any{3})
	require.NoError(t, err)

	got, err := access.Get(count, s)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	t.Run("embedded interface", func(t *testing.T) {
		str := f.method(t, reflect.TypeFor[Loud](), "String", flags.Default)

		_, err := access.Invoke(str, &Loud{}, nil)
		require.ErrorIs(t, err, access.ErrNilEmbedded)

		got, err := access.Invoke(str, &Loud{Stringer: friend("Al")}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Al", got)
	})

	t.Run("declared members need no check", func(t *testing.T) {
		name := f.property(t, personType, "Name")
		assert.Nil(t, name.Descriptor().Via)
		assert.Nil(t, name.Descriptor().SetterVia)
	})
}

func TestFieldAccessor_Static(t *testing.T) {
	f := newFixture(t)
	total := f.field(t, personType, "totalPeopleCreated", flags.StaticAnyVisibility)

	before := people.TotalPeopleCreated()
	t.Cleanup(func() { _ = access.Set(total, nil, before) })

	got, err := access.Get(total, nil)
	require.NoError(t, err)
	assert.Equal(t, before, got)

	require.NoError(t, access.Set(total, nil, before+10))
	assert.Equal(t, before+10, people.TotalPeopleCreated())
}

func TestPropertyAccessor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := &people.Person{}

	t.Run("getter and setter", func(t *testing.T) {
		name := f.property(t, personType, "Name")

		require.NoError(t, access.Set(name, p, "Ann"))

		got, err := access.Get(name, p)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)
	})

	t.Run("write only", func(t *testing.T) {
		password := f.property(t, personType, "Password")

		require.NoError(t, access.Set(password, p, "secret"))

		_, err := access.Get(password, p)
		require.ErrorIs(t, err, member.ErrUnsupported)

		var unsupported *member.UnsupportedOperationError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "get", unsupported.Op)
	})

	t.Run("read only", func(t *testing.T) {
		id := f.property(t, personType, "ID")

		err := access.Set(id, p, 5)
		require.ErrorIs(t, err, member.ErrUnsupported)
		assert.ErrorIs(t, access.Check(id, 5), member.ErrUnsupported)
	})

	t.Run("setter error is returned", func(t *testing.T) {
		birthday := f.property(t, personType, "Birthday")

		err := access.Set(birthday, p, time.Now().AddDate(1, 0, 0))
		require.ErrorContains(t, err, "in the future")
		assert.True(t, p.Birthday().IsZero())

		born := time.Date(1990, time.March, 3, 0, 0, 0, 0, time.UTC)
		require.NoError(t, access.Set(birthday, p, born))
		assert.Equal(t, born, p.Birthday())
	})

	t.Run("check without writing", func(t *testing.T) {
		age := f.property(t, personType, "Age")

		require.NoError(t, access.Check(age, 3))
		assert.ErrorIs(t, access.Check(age, "3"), member.ErrTypeMismatch)
		assert.Equal(t, 0, p.Age())
	})

	t.Run("static property", func(t *testing.T) {
		total := f.property(t, personType, "TotalPeopleCreated")

		got, err := access.Get(total, nil)
		require.NoError(t, err)
		assert.IsType(t, 0, got)
	})

	t.Run("promoted property", func(t *testing.T) {
		e := &people.Employee{}
		e.SetName("Eve")
		name := f.property(t, employeeType, "Name")

		got, err := access.Get(name, e)
		require.NoError(t, err)
		assert.Equal(t, "Eve", got)
	})
}

// named builds a person without going through NewPerson, which counts
// instances and must not run from parallel tests.
func named(name string) *people.Person {
	p := &people.Person{}
	p.SetName(name)

	return p
}

type friend string

func (f friend) Name() string { return string(f) }

func (f friend) String() string { return string(f) }

func TestMethodInvoker(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	t.Run("by reference parameter is written back", func(t *testing.T) {
		p := &people.Person{}
		p.SetMetersTravelled(1)

		walk := f.method(t, personType, "Walk", flags.InstanceAnyVisibility, 4.0, nil)
		args := []any{4.0, nil}

		got, err := access.Invoke(walk, p, args)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.InDelta(t, 5.0, args[1], 1e-9)

		args = []any{1.5, 0.0}
		_, err = access.Invoke(walk, p, args)
		require.NoError(t, err)
		assert.InDelta(t, 6.5, args[1], 1e-9)
	})

	t.Run("covariant result keeps the instance", func(t *testing.T) {
		p := &people.Person{}
		bob := named("Bob")

		add := f.method(t, personType, "AddFriend", flags.Default, bob)

		got, err := access.Invoke(add, p, []any{bob})
		require.NoError(t, err)
		assert.Same(t, bob, got)

		got, err = access.Invoke(add, p, []any{friend("Al")})
		require.NoError(t, err)
		assert.Equal(t, friend("Al"), got)
		assert.Len(t, p.Friends(), 2)
	})

	t.Run("variadic", func(t *testing.T) {
		p := named("Ann")

		greet := f.method(t, personType, "Greet", flags.Default, "Bob", "Cy")

		got, err := access.Invoke(greet, p, []any{"Bob", "Cy"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann greets Bob", "Ann greets Cy"}, got)

		got, err = access.Invoke(greet, p, []any{[]string{"Di"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann greets Di"}, got)

		got, err = access.Invoke(greet, p, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("trailing error", func(t *testing.T) {
		p := named("Ann")
		rename := f.method(t, personType, "Rename", flags.Default, "")

		got, err := access.Invoke(rename, p, []any{"Anne"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", got)

		_, err = access.Invoke(rename, p, []any{""})
		require.ErrorContains(t, err, "empty name")
		assert.Equal(t, "Anne", p.Name())
	})

	t.Run("argument checks", func(t *testing.T) {
		p := &people.Person{}
		walk := f.method(t, personType, "Walk", flags.Default, 1.0)

		_, err := access.Invoke(walk, p, []any{})
		require.ErrorIs(t, err, access.ErrArgCount)

		_, err = access.Invoke(walk, p, []any{1})
		require.ErrorIs(t, err, member.ErrTypeMismatch)

		_, err = access.Invoke(walk, p, []any{nil})
		require.ErrorIs(t, err, member.ErrNullAssignment)
	})

	t.Run("registered method through the embedded value", func(t *testing.T) {
		e := &people.Employee{}

		stroll := f.method(t, employeeType, "stroll", flags.InstanceAnyVisibility, 4.0)
		_, err := access.Invoke(stroll, e, []any{4.0})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, e.MetersTravelled(), 1e-9)

		walk := f.method(t, employeeType, "Walk", flags.Default, 4.0)
		_, err = access.Invoke(walk, e, []any{4.0})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, e.MetersTravelled(), 1e-9)
	})

	t.Run("static method", func(t *testing.T) {
		total := f.method(t, personType, "GetTotalPeopleCreated", flags.StaticAnyVisibility)

		got, err := access.Invoke(total, nil, nil)
		require.NoError(t, err)
		assert.IsType(t, 0, got)
	})

	t.Run("pointer receiver needs an addressable instance", func(t *testing.T) {
		setName := f.method(t, personType, "SetName", flags.Default, "x")

		_, err := access.Invoke(setName, people.Person{}, []any{"x"})
		require.ErrorIs(t, err, access.ErrNotAddressable)

		p := &people.Person{}
		_, err = access.Invoke(setName, p, []any{"x"})
		require.NoError(t, err)
		assert.Equal(t, "x", p.Name())
	})

	t.Run("value receiver runs on a copy", func(t *testing.T) {
		str := f.method(t, reflect.TypeFor[friend](), "Name", flags.Default)

		got, err := access.Invoke(str, friend("Bo"), nil)
		require.NoError(t, err)
		assert.Equal(t, "Bo", got)
	})

	t.Run("not invocable", func(t *testing.T) {
		name := f.field(t, personType, "name", flags.InstanceAnyVisibility)

		_, err := access.Invoke(name, &people.Person{}, nil)
		assert.ErrorIs(t, err, member.ErrUnsupported)

		_, err = access.Construct(name, nil)
		assert.ErrorIs(t, err, member.ErrUnsupported)
	})
}

type Point struct{ X, Y int }

func TestConstructorInvoker(t *testing.T) {
	f := newFixture(t)
	ctor := func(t *testing.T, owner reflect.Type, fl flags.Binding, args ...any) access.Accessor {
		t.Helper()

		return f.bind(t, resolve.Query{Type: owner, Kind: member.Constructor, Flags: fl, Args: resolve.ArgTypes(args)})
	}

	t.Run("registered factory", func(t *testing.T) {
		got, err := access.Construct(ctor(t, personType, flags.Default, "Ann", 30), []any{"Ann", 30})
		require.NoError(t, err)
		require.IsType(t, &people.Person{}, got)
		assert.Equal(t, "Ann", got.(*people.Person).Name())
	})

	t.Run("zero value", func(t *testing.T) {
		got, err := access.Construct(ctor(t, reflect.TypeFor[Point](), flags.Default), nil)
		require.NoError(t, err)
		assert.Equal(t, &Point{}, got)

		_, err = access.Construct(ctor(t, reflect.TypeFor[Point](), flags.Default), []any{1})
		assert.ErrorIs(t, err, access.ErrArgCount)
	})

	t.Run("hidden factory", func(t *testing.T) {
		got, err := access.Construct(ctor(t, personType, flags.InstanceAnyVisibility), nil)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", got.(*people.Person).Name())
	})

	t.Run("value result is boxed", func(t *testing.T) {
		reg := resolve.NewRegistry()
		require.NoError(t, reg.RegisterConstructor(reflect.TypeFor[Point](), "Origin", func(x, y int) Point {
			return Point{X: x, Y: y}
		}))

		c, err := access.NewCache().Bind(resolve.New(reg), resolve.Query{
			Type: reflect.TypeFor[Point](), Kind: member.Constructor, Flags: flags.Default,
			Args: resolve.ArgTypes([]any{1, 2}),
		})
		require.NoError(t, err)

		got, err := access.Construct(c, []any{1, 2})
		require.NoError(t, err)
		assert.Equal(t, &Point{X: 1, Y: 2}, got)
	})
}
