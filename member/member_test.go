package member_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"member-binder/flags"
	"member-binder/member"
)

type Boat struct{}

func TestDescriptor_String(t *testing.T) {
	t.Parallel()

	boat := reflect.TypeFor[Boat]()

	tests := []struct {
		name string
		d    member.Descriptor
		want string
	}{
		{
			name: "field",
			d:    member.Descriptor{Owner: boat, Kind: member.Field, Name: "hull", Type: reflect.TypeFor[string]()},
			want: "field member_test.Boat.hull string",
		},
		{
			name: "static method without result",
			d: member.Descriptor{
				Owner: boat, Kind: member.Method, Name: "Sail", Static: true,
				Params: []reflect.Type{reflect.TypeFor[float64](), reflect.TypeFor[*int]()},
			},
			want: "method static member_test.Boat.Sail(float64, *int)",
		},
		{
			name: "variadic method",
			d: member.Descriptor{
				Owner: boat, Kind: member.Method, Name: "Load", Variadic: true,
				Params: []reflect.Type{reflect.TypeFor[int](), reflect.TypeFor[[]string]()},
				Type:   reflect.TypeFor[bool](),
			},
			want: "method member_test.Boat.Load(int, ...string) bool",
		},
		{
			name: "constructor",
			d:    member.Descriptor{Owner: boat, Kind: member.Constructor, Name: "new", Type: boat},
			want: "constructor member_test.Boat.new()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Swim", member.TrimQualifier("Swimmer.Swim"))
	assert.Equal(t, "Swim", member.TrimQualifier("Swim"))

	assert.True(t, member.IsExportedName("Swimmer.Swim"))
	assert.False(t, member.IsExportedName("Swimmer.swim"))
	assert.False(t, member.IsExportedName("stroll"))

	d := member.Descriptor{Name: "Swimmer.Swim"}
	assert.Equal(t, "Swim", d.SimpleName())
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Property", member.Property.String())
	assert.Equal(t, "Kind(0)", member.Kind(0).String())
	assert.Equal(t, 5, member.KindTotal)

	assert.True(t, member.Method.IsCallable())
	assert.False(t, member.Field.IsCallable())
	assert.True(t, member.Property.IsValued())
	assert.False(t, member.Constructor.IsValued())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	boat := reflect.TypeFor[Boat]()

	notFound := &member.NotFoundError{
		Kind: member.Field, Type: boat, Name: "hul", Flags: flags.Public | flags.Instance,
		Suggestions: []string{"hull"},
	}
	assert.Equal(t,
		`field "hul" not found on member_test.Boat with flags Public|Instance (did you mean hull?)`,
		notFound.Error())

	wrapped := fmt.Errorf("bind: %w", notFound)
	assert.ErrorIs(t, wrapped, member.ErrNotFound)
	assert.NotErrorIs(t, wrapped, member.ErrAmbiguous)

	var target *member.NotFoundError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "hul", target.Name)

	ambiguous := &member.AmbiguousMatchError{
		Kind: member.Method, Type: boat, Name: "Sail",
		Candidates: []*member.Descriptor{
			{Owner: boat, Kind: member.Method, Name: "Sail", Params: []reflect.Type{reflect.TypeFor[any]()}},
			{Owner: boat, Kind: member.Method, Name: "Sail", Params: []reflect.Type{reflect.TypeFor[fmt.Stringer]()}},
		},
	}
	assert.ErrorIs(t, ambiguous, member.ErrAmbiguous)
	assert.Contains(t, ambiguous.Error(), "method member_test.Boat.Sail(fmt.Stringer)")

	mismatch := &member.TypeMismatchError{
		Member: "Boat.hull", Expected: reflect.TypeFor[float64](), Actual: reflect.TypeFor[int](),
		Reason: "an explicit conversion is required",
	}
	assert.ErrorIs(t, mismatch, member.ErrTypeMismatch)
	assert.Equal(t, "Boat.hull: cannot assign int to float64: an explicit conversion is required", mismatch.Error())

	null := &member.NullAssignmentError{Member: "Boat.size", Expected: reflect.TypeFor[int]()}
	assert.ErrorIs(t, null, member.ErrNullAssignment)
	assert.Equal(t, "Boat.size: cannot assign nil to int", null.Error())

	unsupported := &member.UnsupportedOperationError{Member: "Boat.Password", Op: "get"}
	assert.ErrorIs(t, unsupported, member.ErrUnsupported)
	assert.Equal(t, "Boat.Password: get is not supported", unsupported.Error())
}
