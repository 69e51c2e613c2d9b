package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"member-binder/primitive"

	"github.com/stretchr/testify/assert"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Meters float64
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Meters(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindFloat64
	// KindDuration
	// KindTime
	// KindEnum(0)
}

func TestIsWidening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to primitive.KindEnum
		expected bool
	}{
		{primitive.KindInt, primitive.KindInt, true},
		{primitive.KindInt8, primitive.KindFloat64, true},
		{primitive.KindInt32, primitive.KindFloat64, true},
		{primitive.KindInt32, primitive.KindFloat32, false},
		{primitive.KindInt64, primitive.KindInt32, false},
		{primitive.KindUint32, primitive.KindInt64, true},
		{primitive.KindFloat64, primitive.KindFloat32, false},
		{primitive.KindString, primitive.KindString, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, primitive.IsWidening(tt.from, tt.to))
		})
	}
}

type Status string

type Distance float64

func TestExplainMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to reflect.Type
		contains string
	}{
		{"widening", reflect.TypeFor[int8](), reflect.TypeFor[float64](), "widening"},
		{"lossy", reflect.TypeFor[int](), reflect.TypeFor[float32](), "lossy"},
		{"truncating", reflect.TypeFor[float64](), reflect.TypeFor[int](), "truncating"},
		{"sign", reflect.TypeFor[int8](), reflect.TypeFor[uint64](), "sign-changing"},
		{"enum", reflect.TypeFor[string](), reflect.TypeFor[Status](), "enum conversion"},
		{"named", reflect.TypeFor[float64](), reflect.TypeFor[Distance](), "named type conversion"},
		{"explicit", reflect.TypeFor[[]byte](), reflect.TypeFor[string](), "explicit conversion"},
		{"unrelated", reflect.TypeFor[string](), reflect.TypeFor[float64](), ""},
		{"struct", reflect.TypeFor[struct{}](), reflect.TypeFor[int](), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := primitive.ExplainMismatch(tt.from, tt.to)
			if tt.contains == "" {
				assert.Empty(t, got)
				return
			}

			assert.Contains(t, got, tt.contains)
		})
	}
}
