package primitive

import (
	"fmt"
	"reflect"
)

type conversionPair struct {
	From, To KindEnum
}

// lossless lists numeric conversions that never lose precision. Pairs of the
// same kind are handled separately.
var lossless = map[conversionPair]struct{}{
	{KindInt, KindInt64}: {},

	{KindInt8, KindInt}: {}, {KindInt8, KindInt16}: {}, {KindInt8, KindInt32}: {},
	{KindInt8, KindInt64}: {}, {KindInt8, KindFloat32}: {}, {KindInt8, KindFloat64}: {},

	{KindInt16, KindInt}: {}, {KindInt16, KindInt32}: {}, {KindInt16, KindInt64}: {},
	{KindInt16, KindFloat32}: {}, {KindInt16, KindFloat64}: {},

	{KindInt32, KindInt}: {}, {KindInt32, KindInt64}: {}, {KindInt32, KindFloat64}: {},

	{KindUint, KindUint64}: {},

	{KindUint8, KindUint}: {}, {KindUint8, KindUint16}: {}, {KindUint8, KindUint32}: {},
	{KindUint8, KindUint64}: {}, {KindUint8, KindInt}: {}, {KindUint8, KindInt16}: {},
	{KindUint8, KindInt32}: {}, {KindUint8, KindInt64}: {}, {KindUint8, KindFloat32}: {},
	{KindUint8, KindFloat64}: {},

	{KindUint16, KindUint}: {}, {KindUint16, KindUint32}: {}, {KindUint16, KindUint64}: {},
	{KindUint16, KindInt}: {}, {KindUint16, KindInt32}: {}, {KindUint16, KindInt64}: {},
	{KindUint16, KindFloat32}: {}, {KindUint16, KindFloat64}: {},

	{KindUint32, KindUint64}: {}, {KindUint32, KindInt64}: {}, {KindUint32, KindFloat64}: {},

	{KindFloat32, KindFloat64}: {},
}

// IsWidening reports whether every value of from fits into to without loss.
func IsWidening(from, to KindEnum) bool {
	if !from.IsNumber() || !to.IsNumber() {
		return false
	}

	if from == to {
		return true
	}

	_, ok := lossless[conversionPair{from, to}]

	return ok
}

// ExplainMismatch describes why a value of type from was refused for a member
// of type to. It returns "" when there is nothing more specific to say than
// "not assignable".
func ExplainMismatch(from, to reflect.Type) string {
	fk, tk := Underlying(from), Underlying(to)

	switch {
	case fk != 0 && fk == tk:
		if FromReflectType(from) == KindPrimitiveEnum || FromReflectType(to) == KindPrimitiveEnum {
			return fmt.Sprintf("enum conversion from %s to %s is not applied", from, to)
		}

		return fmt.Sprintf("named type conversion from %s to %s is not applied", from, to)
	case !fk.IsNumber() || !tk.IsNumber():
		if from != nil && to != nil && from.ConvertibleTo(to) {
			return "an explicit conversion is required"
		}

		return ""
	case fk.IsFloat() && tk.IsInteger():
		return fmt.Sprintf("truncating conversion from %s to %s is not applied", from, to)
	case fk.IsSigned() && tk.IsUnsigned():
		return fmt.Sprintf("sign-changing conversion from %s to %s is not applied", from, to)
	case IsWidening(fk, tk):
		return fmt.Sprintf("implicit numeric widening from %s to %s is not applied", from, to)
	default:
		return fmt.Sprintf("lossy implicit numeric conversion from %s to %s is not applied", from, to)
	}
}
