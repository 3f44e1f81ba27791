package runtime

import (
	"math"
	"strconv"
)

// IsTruthy reports the truthiness of a value: nil and false are falsy.
func IsTruthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue, nil:
		return false
	default:
		return true
	}
}

// IsEqual compares without coercion. Callables and instances compare by
// identity.
func IsEqual(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	default:
		return a == b
	}
}

// FormatNumber prints integral values without a trailing ".0".
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Stringify renders a value the way `print` shows it.
func Stringify(val Value) string {
	switch v := val.(type) {
	case NilValue, nil:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case NumberValue:
		return FormatNumber(v.Val)
	case StringValue:
		return v.Val
	case *NativeFunctionValue:
		return "<native fn>"
	case *FunctionValue:
		return "<fn " + v.Name() + ">"
	case *ClassValue:
		return v.Name
	case *InstanceValue:
		return v.Class.Name + " instance"
	default:
		return "<" + val.Kind().String() + ">"
	}
}
