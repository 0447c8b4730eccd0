package builder

import "reflect"

// As converts a dynamic call result to T for typed wrappers.
//
// nil becomes the zero value of T. Values already of type T are returned as is.
// Numeric values are converted between numeric kinds, which lets a contract
// declare Hash() int. Anything else panics with a ResultTypeError.
func As[T any](v any) T {
	var zero T
	if v == nil {
		return zero
	}
	if t, ok := v.(T); ok {
		return t
	}

	want := reflect.TypeFor[T]()
	rv := reflect.ValueOf(v)
	if isNumeric(rv.Kind()) && isNumeric(want.Kind()) {
		return rv.Convert(want).Interface().(T)
	}
	panic(ResultTypeError{Want: typeName(want), Got: typeName(rv.Type())})
}

func isNumeric(k reflect.Kind) bool {
	return k != reflect.Bool && primitiveDefaults[k] != nil
}
