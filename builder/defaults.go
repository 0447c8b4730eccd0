package builder

import "reflect"

// primitiveDefaults holds the zero value returned for an unwritten reader
// whose result is primitive-like. Named types over these kinds get their own
// typed zero (see primitiveDefault).
var primitiveDefaults = map[reflect.Kind]any{
	reflect.Bool:       false,
	reflect.Int:        int(0),
	reflect.Int8:       int8(0),
	reflect.Int16:      int16(0),
	reflect.Int32:      int32(0), // rune
	reflect.Int64:      int64(0),
	reflect.Uint:       uint(0),
	reflect.Uint8:      uint8(0), // byte
	reflect.Uint16:     uint16(0),
	reflect.Uint32:     uint32(0),
	reflect.Uint64:     uint64(0),
	reflect.Uintptr:    uintptr(0),
	reflect.Float32:    float32(0),
	reflect.Float64:    float64(0),
	reflect.Complex64:  complex64(0),
	reflect.Complex128: complex128(0),
}

// IsPrimitive reports whether t is primitive-like: a boolean or numeric kind.
// Strings, pointers, collections, structs and interfaces are not.
func IsPrimitive(t reflect.Type) bool {
	if t == nil {
		return false
	}
	_, ok := primitiveDefaults[t.Kind()]
	return ok
}

// primitiveDefault returns the zero value of t when t is primitive-like and
// nil otherwise.
func primitiveDefault(t reflect.Type) any {
	if t == nil {
		return nil
	}
	def, ok := primitiveDefaults[t.Kind()]
	if !ok {
		return nil
	}
	if t.PkgPath() != "" || t.Name() != t.Kind().String() {
		return reflect.Zero(t).Interface()
	}
	return def
}
