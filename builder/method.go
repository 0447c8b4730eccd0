package builder

import (
	"reflect"
	"sort"
)

var errorType = reflect.TypeFor[error]()

// Method describes one method of a builder contract.
//
// Out is the declared value result and is nil for methods that return nothing
// (or only an error). A trailing error result is reported by ReturnsError and
// is never treated as the return type.
type Method struct {
	Name         string
	In           []reflect.Type
	Out          reflect.Type
	ReturnsError bool
	Variadic     bool
}

// MethodOf describes the method name with function type fn.
// fn must not carry a receiver (as returned by reflect.Type.Method on an
// interface type).
//
// Result lists other than (), (T), (error) and (T, error) leave Out nil, so such
// methods never classify as writers or readers.
func MethodOf(name string, fn reflect.Type) Method {
	m := Method{Name: name, Variadic: fn.IsVariadic()}
	if n := fn.NumIn(); n > 0 {
		m.In = make([]reflect.Type, n)
		for i := 0; i < n; i++ {
			m.In[i] = fn.In(i)
		}
	}

	switch fn.NumOut() {
	case 1:
		if fn.Out(0) == errorType {
			m.ReturnsError = true
		} else {
			m.Out = fn.Out(0)
		}
	case 2:
		if fn.Out(1) == errorType {
			m.Out = fn.Out(0)
			m.ReturnsError = true
		}
	}
	return m
}

// Arity returns the number of declared parameters.
func (m Method) Arity() int { return len(m.In) }

// Void reports whether the method has no value result.
func (m Method) Void() bool { return m.Out == nil }

// acceptsArgs reports whether n actual arguments fit the declared parameters.
func (m Method) acceptsArgs(n int) bool {
	if m.Variadic {
		return n >= len(m.In)-1
	}
	return n == len(m.In)
}

// Spec is an immutable builder contract: the type generated builders stand in
// for, plus its methods keyed by name.
type Spec struct {
	self    reflect.Type
	methods map[string]Method
	names   []string
}

// SpecFor returns the Spec of interface type T.
func SpecFor[T any]() (Spec, error) {
	return SpecOf(reflect.TypeFor[T]())
}

// SpecOf returns the Spec of the interface type t, including methods promoted
// from embedded interfaces.
func SpecOf(t reflect.Type) (Spec, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return Spec{}, NotInterfaceError{Type: typeName(t)}
	}

	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		rm := t.Method(i)
		methods = append(methods, MethodOf(rm.Name, rm.Type))
	}
	return NewSpec(t, methods...), nil
}

// NewSpec assembles a Spec from explicit method descriptors.
//
// self is the type writers must return (or be assignable to) in order to chain;
// it is usually the contract's interface type. Later methods with a duplicate
// name replace earlier ones.
func NewSpec(self reflect.Type, methods ...Method) Spec {
	s := Spec{
		self:    self,
		methods: make(map[string]Method, len(methods)),
	}
	for _, m := range methods {
		if _, dup := s.methods[m.Name]; !dup {
			s.names = append(s.names, m.Name)
		}
		s.methods[m.Name] = m
	}
	sort.Strings(s.names)
	return s
}

// Self returns the contract type.
func (s Spec) Self() reflect.Type { return s.self }

// Name returns a printable name for the contract.
func (s Spec) Name() string { return typeName(s.self) }

// Method returns the method declared under name.
func (s Spec) Method(name string) (Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Methods returns the declared methods sorted by name.
func (s Spec) Methods() []Method {
	out := make([]Method, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.methods[name])
	}
	return out
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
