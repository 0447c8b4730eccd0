package builder

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shapeContract interface {
	Builder[string]
	WithName(name string) shapeContract
	Name() string
	Loose(v int) any
	Narrow(v int) string
	Many(vs ...string) shapeContract
	Tuple() (int, string)
	Check() error
	Fetch() (int, error)
}

func methodOf(t *testing.T, name string) Method {
	t.Helper()
	spec, err := SpecOf(reflect.TypeFor[shapeContract]())
	require.NoError(t, err)
	m, ok := spec.Method(name)
	require.True(t, ok, name)
	return m
}

//
// -----------------------------------------------------------------------------
// Method descriptors
// -----------------------------------------------------------------------------

// TestMethodOf_ResultShapes verifies how result lists map onto Out and
// ReturnsError.
func TestMethodOf_ResultShapes(t *testing.T) {
	t.Parallel()

	build := methodOf(t, "Build")
	assert.Equal(t, reflect.TypeFor[string](), build.Out)
	assert.True(t, build.ReturnsError)

	check := methodOf(t, "Check")
	assert.True(t, check.Void())
	assert.True(t, check.ReturnsError)

	fetch := methodOf(t, "Fetch")
	assert.Equal(t, reflect.TypeFor[int](), fetch.Out)
	assert.True(t, fetch.ReturnsError)

	tuple := methodOf(t, "Tuple")
	assert.True(t, tuple.Void())
	assert.False(t, tuple.ReturnsError)

	many := methodOf(t, "Many")
	assert.True(t, many.Variadic)
	assert.Equal(t, 1, many.Arity())
	assert.True(t, many.acceptsArgs(0))
	assert.True(t, many.acceptsArgs(3))
}

// TestSpecOf_NotInterface verifies non-interface contracts are rejected.
func TestSpecOf_NotInterface(t *testing.T) {
	t.Parallel()

	_, err := SpecOf(reflect.TypeFor[int]())
	assert.Equal(t, NotInterfaceError{Type: "int"}, err)

	_, err = SpecOf(nil)
	assert.Equal(t, NotInterfaceError{Type: "<nil>"}, err)
}

// TestNewSpec_SortedAndDeduplicated verifies Methods is sorted by name and the
// last duplicate wins.
func TestNewSpec_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	s := NewSpec(nil,
		Method{Name: "b"},
		Method{Name: "a"},
		Method{Name: "b", Out: reflect.TypeFor[int]()},
	)

	got := s.Methods()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, reflect.TypeFor[int](), got[1].Out)
	assert.Equal(t, "<nil>", s.Name())
}

//
// -----------------------------------------------------------------------------
// Strategies
// -----------------------------------------------------------------------------

// TestShapeStrategy_Writers verifies the chainable writer rule.
func TestShapeStrategy_Writers(t *testing.T) {
	t.Parallel()

	s := ShapeStrategy(reflect.TypeFor[shapeContract]())

	assert.True(t, s.IsWriter(methodOf(t, "WithName"), []any{"x"}))
	assert.True(t, s.IsWriter(methodOf(t, "Loose"), []any{1}), "any is a supertype")
	assert.False(t, s.IsWriter(methodOf(t, "Narrow"), []any{1}))
	assert.True(t, s.IsWriter(methodOf(t, "Many"), []any{[]string{"x", "y"}}), "variadic")
	assert.False(t, s.IsWriter(methodOf(t, "Many"), nil))
	assert.False(t, s.IsWriter(methodOf(t, "WithName"), nil))
}

// TestShapeStrategy_Readers verifies zero-arg non-void methods are readers.
func TestShapeStrategy_Readers(t *testing.T) {
	t.Parallel()

	s := ShapeStrategy(reflect.TypeFor[shapeContract]())

	assert.True(t, s.IsReader(methodOf(t, "Name"), nil))
	assert.True(t, s.IsReader(methodOf(t, "Fetch"), nil))
	assert.False(t, s.IsReader(methodOf(t, "Check"), nil))
	assert.False(t, s.IsReader(methodOf(t, "Tuple"), nil))
}

// TestShapeStrategy_Keys verifies writer prefixes are dropped and the first
// letter lowercased.
func TestShapeStrategy_Keys(t *testing.T) {
	t.Parallel()

	s := ShapeStrategy(nil)
	cases := []struct {
		name      string
		writerKey string
		readerKey string
	}{
		{"WithName", "name", "withName"},
		{"SetName", "name", "setName"},
		{"withName", "name", "withName"},
		{"Name", "name", "name"},
		{"name", "name", "name"},
		{"Settings", "settings", "settings"},
		{"With", "with", "with"},
	}
	for _, tc := range cases {
		m := Method{Name: tc.name}
		assert.Equal(t, tc.writerKey, s.WriterKey(m), tc.name)
		assert.Equal(t, tc.readerKey, s.ReaderKey(m), tc.name)
	}
}

// TestPrefixStrategy verifies the getter naming convention.
func TestPrefixStrategy(t *testing.T) {
	t.Parallel()

	self := reflect.TypeFor[shapeContract]()
	intType := reflect.TypeFor[int]()

	s := PrefixStrategy("get")(self)
	getCount := Method{Name: "getCount", Out: intType}
	count := Method{Name: "count", In: []reflect.Type{intType}, Out: self}

	assert.True(t, s.IsReader(getCount, nil))
	assert.False(t, s.IsReader(Method{Name: "count", Out: intType}, nil))
	assert.False(t, s.IsReader(Method{Name: "getNothing"}, nil))
	assert.Equal(t, "count", s.ReaderKey(getCount))
	assert.True(t, s.IsWriter(count, []any{1}))
	assert.Equal(t, "count", s.WriterKey(count))

	g := GetterStrategy(self)
	assert.Equal(t, "count", g.ReaderKey(Method{Name: "GetCount"}))
	assert.Equal(t, "firstname", g.ReaderKey(Method{Name: "GetFirstName"}))
	assert.Equal(t, "withName", g.WriterKey(Method{Name: "WithName"}))
}

//
// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// TestEngine_Classify verifies the classification order.
func TestEngine_Classify(t *testing.T) {
	t.Parallel()

	spec, err := SpecOf(reflect.TypeFor[shapeContract]())
	require.NoError(t, err)
	e := newEngine(spec, newConfig(nil))

	cases := []struct {
		method string
		args   []any
		want   Kind
	}{
		{"WithName", []any{"x"}, KindWriter},
		{"Name", nil, KindReader},
		{"Build", nil, KindBuildReader},
		{"Check", nil, KindUnclassifiable},
		{"Narrow", []any{1}, KindUnclassifiable},
		{"String", nil, KindString},
		{"Hash", nil, KindHash},
		{"Equal", []any{nil}, KindEqual},
	}
	for _, tc := range cases {
		m, ok := spec.Method(tc.method)
		if !ok {
			m = Method{Name: tc.method}
		}
		assert.Equal(t, tc.want, e.Classify(m, tc.args), tc.method)
	}
}

// TestKind_String verifies kind names, including out-of-range values.
func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "writer", KindWriter.String())
	assert.Equal(t, "build", KindBuildReader.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

// TestBuildMethod verifies the build reader name comes from Builder.
func TestBuildMethod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Build", BuildMethod)
}
