package builder_test

import "github.com/sghaida/builderbuilder/builder"

// Person is the product of PersonBuilder.
type Person struct {
	Name string
	Age  int
}

// PersonBuilder mixes well-formed builder methods with a few that break the
// builder shape on purpose.
type PersonBuilder interface {
	builder.Builder[Person]

	WithName(name string) PersonBuilder
	WithAge(age int) PersonBuilder
	WithTags(tags []string) PersonBuilder
	WithNicknames(nicknames ...string) PersonBuilder

	Name() string
	Age() int
	Active() bool
	Score() float64
	Tags() []string
	Nicknames() []string

	// not builder-shaped
	Reset()
	Rename(first, last string) PersonBuilder
	Label(v string) string

	String() string
	Equal(other any) bool
	Hash() int
}

// Counter uses the getter naming convention.
type Counter interface {
	builder.Builder[int]

	Count(n int) Counter
	GetCount() int
	GetLabel() string
	Label() string
}

//
// -----------------------------------------------------------------------------
// Forwarding types, shaped like cmd/buildergen output
// -----------------------------------------------------------------------------

type personBuilderProxy struct {
	p *builder.Proxy
}

func newPersonBuilderProxy(p *builder.Proxy) PersonBuilder {
	return &personBuilderProxy{p: p}
}

func (b *personBuilderProxy) BuilderProxy() *builder.Proxy { return b.p }

func (b *personBuilderProxy) Build() (Person, error) {
	res, err := b.p.Call("Build")
	return builder.As[Person](res), err
}

func (b *personBuilderProxy) WithName(v0 string) PersonBuilder {
	return builder.As[PersonBuilder](b.p.MustCall("WithName", v0))
}

func (b *personBuilderProxy) WithAge(v0 int) PersonBuilder {
	return builder.As[PersonBuilder](b.p.MustCall("WithAge", v0))
}

func (b *personBuilderProxy) WithTags(v0 []string) PersonBuilder {
	return builder.As[PersonBuilder](b.p.MustCall("WithTags", v0))
}

func (b *personBuilderProxy) WithNicknames(v0 ...string) PersonBuilder {
	return builder.As[PersonBuilder](b.p.MustCall("WithNicknames", v0))
}

func (b *personBuilderProxy) Name() string { return builder.As[string](b.p.MustCall("Name")) }

func (b *personBuilderProxy) Age() int { return builder.As[int](b.p.MustCall("Age")) }

func (b *personBuilderProxy) Active() bool { return builder.As[bool](b.p.MustCall("Active")) }

func (b *personBuilderProxy) Score() float64 { return builder.As[float64](b.p.MustCall("Score")) }

func (b *personBuilderProxy) Tags() []string { return builder.As[[]string](b.p.MustCall("Tags")) }

func (b *personBuilderProxy) Nicknames() []string {
	return builder.As[[]string](b.p.MustCall("Nicknames"))
}

func (b *personBuilderProxy) Reset() { b.p.MustCall("Reset") }

func (b *personBuilderProxy) Rename(v0 string, v1 string) PersonBuilder {
	return builder.As[PersonBuilder](b.p.MustCall("Rename", v0, v1))
}

func (b *personBuilderProxy) Label(v0 string) string {
	return builder.As[string](b.p.MustCall("Label", v0))
}

func (b *personBuilderProxy) String() string { return builder.As[string](b.p.MustCall("String")) }

func (b *personBuilderProxy) Equal(v0 any) bool { return builder.As[bool](b.p.MustCall("Equal", v0)) }

func (b *personBuilderProxy) Hash() int { return builder.As[int](b.p.MustCall("Hash")) }

type counterProxy struct {
	p *builder.Proxy
}

func (b *counterProxy) BuilderProxy() *builder.Proxy { return b.p }

func (b *counterProxy) Build() (int, error) {
	res, err := b.p.Call("Build")
	return builder.As[int](res), err
}

func (b *counterProxy) Count(v0 int) Counter { return builder.As[Counter](b.p.MustCall("Count", v0)) }

func (b *counterProxy) GetCount() int { return builder.As[int](b.p.MustCall("GetCount")) }

func (b *counterProxy) GetLabel() string { return builder.As[string](b.p.MustCall("GetLabel")) }

func (b *counterProxy) Label() string { return builder.As[string](b.p.MustCall("Label")) }

// newTestRegistry registers the fixtures in a fresh registry so tests never
// touch DefaultRegistry.
func newTestRegistry() *builder.Registry {
	r := builder.NewRegistry()
	if err := builder.RegisterIn[PersonBuilder](r, newPersonBuilderProxy); err != nil {
		panic(err)
	}
	err := builder.RegisterIn[Counter](r, func(p *builder.Proxy) Counter {
		return &counterProxy{p: p}
	}, builder.WithStrategy(builder.GetterStrategy))
	if err != nil {
		panic(err)
	}
	return r
}

// personFromBuilder is the usual callback: it reads the builder back.
func personFromBuilder(b PersonBuilder) (Person, error) {
	return Person{Name: b.Name(), Age: b.Age()}, nil
}
