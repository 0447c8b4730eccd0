// Package builder implements fluent builders from nothing but an interface
// contract and a callback.
//
// A builder contract is a Go interface made of three kinds of methods:
//
//   - writers: one argument, returning the contract itself (or an interface the
//     contract implements) so calls can be chained
//   - readers: no arguments, returning the last value written under the same
//     key, or a zero default
//   - Build, inherited from Builder[R]: runs the callback and returns its result
//
// String, Equal and Hash are answered by the dispatch engine itself: String
// renders the stored values, Equal and Hash use the identity of the engine and
// never the stored values.
//
// Go cannot create a type that satisfies an interface at run time, so there
// are two ways in:
//
//   - Dynamic: Generate returns a *Proxy and every call goes through
//     Proxy.Call(name, args...).
//   - Typed: cmd/buildergen emits a small forwarding type for the interface and
//     registers it in init(). Make[T] then returns a value of the interface
//     type T directly.
//
// Example
//
//	type PersonBuilder interface {
//		builder.Builder[Person]
//		WithName(name string) PersonBuilder
//		Name() string
//	}
//
//	b := builder.MustMake[PersonBuilder](builder.CallbackFunc[PersonBuilder, Person](
//		func(b PersonBuilder) (Person, error) { return Person{Name: b.Name()}, nil },
//	))
//	p, err := b.WithName("Ann").Build()
//
// Which methods count as writers and readers, and under which key they store
// values, is decided by a Strategy. ShapeStrategy (the default) keys values by
// method name. PrefixStrategy / GetterStrategy only accept readers carrying a
// prefix such as "Get" and key them by the lowercased remainder.
//
// A Proxy is not safe for concurrent use; builders are meant to be filled and
// built by a single goroutine.
//
// Import
//
//	"github.com/sghaida/builderbuilder/builder"
package builder
