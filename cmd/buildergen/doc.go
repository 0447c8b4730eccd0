// Command buildergen generates typed forwarding types for builder interfaces.
//
// Go cannot implement an interface at run time. buildergen closes that gap at
// build time: for every builder interface it emits an unexported type whose
// methods forward to a *builder.Proxy, and registers it so that
// builder.Make[Iface] returns a value of the interface type itself.
//
// Writing a builder interface
//
//	type PersonBuilder interface {
//		builder.Builder[Person]           // Build() (Person, error)
//		WithName(name string) PersonBuilder
//		WithAge(age int) PersonBuilder
//		Name() string
//		Age() int
//	}
//
// Embedded interfaces of the same package are flattened; builder.Builder[R]
// contributes Build. Interfaces from other packages cannot be embedded.
//
// Typical go:generate usage
//
// Put this next to the interface:
//
//	//go:generate go run github.com/sghaida/builderbuilder/cmd/buildergen -type PersonBuilder -out person_builder.gen.go
//
// Flags:
//
//	-src       package directory (default ".")
//	-type      comma-separated interface names
//	-out       output file
//	-strategy  shape (default) or getter
//	-prefix    reader prefix for the getter strategy (default "Get")
//	-config    YAML file with several targets, instead of the flags above
//	-v         debug logging (or BUILDERGEN_LOG=debug)
//
// Config format (-config)
//
//	targets:
//	  - out: person_builder.gen.go
//	    types: [PersonBuilder]
//	  - out: account_builder.gen.go
//	    types: [AccountBuilder]
//	    strategy: getter
//
// Relative paths are resolved against the config file's directory.
//
// Generated API (summary)
//
//   - type <iface>Proxy struct{ p *builder.Proxy }
//   - one forwarding method per interface method
//   - BuilderProxy() *builder.Proxy
//   - init() registering the factory via builder.MustRegister
//
// Methods with a trailing error result return the dispatch error; methods
// without one panic on it (builder.Proxy.MustCall).
//
// Exit codes: 0 success, 1 generation failed, 2 usage or config error.
package main
