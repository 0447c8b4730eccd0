// Package builderbuilder implements fluent builders from an interface contract
// and a callback, without hand-written builder types.
//
// The repository is split the same way most builder tooling is:
//
//   - builder: the runtime. A dispatch engine classifies each call on a
//     generated builder (writer, reader, Build, String/Equal/Hash), stores and
//     reads values, and runs the callback on Build.
//   - cmd/buildergen: a code generator emitting, per builder interface, a small
//     forwarding type so builder.Make[Iface] returns the interface type itself.
//   - examples/person: generated builders for two domain types, one per naming
//     strategy.
//
// Package builderbuilder See subpackages:
//   - builder: library package used by generated code
//   - cmd/buildergen: code generator
//   - examples/*: runnable examples
package builderbuilder
