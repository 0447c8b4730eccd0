package builder

import "reflect"

// Builder is the base contract every builder interface embeds.
// Its single method is the build reader recognized by the engine.
type Builder[R any] interface {
	Build() (R, error)
}

// BuildMethod is the name of the build reader declared by Builder.
var BuildMethod = reflect.TypeFor[Builder[struct{}]]().Method(0).Name

// Callback turns a filled builder into its result.
//
// It is invoked once per Build call, synchronously, with the builder itself.
// It may call the builder's readers. Its error is returned from Build as is.
type Callback[T any, R any] interface {
	Call(builder T) (R, error)
}

// CallbackFunc adapts a function to Callback.
type CallbackFunc[T any, R any] func(builder T) (R, error)

// Call implements Callback.
func (f CallbackFunc[T, R]) Call(builder T) (R, error) { return f(builder) }
