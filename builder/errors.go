package builder

import (
	"errors"
	"strconv"
)

var (
	// ErrUnclassifiable is matched (errors.Is) by every ClassificationError.
	ErrUnclassifiable = errors.New("builder: unclassifiable method")

	// ErrNilCallback is returned by Build when the builder was generated
	// without a callback.
	ErrNilCallback = errors.New("builder: nil callback")

	// ErrFactoryPanic is returned if a registered factory panics while Make
	// creates a builder.
	ErrFactoryPanic = errors.New("builder: panic in registered factory")
)

// ClassificationError is returned when a call is neither a writer, a reader,
// Build, nor one of String / Equal / Hash.
//
// It signals a contract that does not follow the builder shape. Retrying the
// call cannot succeed.
type ClassificationError struct {
	// Method is the name of the offending method.
	Method string

	// Reason optionally narrows down the mismatch.
	Reason string
}

// Error implements the error interface.
func (e ClassificationError) Error() string {
	// Example: builder: method "Reset" is not a getter or a single argument setter
	msg := "builder: method " + strconv.Quote(e.Method) + " is not a getter or a single argument setter"
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// Is reports whether target is ErrUnclassifiable.
func (e ClassificationError) Is(target error) bool { return target == ErrUnclassifiable }

// NotInterfaceError is returned when a contract type is not an interface.
type NotInterfaceError struct{ Type string }

// Error implements the error interface.
func (e NotInterfaceError) Error() string {
	return "builder: contract " + strconv.Quote(e.Type) + " is not an interface type"
}

// UnregisteredSpecError is returned by Make when no factory was registered
// for the requested interface (usually: go generate has not been run).
type UnregisteredSpecError struct{ Type string }

// Error implements the error interface.
func (e UnregisteredSpecError) Error() string {
	return "builder: no factory registered for " + strconv.Quote(e.Type)
}

// DuplicateRegistrationError is returned when a factory is registered twice
// for the same interface.
type DuplicateRegistrationError struct{ Type string }

// Error implements the error interface.
func (e DuplicateRegistrationError) Error() string {
	return "builder: duplicate factory for " + strconv.Quote(e.Type)
}

// ResultTypeError is raised (as a panic value) by As when a dynamic result
// cannot be represented as the requested type.
type ResultTypeError struct {
	Want string
	Got  string
}

// Error implements the error interface.
func (e ResultTypeError) Error() string {
	// Example: builder: result of type "string" is not assignable to "int"
	return "builder: result of type " + strconv.Quote(e.Got) + " is not assignable to " + strconv.Quote(e.Want)
}
