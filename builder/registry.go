package builder

import (
	"fmt"
	"reflect"
	"sync"
)

// Factory wraps a proxy into a value implementing T. Generated code supplies
// one per builder interface.
type Factory[T any] func(p *Proxy) T

type registration struct {
	spec    Spec
	factory func(p *Proxy) any
	opts    []Option
}

// Registry maps builder interfaces to their factories.
//
// Registration normally happens from generated init() functions; lookups may
// happen from any goroutine.
type Registry struct {
	mu    sync.RWMutex
	items map[reflect.Type]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[reflect.Type]registration{}}
}

// DefaultRegistry is used by Register, Make and friends.
var DefaultRegistry = NewRegistry()

// Has reports whether a factory exists for t.
func (r *Registry) Has(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[t]
	return ok
}

// Lookup returns the Spec registered for t.
func (r *Registry) Lookup(t reflect.Type) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.items[t]
	return reg.spec, ok
}

// Len returns the number of registered interfaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry) add(t reflect.Type, reg registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[t]; exists {
		return DuplicateRegistrationError{Type: typeName(t)}
	}
	r.items[t] = reg
	return nil
}

func (r *Registry) get(t reflect.Type) (registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.items[t]
	return reg, ok
}

// RegisterIn stores factory for interface T in r. opts become the defaults
// of every builder made for T.
func RegisterIn[T any](r *Registry, factory Factory[T], opts ...Option) error {
	t := reflect.TypeFor[T]()
	spec, err := SpecOf(t)
	if err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("builder: nil factory for %s", typeName(t))
	}
	return r.add(t, registration{
		spec:    spec,
		factory: func(p *Proxy) any { return factory(p) },
		opts:    opts,
	})
}

// Register is RegisterIn on DefaultRegistry.
func Register[T any](factory Factory[T], opts ...Option) error {
	return RegisterIn(DefaultRegistry, factory, opts...)
}

// MustRegister is Register that panics on error. Generated init() code uses it.
func MustRegister[T any](factory Factory[T], opts ...Option) {
	if err := Register(factory, opts...); err != nil {
		panic(err)
	}
}

// MakeIn returns a new builder of interface type T from r. Build on it runs cb.
// opts are applied after the ones given at registration.
func MakeIn[T any, R any](r *Registry, cb Callback[T, R], opts ...Option) (b T, err error) {
	t := reflect.TypeFor[T]()
	reg, ok := r.get(t)
	if !ok {
		return b, UnregisteredSpecError{Type: typeName(t)}
	}

	all := make([]Option, 0, len(reg.opts)+len(opts))
	all = append(all, reg.opts...)
	all = append(all, opts...)
	p := newProxy(reg.spec, all)

	self, err := wrap[T](reg, p)
	if err != nil {
		return b, err
	}
	p.self = self
	if cb != nil {
		p.engine.build = func(s any) (any, error) { return cb.Call(s.(T)) }
	}
	return self, nil
}

// Make is MakeIn on DefaultRegistry.
func Make[T any, R any](cb Callback[T, R], opts ...Option) (T, error) {
	return MakeIn(DefaultRegistry, cb, opts...)
}

// MustMake is Make that panics on error.
func MustMake[T any, R any](cb Callback[T, R], opts ...Option) T {
	b, err := Make(cb, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// wrap runs the registered factory, converting panics into errors.
func wrap[T any](reg registration, p *Proxy) (self T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrFactoryPanic, rec)
		}
	}()

	raw := reg.factory(p)
	v, ok := raw.(T)
	if !ok {
		return self, fmt.Errorf("builder: factory for %s returned %T", reg.spec.Name(), raw)
	}
	return v, nil
}
