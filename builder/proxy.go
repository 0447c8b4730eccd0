package builder

// Proxy is a generated builder. Every call goes through Call and is handled by
// its Engine.
//
// Generated forwarding types wrap a Proxy; in that case writers return the
// wrapper (see Self) so chains keep the interface type.
type Proxy struct {
	engine *Engine
	self   any
}

func newProxy(spec Spec, opts []Option) *Proxy {
	return &Proxy{engine: newEngine(spec, newConfig(opts))}
}

// Generate returns a builder for spec whose Build runs cb with the proxy.
//
// Contracts that do not follow the builder shape are not rejected here; their
// offending calls fail with a ClassificationError.
func Generate[R any](spec Spec, cb Callback[*Proxy, R], opts ...Option) *Proxy {
	p := newProxy(spec, opts)
	if cb != nil {
		p.engine.build = func(any) (any, error) { return cb.Call(p) }
	}
	return p
}

// Call invokes the method name with args.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	return p.engine.Invoke(p.Self(), name, args...)
}

// MustCall is Call for methods without an error result; it panics on error.
func (p *Proxy) MustCall(name string, args ...any) any {
	v, err := p.Call(name, args...)
	if err != nil {
		panic(err)
	}
	return v
}

// Self returns the value writers hand back: the generated wrapper, if any,
// otherwise the proxy.
func (p *Proxy) Self() any {
	if p.self != nil {
		return p.self
	}
	return p
}

// Spec returns the contract the proxy implements.
func (p *Proxy) Spec() Spec { return p.engine.spec }

// Engine returns the dispatch engine.
func (p *Proxy) Engine() *Engine { return p.engine }

// Values returns a copy of the stored values.
func (p *Proxy) Values() map[string]any { return p.engine.Values() }

// String renders the stored values.
func (p *Proxy) String() string { return p.engine.String() }

// Equal reports whether other is backed by the same engine.
func (p *Proxy) Equal(other any) bool { return p.engine.Equal(other) }

// Hash returns the identity hash of the engine.
func (p *Proxy) Hash() uint64 { return p.engine.Hash() }

// BuilderProxy returns p.
func (p *Proxy) BuilderProxy() *Proxy { return p }
