package builder

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Kind is the classification of one intercepted call.
type Kind int

const (
	KindUnclassifiable Kind = iota
	KindWriter
	KindReader
	KindBuildReader
	KindString
	KindEqual
	KindHash
)

var kindNames = [...]string{
	KindUnclassifiable: "unclassifiable",
	KindWriter:         "writer",
	KindReader:         "reader",
	KindBuildReader:    "build",
	KindString:         "string",
	KindEqual:          "equal",
	KindHash:           "hash",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + fmt.Sprint(int(k)) + ")"
	}
	return kindNames[k]
}

// Identity method names answered by the engine itself.
const (
	StringMethod = "String"
	EqualMethod  = "Equal"
	HashMethod   = "Hash"
)

var engineSeq atomic.Uint64

// Engine classifies calls made on a generated builder and keeps its values.
//
// Values are keyed by the strategy's reader/writer keys; the last write wins.
type Engine struct {
	id       uint64
	spec     Spec
	strategy Strategy
	values   map[string]any
	build    func(self any) (any, error)
	log      logrus.FieldLogger
}

func newEngine(spec Spec, c config) *Engine {
	return &Engine{
		id:       engineSeq.Add(1),
		spec:     spec,
		strategy: c.strategy(spec.Self()),
		values:   make(map[string]any),
		build: func(any) (any, error) {
			return nil, ErrNilCallback
		},
		log: c.log,
	}
}

// Classify decides what a call of m with args is, without running it.
func (e *Engine) Classify(m Method, args []any) Kind {
	switch {
	case m.Name == StringMethod && len(args) == 0:
		return KindString
	case m.Name == HashMethod && len(args) == 0:
		return KindHash
	case m.Name == EqualMethod && len(args) == 1:
		return KindEqual
	case e.strategy.IsWriter(m, args):
		return KindWriter
	case isBuildReader(m, args):
		return KindBuildReader
	case e.strategy.IsReader(m, args):
		return KindReader
	}
	return KindUnclassifiable
}

// Invoke dispatches the call name(args...) made on self.
//
// Writers return self. Build returns whatever the callback returns.
func (e *Engine) Invoke(self any, name string, args ...any) (any, error) {
	m, err := e.resolve(name, args)
	if err != nil {
		return nil, err
	}

	kind := e.Classify(m, args)
	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"builder": e.spec.Name(),
			"method":  name,
			"kind":    kind.String(),
		}).Debug("builder: dispatch")
	}

	switch kind {
	case KindString:
		return e.String(), nil
	case KindHash:
		return e.Hash(), nil
	case KindEqual:
		return e.Equal(args[0]), nil
	case KindWriter:
		e.values[e.strategy.WriterKey(m)] = args[0]
		return self, nil
	case KindBuildReader:
		return e.build(self)
	case KindReader:
		return e.read(m), nil
	}
	return nil, ClassificationError{Method: name}
}

// resolve finds the declared method. String, Equal and Hash are answered even
// when the contract does not declare them.
func (e *Engine) resolve(name string, args []any) (Method, error) {
	m, ok := e.spec.Method(name)
	if !ok {
		switch {
		case name == StringMethod && len(args) == 0,
			name == HashMethod && len(args) == 0,
			name == EqualMethod && len(args) == 1:
			return Method{Name: name}, nil
		}
		return Method{}, ClassificationError{
			Method: name,
			Reason: "not declared by " + e.spec.Name(),
		}
	}
	if !m.acceptsArgs(len(args)) {
		return Method{}, ClassificationError{
			Method: name,
			Reason: fmt.Sprintf("called with %d arguments, declares %d", len(args), m.Arity()),
		}
	}
	return m, nil
}

func (e *Engine) read(m Method) any {
	if v, ok := e.values[e.strategy.ReaderKey(m)]; ok && v != nil {
		return v
	}
	return primitiveDefault(m.Out)
}

// String renders the stored values, keys sorted.
func (e *Engine) String() string { return fmt.Sprint(e.values) }

// Hash returns the identity hash of the engine. It does not depend on the
// stored values.
func (e *Engine) Hash() uint64 { return e.id }

// Equal reports whether other is a builder backed by this very engine.
func (e *Engine) Equal(other any) bool {
	o := engineOf(other)
	return o != nil && o == e
}

// Values returns a copy of the stored values.
func (e *Engine) Values() map[string]any {
	out := make(map[string]any, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// proxied is implemented by generated builder types.
type proxied interface {
	BuilderProxy() *Proxy
}

func engineOf(v any) *Engine {
	switch x := v.(type) {
	case *Proxy:
		if x != nil {
			return x.engine
		}
	case proxied:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		if p := x.BuilderProxy(); p != nil {
			return p.engine
		}
	}
	return nil
}

func isBuildReader(m Method, args []any) bool {
	return m.Name == BuildMethod && len(args) == 0 && m.Arity() == 0 && m.Out != nil
}
