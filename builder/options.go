package builder

import "github.com/sirupsen/logrus"

// Option customizes a generated builder.
type Option func(*config)

type config struct {
	strategy StrategyFunc
	log      logrus.FieldLogger
}

func newConfig(opts []Option) config {
	c := config{strategy: ShapeStrategy}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithStrategy selects the naming strategy. Panics on nil.
func WithStrategy(fn StrategyFunc) Option {
	if fn == nil {
		panic("builder: WithStrategy(nil)")
	}
	return func(c *config) { c.strategy = fn }
}

// WithLogger traces every dispatched call at debug level. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}
