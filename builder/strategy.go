package builder

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strategy decides which calls are writers and readers and under which key
// each of them stores or looks up its value.
//
// A Strategy only classifies; storage and dispatch belong to the engine.
type Strategy struct {
	IsWriter  func(m Method, args []any) bool
	IsReader  func(m Method, args []any) bool
	ReaderKey func(m Method) string
	WriterKey func(m Method) string
}

// StrategyFunc builds a Strategy for the contract type self.
type StrategyFunc func(self reflect.Type) Strategy

// DefaultGetterPrefix is the reader prefix used by GetterStrategy.
const DefaultGetterPrefix = "Get"

// writerPrefixes are dropped from writer names by ShapeStrategy so that
// WithName(v) and Name() share the key "name".
var writerPrefixes = []string{"With", "Set", "with", "set"}

// ShapeStrategy classifies purely by signature shape.
//
// Keys are method names with the first letter lowercased; writers additionally
// lose a With/Set prefix. WithName, SetName and Name all use "name".
func ShapeStrategy(self reflect.Type) Strategy {
	return Strategy{
		IsWriter:  chainable(self),
		IsReader:  isReader,
		ReaderKey: func(m Method) string { return lowerFirst(m.Name) },
		WriterKey: func(m Method) string { return lowerFirst(stripWriterPrefix(m.Name)) },
	}
}

// PrefixStrategy only accepts readers whose name starts with prefix.
//
// The reader key is the name without prefix, lowercased: GetName reads "name".
// The writer key is the writer's name with only the first letter lowercased,
// so Name(v) writes "name" while WithName(v) writes "withName".
func PrefixStrategy(prefix string) StrategyFunc {
	return func(self reflect.Type) Strategy {
		return Strategy{
			IsWriter: chainable(self),
			IsReader: func(m Method, args []any) bool {
				return isReader(m, args) && strings.HasPrefix(m.Name, prefix)
			},
			ReaderKey: func(m Method) string {
				return strings.ToLower(strings.TrimPrefix(m.Name, prefix))
			},
			WriterKey: func(m Method) string { return lowerFirst(m.Name) },
		}
	}
}

// GetterStrategy is PrefixStrategy(DefaultGetterPrefix).
func GetterStrategy(self reflect.Type) Strategy {
	return PrefixStrategy(DefaultGetterPrefix)(self)
}

// chainable matches single-argument calls whose declared result can hold the
// builder itself. A variadic writer receives its arguments as one slice.
func chainable(self reflect.Type) func(m Method, args []any) bool {
	return func(m Method, args []any) bool {
		if len(args) != 1 || m.Arity() != 1 || m.Out == nil || self == nil {
			return false
		}
		return self.AssignableTo(m.Out)
	}
}

func isReader(m Method, args []any) bool {
	return len(args) == 0 && m.Arity() == 0 && m.Out != nil
}

func stripWriterPrefix(name string) string {
	for _, p := range writerPrefixes {
		rest, ok := strings.CutPrefix(name, p)
		if !ok || rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			return rest
		}
	}
	return name
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
