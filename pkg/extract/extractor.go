// Package extract renders parsed SQL expression trees as text for query-builder calls.
//
// It is the shared base of the per-clause extractors (select list, where clause,
// joins, ...). Those extractors decide which sub-trees to render and how to
// assemble a statement; this package only turns a node tree into text:
//
//   - token classification (logical, comparison, arithmetic, join kinds)
//   - FROM-item rendering with aliases (TableReference)
//   - expression flattening with function wrapping and delimiters (Flatten, Expression)
//   - raw function parameter collection (CollectParams)
//
// # Basic Usage
//
//	ex := extract.New(extract.Options{"quote": false}, nil)
//	text, err := ex.Expression(n)
//	if err != nil {
//	    return err
//	}
//
// An Extractor is immutable after New and safe for concurrent use.
package extract

import (
	"log/slog"
	"maps"
)

// Options holds caller-defined extractor settings. The package stores them
// and hands them back; it never interprets them.
type Options map[string]any

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the option as a string, or "" if unset or not a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the option as a bool, or false if unset or not a bool.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Int returns the option as an int. Float values from decoded config files
// are truncated.
func (o Options) Int(key string) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Extractor is the shared base of the clause extractors.
type Extractor struct {
	options Options
	logger  *slog.Logger
}

// New creates an Extractor. The options map is copied.
// If logger is nil, a discard logger is used.
func New(opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		options: maps.Clone(opts),
		logger:  logger,
	}
}

// Options returns a copy of the construction-time options.
func (e *Extractor) Options() Options {
	if e.options == nil {
		return Options{}
	}
	return maps.Clone(e.options)
}

// Option returns a single option value.
func (e *Extractor) Option(key string) (any, bool) {
	v, ok := e.options[key]
	return v, ok
}
