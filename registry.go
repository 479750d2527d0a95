// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"slices"
	"strings"
	"sync"
)

// Registry is an ordered, immutable set of strategies plus a fallback that
// accepts every value. A Registry is safe for concurrent use.
type Registry struct {
	strategies []Strategy
	fallback   Strategy
}

// NewRegistry constructs a registry that dispatches to the first of the given
// strategies accepting a value, and to fallback when none does. Strategies
// registered earlier take priority, so more specific strategies should come
// before more general ones. If fallback is nil, the fmt-based default fallback
// is used.
func NewRegistry(fallback Strategy, strategies ...Strategy) *Registry {
	if fallback == nil {
		fallback = FallbackStrategy
	}
	for _, s := range strategies {
		if s == nil {
			panic("describe: nil strategy")
		}
	}
	return &Registry{
		strategies: slices.Clone(strategies),
		fallback:   fallback,
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(FallbackStrategy, DefaultStrategies()...)
})

// DefaultRegistry returns the registry of built-in strategies. It is
// constructed once and shared for the lifetime of the process.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Lookup returns the strategy to use for v: the first registered strategy
// whose Test accepts v, or the fallback. Lookup never fails.
func (r *Registry) Lookup(v any) Strategy {
	for _, s := range r.strategies {
		if s.Test(v) {
			return s
		}
	}
	return r.fallback
}

// WithStrategies returns a new registry in which the given strategies take
// priority over the strategies of r. The receiver is not modified.
func (r *Registry) WithStrategies(strategies ...Strategy) *Registry {
	return NewRegistry(r.fallback, append(slices.Clone(strategies), r.strategies...)...)
}

// Strategies returns the registered strategies in priority order, excluding
// the fallback.
func (r *Registry) Strategies() []Strategy {
	return slices.Clone(r.strategies)
}

// Fallback returns the strategy used when no registered strategy applies.
func (r *Registry) Fallback() Strategy {
	return r.fallback
}

// String lists the names of the strategies in priority order, followed by the
// fallback.
func (r *Registry) String() string {
	var b strings.Builder
	for _, s := range r.strategies {
		b.WriteString(StrategyName(s))
		b.WriteString(", ")
	}
	b.WriteString(StrategyName(r.fallback))
	b.WriteString(" (fallback)")
	return b.String()
}
