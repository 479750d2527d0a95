// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
)

// Describer describes values using a fixed registry and default limits. A
// Describer is safe for concurrent use: every call creates its own recursion
// controller, and nothing but the cumulative metrics is shared between calls.
type Describer struct {
	opts *Options

	metrics struct {
		calls        atomic.Int64
		errors       atomic.Int64
		values       atomic.Int64
		cycles       atomic.Int64
		depthLimited atomic.Int64
		truncated    atomic.Int64
	}
}

// New constructs a Describer. The options are copied; a nil opts selects all
// defaults.
func New(opts *Options) (*Describer, error) {
	o := opts.Clone()
	o.EnsureDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &Describer{opts: o}, nil
}

// Options returns a copy of the options the Describer was constructed with.
func (d *Describer) Options() *Options {
	return d.opts.Clone()
}

// Registry returns the registry used by the Describer.
func (d *Describer) Registry() *Registry {
	return d.opts.Registry
}

// Describe returns the description of v using the default limits.
func (d *Describer) Describe(v any) string {
	return d.DescribeLimits(v, d.opts.MaxDepth, d.opts.MaxCount)
}

// DescribeN returns the description of v with at most maxCount elements per
// container, using the default depth limit.
func (d *Describer) DescribeN(v any, maxCount int) string {
	return d.DescribeLimits(v, d.opts.MaxDepth, maxCount)
}

// DescribeLimits returns the description of v using the given limits. A
// negative limit is unlimited.
//
// DescribeLimits panics if a strategy fails, which only happens when a
// strategy is broken; use DescribeTo to handle such errors.
func (d *Describer) DescribeLimits(v any, maxDepth, maxCount int) string {
	var b strings.Builder
	if _, err := d.DescribeStats(&b, v, maxDepth, maxCount); err != nil {
		panic(err)
	}
	return b.String()
}

// DescribeTo writes the description of v to w using the default limits.
func (d *Describer) DescribeTo(w io.Writer, v any) error {
	return d.DescribeToLimits(w, v, d.opts.MaxDepth, d.opts.MaxCount)
}

// DescribeToN writes the description of v to w with at most maxCount elements
// per container, using the default depth limit.
func (d *Describer) DescribeToN(w io.Writer, v any, maxCount int) error {
	return d.DescribeToLimits(w, v, d.opts.MaxDepth, maxCount)
}

// DescribeToLimits writes the description of v to w using the given limits.
// Errors returned by w are wrapped in a *SinkError and abort the call; the
// output written so far is left in w.
func (d *Describer) DescribeToLimits(w io.Writer, v any, maxDepth, maxCount int) error {
	_, err := d.DescribeStats(w, v, maxDepth, maxCount)
	return err
}

// DescribeStats writes the description of v to w using the given limits and
// returns statistics about the traversal.
func (d *Describer) DescribeStats(w io.Writer, v any, maxDepth, maxCount int) (Stats, error) {
	if w == nil {
		return Stats{}, errors.AssertionFailedf("describe: nil writer")
	}
	start := crtime.NowMono()
	c := &controller{}
	c.init(w, d.opts, normalizeLimit(maxDepth), normalizeLimit(maxCount))
	err := c.run(v)
	d.record(c.stats, err)
	if h := d.opts.DescribeLatency; h != nil {
		h.Observe(start.Elapsed().Seconds())
	}
	return c.stats, err
}

func normalizeLimit(n int) int {
	if n < 0 {
		return Unlimited
	}
	return n
}

func (d *Describer) record(s Stats, err error) {
	m := &d.metrics
	m.calls.Add(1)
	if err != nil {
		m.errors.Add(1)
	}
	m.values.Add(int64(s.Values))
	m.cycles.Add(int64(s.Cycles))
	m.depthLimited.Add(int64(s.DepthLimited))
	m.truncated.Add(int64(s.Truncated))
}

// Lazy returns a value that describes v with d when it is formatted. It is
// intended for log calls whose output may be discarded.
func (d *Describer) Lazy(v any) LazyDescription {
	return LazyDescription{d: d, v: v}
}

var defaultDescriber = sync.OnceValue(func() *Describer {
	opts, err := OptionsFromEnv()
	if err != nil {
		DefaultLogger{}.Errorf("%v; using default limits", err)
		opts = &Options{}
	}
	d, err := New(opts)
	if err != nil {
		panic(err)
	}
	return d
})

// Default returns the Describer used by the package-level functions. Its
// limits are read once from the environment (see OptionsFromEnv) and it uses
// the default registry.
func Default() *Describer {
	return defaultDescriber()
}

// Describe returns the description of v using the default Describer.
func Describe(v any) string {
	return Default().Describe(v)
}

// DescribeN returns the description of v with at most maxCount elements per
// container, using the default Describer.
func DescribeN(v any, maxCount int) string {
	return Default().DescribeN(v, maxCount)
}

// DescribeLimits returns the description of v using the given limits and the
// default Describer.
func DescribeLimits(v any, maxDepth, maxCount int) string {
	return Default().DescribeLimits(v, maxDepth, maxCount)
}

// DescribeTo writes the description of v to w using the default Describer.
func DescribeTo(w io.Writer, v any) error {
	return Default().DescribeTo(w, v)
}

// DescribeToN writes the description of v to w with at most maxCount elements
// per container, using the default Describer.
func DescribeToN(w io.Writer, v any, maxCount int) error {
	return Default().DescribeToN(w, v, maxCount)
}

// DescribeToLimits writes the description of v to w using the given limits
// and the default Describer.
func DescribeToLimits(w io.Writer, v any, maxDepth, maxCount int) error {
	return Default().DescribeToLimits(w, v, maxDepth, maxCount)
}

// Lazy returns a value that describes v with the default Describer when it is
// formatted.
func Lazy(v any) LazyDescription {
	return Default().Lazy(v)
}
