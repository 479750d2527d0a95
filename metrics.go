// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/redact"
)

// Metrics holds cumulative counters for the calls made through a Describer.
type Metrics struct {
	// Calls is the number of top-level calls.
	Calls int64
	// Errors is the number of calls that returned an error.
	Errors int64
	// Values is the number of values dispatched to a strategy.
	Values int64
	// Cycles is the number of values replaced because of a cycle.
	Cycles int64
	// DepthLimited is the number of values replaced because of the depth
	// limit.
	DepthLimited int64
	// Truncated is the number of containers truncated by the count limit.
	Truncated int64
}

// Metrics returns the cumulative metrics of d. Counters are read
// individually, so a snapshot taken during concurrent calls may be
// inconsistent across fields.
func (d *Describer) Metrics() Metrics {
	m := &d.metrics
	return Metrics{
		Calls:        m.calls.Load(),
		Errors:       m.errors.Load(),
		Values:       m.values.Load(),
		Cycles:       m.cycles.Load(),
		DepthLimited: m.depthLimited.Load(),
		Truncated:    m.truncated.Load(),
	}
}

// SafeFormat implements redact.SafeFormatter.
func (m Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("calls: %s (%s errors)  values: %s  cycles: %s  depth-limited: %s  truncated: %s",
		crhumanize.Count(m.Calls, crhumanize.Compact),
		crhumanize.Count(m.Errors, crhumanize.Compact),
		crhumanize.Count(m.Values, crhumanize.Compact),
		crhumanize.Count(m.Cycles, crhumanize.Compact),
		crhumanize.Count(m.DepthLimited, crhumanize.Compact),
		crhumanize.Count(m.Truncated, crhumanize.Compact))
}

// String implements fmt.Stringer.
func (m Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}
