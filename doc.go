// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package describe renders arbitrary values into human-readable descriptions
// for logging and debugging.
//
// Unlike fmt's %v, a description is always finite: the nesting depth and the
// number of elements per container are bounded, and a value that contains
// itself is detected by identity before it is expanded again. Omitted
// elements are replaced by "..." and values cut off by the depth limit or by a
// cycle are replaced by "[...]":
//
//	a := []any{1, nil}
//	a[1] = a
//	describe.Describe(a)                     // [1, [...]]
//	describe.DescribeN([]int{1, 2, 3, 4}, 2) // [1, 2, ...]
//
// Values are rendered by strategies, which are looked up in an ordered
// Registry: the first strategy whose Test accepts a value renders it, and a
// fallback based on fmt handles everything else. Strategies that describe
// containers pass their elements back to the recursion controller through the
// Recurse callback, which enforces the limits.
//
// The package-level functions use a Describer whose limits are read from the
// DESCRIBE_MAX_DEPTH and DESCRIBE_MAX_COUNT environment variables. Use New to
// construct a Describer with a custom registry, limits, logger or latency
// histogram.
package describe
