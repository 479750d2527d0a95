// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants provides assertions that are only checked in builds with
// the "invariants" or "race" build tags.
package invariants

import "github.com/cockroachdb/describe/internal/buildtags"

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = buildtags.Invariants || buildtags.Race

// Integer is a constraint that permits any integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
