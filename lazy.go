// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// LazyDescription describes a value when it is formatted. The description is
// computed on every call to String, Format or SafeFormat.
type LazyDescription struct {
	d *Describer
	v any
}

var _ fmt.Stringer = LazyDescription{}
var _ fmt.Formatter = LazyDescription{}
var _ redact.SafeFormatter = LazyDescription{}

// String implements fmt.Stringer.
func (l LazyDescription) String() string {
	return l.d.Describe(l.v)
}

// Format implements fmt.Formatter. All verbs produce the description. If
// describing fails, the partial description is followed by an error marker
// in the style of fmt, e.g. %!v(describing ... value: ...).
func (l LazyDescription) Format(s fmt.State, verb rune) {
	if err := l.d.DescribeTo(s, l.v); err != nil {
		fmt.Fprintf(s, "%%!%c(%v)", verb, err)
	}
}

// SafeFormat implements redact.SafeFormatter. The description may contain
// arbitrary data and is therefore printed as unsafe.
func (l LazyDescription) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(l.String())
}
