// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import "iter"

const (
	// Ellipsis is written in place of the elements of a container that were
	// omitted because of the count limit.
	Ellipsis = "..."
	// RecursionPlaceholder is written in place of a value that was not
	// described because of the depth limit or because it is one of its own
	// ancestors.
	RecursionPlaceholder = "[...]"
	// EntrySeparator joins the key and the value of a map entry.
	EntrySeparator = "="
)

// Shape holds the markers written around and between the elements of a
// container.
type Shape struct {
	Open      string
	Close     string
	Separator string
}

var (
	// ListShape is the shape of slices, arrays and sequences.
	ListShape = Shape{Open: "[", Close: "]", Separator: ", "}
	// MapShape is the shape of maps and key/value sequences.
	MapShape = Shape{Open: "{", Close: "}", Separator: ", "}
)

// truncationRecorder is implemented by writers that account for truncated
// containers.
type truncationRecorder interface {
	recordTruncation()
}

// WriteElements writes the elements of seq to w, calling emit for each one
// and writing sep between consecutive elements. At most maxCount elements are
// emitted (all of them if maxCount is negative). If seq has more elements, a
// single Ellipsis is written in place of the next one and the iteration stops;
// at most maxCount+1 elements are pulled from seq.
//
// WriteElements returns the number of elements emitted and whether the output
// was truncated.
func WriteElements[E any](
	w Writer, seq iter.Seq[E], maxCount int, sep string, emit func(E),
) (n int, truncated bool) {
	for e := range seq {
		if n > 0 {
			w.WriteString(sep)
		}
		if maxCount >= 0 && n >= maxCount {
			w.WriteString(Ellipsis)
			truncated = true
			break
		}
		emit(e)
		n++
	}
	if truncated {
		if r, ok := w.(truncationRecorder); ok {
			r.recordTruncation()
		}
	}
	return n, truncated
}

// Write writes the elements of seq surrounded by the shape's markers,
// describing each element as a child of parent.
func (s Shape) Write(w Writer, parent any, seq iter.Seq[any], maxCount int, recurse Recurse) {
	w.WriteString(s.Open)
	WriteElements(w, seq, maxCount, s.Separator, func(e any) {
		recurse(parent, e)
	})
	w.WriteString(s.Close)
}

// WriteEntries writes the key/value pairs of seq surrounded by the shape's
// markers. Each pair is written as key=value and counts as one element.
func (s Shape) WriteEntries(
	w Writer, parent any, seq iter.Seq2[any, any], maxCount int, recurse Recurse,
) {
	w.WriteString(s.Open)
	WriteElements(w, pairs(seq), maxCount, s.Separator, func(e entry) {
		recurse(parent, e.key)
		w.WriteString(EntrySeparator)
		recurse(parent, e.value)
	})
	w.WriteString(s.Close)
}

type entry struct {
	key, value any
}

func pairs(seq iter.Seq2[any, any]) iter.Seq[entry] {
	return func(yield func(entry) bool) {
		for k, v := range seq {
			if !yield(entry{key: k, value: v}) {
				return
			}
		}
	}
}
