// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// bufWriter is a Writer backed by a strings.Builder.
type bufWriter struct {
	b strings.Builder
}

func (w *bufWriter) WriteString(s string) { w.b.WriteString(s) }

func (w *bufWriter) String() string { return w.b.String() }

func TestElements(t *testing.T) {
	datadriven.RunTest(t, "testdata/elements", func(t *testing.T, td *datadriven.TestData) string {
		var n, maxCount int
		td.ScanArgs(t, "n", &n)
		td.ScanArgs(t, "max-count", &maxCount)

		pulled := 0
		seq := func(yield func(int) bool) {
			for i := 1; i <= n; i++ {
				pulled++
				if !yield(i) {
					return
				}
			}
		}
		var w bufWriter
		recurse := func(_, child any) {
			w.WriteString(fmt.Sprint(child))
		}

		switch td.Cmd {
		case "elements":
			sep := ", "
			td.MaybeScanArgs(t, "sep", &sep)
			emitted, truncated := WriteElements(&w, seq, maxCount, sep, func(i int) {
				w.WriteString(strconv.Itoa(i))
			})
			var buf strings.Builder
			if w.b.Len() > 0 {
				fmt.Fprintln(&buf, w.String())
			}
			fmt.Fprintf(&buf, "emitted=%d truncated=%t pulled=%d\n", emitted, truncated, pulled)
			return buf.String()

		case "list":
			ListShape.Write(&w, nil, func(yield func(any) bool) {
				for i := range seq {
					if !yield(i) {
						return
					}
				}
			}, maxCount, recurse)
			return w.String()

		case "map":
			MapShape.WriteEntries(&w, nil, func(yield func(any, any) bool) {
				for i := range seq {
					if !yield(i, i*i) {
						return
					}
				}
			}, maxCount, recurse)
			return w.String()

		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

// TestElementsCountLaws checks the truncation and separator laws for random
// sequence lengths and count limits.
func TestElementsCountLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const sep = "|"
	for trial := 0; trial < 1000; trial++ {
		n := rng.Intn(20)
		k := rng.Intn(22) - 1

		var w bufWriter
		emitted, truncated := WriteElements(&w, count(n), k, sep, func(i int) {
			w.WriteString(strconv.Itoa(i))
		})
		out := w.String()

		var items []string
		if out != "" {
			items = strings.Split(out, sep)
		}
		switch {
		case k < 0 || n <= k:
			require.False(t, truncated, "n=%d k=%d", n, k)
			require.Equal(t, n, emitted)
			require.Len(t, items, n)
		default:
			require.True(t, truncated, "n=%d k=%d", n, k)
			require.Equal(t, k, emitted)
			require.Len(t, items, k+1)
			require.Equal(t, Ellipsis, items[k])
		}
		require.Equal(t, max(len(items)-1, 0), strings.Count(out, sep), "n=%d k=%d", n, k)
		require.False(t, strings.HasPrefix(out, sep))
		require.False(t, strings.HasSuffix(out, sep))
		for i := 0; i < emitted; i++ {
			require.Equal(t, strconv.Itoa(i), items[i])
		}
	}
}

func count(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func TestElementsRecordTruncation(t *testing.T) {
	r := &recorder{}
	WriteElements(r, count(3), 1, ", ", func(int) {})
	WriteElements(r, count(3), 3, ", ", func(int) {})
	require.Equal(t, 1, r.truncated)
}
