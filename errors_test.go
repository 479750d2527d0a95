// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestNotApplicable(t *testing.T) {
	recurse := func(parent, child any) {
		t.Fatalf("unexpected recursion into %v", child)
	}
	for _, tc := range []struct {
		s Strategy
		v any
	}{
		{NilStrategy, 1},
		{SafeFormatterStrategy, 1},
		{ErrorStrategy, 1},
		{FormatterStrategy, 1},
		{StringerStrategy, 1},
		{StringStrategy, 1},
		{CharStrategy, 'c'},
		{ScalarStrategy, "1"},
		{PointerStrategy, (*int)(nil)},
		{SequenceStrategy, 1},
		{MapStrategy, []int{}},
		{IteratorStrategy, func() {}},
		{StructStrategy, 1},
	} {
		var w bufWriter
		err := tc.s.Render(&w, tc.v, Unlimited, recurse)
		require.Error(t, err, "%s", StrategyName(tc.s))
		require.True(t, IsNotApplicable(err), "%s: %v", StrategyName(tc.s), err)
		require.Empty(t, w.String())
	}
	require.NoError(t, FallbackStrategy.Render(&bufWriter{}, 1, Unlimited, recurse))
}

func TestNotApplicableMessage(t *testing.T) {
	err := CheckApplicable(StringStrategy, 1)
	require.EqualError(t, err, "describe: strategy string not applicable to value of type int")
	require.NoError(t, CheckApplicable(StringStrategy, ""))
}

func TestSinkError(t *testing.T) {
	err := newSinkError(io.ErrShortWrite)
	require.True(t, IsSinkError(err))
	require.True(t, errors.Is(err, io.ErrShortWrite))
	require.EqualError(t, err, "describe: writing to sink: short write")
	require.False(t, IsSinkError(io.ErrShortWrite))
	require.False(t, IsSinkError(errors.Wrap(ErrNotApplicable, "x")))
}
