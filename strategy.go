// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"fmt"
	"reflect"
)

// Writer is the sink handed to a Strategy. Writes to it never fail; errors
// from the caller's output are reported by the top-level Describe call.
type Writer interface {
	WriteString(s string)
}

// Recurse describes a child value of parent. It is bound to the recursion
// controller of the current top-level call, which applies the depth limit and
// cycle detection before dispatching child to a Strategy.
//
// A Strategy must not assume the child has been written when Recurse returns:
// text written to the Writer and children passed to Recurse are emitted in
// call order once Render returns.
type Recurse func(parent, child any)

// Strategy renders a class of values.
//
// Test reports whether the strategy applies to v. It must be cheap, free of
// side effects and idempotent; it may be called several times for the same
// value.
//
// Render writes the description of v. maxCount is the maximum number of
// elements to write for container-like values, or Unlimited. Calling Render
// with a value rejected by Test returns an error for which IsNotApplicable
// returns true.
//
// Strategies are shared by concurrent calls and must be stateless.
type Strategy interface {
	Test(v any) bool
	Render(w Writer, v any, maxCount int, recurse Recurse) error
}

// StrategyName returns a short name for s, used in diagnostics. Strategies
// that implement fmt.Stringer are named by their String method.
func StrategyName(s Strategy) string {
	if s == nil {
		return "<nil>"
	}
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// StrategyFuncs adapts a pair of functions into a Strategy.
type StrategyFuncs struct {
	Name       string
	TestFunc   func(v any) bool
	RenderFunc func(w Writer, v any, maxCount int, recurse Recurse) error
}

var _ Strategy = (*StrategyFuncs)(nil)

// Test implements the Strategy interface.
func (s *StrategyFuncs) Test(v any) bool { return s.TestFunc(v) }

// Render implements the Strategy interface.
func (s *StrategyFuncs) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	return s.RenderFunc(w, v, maxCount, recurse)
}

// String implements fmt.Stringer.
func (s *StrategyFuncs) String() string {
	if s.Name == "" {
		return "funcs"
	}
	return s.Name
}
