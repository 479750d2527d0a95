// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/redact"
)

// Char is a rune that is described as a single-quoted character literal
// rather than as an integer.
type Char rune

// NilMarker is written for nil values.
const NilMarker = "<nil>"

// The built-in strategies. DefaultStrategies returns them in priority order.
var (
	// NilStrategy describes untyped nil and nil pointers, interfaces, funcs,
	// chans and unsafe pointers as NilMarker. Nil slices and maps are
	// described as empty containers by the container strategies.
	NilStrategy Strategy = nilStrategy{}
	// SafeFormatterStrategy describes redact.SafeFormatter values using their
	// SafeFormat method, with redaction markers stripped.
	SafeFormatterStrategy Strategy = safeFormatterStrategy{}
	// ErrorStrategy describes errors by their message, followed by the
	// description of their cause.
	ErrorStrategy Strategy = errorStrategy{}
	// FormatterStrategy describes fmt.Formatter values using the %v verb.
	FormatterStrategy Strategy = formatterStrategy{}
	// StringerStrategy describes fmt.Stringer values using their String
	// method.
	StringerStrategy Strategy = stringerStrategy{}
	// StringStrategy describes strings as Go string literals. Strings are
	// never truncated by the count limit.
	StringStrategy Strategy = stringStrategy{}
	// CharStrategy describes Char values as Go rune literals.
	CharStrategy Strategy = charStrategy{}
	// ScalarStrategy describes booleans and numbers.
	ScalarStrategy Strategy = scalarStrategy{}
	// PointerStrategy describes a non-nil pointer as & followed by the
	// description of the value it points to.
	PointerStrategy Strategy = pointerStrategy{}
	// SequenceStrategy describes slices and arrays as lists.
	SequenceStrategy Strategy = sequenceStrategy{}
	// MapStrategy describes maps, with entries sorted by key.
	MapStrategy Strategy = mapStrategy{}
	// IteratorStrategy describes iter.Seq functions as lists and iter.Seq2
	// functions as maps. Only the elements that are described are pulled
	// from the iterator, plus one more when the count limit truncates it. An
	// iterator at the depth limit is described as RecursionPlaceholder and
	// not pulled at all.
	IteratorStrategy Strategy = iteratorStrategy{}
	// StructStrategy describes structs by their exported fields.
	StructStrategy Strategy = structStrategy{}
	// FallbackStrategy accepts every value and describes it with fmt.Sprint.
	FallbackStrategy Strategy = fallbackStrategy{}
)

// DefaultStrategies returns the built-in strategies in priority order,
// excluding FallbackStrategy.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NilStrategy,
		SafeFormatterStrategy,
		ErrorStrategy,
		FormatterStrategy,
		StringerStrategy,
		StringStrategy,
		CharStrategy,
		ScalarStrategy,
		PointerStrategy,
		SequenceStrategy,
		MapStrategy,
		IteratorStrategy,
		StructStrategy,
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

type nilStrategy struct{}

func (nilStrategy) String() string { return "nil" }

func (nilStrategy) Test(v any) bool {
	switch kindOf(v) {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return reflect.ValueOf(v).IsNil()
	default:
		return false
	}
}

func (s nilStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(NilMarker)
	return nil
}

type safeFormatterStrategy struct{}

func (safeFormatterStrategy) String() string { return "safe-formatter" }

func (safeFormatterStrategy) Test(v any) bool {
	_, ok := v.(redact.SafeFormatter)
	return ok
}

func (s safeFormatterStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(redact.StringWithoutMarkers(v.(redact.SafeFormatter)))
	return nil
}

type errorStrategy struct{}

func (errorStrategy) String() string { return "error" }

func (errorStrategy) Test(v any) bool {
	_, ok := v.(error)
	return ok
}

// Render writes the message of the error that is not already part of its
// cause's message, followed by " (cause: <cause>)". Wrappers that add nothing
// to the message are described as their cause. Errors with several causes
// list them.
func (s errorStrategy) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	err := v.(error)
	msg := err.Error()
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		cause := e.Unwrap()
		if cause == nil {
			w.WriteString(msg)
			return nil
		}
		causeMsg := cause.Error()
		if msg == causeMsg {
			recurse(err, cause)
			return nil
		}
		w.WriteString(strings.TrimSuffix(msg, ": "+causeMsg))
		w.WriteString(" (cause: ")
		recurse(err, cause)
		w.WriteString(")")
	case interface{ Unwrap() []error }:
		causes := e.Unwrap()
		msgs := make([]string, 0, len(causes))
		values := make([]any, 0, len(causes))
		for _, c := range causes {
			if c == nil {
				continue
			}
			msgs = append(msgs, c.Error())
			values = append(values, c)
		}
		joined := msg == strings.Join(msgs, "\n")
		if !joined {
			w.WriteString(msg)
			w.WriteString(" (causes: ")
		}
		ListShape.Write(w, err, slices.Values(values), maxCount, recurse)
		if !joined {
			w.WriteString(")")
		}
	default:
		w.WriteString(msg)
	}
	return nil
}

type formatterStrategy struct{}

func (formatterStrategy) String() string { return "formatter" }

func (formatterStrategy) Test(v any) bool {
	_, ok := v.(fmt.Formatter)
	return ok
}

func (s formatterStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(fmt.Sprintf("%v", v))
	return nil
}

type stringerStrategy struct{}

func (stringerStrategy) String() string { return "stringer" }

func (stringerStrategy) Test(v any) bool {
	_, ok := v.(fmt.Stringer)
	return ok
}

func (s stringerStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(v.(fmt.Stringer).String())
	return nil
}

type stringStrategy struct{}

func (stringStrategy) String() string { return "string" }

func (stringStrategy) Test(v any) bool {
	return kindOf(v) == reflect.String
}

func (s stringStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(strconv.Quote(reflect.ValueOf(v).String()))
	return nil
}

type charStrategy struct{}

func (charStrategy) String() string { return "char" }

func (charStrategy) Test(v any) bool {
	_, ok := v.(Char)
	return ok
}

func (s charStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString(strconv.QuoteRune(rune(v.(Char))))
	return nil
}

type scalarStrategy struct{}

func (scalarStrategy) String() string { return "scalar" }

func (scalarStrategy) Test(v any) bool {
	switch kindOf(v) {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

func (s scalarStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		w.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		w.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()))
	case reflect.Complex64, reflect.Complex128:
		w.WriteString(strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits()))
	}
	return nil
}

type pointerStrategy struct{}

func (pointerStrategy) String() string { return "pointer" }

func (pointerStrategy) Test(v any) bool {
	return kindOf(v) == reflect.Pointer && !reflect.ValueOf(v).IsNil()
}

func (s pointerStrategy) Render(w Writer, v any, _ int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	w.WriteString("&")
	recurse(v, reflect.ValueOf(v).Elem().Interface())
	return nil
}

type fallbackStrategy struct{}

func (fallbackStrategy) String() string { return "fallback" }

func (fallbackStrategy) Test(any) bool { return true }

func (fallbackStrategy) Render(w Writer, v any, _ int, _ Recurse) error {
	w.WriteString(fmt.Sprint(v))
	return nil
}
