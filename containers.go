// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
)

type sequenceStrategy struct{}

func (sequenceStrategy) String() string { return "sequence" }

func (sequenceStrategy) Test(v any) bool {
	k := kindOf(v)
	return k == reflect.Slice || k == reflect.Array
}

func (s sequenceStrategy) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	ListShape.Write(w, v, sliceValues(reflect.ValueOf(v)), maxCount, recurse)
	return nil
}

// sliceValues iterates over the elements of a slice or array.
func sliceValues(rv reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; i < rv.Len(); i++ {
			if !yield(rv.Index(i).Interface()) {
				return
			}
		}
	}
}

type mapStrategy struct{}

func (mapStrategy) String() string { return "map" }

func (mapStrategy) Test(v any) bool {
	return kindOf(v) == reflect.Map
}

func (s mapStrategy) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	entries := mapEntries(reflect.ValueOf(v))
	MapShape.WriteEntries(w, v, func(yield func(any, any) bool) {
		for _, e := range entries {
			if !yield(e.key.Interface(), e.value.Interface()) {
				return
			}
		}
	}, maxCount, recurse)
	return nil
}

type mapEntry struct {
	key, value reflect.Value
}

// mapEntries returns the entries of a map sorted by key. Entries are read
// with a map iterator since keys such as NaN cannot be looked up.
func mapEntries(rv reflect.Value) []mapEntry {
	entries := make([]mapEntry, 0, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		entries = append(entries, mapEntry{key: it.Key(), value: it.Value()})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int {
		return compareKeys(a.key, b.key)
	})
	return entries
}

// compareKeys orders map keys so that map descriptions are deterministic.
// Keys of the same kind compare by value; otherwise keys are ordered by kind,
// then by type name, then by their fmt representation.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	if !a.IsValid() {
		return 0
	}
	var c int
	switch a.Kind() {
	case reflect.Bool:
		c = cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		c = cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		c = cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		c = cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		c = cmp.Compare(a.String(), b.String())
	}
	if c != 0 {
		return c
	}
	if c := cmp.Compare(a.Type().String(), b.Type().String()); c != 0 {
		return c
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

type iteratorStrategy struct{}

func (iteratorStrategy) String() string { return "iterator" }

func (iteratorStrategy) Test(v any) bool {
	return kindOf(v) == reflect.Func && seqArity(reflect.TypeOf(v)) > 0
}

func (s iteratorStrategy) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	if seqArity(rv.Type()) == 1 {
		ListShape.Write(w, v, func(yield func(any) bool) {
			for e := range rv.Seq() {
				if !yield(e.Interface()) {
					return
				}
			}
		}, maxCount, recurse)
		return nil
	}
	MapShape.WriteEntries(w, v, func(yield func(any, any) bool) {
		for k, e := range rv.Seq2() {
			if !yield(k.Interface(), e.Interface()) {
				return
			}
		}
	}, maxCount, recurse)
	return nil
}

// seqArity returns 1 for func types shaped like iter.Seq, 2 for func types
// shaped like iter.Seq2 and 0 otherwise.
func seqArity(t reflect.Type) int {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return 0
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return 0
	}
	if n := yield.NumIn(); n == 1 || n == 2 {
		return n
	}
	return 0
}

type structStrategy struct{}

func (structStrategy) String() string { return "struct" }

func (structStrategy) Test(v any) bool {
	return kindOf(v) == reflect.Struct
}

func (s structStrategy) Render(w Writer, v any, maxCount int, recurse Recurse) error {
	if err := CheckApplicable(s, v); err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	t := rv.Type()
	name := t.Name()
	if name == "" {
		name = "struct"
	}
	w.WriteString(name)
	w.WriteString("{")
	fields := func(yield func(int) bool) {
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() && !yield(i) {
				return
			}
		}
	}
	WriteElements(w, fields, maxCount, ", ", func(i int) {
		w.WriteString(t.Field(i).Name)
		w.WriteString(": ")
		recurse(v, rv.Field(i).Interface())
	})
	w.WriteString("}")
	return nil
}
