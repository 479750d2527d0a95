// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import "reflect"

// identity distinguishes values by allocation rather than by equality. Two
// values share an identity only if they refer to the same memory through the
// same type. Slices additionally include their length so that a slice and a
// shorter prefix of it are distinct.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// identityOf returns the identity of v. Values that do not refer to memory
// (scalars, strings, structs, arrays, nil references and empty slices) have no
// identity and are never considered part of a cycle. Funcs are excluded as
// well: closures created from the same literal share a code pointer.
func identityOf(v any) (identity, bool) {
	if v == nil {
		return identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	default:
		return identity{}, false
	}
}
