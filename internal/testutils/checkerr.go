// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

// CheckErr panics if err is non-nil and otherwise returns v. It shortens test
// setup code such as:
//
//	d := testutils.CheckErr(describe.New(opts))
func CheckErr[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}
