// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// The describe command prints bounded descriptions of YAML or JSON documents.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
