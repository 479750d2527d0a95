// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/describe"
)

func Example() {
	nested := []any{1, []any{2, []any{3, []any{4}}}}
	fmt.Println(describe.DescribeLimits(nested, 3, describe.Unlimited))

	a := []any{1, nil}
	a[1] = a
	fmt.Println(describe.DescribeLimits(a, describe.Unlimited, describe.Unlimited))

	fmt.Println(describe.DescribeLimits([]int{1, 2, 3, 4, 5}, describe.DefaultMaxDepth, 4))
	fmt.Println(describe.DescribeLimits([]int{}, describe.DefaultMaxDepth, 4))
	fmt.Println(describe.DescribeLimits([]int{1}, describe.DefaultMaxDepth, 0))
	// Output:
	// [1, [2, [3, [...]]]]
	// [1, [...]]
	// [1, 2, 3, 4, ...]
	// []
	// [...]
}

type temperature float64

func Example_customStrategy() {
	celsius := &describe.StrategyFuncs{
		Name: "celsius",
		TestFunc: func(v any) bool {
			_, ok := v.(temperature)
			return ok
		},
		RenderFunc: func(w describe.Writer, v any, _ int, _ describe.Recurse) error {
			w.WriteString(fmt.Sprintf("%.1f°C", float64(v.(temperature))))
			return nil
		},
	}
	d, err := describe.New(&describe.Options{
		Registry: describe.DefaultRegistry().WithStrategies(celsius),
		MaxCount: 2,
	})
	if err != nil {
		panic(err)
	}
	readings := map[string][]temperature{
		"kitchen": {21.5, 22, 22.5},
		"garage":  {8},
	}
	fmt.Println(d.Describe(readings))
	if err := d.DescribeTo(os.Stdout, readings["kitchen"]); err != nil {
		panic(err)
	}
	fmt.Println()
	// Output:
	// {"garage"=[8.0°C], "kitchen"=[21.5°C, 22.0°C, ...]}
	// [21.5°C, 22.0°C, ...]
}

func ExampleLazy() {
	var b strings.Builder
	fmt.Fprintf(&b, "state: %v", describe.Lazy(map[string]int{"b": 2, "a": 1}))
	fmt.Println(b.String())
	// Output:
	// state: {"a"=1, "b"=2}
}
