// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lint

import (
	"bytes"
	"go/build"
	"os/exec"
	"runtime"
	"testing"

	"github.com/ghemawat/stream"
)

func dirCmd(
	t *testing.T, dir string, name string, args ...string,
) stream.Filter {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	switch err.(type) {
	case nil:
	case *exec.ExitError:
		// Non-zero exit is expected.
	default:
		t.Fatal(err)
	}
	return stream.ReadLines(bytes.NewReader(out))
}

func ignoreGoMod() stream.Filter {
	return stream.GrepNot(`^go: (finding|extracting|downloading)`)
}

func TestLint(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("lint checks skipped on Windows")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go binary not found")
	}

	const root = "github.com/cockroachdb/describe"

	pkg, err := build.Import(root, "../..", 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("TestForbiddenImports", func(t *testing.T) {
		t.Parallel()

		// Errors are created with github.com/cockroachdb/errors so that they
		// carry stack traces and redactable messages.
		const format = `{{range .Imports}}{{$.ImportPath}}: {{.}}
{{end}}{{range .TestImports}}{{$.ImportPath}}: {{.}}
{{end}}`
		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "go", "list", "-f", format, "./..."),
				ignoreGoMod(),
				stream.Grep(`: (errors|github\.com/pkg/errors)$`),
			), func(s string) {
				t.Errorf("\n%s <- please use \"github.com/cockroachdb/errors\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestFmtErrorf", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "grep", "-rn", "--include=*.go", "--exclude=*_test.go",
					"--exclude-dir=_examples", `fmt\.Errorf`, "."),
			), func(s string) {
				t.Errorf("\n%s <- please use \"errors.Errorf\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestGoVet", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "go", "vet", "-all", "./..."),
				stream.GrepNot(`^#`), // ignore comment lines
				ignoreGoMod(),
			), func(s string) {
				t.Errorf("\n%s", s)
			}); err != nil {
			t.Error(err)
		}
	})
}
