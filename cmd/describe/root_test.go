// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribeStdin(t *testing.T) {
	testCases := []struct {
		stdin string
		args  []string
		want  string
	}{
		{
			stdin: "[1, [2, [3, [4]]]]",
			args:  []string{"--max-depth=3"},
			want:  "[1, [2, [3, [...]]]]\n",
		},
		{
			stdin: "a: 1\n---\nb: [1, 2, 3]\n",
			args:  []string{"--max-count", "2"},
			want:  "{\"a\"=1}\n{\"b\"=[1, 2, ...]}\n",
		},
		{
			stdin: `{"x": "y", "n": null, "f": 2.5, "ok": true}`,
			want:  "{\"f\"=2.5, \"n\"=<nil>, \"ok\"=true, \"x\"=\"y\"}\n",
		},
		{
			stdin: "[[[1]]]",
			args:  []string{"--max-depth", "unlimited", "--max-count=0"},
			want:  "[...]\n",
		},
	}
	for _, tc := range testCases {
		out, err := runCmd(t, tc.stdin, tc.args...)
		require.NoError(t, err)
		require.Equal(t, tc.want, out, "%q %v", tc.stdin, tc.args)
	}
}

func TestDescribeEnv(t *testing.T) {
	t.Setenv("DESCRIBE_MAX_COUNT", "1")
	out, err := runCmd(t, "[1, 2]")
	require.NoError(t, err)
	require.Equal(t, "[1, ...]\n", out)

	// Flags take precedence over the environment.
	out, err = runCmd(t, "[1, 2]", "--max-count=-1")
	require.NoError(t, err)
	require.Equal(t, "[1, 2]\n", out)

	t.Setenv("DESCRIBE_MAX_COUNT", "0")
	out, err = runCmd(t, "[1, 2]")
	require.NoError(t, err)
	require.Equal(t, "[...]\n", out)

	t.Setenv("DESCRIBE_MAX_COUNT", "lots")
	_, err = runCmd(t, "[1, 2]")
	require.ErrorContains(t, err, "invalid max_count")
}

func TestDescribeFilesAndConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "OPTIONS")
	require.NoError(t, os.WriteFile(config, []byte("[Options]\n  max_depth=1\n  max_count=3\n"), 0644))
	doc := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("- 1\n- [2]\n- 3\n- 4\n"), 0644))

	out, err := runCmd(t, "", "--config", config, doc)
	require.NoError(t, err)
	require.Equal(t, "[1, [...], 3, ...]\n", out)

	out, err = runCmd(t, "", "--config", config, "--max-depth=2", doc)
	require.NoError(t, err)
	require.Equal(t, "[1, [2], 3, ...]\n", out)

	out, err = runCmd(t, "", "--config", config, "print-options")
	require.NoError(t, err)
	require.Contains(t, out, "max_depth=1\n")
	require.Contains(t, out, "max_count=3\n")

	// A zero limit in the options file is kept, and print-options writes it
	// back in a form that --config accepts.
	require.NoError(t, os.WriteFile(config, []byte("[Options]\n  max_count=0\n"), 0644))
	out, err = runCmd(t, "", "--config", config, doc)
	require.NoError(t, err)
	require.Equal(t, "[...]\n", out)

	out, err = runCmd(t, "", "--config", config, "print-options")
	require.NoError(t, err)
	require.Contains(t, out, "max_count=0\n")
	printed := filepath.Join(dir, "PRINTED")
	require.NoError(t, os.WriteFile(printed, []byte(out), 0644))
	out, err = runCmd(t, "", "--config", printed, doc)
	require.NoError(t, err)
	require.Equal(t, "[...]\n", out)

	_, err = runCmd(t, "", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestDescribeStatsTable(t *testing.T) {
	out, err := runCmd(t, "[1, [2, [3]]]\n---\n[]\n", "--max-depth=2", "--stats")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Equal(t, "[1, [2, [...]]]", lines[0])
	require.Equal(t, "[]", lines[1])
	require.Contains(t, out, "DEPTH LIMITED")
	require.Contains(t, out, "stdin:1")
	require.Contains(t, out, "stdin:2")
}
