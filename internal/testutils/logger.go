// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a logger that writes to a testing.TB.
type Logger struct {
	T testing.TB
}

func (l Logger) Infof(format string, args ...interface{}) {
	l.T.Logf(format, args...)
}

func (l Logger) Errorf(format string, args ...interface{}) {
	l.T.Logf(format, args...)
}

func (l Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// BufferLogger is a logger that accumulates log lines in memory so that tests
// can assert on them. It is safe for concurrent use.
type BufferLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *BufferLogger) Infof(format string, args ...interface{}) {
	l.add(format, args...)
}

func (l *BufferLogger) Errorf(format string, args ...interface{}) {
	l.add(format, args...)
}

func (l *BufferLogger) Fatalf(format string, args ...interface{}) {
	l.add(format, args...)
	panic(fmt.Sprintf(format, args...))
}

func (l *BufferLogger) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the logged lines.
func (l *BufferLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns the logged lines joined by newlines.
func (l *BufferLogger) String() string {
	return strings.Join(l.Lines(), "\n")
}
