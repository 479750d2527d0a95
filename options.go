// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Unlimited is the limit value that disables depth or count limiting.
const Unlimited = -1

const (
	// DefaultMaxDepth is the default maximum nesting depth. It is finite so
	// that describing a deep acyclic structure terminates quickly.
	DefaultMaxDepth = 32
	// DefaultMaxCount is the default maximum number of elements described per
	// container.
	DefaultMaxCount = Unlimited
	// DefaultDeepTraversalThreshold is the default number of nested values
	// above which a warning is logged.
	DefaultDeepTraversalThreshold = 1 << 16
)

// Environment variables read by OptionsFromEnv.
const (
	EnvMaxDepth = "DESCRIBE_MAX_DEPTH"
	EnvMaxCount = "DESCRIBE_MAX_COUNT"
)

// Options holds the optional parameters for a Describer. The zero value of
// each field selects its default, except for limits set through SetMaxDepth
// or SetMaxCount.
type Options struct {
	// MaxDepth is the maximum nesting depth of described values. A value that
	// is nested MaxDepth levels below the root and has children of its own is
	// described as RecursionPlaceholder. A negative value disables the depth
	// limit, in which case only cycle detection bounds the traversal.
	//
	// The default value is DefaultMaxDepth. A limit of zero is kept only if
	// it was set with SetMaxDepth, which Parse and OptionsFromEnv use.
	MaxDepth int

	// MaxCount is the maximum number of elements described per container.
	// Omitted elements are replaced by a single Ellipsis. A negative value
	// disables the count limit.
	//
	// The default value is DefaultMaxCount. A limit of zero is kept only if
	// it was set with SetMaxCount.
	MaxCount int

	// DeepTraversalThreshold is the number of nested values above which a
	// warning naming the depth reached is logged, once per call. Deep
	// traversals never exhaust the goroutine stack but can use a lot of
	// memory and time when MaxDepth is unlimited.
	//
	// The default value is DefaultDeepTraversalThreshold.
	DeepTraversalThreshold int

	// Registry is the set of strategies used to describe values. The default
	// value is DefaultRegistry().
	Registry *Registry

	// Logger used to write log messages. The default logger uses the Go
	// standard library log package.
	Logger Logger

	// DescribeLatency, if set, observes the duration in seconds of every
	// top-level call.
	DescribeLatency prometheus.Histogram

	// explicit records the limits set through SetMaxDepth and SetMaxCount.
	explicit struct {
		maxDepth bool
		maxCount bool
	}
}

// SetMaxDepth sets MaxDepth. Unlike assigning the field, it marks the limit as
// explicitly set, so that a limit of zero is not replaced by the default.
func (o *Options) SetMaxDepth(n int) {
	o.MaxDepth = n
	o.explicit.maxDepth = true
}

// SetMaxCount sets MaxCount. Unlike assigning the field, it marks the limit as
// explicitly set, so that a limit of zero is not replaced by the default.
func (o *Options) SetMaxCount(n int) {
	o.MaxCount = n
	o.explicit.maxCount = true
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified.
func (o *Options) EnsureDefaults() {
	if o.MaxDepth == 0 && !o.explicit.maxDepth {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxCount == 0 && !o.explicit.maxCount {
		o.MaxCount = DefaultMaxCount
	}
	if o.DeepTraversalThreshold <= 0 {
		o.DeepTraversalThreshold = DefaultDeepTraversalThreshold
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
}

// Clone creates a shallow-copy of the supplied options.
func (o *Options) Clone() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
	}
	return n
}

// String returns the options in the INI-style format accepted by Parse.
func (o *Options) String() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[Version]\n")
	fmt.Fprintf(&buf, "  describe_version=0.1\n")
	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  deep_traversal_threshold=%d\n", o.DeepTraversalThreshold)
	fmt.Fprintf(&buf, "  max_count=%s\n", formatLimit(o.MaxCount))
	fmt.Fprintf(&buf, "  max_depth=%s\n", formatLimit(o.MaxDepth))
	return buf.String()
}

func formatLimit(n int) string {
	if n < 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}

// ParseLimit parses a depth or count limit: a non-negative integer, or
// "unlimited" or a negative integer for Unlimited.
func ParseLimit(s string) (int, error) {
	if s == "unlimited" {
		return Unlimited, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return Unlimited, nil
	}
	return n, nil
}

func parseLimitInto(s string, set func(int)) error {
	n, err := ParseLimit(s)
	if err != nil {
		return err
	}
	set(n)
	return nil
}

// Parse parses the options from the specified string, in the format written
// by String. Blank lines and lines starting with ';' or '#' are ignored.
// Unknown sections and keys are errors.
func (o *Options) Parse(s string) error {
	var section string
	for lineNum, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			// Skip blank lines and comments.
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}

		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Errorf("describe: invalid key=value syntax on line %d: %q",
				errors.Safe(lineNum+1), errors.Safe(line))
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])

		var err error
		switch {
		case section == "Version":
			switch key {
			case "describe_version":
			default:
				return errors.Errorf("describe: unknown option: %s.%s",
					errors.Safe(section), errors.Safe(key))
			}
		case section == "Options":
			switch key {
			case "deep_traversal_threshold":
				o.DeepTraversalThreshold, err = strconv.Atoi(value)
			case "max_count":
				err = parseLimitInto(value, o.SetMaxCount)
			case "max_depth":
				err = parseLimitInto(value, o.SetMaxDepth)
			default:
				return errors.Errorf("describe: unknown option: %s.%s",
					errors.Safe(section), errors.Safe(key))
			}
		default:
			return errors.Errorf("describe: unknown section: %q", errors.Safe(section))
		}
		if err != nil {
			return errors.Wrapf(err, "describe: parsing %s.%s", errors.Safe(section), errors.Safe(key))
		}
	}
	return nil
}

// Validate verifies that the options are mutually consistent. It assumes
// EnsureDefaults has been called.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.DeepTraversalThreshold < 1 {
		fmt.Fprintf(&buf, "DeepTraversalThreshold (%d) must be >= 1\n", o.DeepTraversalThreshold)
	}
	if o.Registry == nil {
		fmt.Fprintf(&buf, "Registry must be set\n")
	} else if o.Registry.Fallback() == nil {
		fmt.Fprintf(&buf, "Registry must have a fallback strategy\n")
	}
	if o.Logger == nil {
		fmt.Fprintf(&buf, "Logger must be set\n")
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

// OptionsFromEnv returns options whose limits are read from the DESCRIBE_MAX_DEPTH
// and DESCRIBE_MAX_COUNT environment variables. Unset or empty variables leave
// the corresponding option at its default; "unlimited" or a negative number
// disables the limit, and zero is kept as an explicit limit.
func OptionsFromEnv() (*Options, error) {
	o := &Options{}
	for _, e := range []struct {
		name string
		set  func(int)
	}{
		{EnvMaxDepth, o.SetMaxDepth},
		{EnvMaxCount, o.SetMaxCount},
	} {
		s, ok := os.LookupEnv(e.name)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		if err := parseLimitInto(strings.TrimSpace(s), e.set); err != nil {
			return nil, errors.Wrapf(err, "describe: parsing %s", errors.Safe(e.name))
		}
	}
	return o, nil
}
