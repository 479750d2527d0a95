// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrNotApplicable is a marker for errors returned when a Strategy is asked to
// render a value that its Test method rejects. It indicates a programming
// error in the caller of Render.
var ErrNotApplicable = errors.New("describe: strategy not applicable")

// IsNotApplicable returns true if err was caused by rendering a value with a
// strategy that does not accept it.
func IsNotApplicable(err error) bool {
	return errors.Is(err, ErrNotApplicable)
}

// CheckApplicable returns an error marked with ErrNotApplicable if s does not
// accept v. Strategy implementations call it at the top of Render.
func CheckApplicable(s Strategy, v any) error {
	if s.Test(v) {
		return nil
	}
	return errors.Mark(
		errors.Newf("describe: strategy %s not applicable to value of type %s",
			redact.Safe(StrategyName(s)), redact.Safe(fmt.Sprintf("%T", v))),
		ErrNotApplicable)
}

// SinkError is returned when the output sink fails while a description is
// being written. Writes are never retried and the description is abandoned.
type SinkError struct {
	Cause error
}

var _ error = (*SinkError)(nil)

func newSinkError(cause error) error {
	return errors.WithStack(&SinkError{Cause: cause})
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("describe: writing to sink: %v", e.Cause)
}

// Unwrap returns the error returned by the sink.
func (e *SinkError) Unwrap() error { return e.Cause }

// IsSinkError returns true if err was caused by a failing output sink.
func IsSinkError(err error) bool {
	var se *SinkError
	return errors.As(err, &se)
}
