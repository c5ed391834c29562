// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package materialize

import (
	"fmt"

	"github.com/pkg/errors"
)

// Op identifies the filesystem or image operation that failed.
type Op string

const (
	OpList   Op = "list"
	OpMkdir  Op = "mkdir"
	OpStat   Op = "stat"
	OpCopy   Op = "copy"
	OpRead   Op = "read"
	OpDecode Op = "decode"
	OpSave   Op = "save"
)

// Error is returned by the Materializer for any fault that aborts a run. It always names
// the operation and the offending path.
//
// A candidate file that doesn't exist is never an error.
type Error struct {
	Op   Op
	Path string
	Err  error
}

func newError(op Op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Cause is used by github.com/pkg/errors.Cause.
func (e *Error) Cause() error { return e.Err }

// IsDecodeError returns whether err was caused by a file that exists but couldn't be decoded as an image.
func IsDecodeError(err error) bool {
	var mErr *Error
	return errors.As(err, &mErr) && mErr.Op == OpDecode
}

// ErrorOp returns the operation that caused err, or "" if err was not generated by a Materializer.
func ErrorOp(err error) Op {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Op
	}
	return ""
}
