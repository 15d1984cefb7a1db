// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package disk

import (
	"errors"
	"strings"
)

// ErrSizeZero is returned if a disk is requested with size 0.
var ErrSizeZero = errors.New("disk size must be a positive integer")

// CreateError wraps a failed invocation of the image creation tool.
type CreateError struct {
	Path   string
	Output string
	Err    error
}

// Error implements the [error] interface.
func (e *CreateError) Error() string {
	msg := "create disk " + e.Path + ": " + e.Err.Error()
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*CreateError) Is(other error) bool {
	_, ok := other.(*CreateError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CreateError) Unwrap() error {
	return e.Err
}
