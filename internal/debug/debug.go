// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debug implements fatal-precondition checks.
//
// A failed check signals a logic bug in the caller. Builds tagged
// renderpassdebug abort loudly with a panic; other builds return an error
// wrapping ErrPrecondition so embedders can choose to abort or propagate.
package debug

import (
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by every error produced by a failed check.
var ErrPrecondition = errors.New("precondition violated")

// Check returns nil when ok holds. Otherwise it builds an error from the
// format and args, wrapping ErrPrecondition, and panics with it in debug builds.
func Check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	err := fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
	if Enabled {
		panic(err)
	}
	return err
}
