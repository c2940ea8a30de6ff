// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !renderpassdebug

package debug

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckPasses(t *testing.T) {
	if err := Check(true, "never %d", 1); err != nil {
		t.Errorf("Check(true) = %v, want nil", err)
	}
}

func TestCheckFails(t *testing.T) {
	err := Check(false, "layer %d missing", 3)
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("Check(false) = %v, want ErrPrecondition", err)
	}
	if !strings.Contains(err.Error(), "layer 3 missing") {
		t.Errorf("error %q does not carry the message", err)
	}
}
