// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !renderpassdebug

package debug

// Enabled reports whether failed checks panic.
const Enabled = false
