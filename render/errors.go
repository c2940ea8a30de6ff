// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/renderpass/internal/debug"
)

// Render errors.
var (
	// ErrPrecondition is wrapped by errors reporting caller bugs, such as
	// requesting a texture from an empty AuxiliaryBuffer. Builds tagged
	// renderpassdebug panic instead of returning it.
	ErrPrecondition = debug.ErrPrecondition

	// ErrPassNotOpen is returned when drawing into or submitting a pass
	// that was never opened or has already been submitted.
	ErrPassNotOpen = errors.New("render: pass is not open")

	// ErrBeginPass is returned when the renderer could not open a pass.
	ErrBeginPass = errors.New("render: failed to begin buffer pass")

	// ErrSubmit is returned when the renderer failed to submit a pass.
	ErrSubmit = errors.New("render: failed to submit pass")

	// ErrTexture is returned when a texture cannot be derived from a buffer.
	ErrTexture = errors.New("render: failed to create texture from buffer")

	// ErrNoRenderer is returned when neither the pass parameters nor the
	// environment provide a renderer.
	ErrNoRenderer = errors.New("render: no renderer")
)
