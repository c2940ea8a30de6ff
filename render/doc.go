// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements damage-tracked render passes.
//
// A frame is drawn by asking scene instances to schedule instructions
// against a RenderTarget and the accumulated damage Region, opening a pass on
// the target's buffer and executing the instructions back to front. Every
// draw call is clipped to its damage so that only pixels which changed are
// touched.
//
// # Core Types
//
//   - Buffer: opaque pixel memory provided by an Allocator
//   - AuxiliaryBuffer: owned buffer plus a lazily derived texture
//   - RenderTarget: buffer plus placement (geometry, scale, transform, crop)
//   - RenderPass: one begin / draw-many / submit cycle
//   - Instance, Instruction: the scene scheduling protocol
//
// # Capabilities
//
// The package never talks to a graphics API directly. The Renderer,
// Allocator and Pass interfaces are provided by a backend, see package
// backend for the registry and backend/software for a CPU implementation.
//
// # Coordinate Spaces
//
// Geometry space is logical, output independent and floating point; its
// origin is the target's Geometry origin. Framebuffer space is the integer
// pixel grid of the target buffer. RenderTarget converts in both directions.
// Integer conversions round outward so a converted box always covers the
// exact result.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. All calls are expected
// from the single goroutine running the frame loop.
package render
