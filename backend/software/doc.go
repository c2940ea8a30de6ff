// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU backend.
//
// Buffers are *image.RGBA images holding premultiplied colors, whatever
// their nominal pixel format. Textures derived from a buffer share its
// pixels. Textured draws go through golang.org/x/image/draw transformers,
// using nearest-neighbor or approximate bilinear sampling, with the clip
// region rasterized into a destination mask.
//
// Importing the package registers the backend as "software".
package software
