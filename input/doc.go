// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package input implements seat focus tracking and exclusive input grabs.
//
// An InputGrab owns a GrabNode that, while grabbed, sits in the scene root
// directly above a chosen layer. Anything below it no longer receives
// keyboard or pointer focus on the grab's output.
//
// Like the scene tree, a Seat is mutated only from the event loop goroutine.
package input
