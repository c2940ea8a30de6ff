// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import (
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/scene"
)

// KeyEvent is a keyboard key press or release.
type KeyEvent struct {
	TimeMsec uint32
	Keycode  uint32
	Pressed  bool
}

// ButtonEvent is a pointer button press or release.
type ButtonEvent struct {
	TimeMsec uint32
	Button   uint32
	Pressed  bool
}

// KeyboardInteraction receives keyboard events for a node.
type KeyboardInteraction interface {
	HandleKeyboardEnter(seat *Seat)
	HandleKeyboardLeave(seat *Seat)
	HandleKeyboardKey(seat *Seat, ev KeyEvent)
}

// PointerInteraction receives pointer events for a node. Positions are in
// the node's local coordinates.
type PointerInteraction interface {
	HandlePointerEnter(pos geom.PointF)
	HandlePointerLeave()
	HandlePointerButton(ev ButtonEvent)
	HandlePointerMotion(pos geom.PointF, timeMsec uint32)
}

// NopKeyboard ignores all keyboard events.
type NopKeyboard struct{}

func (NopKeyboard) HandleKeyboardEnter(*Seat)         {}
func (NopKeyboard) HandleKeyboardLeave(*Seat)         {}
func (NopKeyboard) HandleKeyboardKey(*Seat, KeyEvent) {}

// NopPointer ignores all pointer events.
type NopPointer struct{}

func (NopPointer) HandlePointerEnter(geom.PointF)          {}
func (NopPointer) HandlePointerLeave()                     {}
func (NopPointer) HandlePointerButton(ButtonEvent)         {}
func (NopPointer) HandlePointerMotion(geom.PointF, uint32) {}

// Node is a scene node that can hold input focus.
type Node interface {
	scene.Node
	KeyboardInteraction() KeyboardInteraction
	PointerInteraction() PointerInteraction
}

// Importance ranks keyboard focus candidates.
type Importance int

const (
	ImportanceUnknown Importance = iota
	ImportanceLow
	ImportanceRegular
	ImportanceHigh
)

// FocusRequest is a node's answer to a keyboard refocus query.
type FocusRequest struct {
	Node       Node
	Importance Importance

	// AllowFocusBelow lets nodes below the requester win focus.
	AllowFocusBelow bool
}

// Hit is the result of a pointer hit test.
type Hit struct {
	Node  Node
	Local geom.PointF
}
