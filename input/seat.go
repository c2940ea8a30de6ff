// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import (
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/logging"
	"github.com/gogpu/renderpass/scene"
)

// DefaultCursor is the cursor name restored by grabs.
const DefaultCursor = "default"

// Seat tracks the active output and the current keyboard and pointer focus.
type Seat struct {
	activeOutput  scene.Output
	keyboardFocus Node
	cursorFocus   Node
	cursorPos     geom.PointF
	cursor        string
}

// NewSeat returns a seat with no focus and the default cursor.
func NewSeat() *Seat {
	return &Seat{cursor: DefaultCursor}
}

// ActiveOutput returns the output that currently receives input.
func (s *Seat) ActiveOutput() scene.Output { return s.activeOutput }

// SetActiveOutput changes the output that receives input.
func (s *Seat) SetActiveOutput(o scene.Output) {
	if s.activeOutput != o {
		logging.Logger().Debug("input: active output changed", "output", outputName(o))
	}
	s.activeOutput = o
}

// ActiveNode returns the node holding keyboard focus.
func (s *Seat) ActiveNode() Node { return s.keyboardFocus }

// CursorFocus returns the node under the pointer.
func (s *Seat) CursorFocus() Node { return s.cursorFocus }

// CursorPosition returns the last pointer position in layout coordinates.
func (s *Seat) CursorPosition() geom.PointF { return s.cursorPos }

// SetKeyboardFocus moves keyboard focus to n, sending leave and enter.
func (s *Seat) SetKeyboardFocus(n Node) {
	if s.keyboardFocus == n {
		return
	}
	if s.keyboardFocus != nil {
		s.keyboardFocus.KeyboardInteraction().HandleKeyboardLeave(s)
	}
	s.keyboardFocus = n
	if n != nil {
		n.KeyboardInteraction().HandleKeyboardEnter(s)
	}
}

// SetCursorFocus moves pointer focus to n, sending leave and enter.
func (s *Seat) SetCursorFocus(n Node) {
	if s.cursorFocus == n {
		return
	}
	if s.cursorFocus != nil {
		s.cursorFocus.PointerInteraction().HandlePointerLeave()
	}
	s.cursorFocus = n
	if n != nil {
		n.PointerInteraction().HandlePointerEnter(s.cursorPos)
	}
}

// TransferGrab gives both keyboard and pointer focus to n.
func (s *Seat) TransferGrab(n Node) {
	logging.Logger().Debug("input: transferring grab", "node", n.String())
	s.SetKeyboardFocus(n)
	s.SetCursorFocus(n)
}

// SetCursor sets the cursor image by name.
func (s *Seat) SetCursor(name string) { s.cursor = name }

// Cursor returns the current cursor name.
func (s *Seat) Cursor() string { return s.cursor }

// Key delivers a key event to the keyboard focus, if any.
func (s *Seat) Key(ev KeyEvent) {
	if s.keyboardFocus != nil {
		s.keyboardFocus.KeyboardInteraction().HandleKeyboardKey(s, ev)
	}
}

// Button delivers a button event to the pointer focus, if any.
func (s *Seat) Button(ev ButtonEvent) {
	if s.cursorFocus != nil {
		s.cursorFocus.PointerInteraction().HandlePointerButton(ev)
	}
}

// Motion records the pointer position and forwards it to the pointer focus.
func (s *Seat) Motion(pos geom.PointF, timeMsec uint32) {
	s.cursorPos = pos
	if s.cursorFocus != nil {
		s.cursorFocus.PointerInteraction().HandlePointerMotion(pos, timeMsec)
	}
}

// Context bundles the state shared by input grabs.
type Context struct {
	Scene *scene.Root
	Seat  *Seat
}

// NewContext returns a context with a fresh scene root and seat.
func NewContext() *Context {
	return &Context{Scene: scene.NewRoot(), Seat: NewSeat()}
}

func outputName(o scene.Output) string {
	if o == nil {
		return "null"
	}
	return o.Name()
}
