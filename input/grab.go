// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import (
	"fmt"
	"slices"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/debug"
	"github.com/gogpu/renderpass/internal/logging"
	"github.com/gogpu/renderpass/scene"
)

// ErrPrecondition is wrapped by errors reporting caller logic bugs, such as
// grabbing twice.
var ErrPrecondition = debug.ErrPrecondition

// GrabNode covers an output and takes all input on it.
type GrabNode struct {
	scene.Base

	name       string
	output     scene.Output
	keyboard   KeyboardInteraction
	pointer    PointerInteraction
	additional scene.NodeFlags
}

// NewGrabNode returns a detached grab node. Nil interactions fall back to
// no-op implementations.
func NewGrabNode(name string, output scene.Output, keyboard KeyboardInteraction, pointer PointerInteraction) *GrabNode {
	if keyboard == nil {
		keyboard = NopKeyboard{}
	}
	if pointer == nil {
		pointer = NopPointer{}
	}
	return &GrabNode{name: name, output: output, keyboard: keyboard, pointer: pointer}
}

// Flags returns the base flags plus the grab's additional flags.
func (g *GrabNode) Flags() scene.NodeFlags {
	return g.Base.Flags() | g.additional
}

// Output returns the output the node covers.
func (g *GrabNode) Output() scene.Output { return g.output }

// FindNodeAt hits whenever p lies inside the output's layout geometry.
// The local coordinates are p itself.
func (g *GrabNode) FindNodeAt(p geom.PointF) (Hit, bool) {
	if g.output == nil || !g.output.LayoutGeometry().Contains(p) {
		return Hit{}, false
	}
	return Hit{Node: g, Local: p}, true
}

// KeyboardRefocus claims regular keyboard focus on the node's own output
// and hides everything below it.
func (g *GrabNode) KeyboardRefocus(output scene.Output) (FocusRequest, bool) {
	if output != g.output {
		return FocusRequest{}, false
	}
	return FocusRequest{Node: g, Importance: ImportanceRegular, AllowFocusBelow: false}, true
}

func (g *GrabNode) String() string {
	return g.name + "-input-grab " + outputName(g.output)
}

// KeyboardInteraction implements Node.
func (g *GrabNode) KeyboardInteraction() KeyboardInteraction { return g.keyboard }

// PointerInteraction implements Node.
func (g *GrabNode) PointerInteraction() PointerInteraction { return g.pointer }

// InputGrab manages the lifetime of a GrabNode in the scene.
type InputGrab struct {
	ctx    *Context
	output scene.Output
	node   *GrabNode
}

// NewInputGrab returns an ungrabbed helper for output.
func NewInputGrab(ctx *Context, name string, output scene.Output, keyboard KeyboardInteraction, pointer PointerInteraction) *InputGrab {
	return &InputGrab{
		ctx:    ctx,
		output: output,
		node:   NewGrabNode(name, output, keyboard, pointer),
	}
}

// Node returns the grab node.
func (g *InputGrab) Node() *GrabNode { return g.node }

// IsGrabbed reports whether the grab node is attached to the scene.
func (g *InputGrab) IsGrabbed() bool {
	return scene.Parent(g.node) != nil
}

// GrabInput inserts the grab node directly above layer and, on the active
// output, moves all input focus to it.
func (g *InputGrab) GrabInput(layer scene.Layer) error {
	if err := debug.Check(!g.IsGrabbed(), "input: %s already grabbed", g.node); err != nil {
		return err
	}
	root := g.ctx.Scene
	children := scene.Children(root)
	marker := root.Layer(layer)
	idx := -1
	if marker != nil {
		idx = slices.Index(children, scene.Node(marker))
	}
	if err := debug.Check(idx >= 0, "input: layer %v not found in scene root", layer); err != nil {
		return err
	}

	children = slices.Insert(children, idx, scene.Node(g.node))
	scene.SetChildren(root, children)

	if g.output == g.ctx.Seat.ActiveOutput() {
		g.ctx.Seat.TransferGrab(g.node)
	}
	scene.Update(root, scene.UpdateChildrenList|scene.UpdateRefocus)
	g.ctx.Seat.SetCursor(DefaultCursor)
	logging.Logger().Debug("input: grabbed", "node", g.node.String(), "layer", layer.String())
	return nil
}

// RegrabInput restores the grab's focus if something else took it. It is
// cheap to call when nothing changed.
func (g *InputGrab) RegrabInput() {
	seat := g.ctx.Seat
	if seat.ActiveNode() == Node(g.node) {
		if f := seat.CursorFocus(); f == nil || f == Node(g.node) {
			return
		}
	}
	if g.output == seat.ActiveOutput() {
		seat.TransferGrab(g.node)
	}
	scene.Update(g.ctx.Scene, scene.UpdateRefocus)
}

// UngrabInput detaches the grab node. It is a no-op when not grabbed.
func (g *InputGrab) UngrabInput() {
	if !g.IsGrabbed() {
		return
	}
	scene.RemoveChild(g.node, scene.UpdateRefocus)
	logging.Logger().Debug("input: ungrabbed", "node", g.node.String())
}

// SetWantsRawInput asks for events without binding processing.
func (g *InputGrab) SetWantsRawInput(raw bool) {
	if raw {
		g.node.additional = scene.FlagRawInput
	} else {
		g.node.additional = 0
	}
}

func (g *InputGrab) String() string {
	return fmt.Sprintf("InputGrab(%s, grabbed=%t)", g.node, g.IsGrabbed())
}
