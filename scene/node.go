package scene

import (
	"slices"
	"strings"
)

// NodeFlags advertise node properties to input dispatch and rendering.
type NodeFlags uint32

const (
	// FlagDisabled hides the node and its children.
	FlagDisabled NodeFlags = 1 << iota

	// FlagRawInput asks for input events without gesture or binding
	// processing.
	FlagRawInput
)

// String returns the flag names joined by '|'.
func (f NodeFlags) String() string {
	var names []string
	if f&FlagDisabled != 0 {
		names = append(names, "disabled")
	}
	if f&FlagRawInput != 0 {
		names = append(names, "raw-input")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Node is an element of the scene tree. Implementations embed Base.
type Node interface {
	base() *Base

	// Flags returns the node's flags.
	Flags() NodeFlags

	// String describes the node for debugging.
	String() string
}

// Base holds the tree links of a node. Embed it to implement Node.
type Base struct {
	parent   Node
	children []Node
	flags    NodeFlags
}

func (b *Base) base() *Base { return b }

// Flags implements Node.
func (b *Base) Flags() NodeFlags { return b.flags }

// SetEnabled sets or clears FlagDisabled.
func (b *Base) SetEnabled(enabled bool) {
	if enabled {
		b.flags &^= FlagDisabled
	} else {
		b.flags |= FlagDisabled
	}
}

// Parent returns the parent of n, or nil for detached nodes and the root.
func Parent(n Node) Node {
	return n.base().parent
}

// Children returns a copy of the children of n, top-most first.
func Children(n Node) []Node {
	return slices.Clone(n.base().children)
}

// SetChildren replaces the children of n. Nodes no longer in the list are
// detached; new ones are re-parented. Callers are expected to call Update
// with UpdateChildrenList afterwards.
func SetChildren(n Node, children []Node) {
	nb := n.base()
	for _, old := range nb.children {
		if ob := old.base(); ob.parent == n {
			ob.parent = nil
		}
	}
	for _, c := range children {
		c.base().parent = n
	}
	nb.children = slices.Clone(children)
}

// RemoveChild detaches child from its parent and sends flags as update for
// the parent. Detached nodes are left alone.
func RemoveChild(child Node, flags UpdateFlag) {
	parent := Parent(child)
	if parent == nil {
		return
	}
	children := Children(parent)
	if i := slices.Index(children, child); i >= 0 {
		children = slices.Delete(children, i, i+1)
	}
	SetChildren(parent, children)
	child.base().parent = nil
	Update(parent, flags|UpdateChildrenList)
}

// Group is a plain inner node.
type Group struct {
	Base
	Name string
}

// NewGroup returns an empty named group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

func (g *Group) String() string { return g.Name }
