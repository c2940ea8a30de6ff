package scene

import (
	"strings"

	"github.com/gogpu/renderpass/geom"
)

// UpdateFlag describes what changed in a node.
type UpdateFlag uint32

const (
	// UpdateChildrenList means children were added, removed or reordered.
	UpdateChildrenList UpdateFlag = 1 << iota

	// UpdateEnabled means the node was enabled or disabled.
	UpdateEnabled

	// UpdateInputState means the node's input handling changed.
	UpdateInputState

	// UpdateGeometry means the node moved or was resized.
	UpdateGeometry

	// UpdateKeyboardRefocus asks for keyboard focus to be recomputed.
	UpdateKeyboardRefocus

	// UpdatePointerRefocus asks for pointer focus to be recomputed.
	UpdatePointerRefocus

	// UpdateRefocus asks for all input focus to be recomputed.
	UpdateRefocus = UpdateKeyboardRefocus | UpdatePointerRefocus
)

var updateFlagNames = []struct {
	flag UpdateFlag
	name string
}{
	{UpdateChildrenList, "children-list"},
	{UpdateEnabled, "enabled"},
	{UpdateInputState, "input-state"},
	{UpdateGeometry, "geometry"},
	{UpdateKeyboardRefocus, "keyboard-refocus"},
	{UpdatePointerRefocus, "pointer-refocus"},
}

func (f UpdateFlag) String() string {
	var names []string
	for _, n := range updateFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Update announces a change of n. The update travels to the root of n's
// tree; if that is a Root, its listeners are notified. Updates of detached
// subtrees are dropped.
func Update(n Node, flags UpdateFlag) {
	for {
		p := Parent(n)
		if p == nil {
			break
		}
		n = p
	}
	if root, ok := n.(*Root); ok {
		root.notify(flags)
	}
}

// Output is a display that scene nodes can be bound to.
type Output interface {
	// Name returns a stable identifier such as "DP-1".
	Name() string

	// LayoutGeometry returns the output's area in the global layout.
	LayoutGeometry() geom.Box
}
