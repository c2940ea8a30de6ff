package scene

import (
	"slices"
	"testing"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}

func TestNewRootLayerOrder(t *testing.T) {
	r := NewRoot()
	got := names(Children(r))
	want := []string{
		"layer-dwidget", "layer-lock", "layer-overlay", "layer-unmanaged",
		"layer-top", "layer-workspace", "layer-bottom", "layer-background",
	}
	if !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	for l := Layer(0); int(l) < LayerCount; l++ {
		if p := Parent(r.Layer(l)); p != Node(r) {
			t.Errorf("Parent(Layer(%v)) = %v, want root", l, p)
		}
	}
	if r.Layer(Layer(LayerCount)) != nil || r.Layer(-1) != nil {
		t.Error("Layer() returned a group for an unknown layer")
	}
}

func TestSetChildrenReparents(t *testing.T) {
	parent := NewGroup("parent")
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	SetChildren(parent, []Node{a, b})
	SetChildren(parent, []Node{b, c})

	if Parent(a) != nil {
		t.Errorf("Parent(a) = %v, want nil", Parent(a))
	}
	for _, n := range []Node{b, c} {
		if Parent(n) != Node(parent) {
			t.Errorf("Parent(%v) = %v, want parent", n, Parent(n))
		}
	}
	if got := names(Children(parent)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("children = %v", got)
	}
}

func TestChildrenReturnsCopy(t *testing.T) {
	parent := NewGroup("parent")
	SetChildren(parent, []Node{NewGroup("a")})
	children := Children(parent)
	children[0] = NewGroup("x")
	if got := names(Children(parent)); got[0] != "a" {
		t.Errorf("children mutated through copy: %v", got)
	}
}

func TestUpdateBubblesToRoot(t *testing.T) {
	r := NewRoot()
	leaf := NewGroup("leaf")
	SetChildren(r.Layer(LayerWorkspace), []Node{leaf})

	var got []UpdateFlag
	cancel := r.OnUpdate(func(f UpdateFlag) { got = append(got, f) })
	Update(leaf, UpdateGeometry)
	cancel()
	Update(leaf, UpdateEnabled)

	if !slices.Equal(got, []UpdateFlag{UpdateGeometry}) {
		t.Errorf("updates = %v, want [geometry]", got)
	}
}

func TestUpdateDetachedIsDropped(t *testing.T) {
	r := NewRoot()
	called := false
	r.OnUpdate(func(UpdateFlag) { called = true })
	Update(NewGroup("orphan"), UpdateRefocus)
	if called {
		t.Error("update of a detached node reached the root")
	}
}

func TestRemoveChild(t *testing.T) {
	r := NewRoot()
	n := NewGroup("n")
	SetChildren(r, append([]Node{n}, Children(r)...))

	var got UpdateFlag
	r.OnUpdate(func(f UpdateFlag) { got = f })
	RemoveChild(n, UpdateRefocus)

	if Parent(n) != nil {
		t.Error("removed node still has a parent")
	}
	if len(Children(r)) != LayerCount {
		t.Errorf("root has %d children, want %d", len(Children(r)), LayerCount)
	}
	if got&UpdateRefocus != UpdateRefocus || got&UpdateChildrenList == 0 {
		t.Errorf("update flags = %v", got)
	}

	// Removing again is a no-op.
	got = 0
	RemoveChild(n, UpdateRefocus)
	if got != 0 {
		t.Errorf("second RemoveChild sent %v", got)
	}
}

func TestFlagStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{NodeFlags(0).String(), "none"},
		{(FlagDisabled | FlagRawInput).String(), "disabled|raw-input"},
		{UpdateRefocus.String(), "keyboard-refocus|pointer-refocus"},
		{UpdateFlag(0).String(), "none"},
		{LayerOverlay.String(), "overlay"},
		{Layer(42).String(), "Layer(42)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestSetEnabled(t *testing.T) {
	g := NewGroup("g")
	g.SetEnabled(false)
	if g.Flags()&FlagDisabled == 0 {
		t.Error("SetEnabled(false) did not set FlagDisabled")
	}
	g.SetEnabled(true)
	if g.Flags() != 0 {
		t.Errorf("Flags() = %v after SetEnabled(true)", g.Flags())
	}
}
