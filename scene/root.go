package scene

import "fmt"

// Layer identifies one of the fixed layer groups of the root.
type Layer int

// Layers from bottom to top.
const (
	LayerBackground Layer = iota
	LayerBottom
	LayerWorkspace
	LayerTop
	LayerUnmanaged
	LayerOverlay
	LayerLock
	LayerDWidget

	// LayerCount is the number of layers.
	LayerCount = int(LayerDWidget) + 1
)

var layerNames = [...]string{
	LayerBackground: "background",
	LayerBottom:     "bottom",
	LayerWorkspace:  "workspace",
	LayerTop:        "top",
	LayerUnmanaged:  "unmanaged",
	LayerOverlay:    "overlay",
	LayerLock:       "lock",
	LayerDWidget:    "dwidget",
}

func (l Layer) String() string {
	if l >= 0 && int(l) < len(layerNames) {
		return layerNames[l]
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// Root is the root of the scene tree.
type Root struct {
	Base
	layers    [LayerCount]*Group
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(UpdateFlag)
}

// NewRoot returns a root holding one empty group per layer, top-most first.
func NewRoot() *Root {
	r := &Root{}
	children := make([]Node, 0, LayerCount)
	for l := LayerCount - 1; l >= 0; l-- {
		g := NewGroup("layer-" + Layer(l).String())
		r.layers[l] = g
		children = append(children, g)
	}
	SetChildren(r, children)
	return r
}

func (r *Root) String() string { return "root" }

// Layer returns the group marking layer l, or nil for unknown layers.
func (r *Root) Layer(l Layer) *Group {
	if l < 0 || int(l) >= LayerCount {
		return nil
	}
	return r.layers[l]
}

// OnUpdate registers fn to be called for every update reaching the root.
// The returned function unregisters it.
func (r *Root) OnUpdate(fn func(UpdateFlag)) (cancel func()) {
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Root) notify(flags UpdateFlag) {
	for _, l := range r.listeners {
		l.fn(flags)
	}
}
