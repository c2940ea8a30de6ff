// Package recording provides a backend that records every renderer and
// allocator call as a typed command instead of drawing.
//
// The recorded commands make pass behavior inspectable: which buffers were
// allocated, in which order draw calls were issued and with which clip.
// Failure injection fields let callers exercise error paths:
//
//	b := recording.New()
//	b.MaxDimension = 2048 // CreateBuffer fails above this size
//	b.FailBeginPass = true
//
//	env := &render.Env{Renderer: b, Allocator: b}
//	...
//	for _, cmd := range b.Commands() {
//		fmt.Println(cmd.Type())
//	}
//
// Importing the package registers the backend as "recording".
package recording
