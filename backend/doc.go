// Package backend provides the table of renderer/allocator backends.
//
// Backends register themselves from init functions and are selected at
// runtime by name or by priority:
//
//	import _ "github.com/gogpu/renderpass/backend/software"
//
//	b := backend.Default()      // best available
//	b = backend.Get("software") // by name
//
// The registry is built on gpucontext.Registry and is safe for concurrent
// use. The backends themselves are not.
package backend
