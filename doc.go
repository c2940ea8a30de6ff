// Package renderpass composes the rendering core of a compositor: damage
// tracking, render targets, render passes and exclusive input grabs.
//
// # Overview
//
// A Core bundles a backend (the renderer and buffer allocator), live
// configuration, the scene tree and the input seat. Outputs created from a
// Core own an auxiliary buffer into which each frame is rendered before it
// is handed to the post-processing hooks and finally copied into the
// presentation buffer.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/renderpass"
//		_ "github.com/gogpu/renderpass/backend/software"
//	)
//
//	core, err := renderpass.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer core.Close()
//
//	out := core.NewOutput("DP-1", geom.NewBox(0, 0, 1920, 1080), 1, geom.TransformNormal)
//	damage, err := out.RenderFrame(instances, region.FromBox(out.LocalGeometry()), screen)
//
// # Architecture
//
// The library is organized into:
//   - geom, region: boxes, transforms and damage regions
//   - render: auxiliary buffers, render targets and render passes
//   - backend: the backend registry with software and recording backends
//   - scene, input: the scene tree, the seat and input grabs
//   - config: TOML configuration with live reload
//
// # Logging
//
// Nothing is logged by default. Use SetLogger to route diagnostics from all
// sub-packages to a slog.Logger.
//
// # Thread Safety
//
// Rendering, the scene tree and the seat are driven from a single event loop
// goroutine and are not safe for concurrent use. SetLogger and the
// configuration store may be used from any goroutine.
package renderpass
