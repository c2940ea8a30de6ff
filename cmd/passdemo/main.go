// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command passdemo renders a small scene through an output and writes the
// presented buffer as PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass"
	"github.com/gogpu/renderpass/backend"
	_ "github.com/gogpu/renderpass/backend/recording"
	"github.com/gogpu/renderpass/backend/software"
	"github.com/gogpu/renderpass/config"
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/instances"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
	"github.com/gogpu/renderpass/scene"
)

func main() {
	var (
		width     = flag.Int("width", 640, "output width in logical units")
		height    = flag.Int("height", 360, "output height in logical units")
		scale     = flag.Float64("scale", 1.5, "output scale")
		transform = flag.String("transform", "normal", "output transform")
		cfgPath   = flag.String("config", "", "TOML configuration file")
		output    = flag.String("output", "passdemo.png", "output file")
		name      = flag.String("backend", backend.BackendSoftware, "backend name")
		verbose   = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		renderpass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	t, err := geom.ParseTransform(*transform)
	if err != nil {
		log.Fatalf("Invalid transform: %v", err)
	}

	store := config.NewStore()
	if *cfgPath != "" {
		if err := config.Reload(*cfgPath, store); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	core, err := renderpass.New(renderpass.WithBackend(*name), renderpass.WithConfig(store))
	if err != nil {
		log.Fatalf("Failed to create core: %v (available: %v)", err, backend.Available())
	}
	defer core.Close()

	out := core.NewOutput("demo-1", geom.NewBox(0, 0, *width, *height), *scale, t)

	grab := out.NewInputGrab("passdemo", nil, nil)
	if err := grab.GrabInput(scene.LayerOverlay); err != nil {
		log.Fatalf("Failed to grab input: %v", err)
	}
	defer grab.UngrabInput()
	log.Printf("Grab %s holds focus: %t", grab.Node(), core.Seat().ActiveNode() != nil)

	dst, err := newDestination(core.Env(), *width, *height, *scale, t)
	if err != nil {
		log.Fatalf("Failed to allocate destination: %v", err)
	}
	defer dst.Buffer().Drop()

	scn := buildScene(core, *width, *height)

	damage, err := out.RenderFrame(scn, region.FromBox(out.LocalGeometry()), dst)
	if err != nil {
		log.Fatalf("Frame failed: %v", err)
	}
	log.Printf("First frame damage: %v", damage)

	// Move the highlight and redraw only what changed.
	hl := scn[0].(*instances.Rect)
	old := hl.Box
	hl.Box = hl.Box.Translate(geom.Pt(*width/8, 0))
	damage, err = out.RenderFrame(scn, region.New(old, hl.Box), dst)
	if err != nil {
		log.Fatalf("Frame failed: %v", err)
	}
	log.Printf("Second frame damage: %v", damage)

	img, ok := software.ImageOf(dst.Buffer())
	if !ok {
		log.Printf("Backend %q has no CPU image, nothing written", core.Backend().Name())
		return
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, img.Bounds().Dx(), img.Bounds().Dy())
}

// newDestination allocates the presentation buffer at the output's pixel
// size, untransformed.
func newDestination(env *render.Env, w, h int, scale float64, t geom.Transform) (render.RenderBuffer, error) {
	if t.SwapsAxes() {
		w, h = h, w
	}
	pw := int(math.Ceil(float64(w) * scale))
	ph := int(math.Ceil(float64(h) * scale))
	buf, err := env.Allocator.CreateBuffer(pw, ph, render.FormatARGB8888)
	if err != nil {
		return render.RenderBuffer{}, err
	}
	return render.NewRenderBuffer(buf), nil
}

// buildScene returns the demo instances, front to back.
func buildScene(core *renderpass.Core, w, h int) []render.Instance {
	scn := []render.Instance{
		&instances.Rect{Box: geom.NewBox(w/8, h/8, w/4, h/4), Color: gputypes.Color{R: 1, G: 0.8, A: 0.6}},
	}
	if tex := checkerboard(core); tex != nil {
		scn = append(scn, &instances.Translate{
			Offset: geom.Pt(w/2, h/2),
			Children: []render.Instance{&instances.Texture{
				Source: render.TextureSource{Texture: tex},
				Box:    geom.NewBox(0, 0, w/3, h/3),
				Opaque: true,
			}},
		})
	}
	return append(scn,
		&instances.Rect{Box: geom.NewBox(0, 0, w, h/2), Color: gputypes.Color{R: 0.2, G: 0.3, B: 0.6, A: 1}},
	)
}

// checkerboard creates an 8x8 texture when the backend can upload pixels.
func checkerboard(core *renderpass.Core) render.Texture {
	tc, ok := core.Env().Renderer.(gpucontext.TextureCreator)
	if !ok {
		return nil
	}
	const n = 8
	data := make([]byte, n*n*4)
	for y := range n {
		for x := range n {
			v := byte(40)
			if (x+y)%2 == 0 {
				v = 220
			}
			i := (y*n + x) * 4
			data[i], data[i+1], data[i+2], data[i+3] = v, v, v, 255
		}
	}
	tex, err := tc.NewTextureFromRGBA(n, n, data)
	if err != nil {
		log.Printf("Texture upload failed: %v", err)
		return nil
	}
	rt, ok := tex.(render.Texture)
	if !ok {
		return nil
	}
	return rt
}
