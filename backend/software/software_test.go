// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/backend/software"
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/instances"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func newBuffer(t *testing.T, b *software.Backend, w, h int) (render.Buffer, *image.RGBA) {
	t.Helper()
	buf, err := b.CreateBuffer(w, h, render.FormatARGB8888)
	if err != nil {
		t.Fatalf("CreateBuffer(%d, %d) error = %v", w, h, err)
	}
	img, ok := software.ImageOf(buf)
	if !ok {
		t.Fatal("ImageOf() failed for a software buffer")
	}
	return buf, img
}

func begin(t *testing.T, b *software.Backend, buf render.Buffer) render.Pass {
	t.Helper()
	pass, err := b.BeginBufferPass(buf, nil)
	if err != nil {
		t.Fatalf("BeginBufferPass() error = %v", err)
	}
	return pass
}

func TestCreateBuffer(t *testing.T) {
	b := software.New(software.WithMaxDimension(16))
	tests := []struct {
		w, h    int
		wantErr error
	}{
		{16, 16, nil},
		{1, 1, nil},
		{17, 4, software.ErrTooLarge},
		{4, 17, software.ErrTooLarge},
		{0, 4, software.ErrInvalidSize},
		{4, -1, software.ErrInvalidSize},
	}
	for _, tt := range tests {
		buf, err := b.CreateBuffer(tt.w, tt.h, render.FormatXRGB8888)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CreateBuffer(%d, %d) error = %v, want %v", tt.w, tt.h, err, tt.wantErr)
			continue
		}
		if err == nil && (buf.Width() != tt.w || buf.Height() != tt.h) {
			t.Errorf("CreateBuffer(%d, %d) = %dx%d", tt.w, tt.h, buf.Width(), buf.Height())
		}
	}
}

func TestDefaultLimits(t *testing.T) {
	b := software.New()
	if got, want := b.MaxDimension(), int(gputypes.DefaultLimits().MaxTextureDimension2D); got != want {
		t.Errorf("MaxDimension() = %d, want %d", got, want)
	}
	limits := gputypes.DefaultLimits()
	limits.MaxTextureDimension2D = 32
	if got := software.New(software.WithLimits(limits)).MaxDimension(); got != 32 {
		t.Errorf("MaxDimension() with limits = %d, want 32", got)
	}
}

func TestAddRectClip(t *testing.T) {
	b := software.New()
	buf, img := newBuffer(t, b, 10, 10)
	pass := begin(t, b, buf)
	pass.AddRect(render.RectOptions{
		Box:   geom.NewBox(0, 0, 10, 10),
		Color: gputypes.Color{R: 1, A: 1},
		Blend: render.BlendNone,
		Clip:  region.New(geom.NewBox(2, 2, 3, 3), geom.NewBox(7, 0, 1, 1)),
	})
	if err := pass.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, red},
		{4, 4, red},
		{7, 0, red},
		{0, 0, color.RGBA{}},
		{5, 5, color.RGBA{}},
		{6, 0, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAddRectEmptyClipDrawsNothing(t *testing.T) {
	b := software.New()
	buf, img := newBuffer(t, b, 4, 4)
	pass := begin(t, b, buf)
	pass.AddRect(render.RectOptions{Box: geom.NewBox(0, 0, 4, 4), Color: gputypes.Color{R: 1, A: 1}})
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("pixel = %v, want untouched", got)
	}
}

func TestAddRectBlendsPremultiplied(t *testing.T) {
	b := software.New()
	buf, img := newBuffer(t, b, 2, 2)
	full := region.FromBox(geom.NewBox(0, 0, 2, 2))
	pass := begin(t, b, buf)
	pass.AddRect(render.RectOptions{Box: geom.NewBox(0, 0, 2, 2), Color: gputypes.Color{B: 1, A: 1}, Blend: render.BlendNone, Clip: full})
	pass.AddRect(render.RectOptions{Box: geom.NewBox(0, 0, 2, 2), Color: gputypes.Color{R: 0.5, A: 0.5}, Clip: full})
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
	got := img.RGBAAt(0, 0)
	if !near(got.R, 128) || !near(got.B, 128) || got.A != 255 || got.G != 0 {
		t.Errorf("blended pixel = %v, want about {128 0 128 255}", got)
	}
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -2 && d <= 2
}

func quadTexture(t *testing.T, b *software.Backend) render.Texture {
	t.Helper()
	data := make([]byte, 0, 16)
	for _, c := range []color.RGBA{red, green, blue, white} {
		data = append(data, c.R, c.G, c.B, c.A)
	}
	tex, err := b.NewTextureFromRGBA(2, 2, data)
	if err != nil {
		t.Fatalf("NewTextureFromRGBA() error = %v", err)
	}
	return tex.(render.Texture)
}

func TestAddTexture(t *testing.T) {
	tests := []struct {
		name      string
		dst       geom.Box
		transform geom.Transform
		want      map[image.Point]color.RGBA
	}{
		{
			name: "scaled",
			dst:  geom.NewBox(0, 0, 4, 4),
			want: map[image.Point]color.RGBA{
				image.Pt(0, 0): red, image.Pt(1, 1): red, image.Pt(3, 0): green, image.Pt(0, 3): blue, image.Pt(3, 3): white,
			},
		},
		{
			name:      "rotated 180",
			dst:       geom.NewBox(0, 0, 2, 2),
			transform: geom.Transform180,
			want: map[image.Point]color.RGBA{
				image.Pt(0, 0): white, image.Pt(1, 0): blue, image.Pt(0, 1): green, image.Pt(1, 1): red,
			},
		},
		{
			name:      "rotated 90",
			dst:       geom.NewBox(0, 0, 2, 2),
			transform: geom.Transform90,
			want: map[image.Point]color.RGBA{
				image.Pt(0, 0): green, image.Pt(1, 0): white, image.Pt(0, 1): red, image.Pt(1, 1): blue,
			},
		},
		{
			name:      "rotated 270",
			dst:       geom.NewBox(0, 0, 2, 2),
			transform: geom.Transform270,
			want: map[image.Point]color.RGBA{
				image.Pt(0, 0): blue, image.Pt(1, 0): red, image.Pt(0, 1): white, image.Pt(1, 1): green,
			},
		},
		{
			name: "offset",
			dst:  geom.NewBox(2, 2, 2, 2),
			want: map[image.Point]color.RGBA{
				image.Pt(0, 0): {}, image.Pt(2, 2): red, image.Pt(3, 3): white,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := software.New()
			buf, img := newBuffer(t, b, 4, 4)
			pass := begin(t, b, buf)
			pass.AddTexture(render.TextureOptions{
				Texture:   quadTexture(t, b),
				DstBox:    tt.dst,
				Alpha:     1,
				Blend:     render.BlendNone,
				Filter:    gputypes.FilterModeNearest,
				Transform: tt.transform,
				Clip:      region.FromBox(geom.NewBox(0, 0, 4, 4)),
			})
			if err := pass.Submit(); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			for p, want := range tt.want {
				if got := img.RGBAAt(p.X, p.Y); got != want {
					t.Errorf("pixel %v = %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestAddTextureClipAndSourceBox(t *testing.T) {
	b := software.New()
	buf, img := newBuffer(t, b, 4, 4)
	pass := begin(t, b, buf)
	pass.AddTexture(render.TextureOptions{
		Texture: quadTexture(t, b),
		SrcBox:  geom.FBox{X: 1, Y: 1, Width: 1, Height: 1},
		DstBox:  geom.NewBox(0, 0, 4, 4),
		Alpha:   1,
		Blend:   render.BlendNone,
		Clip:    region.FromBox(geom.NewBox(0, 0, 2, 4)),
	})
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 3); got != white {
		t.Errorf("pixel inside clip = %v, want white", got)
	}
	if got := img.RGBAAt(3, 3); got != (color.RGBA{}) {
		t.Errorf("pixel outside clip = %v, want untouched", got)
	}
}

func TestTextureFromBufferSharesPixels(t *testing.T) {
	b := software.New()
	src, srcImg := newBuffer(t, b, 2, 2)
	srcImg.SetRGBA(0, 0, green)
	tex, err := b.TextureFromBuffer(src)
	if err != nil {
		t.Fatalf("TextureFromBuffer() error = %v", err)
	}
	defer tex.Destroy()
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Errorf("texture size = %dx%d", tex.Width(), tex.Height())
	}

	dst, dstImg := newBuffer(t, b, 2, 2)
	pass := begin(t, b, dst)
	pass.AddTexture(render.TextureOptions{
		Texture: tex, DstBox: geom.NewBox(0, 0, 2, 2), Alpha: 1, Blend: render.BlendNone,
		Clip: region.FromBox(geom.NewBox(0, 0, 2, 2)),
	})
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
	if got := dstImg.RGBAAt(0, 0); got != green {
		t.Errorf("copied pixel = %v, want green", got)
	}
}

type foreignBuffer struct{}

func (foreignBuffer) Width() int  { return 1 }
func (foreignBuffer) Height() int { return 1 }
func (foreignBuffer) Drop()       {}

func TestForeignResources(t *testing.T) {
	b := software.New()
	if _, err := b.TextureFromBuffer(foreignBuffer{}); !errors.Is(err, software.ErrForeign) {
		t.Errorf("TextureFromBuffer(foreign) error = %v, want ErrForeign", err)
	}
	if _, err := b.BeginBufferPass(foreignBuffer{}, nil); !errors.Is(err, software.ErrForeign) {
		t.Errorf("BeginBufferPass(foreign) error = %v, want ErrForeign", err)
	}

	buf, _ := newBuffer(t, b, 2, 2)
	pass := begin(t, b, buf)
	pass.AddTexture(render.TextureOptions{DstBox: geom.NewBox(0, 0, 1, 1), Alpha: 1})
	if err := pass.Submit(); !errors.Is(err, software.ErrForeign) {
		t.Errorf("Submit() after foreign texture error = %v, want ErrForeign", err)
	}
	if err := pass.Submit(); !errors.Is(err, software.ErrPassSubmitted) {
		t.Errorf("second Submit() error = %v, want ErrPassSubmitted", err)
	}
}

func TestNewTextureFromRGBAValidates(t *testing.T) {
	b := software.New()
	if _, err := b.NewTextureFromRGBA(2, 2, make([]byte, 15)); !errors.Is(err, software.ErrDataSize) {
		t.Errorf("short data error = %v, want ErrDataSize", err)
	}
	if _, err := b.NewTextureFromRGBA(0, 2, nil); !errors.Is(err, software.ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
}

func TestRunRendersScaledScene(t *testing.T) {
	b := software.New()
	env := &render.Env{Renderer: b, Allocator: b}
	aux := &render.AuxiliaryBuffer{}
	if got := aux.Allocate(env, geom.Dimensions{Width: 10, Height: 10}, 2, render.AllocationHints{}); got != render.BufferReallocated {
		t.Fatalf("Allocate() = %v", got)
	}
	defer aux.Free()

	target := render.TargetFromAuxiliary(aux)
	target.Geometry = geom.NewBox(0, 0, 10, 10)
	target.Scale = 2

	_, err := render.Run(env, render.PassParams{
		Target:          target,
		Damage:          region.FromBox(target.Geometry),
		Instances:       []render.Instance{&instances.Rect{Box: geom.NewBox(0, 0, 5, 5), Color: gputypes.Color{R: 1, A: 1}}},
		Flags:           render.PassClearBackground,
		BackgroundColor: gputypes.Color{B: 1, A: 1},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	img, _ := software.ImageOf(aux.Buffer())
	for _, tt := range []struct {
		p    image.Point
		want color.RGBA
	}{
		{image.Pt(0, 0), red},
		{image.Pt(9, 9), red},
		{image.Pt(10, 10), blue},
		{image.Pt(19, 0), blue},
	} {
		if got := img.RGBAAt(tt.p.X, tt.p.Y); got != tt.want {
			t.Errorf("pixel %v = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// texelColor gives every texel of the orientation texture a distinct color.
func texelColor(x, y int) color.RGBA {
	return color.RGBA{R: uint8(40 + 80*x), G: uint8(60 + 60*y), B: 7, A: 255}
}

func TestAddTextureFollowsTargetMapping(t *testing.T) {
	const w, h = 3, 2
	for tr := geom.TransformNormal; tr <= geom.TransformFlipped270; tr++ {
		t.Run(tr.String(), func(t *testing.T) {
			b := software.New()
			data := make([]byte, 0, 4*w*h)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					c := texelColor(x, y)
					data = append(data, c.R, c.G, c.B, c.A)
				}
			}
			tex, err := b.NewTextureFromRGBA(w, h, data)
			if err != nil {
				t.Fatalf("NewTextureFromRGBA() error = %v", err)
			}

			bw, bh := w, h
			if tr.SwapsAxes() {
				bw, bh = h, w
			}
			buf, img := newBuffer(t, b, bw, bh)
			target := render.NewRenderTarget(render.NewRenderBuffer(buf))
			target.Geometry = geom.NewBox(0, 0, w, h)
			target.Transform = tr

			env := &render.Env{Renderer: b, Allocator: b}
			rp, err := render.NewRenderPass(env, render.PassParams{Target: target, Damage: region.FromBox(target.Geometry)})
			if err != nil {
				t.Fatalf("NewRenderPass() error = %v", err)
			}
			if _, err := rp.RunPartial(); err != nil {
				t.Fatalf("RunPartial() error = %v", err)
			}
			src := render.TextureSource{Texture: tex.(render.Texture), Filter: gputypes.FilterModeNearest}
			if err := rp.AddTextureBox(src, target, target.Geometry, region.FromBox(target.Geometry), 1); err != nil {
				t.Fatalf("AddTextureBox() error = %v", err)
			}
			if err := rp.Submit(); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					fb := target.FramebufferBoxFromGeometry(geom.NewBox(x, y, 1, 1))
					if got, want := img.RGBAAt(fb.X, fb.Y), texelColor(x, y); got != want {
						t.Errorf("texel (%d,%d) at framebuffer (%d,%d) = %v, want %v", x, y, fb.X, fb.Y, got, want)
					}
				}
			}
		})
	}
}
