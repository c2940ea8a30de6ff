package recording

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/renderpass/backend"
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/render"
)

// Injected failures.
var (
	ErrTooLarge       = errors.New("recording: buffer exceeds maximum dimension")
	ErrBeginPass      = errors.New("recording: begin pass failed")
	ErrSubmit         = errors.New("recording: submit failed")
	ErrTexture        = errors.New("recording: texture creation failed")
	ErrAlreadyDone    = errors.New("recording: pass already submitted")
	ErrUnsupportedFmt = errors.New("recording: unsupported format")
)

func init() {
	backend.Register(backend.BackendRecording, func() backend.Backend {
		return New()
	})
}

// Backend records calls. It implements backend.Backend.
//
// The exported fields configure failure injection and may be changed
// between calls.
type Backend struct {
	// MaxDimension makes CreateBuffer fail for larger buffers. Zero means
	// unlimited.
	MaxDimension int

	// FailBeginPass makes BeginBufferPass fail.
	FailBeginPass bool

	// FailSubmit makes Pass.Submit fail.
	FailSubmit bool

	// FailTexture makes TextureFromBuffer fail.
	FailTexture bool

	// Formats overrides the formats reported by TextureFormats. Nil means
	// ARGB8888 and XRGB8888.
	Formats []render.PixelFormat

	// FailedAllocations lists the sizes of rejected CreateBuffer calls.
	FailedAllocations []geom.Dimensions

	commands     []Command
	nextBuffer   BufferRef
	nextTexture  TextureRef
	liveBuffers  map[BufferRef]*Buffer
	liveTextures map[TextureRef]*Texture
}

// New returns an empty recording backend.
func New() *Backend {
	return &Backend{
		liveBuffers:  make(map[BufferRef]*Buffer),
		liveTextures: make(map[TextureRef]*Texture),
	}
}

var _ backend.Backend = (*Backend)(nil)

// Name returns "recording".
func (b *Backend) Name() string { return backend.BackendRecording }

// Close drops nothing; leaked resources stay visible to LiveBuffers.
func (b *Backend) Close() {}

func (b *Backend) record(c Command) {
	b.commands = append(b.commands, c)
}

// Commands returns a copy of all recorded commands.
func (b *Backend) Commands() []Command {
	return slices.Clone(b.commands)
}

// CommandsOf returns the recorded commands of type t, in order.
func (b *Backend) CommandsOf(t CommandType) []Command {
	var out []Command
	for _, c := range b.commands {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Types returns the types of all recorded commands.
func (b *Backend) Types() []CommandType {
	out := make([]CommandType, len(b.commands))
	for i, c := range b.commands {
		out[i] = c.Type()
	}
	return out
}

// Reset forgets all recorded commands. Live resources are kept.
func (b *Backend) Reset() {
	b.commands = nil
	b.FailedAllocations = nil
}

// LiveBuffers returns the number of buffers created and not yet dropped.
func (b *Backend) LiveBuffers() int { return len(b.liveBuffers) }

// LiveTextures returns the number of textures created and not yet destroyed.
func (b *Backend) LiveTextures() int { return len(b.liveTextures) }

// CreateBuffer implements render.Allocator.
func (b *Backend) CreateBuffer(width, height int, format render.PixelFormat) (render.Buffer, error) {
	if b.MaxDimension > 0 && (width > b.MaxDimension || height > b.MaxDimension) {
		b.FailedAllocations = append(b.FailedAllocations, geom.Dimensions{Width: width, Height: height})
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, width, height, b.MaxDimension)
	}
	if !slices.Contains(b.TextureFormats(), format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFmt, format)
	}
	b.nextBuffer++
	buf := &Buffer{ref: b.nextBuffer, width: width, height: height, format: format, backend: b}
	b.liveBuffers[buf.ref] = buf
	b.record(CreateBufferCommand{Buffer: buf.ref, Width: width, Height: height, Format: format})
	return buf, nil
}

// TextureFormats implements render.Renderer.
func (b *Backend) TextureFormats() []render.PixelFormat {
	if b.Formats != nil {
		return b.Formats
	}
	return []render.PixelFormat{render.FormatARGB8888, render.FormatXRGB8888}
}

// TextureFromBuffer implements render.Renderer.
func (b *Backend) TextureFromBuffer(buf render.Buffer) (render.Texture, error) {
	if b.FailTexture {
		return nil, ErrTexture
	}
	b.nextTexture++
	tex := &Texture{ref: b.nextTexture, buffer: refOf(buf), width: buf.Width(), height: buf.Height(), backend: b}
	b.liveTextures[tex.ref] = tex
	b.record(CreateTextureCommand{Texture: tex.ref, Buffer: tex.buffer})
	return tex, nil
}

// BeginBufferPass implements render.Renderer.
func (b *Backend) BeginBufferPass(buf render.Buffer, opts *render.PassOptions) (render.Pass, error) {
	if b.FailBeginPass {
		return nil, ErrBeginPass
	}
	cmd := BeginPassCommand{Buffer: refOf(buf)}
	if opts != nil {
		cmd.Label = opts.Label
	}
	b.record(cmd)
	return &Pass{backend: b, buffer: cmd.Buffer}, nil
}

func refOf(buf render.Buffer) BufferRef {
	if rb, ok := buf.(*Buffer); ok {
		return rb.ref
	}
	return 0
}

// Binding wraps a Backend and additionally implements render.Binder, like
// renderers that need their destination bound before scheduling.
type Binding struct {
	*Backend
}

// NewBinding returns a recording backend that requires binding.
func NewBinding() *Binding {
	return &Binding{Backend: New()}
}

var _ render.Binder = (*Binding)(nil)

// BindBuffer implements render.Binder.
func (b *Binding) BindBuffer(buf render.Buffer) error {
	b.record(BindCommand{Buffer: refOf(buf)})
	return nil
}

// Buffer is a recorded buffer.
type Buffer struct {
	ref           BufferRef
	width, height int
	format        render.PixelFormat
	backend       *Backend
	dropped       bool
}

// Ref returns the buffer identifier.
func (buf *Buffer) Ref() BufferRef { return buf.ref }

// Width implements render.Buffer.
func (buf *Buffer) Width() int { return buf.width }

// Height implements render.Buffer.
func (buf *Buffer) Height() int { return buf.height }

// Format returns the pixel format the buffer was created with.
func (buf *Buffer) Format() render.PixelFormat { return buf.format }

// Dropped reports whether Drop was called.
func (buf *Buffer) Dropped() bool { return buf.dropped }

// Drop implements render.Buffer. Dropping twice panics.
func (buf *Buffer) Drop() {
	if buf.dropped {
		panic(fmt.Sprintf("recording: buffer %d dropped twice", buf.ref))
	}
	buf.dropped = true
	delete(buf.backend.liveBuffers, buf.ref)
	buf.backend.record(DropBufferCommand{Buffer: buf.ref})
}

// Texture is a recorded texture.
type Texture struct {
	ref           TextureRef
	buffer        BufferRef
	width, height int
	backend       *Backend
	destroyed     bool
}

// Ref returns the texture identifier.
func (t *Texture) Ref() TextureRef { return t.ref }

// Buffer returns the buffer the texture was derived from.
func (t *Texture) Buffer() BufferRef { return t.buffer }

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.height }

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool { return t.destroyed }

// Destroy implements render.Texture. Destroying twice panics.
func (t *Texture) Destroy() {
	if t.destroyed {
		panic(fmt.Sprintf("recording: texture %d destroyed twice", t.ref))
	}
	t.destroyed = true
	delete(t.backend.liveTextures, t.ref)
	t.backend.record(DestroyTextureCommand{Texture: t.ref})
}

// Pass is a recorded pass.
type Pass struct {
	backend   *Backend
	buffer    BufferRef
	submitted bool
}

// AddTexture implements render.Pass.
func (p *Pass) AddTexture(opts render.TextureOptions) {
	cmd := AddTextureCommand{Buffer: p.buffer, Options: opts}
	if t, ok := opts.Texture.(*Texture); ok {
		cmd.Texture = t.ref
	}
	p.backend.record(cmd)
}

// AddRect implements render.Pass.
func (p *Pass) AddRect(opts render.RectOptions) {
	p.backend.record(AddRectCommand{Buffer: p.buffer, Options: opts})
}

// Submit implements render.Pass.
func (p *Pass) Submit() error {
	if p.submitted {
		return ErrAlreadyDone
	}
	p.submitted = true
	p.backend.record(SubmitCommand{Buffer: p.buffer})
	if p.backend.FailSubmit {
		return ErrSubmit
	}
	return nil
}
