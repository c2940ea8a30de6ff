package recording

import "github.com/gogpu/renderpass/render"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Resource commands
	CmdCreateBuffer   CommandType = iota // Allocate a buffer
	CmdDropBuffer                        // Drop a buffer
	CmdCreateTexture                     // Derive a texture from a buffer
	CmdDestroyTexture                    // Destroy a texture

	// Pass commands
	CmdBind       // Bind a buffer as render destination
	CmdBeginPass  // Open a pass on a buffer
	CmdAddTexture // Draw a texture
	CmdAddRect    // Fill a rectangle
	CmdSubmit     // Submit a pass
)

var commandTypeNames = [...]string{
	CmdCreateBuffer:   "CreateBuffer",
	CmdDropBuffer:     "DropBuffer",
	CmdCreateTexture:  "CreateTexture",
	CmdDestroyTexture: "DestroyTexture",
	CmdBind:           "Bind",
	CmdBeginPass:      "BeginPass",
	CmdAddTexture:     "AddTexture",
	CmdAddRect:        "AddRect",
	CmdSubmit:         "Submit",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all recorded commands.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BufferRef identifies a buffer created by a Backend. IDs start at 1.
type BufferRef uint32

// TextureRef identifies a texture created by a Backend. IDs start at 1.
type TextureRef uint32

// CreateBufferCommand records a buffer allocation.
type CreateBufferCommand struct {
	Buffer        BufferRef
	Width, Height int
	Format        render.PixelFormat
}

// Type implements Command.
func (CreateBufferCommand) Type() CommandType { return CmdCreateBuffer }

// DropBufferCommand records a buffer being dropped.
type DropBufferCommand struct {
	Buffer BufferRef
}

// Type implements Command.
func (DropBufferCommand) Type() CommandType { return CmdDropBuffer }

// CreateTextureCommand records a texture derived from a buffer.
type CreateTextureCommand struct {
	Texture TextureRef
	Buffer  BufferRef
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

// DestroyTextureCommand records a texture being destroyed.
type DestroyTextureCommand struct {
	Texture TextureRef
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// BindCommand records a buffer being bound as render destination.
type BindCommand struct {
	Buffer BufferRef
}

// Type implements Command.
func (BindCommand) Type() CommandType { return CmdBind }

// BeginPassCommand records a pass being opened.
type BeginPassCommand struct {
	Buffer BufferRef
	Label  string
}

// Type implements Command.
func (BeginPassCommand) Type() CommandType { return CmdBeginPass }

// AddTextureCommand records a textured draw.
type AddTextureCommand struct {
	Buffer BufferRef
	// Texture is 0 for textures not created by the recording backend.
	Texture TextureRef
	Options render.TextureOptions
}

// Type implements Command.
func (AddTextureCommand) Type() CommandType { return CmdAddTexture }

// AddRectCommand records a rectangle fill.
type AddRectCommand struct {
	Buffer  BufferRef
	Options render.RectOptions
}

// Type implements Command.
func (AddRectCommand) Type() CommandType { return CmdAddRect }

// SubmitCommand records a pass being submitted.
type SubmitCommand struct {
	Buffer BufferRef
}

// Type implements Command.
func (SubmitCommand) Type() CommandType { return CmdSubmit }
