package instances

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/logging"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
)

// schedule appends an instruction for inst covering the damaged part of box.
// Opaque instances also remove box from the damage.
func schedule(inst render.Instance, box geom.Box, opaque bool, instructions *[]render.Instruction, target render.RenderTarget, damage *region.Region) {
	own := damage.IntersectBox(box)
	if own.Empty() {
		return
	}
	*instructions = append(*instructions, render.Instruction{
		Instance: inst,
		Target:   target,
		Damage:   own,
	})
	if opaque {
		*damage = damage.SubtractBox(box)
	}
}

// Rect is a rectangle filled with a flat color.
type Rect struct {
	Box geom.Box

	// Color is not premultiplied.
	Color gputypes.Color
}

var _ render.Instance = (*Rect)(nil)

// ScheduleInstructions implements render.Instance.
func (r *Rect) ScheduleInstructions(instructions *[]render.Instruction, target render.RenderTarget, damage *region.Region) {
	schedule(r, r.Box, r.Color.A >= 1, instructions, target, damage)
}

// Render implements render.Instance.
func (r *Rect) Render(instr *render.Instruction) {
	if err := instr.Pass.AddRectBox(r.Color.Premultiplied(), instr.Target, r.Box, instr.Damage); err != nil {
		logging.Logger().Warn("instances: rect skipped", "box", r.Box, "err", err)
	}
}

// Texture draws a texture stretched over a box.
type Texture struct {
	Source render.TextureSource
	Box    geom.Box

	// Alpha multiplies the texture, in [0, 1]. Zero is treated as 1.
	Alpha float32

	// Opaque marks textures without transparent pixels.
	Opaque bool
}

var _ render.Instance = (*Texture)(nil)

func (t *Texture) alpha() float32 {
	if t.Alpha <= 0 {
		return 1
	}
	return min(t.Alpha, 1)
}

// ScheduleInstructions implements render.Instance.
func (t *Texture) ScheduleInstructions(instructions *[]render.Instruction, target render.RenderTarget, damage *region.Region) {
	schedule(t, t.Box, t.Opaque && t.alpha() >= 1, instructions, target, damage)
}

// Render implements render.Instance.
func (t *Texture) Render(instr *render.Instruction) {
	if err := instr.Pass.AddTextureBox(t.Source, instr.Target, t.Box, instr.Damage, t.alpha()); err != nil {
		logging.Logger().Warn("instances: texture skipped", "box", t.Box, "err", err)
	}
}

// Translate places its children at Offset. Children use coordinates
// relative to Offset.
type Translate struct {
	Offset   geom.Point
	Children []render.Instance
}

var _ render.Instance = (*Translate)(nil)

// ScheduleInstructions implements render.Instance. Children schedule against
// a translated target and damage, so their instructions carry the child
// coordinate system.
func (g *Translate) ScheduleInstructions(instructions *[]render.Instruction, target render.RenderTarget, damage *region.Region) {
	back := g.Offset.Neg()
	local := damage.Translate(back)
	childTarget := target.Translated(back)
	for _, child := range g.Children {
		child.ScheduleInstructions(instructions, childTarget, &local)
	}
	*damage = local.Translate(g.Offset)
}

// Render is never called: children schedule their own instructions.
func (g *Translate) Render(*render.Instruction) {}
