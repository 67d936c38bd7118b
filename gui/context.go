package gui

import (
	"slices"

	"github.com/oliverbestmann/shaderplay/glm"
)

// Context owns the gui state of one window. Call Run once per frame.
type Context struct {
	style  Style
	fonts  *Fonts
	input  InputState
	memory Memory

	layers [layerCount][]ClippedShape

	// areas registered during this and the previous frame, in paint order
	areas     []area
	prevAreas []area

	fontsUploaded bool
	texturesFree  []TextureID
}

type area struct {
	id    ID
	layer layerID
	rect  glm.Rectf
}

// FullOutput is the result of running one gui frame.
type FullOutput struct {
	Shapes        []ClippedShape
	TexturesDelta TexturesDelta
}

func NewContext() *Context {
	return &Context{
		style:  DefaultStyle(),
		fonts:  NewFonts(),
		memory: newMemory(),
	}
}

// Run processes the input, calls the ui function once and collects
// everything that was painted.
func (c *Context) Run(raw RawInput, run func(ctx *Context)) FullOutput {
	c.beginFrame(raw)
	run(c)
	return c.endFrame()
}

func (c *Context) Style() *Style {
	return &c.style
}

func (c *Context) Fonts() *Fonts {
	return c.fonts
}

func (c *Context) Input() *InputState {
	return &c.input
}

func (c *Context) Memory() *Memory {
	return &c.memory
}

func (c *Context) ScreenRect() glm.Rectf {
	return c.input.ScreenRect
}

// FreeFontTexture discards the uploaded font atlas. It is
// listed for freeing in the next output and uploaded again afterwards.
func (c *Context) FreeFontTexture() {
	if c.fontsUploaded {
		c.texturesFree = append(c.texturesFree, FontTexture)
		c.fontsUploaded = false
	}
}

// WantsPointerInput reports if the pointer is over a gui area or
// a widget is being interacted with.
func (c *Context) WantsPointerInput() bool {
	if c.memory.active != 0 {
		return true
	}

	ptr := &c.input.Pointer
	if !ptr.HasPos {
		return false
	}

	_, ok := c.topAreaAt(ptr.Pos)
	return ok
}

func (c *Context) layerPainter(layer layerID) Painter {
	return Painter{ctx: c, layer: layer, clip: c.input.ScreenRect}
}

func (c *Context) beginFrame(raw RawInput) {
	c.input.begin(raw)

	c.prevAreas, c.areas = c.areas, c.prevAreas[:0]

	for idx := range c.layers {
		c.layers[idx] = c.layers[idx][:0]
	}
}

func (c *Context) endFrame() FullOutput {
	if !c.input.Pointer.Down(PointerPrimary) {
		c.memory.active = 0
	}

	var output FullOutput

	for _, shapes := range c.layers {
		output.Shapes = append(output.Shapes, shapes...)
	}

	if !c.fontsUploaded {
		c.fontsUploaded = true

		output.TexturesDelta.Set = append(output.TexturesDelta.Set, TextureSet{
			ID:    FontTexture,
			Delta: c.fonts.imageDelta(),
		})
	}

	output.TexturesDelta.Free = c.texturesFree
	c.texturesFree = nil

	return output
}

func (c *Context) registerArea(id ID, layer layerID, rect glm.Rectf) {
	c.areas = append(c.areas, area{id: id, layer: layer, rect: rect})
}

// topAreaAt finds the area painted last at the given position during the previous frame.
func (c *Context) topAreaAt(pos glm.Vec2f) (ID, bool) {
	areas := slices.Clone(c.prevAreas)
	slices.SortStableFunc(areas, func(a, b area) int {
		return int(a.layer) - int(b.layer)
	})

	for idx := len(areas) - 1; idx >= 0; idx-- {
		if areas[idx].rect.ContainsPoint(pos) {
			return areas[idx].id, true
		}
	}

	return 0, false
}

// isTopArea reports if the given area receives pointer hover at pos.
// Areas unknown in the previous frame are allowed to receive hover.
func (c *Context) isTopArea(areaID ID, pos glm.Vec2f) bool {
	top, ok := c.topAreaAt(pos)
	return !ok || top == areaID
}

// Sense describes which interactions a widget listens for.
type Sense struct {
	Click bool
	Drag  bool
}

var (
	SenseClick = Sense{Click: true}
	SenseDrag  = Sense{Drag: true}
	SenseBoth  = Sense{Click: true, Drag: true}
)

// Response describes how the user interacted with a widget in this frame.
type Response struct {
	ID   ID
	Rect glm.Rectf

	Hovered bool
	Clicked bool
	Dragged bool
	Changed bool

	// pointer movement while dragged
	DragDelta glm.Vec2f
}

func (c *Context) interact(areaID ID, clip glm.Rectf, rect glm.Rectf, id ID, sense Sense) Response {
	resp := Response{ID: id, Rect: rect}

	ptr := &c.input.Pointer

	hoverable := ptr.HasPos &&
		rect.Intersect(clip).ContainsPoint(ptr.Pos) &&
		c.isTopArea(areaID, ptr.Pos)

	if c.memory.active == 0 || c.memory.active == id {
		resp.Hovered = hoverable
	}

	if hoverable && c.memory.active == 0 && ptr.Pressed(PointerPrimary) {
		c.memory.active = id
	}

	if c.memory.active != id {
		return resp
	}

	if sense.Drag {
		resp.Dragged = true
		resp.DragDelta = ptr.Delta
	}

	if ptr.Released(PointerPrimary) || !ptr.Down(PointerPrimary) {
		resp.Clicked = sense.Click && hoverable
		c.memory.active = 0
	}

	return resp
}
