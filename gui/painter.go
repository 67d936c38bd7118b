package gui

import "github.com/oliverbestmann/shaderplay/glm"

type layerID int

const (
	layerBackground layerID = iota
	layerMiddle
	layerForeground

	layerCount
)

// ShapeIdx references a shape added to a layer during the current frame.
type ShapeIdx struct {
	layer layerID
	idx   int
}

// Painter adds shapes to one layer, clipped to a rectangle.
type Painter struct {
	ctx   *Context
	layer layerID
	clip  glm.Rectf
}

func (p Painter) ClipRect() glm.Rectf {
	return p.clip
}

func (p Painter) WithClip(clip glm.Rectf) Painter {
	p.clip = p.clip.Intersect(clip)
	return p
}

func (p Painter) Add(shape Shape) ShapeIdx {
	shapes := &p.ctx.layers[p.layer]
	*shapes = append(*shapes, ClippedShape{Clip: p.clip, Shape: shape})
	return ShapeIdx{layer: p.layer, idx: len(*shapes) - 1}
}

// Set replaces a previously added shape, keeping its clip rectangle.
func (p Painter) Set(idx ShapeIdx, shape Shape) {
	p.ctx.layers[idx.layer][idx.idx].Shape = shape
}

func (p Painter) Rect(rect glm.Rectf, rounding float32, fill Color32, stroke Stroke) ShapeIdx {
	return p.Add(RectShape{Rect: rect, Rounding: rounding, Fill: fill, Stroke: stroke})
}

func (p Painter) Text(pos glm.Vec2f, text string, color Color32) ShapeIdx {
	return p.Add(TextShape{Pos: pos, Text: text, Color: color})
}

func (p Painter) Line(from, to glm.Vec2f, stroke Stroke) ShapeIdx {
	return p.Add(LineShape{From: from, To: to, Stroke: stroke})
}
