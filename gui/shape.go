package gui

import "github.com/oliverbestmann/shaderplay/glm"

type Stroke struct {
	Width float32
	Color Color32
}

func (s Stroke) IsEmpty() bool {
	return s.Width <= 0 || s.Color.A == 0
}

// Shape is a paintable primitive in screen space, measured in points.
type Shape interface {
	isShape()
}

type RectShape struct {
	Rect     glm.Rectf
	Rounding float32
	Fill     Color32
	Stroke   Stroke
}

type TextShape struct {
	Pos   glm.Vec2f
	Text  string
	Color Color32
}

type LineShape struct {
	From, To glm.Vec2f
	Stroke   Stroke
}

// NoopShape reserves a slot that is replaced later in the frame,
// e.g. a window background sized after its content was laid out.
type NoopShape struct{}

func (RectShape) isShape() {}
func (TextShape) isShape() {}
func (LineShape) isShape() {}
func (NoopShape) isShape() {}

type ClippedShape struct {
	Clip  glm.Rectf
	Shape Shape
}
