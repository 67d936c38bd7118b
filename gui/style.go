package gui

import "github.com/oliverbestmann/shaderplay/glm"

type Style struct {
	// spacing between widgets of a vertical layout
	ItemSpacing glm.Vec2f

	// padding between the frame of a widget and its text
	ButtonPadding glm.Vec2f

	WindowMargin   float32
	WindowRounding float32
	WindowFill     Color32
	WindowStroke   Stroke

	PopupFill Color32

	TextColor Color32

	WidgetRounding float32
	WidgetFill     Color32
	HoveredFill    Color32
	ActiveFill     Color32
	WidgetStroke   Stroke
	HoveredStroke  Stroke

	StripeFill Color32
}

func DefaultStyle() Style {
	return Style{
		ItemSpacing:    glm.Vec2f{8, 4},
		ButtonPadding:  glm.Vec2f{4, 2},
		WindowMargin:   6,
		WindowRounding: 6,
		WindowFill:     RGBA(27, 27, 27, 240),
		WindowStroke:   Stroke{Width: 1, Color: Gray(60)},
		PopupFill:      RGBA(32, 32, 32, 250),
		TextColor:      Gray(200),
		WidgetRounding: 2,
		WidgetFill:     Gray(60),
		HoveredFill:    Gray(70),
		ActiveFill:     Gray(90),
		WidgetStroke:   Stroke{Width: 1, Color: Gray(80)},
		HoveredStroke:  Stroke{Width: 1, Color: Gray(150)},
		StripeFill:     RGBA(255, 255, 255, 10),
	}
}

// InteractHeight is the height of a single line interactive widget.
func (c *Context) InteractHeight() float32 {
	return c.fonts.LineHeight() + 2*c.style.ButtonPadding[1]
}
