package app

import (
	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/shaderplay/gui"
	"github.com/oliverbestmann/shaderplay/pulse"
)

const (
	BlurKernelMin = 0
	BlurKernelMax = 120
)

// App holds the values edited through the gui. It is owned by the event
// loop and passed by pointer to the renderer.
type App struct {
	TriangleColor   pulse.Color
	BackgroundColor pulse.Color
	BlurKernel      uint8
}

func New() *App {
	return &App{
		TriangleColor:   pulse.ColorBlue,
		BackgroundColor: pulse.ColorWhite,
	}
}

// HandleWindowEvent is called for every window event not consumed by the
// event loop itself. It currently does nothing.
func (a *App) HandleWindowEvent(id glimpse.WindowID, event glimpse.WindowEvent) {
}

// UI declares the control panel. Edits are written back immediately.
func (a *App) UI(ctx *gui.Context) {
	gui.NewWindow("stuff").
		Anchor(gui.AlignLeftTop, glm.Vec2f{0, 0}).
		Resizable(true).
		DefaultWidth(280).
		Show(ctx, func(ui *gui.Ui) {
			gui.NewGrid("my_grid").
				NumColumns(2).
				Spacing(40, 4).
				Striped(true).
				Show(ui, func(ui *gui.Ui) {
					ui.Label("triangle color")
					editColor(ui, &a.TriangleColor)
					ui.EndRow()

					ui.Label("bg color")
					editColor(ui, &a.BackgroundColor)
					ui.EndRow()

					ui.Label("Blur Kernel Size")
					ui.Add(gui.NewDragValue(&a.BlurKernel).Range(BlurKernelMin, BlurKernelMax))
					ui.EndRow()
				})
		})
}

func editColor(ui *gui.Ui, color *pulse.Color) {
	edited := Color32Of(*color)

	if ui.ColorEditButtonSRGBA(&edited).Changed {
		*color = ColorOf(edited)
	}
}

func Color32Of(c pulse.Color) gui.Color32 {
	r, g, b, a := c.RGBA8()
	return gui.RGBA(r, g, b, a)
}

func ColorOf(c gui.Color32) pulse.Color {
	return pulse.ColorOfRGBA8(c.R, c.G, c.B, c.A)
}
