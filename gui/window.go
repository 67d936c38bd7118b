package gui

import (
	"math"

	"github.com/oliverbestmann/shaderplay/glm"
)

// Align2 anchors a window to a corner of the screen.
type Align2 int

const (
	AlignLeftTop Align2 = iota
	AlignRightTop
	AlignLeftBottom
	AlignRightBottom
	AlignCenter
)

const resizeGripSize = 12

type windowState struct {
	size        glm.Vec2f
	userResized bool
}

// Window is a titled panel floating above the background layer.
type Window struct {
	title        string
	id           ID
	anchor       Align2
	anchorOffset glm.Vec2f
	resizable    bool
	defaultWidth float32
	minSize      glm.Vec2f
}

func NewWindow(title string) *Window {
	return &Window{
		title:        title,
		id:           IDFrom(title),
		defaultWidth: 240,
		minSize:      glm.Vec2f{96, 32},
	}
}

func (w *Window) Anchor(align Align2, offset glm.Vec2f) *Window {
	w.anchor = align
	w.anchorOffset = offset
	return w
}

func (w *Window) Resizable(resizable bool) *Window {
	w.resizable = resizable
	return w
}

func (w *Window) DefaultWidth(width float32) *Window {
	w.defaultWidth = width
	return w
}

func (w *Window) ID() ID {
	return w.id
}

// Show lays out the windows content and paints the window.
func (w *Window) Show(ctx *Context, add func(ui *Ui)) Response {
	style := &ctx.style
	screen := ctx.ScreenRect()
	state := ctx.memory.window(w.id, w.defaultWidth)

	margin := style.WindowMargin
	titleHeight := ctx.fonts.LineHeight() + 2*style.ButtonPadding[1]

	pos := w.position(screen, state.size)

	painter := ctx.layerPainter(layerMiddle)
	background := painter.Add(NoopShape{})

	painter.Text(pos.Add(glm.Vec2f{margin, style.ButtonPadding[1]}), w.title, style.TextColor)

	contentMin := pos.Add(glm.Vec2f{margin, titleHeight + margin})

	contentMax := glm.Vec2f{pos[0] + state.size[0] - margin, float32(math.Inf(1))}
	if state.userResized {
		contentMax[1] = pos[1] + state.size[1] - margin
	}

	contentRect := glm.Rectangle2[float32]{Min: contentMin, Max: contentMax}

	contentClip := screen
	if state.userResized {
		contentClip = contentRect
	}

	ui := newUi(ctx, w.id, w.id.With("content"), painter.WithClip(contentClip), contentRect)
	add(ui)

	content := ui.MinRect().Size()

	size := state.size
	if !state.userResized {
		size[0] = max(w.defaultWidth, content[0]+2*margin)
		size[1] = titleHeight + content[1] + 2*margin
	}

	size[0] = max(size[0], w.minSize[0])
	size[1] = max(size[1], w.minSize[1])

	frame := glm.RectangleFromSize(pos, size)

	painter.Line(
		glm.Vec2f{frame.Min[0], frame.Min[1] + titleHeight},
		glm.Vec2f{frame.Max[0], frame.Min[1] + titleHeight},
		style.WindowStroke,
	)

	if w.resizable {
		size = w.resizeGrip(ctx, painter, frame, state)
	}

	painter.Set(background, RectShape{
		Rect:     frame,
		Rounding: style.WindowRounding,
		Fill:     style.WindowFill,
		Stroke:   style.WindowStroke,
	})

	ctx.registerArea(w.id, layerMiddle, frame)

	state.size = size

	resp := ctx.interact(w.id, screen, frame, w.id, Sense{})
	resp.Rect = frame

	return resp
}

func (w *Window) resizeGrip(ctx *Context, painter Painter, frame glm.Rectf, state *windowState) glm.Vec2f {
	size := frame.Size()

	grip := glm.RectangleFromPoints(frame.Max.Sub(glm.Vec2f{resizeGripSize, resizeGripSize}), frame.Max)

	resp := ctx.interact(w.id, ctx.ScreenRect(), grip, w.id.With("resize"), SenseDrag)
	if resp.Dragged && resp.DragDelta != (glm.Vec2f{}) {
		state.userResized = true

		size = size.Add(resp.DragDelta)
		size[0] = max(size[0], w.minSize[0])
		size[1] = max(size[1], w.minSize[1])
	}

	stroke := ctx.style.WidgetStroke
	if resp.Hovered || resp.Dragged {
		stroke = ctx.style.HoveredStroke
	}

	// two diagonal lines in the corner
	for _, offset := range []float32{4, 8} {
		painter.Line(
			glm.Vec2f{frame.Max[0] - offset, frame.Max[1] - 2},
			glm.Vec2f{frame.Max[0] - 2, frame.Max[1] - offset},
			stroke,
		)
	}

	return size
}

func (w *Window) position(screen glm.Rectf, size glm.Vec2f) glm.Vec2f {
	offset := w.anchorOffset

	switch w.anchor {
	case AlignRightTop:
		return glm.Vec2f{screen.Max[0] - size[0] + offset[0], screen.Min[1] + offset[1]}
	case AlignLeftBottom:
		return glm.Vec2f{screen.Min[0] + offset[0], screen.Max[1] - size[1] + offset[1]}
	case AlignRightBottom:
		return screen.Max.Sub(size).Add(offset)
	case AlignCenter:
		return screen.Center().Sub(size.MulScalar(0.5)).Add(offset)
	default:
		return screen.Min.Add(offset)
	}
}
