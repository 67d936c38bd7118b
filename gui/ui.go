package gui

import "github.com/oliverbestmann/shaderplay/glm"

// Widget is anything that can be added to a Ui.
type Widget interface {
	Ui(ui *Ui) Response
}

// Ui lays out widgets top to bottom inside a region of an area.
type Ui struct {
	ctx     *Context
	areaID  ID
	id      ID
	painter Painter

	maxRect glm.Rectf
	cursor  glm.Vec2f

	// region actually used by widgets
	minRect glm.Rectf
	used    bool

	autoID int

	grid *gridLayout
}

func newUi(ctx *Context, areaID, id ID, painter Painter, maxRect glm.Rectf) *Ui {
	return &Ui{
		ctx:     ctx,
		areaID:  areaID,
		id:      id,
		painter: painter,
		maxRect: maxRect,
		cursor:  maxRect.Min,
		minRect: glm.RectangleFromSize(maxRect.Min, glm.Vec2f{}),
	}
}

func (ui *Ui) Painter() Painter {
	return ui.painter
}

func (ui *Ui) Style() *Style {
	return &ui.ctx.style
}

func (ui *Ui) ID() ID {
	return ui.id
}

// MinRect is the region used by the widgets added so far.
func (ui *Ui) MinRect() glm.Rectf {
	return ui.minRect
}

func (ui *Ui) Add(widget Widget) Response {
	return widget.Ui(ui)
}

func (ui *Ui) nextAutoID() ID {
	ui.autoID++
	return ui.id.WithIndex(ui.autoID)
}

// AllocateSize reserves space for a widget and returns its rectangle.
func (ui *Ui) AllocateSize(size glm.Vec2f) glm.Rectf {
	var rect glm.Rectf

	if ui.grid != nil {
		rect = ui.grid.allocate(ui, size)
	} else {
		rect = glm.RectangleFromSize(ui.cursor, size)
		ui.cursor[1] = rect.Max[1] + ui.ctx.style.ItemSpacing[1]
	}

	ui.extend(rect)

	return rect
}

func (ui *Ui) extend(rect glm.Rectf) {
	if !ui.used {
		ui.used = true
		ui.minRect = rect
		return
	}

	ui.minRect = ui.minRect.Union(rect)
}

func (ui *Ui) Interact(rect glm.Rectf, id ID, sense Sense) Response {
	return ui.ctx.interact(ui.areaID, ui.painter.ClipRect(), rect, id, sense)
}

// EndRow finishes the current row of the enclosing grid.
func (ui *Ui) EndRow() {
	if ui.grid != nil {
		ui.grid.endRow(ui)
	}
}

func (ui *Ui) Label(text string) Response {
	size := ui.ctx.fonts.MeasureText(text)
	rect := ui.AllocateSize(size)

	ui.painter.Text(rect.Min, text, ui.ctx.style.TextColor)

	return Response{ID: ui.nextAutoID(), Rect: rect}
}

// widgetVisuals picks fill and stroke depending on the interaction state.
func (ui *Ui) widgetVisuals(resp Response) (Color32, Stroke) {
	style := &ui.ctx.style

	switch {
	case ui.ctx.memory.active == resp.ID:
		return style.ActiveFill, style.HoveredStroke
	case resp.Hovered:
		return style.HoveredFill, style.HoveredStroke
	default:
		return style.WidgetFill, style.WidgetStroke
	}
}
