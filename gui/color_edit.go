package gui

import (
	"fmt"

	"github.com/oliverbestmann/shaderplay/glm"
)

var channelNames = [4]string{"R", "G", "B", "A"}

// ColorEditButtonSRGBA shows a color swatch. Clicking it opens a popup
// with one slider per channel. The popup closes on Escape, on a click
// outside of it, or when clicking the swatch again.
func (ui *Ui) ColorEditButtonSRGBA(color *Color32) Response {
	id := ui.nextAutoID()
	style := &ui.ctx.style

	height := ui.ctx.InteractHeight()
	rect := ui.AllocateSize(glm.Vec2f{2 * height, height})

	resp := ui.Interact(rect, id, SenseClick)

	_, stroke := ui.widgetVisuals(resp)

	// left half shows the color without alpha, right half with alpha
	left := glm.RectangleFromPoints(rect.Min, glm.Vec2f{rect.Center()[0], rect.Max[1]})
	right := glm.RectangleFromPoints(glm.Vec2f{rect.Center()[0], rect.Min[1]}, rect.Max)

	ui.painter.Rect(left, 0, color.Opaque(), Stroke{})
	ui.painter.Rect(right, 0, *color, Stroke{})
	ui.painter.Rect(rect, style.WidgetRounding, Color32Transparent, stroke)

	popupID := id.With("popup")

	memory := &ui.ctx.memory
	if resp.Clicked {
		memory.TogglePopup(popupID)
	}

	if memory.IsPopupOpen(popupID) {
		if showColorPopup(ui.ctx, popupID, rect, color) {
			resp.Changed = true
		}
	}

	return resp
}

func showColorPopup(ctx *Context, id ID, anchor glm.Rectf, color *Color32) bool {
	style := &ctx.style
	margin := style.WindowMargin

	pos := glm.Vec2f{anchor.Min[0], anchor.Max[1] + style.ItemSpacing[1]}

	painter := ctx.layerPainter(layerForeground)
	background := painter.Add(NoopShape{})

	contentMin := pos.Add(glm.Vec2f{margin, margin})
	ui := newUi(ctx, id, id, painter, glm.RectangleFromSize(contentMin, glm.Vec2f{200, 1000}))

	var changed bool

	NewGrid("channels").NumColumns(2).Show(ui, func(ui *Ui) {
		for idx, channel := range color.Channels() {
			ui.Label(channelNames[idx])

			if ui.Add(channelSlider{value: channel}).Changed {
				changed = true
			}

			ui.EndRow()
		}
	})

	swatch := ui.AllocateSize(glm.Vec2f{ui.MinRect().Width(), ctx.InteractHeight()})
	ui.painter.Rect(swatch, style.WidgetRounding, *color, style.WidgetStroke)

	frame := glm.Rectangle2[float32]{
		Min: pos,
		Max: ui.MinRect().Max.Add(glm.Vec2f{margin, margin}),
	}

	painter.Set(background, RectShape{
		Rect:     frame,
		Rounding: style.WindowRounding,
		Fill:     style.PopupFill,
		Stroke:   style.WindowStroke,
	})

	ctx.registerArea(id, layerForeground, frame)

	input := &ctx.input
	ptr := &input.Pointer

	clickedOutside := ptr.Pressed(PointerPrimary) && ptr.HasPos &&
		!frame.ContainsPoint(ptr.Pos) && !anchor.ContainsPoint(ptr.Pos)

	if clickedOutside || input.KeyPressed(KeyEscape) {
		ctx.memory.ClosePopup()
	}

	return changed
}

// channelSlider edits a single 8 bit color channel.
type channelSlider struct {
	value *uint8
}

func (s channelSlider) Ui(ui *Ui) Response {
	id := ui.nextAutoID()
	style := &ui.ctx.style

	rect := ui.AllocateSize(glm.Vec2f{128, ui.ctx.InteractHeight()})
	resp := ui.Interact(rect, id, SenseBoth)

	ptr := &ui.ctx.input.Pointer
	if (resp.Dragged || resp.Clicked) && ptr.HasPos {
		t := (ptr.Pos[0] - rect.Min[0]) / rect.Width()
		t = max(0, min(1, t))

		value := uint8(t*255 + 0.5)
		if value != *s.value {
			*s.value = value
			resp.Changed = true
		}
	}

	fill, stroke := ui.widgetVisuals(resp)
	ui.painter.Rect(rect, style.WidgetRounding, fill, stroke)

	filled := rect
	filled.Max[0] = rect.Min[0] + rect.Width()*float32(*s.value)/255
	ui.painter.Rect(filled, style.WidgetRounding, style.ActiveFill, Stroke{})

	text := fmt.Sprint(*s.value)
	textSize := ui.ctx.fonts.MeasureText(text)
	ui.painter.Text(rect.Center().Sub(textSize.MulScalar(0.5)), text, style.TextColor)

	return resp
}
