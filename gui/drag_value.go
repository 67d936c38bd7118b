package gui

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/oliverbestmann/shaderplay/glm"
	"golang.org/x/exp/constraints"
)

// DragValue edits an integer by dragging horizontally, scrolling or
// using the arrow keys while hovered. With a range set, the value is
// clamped into the range on every frame, even if it was changed from
// outside the widget.
type DragValue[T constraints.Integer] struct {
	value    *T
	min, max T
	hasRange bool
	speed    float32
}

func NewDragValue[T constraints.Integer](value *T) *DragValue[T] {
	return &DragValue[T]{value: value, speed: 1}
}

// Range limits the value to the inclusive range [min, max].
func (d *DragValue[T]) Range(lo, hi T) *DragValue[T] {
	d.min, d.max = min(lo, hi), max(lo, hi)
	d.hasRange = true
	return d
}

// Speed is the value change per point of pointer movement.
func (d *DragValue[T]) Speed(speed float32) *DragValue[T] {
	d.speed = speed
	return d
}

func (d *DragValue[T]) Ui(ui *Ui) Response {
	id := ui.nextAutoID()
	style := &ui.ctx.style

	text := fmt.Sprint(*d.value)
	textSize := ui.ctx.fonts.MeasureText(text)

	size := glm.Vec2f{
		max(textSize[0]+2*style.ButtonPadding[0], 40),
		ui.ctx.InteractHeight(),
	}

	rect := ui.AllocateSize(size)
	resp := ui.Interact(rect, id, SenseBoth)

	before := *d.value

	var steps float64

	memory := &ui.ctx.memory

	if resp.Dragged {
		accumulated := float64(memory.dragRemainder[id] + resp.DragDelta[0]*d.speed)
		steps = math.Trunc(accumulated)
		memory.dragRemainder[id] = float32(accumulated - steps)
	} else {
		delete(memory.dragRemainder, id)
	}

	if resp.Hovered {
		input := &ui.ctx.input

		switch {
		case input.ScrollDelta[1] > 0:
			steps++
		case input.ScrollDelta[1] < 0:
			steps--
		}

		if input.KeyPressed(KeyArrowUp) || input.KeyPressed(KeyArrowRight) {
			steps++
		}

		if input.KeyPressed(KeyArrowDown) || input.KeyPressed(KeyArrowLeft) {
			steps--
		}
	}

	*d.value = d.clamp(float64(*d.value) + steps)

	resp.Changed = *d.value != before

	fill, stroke := ui.widgetVisuals(resp)
	ui.painter.Rect(rect, style.WidgetRounding, fill, stroke)

	text = fmt.Sprint(*d.value)
	textSize = ui.ctx.fonts.MeasureText(text)
	ui.painter.Text(rect.Center().Sub(textSize.MulScalar(0.5)), text, style.TextColor)

	return resp
}

// clamp converts the candidate value back into T, limited to the configured
// range or to the bounds of T.
func (d *DragValue[T]) clamp(value float64) T {
	lo, hi := integerBounds[T]()
	if d.hasRange {
		lo, hi = float64(d.min), float64(d.max)
	}

	return T(math.Max(lo, math.Min(hi, math.Round(value))))
}

func integerBounds[T constraints.Integer]() (float64, float64) {
	var zero T

	bits := unsafe.Sizeof(zero) * 8

	// unsigned types wrap around when decremented below zero
	signed := zero-1 < zero
	if !signed {
		return 0, math.Ldexp(1, int(bits)) - 1
	}

	limit := math.Ldexp(1, int(bits)-1)
	return -limit, limit - 1
}
