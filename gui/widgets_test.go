package gui

import (
	"testing"

	"github.com/oliverbestmann/shaderplay/glm"
)

func TestDragValue_ClampsIntoRange(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{name: "above", value: 200, want: 120},
		{name: "below", value: -5, want: 0},
		{name: "inside", value: 42, want: 42},
		{name: "upper bound", value: 120, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()

			value := tt.value

			var resp Response
			runFrame(ctx, nil, showBare(func(ui *Ui) {
				resp = ui.Add(NewDragValue(&value).Range(0, 120))
			}))

			if value != tt.want {
				t.Errorf("got %d, want %d", value, tt.want)
			}

			if resp.Changed != (tt.value != tt.want) {
				t.Errorf("unexpected changed flag %v", resp.Changed)
			}
		})
	}
}

func TestDragValue_Drag(t *testing.T) {
	ctx := NewContext()

	value := uint8(5)

	var resp Response
	build := showBare(func(ui *Ui) {
		resp = ui.Add(NewDragValue(&value).Range(0, 120))
	})

	runFrame(ctx, nil, build)

	start := resp.Rect.Center()
	runFrame(ctx, []Event{press(start)}, build)

	runFrame(ctx, []Event{PointerMovedEvent{Pos: start.Add(glm.Vec2f{10, 0})}}, build)
	if value != 15 {
		t.Fatalf("expected value 15 after dragging 10 points, got %d", value)
	}

	if !resp.Changed || !resp.Dragged {
		t.Errorf("expected changed drag response, got %+v", resp)
	}

	runFrame(ctx, []Event{PointerMovedEvent{Pos: start.Add(glm.Vec2f{500, 0})}}, build)
	if value != 120 {
		t.Errorf("expected value clamped to 120, got %d", value)
	}

	runFrame(ctx, []Event{PointerMovedEvent{Pos: start.Add(glm.Vec2f{-500, 0})}}, build)
	if value != 0 {
		t.Errorf("expected value clamped to 0, got %d", value)
	}
}

func TestDragValue_FractionalSpeed(t *testing.T) {
	ctx := NewContext()

	value := 0

	var resp Response
	build := showBare(func(ui *Ui) {
		resp = ui.Add(NewDragValue(&value).Range(0, 100).Speed(0.5))
	})

	runFrame(ctx, nil, build)

	pos := resp.Rect.Center()
	runFrame(ctx, []Event{press(pos)}, build)

	for range 4 {
		pos = pos.Add(glm.Vec2f{1, 0})
		runFrame(ctx, []Event{PointerMovedEvent{Pos: pos}}, build)
	}

	if value != 2 {
		t.Errorf("expected value 2 after 4 points at half speed, got %d", value)
	}
}

func TestDragValue_KeyboardWhileHovered(t *testing.T) {
	ctx := NewContext()

	value := 120

	var resp Response
	build := showBare(func(ui *Ui) {
		resp = ui.Add(NewDragValue(&value).Range(0, 120))
	})

	runFrame(ctx, nil, build)

	hover := PointerMovedEvent{Pos: resp.Rect.Center()}

	runFrame(ctx, []Event{hover, KeyEvent{Key: KeyArrowUp, Pressed: true}}, build)
	if value != 120 {
		t.Errorf("expected value to stay at upper bound, got %d", value)
	}

	runFrame(ctx, []Event{KeyEvent{Key: KeyArrowUp, Pressed: false}, KeyEvent{Key: KeyArrowDown, Pressed: true}}, build)
	if value != 119 {
		t.Errorf("expected value 119, got %d", value)
	}
}

func TestIntegerBounds(t *testing.T) {
	if lo, hi := integerBounds[uint8](); lo != 0 || hi != 255 {
		t.Errorf("uint8 bounds: %v %v", lo, hi)
	}

	if lo, hi := integerBounds[int16](); lo != -32768 || hi != 32767 {
		t.Errorf("int16 bounds: %v %v", lo, hi)
	}

	value := uint8(250)
	d := NewDragValue(&value)
	if got := d.clamp(300); got != 255 {
		t.Errorf("expected unranged value to saturate, got %d", got)
	}
}

func TestChannelSlider(t *testing.T) {
	ctx := NewContext()

	value := uint8(100)

	var resp Response
	build := showBare(func(ui *Ui) {
		resp = ui.Add(channelSlider{value: &value})
	})

	runFrame(ctx, nil, build)

	right := glm.Vec2f{resp.Rect.Max[0] - 0.01, resp.Rect.Center()[1]}
	runFrame(ctx, []Event{press(right), release(right)}, build)

	if value != 255 {
		t.Errorf("expected full value at right edge, got %d", value)
	}

	if !resp.Changed {
		t.Errorf("expected slider to report a change")
	}

	left := glm.Vec2f{resp.Rect.Min[0], resp.Rect.Center()[1]}
	runFrame(ctx, []Event{press(left), release(left)}, build)

	if value != 0 {
		t.Errorf("expected zero at left edge, got %d", value)
	}
}

func TestColorEditButton_PopupLifecycle(t *testing.T) {
	ctx := NewContext()

	color := Color32Blue

	var resp Response
	build := showBare(func(ui *Ui) {
		resp = ui.ColorEditButtonSRGBA(&color)
	})

	runFrame(ctx, nil, build)

	popupID := resp.ID.With("popup")
	center := resp.Rect.Center()

	runFrame(ctx, []Event{press(center), release(center)}, build)
	if !ctx.Memory().IsPopupOpen(popupID) {
		t.Fatalf("expected popup to open after clicking the swatch")
	}

	runFrame(ctx, []Event{KeyEvent{Key: KeyEscape, Pressed: true}}, build)
	if ctx.Memory().IsPopupOpen(popupID) {
		t.Fatalf("expected escape to close the popup")
	}

	runFrame(ctx, []Event{KeyEvent{Key: KeyEscape, Pressed: false}, press(center), release(center)}, build)
	if !ctx.Memory().IsPopupOpen(popupID) {
		t.Fatalf("expected popup to open again")
	}

	far := glm.Vec2f{790, 590}
	runFrame(ctx, []Event{press(far), release(far)}, build)
	if ctx.Memory().IsPopupOpen(popupID) {
		t.Errorf("expected click outside to close the popup")
	}

	if color != Color32Blue {
		t.Errorf("expected color to be unchanged, got %+v", color)
	}
}

func TestGrid_StripesOddRows(t *testing.T) {
	ctx := NewContext()

	build := showBare(func(ui *Ui) {
		NewGrid("grid").NumColumns(2).Spacing(40, 4).Striped(true).Show(ui, func(ui *Ui) {
			for range 3 {
				ui.Label("name")
				ui.Label("value")
				ui.EndRow()
			}
		})
	})

	runFrame(ctx, nil, build)
	out := runFrame(ctx, nil, build)

	var stripes int
	for _, shape := range out.Shapes {
		if rect, ok := shape.Shape.(RectShape); ok && rect.Fill == ctx.Style().StripeFill {
			stripes++
		}
	}

	if stripes != 1 {
		t.Errorf("expected one stripe for three rows, got %d", stripes)
	}
}

func TestGrid_ColumnsLineUp(t *testing.T) {
	ctx := NewContext()

	var short, long Response

	build := showBare(func(ui *Ui) {
		NewGrid("grid").NumColumns(2).Spacing(40, 4).Show(ui, func(ui *Ui) {
			ui.Label("a")
			short = ui.Label("x")
			ui.EndRow()

			ui.Label("a much longer label")
			long = ui.Label("y")
			ui.EndRow()
		})
	})

	runFrame(ctx, nil, build)
	runFrame(ctx, nil, build)

	if short.Rect.Min[0] != long.Rect.Min[0] {
		t.Errorf("expected second column to line up: %v != %v", short.Rect.Min[0], long.Rect.Min[0])
	}

	want := ctx.Fonts().MeasureText("a much longer label")[0] + 40
	if short.Rect.Min[0] != want {
		t.Errorf("expected second column at %v, got %v", want, short.Rect.Min[0])
	}
}

func TestWindow_AnchoredAndSized(t *testing.T) {
	ctx := NewContext()

	var resp Response
	build := func(ctx *Context) {
		resp = NewWindow("stuff").
			Anchor(AlignLeftTop, glm.Vec2f{}).
			DefaultWidth(280).
			Resizable(true).
			Show(ctx, func(ui *Ui) {
				ui.Label("content")
			})
	}

	runFrame(ctx, nil, build)

	if resp.Rect.Min != (glm.Vec2f{}) {
		t.Errorf("expected window at the top left corner, got %v", resp.Rect.Min)
	}

	if resp.Rect.Width() != 280 {
		t.Errorf("expected default width 280, got %v", resp.Rect.Width())
	}

	// drag the resize grip
	grip := resp.Rect.Max.Sub(glm.Vec2f{4, 4})
	runFrame(ctx, []Event{press(grip)}, build)
	runFrame(ctx, []Event{PointerMovedEvent{Pos: grip.Add(glm.Vec2f{20, 30})}}, build)
	runFrame(ctx, []Event{release(grip.Add(glm.Vec2f{20, 30}))}, build)

	if resp.Rect.Width() != 300 {
		t.Errorf("expected width 300 after resizing, got %v", resp.Rect.Width())
	}
}
