package gui

import (
	"testing"

	"github.com/oliverbestmann/shaderplay/glm"
)

var testScreen = glm.RectangleFromXYWH[float32](0, 0, 800, 600)

func runFrame(ctx *Context, events []Event, build func(ctx *Context)) FullOutput {
	return ctx.Run(RawInput{ScreenRect: testScreen, Focused: true, Events: events}, build)
}

// showBare adds widgets to a Ui covering the whole screen.
func showBare(add func(ui *Ui)) func(ctx *Context) {
	return func(ctx *Context) {
		ui := newUi(ctx, 1, IDFrom("bare"), ctx.layerPainter(layerMiddle), ctx.ScreenRect())
		add(ui)
	}
}

func press(pos glm.Vec2f) Event {
	return PointerButtonEvent{Pos: pos, Button: PointerPrimary, Pressed: true}
}

func release(pos glm.Vec2f) Event {
	return PointerButtonEvent{Pos: pos, Button: PointerPrimary, Pressed: false}
}

func TestRun_UploadsFontTextureOnce(t *testing.T) {
	ctx := NewContext()

	first := runFrame(ctx, nil, func(*Context) {})
	if len(first.TexturesDelta.Set) != 1 || first.TexturesDelta.Set[0].ID != FontTexture {
		t.Fatalf("expected font texture upload in first frame, got %+v", first.TexturesDelta.Set)
	}

	delta := first.TexturesDelta.Set[0].Delta
	if int(delta.Width*delta.Height*4) != len(delta.Pixels) {
		t.Errorf("pixel buffer of %d bytes does not match %dx%d", len(delta.Pixels), delta.Width, delta.Height)
	}

	second := runFrame(ctx, nil, func(*Context) {})
	if !second.TexturesDelta.IsEmpty() {
		t.Errorf("expected no texture changes in second frame, got %+v", second.TexturesDelta)
	}

	ctx.FreeFontTexture()

	third := runFrame(ctx, nil, func(*Context) {})
	if len(third.TexturesDelta.Free) != 1 || third.TexturesDelta.Free[0] != FontTexture {
		t.Errorf("expected font texture to be freed, got %+v", third.TexturesDelta.Free)
	}

	if len(third.TexturesDelta.Set) != 1 {
		t.Errorf("expected font texture to be uploaded again")
	}
}

func TestInteract_ClickWithinOneFrame(t *testing.T) {
	ctx := NewContext()

	rect := glm.RectangleFromXYWH[float32](10, 10, 50, 20)
	id := IDFrom("button")

	interact := func(events ...Event) Response {
		var resp Response
		runFrame(ctx, events, func(ctx *Context) {
			resp = ctx.interact(1, ctx.ScreenRect(), rect, id, SenseClick)
		})
		return resp
	}

	pos := rect.Center()

	resp := interact(press(pos), release(pos))
	if !resp.Clicked {
		t.Errorf("expected click when pressed and released in the same frame")
	}

	if ctx.Memory().ActiveID() != 0 {
		t.Errorf("expected no active widget after release")
	}

	outside := glm.Vec2f{300, 300}
	resp = interact(press(outside), release(outside))
	if resp.Clicked || resp.Hovered {
		t.Errorf("expected no interaction outside of the widget: %+v", resp)
	}
}

func TestInteract_ReleaseOutsideIsNoClick(t *testing.T) {
	ctx := NewContext()

	rect := glm.RectangleFromXYWH[float32](10, 10, 50, 20)
	id := IDFrom("button")

	interact := func(events ...Event) Response {
		var resp Response
		runFrame(ctx, events, func(ctx *Context) {
			resp = ctx.interact(1, ctx.ScreenRect(), rect, id, SenseClick)
		})
		return resp
	}

	interact(press(rect.Center()))

	if ctx.Memory().ActiveID() != id {
		t.Fatalf("expected widget to become active on press")
	}

	resp := interact(release(glm.Vec2f{400, 400}))
	if resp.Clicked {
		t.Errorf("expected no click when released outside")
	}
}

func TestInteract_TopAreaReceivesHover(t *testing.T) {
	ctx := NewContext()

	rect := glm.RectangleFromXYWH[float32](0, 0, 100, 100)

	var lower, upper Response

	build := func(ctx *Context) {
		ctx.registerArea(1, layerMiddle, rect)
		ctx.registerArea(2, layerForeground, rect)

		lower = ctx.interact(1, ctx.ScreenRect(), rect, IDFrom("lower"), SenseClick)
		upper = ctx.interact(2, ctx.ScreenRect(), rect, IDFrom("upper"), SenseClick)
	}

	runFrame(ctx, nil, build)
	runFrame(ctx, []Event{PointerMovedEvent{Pos: glm.Vec2f{50, 50}}}, build)

	if lower.Hovered {
		t.Errorf("expected covered area not to be hovered")
	}

	if !upper.Hovered {
		t.Errorf("expected foreground area to be hovered")
	}

	if !ctx.WantsPointerInput() {
		t.Errorf("expected gui to want pointer input over an area")
	}
}

func TestInputState_KeyPressedOnlyOnTransition(t *testing.T) {
	var state InputState

	state.begin(RawInput{Events: []Event{KeyEvent{Key: KeyEscape, Pressed: true}}})
	if !state.KeyPressed(KeyEscape) || !state.KeyDown(KeyEscape) {
		t.Fatalf("expected escape to be pressed and down")
	}

	state.begin(RawInput{Events: []Event{KeyEvent{Key: KeyEscape, Pressed: true}}})
	if state.KeyPressed(KeyEscape) {
		t.Errorf("expected key repeat not to count as a new press")
	}

	state.begin(RawInput{Events: []Event{KeyEvent{Key: KeyEscape, Pressed: false}}})
	if state.KeyDown(KeyEscape) {
		t.Errorf("expected escape to be released")
	}
}

func TestInputState_PointerDelta(t *testing.T) {
	var state InputState

	state.begin(RawInput{Events: []Event{PointerMovedEvent{Pos: glm.Vec2f{10, 10}}}})
	if state.Pointer.Delta != (glm.Vec2f{}) {
		t.Errorf("expected no delta for first known position, got %v", state.Pointer.Delta)
	}

	state.begin(RawInput{Events: []Event{PointerMovedEvent{Pos: glm.Vec2f{15, 7}}}})
	if state.Pointer.Delta != (glm.Vec2f{5, -3}) {
		t.Errorf("unexpected delta %v", state.Pointer.Delta)
	}

	state.begin(RawInput{Events: []Event{PointerGoneEvent{}}})
	if state.Pointer.HasPos {
		t.Errorf("expected pointer to be gone")
	}
}

func TestID_Stable(t *testing.T) {
	if IDFrom("stuff") != IDFrom("stuff") {
		t.Errorf("expected equal ids for equal sources")
	}

	if IDFrom("stuff").WithIndex(1) == IDFrom("stuff").WithIndex(2) {
		t.Errorf("expected different ids for different indices")
	}

	if IDFrom("a").With("b") == IDFrom("b").With("a") {
		t.Errorf("expected ids to depend on order")
	}
}
