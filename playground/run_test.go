package playground

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/shaderplay/app"
	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/hotreload"
	"github.com/oliverbestmann/shaderplay/pulse"
)

var errTest = errors.New("test error")

type fakeRenderer struct {
	rendered []glimpse.WindowID
	resized  [][2]uint32
	reloads  int

	renderErr error
	reloadErr error
}

func (f *fakeRenderer) Render(a *app.App, id glimpse.WindowID) error {
	f.rendered = append(f.rendered, id)
	return f.renderErr
}

func (f *fakeRenderer) Resize(id glimpse.WindowID, width, height uint32) error {
	f.resized = append(f.resized, [2]uint32{width, height})
	return nil
}

func (f *fakeRenderer) Reload() error {
	f.reloads++
	return f.reloadErr
}

func newTestDriver(renderer *fakeRenderer, batches chan hotreload.Batch) (*driver, *int) {
	var redraws int

	d := &driver{
		renderer:       renderer,
		app:            app.New(),
		input:          NewInputAdapter(1),
		batches:        batches,
		requestRedraws: func() { redraws++ },
	}

	return d, &redraws
}

func TestDriver_Dispatch(t *testing.T) {
	renderer := &fakeRenderer{}
	d, redraws := newTestDriver(renderer, make(chan hotreload.Batch, 1))

	target := glimpse.NewWindowTarget(1)

	events := []glimpse.Event{
		glimpse.Resized{WindowTarget: target, Width: 640, Height: 480},
		glimpse.CursorMoved{WindowTarget: target, X: 5, Y: 5},
		glimpse.MainEventsCleared{},
		glimpse.RedrawRequested{WindowTarget: target},
	}

	for _, ev := range events {
		flow, err := d.handle(ev)
		if err != nil || flow != glimpse.ControlFlowContinue {
			t.Fatalf("handle(%T) = %v, %v", ev, flow, err)
		}
	}

	if *redraws != 1 {
		t.Errorf("requested %d redraws, want 1", *redraws)
	}

	if len(renderer.rendered) != 1 || renderer.rendered[0] != 1 {
		t.Errorf("rendered = %v", renderer.rendered)
	}

	if len(renderer.resized) != 1 || renderer.resized[0] != [2]uint32{640, 480} {
		t.Errorf("resized = %v", renderer.resized)
	}

	if input := d.input.TakeInput(1, 10, 10); len(input.Events) != 1 {
		t.Errorf("cursor event was not forwarded: %v", input.Events)
	}
}

func TestDriver_CloseExits(t *testing.T) {
	d, _ := newTestDriver(&fakeRenderer{}, make(chan hotreload.Batch))

	flow, err := d.handle(glimpse.CloseRequested{WindowTarget: glimpse.NewWindowTarget(1)})
	if err != nil || flow != glimpse.ControlFlowExit {
		t.Errorf("handle(CloseRequested) = %v, %v", flow, err)
	}
}

func TestDriver_RenderErrorIsFatal(t *testing.T) {
	d, _ := newTestDriver(&fakeRenderer{renderErr: errTest}, make(chan hotreload.Batch))

	_, err := d.handle(glimpse.RedrawRequested{WindowTarget: glimpse.NewWindowTarget(1)})
	if !errors.Is(err, errTest) {
		t.Errorf("err = %v, want %v", err, errTest)
	}
}

func TestDriver_ReloadOnBatch(t *testing.T) {
	renderer := &fakeRenderer{}
	batches := make(chan hotreload.Batch, 1)
	d, _ := newTestDriver(renderer, batches)

	// errors alone do not trigger a reload
	batches <- hotreload.Batch{Errors: []error{errTest}}
	if _, err := d.handle(glimpse.MainEventsCleared{}); err != nil {
		t.Fatal(err)
	}

	batches <- hotreload.Batch{Events: []hotreload.Event{{Path: "shaders/triangle.wgsl", Op: hotreload.OpWrite}}}
	if _, err := d.handle(glimpse.MainEventsCleared{}); err != nil {
		t.Fatal(err)
	}

	if renderer.reloads != 1 {
		t.Errorf("reloads = %d, want 1", renderer.reloads)
	}
}

func TestDriver_ReloadFailureKeepsRunning(t *testing.T) {
	renderer := &fakeRenderer{reloadErr: errTest}
	batches := make(chan hotreload.Batch, 1)
	d, _ := newTestDriver(renderer, batches)

	batches <- hotreload.Batch{Events: []hotreload.Event{{Path: "a.wgsl", Op: hotreload.OpWrite}}}

	flow, err := d.handle(glimpse.MainEventsCleared{})
	if err != nil || flow != glimpse.ControlFlowContinue {
		t.Errorf("handle() = %v, %v", flow, err)
	}
}

func TestDriver_ClosedWatcherIsFatal(t *testing.T) {
	batches := make(chan hotreload.Batch)
	close(batches)

	d, _ := newTestDriver(&fakeRenderer{}, batches)

	flow, err := d.handle(glimpse.MainEventsCleared{})
	if flow != glimpse.ControlFlowExit || !errors.Is(err, hotreload.ErrClosed) {
		t.Errorf("handle() = %v, %v", flow, err)
	}
}

func writeShader(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "triangle.wgsl")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestPreflight(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"default shader", filepath.Join("..", "shaders", "triangle.wgsl"), nil},
		{"missing shader", filepath.Join(t.TempDir(), "missing.wgsl"), fs.ErrNotExist},
		{"no fragment stage", writeShader(t, "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0, 0.0, 0.0, 1.0); }"), pulse.ErrMissingEntryPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := preflight(Options{ShaderPath: tt.path}.withDefaults())

			if tt.wantErr == nil && err != nil {
				t.Fatalf("preflight() = %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("preflight() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_InvalidShaderOpensNoWindow(t *testing.T) {
	previous := openEventLoop
	t.Cleanup(func() { openEventLoop = previous })

	var opened bool
	openEventLoop = func() (*glimpse.EventLoop, error) {
		opened = true
		return nil, errTest
	}

	shaderPath := writeShader(t, "fn vs_main( -> {")

	err := Run(Options{ShaderPath: shaderPath})
	if err == nil {
		t.Fatal("Run() succeeded with an invalid shader")
	}

	if opened {
		t.Error("event loop was opened before the shader was validated")
	}
}

func TestRun_MissingShaderOpensNoWindow(t *testing.T) {
	previous := openEventLoop
	t.Cleanup(func() { openEventLoop = previous })

	var opened bool
	openEventLoop = func() (*glimpse.EventLoop, error) {
		opened = true
		return nil, errTest
	}

	err := Run(Options{ShaderPath: filepath.Join(t.TempDir(), "missing.wgsl")})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Run() = %v, want fs.ErrNotExist", err)
	}

	if opened {
		t.Error("event loop was opened for a missing shader")
	}
}
