package playground

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/shaderplay/app"
	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/hotreload"
	"github.com/oliverbestmann/shaderplay/pulse"
	"github.com/pkg/profile"
)

// openEventLoop is replaced in tests to observe whether a window
// would have been created.
var openEventLoop = glimpse.NewEventLoop

// Run opens the playground window and drives the event loop until the
// window is closed. An unreadable or invalid shader fails before any
// window is opened.
func Run(opts Options) error {
	opts = opts.withDefaults()

	if err := preflight(opts); err != nil {
		return err
	}

	pulse.SampleCount = opts.SampleCount

	if prof := startProfile(opts.Profile); prof != nil {
		defer prof.Stop()
	}

	batches := make(chan hotreload.Batch, 16)

	watcher, err := hotreload.Watch(opts.WatchDir, opts.Debounce, batches)
	if err != nil {
		return fmt.Errorf("watch shaders: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	loop, err := openEventLoop()
	if err != nil {
		return fmt.Errorf("create event loop: %w", err)
	}

	defer loop.Terminate()

	win, err := loop.CreateWindow(opts.WindowWidth, opts.WindowHeight, opts.WindowTitle)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	state := app.New()

	contexts := NewContexts(win.ID())
	input := NewInputAdapter(opts.UIScale)

	renderer, err := NewRenderer(pulse.NewInstance(), RendererOptions{
		ShaderPath: opts.ShaderPath,
		Viewports:  []ViewportDesc{{Window: win, Background: state.BackgroundColor}},
		Contexts:   contexts,
		Input:      input,
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	defer renderer.Release()

	d := &driver{
		renderer: renderer,
		app:      state,
		input:    input,
		batches:  batches,
		requestRedraws: func() {
			for _, w := range loop.Windows() {
				w.RequestRedraw()
			}
		},
	}

	slog.Info("Running playground",
		slog.String("shader", opts.ShaderPath),
		slog.Int("sampleCount", int(opts.SampleCount)),
	)

	return loop.Run(d.handle)
}

// preflight checks everything that does not need a window or a gpu.
func preflight(opts Options) error {
	source, err := os.ReadFile(opts.ShaderPath)
	if err != nil {
		return fmt.Errorf("read shader: %w", err)
	}

	if err := pulse.ValidateShader(string(source)); err != nil {
		return fmt.Errorf("validate shader %q: %w", opts.ShaderPath, err)
	}

	return nil
}

type frameRenderer interface {
	Render(a *app.App, id glimpse.WindowID) error
	Resize(id glimpse.WindowID, width, height uint32) error
	Reload() error
}

// driver dispatches platform events and polls the shader watcher.
type driver struct {
	renderer frameRenderer
	app      *app.App
	input    *InputAdapter
	batches  <-chan hotreload.Batch

	requestRedraws func()
}

func (d *driver) handle(event glimpse.Event) (glimpse.ControlFlow, error) {
	switch ev := event.(type) {
	case glimpse.CloseRequested:
		slog.Info("Window closed", slog.Uint64("window", uint64(ev.WindowID())))
		return glimpse.ControlFlowExit, nil

	case glimpse.MainEventsCleared:
		d.requestRedraws()

	case glimpse.RedrawRequested:
		if err := d.renderer.Render(d.app, ev.WindowID()); err != nil {
			return glimpse.ControlFlowExit, fmt.Errorf("render: %w", err)
		}

	case glimpse.Resized:
		if err := d.renderer.Resize(ev.WindowID(), ev.Width, ev.Height); err != nil {
			return glimpse.ControlFlowExit, fmt.Errorf("resize: %w", err)
		}

	case glimpse.WindowEvent:
		d.input.OnEvent(ev)
		d.app.HandleWindowEvent(ev.WindowID(), ev)
	}

	return d.pollWatcher()
}

func (d *driver) pollWatcher() (glimpse.ControlFlow, error) {
	select {
	case batch, ok := <-d.batches:
		if !ok {
			return glimpse.ControlFlowExit, fmt.Errorf("shader watcher: %w", hotreload.ErrClosed)
		}

		d.onBatch(batch)

	default:
	}

	return glimpse.ControlFlowContinue, nil
}

func (d *driver) onBatch(batch hotreload.Batch) {
	for _, err := range batch.Errors {
		slog.Warn("Shader watcher reported an error", slog.Any("err", err))
	}

	if len(batch.Events) == 0 {
		return
	}

	for _, ev := range batch.Events {
		slog.Debug("Shader file changed", slog.String("path", ev.Path), slog.String("op", ev.Op.String()))
	}

	slog.Info("Shader files changed, reloading", slog.Int("changes", len(batch.Events)))

	if err := d.renderer.Reload(); err != nil {
		slog.Error("Reload failed, keeping the previous pipeline", slog.Any("err", err))
	}
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case ProfileCPU:
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case ProfileMem:
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return nil
	}
}
