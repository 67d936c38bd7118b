package playground

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/shaderplay/app"
	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/pulse"
	"github.com/oliverbestmann/shaderplay/pulse/commands"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// ViewportDesc describes a window to render into.
type ViewportDesc struct {
	Window     *glimpse.Window
	Background pulse.Color
}

type RendererOptions struct {
	ShaderPath string
	Viewports  []ViewportDesc
	Contexts   *Contexts
	Input      *InputAdapter
}

// Renderer owns the gpu state and draws the triangle and the gui
// into every window.
type Renderer struct {
	ctx        *pulse.Context
	shaderPath string

	windows   map[glimpse.WindowID]*glimpse.Window
	viewports map[glimpse.WindowID]*pulse.Viewport

	// window ids in creation order, the first viewport decides the pipeline format
	order []glimpse.WindowID

	bundle *pulse.TriangleBundle

	bufColor   *wgpu.Buffer
	guiCommand *commands.GuiCommand

	contexts *Contexts
	input    *InputAdapter

	stats FrameTimes
}

// NewRenderer creates a surface per window and initializes the gpu. The
// renderer takes ownership of the instance.
func NewRenderer(instance *wgpu.Instance, opts RendererOptions) (r *Renderer, err error) {
	if len(opts.Viewports) == 0 {
		return nil, pulse.ErrNoViewport
	}

	r = &Renderer{
		shaderPath: opts.ShaderPath,
		windows:    map[glimpse.WindowID]*glimpse.Window{},
		viewports:  map[glimpse.WindowID]*pulse.Viewport{},
		contexts:   opts.Contexts,
		input:      opts.Input,
	}

	defer func() {
		if err != nil {
			r.Release()
			r = nil
		}
	}()

	for _, desc := range opts.Viewports {
		id := desc.Window.ID()

		surface := instance.CreateSurface(desc.Window.SurfaceDescriptor())

		r.windows[id] = desc.Window
		r.viewports[id] = pulse.NewViewport(fmt.Sprintf("window-%d", id), surface, desc.Background)
		r.order = append(r.order, id)
	}

	r.ctx, err = pulse.New(instance, r.viewports[r.order[0]].Surface())
	if err != nil {
		return r, fmt.Errorf("initialize wgpu: %w", err)
	}

	for _, id := range r.order {
		width, height := r.windows[id].InnerSize()

		if err := r.viewports[id].Finalize(r.ctx, width, height); err != nil {
			return r, fmt.Errorf("finalize viewport of window %d: %w", id, err)
		}
	}

	r.bundle, err = pulse.BuildTriangleBundle(r.ctx, r.shaderPath, r.viewports[r.order[0]].Format())
	if err != nil {
		return r, fmt.Errorf("build pipeline: %w", err)
	}

	r.bufColor, err = r.ctx.TryCreateBuffer(&wgpu.BufferDescriptor{
		Label: "Triangle.Color",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  pulse.ColorUniformSize,
	})
	if err != nil {
		return r, fmt.Errorf("create color buffer: %w", err)
	}

	r.guiCommand, err = commands.NewGuiCommand(r.ctx)
	if err != nil {
		return r, fmt.Errorf("create gui command: %w", err)
	}

	return r, nil
}

// Reload rebuilds the pipeline from the shader file. The current pipeline
// stays in place if the rebuild fails.
func (r *Renderer) Reload() error {
	if len(r.order) == 0 {
		return pulse.ErrNoViewport
	}

	format := r.viewports[r.order[0]].Format()

	bundle, err := pulse.BuildTriangleBundle(r.ctx, r.shaderPath, format)
	if err != nil {
		return fmt.Errorf("reload %q: %w", r.shaderPath, err)
	}

	previous := r.bundle
	r.bundle = bundle

	previous.Release()

	slog.Info("Reloaded shader", slog.String("path", r.shaderPath))

	return nil
}

func (r *Renderer) Resize(id glimpse.WindowID, width, height uint32) error {
	viewport, ok := r.viewports[id]
	if !ok {
		return fmt.Errorf("resize window %d: %w", id, pulse.ErrNoViewport)
	}

	slog.Debug("Resize surface",
		slog.Uint64("window", uint64(id)),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return viewport.Resize(r.ctx, width, height)
}

// Render draws one frame into the window and presents it.
func (r *Renderer) Render(a *app.App, id glimpse.WindowID) error {
	viewport, ok := r.viewports[id]
	if !ok {
		return fmt.Errorf("render window %d: %w", id, pulse.ErrNoViewport)
	}

	width, height := r.windows[id].InnerSize()
	if width == 0 || height == 0 {
		return nil
	}

	surface, err := viewport.AcquireFrame()
	Handle(err, "acquire frame of window %d", id)

	defer surface.Release()

	surfaceView, err := surface.TryCreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	defer surfaceView.Release()

	target := viewport.RenderTarget(surfaceView)

	viewport.SetBackground(a.BackgroundColor)

	if err := r.renderBackground(a, viewport.ClearAttachment(target)); err != nil {
		return fmt.Errorf("render background: %w", err)
	}

	if err := r.renderGui(a, id, target); err != nil {
		return fmt.Errorf("render gui: %w", err)
	}

	viewport.Present()

	if r.stats.Tick(time.Now()) {
		slog.Debug("Frame statistics", slog.Any("stats", &r.stats))
	}

	return nil
}

func (r *Renderer) renderBackground(a *app.App, attachment wgpu.RenderPassColorAttachment) error {
	color := a.TriangleColor.Float32()

	if err := r.ctx.TryWriteBuffer(r.bufColor, 0, pulse.AsByteSlice(&color)); err != nil {
		return fmt.Errorf("update color uniform: %w", err)
	}

	bundle := r.bundle

	bindGroup, err := r.ctx.TryCreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Triangle.Color",
		Layout: bundle.BindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.bufColor,
				Size:    pulse.ColorUniformSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	defer bindGroup.Release()

	encoder, err := r.ctx.TryCreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassBackground",
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})

	pass.SetPipeline(bundle.Pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, bundle.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(bundle.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(bundle.IndexCount, 1, 0, 0, 0)

	if err := pass.TryEnd(); err != nil {
		pass.Release()
		return fmt.Errorf("end pass: %w", err)
	}

	// must release pass before finishing the encoder
	pass.Release()

	cmdBuffer, err := encoder.TryFinish(nil)
	if err != nil {
		return fmt.Errorf("finish commands: %w", err)
	}

	defer cmdBuffer.Release()

	r.ctx.Submit(cmdBuffer)

	return nil
}

func (r *Renderer) renderGui(a *app.App, id glimpse.WindowID, target pulse.RenderTarget) error {
	ctx, ok := r.contexts.Get(id)
	if !ok {
		return nil
	}

	input := r.input.TakeInput(id, target.Width, target.Height)

	output := ctx.Run(input, a.UI)
	meshes := ctx.Tessellate(output.Shapes)

	for _, set := range output.TexturesDelta.Set {
		if err := r.guiCommand.UpdateTexture(set.ID, set.Delta); err != nil {
			return fmt.Errorf("update texture %d: %w", set.ID, err)
		}
	}

	err := r.guiCommand.Render(target, meshes, input.ScreenRect.Size())

	// textures are freed after painting, even if painting failed
	for _, id := range output.TexturesDelta.Free {
		r.guiCommand.FreeTexture(id)
	}

	return err
}

func (r *Renderer) Release() {
	if r.guiCommand != nil {
		r.guiCommand.Release()
		r.guiCommand = nil
	}

	if r.bufColor != nil {
		r.bufColor.Release()
		r.bufColor = nil
	}

	r.bundle.Release()
	r.bundle = nil

	for id, viewport := range r.viewports {
		viewport.Release()
		delete(r.viewports, id)
	}

	r.order = nil

	if r.ctx != nil {
		r.ctx.Release()
		r.ctx = nil
	}
}
