package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// SampleCount is the multisample count used by every pipeline and viewport of
// the process. It must be set before the first viewport is finalized and must
// not change afterwards.
var SampleCount uint32 = 1

// maximum texture dimension guaranteed by the default webgpu limits.
const maxTextureDimension = 2048

var (
	ErrNoSurfaceFormat = errors.New("surface reports no supported format")
	ErrNoViewport      = errors.New("no viewport")
)

// MultisampleTarget is either MultisamplePresent or MultisampleAbsent.
type MultisampleTarget interface {
	isMultisampleTarget()
}

// MultisamplePresent is an offscreen multisample texture. Rendering goes into
// View and is resolved into the surface texture.
type MultisamplePresent struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// MultisampleAbsent means rendering goes directly into the surface texture.
type MultisampleAbsent struct{}

func (MultisamplePresent) isMultisampleTarget() {}
func (MultisampleAbsent) isMultisampleTarget()  {}

// Viewport binds a drawable surface to a window.
type Viewport struct {
	label      string
	background Color
	surface    *wgpu.Surface

	// nil until Finalize was called
	config *wgpu.SurfaceConfiguration

	target MultisampleTarget
}

// NewViewport wraps the surface. The surface is not configured before
// Finalize is called.
func NewViewport(label string, surface *wgpu.Surface, background Color) *Viewport {
	return &Viewport{
		label:      label,
		background: background,
		surface:    surface,
		target:     MultisampleAbsent{},
	}
}

// Finalize picks the first format and alpha mode the surface reports for the
// adapter, configures the surface and allocates the multisample target if needed.
func (vp *Viewport) Finalize(ctx *Context, width, height uint32) error {
	caps := vp.surface.GetCapabilities(ctx.Adapter)

	slog.Info("Available surface formats",
		slog.String("viewport", vp.label),
		slog.Any("formats", caps.Formats),
		slog.Any("alphaModes", caps.AlphaModes),
	)

	config, err := newSurfaceConfig(caps.Formats, caps.AlphaModes, width, height)
	if err != nil {
		return fmt.Errorf("viewport %q: %w", vp.label, err)
	}

	vp.config = config

	if width == 0 || height == 0 {
		// configured on the first non zero resize
		return nil
	}

	return vp.configure(ctx)
}

// Resize reconfigures the surface. A size with a zero dimension happens while
// a window is minimized and is ignored.
func (vp *Viewport) Resize(ctx *Context, width, height uint32) error {
	config, ok := resizedConfig(vp.config, width, height)
	if !ok {
		return nil
	}

	slog.Debug("Resize surface",
		slog.String("viewport", vp.label),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	vp.config = config

	return vp.configure(ctx)
}

func (vp *Viewport) configure(ctx *Context) error {
	vp.surface.Configure(ctx.Device, vp.config)

	next, err := createMultisampleTarget(ctx, vp.config, SampleCount)
	if err != nil {
		return fmt.Errorf("create multisample target: %w", err)
	}

	prev := vp.target
	vp.target = next

	releaseMultisampleTarget(prev)

	return nil
}

// AcquireFrame blocks until the next surface texture is available.
func (vp *Viewport) AcquireFrame() (*wgpu.Texture, error) {
	if vp.config == nil {
		return nil, fmt.Errorf("viewport %q is not configured", vp.label)
	}

	return vp.surface.GetCurrentTexture()
}

func (vp *Viewport) Surface() *wgpu.Surface {
	return vp.surface
}

func (vp *Viewport) Present() {
	vp.surface.Present()
}

// Target returns the current multisample target.
func (vp *Viewport) Target() MultisampleTarget {
	return vp.target
}

// Format returns the texture format the surface was configured with.
func (vp *Viewport) Format() wgpu.TextureFormat {
	return vp.config.Format
}

// Config returns a copy of the current surface configuration.
func (vp *Viewport) Config() wgpu.SurfaceConfiguration {
	if vp.config == nil {
		return wgpu.SurfaceConfiguration{}
	}

	return *vp.config
}

// SetBackground changes the color the first pass of a frame clears the viewport with.
func (vp *Viewport) SetBackground(color Color) {
	vp.background = color
}

// ClearAttachment clears the target with the background of the viewport.
func (vp *Viewport) ClearAttachment(target RenderTarget) wgpu.RenderPassColorAttachment {
	return target.ClearAttachment(vp.background)
}

// RenderTarget describes how to render into the given surface view, either
// directly or through the multisample target.
func (vp *Viewport) RenderTarget(surfaceView *wgpu.TextureView) RenderTarget {
	target := RenderTarget{
		Format: vp.config.Format,
		Width:  vp.config.Width,
		Height: vp.config.Height,
	}

	switch ms := vp.target.(type) {
	case MultisamplePresent:
		target.View = ms.View
		target.ResolveTarget = surfaceView
		target.SampleCount = SampleCount

	case MultisampleAbsent:
		target.View = surfaceView
		target.SampleCount = 1

	default:
		panic(fmt.Sprintf("unknown multisample target %T", ms))
	}

	return target
}

func (vp *Viewport) Release() {
	releaseMultisampleTarget(vp.target)
	vp.target = MultisampleAbsent{}

	if vp.surface != nil {
		vp.surface.Release()
		vp.surface = nil
	}
}

func newSurfaceConfig(formats []wgpu.TextureFormat, alphaModes []wgpu.CompositeAlphaMode, width, height uint32) (*wgpu.SurfaceConfiguration, error) {
	if len(formats) == 0 || len(alphaModes) == 0 {
		return nil, ErrNoSurfaceFormat
	}

	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      formats[0],
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   alphaModes[0],
		Width:       width,
		Height:      height,
	}, nil
}

// resizedConfig returns the configuration for the new size, or false if the
// surface must not be reconfigured.
func resizedConfig(config *wgpu.SurfaceConfiguration, width, height uint32) (*wgpu.SurfaceConfiguration, bool) {
	if config == nil || width == 0 || height == 0 {
		return config, false
	}

	next := *config
	next.Width = width
	next.Height = height

	return &next, true
}

func wantsMultisampleTarget(sampleCount, width, height uint32) bool {
	return sampleCount > 1 &&
		width <= maxTextureDimension &&
		height <= maxTextureDimension
}

func createMultisampleTarget(ctx *Context, config *wgpu.SurfaceConfiguration, sampleCount uint32) (MultisampleTarget, error) {
	if !wantsMultisampleTarget(sampleCount, config.Width, config.Height) {
		return MultisampleAbsent{}, nil
	}

	texture, err := ctx.TryCreateTexture(&wgpu.TextureDescriptor{
		Label: "MultisampleRenderTarget",
		Usage: wgpu.TextureUsageRenderAttachment,
		Size: wgpu.Extent3D{
			Width:              config.Width,
			Height:             config.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        config.Format,
		Dimension:     wgpu.TextureDimension2D,
		SampleCount:   sampleCount,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, err
	}

	view, err := texture.TryCreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}

	return MultisamplePresent{Texture: texture, View: view}, nil
}

func releaseMultisampleTarget(target MultisampleTarget) {
	switch ms := target.(type) {
	case MultisamplePresent:
		ms.View.Release()
		ms.Texture.Destroy()
		ms.Texture.Release()

	case MultisampleAbsent, nil:
		// nothing allocated
	}
}
