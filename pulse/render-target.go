package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// RenderTarget holds all the information of something that can be rendered to.
type RenderTarget struct {
	View *wgpu.TextureView

	// In case of multisample rendering, this holds the
	// texture the multisampled fragment is resolved to.
	ResolveTarget *wgpu.TextureView

	// Texture format of View
	Format wgpu.TextureFormat

	// Size of the target to render to
	Width  uint32
	Height uint32

	// The number of samples of the View texture
	SampleCount uint32
}

// Single returns a target that renders into the resolved texture
// without multisampling.
func (t RenderTarget) Single() RenderTarget {
	if t.ResolveTarget == nil {
		return t
	}

	t.View = t.ResolveTarget
	t.ResolveTarget = nil
	t.SampleCount = 1

	return t
}

// ClearAttachment clears the target with the given color before drawing.
func (t RenderTarget) ClearAttachment(color Color) wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:          t.View,
		ResolveTarget: t.ResolveTarget,
		LoadOp:        wgpu.LoadOpClear,
		StoreOp:       wgpu.StoreOpStore,
		ClearValue:    color.ToWGPU(),
	}
}

// LoadAttachment keeps the current content of the target and draws on top of it.
func (t RenderTarget) LoadAttachment() wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:          t.View,
		ResolveTarget: t.ResolveTarget,
		LoadOp:        wgpu.LoadOpLoad,
		StoreOp:       wgpu.StoreOpStore,
	}
}
