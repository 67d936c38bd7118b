package pulse

import (
	"fmt"

	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	width, height uint32
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
	Label  string
}

// NewTexture creates a single sampled texture that can be sampled from and written to.
func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	texture, err := ctx.TryCreateTexture(&wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", opts.Label, err)
	}

	// now create a default texture view
	textureView, err := texture.TryCreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view for texture %q: %w", opts.Label, err)
	}

	return &Texture{
		texture:     texture,
		textureView: textureView,
		format:      opts.Format,
		width:       opts.Width,
		height:      opts.Height,
	}, nil
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Size() glm.Vec2u {
	return glm.Vec2u{t.width, t.height}
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture and its view. You must be sure to not use the
// texture after calling release.
func (t *Texture) Release() {
	t.textureView.Release()
	t.texture.Release()
}

type WritePixelsOptions struct {
	// tightly packed rgba8 pixels covering Region
	Pixels []byte
	Region glm.Rectu
}

// WritePixels uploads rgba8 pixels into a region of the texture.
func (t *Texture) WritePixels(ctx *Context, opts WritePixelsOptions) error {
	bounds := glm.RectangleFromSize(glm.Vec2u{}, t.Size())

	if opts.Region.Intersect(bounds) != opts.Region {
		return fmt.Errorf("target rect %v not in texture bounds %v", opts.Region, bounds)
	}

	stride := opts.Region.Width() * 4

	if want := int(stride * opts.Region.Height()); len(opts.Pixels) != want {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", want, len(opts.Pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: 0,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min[0],
			Y: opts.Region.Min[1],
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	if err := ctx.TryWriteTexture(dest, opts.Pixels, layout, size); err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}
