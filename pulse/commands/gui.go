package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math/bits"
	"strings"
	"unsafe"

	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/shaderplay/gui"
	"github.com/oliverbestmann/shaderplay/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed gui.wgsl
var guiShaderCode string

type guiLocals struct {
	ScreenSize   glm.Vec2f
	LinearTarget float32
	_            float32
}

type guiTexture struct {
	texture   *pulse.Texture
	bindGroup *wgpu.BindGroup
}

func (t *guiTexture) Release() {
	t.bindGroup.Release()
	t.texture.Release()
}

// GuiCommand paints tessellated gui meshes on top of a render target.
type GuiCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[guiRenderPipeline]
	samplers      *pulse.SamplerCache

	localsLayout   *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	bufLocals   *wgpu.Buffer
	localsGroup *wgpu.BindGroup

	bufVertices *wgpu.Buffer
	bufIndices  *wgpu.Buffer

	textures map[gui.TextureID]*guiTexture

	vertices []gui.Vertex
	indices  []uint32
}

func NewGuiCommand(ctx *pulse.Context) (*GuiCommand, error) {
	localsLayout, err := ctx.TryCreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Gui.LocalsLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(guiLocals{})),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create locals layout: %w", err)
	}

	localsLayoutGuard := pulse.NewReleaseGuard(localsLayout)
	defer localsLayoutGuard.Release()

	textureLayout, err := ctx.TryCreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Gui.TextureLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture layout: %w", err)
	}

	textureLayoutGuard := pulse.NewReleaseGuard(textureLayout)
	defer textureLayoutGuard.Release()

	pipelineLayout, err := ctx.TryCreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Gui.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{localsLayout, textureLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	pipelineLayoutGuard := pulse.NewReleaseGuard(pipelineLayout)
	defer pipelineLayoutGuard.Release()

	bufLocals, err := ctx.TryCreateBuffer(&wgpu.BufferDescriptor{
		Label: "Gui.Locals",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(guiLocals{})),
	})
	if err != nil {
		return nil, fmt.Errorf("create locals buffer: %w", err)
	}

	bufLocalsGuard := pulse.NewReleaseGuard(bufLocals)
	defer bufLocalsGuard.Release()

	localsGroup, err := ctx.TryCreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Gui.Locals",
		Layout: localsLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  bufLocals,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create locals bind group: %w", err)
	}

	localsLayoutGuard.Keep()
	textureLayoutGuard.Keep()
	pipelineLayoutGuard.Keep()
	bufLocalsGuard.Keep()

	return &GuiCommand{
		ctx:            ctx,
		pipelineCache:  pulse.NewPipelineCache[guiRenderPipeline](ctx),
		samplers:       pulse.NewSamplerCache(ctx),
		localsLayout:   localsLayout,
		textureLayout:  textureLayout,
		pipelineLayout: pipelineLayout,
		bufLocals:      bufLocals,
		localsGroup:    localsGroup,
		textures:       map[gui.TextureID]*guiTexture{},
	}, nil
}

// UpdateTexture applies a texture delta. A delta without a position
// replaces the texture, a positioned delta patches an existing one.
func (p *GuiCommand) UpdateTexture(id gui.TextureID, delta gui.ImageDelta) error {
	if delta.Pos != nil {
		existing, ok := p.textures[id]
		if !ok {
			return fmt.Errorf("partial update of unknown texture %d", id)
		}

		region := glm.RectangleFromSize(*delta.Pos, glm.Vec2u{delta.Width, delta.Height})

		err := existing.texture.WritePixels(p.ctx, pulse.WritePixelsOptions{Pixels: delta.Pixels, Region: region})
		if err != nil {
			return fmt.Errorf("update texture %d: %w", id, err)
		}

		return nil
	}

	texture, err := pulse.NewTexture(p.ctx, pulse.NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  delta.Width,
		Height: delta.Height,
		Label:  fmt.Sprintf("Gui.Texture.%d", id),
	})
	if err != nil {
		return err
	}

	textureGuard := pulse.NewReleaseGuard(texture)
	defer textureGuard.Release()

	region := glm.RectangleFromSize(glm.Vec2u{}, texture.Size())

	err = texture.WritePixels(p.ctx, pulse.WritePixelsOptions{Pixels: delta.Pixels, Region: region})
	if err != nil {
		return fmt.Errorf("upload texture %d: %w", id, err)
	}

	sampler, err := p.samplers.Get(wgpu.SamplerDescriptor{
		Label:         "Gui.Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}

	bindGroup, err := p.ctx.TryCreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("Gui.Texture.%d", id),
		Layout: p.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: texture.View(),
				Size:        wgpu.WholeSize,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group for texture %d: %w", id, err)
	}

	textureGuard.Keep()

	p.FreeTexture(id)
	p.textures[id] = &guiTexture{texture: texture, bindGroup: bindGroup}

	slog.Debug(
		"Uploaded gui texture",
		slog.Uint64("id", uint64(id)),
		slog.Int("width", int(delta.Width)),
		slog.Int("height", int(delta.Height)),
	)

	return nil
}

func (p *GuiCommand) FreeTexture(id gui.TextureID) {
	if texture, ok := p.textures[id]; ok {
		texture.Release()
		delete(p.textures, id)
	}
}

// Render paints the meshes onto the target. screenSize is measured in points,
// the target in physical pixels.
func (p *GuiCommand) Render(target pulse.RenderTarget, meshes []gui.ClippedMesh, screenSize glm.Vec2f) error {
	if len(meshes) == 0 || screenSize[0] <= 0 || screenSize[1] <= 0 {
		return nil
	}

	// the gui is painted without multisampling directly into the resolved texture
	target = target.Single()

	pipeline, err := p.pipelineCache.Get(guiRenderPipeline{
		TargetFormat: target.Format,
		Layout:       p.pipelineLayout,
	})
	if err != nil {
		return fmt.Errorf("get gui pipeline: %w", err)
	}

	draws := p.collect(meshes)
	if len(draws) == 0 {
		return nil
	}

	if err := p.upload(target, screenSize); err != nil {
		return err
	}

	encoder, err := p.ctx.TryCreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassGui",
		ColorAttachments: []wgpu.RenderPassColorAttachment{target.LoadAttachment()},
	})

	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, p.localsGroup, nil)
	pass.SetVertexBuffer(0, p.bufVertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(p.bufIndices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)

	scale := glm.Vec2f{float32(target.Width), float32(target.Height)}.Div(screenSize)
	targetRect := glm.RectangleFromSize(glm.Vec2u{}, glm.Vec2u{target.Width, target.Height})

	for _, draw := range draws {
		texture, ok := p.textures[draw.texture]
		if !ok {
			slog.Warn("Skip gui mesh with unknown texture", slog.Uint64("texture", uint64(draw.texture)))
			continue
		}

		scissor := scissorRect(draw.clip, scale).Intersect(targetRect)
		if scissor.IsEmpty() {
			continue
		}

		pass.SetScissorRect(scissor.XYWH())
		pass.SetBindGroup(1, texture.bindGroup, nil)
		pass.DrawIndexed(draw.indexCount, 1, draw.firstIndex, draw.baseVertex, 0)
	}

	if err := pass.TryEnd(); err != nil {
		pass.Release()
		return fmt.Errorf("end gui pass: %w", err)
	}

	// must release pass before finishing the encoder
	pass.Release()

	cmdBuffer, err := encoder.TryFinish(nil)
	if err != nil {
		return fmt.Errorf("finish gui commands: %w", err)
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	return nil
}

type guiDraw struct {
	clip       glm.Rectf
	texture    gui.TextureID
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// collect concatenates all meshes into the staging slices.
func (p *GuiCommand) collect(meshes []gui.ClippedMesh) []guiDraw {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]

	var draws []guiDraw

	for _, mesh := range meshes {
		if mesh.Mesh.IsEmpty() {
			continue
		}

		draws = append(draws, guiDraw{
			clip:       mesh.Clip,
			texture:    mesh.Mesh.Texture,
			firstIndex: uint32(len(p.indices)),
			indexCount: uint32(len(mesh.Mesh.Indices)),
			baseVertex: int32(len(p.vertices)),
		})

		p.vertices = append(p.vertices, mesh.Mesh.Vertices...)
		p.indices = append(p.indices, mesh.Mesh.Indices...)
	}

	return draws
}

func (p *GuiCommand) upload(target pulse.RenderTarget, screenSize glm.Vec2f) error {
	var linearTarget float32
	if isSRGBFormat(target.Format) {
		linearTarget = 1
	}

	locals := guiLocals{ScreenSize: screenSize, LinearTarget: linearTarget}
	if err := p.ctx.TryWriteBuffer(p.bufLocals, 0, pulse.AsByteSlice(&locals)); err != nil {
		return fmt.Errorf("update gui locals: %w", err)
	}

	vertexBytes := wgpu.ToBytes(p.vertices)
	indexBytes := wgpu.ToBytes(p.indices)

	var err error

	p.bufVertices, err = p.ensureBuffer(p.bufVertices, "Gui.Vertices", wgpu.BufferUsageVertex, len(vertexBytes))
	if err != nil {
		return err
	}

	p.bufIndices, err = p.ensureBuffer(p.bufIndices, "Gui.Indices", wgpu.BufferUsageIndex, len(indexBytes))
	if err != nil {
		return err
	}

	if err := p.ctx.TryWriteBuffer(p.bufVertices, 0, vertexBytes); err != nil {
		return fmt.Errorf("update gui vertices: %w", err)
	}

	if err := p.ctx.TryWriteBuffer(p.bufIndices, 0, indexBytes); err != nil {
		return fmt.Errorf("update gui indices: %w", err)
	}

	return nil
}

// ensureBuffer returns a buffer holding at least size bytes, replacing
// the current one if it is too small.
func (p *GuiCommand) ensureBuffer(current *wgpu.Buffer, label string, usage wgpu.BufferUsage, size int) (*wgpu.Buffer, error) {
	if current != nil && current.GetSize() >= uint64(size) {
		return current, nil
	}

	if current != nil {
		current.Release()
	}

	buf, err := p.ctx.TryCreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Usage: usage | wgpu.BufferUsageCopyDst,
		Size:  bufferCapacity(size),
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}

	return buf, nil
}

func (p *GuiCommand) Release() {
	for id := range p.textures {
		p.FreeTexture(id)
	}

	p.pipelineCache.Release()
	p.samplers.Release()

	if p.bufVertices != nil {
		p.bufVertices.Release()
	}

	if p.bufIndices != nil {
		p.bufIndices.Release()
	}

	p.localsGroup.Release()
	p.bufLocals.Release()
	p.pipelineLayout.Release()
	p.textureLayout.Release()
	p.localsLayout.Release()
}

// bufferCapacity rounds up to the next power of two, at least 4kb.
func bufferCapacity(size int) uint64 {
	size = max(size, 4096)
	return 1 << bits.Len64(uint64(size-1))
}

// scissorRect converts a clip rectangle from points to whole pixels,
// rounding outwards.
func scissorRect(clip glm.Rectf, scale glm.Vec2f) glm.Rectu {
	lo := clip.Min.Mul(scale)
	hi := clip.Max.Mul(scale)

	return glm.Rectangle2[uint32]{
		Min: glm.Vec2u{floorToUint(lo[0]), floorToUint(lo[1])},
		Max: glm.Vec2u{ceilToUint(hi[0]), ceilToUint(hi[1])},
	}
}

func floorToUint(value float32) uint32 {
	if value <= 0 {
		return 0
	}

	return uint32(value)
}

func ceilToUint(value float32) uint32 {
	if value <= 0 {
		return 0
	}

	truncated := uint32(value)
	if float32(truncated) < value {
		truncated++
	}

	return truncated
}

func isSRGBFormat(format wgpu.TextureFormat) bool {
	return strings.HasSuffix(strings.ToLower(format.String()), "srgb")
}

type guiRenderPipeline struct {
	TargetFormat wgpu.TextureFormat
	Layout       *wgpu.PipelineLayout
}

func (conf guiRenderPipeline) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info("Create RenderPipeline for gui", slog.Any("format", conf.TargetFormat))

	shader, err := dev.TryCreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Gui.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: guiShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile gui shader: %w", err)
	}

	defer shader.Release()

	// colors are straight alpha
	blend := wgpu.BlendStateAlphaBlending

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Gui.%s", conf.TargetFormat),
		Layout: conf.Layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(gui.Vertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(gui.Vertex{}.Pos)),
							ShaderLocation: 0,
						},
						{
							// uv
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(gui.Vertex{}.UV)),
							ShaderLocation: 1,
						},
						{
							// color
							Format:         wgpu.VertexFormatUnorm8x4,
							Offset:         uint64(unsafe.Offsetof(gui.Vertex{}.Color)),
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.TryCreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build gui pipeline: %w", err)
	}

	return pipeline, nil
}
