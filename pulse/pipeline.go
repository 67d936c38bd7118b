package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// size of the color uniform: a single vec4<f32>
const ColorUniformSize = uint64(unsafe.Sizeof([4]float32{}))

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

var ErrMissingEntryPoint = errors.New("missing entry point")

type triangleVertex struct {
	Position glm.Vec3f
}

var triangleVertices = []triangleVertex{
	{Position: glm.Vec3f{-0.5, -0.5, 0}},
	{Position: glm.Vec3f{0.5, -0.5, 0}},
	{Position: glm.Vec3f{0, 0.5, 0}},
}

// the index buffer is padded to a multiple of four bytes,
// only the first triangleIndexCount values are drawn.
var triangleIndices = []uint16{0, 1, 2, 0}

const triangleIndexCount = 3

// TriangleBundle holds the pipeline compiled from the shader file together with
// the buffers holding the fixed triangle geometry. A bundle is never patched,
// a shader change builds a new one.
type TriangleBundle struct {
	Pipeline        *wgpu.RenderPipeline
	BindGroupLayout *wgpu.BindGroupLayout
	VertexBuffer    *wgpu.Buffer
	IndexBuffer     *wgpu.Buffer
	IndexCount      uint32
}

// BuildTriangleBundle reads the shader at shaderPath and builds a pipeline rendering
// into textures of the given format using SampleCount samples.
func BuildTriangleBundle(ctx *Context, shaderPath string, format wgpu.TextureFormat) (*TriangleBundle, error) {
	source, err := os.ReadFile(shaderPath)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}

	if err := ValidateShader(string(source)); err != nil {
		return nil, fmt.Errorf("validate shader %q: %w", shaderPath, err)
	}

	slog.Info(
		"Create RenderPipeline for triangle",
		slog.String("shader", shaderPath),
		slog.Any("format", format),
		slog.Any("sampleCount", SampleCount),
	)

	shader, err := ctx.TryCreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      shaderPath,
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: string(source)},
	})
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	defer shader.Release()

	bindGroupLayout, err := ctx.TryCreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Triangle.ColorLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: ColorUniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}

	layoutGuard := NewReleaseGuard(bindGroupLayout)
	defer layoutGuard.Release()

	pipelineLayout, err := ctx.TryCreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Triangle.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	defer pipelineLayout.Release()

	blend := wgpu.BlendStateAlphaBlending

	pipeline, err := ctx.TryCreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Triangle.%s", format),
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(triangleVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(triangleVertex{}.Position)),
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
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
			Count:                  SampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	pipelineGuard := NewReleaseGuard(pipeline)
	defer pipelineGuard.Release()

	vertexBuffer, err := ctx.TryCreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Triangle.Vertices",
		Contents: wgpu.ToBytes(triangleVertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	vertexGuard := NewReleaseGuard(vertexBuffer)
	defer vertexGuard.Release()

	indexBuffer, err := ctx.TryCreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Triangle.Indices",
		Contents: wgpu.ToBytes(triangleIndices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	layoutGuard.Keep()
	pipelineGuard.Keep()
	vertexGuard.Keep()

	return &TriangleBundle{
		Pipeline:        pipeline,
		BindGroupLayout: bindGroupLayout,
		VertexBuffer:    vertexBuffer,
		IndexBuffer:     indexBuffer,
		IndexCount:      triangleIndexCount,
	}, nil
}

// ValidateShader parses the WGSL source and checks that it declares a
// vertex entry point named vs_main and a fragment entry point named fs_main.
func ValidateShader(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("lower: %w", err)
	}

	return checkEntryPoints(module.EntryPoints)
}

func checkEntryPoints(entryPoints []ir.EntryPoint) error {
	var hasVertex, hasFragment bool

	for _, entryPoint := range entryPoints {
		switch {
		case entryPoint.Stage == ir.StageVertex && entryPoint.Name == vertexEntryPoint:
			hasVertex = true
		case entryPoint.Stage == ir.StageFragment && entryPoint.Name == fragmentEntryPoint:
			hasFragment = true
		}
	}

	if !hasVertex {
		return fmt.Errorf("%w: no vertex stage named %q", ErrMissingEntryPoint, vertexEntryPoint)
	}

	if !hasFragment {
		return fmt.Errorf("%w: no fragment stage named %q", ErrMissingEntryPoint, fragmentEntryPoint)
	}

	return nil
}

func (b *TriangleBundle) Release() {
	if b == nil {
		return
	}

	b.Pipeline.Release()
	b.BindGroupLayout.Release()
	b.VertexBuffer.Release()
	b.IndexBuffer.Release()
}
