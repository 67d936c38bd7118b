package pulse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"
)

const triangleShader = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
};

@group(0) @binding(0)
var<uniform> color: vec4<f32>;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(position, 1.0);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return color;
}
`

func TestValidateShader(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantErr      bool
		missingEntry bool
	}{
		{name: "triangle shader", source: triangleShader},
		{name: "syntax error", source: "fn vs_main( -> {", wantErr: true},
		{name: "empty", source: "", wantErr: true},
		{
			name: "vertex stage only",
			source: `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`,
			wantErr:      true,
			missingEntry: true,
		},
		{
			name: "two vertex stages",
			source: `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@vertex
fn vs_other(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position.yx, position.z, 1.0);
}
`,
			wantErr:      true,
			missingEntry: true,
		},
		{
			name: "wrong entry point names",
			source: `
@vertex
fn main_vs(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@fragment
fn main_fs() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`,
			wantErr:      true,
			missingEntry: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShader(tt.source)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateShader() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.missingEntry && !errors.Is(err, ErrMissingEntryPoint) {
				t.Errorf("ValidateShader() error = %v, want ErrMissingEntryPoint", err)
			}
		})
	}
}

func TestBuildTriangleBundle_MissingShader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wgsl")

	// fails before the gpu context is touched
	_, err := BuildTriangleBundle(nil, path, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestTriangleGeometry(t *testing.T) {
	if got := unsafe.Sizeof(triangleVertex{}); got != 12 {
		t.Errorf("vertex size = %d, want tightly packed vec3<f32>", got)
	}

	if len(triangleVertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(triangleVertices))
	}

	if size := len(triangleIndices) * 2; size%4 != 0 {
		t.Errorf("index buffer size %d is not a multiple of four", size)
	}

	for _, idx := range triangleIndices[:triangleIndexCount] {
		if int(idx) >= len(triangleVertices) {
			t.Errorf("index %d out of range", idx)
		}
	}

	if ColorUniformSize != 16 {
		t.Errorf("color uniform size = %d, want 16", ColorUniformSize)
	}
}

func TestBuildTriangleBundle_InvalidShader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.wgsl")
	if err := os.WriteFile(path, []byte("@fragment fn fs_main( {"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := BuildTriangleBundle(nil, path, 0)
	if err == nil {
		t.Fatal("expected an error for a syntactically invalid shader")
	}

	if !strings.Contains(err.Error(), "validate shader") {
		t.Errorf("err = %q, want a validation error", err)
	}
}

func TestValidateShader_DefaultShaderFile(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("..", "shaders", "triangle.wgsl"))
	if err != nil {
		t.Fatal(err)
	}

	if err := ValidateShader(string(source)); err != nil {
		t.Errorf("default shader is invalid: %v", err)
	}
}
