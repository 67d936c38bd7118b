package gui

import (
	"math"
	"structs"

	"github.com/oliverbestmann/shaderplay/glm"
)

// Vertex is the vertex layout consumed by the gui render pass.
// Positions are in points, uv coordinates are normalized.
type Vertex struct {
	_ structs.HostLayout

	Pos   glm.Vec2f
	UV    glm.Vec2f
	Color Color32
}

type Mesh struct {
	Indices  []uint32
	Vertices []Vertex
	Texture  TextureID
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// ClippedMesh is a mesh that must be drawn with a scissor rectangle.
type ClippedMesh struct {
	Clip glm.Rectf
	Mesh Mesh
}

// Tessellate converts shapes into triangle meshes. Consecutive shapes
// sharing the same clip rectangle are merged into one mesh.
func (c *Context) Tessellate(shapes []ClippedShape) []ClippedMesh {
	t := tessellator{fonts: c.fonts}

	var meshes []ClippedMesh

	for _, shape := range shapes {
		if shape.Clip.IsEmpty() {
			continue
		}

		if len(meshes) == 0 || meshes[len(meshes)-1].Clip != shape.Clip {
			meshes = append(meshes, ClippedMesh{
				Clip: shape.Clip,
				Mesh: Mesh{Texture: FontTexture},
			})
		}

		t.tessellate(&meshes[len(meshes)-1].Mesh, shape.Shape)
	}

	// drop meshes where every shape turned out to be invisible
	nonEmpty := meshes[:0]
	for _, mesh := range meshes {
		if !mesh.Mesh.IsEmpty() {
			nonEmpty = append(nonEmpty, mesh)
		}
	}

	return nonEmpty
}

type tessellator struct {
	fonts *Fonts
	path  []glm.Vec2f
	inner []glm.Vec2f
}

func (t *tessellator) tessellate(mesh *Mesh, shape Shape) {
	switch shape := shape.(type) {
	case RectShape:
		t.rect(mesh, shape)

	case TextShape:
		t.text(mesh, shape)

	case LineShape:
		t.line(mesh, shape)

	case NoopShape:
	}
}

func (t *tessellator) rect(mesh *Mesh, shape RectShape) {
	if shape.Rect.IsEmpty() {
		return
	}

	rounding := min(shape.Rounding, shape.Rect.Width()/2, shape.Rect.Height()/2)
	segments := cornerSegments(rounding)

	if shape.Fill.A > 0 {
		t.path = roundedRectPath(t.path[:0], shape.Rect, rounding, segments)
		t.fillConvex(mesh, t.path, shape.Fill)
	}

	if !shape.Stroke.IsEmpty() {
		half := shape.Stroke.Width / 2

		t.path = roundedRectPath(t.path[:0], shape.Rect.Shrink(-half), rounding+half, segments)
		t.inner = roundedRectPath(t.inner[:0], shape.Rect.Shrink(half), max(0, rounding-half), segments)
		t.strokeLoop(mesh, t.path, t.inner, shape.Stroke.Color)
	}
}

func (t *tessellator) text(mesh *Mesh, shape TextShape) {
	if shape.Color.A == 0 {
		return
	}

	pos := shape.Pos

	for _, ch := range shape.Text {
		if ch == '\n' {
			pos = glm.Vec2f{shape.Pos[0], pos[1] + t.fonts.LineHeight()}
			continue
		}

		uv, ok := t.fonts.GlyphUV(ch)
		if !ok {
			uv, _ = t.fonts.GlyphUV('?')
		}

		rect := glm.RectangleFromSize(pos, glm.Vec2f{t.fonts.Advance(), t.fonts.LineHeight()})
		t.quad(mesh, rect, uv, shape.Color)

		pos[0] += t.fonts.Advance()
	}
}

func (t *tessellator) line(mesh *Mesh, shape LineShape) {
	if shape.Stroke.IsEmpty() {
		return
	}

	dir := shape.To.Sub(shape.From)

	length := float32(math.Hypot(float64(dir[0]), float64(dir[1])))
	if length == 0 {
		return
	}

	// perpendicular of half the stroke width
	half := shape.Stroke.Width / 2 / length
	normal := glm.Vec2f{-dir[1] * half, dir[0] * half}

	uv := t.fonts.WhiteUV()
	base := uint32(len(mesh.Vertices))

	mesh.Vertices = append(mesh.Vertices,
		Vertex{Pos: shape.From.Add(normal), UV: uv, Color: shape.Stroke.Color},
		Vertex{Pos: shape.To.Add(normal), UV: uv, Color: shape.Stroke.Color},
		Vertex{Pos: shape.To.Sub(normal), UV: uv, Color: shape.Stroke.Color},
		Vertex{Pos: shape.From.Sub(normal), UV: uv, Color: shape.Stroke.Color},
	)

	mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
}

func (t *tessellator) quad(mesh *Mesh, rect glm.Rectf, uv glm.Rectf, color Color32) {
	base := uint32(len(mesh.Vertices))

	mesh.Vertices = append(mesh.Vertices,
		Vertex{Pos: rect.Min, UV: uv.Min, Color: color},
		Vertex{Pos: glm.Vec2f{rect.Max[0], rect.Min[1]}, UV: glm.Vec2f{uv.Max[0], uv.Min[1]}, Color: color},
		Vertex{Pos: rect.Max, UV: uv.Max, Color: color},
		Vertex{Pos: glm.Vec2f{rect.Min[0], rect.Max[1]}, UV: glm.Vec2f{uv.Min[0], uv.Max[1]}, Color: color},
	)

	mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
}

// fillConvex fans a convex polygon around its first point.
func (t *tessellator) fillConvex(mesh *Mesh, path []glm.Vec2f, color Color32) {
	if len(path) < 3 {
		return
	}

	uv := t.fonts.WhiteUV()
	base := uint32(len(mesh.Vertices))

	for _, point := range path {
		mesh.Vertices = append(mesh.Vertices, Vertex{Pos: point, UV: uv, Color: color})
	}

	for idx := uint32(1); idx+1 < uint32(len(path)); idx++ {
		mesh.Indices = append(mesh.Indices, base, base+idx, base+idx+1)
	}
}

// strokeLoop fills the band between two closed paths with the same number of points.
func (t *tessellator) strokeLoop(mesh *Mesh, outer, inner []glm.Vec2f, color Color32) {
	if len(outer) != len(inner) || len(outer) < 2 {
		return
	}

	uv := t.fonts.WhiteUV()
	base := uint32(len(mesh.Vertices))
	count := uint32(len(outer))

	for idx := range outer {
		mesh.Vertices = append(mesh.Vertices,
			Vertex{Pos: outer[idx], UV: uv, Color: color},
			Vertex{Pos: inner[idx], UV: uv, Color: color},
		)
	}

	for idx := uint32(0); idx < count; idx++ {
		next := (idx + 1) % count

		o0, i0 := base+2*idx, base+2*idx+1
		o1, i1 := base+2*next, base+2*next+1

		mesh.Indices = append(mesh.Indices, o0, o1, i1, o0, i1, i0)
	}
}

func cornerSegments(rounding float32) int {
	if rounding <= 0.5 {
		return 0
	}

	return min(8, max(2, int(rounding/2)))
}

// roundedRectPath appends the outline of a rounded rectangle in clockwise
// order on screen, starting at the top left corner. A corner with zero
// segments is a single point.
func roundedRectPath(path []glm.Vec2f, rect glm.Rectf, rounding float32, segments int) []glm.Vec2f {
	rounding = max(0, min(rounding, rect.Width()/2, rect.Height()/2))

	corners := [4]struct {
		center glm.Vec2f
		start  glm.Rad
	}{
		{glm.Vec2f{rect.Min[0] + rounding, rect.Min[1] + rounding}, glm.Tau / 2},
		{glm.Vec2f{rect.Max[0] - rounding, rect.Min[1] + rounding}, glm.Tau * 3 / 4},
		{glm.Vec2f{rect.Max[0] - rounding, rect.Max[1] - rounding}, 0},
		{glm.Vec2f{rect.Min[0] + rounding, rect.Max[1] - rounding}, glm.Tau / 4},
	}

	for _, corner := range corners {
		for step := 0; step <= segments; step++ {
			var angle glm.Rad
			if segments > 0 {
				angle = corner.start + glm.Tau/4*glm.Rad(step)/glm.Rad(segments)
			} else {
				angle = corner.start + glm.Tau/8
			}

			sin, cos := glm.Sincos(angle)

			if segments == 0 {
				// sharp corner: place the point on the corner itself
				sin, cos = sign(sin), sign(cos)
			}

			path = append(path, corner.center.Add(glm.Vec2f{cos, sin}.MulScalar(rounding)))
		}
	}

	return path
}

func sign(value float32) float32 {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}
