package gui

import "github.com/oliverbestmann/shaderplay/glm"

// TextureID identifies a texture managed by the gui.
type TextureID uint64

// FontTexture holds the glyph atlas. It also contains an opaque white
// region used for untextured shapes.
const FontTexture TextureID = 1

// ImageDelta is a full or partial update of a texture.
type ImageDelta struct {
	// offset of a partial update, nil for replacing the full texture
	Pos *glm.Vec2u

	Width, Height uint32

	// tightly packed rgba8 pixels with straight alpha
	Pixels []byte
}

type TextureSet struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists the textures to upload before painting a frame
// and the textures to free after painting it.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

func (d *TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}
