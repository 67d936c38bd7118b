package gui

import (
	"image"
	"image/draw"

	"github.com/oliverbestmann/shaderplay/glm"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasColumns = 16
)

// Fonts is a monospace bitmap font rasterized into a single rgba atlas.
// The first atlas cell is opaque white and is sampled by untextured shapes.
type Fonts struct {
	advance    float32
	lineHeight float32

	width, height int
	pixels        []byte

	glyphs map[rune]glm.Rectf
	white  glm.Vec2f
}

func NewFonts() *Fonts {
	face := basicfont.Face7x13

	cellWidth := face.Advance + 1
	cellHeight := face.Height + 1

	cellCount := 1 + int(lastGlyph-firstGlyph) + 1
	rows := (cellCount + atlasColumns - 1) / atlasColumns

	img := image.NewRGBA(image.Rect(0, 0, atlasColumns*cellWidth, rows*cellHeight))

	cellOrigin := func(idx int) image.Point {
		return image.Pt((idx%atlasColumns)*cellWidth, (idx/atlasColumns)*cellHeight)
	}

	// white cell used for solid fills
	draw.Draw(img,
		image.Rectangle{Min: cellOrigin(0), Max: cellOrigin(0).Add(image.Pt(cellWidth, cellHeight))},
		image.White, image.Point{}, draw.Src,
	)

	drawer := font.Drawer{Dst: img, Src: image.White, Face: face}

	fonts := &Fonts{
		advance:    float32(face.Advance),
		lineHeight: float32(face.Height),
		width:      img.Rect.Dx(),
		height:     img.Rect.Dy(),
		glyphs:     map[rune]glm.Rectf{},
	}

	atlasSize := glm.Vec2f{float32(fonts.width), float32(fonts.height)}

	for ch := firstGlyph; ch <= lastGlyph; ch++ {
		origin := cellOrigin(1 + int(ch-firstGlyph))

		drawer.Dot = fixed.P(origin.X, origin.Y+face.Ascent)
		drawer.DrawString(string(ch))

		cellMin := glm.Vec2f{float32(origin.X), float32(origin.Y)}
		cellMax := cellMin.Add(glm.Vec2f{fonts.advance, fonts.lineHeight})

		fonts.glyphs[ch] = glm.RectangleFromPoints(cellMin.Div(atlasSize), cellMax.Div(atlasSize))
	}

	whiteCenter := glm.Vec2f{float32(cellWidth) / 2, float32(cellHeight) / 2}
	fonts.white = whiteCenter.Div(atlasSize)

	// glyph coverage is carried in alpha only, color comes from the vertex
	pixels := img.Pix
	for idx := 0; idx < len(pixels); idx += 4 {
		pixels[idx+0] = 255
		pixels[idx+1] = 255
		pixels[idx+2] = 255
	}

	fonts.pixels = pixels

	return fonts
}

func (f *Fonts) LineHeight() float32 {
	return f.lineHeight
}

func (f *Fonts) Advance() float32 {
	return f.advance
}

// GlyphUV returns the texture coordinates of a glyph. Unknown glyphs
// are reported as missing.
func (f *Fonts) GlyphUV(ch rune) (glm.Rectf, bool) {
	uv, ok := f.glyphs[ch]
	return uv, ok
}

// WhiteUV points into the opaque white region of the atlas.
func (f *Fonts) WhiteUV() glm.Vec2f {
	return f.white
}

// MeasureText returns the size of the text in points. Lines are split at '\n'.
func (f *Fonts) MeasureText(text string) glm.Vec2f {
	if text == "" {
		return glm.Vec2f{0, f.lineHeight}
	}

	var widest, current, lines int

	lines = 1

	for _, ch := range text {
		if ch == '\n' {
			lines++
			current = 0
			continue
		}

		current++
		widest = max(widest, current)
	}

	return glm.Vec2f{float32(widest) * f.advance, float32(lines) * f.lineHeight}
}

func (f *Fonts) imageDelta() ImageDelta {
	return ImageDelta{
		Width:  uint32(f.width),
		Height: uint32(f.height),
		Pixels: f.pixels,
	}
}
