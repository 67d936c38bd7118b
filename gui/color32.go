package gui

// Color32 is a packed 8 bit per channel rgba color, as edited by color pickers.
type Color32 struct {
	R, G, B, A uint8
}

var (
	Color32White       = Color32{255, 255, 255, 255}
	Color32Red         = Color32{255, 0, 0, 255}
	Color32Blue        = Color32{0, 0, 255, 255}
	Color32Transparent = Color32{}
)

func RGBA(r, g, b, a uint8) Color32 {
	return Color32{R: r, G: g, B: b, A: a}
}

func Gray(level uint8) Color32 {
	return Color32{R: level, G: level, B: level, A: 255}
}

// Opaque returns the color with full alpha.
func (c Color32) Opaque() Color32 {
	c.A = 255
	return c
}

// Channels exposes the components by index in rgba order.
func (c *Color32) Channels() [4]*uint8 {
	return [4]*uint8{&c.R, &c.G, &c.B, &c.A}
}
