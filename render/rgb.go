package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/bounce/component"
)

// RGB is an 8-bit-per-channel color shared by every frontend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RgbBlack      = RGB{0, 0, 0}
	RgbBackground = RGB{26, 27, 38} // Tokyo Night background
	RgbStatusText = RGB{192, 202, 245}
	RgbStatusBg   = RGB{36, 40, 59}
	RgbPaused     = RGB{224, 175, 104}
)

// FromColor converts a body's HSL color to RGB
func FromColor(c component.Color) RGB {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return RGB{r, g, b}
}

// Tcell returns the truecolor tcell value; tcell downsamples on limited terminals
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Color returns an opaque image/color value for raster frontends
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend returns src over c at the given alpha
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}
