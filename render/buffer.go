package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// HalfBlock draws the top pixel as foreground and the bottom pixel as background
const HalfBlock = '▀'

// Sub-pixel sample offsets for edge coverage (2x2 grid)
var coverageSamples = [4][2]float64{
	{0.25, 0.25}, {0.75, 0.25},
	{0.25, 0.75}, {0.75, 0.75},
}

// RasterBuffer is a pixel grid where each terminal cell holds two vertically stacked pixels
// Surface units map 1:1 to pixels; terminal cells are roughly twice as tall as wide, so pixels are square
type RasterBuffer struct {
	pixels     []RGB
	width      int
	height     int
	background RGB
}

// NewRasterBuffer creates a width x height pixel buffer cleared to bg
func NewRasterBuffer(width, height int, bg RGB) *RasterBuffer {
	b := &RasterBuffer{background: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RasterBuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	size := width * height
	if cap(b.pixels) < size {
		b.pixels = make([]RGB, size)
	} else {
		b.pixels = b.pixels[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all pixels to background using exponential copy
func (b *RasterBuffer) Clear() {
	if len(b.pixels) == 0 {
		return
	}
	b.pixels[0] = b.background
	for filled := 1; filled < len(b.pixels); filled *= 2 {
		copy(b.pixels[filled:], b.pixels[:filled])
	}
}

// Size returns pixel dimensions
func (b *RasterBuffer) Size() (int, int) {
	return b.width, b.height
}

func (b *RasterBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the color at (x, y); out-of-bounds reads return background
func (b *RasterBuffer) Pixel(x, y int) RGB {
	if !b.inBounds(x, y) {
		return b.background
	}
	return b.pixels[y*b.width+x]
}

// FillCircle paints a disc over existing pixels, blending edge pixels by sampled coverage
// Parts outside the buffer are clipped
func (b *RasterBuffer) FillCircle(cx, cy, r float64, c RGB) {
	if r <= 0 || b.width == 0 || b.height == 0 {
		return
	}
	x0 := max(int(math.Floor(cx-r)), 0)
	x1 := min(int(math.Ceil(cx+r)), b.width-1)
	y0 := max(int(math.Floor(cy-r)), 0)
	y1 := min(int(math.Ceil(cy+r)), b.height-1)
	r2 := r * r

	for y := y0; y <= y1; y++ {
		row := y * b.width
		for x := x0; x <= x1; x++ {
			inside := 0
			for _, s := range coverageSamples {
				dx := float64(x) + s[0] - cx
				dy := float64(y) + s[1] - cy
				if dx*dx+dy*dy <= r2 {
					inside++
				}
			}
			if inside == 0 {
				continue
			}
			idx := row + x
			b.pixels[idx] = Blend(b.pixels[idx], c, float64(inside)/float64(len(coverageSamples)))
		}
	}
}

// Rows returns the number of terminal rows the buffer occupies
func (b *RasterBuffer) Rows() int {
	return (b.height + 1) / 2
}

// FlushTo writes the buffer into screen cells starting at row 0
func (b *RasterBuffer) FlushTo(screen tcell.Screen) {
	bgStyle := tcell.StyleDefault.Background(b.background.Tcell())
	rows := b.Rows()
	for row := 0; row < rows; row++ {
		for x := 0; x < b.width; x++ {
			top := b.Pixel(x, row*2)
			bottom := b.Pixel(x, row*2+1)
			if top == b.background && bottom == b.background {
				screen.SetContent(x, row, ' ', nil, bgStyle)
				continue
			}
			style := tcell.StyleDefault.Foreground(top.Tcell()).Background(bottom.Tcell())
			screen.SetContent(x, row, HalfBlock, nil, style)
		}
	}
}
