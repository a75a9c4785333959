package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bounce/component"
)

// SurfaceSize maps a terminal of cols x rows cells to simulation surface units
// The bottom row is reserved for the status line; every other row holds two pixels
func SurfaceSize(cols, rows int) (width, height float64) {
	rows--
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return float64(cols), float64(rows * 2)
}

// CellToSurface maps a terminal cell to the surface point at the center of its two pixels
func CellToSurface(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row*2) + 1
}

// TerminalSink renders frames to a tcell screen with half-block pixels and a status line
type TerminalSink struct {
	screen tcell.Screen
	buf    *RasterBuffer

	score  float64
	status func() string
}

// NewTerminalSink creates a sink drawing into screen
func NewTerminalSink(screen tcell.Screen) *TerminalSink {
	return &TerminalSink{
		screen: screen,
		buf:    NewRasterBuffer(0, 0, RgbBackground),
	}
}

// SetStatus installs a provider for extra status-line text, called once per frame
func (s *TerminalSink) SetStatus(fn func() string) {
	s.status = fn
}

// Clear starts a frame, resizing the pixel buffer to the surface when it changed
func (s *TerminalSink) Clear(width, height float64) {
	w, h := int(width), int(height)
	if bw, bh := s.buf.Size(); bw != w || bh != h {
		s.buf.Resize(w, h)
		s.screen.Clear()
		return
	}
	s.buf.Clear()
}

func (s *TerminalSink) DrawCircle(x, y, radius float64, c component.Color) {
	s.buf.FillCircle(x, y, radius, FromColor(c))
}

// Present flushes pixels and the status line, then shows the screen
func (s *TerminalSink) Present() {
	s.buf.FlushTo(s.screen)
	s.drawStatus()
	s.screen.Show()
}

// PublishScore stores the score shown on the next status line
func (s *TerminalSink) PublishScore(score float64) {
	s.score = score
}

// Score returns the last published score
func (s *TerminalSink) Score() float64 {
	return s.score
}

func (s *TerminalSink) drawStatus() {
	cols, rows := s.screen.Size()
	if rows == 0 {
		return
	}
	row := rows - 1
	style := tcell.StyleDefault.Foreground(RgbStatusText.Tcell()).Background(RgbStatusBg.Tcell())

	text := fmt.Sprintf(" score %.1f", s.score)
	if s.status != nil {
		if extra := s.status(); extra != "" {
			text += " │ " + extra
		}
	}

	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		s.screen.SetContent(col, row, ' ', nil, style)
	}
}
