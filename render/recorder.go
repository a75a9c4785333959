package render

import "github.com/lixenwraith/bounce/component"

// Circle is one recorded draw command
type Circle struct {
	X, Y, Radius float64
	Color        component.Color
}

// Frame is the content of one Clear..Present sequence
type Frame struct {
	Width, Height float64
	Circles       []Circle
}

// Recorder is a headless sink that keeps the last presented frame and score
// Used by the replay tool and tests
type Recorder struct {
	current   Frame
	last      Frame
	presented int
	open      bool

	lastScore float64
	scores    int
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(width, height float64) {
	r.current = Frame{Width: width, Height: height, Circles: r.current.Circles[:0]}
	r.open = true
}

func (r *Recorder) DrawCircle(x, y, radius float64, c component.Color) {
	r.current.Circles = append(r.current.Circles, Circle{X: x, Y: y, Radius: radius, Color: c})
}

// Present commits the current frame; a Present without a preceding Clear records an empty frame
func (r *Recorder) Present() {
	if !r.open {
		r.current = Frame{}
	}
	r.last = Frame{
		Width:   r.current.Width,
		Height:  r.current.Height,
		Circles: append([]Circle(nil), r.current.Circles...),
	}
	r.open = false
	r.presented++
}

func (r *Recorder) PublishScore(score float64) {
	r.lastScore = score
	r.scores++
}

// Last returns the most recently presented frame
func (r *Recorder) Last() Frame {
	return r.last
}

// Presented returns the number of completed frames
func (r *Recorder) Presented() int {
	return r.presented
}

// Score returns the last published score and how many scores were published
func (r *Recorder) Score() (float64, int) {
	return r.lastScore, r.scores
}
