package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/status"
)

const helpText = "click spawn, space pause, . step, c clear, q quit"

// Game adapts engine.Loop to ebiten: Update fires one scheduled frame, Draw paints the last presented one
type Game struct {
	loop     *engine.Loop
	sched    *engine.ManualScheduler
	recorder *render.Recorder
	metrics  *status.Collector

	width, height int
}

func newGame(w *engine.World, observer engine.Observer) *Game {
	sched := &engine.ManualScheduler{}
	rec := render.NewRecorder()
	metrics := status.NewCollector(nil)
	return &Game{
		loop: engine.NewLoop(w, sched, rec,
			engine.WithScoreSink(rec), engine.WithScoreSink(metrics),
			engine.WithObserver(observer), engine.WithObserver(metrics)),
		sched:    sched,
		recorder: rec,
		metrics:  metrics,
		width:    int(w.Width),
		height:   int(w.Height),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		log.Printf("input: paused=%v", g.loop.TogglePause())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.loop.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.loop.Clear()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if _, err := g.loop.Spawn(float64(x), float64(y)); err != nil {
			log.Printf("spawn at (%d,%d): %v", x, y, err)
		}
	}

	g.sched.Fire()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.RgbBackground.Color())

	for _, c := range g.recorder.Last().Circles {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), render.FromColor(c.Color).Color(), true)
	}

	s := g.loop.Stats()
	line := fmt.Sprintf("score %.1f  bodies %d  merges %d  TPS %.0f", s.Score.Total(), s.Bodies, s.Merges, ebiten.ActualTPS())
	if tier := g.metrics.TopTier(); tier >= 0 {
		line += fmt.Sprintf("  tier %d", tier)
	}
	if s.Paused {
		line += "  PAUSED"
	}
	text.Draw(screen, line, basicfont.Face7x13, 6, 16, render.RgbStatusText.Color())
	ebitenutil.DebugPrintAt(screen, helpText, 6, g.height-20)
}

// Layout uses the window size as the surface; a change resizes the world on the next frame
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.loop.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
