package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/status"
	"github.com/lixenwraith/bounce/vmath"
)

// Result summarizes a finished replay
type Result struct {
	Frames    int
	Bodies    int
	Merges    uint64
	Spawned   int
	Rejected  int
	Score     engine.Score
	Published float64
	PeakScore float64
	FloorHits int64
	// TopTier is the highest ladder tier reached by a merge, -1 if none
	TopTier int
	// Radii counts final bodies per radius
	Radii map[float64]int
}

// Run plays the script headlessly against settings
func Run(s *Script, settings engine.Settings) (Result, error) {
	world := engine.NewWorld(settings, s.Width, s.Height, vmath.NewFastRand(uint64(s.Seed)))
	sched := &engine.ManualScheduler{}
	rec := render.NewRecorder()
	metrics := status.NewCollector(nil)
	loop := engine.NewLoop(world, sched, rec,
		engine.WithScoreSink(rec), engine.WithScoreSink(metrics), engine.WithObserver(metrics))

	var res Result
	next := 0

	loop.Start()
	for frame := 0; frame < s.Frames; frame++ {
		for ; next < len(s.Spawns) && s.Spawns[next].Frame == frame; next++ {
			sp := s.Spawns[next]
			for i := 0; i < sp.Count; i++ {
				if _, err := loop.Spawn(sp.X, sp.Y); err != nil {
					if !errors.Is(err, engine.ErrPopulationFull) {
						return res, fmt.Errorf("frame %d: %w", frame, err)
					}
					res.Rejected++
					continue
				}
				res.Spawned++
			}
		}
		if sched.Fire() == 0 {
			return res, fmt.Errorf("frame %d: loop stopped re-registering", frame)
		}
	}
	loop.Stop()

	stats := loop.Stats()
	res.Frames = int(stats.Frame)
	res.Bodies = stats.Bodies
	res.Merges = stats.Merges
	res.Score = stats.Score
	res.Published, _ = rec.Score()
	res.PeakScore = metrics.PeakScore()
	res.FloorHits = metrics.FloorHits()
	res.TopTier = metrics.TopTier()

	res.Radii = make(map[float64]int)
	for _, c := range rec.Last().Circles {
		res.Radii[c.Radius]++
	}
	return res, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

// Summary renders the result as a bordered table
func Summary(name string, r Result, settings engine.Settings) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	lines := []string{
		titleStyle.Render("replay " + name),
		row("frames", fmt.Sprintf("%d", r.Frames)),
		row("spawned", fmt.Sprintf("%d (%d rejected)", r.Spawned, r.Rejected)),
		row("bodies", fmt.Sprintf("%d", r.Bodies)),
		row("merges", fmt.Sprintf("%d", r.Merges)),
		row("model", fmt.Sprintf("%s / %s", settings.Model, settings.Merge)),
		row("sizes", formatRadii(r.Radii)),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("score"), scoreStyle.Render(fmt.Sprintf("%.2f", r.Score.Total()))),
		row("peak", fmt.Sprintf("%.2f", r.PeakScore)),
	}
	if r.TopTier >= 0 {
		lines = append(lines, row("top tier", fmt.Sprintf("%d", r.TopTier)))
	}
	lines = append(lines, row("floor", fmt.Sprintf("%d hits", r.FloorHits)))
	if r.Score.Bonus > 0 {
		lines = append(lines, row("", fmt.Sprintf("radii %.2f + ladder bonus %.0f", r.Score.Radii, r.Score.Bonus)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatRadii lists radius counts in ascending radius order
func formatRadii(radii map[float64]int) string {
	if len(radii) == 0 {
		return "-"
	}
	keys := make([]float64, 0, len(radii))
	for r := range radii {
		keys = append(keys, r)
	}
	sort.Float64s(keys)

	parts := make([]string, len(keys))
	for i, r := range keys {
		parts[i] = fmt.Sprintf("r%g×%d", r, radii[r])
	}
	return strings.Join(parts, " ")
}
