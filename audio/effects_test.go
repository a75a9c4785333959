package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the total sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never drained")
	return 0, 0
}

// constant is a never-ending stream of full-scale samples, exposing gain shaping directly
func constant() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(48000)
	total, peak := drain(t, Tone(440, 50*time.Millisecond, rate))
	if total != rate.N(50*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(50*time.Millisecond), total)
	}
	if peak == 0 || peak > 1.0 {
		t.Errorf("Expected sine peak in (0,1], got %f", peak)
	}
}

func TestToneAboveNyquistIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	total, peak := drain(t, Tone(6000, 20*time.Millisecond, rate))
	if total != rate.N(20*time.Millisecond) {
		t.Errorf("Expected %d samples of silence, got %d", rate.N(20*time.Millisecond), total)
	}
	if peak != 0 {
		t.Errorf("Expected silence, peak %f", peak)
	}
}

func TestNoiseRangeAndSeed(t *testing.T) {
	rate := beep.SampleRate(48000)
	_, peak := drain(t, Noise(20*time.Millisecond, rate, 9))
	if peak > 1.0 || peak == 0 {
		t.Errorf("Expected noise in (0,1], peak %f", peak)
	}

	a := make([][2]float64, 64)
	b := make([][2]float64, 64)
	Noise(time.Second, rate, 5).Stream(a)
	Noise(time.Second, rate, 5).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Expected identical noise for one seed, diverged at %d", i)
		}
		if a[i][0] != a[i][1] {
			t.Fatalf("Sample %d: expected mono output", i)
		}
	}
}

// TestShapeEnvelope verifies attack ramps from silence and release ends near silence
func TestShapeEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := Shape(constant(), d, 20*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 128)
	n, ok := env.Stream(buf)
	if n != 100 || !ok {
		t.Fatalf("Expected 100 samples ok, got %d ok=%v", n, ok)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[10][0] != 0.5 {
		t.Errorf("Expected half gain mid-attack, got %f", buf[10][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("Expected full gain in sustain, got %f", buf[50][0])
	}
	if buf[99][0] > 0.1 {
		t.Errorf("Expected near-silence at end of release, got %f", buf[99][0])
	}
	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("Expected drained envelope, got %d ok=%v", n, ok)
	}
}

func TestChimeFrequencyRisesWithTier(t *testing.T) {
	prev := 0.0
	for tier := 0; tier < 8; tier++ {
		f := ChimeFrequency(tier)
		if f <= prev {
			t.Errorf("Expected tier %d pitch above %f, got %f", tier, prev, f)
		}
		prev = f
	}
	if ChimeFrequency(-3) != ChimeFrequency(0) {
		t.Error("Expected negative tier to clamp to tier 0")
	}
}

func TestThudGain(t *testing.T) {
	if g := ThudGain(1); g != 0 {
		t.Errorf("Expected silent soft impact, got %f", g)
	}
	if g := ThudGain(1000); g != 1 {
		t.Errorf("Expected full gain for hard impact, got %f", g)
	}
	if ThudGain(10) > ThudGain(20) {
		t.Error("Expected gain to grow with speed")
	}
}

func TestCreateEffectsDrain(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 1

	total, peak := drain(t, CreateMergeChime(cfg, 3))
	if total == 0 || peak == 0 {
		t.Errorf("Expected audible chime, got %d samples peak %f", total, peak)
	}
	if peak > 1.0 {
		t.Errorf("Expected chime within [-1,1], peak %f", peak)
	}

	total, peak = drain(t, CreateThud(cfg, 30))
	if total == 0 || peak == 0 {
		t.Errorf("Expected audible thud, got %d samples peak %f", total, peak)
	}
}

func TestMutedEffectIsSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	_, peak := drain(t, CreateMergeChime(cfg, 0))
	if peak != 0 {
		t.Errorf("Expected silence at zero master volume, peak %f", peak)
	}
}
