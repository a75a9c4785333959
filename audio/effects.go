package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/vmath"
)

// Tone returns a sine at freq lasting d; a frequency the rate cannot carry yields silence
func Tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, sine)
}

// Noise returns white noise in [-1,1) lasting d, reproducible for a seed
func Noise(d time.Duration, rate beep.SampleRate, seed uint64) beep.Streamer {
	rng := vmath.NewFastRand(seed)
	return beep.Take(rate.N(d), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}))
}

// Shape applies a linear attack and release to the first d of s and cuts it there
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	att := rate.N(attack)
	rel := min(rate.N(release), total)
	relStart := total - rel

	gain := func(p int) float64 {
		switch {
		case rel > 0 && p >= relStart:
			return float64(total-p) / float64(rel)
		case p < att:
			return float64(p) / float64(att)
		}
		return 1
	}

	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		if left := total - pos; len(samples) > left {
			samples = samples[:left]
		}
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := gain(pos)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf, so 0 is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimeFrequency returns the merge chime pitch for a ladder tier
func ChimeFrequency(tier int) float64 {
	if tier < 0 {
		tier = 0
	}
	return parameter.MergeChimeBaseHz * math.Pow(parameter.MergeChimeTierRatio, float64(tier))
}

// ThudGain maps impact speed to [0,1]; below ThudMinSpeed the thud is silent
func ThudGain(speed float64) float64 {
	if speed < parameter.ThudMinSpeed {
		return 0
	}
	return vmath.Clamp((speed-parameter.ThudMinSpeed)/(parameter.ThudFullSpeed-parameter.ThudMinSpeed), 0.2, 1)
}

// CreateMergeChime generates a bell-like ping whose pitch rises with tier
func CreateMergeChime(cfg *AudioConfig, tier int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := ChimeFrequency(tier)
	d := parameter.MergeChimeDuration

	fund := Shape(Tone(freq, d, rate), d, parameter.MergeChimeAttack, parameter.MergeChimeRelease, rate)
	over := Shape(Tone(freq*2, d, rate), d, parameter.MergeChimeAttack, parameter.MergeChimeRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)

	vol := cfg.EffectVolumes[SoundChime] * cfg.MasterVolume
	return newVolume(mixed, vol)
}

// CreateThud generates a low knock scaled by impact speed
func CreateThud(cfg *AudioConfig, speed float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ThudDuration

	body := Shape(Tone(parameter.ThudHz, d, rate), d, parameter.ThudAttack, parameter.ThudRelease, rate)
	click := Shape(Noise(d/3, rate, uint64(speed*1000)+1), d/3, 0, d/3, rate)

	mixed := beep.Mix(
		newVolume(body, 0.85),
		newVolume(click, 0.15),
	)

	vol := cfg.EffectVolumes[SoundThud] * cfg.MasterVolume * ThudGain(speed)
	return newVolume(mixed, vol)
}
