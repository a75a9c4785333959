package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/bounce/parameter"
)

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the compiled-in audio settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundChime: parameter.MergeChimeVolume,
			SoundThud:  parameter.ThudVolume,
		},
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("BOUNCE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100 converted to 0.0-1.0
	if volume := os.Getenv("BOUNCE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	// Effect volumes as JSON, e.g. {"chime":0.5,"thud":0}
	if effectVols := os.Getenv("BOUNCE_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for st := SoundType(0); st < soundTypeCount; st++ {
				if v, ok := volumes[st.String()]; ok {
					cfg.EffectVolumes[st] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("BOUNCE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
