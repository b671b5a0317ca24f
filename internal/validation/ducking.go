package validation

// DuckingOptions lowers background audio while a voice track is present.
// The voice drives a sidechain compressor applied to the other tracks.
type DuckingOptions struct {
	// Voice is the source of the track that triggers ducking. Empty selects
	// the audio of the first video layer.
	Voice string `json:"voice,omitempty" toml:"voice" yaml:"voice"`

	// Level is the share of the music kept while ducked, 0..1.
	Level float64 `json:"level" toml:"level" yaml:"level"`

	// VoiceBoost multiplies the voice volume, 0..3.
	VoiceBoost float64 `json:"voiceBoost" toml:"voice_boost" yaml:"voiceBoost"`

	FadeIn  float64 `json:"fadeIn" toml:"fade_in" yaml:"fadeIn"`
	FadeOut float64 `json:"fadeOut" toml:"fade_out" yaml:"fadeOut"`

	// Threshold is the voice level, in dB, at which ducking starts.
	Threshold float64 `json:"threshold" toml:"threshold" yaml:"threshold"`
	Ratio     float64 `json:"ratio" toml:"ratio" yaml:"ratio"`

	// FrequencyLow and FrequencyHigh band-limit the sidechain to the voice
	// range, in Hz.
	FrequencyLow  float64 `json:"frequencyLow" toml:"frequency_low" yaml:"frequencyLow"`
	FrequencyHigh float64 `json:"frequencyHigh" toml:"frequency_high" yaml:"frequencyHigh"`
}

// DefaultDucking returns a speech-over-music setup.
func DefaultDucking() DuckingOptions {
	return DuckingOptions{
		Level:         0.3,
		VoiceBoost:    1,
		FadeIn:        0.1,
		FadeOut:       0.5,
		Threshold:     -30,
		Ratio:         4,
		FrequencyLow:  300,
		FrequencyHigh: 3000,
	}
}

// Normalized fills the fields whose zero value is out of range: ratio and
// the frequency band. A zero level, voice boost, threshold or fade is a
// setting and is kept; start from DefaultDucking to get the usual values.
func (o DuckingOptions) Normalized() DuckingOptions {
	d := DefaultDucking()
	if o.Ratio == 0 {
		o.Ratio = d.Ratio
	}
	if o.FrequencyLow == 0 {
		o.FrequencyLow = d.FrequencyLow
	}
	if o.FrequencyHigh == 0 {
		o.FrequencyHigh = d.FrequencyHigh
	}
	return o
}

// ValidateDucking rejects out-of-range ducking options. The returned error
// wraps ErrValidation and a *RangeError naming the first violation.
func ValidateDucking(o DuckingOptions) error {
	const component = "ducking"
	switch {
	case !within(o.Level, 0, 1):
		return violation(component, "level", o.Level, "Ducking level must be between 0 and 1")
	case !within(o.VoiceBoost, 0, 3):
		return violation(component, "voiceBoost", o.VoiceBoost, "Voice boost must be between 0 and 3")
	case !(o.FadeIn >= 0):
		return violation(component, "fadeIn", o.FadeIn, "Fade in time must be non-negative")
	case !(o.FadeOut >= 0):
		return violation(component, "fadeOut", o.FadeOut, "Fade out time must be non-negative")
	case !within(o.Threshold, -60, 0):
		return violation(component, "threshold", o.Threshold, "Detection threshold must be between -60 and 0 dB")
	case !within(o.Ratio, 1, 20):
		return violation(component, "ratio", o.Ratio, "Compressor ratio must be between 1 and 20")
	case !within(o.FrequencyLow, 20, 20000) || !within(o.FrequencyHigh, 20, 20000):
		return violation(component, "frequencyRange", [2]float64{o.FrequencyLow, o.FrequencyHigh},
			"Frequency range must be within 20 and 20000 Hz")
	case o.FrequencyLow >= o.FrequencyHigh:
		return violation(component, "frequencyRange", [2]float64{o.FrequencyLow, o.FrequencyHigh},
			"Invalid frequency range: low (%g) must be below high (%g)", o.FrequencyLow, o.FrequencyHigh)
	}
	return nil
}
