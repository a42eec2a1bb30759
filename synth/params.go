// Package synth renders the two-tone job alert.
//
// The alert alternates between a low and a high sine tone every half cycle, carries a constant
// harmonic at the mean of both frequencies, holds a steady gain and fades slightly over its
// last half second. The rendered signal is normalized to a fixed peak before quantization.
package synth

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

// Params configures the alert. All fields are required; Default fills in the standard alert.
type Params struct {
	Duration   time.Duration        // total length, > 0
	SampleRate alertbeep.SampleRate // samples per second, > 0

	Low   float64       // first tone of each cycle in Hz, > 0
	High  float64       // second tone of each cycle in Hz, > 0
	Cycle time.Duration // length of one low+high cycle, > 0

	HarmonicGain float64 // level of the (Low+High)/2 overlay, >= 0

	Gain     float64       // envelope level before the fade, >= 0
	TailGain float64       // envelope level on the last sample, >= 0
	Fade     time.Duration // length of the closing ramp from Gain to TailGain, >= 0

	Peak float64 // absolute peak after normalization, in (0, 1]
}

// Default returns the standard alert: 5 seconds at 44.1kHz alternating 800Hz and 1200Hz.
func Default() Params {
	return Params{
		Duration:     5 * time.Second,
		SampleRate:   44100,
		Low:          800,
		High:         1200,
		Cycle:        500 * time.Millisecond,
		HarmonicGain: 0.3,
		Gain:         0.9,
		TailGain:     0.7,
		Fade:         500 * time.Millisecond,
		Peak:         0.95,
	}
}

// Format returns the 16-bit mono format the alert is stored in.
func (p Params) Format() alertbeep.Format {
	return alertbeep.Mono16(p.SampleRate)
}

// NumSamples returns round(duration * sampleRate).
func (p Params) NumSamples() int {
	return p.SampleRate.N(p.Duration)
}

// CycleSamples returns round(sampleRate * cycle).
func (p Params) CycleSamples() int {
	return p.SampleRate.N(p.Cycle)
}

// FadeStart returns the index of the first sample of the closing ramp,
// round(sampleRate * (duration - fade)), clamped to [0, NumSamples].
func (p Params) FadeStart() int {
	start := int(math.Round(float64(p.SampleRate) * (p.Duration - p.Fade).Seconds()))
	if start < 0 {
		return 0
	}
	if n := p.NumSamples(); start > n {
		return n
	}
	return start
}

// Step returns the spacing of the time axis in seconds. The axis has NumSamples points evenly
// covering [0, duration), so the last instant is one step short of the duration.
func (p Params) Step() float64 {
	return p.Duration.Seconds() / float64(p.NumSamples())
}

// Validate reports the first violated precondition.
func (p Params) Validate() error {
	switch {
	case p.Duration <= 0:
		return errors.Errorf("synth: duration must be positive, got %v", p.Duration)
	case p.SampleRate <= 0:
		return errors.Errorf("synth: sample rate must be positive, got %d", int(p.SampleRate))
	case !(p.Low > 0) || math.IsInf(p.Low, 0):
		return errors.Errorf("synth: low frequency must be positive, got %v", p.Low)
	case !(p.High > 0) || math.IsInf(p.High, 0):
		return errors.Errorf("synth: high frequency must be positive, got %v", p.High)
	case p.Cycle <= 0:
		return errors.Errorf("synth: cycle must be positive, got %v", p.Cycle)
	case !validGain(p.HarmonicGain):
		return errors.Errorf("synth: harmonic gain must be finite and not negative, got %v", p.HarmonicGain)
	case !validGain(p.Gain) || !validGain(p.TailGain):
		return errors.Errorf("synth: envelope gains must be finite and not negative, got %v and %v", p.Gain, p.TailGain)
	case p.Fade < 0:
		return errors.Errorf("synth: fade must not be negative, got %v", p.Fade)
	case !(p.Peak > 0 && p.Peak <= 1):
		return errors.Errorf("synth: peak must be in (0, 1], got %v", p.Peak)
	}
	if p.NumSamples() < 1 {
		return errors.Errorf("synth: %v at %v is shorter than one sample", p.Duration, p.SampleRate)
	}
	if p.CycleSamples() < 1 {
		return errors.Errorf("synth: cycle %v at %v is shorter than one sample", p.Cycle, p.SampleRate)
	}
	return nil
}

// validGain reports whether x is a finite gain >= 0. NaN is rejected.
func validGain(x float64) bool {
	return x >= 0 && !math.IsInf(x, 1)
}
