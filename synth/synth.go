package synth

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/effects"
	"github.com/fieldcrew/alertbeep/generators"
)

// ErrSilent is returned when the raw signal has no amplitude to normalize, for example when
// both envelope gains are zero.
var ErrSilent = errors.New("synth: signal is silent, nothing to normalize")

// Tone returns the un-normalized alert: the alternating tone plus the harmonic overlay, shaped
// by the envelope. The Streamer ends after NumSamples samples.
func Tone(p Params) (alertbeep.Streamer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	step := p.Step()
	alternating, err := generators.AlternatingTone(step, p.Low, p.High, p.CycleSamples())
	if err != nil {
		return nil, errors.Wrap(err, "synth")
	}
	harmonic, err := generators.SineTone(step, (p.Low+p.High)/2)
	if err != nil {
		return nil, errors.Wrap(err, "synth: harmonic")
	}
	tone := alertbeep.Mix(alternating, &effects.Gain{Streamer: harmonic, Gain: p.HarmonicGain})
	return alertbeep.Take(p.NumSamples(), effects.Envelope(tone, fade(p))), nil
}

// Render synthesizes the alert and normalizes it so that its absolute peak equals p.Peak.
func Render(p Params) (*alertbeep.Buffer, error) {
	tone, err := Tone(p)
	if err != nil {
		return nil, err
	}
	raw := alertbeep.NewBuffer(p.Format())
	raw.Append(tone)

	peak := raw.Peak()
	if !(peak > 0) || math.IsInf(peak, 0) {
		return nil, ErrSilent
	}

	out := alertbeep.NewBuffer(p.Format())
	out.Append(effects.Normalize(raw.Streamer(0, raw.Len()), peak, p.Peak))
	return out, nil
}

// Synthesize renders the alert and quantizes it to 16-bit samples, round(x*32767).
func Synthesize(p Params) ([]int16, error) {
	b, err := Render(p)
	if err != nil {
		return nil, err
	}
	return b.PCM16(), nil
}

// Envelope returns the gain applied to every sample of the alert.
func Envelope(p Params) []float64 {
	return fade(p).Curve()
}

func fade(p Params) effects.Fade {
	return effects.NewFade(p.NumSamples(), p.FadeStart(), p.Gain, p.TailGain)
}
