// Package generators produces tones as infinite Streamers.
//
// Every generator evaluates its waveform at the instants t = i*step, where i is the index of
// the sample since the generator was created. Deriving time from the index, rather than from an
// accumulated phase, keeps long renders free of drift and makes two generators created with the
// same arguments stream bit-identical samples.
package generators

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

type sineGenerator struct {
	freq float64
	step float64
	i    int
}

// SineTone creates a streamer which will produce an infinite sine wave with the given frequency.
// step is the spacing between sample instants in seconds, usually 1/sampleRate.
// use other wrappers of this package to change amplitude or add time limit.
// frequencies above half the sample rate are not rejected, they alias like any sampled sine.
func SineTone(step, freq float64) (alertbeep.Streamer, error) {
	if err := checkTone(step, freq); err != nil {
		return nil, err
	}
	return &sineGenerator{freq: freq, step: step}, nil
}

func (g *sineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.i) * g.step
		v := math.Sin(2 * math.Pi * g.freq * t)
		samples[i][0] = v
		samples[i][1] = v
		g.i++
	}
	return len(samples), true
}

func (*sineGenerator) Err() error {
	return nil
}

func checkTone(step, freq float64) error {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return errors.Errorf("tone generator: invalid sample step %v", step)
	}
	if freq <= 0 || math.IsNaN(freq) {
		return errors.Errorf("tone generator: invalid frequency %v", freq)
	}
	return nil
}
