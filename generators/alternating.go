package generators

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

type alternatingGenerator struct {
	low, high float64
	step      float64
	cycle     int
	i         int
}

// AlternatingTone creates a streamer which switches between two sine tones. Every cycle samples
// start with a half of the low tone followed by a half of the high tone.
//
// The switch is decided by the sample index: sample i plays the low tone when
// (i mod cycle)/cycle < 0.5. Both tones are evaluated at the absolute instant i*step, so the
// waveform jumps at each switch instead of continuing the previous phase.
func AlternatingTone(step, low, high float64, cycle int) (alertbeep.Streamer, error) {
	if err := checkTone(step, low); err != nil {
		return nil, errors.Wrap(err, "low tone")
	}
	if err := checkTone(step, high); err != nil {
		return nil, errors.Wrap(err, "high tone")
	}
	if cycle <= 0 {
		return nil, errors.Errorf("tone generator: cycle must be at least one sample, got %d", cycle)
	}
	return &alternatingGenerator{low: low, high: high, step: step, cycle: cycle}, nil
}

// Low reports whether sample i of an alternating tone with the given cycle plays the low tone.
func Low(i, cycle int) bool {
	return float64(i%cycle)/float64(cycle) < 0.5
}

func (g *alternatingGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		freq := g.high
		if Low(g.i, g.cycle) {
			freq = g.low
		}
		t := float64(g.i) * g.step
		v := math.Sin(2 * math.Pi * freq * t)
		samples[i][0] = v
		samples[i][1] = v
		g.i++
	}
	return len(samples), true
}

func (*alternatingGenerator) Err() error {
	return nil
}
