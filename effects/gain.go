// Package effects implements gain stages that wrap other Streamers.
package effects

import "github.com/fieldcrew/alertbeep"

// Gain amplifies the wrapped Streamer by a constant linear factor. A Gain of 1 changes
// nothing, 0 silences the Streamer.
type Gain struct {
	Streamer alertbeep.Streamer
	Gain     float64
}

// Stream streams the wrapped Streamer amplified by Gain.
func (g *Gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.Streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.Gain
		samples[i][1] *= g.Gain
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (g *Gain) Err() error {
	return g.Streamer.Err()
}
