package effects

import "github.com/fieldcrew/alertbeep"

// Fade is a gain curve over Len samples. It holds From until Start and then ramps linearly to
// To, reaching To exactly on the last sample.
type Fade struct {
	Len   int
	Start int
	From  float64
	To    float64
}

// NewFade returns a Fade over n samples whose ramp begins at start. start is clamped to [0, n],
// so a fade longer than the whole sound ramps across all of it.
func NewFade(n, start int, from, to float64) Fade {
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	return Fade{Len: n, Start: start, From: from, To: to}
}

// At returns the gain of the i-th sample.
func (f Fade) At(i int) float64 {
	if i < f.Start {
		return f.From
	}
	span := f.Len - f.Start
	switch {
	case span <= 1:
		return f.From
	case i >= f.Len-1:
		return f.To
	}
	step := (f.To - f.From) / float64(span-1)
	return float64(i-f.Start)*step + f.From
}

// Curve returns the gains of all samples.
func (f Fade) Curve() []float64 {
	if f.Len <= 0 {
		return nil
	}
	curve := make([]float64, f.Len)
	for i := range curve {
		curve[i] = f.At(i)
	}
	return curve
}

// Envelope multiplies every sample of s by the gain of the Fade at that sample's position.
//
// The returned Streamer propagates s's errors through Err.
func Envelope(s alertbeep.Streamer, f Fade) alertbeep.Streamer {
	return &envelope{s: s, f: f}
}

type envelope struct {
	s   alertbeep.Streamer
	f   Fade
	pos int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range samples[:n] {
		g := e.f.At(e.pos + i)
		samples[i][0] *= g
		samples[i][1] *= g
	}
	e.pos += n
	return n, ok
}

func (e *envelope) Err() error {
	return e.s.Err()
}
