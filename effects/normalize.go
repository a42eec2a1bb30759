package effects

import "github.com/fieldcrew/alertbeep"

// Normalize rescales s so that a sample of absolute value peak comes out as target. Each
// sample x is computed as x/peak*target, so the loudest sample lands exactly on target.
//
// peak must be positive. The returned Streamer propagates s's errors through Err.
func Normalize(s alertbeep.Streamer, peak, target float64) alertbeep.Streamer {
	return &normalize{s: s, peak: peak, target: target}
}

type normalize struct {
	s            alertbeep.Streamer
	peak, target float64
}

func (nz *normalize) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = nz.s.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] = samples[i][0] / nz.peak * nz.target
		samples[i][1] = samples[i][1] / nz.peak * nz.target
	}
	return n, ok
}

func (nz *normalize) Err() error {
	return nz.s.Err()
}
