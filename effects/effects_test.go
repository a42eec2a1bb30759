package effects_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/effects"
)

// ones streams n samples of value v.
func ones(n int, v float64) alertbeep.Streamer {
	return alertbeep.StreamerFunc(func(samples [][2]float64) (k int, ok bool) {
		if n == 0 {
			return 0, false
		}
		for k < len(samples) && n > 0 {
			samples[k] = [2]float64{v, v}
			k++
			n--
		}
		return k, true
	})
}

func render(s alertbeep.Streamer) []float64 {
	b := alertbeep.NewBuffer(alertbeep.Mono16(44100))
	b.Append(s)
	return b.Samples()
}

func TestGain(t *testing.T) {
	got := render(&effects.Gain{Streamer: ones(700, 0.5), Gain: 0.3})
	require.Len(t, got, 700)
	for _, v := range got {
		assert.Equal(t, 0.5*0.3, v)
	}
}

func TestFadeHoldsThenRamps(t *testing.T) {
	f := effects.NewFade(220500, 198450, 0.9, 0.7)
	curve := f.Curve()
	require.Len(t, curve, 220500)

	for i := 0; i < 198450; i++ {
		require.Equal(t, 0.9, curve[i], "sample %d", i)
	}
	assert.Equal(t, 0.9, curve[198450])
	assert.Equal(t, 0.7, curve[220499])
	for i := 198451; i < len(curve); i++ {
		require.LessOrEqual(t, curve[i], curve[i-1], "sample %d", i)
	}
	assert.InDelta(t, 0.8, curve[198450+11025], 1e-5)
}

func TestFadeClampsStart(t *testing.T) {
	f := effects.NewFade(100, -50, 0.9, 0.7)
	assert.Equal(t, 0, f.Start)
	assert.Equal(t, 0.9, f.At(0))
	assert.Equal(t, 0.7, f.At(99))

	f = effects.NewFade(100, 150, 0.9, 0.7)
	assert.Equal(t, 100, f.Start)
	for _, g := range f.Curve() {
		assert.Equal(t, 0.9, g)
	}
}

func TestFadeSingleSampleRamp(t *testing.T) {
	f := effects.NewFade(10, 9, 0.9, 0.7)
	assert.Equal(t, 0.9, f.At(9))

	f = effects.NewFade(1, 0, 0.9, 0.7)
	assert.Equal(t, []float64{0.9}, f.Curve())
}

func TestEnvelopeAppliesCurveAcrossCalls(t *testing.T) {
	f := effects.NewFade(1000, 600, 1, 0)
	got := render(effects.Envelope(ones(1000, 2), f))
	require.Len(t, got, 1000)
	for i, v := range got {
		require.Equal(t, 2*f.At(i), v, "sample %d", i)
	}
}

func TestNormalize(t *testing.T) {
	values := []float64{0.1, -0.4, 0.2, 0.4, -0.05}
	src := alertbeep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if len(values) == 0 {
			return 0, false
		}
		for n < len(samples) && len(values) > 0 {
			samples[n] = [2]float64{values[0], values[0]}
			values = values[1:]
			n++
		}
		return n, true
	})

	got := render(effects.Normalize(src, 0.4, 0.95))
	require.Len(t, got, 5)
	assert.Equal(t, -0.95, got[1])
	assert.Equal(t, 0.95, got[3])
	peak := 0.0
	for _, v := range got {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.Equal(t, 0.95, peak)
	assert.InDelta(t, 0.2375, got[0], 1e-12)
}
