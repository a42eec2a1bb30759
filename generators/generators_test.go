package generators_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/generators"
)

func take(t *testing.T, s alertbeep.Streamer, n int) []float64 {
	t.Helper()
	b := alertbeep.NewBuffer(alertbeep.Mono16(1000))
	b.Append(alertbeep.Take(n, s))
	require.Equal(t, n, b.Len())
	return b.Samples()
}

func TestSineTone(t *testing.T) {
	const step = 1.0 / 44100
	s, err := generators.SineTone(step, 440)
	require.NoError(t, err)

	freq := 440.0
	got := take(t, s, 5000)
	for i, v := range got {
		require.Equal(t, math.Sin(2*math.Pi*freq*(float64(i)*step)), v, "sample %d", i)
	}
}

func TestSineToneRejectsInvalidArguments(t *testing.T) {
	_, err := generators.SineTone(1.0/1000, 800)
	assert.NoError(t, err, "aliasing tones are allowed")
	_, err = generators.SineTone(0, 100)
	assert.Error(t, err)
	_, err = generators.SineTone(1.0/1000, -1)
	assert.Error(t, err)
}

func TestAlternatingToneSwitchesPerCycle(t *testing.T) {
	const step = 1.0 / 1000
	s, err := generators.AlternatingTone(step, 80, 120, 500)
	require.NoError(t, err)

	got := take(t, s, 1000)
	for i, v := range got {
		freq := 120.0
		switch {
		case i < 250, i >= 500 && i < 750:
			freq = 80
		}
		want := math.Sin(2 * math.Pi * freq * (float64(i) * step))
		require.Equal(t, want, v, "sample %d", i)
	}
}

func TestLow(t *testing.T) {
	for _, tc := range []struct {
		i, cycle int
		low      bool
	}{
		{0, 500, true},
		{249, 500, true},
		{250, 500, false},
		{499, 500, false},
		{500, 500, true},
		{749, 500, true},
		{750, 500, false},
		{0, 1, true},
		{1, 1, true},
		{1, 3, true},
		{2, 3, false},
	} {
		assert.Equal(t, tc.low, generators.Low(tc.i, tc.cycle), "i=%d cycle=%d", tc.i, tc.cycle)
	}
}

func TestAlternatingToneRejectsBadCycle(t *testing.T) {
	_, err := generators.AlternatingTone(1.0/1000, 80, 120, 0)
	assert.Error(t, err)
	_, err = generators.AlternatingTone(1.0/1000, 80, 0, 10)
	assert.Error(t, err)
}

func TestGeneratorsAreRepeatable(t *testing.T) {
	a, err := generators.AlternatingTone(1.0/8000, 800, 1200, 4000)
	require.NoError(t, err)
	b, err := generators.AlternatingTone(1.0/8000, 800, 1200, 4000)
	require.NoError(t, err)

	assert.Equal(t, take(t, a, 9000), take(t, b, 9000))
}
