package alertbeep_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/alertbeep"
)

func TestFormatEncodeDecode(t *testing.T) {
	formats := make(chan alertbeep.Format)
	go func() {
		defer close(formats)
		for _, sampleRate := range []alertbeep.SampleRate{100, 2347, 44100, 48000} {
			for _, numChannels := range []int{1, 2, 3, 4} {
				for _, precision := range []int{1, 2, 3, 4, 5, 6} {
					formats <- alertbeep.Format{
						SampleRate:  sampleRate,
						NumChannels: numChannels,
						Precision:   precision,
					}
				}
			}
		}
	}()

	for format := range formats {
		for i := 0; i < 20; i++ {
			deviation := 2.0 / (math.Pow(2, float64(format.Precision)*8) - 2)
			sample := [2]float64{rand.Float64()*2 - 1, rand.Float64()*2 - 1}

			tmp := make([]byte, format.Width())
			format.EncodeSigned(tmp, sample)
			decoded, _ := format.DecodeSigned(tmp)

			if format.NumChannels == 1 {
				if math.Abs((sample[0]+sample[1])/2-decoded[0]) > deviation || decoded[0] != decoded[1] {
					t.Fatalf("signed decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			} else {
				if math.Abs(sample[0]-decoded[0]) > deviation || math.Abs(sample[1]-decoded[1]) > deviation {
					t.Fatalf("signed decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			}

			format.EncodeUnsigned(tmp, sample)
			decoded, _ = format.DecodeUnsigned(tmp)

			if format.NumChannels == 1 {
				if math.Abs((sample[0]+sample[1])/2-decoded[0]) > deviation || decoded[0] != decoded[1] {
					t.Fatalf("unsigned decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			} else {
				if math.Abs(sample[0]-decoded[0]) > deviation || math.Abs(sample[1]-decoded[1]) > deviation {
					t.Fatalf("unsigned decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			}
		}
	}
}

func TestFormatEncodeSigned16Rounds(t *testing.T) {
	f := alertbeep.Mono16(44100)
	p := make([]byte, f.Width())

	for _, tc := range []struct {
		x    float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.95, 31129},   // 31128.65
		{-0.95, -31129}, // -31128.65
		{2, 32767},
	} {
		f.EncodeSigned(p, [2]float64{tc.x, tc.x})
		got := int16(uint16(p[0]) | uint16(p[1])<<8)
		assert.Equal(t, tc.want, got, "x=%v", tc.x)
	}
}

func TestBufferAppend(t *testing.T) {
	b := alertbeep.NewBuffer(alertbeep.Mono16(44100))
	b.Append(alertbeep.Silence(768))
	if b.Len() != 768 {
		t.Fatalf("buffer length isn't equal to appended stream length: expected: %v, actual: %v", 768, b.Len())
	}
	b.Append(alertbeep.Silence(256))
	if b.Len() != 1024 {
		t.Fatalf("buffer length isn't the sum of both appends: expected: %v, actual: %v", 1024, b.Len())
	}
}

func TestBufferAppendAveragesChannels(t *testing.T) {
	s, data := randomDataStreamer(1500)
	b := alertbeep.NewBuffer(alertbeep.Mono16(44100))
	b.Append(s)

	require.Equal(t, len(data), b.Len())
	for i := range data {
		assert.Equal(t, (data[i][0]+data[i][1])/2, b.At(i))
	}
}

func TestBufferPeakAndPCM16(t *testing.T) {
	b := alertbeep.NewBuffer(alertbeep.Mono16(8000))
	b.Append(alertbeep.StreamerFunc(func() func([][2]float64) (int, bool) {
		values := []float64{0.5, -0.95, 0.25, 1.5}
		return func(samples [][2]float64) (n int, ok bool) {
			if len(values) == 0 {
				return 0, false
			}
			for n < len(samples) && len(values) > 0 {
				samples[n] = [2]float64{values[0], values[0]}
				values = values[1:]
				n++
			}
			return n, true
		}
	}()))

	assert.Equal(t, 1.5, b.Peak())
	assert.Equal(t, []int16{16384, -31129, 8192, 32767}, b.PCM16())

	silent := alertbeep.NewBuffer(alertbeep.Mono16(8000))
	silent.Append(alertbeep.Silence(10))
	assert.Equal(t, 0.0, silent.Peak())
}

func TestBufferStreamerSeek(t *testing.T) {
	s, data := randomDataStreamer(2000)
	b := alertbeep.NewBuffer(alertbeep.Mono16(44100))
	b.Append(s)

	st := b.Streamer(100, 1100)
	require.Equal(t, 1000, st.Len())

	got := collect(st)
	require.Len(t, got, 1000)
	for i := range got {
		want := (data[100+i][0] + data[100+i][1]) / 2
		require.Equal(t, [2]float64{want, want}, got[i])
	}
	assert.Equal(t, 1000, st.Position())

	require.NoError(t, st.Seek(10))
	assert.Equal(t, 990, len(collect(st)))
	assert.Error(t, st.Seek(1001))
	assert.Error(t, st.Seek(-1))
}
