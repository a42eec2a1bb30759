package alertbeep

import (
	"fmt"
	"math"
)

// Format is the format of a Buffer or another audio source.
type Format struct {
	// SampleRate is the number of samples per second.
	SampleRate SampleRate

	// NumChannels is the number of channels. The value of 1 is mono, the value of 2 is stereo.
	// The samples should always be interleaved.
	NumChannels int

	// Precision is the number of bytes used to encode a single sample.
	Precision int
}

// Mono16 returns the 16-bit mono format used for alert files.
func Mono16(sr SampleRate) Format {
	return Format{SampleRate: sr, NumChannels: 1, Precision: 2}
}

// Width returns the number of bytes per one sample (all channels).
//
// This is equal to f.NumChannels * f.Precision.
func (f Format) Width() int {
	return f.NumChannels * f.Precision
}

// EncodeSigned encodes a single sample in f.Width() bytes to p in signed format.
//
// Values are scaled by the largest positive integer of the precision and rounded to the
// nearest integer, so 16-bit samples land in [-32767, 32767].
func (f Format) EncodeSigned(p []byte, sample [2]float64) (n int) {
	return f.encode(true, p, sample)
}

// EncodeUnsigned encodes a single sample in f.Width() bytes to p in unsigned format.
func (f Format) EncodeUnsigned(p []byte, sample [2]float64) (n int) {
	return f.encode(false, p, sample)
}

// DecodeSigned decodes a single sample encoded in f.Width() bytes from p in signed format.
func (f Format) DecodeSigned(p []byte) (sample [2]float64, n int) {
	return f.decode(true, p)
}

// DecodeUnsigned decodes a single sample encoded in f.Width() bytes from p in unsigned format.
func (f Format) DecodeUnsigned(p []byte) (sample [2]float64, n int) {
	return f.decode(false, p)
}

func (f Format) encode(signed bool, p []byte, sample [2]float64) (n int) {
	switch {
	case f.NumChannels == 1:
		x := norm((sample[0] + sample[1]) / 2)
		p = p[encodeFloat(signed, p, f.Precision, x):]
	case f.NumChannels >= 2:
		for c := range sample {
			x := norm(sample[c])
			p = p[encodeFloat(signed, p, f.Precision, x):]
		}
		for c := len(sample); c < f.NumChannels; c++ {
			p = p[encodeFloat(signed, p, f.Precision, 0):]
		}
	default:
		panic(fmt.Errorf("format: encode: invalid number of channels: %d", f.NumChannels))
	}
	return f.Width()
}

func (f Format) decode(signed bool, p []byte) (sample [2]float64, n int) {
	switch {
	case f.NumChannels == 1:
		x, _ := decodeFloat(signed, p, f.Precision)
		return [2]float64{x, x}, f.Width()
	case f.NumChannels >= 2:
		for c := range sample {
			x, n := decodeFloat(signed, p, f.Precision)
			sample[c] = x
			p = p[n:]
		}
		for c := len(sample); c < f.NumChannels; c++ {
			_, n := decodeFloat(signed, p, f.Precision)
			p = p[n:]
		}
		return sample, f.Width()
	default:
		panic(fmt.Errorf("format: decode: invalid number of channels: %d", f.NumChannels))
	}
}

// little endian
func encodeFloat(signed bool, p []byte, precision int, x float64) (n int) {
	var xUint64 uint64
	if signed {
		xUint64 = floatToSigned(precision, x)
	} else {
		xUint64 = floatToUnsigned(precision, x)
	}
	for i := 0; i < precision; i++ {
		p[i] = byte(xUint64)
		xUint64 >>= 8
	}
	return precision
}

func decodeFloat(signed bool, p []byte, precision int) (x float64, n int) {
	var xUint64 uint64
	for i := precision - 1; i >= 0; i-- {
		xUint64 <<= 8
		xUint64 += uint64(p[i])
	}
	if signed {
		return signedToFloat(precision, xUint64), precision
	}
	return unsignedToFloat(precision, xUint64), precision
}

func floatToSigned(precision int, x float64) uint64 {
	return uint64(int64(math.Round(x * float64(uint64(1)<<uint(precision*8-1)-1))))
}

func floatToUnsigned(precision int, x float64) uint64 {
	return uint64(math.Round((x + 1) / 2 * float64(uint64(1)<<uint(precision*8)-1)))
}

func signedToFloat(precision int, xUint64 uint64) float64 {
	if xUint64 >= 1<<uint(precision*8-1) {
		return -float64(uint64(1)<<uint(precision*8)-xUint64) / float64(uint64(1)<<uint(precision*8-1)-1)
	}
	return float64(xUint64) / float64(uint64(1)<<uint(precision*8-1)-1)
}

func unsignedToFloat(precision int, xUint64 uint64) float64 {
	return float64(xUint64)/float64(uint64(1)<<uint(precision*8)-1)*2 - 1
}

func norm(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > +1 {
		return +1
	}
	return x
}

// Buffer is a mono in-memory store of samples. The value of each sample is the average of the
// two channels of the Streamer it was appended from.
//
// Unlike an encoded buffer, Buffer keeps full float64 precision, so it can be measured (Peak)
// and rescaled before it is quantized.
type Buffer struct {
	f    Format
	data []float64
	tmp  [][2]float64
}

// NewBuffer creates a new empty Buffer which stores samples in the provided format.
func NewBuffer(f Format) *Buffer {
	return &Buffer{f: f}
}

// Format returns the format of the Buffer.
func (b *Buffer) Format() Format {
	return b.f
}

// Len returns the number of samples currently in the Buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// At returns the i-th sample.
func (b *Buffer) At(i int) float64 {
	return b.data[i]
}

// Samples returns a copy of all samples in the Buffer.
func (b *Buffer) Samples() []float64 {
	return append([]float64(nil), b.data...)
}

// Append adds all audio data from the given Streamer to the end of the Buffer.
//
// The Streamer will be drained when this method finishes.
func (b *Buffer) Append(s Streamer) {
	if b.tmp == nil {
		b.tmp = make([][2]float64, 512)
	}
	for {
		n, ok := s.Stream(b.tmp)
		if !ok {
			break
		}
		for _, sample := range b.tmp[:n] {
			b.data = append(b.data, (sample[0]+sample[1])/2)
		}
	}
}

// Peak returns the largest absolute sample value. NaN samples make the result NaN.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, x := range b.data {
		if math.IsNaN(x) {
			return math.NaN()
		}
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	return peak
}

// PCM16 quantizes the samples to signed 16-bit integers by rounding x*32767 to the nearest
// integer. Samples outside [-1, +1] are clipped first.
func (b *Buffer) PCM16() []int16 {
	out := make([]int16, len(b.data))
	for i, x := range b.data {
		out[i] = int16(math.Round(norm(x) * (1<<15 - 1)))
	}
	return out
}

// Streamer returns a StreamSeeker which streams samples in the given interval (including from,
// excluding to). If the Buffer is appended to or popped after calling this method, the returned
// Streamer will not be affected.
func (b *Buffer) Streamer(from, to int) StreamSeeker {
	return &bufferStreamer{
		data: b.data[from:to],
		pos:  0,
	}
}

type bufferStreamer struct {
	data []float64
	pos  int
}

func (bs *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if bs.pos >= len(bs.data) {
		return 0, false
	}
	for i := range samples {
		if bs.pos >= len(bs.data) {
			break
		}
		samples[i] = [2]float64{bs.data[bs.pos], bs.data[bs.pos]}
		bs.pos++
		n++
	}
	return n, true
}

func (bs *bufferStreamer) Err() error {
	return nil
}

func (bs *bufferStreamer) Len() int {
	return len(bs.data)
}

func (bs *bufferStreamer) Position() int {
	return bs.pos
}

func (bs *bufferStreamer) Seek(p int) error {
	if p < 0 || len(bs.data) < p {
		return fmt.Errorf("buffer: seek position %v out of range [%v, %v]", p, 0, len(bs.data))
	}
	bs.pos = p
	return nil
}
