// Package flac implements audio data decoding in FLAC format.
package flac

import (
	"io"

	"github.com/mewkiz/flac"
	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

// Decode takes a ReadCloser containing audio data in FLAC format and returns a StreamSeekCloser,
// which streams that audio. Seeking is not supported.
//
// Do not close the supplied ReadSeekCloser, instead, use the Close method of the returned
// StreamSeekCloser when you want to release the resources.
func Decode(rc io.ReadCloser) (s alertbeep.StreamSeekCloser, format alertbeep.Format, err error) {
	d := decoder{rc: rc}
	defer func() { // hacky way to always close rc if an error occurred
		if err != nil {
			d.rc.Close()
		}
	}()
	d.stream, err = flac.New(rc)
	if err != nil {
		return nil, alertbeep.Format{}, errors.Wrap(err, "flac")
	}
	bps := d.stream.Info.BitsPerSample
	if bps < 4 || bps > 32 {
		return nil, alertbeep.Format{}, errors.Errorf("flac: unsupported bits per sample: %d", bps)
	}
	format = alertbeep.Format{
		SampleRate:  alertbeep.SampleRate(d.stream.Info.SampleRate),
		NumChannels: int(d.stream.Info.NChannels),
		Precision:   int(bps+7) / 8,
	}
	return &d, format, nil
}

type decoder struct {
	rc     io.ReadCloser
	stream *flac.Stream
	buf    [][2]float64
	pos    int
	err    error
}

func (d *decoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}
	// Copy samples from buffer.
	j := 0
	for i := range samples {
		if j >= len(d.buf) {
			// refill buffer.
			if err := d.refill(); err != nil {
				if err != io.EOF {
					d.err = errors.Wrap(err, "flac")
				}
				d.buf = d.buf[:0]
				d.pos += n
				return n, n > 0
			}
			j = 0
		}
		samples[i] = d.buf[j]
		j++
		n++
	}
	d.buf = d.buf[j:]
	d.pos += n
	return n, true
}

// refill decodes one audio frame into the decode buffer.
func (d *decoder) refill() error {
	frame, err := d.stream.ParseNext()
	if err != nil {
		return err
	}
	n := len(frame.Subframes[0].Samples)
	if cap(d.buf) < n {
		d.buf = make([][2]float64, n)
	} else {
		d.buf = d.buf[:n]
	}
	// Subframe samples are sign extended, so scaling by the bit depth is enough.
	q := 1 / float64(int64(1)<<(d.stream.Info.BitsPerSample-1))
	right := 0
	if len(frame.Subframes) >= 2 {
		right = 1
	}
	for i := 0; i < n; i++ {
		d.buf[i][0] = float64(frame.Subframes[0].Samples[i]) * q
		d.buf[i][1] = float64(frame.Subframes[right].Samples[i]) * q
	}
	return nil
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Len() int {
	return int(d.stream.Info.NSamples)
}

func (d *decoder) Position() int {
	return d.pos
}

func (d *decoder) Seek(p int) error {
	return errors.New("flac: seek is not supported")
}

func (d *decoder) Close() error {
	err := d.rc.Close()
	if err != nil {
		return errors.Wrap(err, "flac")
	}
	return nil
}
