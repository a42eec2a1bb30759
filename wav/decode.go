// Package wav implements reading and writing of audio in the WAVE format.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

// Decode takes a ReadCloser containing audio data in WAVE format and returns a StreamSeekCloser,
// which streams that audio. The Seek method will panic if rc is not io.Seeker.
//
// Do not close the supplied ReadSeekCloser, instead, use the Close method of the returned
// StreamSeekCloser when you want to release the resources.
func Decode(rc io.ReadCloser) (s alertbeep.StreamSeekCloser, format alertbeep.Format, err error) {
	d := decoder{rc: rc}
	defer func() { // hacky way to always close rsc if an error occured
		if err != nil {
			d.rc.Close()
		}
	}()
	if err := binary.Read(rc, binary.LittleEndian, &d.h); err != nil {
		return nil, alertbeep.Format{}, errors.Wrap(err, "wav")
	}
	if string(d.h.RiffMark[:]) != "RIFF" {
		return nil, alertbeep.Format{}, errors.New("wav: missing RIFF at the beginning")
	}
	if string(d.h.WaveMark[:]) != "WAVE" {
		return nil, alertbeep.Format{}, errors.New("wav: unsupported file type")
	}
	if string(d.h.FmtMark[:]) != "fmt " {
		return nil, alertbeep.Format{}, errors.New("wav: missing format chunk marker")
	}
	if string(d.h.DataMark[:]) != "data" {
		return nil, alertbeep.Format{}, errors.New("wav: missing data chunk marker")
	}
	if d.h.FormatType != 1 {
		return nil, alertbeep.Format{}, errors.New("wav: unsupported format type")
	}
	if d.h.NumChans <= 0 {
		return nil, alertbeep.Format{}, errors.New("wav: invalid number of channels (less than 1)")
	}
	if d.h.BitsPerSample != 8 && d.h.BitsPerSample != 16 && d.h.BitsPerSample != 24 {
		return nil, alertbeep.Format{}, errors.New("wav: unsupported number of bits per sample, 8, 16 or 24 are supported")
	}
	d.f = alertbeep.Format{
		SampleRate:  alertbeep.SampleRate(d.h.SampleRate),
		NumChannels: int(d.h.NumChans),
		Precision:   int(d.h.BitsPerSample / 8),
	}
	if int(d.h.BytesPerFrame) != d.f.Width() {
		return nil, alertbeep.Format{}, errors.New("wav: frame size does not match channels and precision")
	}
	return &d, d.f, nil
}

type header struct {
	RiffMark      [4]byte
	FileSize      int32
	WaveMark      [4]byte
	FmtMark       [4]byte
	FormatSize    int32
	FormatType    int16
	NumChans      int16
	SampleRate    int32
	ByteRate      int32
	BytesPerFrame int16
	BitsPerSample int16
	DataMark      [4]byte
	DataSize      int32
}

type decoder struct {
	rc  io.ReadCloser
	h   header
	f   alertbeep.Format
	buf []byte
	pos int32
	err error
}

func (d *decoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil || d.pos >= d.h.DataSize {
		return 0, false
	}
	width := d.f.Width()
	numBytes := int32(len(samples) * width)
	if numBytes > d.h.DataSize-d.pos {
		numBytes = d.h.DataSize - d.pos
	}
	if cap(d.buf) < int(numBytes) {
		d.buf = make([]byte, numBytes)
	}
	p := d.buf[:numBytes]
	nb, err := io.ReadFull(d.rc, p)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		d.err = errors.Wrap(err, "wav")
	}
	for i := 0; i+width <= nb; i += width {
		if d.f.Precision == 1 {
			samples[n], _ = d.f.DecodeUnsigned(p[i:])
		} else {
			samples[n], _ = d.f.DecodeSigned(p[i:])
		}
		n++
	}
	d.pos += int32(n * width)
	if n == 0 {
		// truncated file, nothing left to stream
		d.pos = d.h.DataSize
		return 0, false
	}
	return n, true
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Len() int {
	return int(d.h.DataSize) / int(d.h.BytesPerFrame)
}

func (d *decoder) Position() int {
	return int(d.pos / int32(d.h.BytesPerFrame))
}

func (d *decoder) Seek(p int) error {
	seeker, ok := d.rc.(io.Seeker)
	if !ok {
		panic(fmt.Errorf("wav: seek: resource is not io.Seeker"))
	}
	if p < 0 || d.Len() < p {
		return fmt.Errorf("wav: seek position %v out of range [%v, %v]", p, 0, d.Len())
	}
	pos := int32(p) * int32(d.h.BytesPerFrame)
	_, err := seeker.Seek(int64(pos)+headerSize, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "wav: seek error")
	}
	d.pos = pos
	return nil
}

func (d *decoder) Close() error {
	err := d.rc.Close()
	if err != nil {
		return errors.Wrap(err, "wav")
	}
	return nil
}
