package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

// headerSize is the size of the canonical RIFF/WAVE header written by Encode.
const headerSize = 44

// Encode writes all audio streamed from s to w in WAVE format and returns the number of
// samples written.
//
// Format precision must be 1, 2 or 3 bytes. 8-bit audio is stored unsigned, wider audio signed,
// as the format requires.
func Encode(w io.WriteSeeker, s alertbeep.Streamer, format alertbeep.Format) (n int, err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "wav")
		}
	}()

	if format.NumChannels <= 0 {
		return 0, errors.New("invalid number of channels (less than 1)")
	}
	if format.Precision != 1 && format.Precision != 2 && format.Precision != 3 {
		return 0, errors.New("unsupported precision, 1, 2 or 3 is supported")
	}
	if format.SampleRate <= 0 {
		return 0, errors.Errorf("invalid sample rate %v", format.SampleRate)
	}

	h := header{
		RiffMark:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      -1, // finalization
		WaveMark:      [4]byte{'W', 'A', 'V', 'E'},
		FmtMark:       [4]byte{'f', 'm', 't', ' '},
		FormatSize:    16,
		FormatType:    1,
		NumChans:      int16(format.NumChannels),
		SampleRate:    int32(format.SampleRate),
		ByteRate:      int32(int(format.SampleRate) * format.NumChannels * format.Precision),
		BytesPerFrame: int16(format.NumChannels * format.Precision),
		BitsPerSample: int16(format.Precision) * 8,
		DataMark:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:      -1, // finalization
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return 0, err
	}

	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
		written int
	)
	for {
		sn, ok := s.Stream(samples)
		if !ok {
			break
		}
		buf := buffer
		switch {
		case format.Precision == 1:
			for _, sample := range samples[:sn] {
				buf = buf[format.EncodeUnsigned(buf, sample):]
			}
		case format.Precision == 2 || format.Precision == 3:
			for _, sample := range samples[:sn] {
				buf = buf[format.EncodeSigned(buf, sample):]
			}
		default:
			panic(fmt.Errorf("wav: encode: invalid precision: %d", format.Precision))
		}
		nn, err := bw.Write(buffer[:sn*format.Width()])
		if err != nil {
			return n, err
		}
		written += nn
		n += sn
	}
	if err := s.Err(); err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}

	// finalize header
	h.FileSize = int32(headerSize - 8 + written) // RIFF size excludes the mark and itself
	h.DataSize = int32(written)
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return n, err
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return n, err
	}
	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return n, err
	}

	return n, nil
}
