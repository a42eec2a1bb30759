package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/flac"
	"github.com/fieldcrew/alertbeep/mp3"
	"github.com/fieldcrew/alertbeep/vorbis"
	"github.com/fieldcrew/alertbeep/wav"
)

type decodeFunc func(io.ReadCloser) (alertbeep.StreamSeekCloser, alertbeep.Format, error)

var decoders = map[string]decodeFunc{
	".wav":  wav.Decode,
	".mp3":  mp3.Decode,
	".ogg":  vorbis.Decode,
	".oga":  vorbis.Decode,
	".flac": flac.Decode,
}

// Info describes a decoded audio file.
type Info struct {
	Format   alertbeep.Format
	Samples  int
	Duration time.Duration
}

// Probe decodes the whole file at path, choosing the decoder by extension, and reports its
// format and length.
func Probe(path string) (Info, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Info{}, errors.Errorf("export: no decoder for %q files", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return Info{}, errors.Wrap(err, "export")
	}
	s, format, err := decode(f)
	if err != nil {
		f.Close()
		return Info{}, errors.Wrapf(err, "export: probe %s", path)
	}
	defer s.Close()

	var (
		buf = make([][2]float64, 512)
		n   int
	)
	for {
		sn, ok := s.Stream(buf)
		if !ok {
			break
		}
		n += sn
	}
	if err := s.Err(); err != nil {
		return Info{}, errors.Wrapf(err, "export: probe %s", path)
	}
	info := Info{Format: format, Samples: n}
	if format.SampleRate > 0 {
		info.Duration = format.SampleRate.D(n)
	}
	return info, nil
}
