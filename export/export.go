// Package export writes rendered audio to disk.
//
// An Exporter drains a Streamer into a file. WAV writes the PCM file natively, Transcoder
// additionally hands that file to an external converter such as ffmpeg. Converter problems are
// reported through Result.Outcome rather than as errors, the WAV file stays behind as the
// deliverable in that case.
package export

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fieldcrew/alertbeep"
)

// Exporter writes all audio streamed from s for the requested path.
type Exporter interface {
	Export(ctx context.Context, s alertbeep.Streamer, format alertbeep.Format, path string) (Result, error)
}

// Outcome tells which file an export delivered.
type Outcome int

const (
	// WAVOnly means only the PCM file was requested and written.
	WAVOnly Outcome = iota
	// Transcoded means the converter produced the requested file and the PCM file was removed.
	Transcoded
	// TranscodeFailed means the converter ran but failed, the PCM file was kept.
	TranscodeFailed
	// TranscoderMissing means the converter could not be found, the PCM file was kept.
	TranscoderMissing
)

func (o Outcome) String() string {
	switch o {
	case WAVOnly:
		return "wav-only"
	case Transcoded:
		return "transcoded"
	case TranscodeFailed:
		return "transcode-failed"
	case TranscoderMissing:
		return "transcoder-missing"
	default:
		return "unknown"
	}
}

// Result describes a finished export.
type Result struct {
	Outcome Outcome
	// Path is the file the caller should use.
	Path string
	// WAVPath is the PCM file written on the way. It no longer exists after Transcoded.
	WAVPath string
	// Samples is the number of samples written.
	Samples int
	// Output holds what the converter printed when it failed.
	Output string
	// Err is the converter failure, if any.
	Err error
}

// WAVPath returns path with its extension replaced by ".wav".
func WAVPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
