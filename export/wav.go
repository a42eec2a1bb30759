package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/wav"
)

// WAV exports the audio as a PCM WAVE file next to the requested path.
type WAV struct {
	Logger *zap.Logger
}

// Export creates any missing parent directories and writes WAVPath(path).
func (w *WAV) Export(ctx context.Context, s alertbeep.Streamer, format alertbeep.Format, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	wavPath := WAVPath(path)
	if err := os.MkdirAll(filepath.Dir(wavPath), 0o755); err != nil {
		return Result{}, errors.Wrap(err, "export: create output directory")
	}

	f, err := os.Create(wavPath)
	if err != nil {
		return Result{}, errors.Wrap(err, "export")
	}
	n, err := wav.Encode(f, s, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(wavPath)
		return Result{}, errors.Wrapf(err, "export: write %s", wavPath)
	}

	logger(w.Logger).Info("wrote wav",
		zap.String("path", wavPath),
		zap.Int("samples", n),
		zap.Stringer("sampleRate", format.SampleRate),
	)
	return Result{
		Outcome: WAVOnly,
		Path:    wavPath,
		WAVPath: wavPath,
		Samples: n,
	}, nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
