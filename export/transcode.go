package export

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fieldcrew/alertbeep"
)

// Runner runs an external command to completion and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner. A command missing from PATH yields an error matching exec.ErrNotFound.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Transcoder writes a WAV file and converts it to the format implied by the requested path's
// extension with an ffmpeg compatible command:
//
//	<Command> -i <wav> -q:a <Quality> <path> -y
type Transcoder struct {
	Runner  Runner
	Command string
	Quality string
	// Verify decodes the converted file before the WAV file is removed.
	Verify bool
	Logger *zap.Logger
}

// NewTranscoder returns a Transcoder running ffmpeg at variable bit rate quality 9.
func NewTranscoder(logger *zap.Logger) *Transcoder {
	return &Transcoder{
		Runner:  ExecRunner{},
		Command: "ffmpeg",
		Quality: "9",
		Verify:  true,
		Logger:  logger,
	}
}

// Export writes WAVPath(path) and then tries to convert it to path. Only failing to write the
// WAV file is an error; every converter problem ends in a Result whose Path is the WAV file.
func (t *Transcoder) Export(ctx context.Context, s alertbeep.Streamer, format alertbeep.Format, path string) (Result, error) {
	log := logger(t.Logger)
	res, err := (&WAV{Logger: log}).Export(ctx, s, format, path)
	if err != nil {
		return res, err
	}
	if isWAV(path) {
		return res, nil
	}

	log = log.With(zap.String("command", t.Command), zap.String("output", path))
	args := []string{"-i", res.WAVPath, "-q:a", t.Quality, path, "-y"}
	out, err := t.Runner.Run(ctx, t.Command, args...)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		log.Warn("transcoder not found, keeping wav", zap.Error(err))
		res.Outcome = TranscoderMissing
		res.Err = err
		return res, nil
	case err != nil:
		log.Warn("transcode failed, keeping wav", zap.Error(err), zap.ByteString("stderr", out))
		res.Outcome = TranscodeFailed
		res.Output = string(out)
		res.Err = err
		return res, nil
	}

	if t.Verify {
		info, err := Probe(path)
		if err == nil && info.Samples == 0 {
			err = errors.New("export: transcoded file holds no audio")
		}
		if err != nil {
			log.Warn("transcoded file does not decode, keeping wav", zap.Error(err))
			res.Outcome = TranscodeFailed
			res.Err = err
			return res, nil
		}
		log.Info("verified transcoded file",
			zap.Stringer("sampleRate", info.Format.SampleRate),
			zap.Int("channels", info.Format.NumChannels),
			zap.Duration("duration", info.Duration),
		)
	}

	if err := os.Remove(res.WAVPath); err != nil {
		log.Warn("could not remove intermediate wav", zap.String("path", res.WAVPath), zap.Error(err))
	} else {
		log.Debug("removed intermediate wav", zap.String("path", res.WAVPath))
	}
	log.Info("transcoded")
	res.Outcome = Transcoded
	res.Path = path
	return res, nil
}
