// Command alertbeep generates the loud two-tone job alert sound.
//
// It writes a 16-bit mono WAV file and, when ffmpeg is available, converts it to the format of
// the requested output path (MP3 by default). Transcoder problems are reported but never fail
// the command, the WAV file is left in place instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fieldcrew/alertbeep/export"
	"github.com/fieldcrew/alertbeep/internal/config"
	"github.com/fieldcrew/alertbeep/speaker"
	"github.com/fieldcrew/alertbeep/synth"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "alertbeep: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("alertbeep", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "alertbeep.yaml", "path of the YAML config file")
		out         = fs.String("out", config.DefaultOutput, "output file, its extension selects the transcoded format")
		duration    = fs.Duration("duration", 5*time.Second, "length of the alert")
		rate        = fs.Int("rate", 44100, "sample rate in Hz")
		noTranscode = fs.Bool("no-transcode", false, "only write the WAV file")
		play        = fs.Bool("play", false, "play the alert after writing it")
		initConfig  = fs.Bool("init", false, "write the default config to -config and exit")
		jsonLogs    = fs.Bool("json", false, "log as JSON")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(*jsonLogs)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer logger.Sync()

	if *initConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			return err
		}
		logger.Info("wrote default config", zap.String("path", *configPath))
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output = *out
		case "duration":
			cfg.Synth.Duration = *duration
		case "rate":
			cfg.Synth.SampleRate = *rate
		case "no-transcode":
			cfg.Transcoder.Enabled = !*noTranscode
		case "play":
			cfg.Preview = *play
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	p := cfg.Params()
	logger.Info("rendering alert",
		zap.Duration("duration", p.Duration),
		zap.Stringer("sampleRate", p.SampleRate),
		zap.Float64("low", p.Low),
		zap.Float64("high", p.High),
	)
	b, err := synth.Render(p)
	if err != nil {
		return err
	}

	var exp export.Exporter = &export.WAV{Logger: logger}
	if cfg.Transcoder.Enabled {
		tr := export.NewTranscoder(logger)
		tr.Command = cfg.Transcoder.Command
		tr.Quality = cfg.Transcoder.Quality
		tr.Verify = cfg.Transcoder.Verify
		exp = tr
	}
	res, err := exp.Export(ctx, b.Streamer(0, b.Len()), p.Format(), cfg.Output)
	if err != nil {
		return err
	}
	report(stdout, res, cfg)

	if cfg.Preview {
		if err := speaker.Play(ctx, p.SampleRate, b.Streamer(0, b.Len())); err != nil {
			logger.Warn("preview failed", zap.Error(err))
		}
	}

	banner(stdout, res, p)
	return nil
}

func report(w io.Writer, res export.Result, cfg *config.Config) {
	fmt.Fprintf(w, "Generated WAV: %s\n", res.WAVPath)
	switch res.Outcome {
	case export.Transcoded:
		fmt.Fprintf(w, "Converted: %s\n", res.Path)
	case export.TranscodeFailed:
		fmt.Fprintf(w, "%s conversion failed, using WAV instead\n", cfg.Transcoder.Command)
		fmt.Fprintf(w, "Rename %s to job_alert.wav in your assets/sounds/\n", res.WAVPath)
	case export.TranscoderMissing:
		fmt.Fprintf(w, "%s not found. Using WAV format instead.\n", cfg.Transcoder.Command)
		fmt.Fprintf(w, "You can use the WAV file directly:\n")
		fmt.Fprintf(w, "    1. Copy %s to assets/sounds/\n", res.WAVPath)
		fmt.Fprintf(w, "    2. Update pubspec.yaml: - assets/sounds/job_alert.wav\n")
	}
}

func banner(w io.Writer, res export.Result, p synth.Params) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\nALERT SOUND GENERATED\n%s\n", rule, rule)
	fmt.Fprintf(w, "File: %s (%s)\n", res.Path, res.Outcome)
	fmt.Fprintf(w, "Duration: %v\n", p.Duration)
	fmt.Fprintf(w, "Volume: %.0f%%\n", p.Gain*100)
	fmt.Fprintf(w, "Pattern: Alternating %gHz and %gHz tones\n", p.Low, p.High)
	fmt.Fprintln(w, rule)
}
