// Package config loads the alert generator settings from YAML.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fieldcrew/alertbeep"
	"github.com/fieldcrew/alertbeep/synth"
)

// DefaultOutput is where the alert is written when nothing else is configured.
const DefaultOutput = "assets/sounds/job_alert.mp3"

// Config holds all settings of the alertbeep command.
type Config struct {
	Output     string           `yaml:"output"`
	Synth      SynthConfig      `yaml:"synth"`
	Transcoder TranscoderConfig `yaml:"transcoder"`
	Preview    bool             `yaml:"preview"`
}

// SynthConfig mirrors synth.Params.
type SynthConfig struct {
	Duration     time.Duration `yaml:"duration"`
	SampleRate   int           `yaml:"sampleRate"`
	Low          float64       `yaml:"low"`
	High         float64       `yaml:"high"`
	Cycle        time.Duration `yaml:"cycle"`
	HarmonicGain float64       `yaml:"harmonicGain"`
	Gain         float64       `yaml:"gain"`
	TailGain     float64       `yaml:"tailGain"`
	Fade         time.Duration `yaml:"fade"`
	Peak         float64       `yaml:"peak"`
}

// TranscoderConfig holds the external converter settings.
type TranscoderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
	Quality string `yaml:"quality"`
	Verify  bool   `yaml:"verify"`
}

// Default returns the settings of the standard job alert.
func Default() *Config {
	p := synth.Default()
	return &Config{
		Output: DefaultOutput,
		Synth: SynthConfig{
			Duration:     p.Duration,
			SampleRate:   int(p.SampleRate),
			Low:          p.Low,
			High:         p.High,
			Cycle:        p.Cycle,
			HarmonicGain: p.HarmonicGain,
			Gain:         p.Gain,
			TailGain:     p.TailGain,
			Fade:         p.Fade,
			Peak:         p.Peak,
		},
		Transcoder: TranscoderConfig{
			Enabled: true,
			Command: "ffmpeg",
			Quality: "9",
			Verify:  true,
		},
	}
}

// Load reads the config file at path. Keys missing from the file keep their defaults.
// Returns Default() when the file doesn't exist (no error).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "config")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "config")
}

// Params converts the synth section.
func (c *Config) Params() synth.Params {
	s := c.Synth
	return synth.Params{
		Duration:     s.Duration,
		SampleRate:   alertbeep.SampleRate(s.SampleRate),
		Low:          s.Low,
		High:         s.High,
		Cycle:        s.Cycle,
		HarmonicGain: s.HarmonicGain,
		Gain:         s.Gain,
		TailGain:     s.TailGain,
		Fade:         s.Fade,
		Peak:         s.Peak,
	}
}

// Validate checks the settings before anything is rendered.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("config: output path is empty")
	}
	if c.Transcoder.Enabled && c.Transcoder.Command == "" {
		return errors.New("config: transcoder is enabled without a command")
	}
	return errors.Wrap(c.Params().Validate(), "config")
}
