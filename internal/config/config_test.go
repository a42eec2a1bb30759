package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/alertbeep/synth"
)

func TestDefaultMatchesSynth(t *testing.T) {
	cfg := Default()
	assert.Equal(t, synth.Default(), cfg.Params())
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.True(t, cfg.Transcoder.Enabled)
	assert.Equal(t, "ffmpeg", cfg.Transcoder.Command)
	assert.Equal(t, "9", cfg.Transcoder.Quality)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alertbeep.yaml")
	content := `output: out/alert.ogg
synth:
  duration: 2.5s
  sampleRate: 22050
  cycle: 250ms
transcoder:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out/alert.ogg", cfg.Output)
	assert.Equal(t, 2500*time.Millisecond, cfg.Synth.Duration)
	assert.Equal(t, 22050, cfg.Synth.SampleRate)
	assert.Equal(t, 250*time.Millisecond, cfg.Synth.Cycle)
	assert.Equal(t, 800.0, cfg.Synth.Low)
	assert.Equal(t, 0.95, cfg.Synth.Peak)
	assert.False(t, cfg.Transcoder.Enabled)
	assert.Equal(t, "ffmpeg", cfg.Transcoder.Command)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synth: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "alertbeep.yaml")
	cfg := Default()
	cfg.Synth.High = 1500
	cfg.Preview = true

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Transcoder.Command = ""
	assert.Error(t, cfg.Validate())
	cfg.Transcoder.Enabled = false
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Synth.SampleRate = 0
	assert.Error(t, cfg.Validate())
}
