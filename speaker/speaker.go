// Package speaker implements playback of alertbeep.Streamer values through physical speakers.
package speaker

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/pkg/errors"

	"github.com/fieldcrew/alertbeep"
)

const channelCount = 2
const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelCount

var (
	mu         sync.Mutex
	otoCtx     *oto.Context
	sampleRate alertbeep.SampleRate
)

// Init initializes audio playback through speaker. Must be called before using this package.
//
// The oto context can only be created once per process, so later calls must use the same
// sample rate.
func Init(sr alertbeep.SampleRate) error {
	mu.Lock()
	defer mu.Unlock()

	if otoCtx != nil {
		if sr != sampleRate {
			return errors.Errorf("speaker already initialized at %v, cannot switch to %v", sampleRate, sr)
		}
		return nil
	}

	c, ready, err := oto.NewContext(int(sr), channelCount, bitDepthInBytes)
	if err != nil {
		return errors.Wrap(err, "failed to initialize speaker")
	}
	<-ready

	otoCtx = c
	sampleRate = sr
	return nil
}

// leadIn is the silence played before every streamer.
const leadIn = 50 * time.Millisecond

// pollInterval is how often Play checks the player while waiting.
const pollInterval = 10 * time.Millisecond

// Play plays s through the speaker and blocks until it has been heard, the player fails or ctx
// is done. Init is called with sr when the speaker is not initialized yet.
func Play(ctx context.Context, sr alertbeep.SampleRate, s alertbeep.Streamer) error {
	if err := Init(sr); err != nil {
		return err
	}

	drained := make(chan struct{})
	r := newReaderFromStreamer(withLeadIn(sr, s, func() {
		close(drained)
	}))
	player := otoCtx.NewPlayer(r)
	defer player.Close()
	player.Play()

	if err := wait(ctx, player, drained, pollInterval); err != nil {
		return err
	}
	return s.Err()
}

// withLeadIn prepends leadIn of silence to s and calls done once s is drained.
func withLeadIn(sr alertbeep.SampleRate, s alertbeep.Streamer, done func()) alertbeep.Streamer {
	return alertbeep.Seq(alertbeep.Silence(sr.N(leadIn)), s, alertbeep.Callback(done))
}

// player is the part of oto.Player that wait watches.
type player interface {
	IsPlaying() bool
	Err() error
}

// wait blocks until drained is closed and p has played its buffered audio. It returns early
// when p reports an error or ctx is done.
func wait(ctx context.Context, p player, drained <-chan struct{}, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for done := false; !done; {
		select {
		case <-drained:
			done = true
		case <-ticker.C:
			if err := p.Err(); err != nil {
				return errors.Wrap(err, "speaker")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// the player still holds buffered audio after the streamer is drained
	for p.IsPlaying() {
		select {
		case <-ticker.C:
			if err := p.Err(); err != nil {
				return errors.Wrap(err, "speaker")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := p.Err(); err != nil {
		return errors.Wrap(err, "speaker")
	}
	return nil
}

// sampleReader is a wrapper for alertbeep.Streamer to implement io.Reader.
type sampleReader struct {
	s   alertbeep.Streamer
	buf [][2]float64
	f   alertbeep.Format
}

func newReaderFromStreamer(s alertbeep.Streamer) *sampleReader {
	return &sampleReader{
		s: s,
		f: alertbeep.Format{NumChannels: channelCount, Precision: bitDepthInBytes},
	}
}

// Read pulls samples from the reader and fills buf with the encoded
// samples. Read expects the size of buf be divisible by the length
// of a sample (= channel count * bit depth in bytes).
func (s *sampleReader) Read(buf []byte) (n int, err error) {
	// Read samples from streamer
	if len(buf)%bytesPerSample != 0 {
		return 0, errors.New("requested number of bytes do not align with the samples")
	}
	ns := len(buf) / bytesPerSample
	if len(s.buf) < ns {
		s.buf = make([][2]float64, ns)
	}
	ns, ok := s.s.Stream(s.buf[:ns])
	if !ok {
		if s.s.Err() != nil {
			return 0, errors.Wrap(s.s.Err(), "streamer returned error when requesting samples")
		}
		if ns == 0 {
			return 0, io.EOF
		}
	}

	// Convert samples to bytes
	for i := range s.buf[:ns] {
		s.f.EncodeSigned(buf[i*bytesPerSample:], s.buf[i])
	}

	return ns * bytesPerSample, nil
}
