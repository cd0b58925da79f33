package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"

	"github.com/zucenko/maize/model"
)

const testRate = beep.SampleRate(8000)

// drain streams s to exhaustion, failing past limit samples.
func drain(t *testing.T, s beep.Streamer, limit int) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	for n <= limit {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		n += k
		if !ok {
			return n, peak
		}
	}
	t.Fatalf("streamer did not end within %d samples", limit)
	return n, peak
}

func TestToneLengthAndRange(t *testing.T) {
	for _, w := range []Wave{Sine, Square, Saw, Noise} {
		n, peak := drain(t, Tone(440, 100*time.Millisecond, w, testRate), 10000)
		assert.Equal(t, testRate.N(100*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.0)
	}
}

func TestEnvelopeStartsSilentAndCutsAtTotal(t *testing.T) {
	s := Envelope(Tone(440, time.Second, Square, testRate), 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, testRate)
	buf := make([][2]float64, 4)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0.0, buf[0][0])

	rest, _ := drain(t, s, 10000)
	assert.Equal(t, testRate.N(50*time.Millisecond), rest+4)
}

func TestEffectsAreFinite(t *testing.T) {
	events := []model.SoundEvent{model.ShotFired, model.PursuerDestroyed, model.KeyCollected, model.Caught, model.Escaped}
	for _, e := range events {
		n, peak := drain(t, Effect(e, testRate), int(testRate)*2)
		assert.Greater(t, n, 0, e.Name())
		assert.Greater(t, peak, 0.0, e.Name())
	}
	n, _ := drain(t, Effect(model.SoundEvent(99), testRate), 1)
	assert.Equal(t, 0, n)
}

func TestMusicNeverEnds(t *testing.T) {
	m := Music(testRate)
	buf := make([][2]float64, 1024)
	for i := 0; i < 100; i++ {
		n, ok := m.Stream(buf)
		assert.True(t, ok)
		assert.Equal(t, len(buf), n)
	}
}

func TestSilentPlayerCounts(t *testing.T) {
	p := Silent()
	p.Play(model.ShotFired)
	p.Play(model.ShotFired)
	p.Play(model.Escaped)
	assert.Equal(t, 2, p.Played[model.ShotFired])
	assert.Equal(t, 1, p.Played[model.Escaped])

	assert.False(t, p.MusicOn())
	p.SetMusic(true)
	assert.True(t, p.MusicOn())
	p.Close()
}
