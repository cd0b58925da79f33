package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/zucenko/maize/model"
)

type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// tone is a fixed-length oscillator; an optional slide bends the frequency
// linearly to freq+slide over its length.
type tone struct {
	freq  float64
	slide float64
	wave  Wave
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
	rng   *rand.Rand
}

func Tone(freq float64, d time.Duration, w Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: w, rate: rate, total: rate.N(d), rng: rand.New(rand.NewSource(int64(freq)))}
}

func Slide(from, to float64, d time.Duration, w Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: from, slide: to - from, wave: w, rate: rate, total: rate.N(d), rng: rand.New(rand.NewSource(int64(from)))}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case Square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2 * (t.phase - 0.5)
		case Noise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		f := t.freq + t.slide*float64(t.pos)/float64(t.total)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades the first attack and the last release samples of s.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func Envelope(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, total: rate.N(total), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// Volume scales s linearly; zero or less is silent.
func Volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func note(freq float64, d time.Duration, w Wave, rate beep.SampleRate) beep.Streamer {
	return Envelope(Tone(freq, d, w, rate), d, 5*time.Millisecond, d/3, rate)
}

// Effect synthesizes the sound for one simulation event. Unknown events are silent.
func Effect(e model.SoundEvent, rate beep.SampleRate) beep.Streamer {
	switch e {
	case model.ShotFired:
		d := 90 * time.Millisecond
		return Volume(Envelope(Slide(880, 440, d, Square, rate), d, 2*time.Millisecond, 40*time.Millisecond, rate), 0.3)
	case model.PursuerDestroyed:
		d := 250 * time.Millisecond
		return Volume(Envelope(Tone(0, d, Noise, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate), 0.5)
	case model.KeyCollected:
		return beep.Seq(
			note(988, 80*time.Millisecond, Square, rate),
			note(1319, 220*time.Millisecond, Square, rate),
		)
	case model.Caught:
		d := 700 * time.Millisecond
		return Envelope(Slide(440, 110, d, Saw, rate), d, 5*time.Millisecond, 300*time.Millisecond, rate)
	case model.Escaped:
		return beep.Seq(
			note(523, 120*time.Millisecond, Sine, rate),
			note(659, 120*time.Millisecond, Sine, rate),
			note(784, 120*time.Millisecond, Sine, rate),
			note(1047, 400*time.Millisecond, Sine, rate),
		)
	default:
		return beep.Silence(0)
	}
}

// music is an endless arpeggio over a slow bass, one note per beat.
type music struct {
	rate  beep.SampleRate
	pos   int
	beat  int
	notes []float64
}

func Music(rate beep.SampleRate) beep.Streamer {
	return &music{
		rate:  rate,
		beat:  rate.N(250 * time.Millisecond),
		notes: []float64{220, 261.63, 329.63, 392, 329.63, 261.63, 196, 246.94},
	}
}

func (m *music) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		idx := (m.pos / m.beat) % len(m.notes)
		inBeat := m.pos % m.beat
		t := float64(m.pos) / float64(m.rate)
		env := math.Exp(-4 * float64(inBeat) / float64(m.beat))
		bar := (m.pos / (m.beat * len(m.notes))) % 2
		bass := 55.0
		if bar == 1 {
			bass = 49
		}
		v := 0.25*env*math.Sin(2*math.Pi*m.notes[idx]*t) + 0.12*math.Sin(2*math.Pi*bass*t)
		samples[i][0], samples[i][1] = v, v
		m.pos++
	}
	return len(samples), true
}

func (m *music) Err() error { return nil }
