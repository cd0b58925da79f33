package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/model"
)

const SAMPLE_RATE = beep.SampleRate(44100)

// Player plays synthesized effects and background music on the speaker.
// Without an audio device it stays silent and every call is a no-op.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	music   *beep.Ctrl
	enabled bool
	log     *log.Entry

	// Played counts effects per event, audible or not.
	Played map[model.SoundEvent]int
}

func New(volume float64, musicOn bool) *Player {
	p := newPlayer(volume)
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.log.Warnf("no audio device, sound disabled: %v", err)
		return p
	}
	p.enabled = true
	p.mixer.Add(p.music)
	speaker.Play(p.mixer)
	p.SetMusic(musicOn)
	return p
}

// Silent is a Player that never touches the speaker.
func Silent() *Player {
	return newPlayer(0)
}

func newPlayer(volume float64) *Player {
	return &Player{
		rate:   SAMPLE_RATE,
		volume: volume,
		mixer:  &beep.Mixer{},
		music:  &beep.Ctrl{Streamer: Volume(Music(SAMPLE_RATE), volume*0.6), Paused: true},
		log:    log.WithField("component", "sound"),
		Played: make(map[model.SoundEvent]int),
	}
}

func (p *Player) Play(e model.SoundEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Played[e]++
	if !p.enabled {
		return
	}
	s := Volume(Effect(e, p.rate), p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	log.Debugf("sound %s", e.Name())
}

func (p *Player) SetMusic(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		p.music.Paused = !on
		return
	}
	speaker.Lock()
	p.music.Paused = !on
	speaker.Unlock()
}

func (p *Player) MusicOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.music.Paused
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.music.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
