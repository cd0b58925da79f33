package game

import (
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/score"
	"github.com/zucenko/maize/sim"
)

// New starts the machine in INTRO. Nil collaborators are replaced by no-ops.
func New(c cfg.Config, r Renderer, s Sound, sc Scores) *Machine {
	if r == nil {
		r = NopRenderer{}
	}
	if s == nil {
		s = NopSound{}
	}
	if sc == nil {
		sc = NopScores{}
	}
	m := &Machine{
		State:    ST_INTRO,
		Music:    c.Audio.Music,
		Ruleset:  model.Basic,
		cfg:      c,
		intro:    gween.New(0, 1, float32(c.IntroDuration), ease.Linear),
		running:  true,
		renderer: r,
		sound:    s,
		scores:   sc,
		log:      log.WithField("component", "game"),
	}
	s.SetMusic(m.Music)
	return m
}

func (m *Machine) Running() bool {
	return m.running
}

// Session is the play in progress, or the one that just ended.
func (m *Machine) Session() *sim.Session {
	return m.session
}

func (m *Machine) setState(s State) {
	if s == m.State {
		return
	}
	m.log.WithFields(log.Fields{"from": m.State.Name(), "to": s.Name()}).Info("state")
	m.State = s
}

// Handle applies one UI event. Events that mean nothing in the current state are ignored.
func (m *Machine) Handle(ev UIEvent) {
	switch ev.Kind {
	case UI_QUIT:
		m.log.Info("quit")
		m.running = false
		return
	case UI_TOGGLE_MUSIC:
		m.Music = !m.Music
		m.sound.SetMusic(m.Music)
		return
	}

	switch m.State {
	case ST_INTRO:
		// only quit interrupts the intro
	case ST_MENU:
		switch ev.Kind {
		case UI_PLAY:
			m.setState(ST_DIFFICULTY_SELECT)
		case UI_SELECT_PLAYER:
			m.setState(ST_PLAYER_SELECT)
		case UI_HELP:
			m.setState(ST_HELP)
		case UI_SCORES:
			m.setState(ST_SCORE_BOARD)
		}
	case ST_DIFFICULTY_SELECT:
		switch ev.Kind {
		case UI_CHOOSE_RULESET:
			if !ev.Ruleset.Known() {
				m.log.Warnf("no ruleset %s", ev.Ruleset.Name())
				return
			}
			m.start(ev.Ruleset)
		case UI_BACK:
			m.setState(ST_MENU)
		}
	case ST_PLAYER_SELECT:
		switch ev.Kind {
		case UI_PICK_PLAYER:
			if ev.Player < 0 || ev.Player >= AVATARS {
				m.log.Warnf("no avatar %d", ev.Player)
				return
			}
			m.Avatar = ev.Player
			m.setState(ST_MENU)
		case UI_BACK:
			m.setState(ST_MENU)
		}
	case ST_HELP:
		if ev.Kind == UI_BACK {
			m.setState(ST_MENU)
		}
	case ST_SCORE_BOARD:
		m.handleScoreBoard(ev)
	case ST_ACTIVE_SESSION:
		switch ev.Kind {
		case UI_PAUSE:
			m.Paused = !m.Paused
			m.sound.SetMusic(m.Music && !m.Paused)
		case UI_BACK:
			m.log.WithField("session", m.session.ID()).Info("session abandoned")
			m.Paused = false
			m.session = nil
			m.last = nil
			m.sound.SetMusic(m.Music)
			m.setState(ST_MENU)
		}
	case ST_SESSION_LOST, ST_SESSION_WON:
		if ev.Kind == UI_ANY_INPUT || ev.Kind == UI_BACK {
			m.sound.SetMusic(m.Music)
			m.setState(ST_MENU)
		}
	}
}

// handleScoreBoard runs the modal reset confirmation as a sub-state: while
// Confirming only yes, no and back are honoured.
func (m *Machine) handleScoreBoard(ev UIEvent) {
	if m.Confirming {
		switch ev.Kind {
		case UI_CONFIRM_YES:
			if err := m.scores.Reset(); err != nil {
				m.log.Warnf("reset scores: %v", err)
			}
			m.Confirming = false
		case UI_CONFIRM_NO, UI_BACK:
			m.Confirming = false
		}
		return
	}
	switch ev.Kind {
	case UI_RESET_SCORES:
		m.Confirming = true
	case UI_BACK:
		m.setState(ST_MENU)
	}
}

func (m *Machine) start(r model.Ruleset) {
	s, err := sim.NewSession(m.cfg.Session(r, m.log))
	if err != nil {
		m.log.Errorf("cant start session: %v", err)
		return
	}
	m.Ruleset = r
	m.session = s
	m.last = nil
	m.Paused = false
	m.NewRecord = false
	m.setState(ST_ACTIVE_SESSION)
}

// Update advances one tick and renders it.
func (m *Machine) Update(in sim.Input, dt float64) {
	if !m.running {
		return
	}
	switch m.State {
	case ST_INTRO:
		cur, finished := m.intro.Update(float32(dt))
		m.progress = float64(cur)
		if finished {
			m.setState(ST_MENU)
		}
	case ST_ACTIVE_SESSION:
		if !m.Paused {
			m.tick(in, dt)
		}
	}
	m.renderer.Render(m.Frame())
}

func (m *Machine) tick(in sim.Input, dt float64) {
	outcome := m.session.Update(in, dt)
	for _, e := range m.session.DrainEvents() {
		m.sound.Play(e)
	}
	switch outcome {
	case model.PlayerCaught:
		m.sound.SetMusic(false)
		m.setState(ST_SESSION_LOST)
	case model.GoalReached:
		m.NewRecord = m.scores.RecordIfBest(m.Ruleset, m.session.Elapsed())
		m.sound.SetMusic(false)
		m.setState(ST_SESSION_WON)
	}
	if outcome.Terminal() {
		snap := m.session.Snapshot()
		m.last = &snap
	}
}

func (m *Machine) Frame() Frame {
	f := Frame{
		State:         m.State,
		Confirming:    m.Confirming,
		Paused:        m.Paused,
		Music:         m.Music,
		Avatar:        m.Avatar,
		Ruleset:       m.Ruleset,
		IntroProgress: m.progress,
		NewRecord:     m.NewRecord,
	}
	switch m.State {
	case ST_ACTIVE_SESSION:
		snap := m.session.Snapshot()
		f.Snapshot = &snap
	case ST_SESSION_LOST, ST_SESSION_WON:
		f.Snapshot = m.last
	}
	if m.State == ST_SCORE_BOARD || m.State == ST_SESSION_WON {
		f.Records = make(map[model.Ruleset]score.Record)
		for _, r := range model.Rulesets {
			if rec, ok := m.scores.Best(r); ok {
				f.Records[r] = rec
			}
		}
	}
	return f
}
