package main

import (
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

// Terminals report presses, not releases: a key counts as held for HOLD
// after its last press or auto-repeat.
const HOLD = 180 * time.Millisecond

var moveKeys = map[tcell.Key]model.Binding{
	tcell.KeyUp:    model.ArrowUp,
	tcell.KeyDown:  model.ArrowDown,
	tcell.KeyLeft:  model.ArrowLeft,
	tcell.KeyRight: model.ArrowRight,
}

var shootKeys = map[rune]model.Direction{
	'w': model.Up,
	'a': model.Left,
	's': model.Down,
	'd': model.Right,
}

// Terminal renders game frames with tcell and turns key presses into
// UI events and held input.
type Terminal struct {
	screen tcell.Screen
	moves  [4]time.Time
	shots  [4]time.Time
	frame  game.Frame
	copy   func(string) error
	log    *log.Entry
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		frame:  game.Frame{State: game.ST_INTRO},
		copy:   clipboard.WriteAll,
		log:    log.WithField("component", "tui"),
	}
}

// Input is the held state at now.
func (t *Terminal) Input(now time.Time) sim.Input {
	var in sim.Input
	for i := range t.moves {
		in.Move[i] = now.Sub(t.moves[i]) < HOLD
		in.Shoot[i] = now.Sub(t.shots[i]) < HOLD
	}
	return in
}

// Key maps one press against the last rendered frame. Movement and shooting
// keys only update the held state and never produce an event.
func (t *Terminal) Key(ev *tcell.EventKey, now time.Time) (game.UIEvent, bool) {
	state := t.frame.State
	if ev.Modifiers()&tcell.ModCtrl != 0 && ev.Key() == tcell.KeyRune && unicode.ToLower(ev.Rune()) == 'c' {
		return game.Event(game.UI_QUIT), true
	}
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return game.Event(game.UI_QUIT), true
	case tcell.KeyEscape:
		return game.Event(game.UI_BACK), true
	case tcell.KeyEnter:
		switch state {
		case game.ST_MENU:
			return game.Event(game.UI_PLAY), true
		case game.ST_SESSION_LOST, game.ST_SESSION_WON:
			return game.Event(game.UI_ANY_INPUT), true
		}
		return game.UIEvent{}, false
	}
	if b, ok := moveKeys[ev.Key()]; ok {
		t.moves[b] = now
		return game.UIEvent{}, false
	}
	if ev.Key() != tcell.KeyRune {
		return game.UIEvent{}, false
	}

	r := unicode.ToLower(ev.Rune())
	switch r {
	case 'q':
		return game.Event(game.UI_QUIT), true
	case 'm':
		return game.Event(game.UI_TOGGLE_MUSIC), true
	}

	switch state {
	case game.ST_MENU:
		switch r {
		case 'p':
			return game.Event(game.UI_PLAY), true
		case 'c':
			return game.Event(game.UI_SELECT_PLAYER), true
		case 'h':
			return game.Event(game.UI_HELP), true
		case 's':
			return game.Event(game.UI_SCORES), true
		}
	case game.ST_DIFFICULTY_SELECT:
		if n := int(r - '1'); n >= 0 && n < len(model.Rulesets) {
			return game.ChooseRuleset(model.Rulesets[n]), true
		}
	case game.ST_PLAYER_SELECT:
		if n := int(r - '1'); n >= 0 && n < game.AVATARS {
			return game.PickPlayer(n), true
		}
	case game.ST_SCORE_BOARD:
		switch r {
		case 'r':
			return game.Event(game.UI_RESET_SCORES), true
		case 'y':
			return game.Event(game.UI_CONFIRM_YES), true
		case 'n':
			return game.Event(game.UI_CONFIRM_NO), true
		}
	case game.ST_ACTIVE_SESSION:
		if r == 'p' {
			return game.Event(game.UI_PAUSE), true
		}
		if d, ok := shootKeys[r]; ok {
			t.shots[d] = now
		}
	case game.ST_SESSION_LOST, game.ST_SESSION_WON:
		if r == 'c' {
			t.copySummary()
			return game.UIEvent{}, false
		}
		return game.Event(game.UI_ANY_INPUT), true
	}
	return game.UIEvent{}, false
}

func (t *Terminal) copySummary() {
	line := game.Summary(t.frame)
	if line == "" {
		return
	}
	if err := t.copy(line); err != nil {
		t.log.Warnf("cant copy to clipboard: %v", err)
		return
	}
	t.log.Info("result copied")
}

func (t *Terminal) Render(f game.Frame) {
	t.frame = f
	t.screen.Clear()
	t.draw(f)
	t.screen.Show()
}

// Run drives m from the event and tick channels until it stops running.
func (t *Terminal) Run(m *game.Machine, rate int) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	last := time.Now()
	for m.Running() {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ui, ok := t.Key(ev, time.Now()); ok {
					m.Handle(ui)
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case now := <-ticker.C:
			m.Update(t.Input(now), now.Sub(last).Seconds())
			last = now
		}
	}
}
