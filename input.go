package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"

	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

// TAP_SLOP is how far a press may wander and still count as a tap.
const TAP_SLOP = 12

var moveKeys = [4]ebiten.Key{
	model.ArrowUp:    ebiten.KeyUp,
	model.ArrowDown:  ebiten.KeyDown,
	model.ArrowLeft:  ebiten.KeyLeft,
	model.ArrowRight: ebiten.KeyRight,
}

var shootKeys = [4]ebiten.Key{
	model.Up:    ebiten.KeyW,
	model.Down:  ebiten.KeyS,
	model.Left:  ebiten.KeyA,
	model.Right: ebiten.KeyD,
}

var digitKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press from down to release.
type Stroke struct {
	source   StrokeSource
	initX    int
	initY    int
	currentX int
	currentY int
	released bool
	overSlop bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
	dx, dy := s.currentX-s.initX, s.currentY-s.initY
	if dx*dx+dy*dy > TAP_SLOP*TAP_SLOP {
		s.overSlop = true
	}
}

// Tap reports where a released stroke that never left its slop started.
func (s *Stroke) Tap() (image.Point, bool) {
	if !s.released || s.overSlop {
		return image.Point{}, false
	}
	return image.Pt(s.initX, s.initY), true
}

// input is the held keyboard state for this tick.
func (c *Client) input() sim.Input {
	var in sim.Input
	for b, k := range moveKeys {
		in.Move[b] = ebiten.IsKeyPressed(k)
	}
	for d, k := range shootKeys {
		in.Shoot[d] = ebiten.IsKeyPressed(k)
	}
	return in
}

func (c *Client) taps() []image.Point {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		c.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	var taps []image.Point
	for s := range c.strokes {
		s.Update()
		if !s.released {
			continue
		}
		if p, ok := s.Tap(); ok {
			taps = append(taps, p)
		}
		delete(c.strokes, s)
	}
	return taps
}

// uiEvents turns this tick's key presses and taps into machine events,
// read against the last rendered frame.
func (c *Client) uiEvents() []game.UIEvent {
	var evs []game.UIEvent
	pressed := inpututil.IsKeyJustPressed
	add := func(ev game.UIEvent) { evs = append(evs, ev) }

	if pressed(ebiten.KeyQ) {
		add(game.Event(game.UI_QUIT))
	}
	if pressed(ebiten.KeyM) {
		add(game.Event(game.UI_TOGGLE_MUSIC))
	}
	if pressed(ebiten.KeyEscape) {
		add(game.Event(game.UI_BACK))
	}

	switch c.frame.State {
	case game.ST_MENU:
		if pressed(ebiten.KeyP) || pressed(ebiten.KeyEnter) {
			add(game.Event(game.UI_PLAY))
		}
		if pressed(ebiten.KeyC) {
			add(game.Event(game.UI_SELECT_PLAYER))
		}
		if pressed(ebiten.KeyH) {
			add(game.Event(game.UI_HELP))
		}
		if pressed(ebiten.KeyS) {
			add(game.Event(game.UI_SCORES))
		}
	case game.ST_DIFFICULTY_SELECT:
		for i, r := range model.Rulesets {
			if pressed(digitKeys[i]) {
				add(game.ChooseRuleset(r))
			}
		}
	case game.ST_PLAYER_SELECT:
		for i := 0; i < game.AVATARS; i++ {
			if pressed(digitKeys[i]) {
				add(game.PickPlayer(i))
			}
		}
	case game.ST_SCORE_BOARD:
		if pressed(ebiten.KeyR) {
			add(game.Event(game.UI_RESET_SCORES))
		}
		if pressed(ebiten.KeyY) {
			add(game.Event(game.UI_CONFIRM_YES))
		}
		if pressed(ebiten.KeyN) {
			add(game.Event(game.UI_CONFIRM_NO))
		}
	case game.ST_ACTIVE_SESSION:
		if pressed(ebiten.KeyP) {
			add(game.Event(game.UI_PAUSE))
		}
	case game.ST_SESSION_LOST, game.ST_SESSION_WON:
		if pressed(ebiten.KeyC) {
			c.copySummary()
		}
		if pressed(ebiten.KeyEnter) || pressed(ebiten.KeySpace) {
			add(game.Event(game.UI_ANY_INPUT))
		}
	}

	for _, p := range c.taps() {
		if ev, ok := c.buttonAt(p); ok {
			add(ev)
		} else if c.frame.State == game.ST_SESSION_LOST || c.frame.State == game.ST_SESSION_WON {
			add(game.Event(game.UI_ANY_INPUT))
		}
	}
	return evs
}
