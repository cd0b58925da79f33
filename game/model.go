package game

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/score"
	"github.com/zucenko/maize/sim"
)

// AVATARS is how many player presets PLAYER_SELECT offers.
const AVATARS = 6

type State int

const (
	ST_INTRO State = iota + 1
	ST_MENU
	ST_DIFFICULTY_SELECT
	ST_PLAYER_SELECT
	ST_HELP
	ST_SCORE_BOARD
	ST_ACTIVE_SESSION
	ST_SESSION_LOST
	ST_SESSION_WON
)

func (s State) Name() string {
	switch s {
	case ST_INTRO:
		return "INTRO"
	case ST_MENU:
		return "MENU"
	case ST_DIFFICULTY_SELECT:
		return "DIFFICULTY_SELECT"
	case ST_PLAYER_SELECT:
		return "PLAYER_SELECT"
	case ST_HELP:
		return "HELP"
	case ST_SCORE_BOARD:
		return "SCORE_BOARD"
	case ST_ACTIVE_SESSION:
		return "ACTIVE_SESSION"
	case ST_SESSION_LOST:
		return "SESSION_LOST"
	case ST_SESSION_WON:
		return "SESSION_WON"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type UIKind int

const (
	UI_PLAY UIKind = iota + 1
	UI_SELECT_PLAYER
	UI_PICK_PLAYER
	UI_HELP
	UI_SCORES
	UI_BACK
	UI_CHOOSE_RULESET
	UI_RESET_SCORES
	UI_CONFIRM_YES
	UI_CONFIRM_NO
	UI_PAUSE
	UI_TOGGLE_MUSIC
	UI_ANY_INPUT
	UI_QUIT
)

func (k UIKind) Name() string {
	switch k {
	case UI_PLAY:
		return "PLAY"
	case UI_SELECT_PLAYER:
		return "SELECT_PLAYER"
	case UI_PICK_PLAYER:
		return "PICK_PLAYER"
	case UI_HELP:
		return "HELP"
	case UI_SCORES:
		return "SCORES"
	case UI_BACK:
		return "BACK"
	case UI_CHOOSE_RULESET:
		return "CHOOSE_RULESET"
	case UI_RESET_SCORES:
		return "RESET_SCORES"
	case UI_CONFIRM_YES:
		return "CONFIRM_YES"
	case UI_CONFIRM_NO:
		return "CONFIRM_NO"
	case UI_PAUSE:
		return "PAUSE"
	case UI_TOGGLE_MUSIC:
		return "TOGGLE_MUSIC"
	case UI_ANY_INPUT:
		return "ANY_INPUT"
	case UI_QUIT:
		return "QUIT"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// UIEvent is one discrete menu action. Ruleset and Player are only read by
// UI_CHOOSE_RULESET and UI_PICK_PLAYER.
type UIEvent struct {
	Kind    UIKind
	Ruleset model.Ruleset
	Player  int
}

func Event(k UIKind) UIEvent {
	return UIEvent{Kind: k}
}

func ChooseRuleset(r model.Ruleset) UIEvent {
	return UIEvent{Kind: UI_CHOOSE_RULESET, Ruleset: r}
}

func PickPlayer(n int) UIEvent {
	return UIEvent{Kind: UI_PICK_PLAYER, Player: n}
}

// Frame is everything a renderer needs for one tick. Snapshot is nil
// outside ACTIVE_SESSION, SESSION_LOST and SESSION_WON.
type Frame struct {
	State         State
	Confirming    bool
	Paused        bool
	Music         bool
	Avatar        int
	Ruleset       model.Ruleset
	IntroProgress float64
	Snapshot      *model.Snapshot
	NewRecord     bool
	Records       map[model.Ruleset]score.Record
}

type Renderer interface {
	Render(f Frame)
}

type Sound interface {
	Play(e model.SoundEvent)
	SetMusic(on bool)
}

type Scores interface {
	RecordIfBest(r model.Ruleset, elapsed float64) bool
	Best(r model.Ruleset) (score.Record, bool)
	Reset() error
}

type NopRenderer struct{}

func (NopRenderer) Render(Frame) {}

type NopSound struct{}

func (NopSound) Play(model.SoundEvent) {}
func (NopSound) SetMusic(bool)         {}

type NopScores struct{}

func (NopScores) RecordIfBest(model.Ruleset, float64) bool { return false }
func (NopScores) Best(model.Ruleset) (score.Record, bool)  { return score.Record{}, false }
func (NopScores) Reset() error                             { return nil }

// Machine sequences menus, sessions and their outcomes. It never blocks:
// Handle applies one UI event, Update advances one tick.
type Machine struct {
	State      State
	Confirming bool
	Paused     bool
	Music      bool
	Avatar     int
	Ruleset    model.Ruleset
	NewRecord  bool

	cfg      cfg.Config
	session  *sim.Session
	last     *model.Snapshot
	intro    *gween.Tween
	progress float64
	running  bool

	renderer Renderer
	sound    Sound
	scores   Scores
	log      *log.Entry
}
