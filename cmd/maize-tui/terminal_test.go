package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 30)
	t.Cleanup(s.Fini)
	return s
}

func screenText(s tcell.Screen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func press(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func testConfig() cfg.Config {
	c := cfg.Defaults()
	c.IntroDuration = 0.1
	c.Seed = 9
	return c
}

func TestKeysPerState(t *testing.T) {
	term := NewTerminal(simScreen(t))
	now := time.Now()

	term.frame = game.Frame{State: game.ST_MENU}
	ev, ok := term.Key(press('p'), now)
	require.True(t, ok)
	assert.Equal(t, game.UI_PLAY, ev.Kind)
	ev, ok = term.Key(press('S'), now)
	require.True(t, ok)
	assert.Equal(t, game.UI_SCORES, ev.Kind)

	term.frame = game.Frame{State: game.ST_DIFFICULTY_SELECT}
	ev, ok = term.Key(press('2'), now)
	require.True(t, ok)
	assert.Equal(t, game.ChooseRuleset(model.Intermediate), ev)
	_, ok = term.Key(press('4'), now)
	assert.False(t, ok)

	term.frame = game.Frame{State: game.ST_PLAYER_SELECT}
	ev, ok = term.Key(press('6'), now)
	require.True(t, ok)
	assert.Equal(t, game.PickPlayer(5), ev)
	_, ok = term.Key(press('7'), now)
	assert.False(t, ok)

	term.frame = game.Frame{State: game.ST_SCORE_BOARD, Confirming: true}
	ev, _ = term.Key(press('y'), now)
	assert.Equal(t, game.UI_CONFIRM_YES, ev.Kind)

	ev, ok = term.Key(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now)
	require.True(t, ok)
	assert.Equal(t, game.UI_BACK, ev.Kind)
	ev, _ = term.Key(press('m'), now)
	assert.Equal(t, game.UI_TOGGLE_MUSIC, ev.Kind)
	ev, _ = term.Key(press('q'), now)
	assert.Equal(t, game.UI_QUIT, ev.Kind)
}

func TestHeldKeysDecay(t *testing.T) {
	term := NewTerminal(simScreen(t))
	term.frame = game.Frame{State: game.ST_ACTIVE_SESSION}
	now := time.Now()

	_, ok := term.Key(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)
	assert.False(t, ok)
	_, ok = term.Key(press('w'), now)
	assert.False(t, ok)

	in := term.Input(now.Add(HOLD / 2))
	assert.Equal(t, [4]bool{false, false, true, false}, in.Move)
	assert.True(t, in.Shoot[model.Up])
	assert.False(t, in.Shoot[model.Down])

	assert.Equal(t, sim.Input{}, term.Input(now.Add(HOLD)))

	ev, ok := term.Key(press('p'), now)
	require.True(t, ok)
	assert.Equal(t, game.UI_PAUSE, ev.Kind)
}

func TestCopySummaryOnFinish(t *testing.T) {
	term := NewTerminal(simScreen(t))
	var copied []string
	term.copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	term.frame = game.Frame{
		State:    game.ST_SESSION_WON,
		Ruleset:  model.Basic,
		Snapshot: &model.Snapshot{Outcome: model.GoalReached, Elapsed: 20},
	}

	_, ok := term.Key(press('c'), time.Now())
	assert.False(t, ok)
	assert.Equal(t, []string{"Mystic Maize MEDIUM: escaped after 20.00s"}, copied)

	ev, ok := term.Key(press('x'), time.Now())
	require.True(t, ok)
	assert.Equal(t, game.UI_ANY_INPUT, ev.Kind)
}

func TestRenderMenu(t *testing.T) {
	screen := simScreen(t)
	term := NewTerminal(screen)
	term.Render(game.Frame{State: game.ST_MENU, Music: true})

	text := screenText(screen)
	assert.Contains(t, text, TITLE)
	assert.Contains(t, text, "[P] play")
	assert.Contains(t, text, "music on")
	assert.Equal(t, game.ST_MENU, term.frame.State)
}

func TestRenderSession(t *testing.T) {
	screen := simScreen(t)
	term := NewTerminal(screen)
	m := game.New(testConfig(), term, nil, nil)
	for i := 0; i < 10 && m.State == game.ST_INTRO; i++ {
		m.Update(sim.Input{}, 0.05)
	}
	require.Equal(t, game.ST_MENU, m.State)
	m.Handle(game.Event(game.UI_PLAY))
	m.Handle(game.ChooseRuleset(model.Basic))
	require.Equal(t, game.ST_ACTIVE_SESSION, m.State)
	m.Update(sim.Input{}, 0)

	assert.Contains(t, screenText(screen), "MEDIUM")
	r, _, _, _ := screen.GetContent(0, MAZE_TOP)
	assert.Equal(t, '█', r)
	start := model.Cell{X: 3, Y: 3}
	r, _, _, _ = screen.GetContent(start.X*2, MAZE_TOP+start.Y)
	assert.Equal(t, avatars[0].glyph, r)
}

func TestRunStopsOnQuit(t *testing.T) {
	screen := simScreen(t)
	term := NewTerminal(screen)
	m := game.New(testConfig(), term, nil, nil)

	done := make(chan struct{})
	go func() {
		term.Run(m, 60)
		close(done)
	}()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.False(t, m.Running())
}
