package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/model"
)

const TITLE = "MYSTIC MAIZE"

// MAZE_TOP is the screen row of the first maze row; cells are two columns wide.
const MAZE_TOP = 2

var (
	plain  = tcell.StyleDefault
	bold   = tcell.StyleDefault.Bold(true)
	dim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hedge  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorDarkGreen)
	exit   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	locked = tcell.StyleDefault.Foreground(tcell.ColorGray)
	key    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	enemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	shot   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true).Reverse(true)
)

var avatars = [game.AVATARS]struct {
	glyph rune
	color tcell.Color
}{
	{'@', tcell.ColorAqua},
	{'&', tcell.ColorFuchsia},
	{'%', tcell.ColorOrange},
	{'$', tcell.ColorLime},
	{'#', tcell.ColorSkyblue},
	{'+', tcell.ColorWhite},
}

func (t *Terminal) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (t *Terminal) center(y int, style tcell.Style, s string) {
	w, _ := t.screen.Size()
	t.text((w-runewidth.StringWidth(s))/2, y, style, s)
}

func (t *Terminal) lines(y int, style tcell.Style, lines []string) {
	for i, l := range lines {
		t.center(y+i, style, l)
	}
}

func (t *Terminal) draw(f game.Frame) {
	switch f.State {
	case game.ST_INTRO:
		t.drawIntro(f)
	case game.ST_MENU:
		t.center(2, bold, TITLE)
		t.lines(5, plain, []string{
			"[P] play",
			"[C] choose player",
			"[H] help",
			"[S] high scores",
			"[Q] quit",
		})
		t.center(11, dim, "player "+string(avatars[f.Avatar].glyph)+"   music "+onOff(f.Music))
	case game.ST_DIFFICULTY_SELECT:
		t.center(2, bold, "CHOOSE DIFFICULTY")
		lines := make([]string, 0, len(model.Rulesets))
		for i, r := range model.Rulesets {
			lines = append(lines, fmt.Sprintf("[%d] %s", i+1, r.Name()))
		}
		t.lines(5, plain, lines)
		t.center(10, dim, "Esc back")
	case game.ST_PLAYER_SELECT:
		t.center(2, bold, "CHOOSE PLAYER")
		w, _ := t.screen.Size()
		x := (w - game.AVATARS*4) / 2
		for i, a := range avatars {
			style := plain.Foreground(a.color)
			if i == f.Avatar {
				style = style.Reverse(true)
			}
			t.text(x+i*4, 5, dim, fmt.Sprintf("%d", i+1))
			t.text(x+i*4+1, 5, style, string(a.glyph))
		}
		t.center(8, dim, "Esc back")
	case game.ST_HELP:
		t.center(2, bold, "HOW TO PLAY")
		t.lines(5, plain, game.Help)
		t.center(5+len(game.Help)+2, dim, "Esc back")
	case game.ST_SCORE_BOARD:
		t.center(2, bold, "HIGH SCORES")
		t.lines(5, plain, game.RecordLines(f))
		if f.Confirming {
			t.center(10, alert, " Reset all records? [Y] yes  [N] no ")
		} else {
			t.center(10, dim, "[R] reset   Esc back")
		}
	case game.ST_ACTIVE_SESSION, game.ST_SESSION_LOST, game.ST_SESSION_WON:
		if f.Snapshot != nil {
			t.drawSession(f, f.Snapshot)
		}
	}
}

func (t *Terminal) drawIntro(f game.Frame) {
	_, h := t.screen.Size()
	y := h / 2
	t.center(y-1, bold, TITLE)
	width := 30
	filled := int(f.IntroProgress * float64(width))
	if filled > width {
		filled = width
	}
	t.center(y+1, exit, "["+strings.Repeat("=", filled)+strings.Repeat(" ", width-filled)+"]")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func cellOf(p model.Vec, size float64) model.Cell {
	return model.CellOf(p.Add(model.Vec{X: size / 2, Y: size / 2}))
}

func (t *Terminal) put(c model.Cell, style tcell.Style, glyph string) {
	t.text(c.X*2, MAZE_TOP+c.Y, style, glyph)
}

func (t *Terminal) drawSession(f game.Frame, s *model.Snapshot) {
	header := fmt.Sprintf("%s  %s  %6.1fs", TITLE, s.Ruleset.Name(), s.Elapsed)
	if s.KeysTotal > 0 {
		header += fmt.Sprintf("  keys %d/%d", s.Collected, s.KeysTotal)
	}
	t.text(0, 0, bold, header)

	g := s.Grid
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := model.Cell{X: x, Y: y}
			if !g.Open(c) {
				t.put(c, hedge, "██")
			}
		}
	}
	t.put(s.Start, dim, "..")
	if s.Collected >= s.KeysTotal {
		t.put(s.Goal, exit, "><")
	} else {
		t.put(s.Goal, locked, "[]")
	}
	for _, k := range s.Keys {
		t.put(k, key, "¤ ")
	}
	for _, p := range s.Projectiles {
		t.put(cellOf(p, model.ProjectileSize), shot, "••")
	}
	for _, p := range s.Pursuers {
		t.put(cellOf(p, model.BodySize), enemy, "XX")
	}
	a := avatars[f.Avatar]
	t.put(cellOf(s.Player, model.BodySize), plain.Foreground(a.color).Bold(true), string(a.glyph)+" ")

	below := MAZE_TOP + g.Rows + 1
	switch {
	case f.State == game.ST_SESSION_LOST:
		t.text(0, below, alert, " CAUGHT! ")
		t.text(0, below+1, dim, "any key for menu, C copies the result")
	case f.State == game.ST_SESSION_WON:
		msg := fmt.Sprintf(" ESCAPED in %.2fs ", s.Elapsed)
		if f.NewRecord {
			msg += " NEW RECORD "
		}
		t.text(0, below, exit.Reverse(true), msg)
		for i, l := range game.RecordLines(f) {
			t.text(0, below+1+i, plain, l)
		}
		t.text(0, below+1+len(model.Rulesets), dim, "any key for menu, C copies the result")
	case f.Paused:
		t.text(0, below, alert, " PAUSED ")
	}
}
