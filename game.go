package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/score"
	"github.com/zucenko/maize/sound"
)

const TITLE = "Mystic Maize"

// ErrQuit ends ebiten.Run when the machine stops running.
var ErrQuit = errors.New("quit")

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

func (c GameColor) With(alpha float64) color.Color {
	return color.RGBA{uint8(c.r * 255 * alpha), uint8(c.g * 255 * alpha), uint8(c.b * 255 * alpha), uint8(alpha * 255)}
}

var COLOR_BACKGROUND = HexToF32(0x1b2612)
var COLOR_HEDGE = HexToF32(0x3f7d20)
var COLOR_PATH = HexToF32(0xc8b273)
var COLOR_EXIT = HexToF32(0xedbc1e)
var COLOR_LOCKED = HexToF32(0x6b6b6b)
var COLOR_KEY = HexToF32(0xffd700)
var COLOR_PURSUER = HexToF32(0xfa3636)
var COLOR_SHOT = HexToF32(0xffffff)
var COLOR_TEXT = HexToF32(0xf2ecd0)

// COLORS are the player avatars.
var COLORS = [game.AVATARS]GameColor{
	HexToF32(0xfa7a36),
	HexToF32(0xedbc1e),
	HexToF32(0x0abd38),
	HexToF32(0x34fbf6),
	HexToF32(0x5a4eff),
	HexToF32(0xcb18dd),
}

type button struct {
	label string
	ev    game.UIEvent
	rect  image.Rectangle
}

// Client is the desktop front-end: it feeds keyboard and taps to the machine
// and draws whatever frame the machine last rendered.
type Client struct {
	machine *game.Machine
	frame   game.Frame
	strokes map[*Stroke]struct{}
	Tweens  map[*gween.Tween]*Action

	width, height int
	header        float64
	face          font.Face
	panel         *Nine

	banner      float64
	flash       float64
	notice      string
	noticeAlpha float64
	collected   int
	last        time.Time
	copy        func(string) error
	log         *log.Entry
}

func NewClient(c cfg.Config) *Client {
	return &Client{
		strokes: map[*Stroke]struct{}{},
		Tweens:  make(map[*gween.Tween]*Action),
		width:   c.Window.Width,
		height:  c.Window.Height,
		header:  c.Window.Header,
		face:    loadFace(c.Window.Font, 22),
		panel:   NewNine(loadPanel(c.Window.Panel), PANEL_CORNER, 1),
		last:    time.Now(),
		copy:    clipboard.WriteAll,
		log:     log.WithField("component", "client"),
	}
}

// Render is called by the machine once per tick.
func (c *Client) Render(f game.Frame) {
	if f.State != c.frame.State {
		c.bannerIn()
	}
	if f.Snapshot != nil && f.State == game.ST_ACTIVE_SESSION {
		if f.Snapshot.Collected > c.collected {
			c.play(gween.New(1, 0, 0.6, ease.OutQuad), func(v float32) { c.flash = float64(v) })
		}
		c.collected = f.Snapshot.Collected
	} else {
		c.collected = 0
	}
	c.frame = f
}

func (c *Client) bannerIn() {
	c.banner = -80
	c.play(gween.New(-80, 0, 0.35, ease.OutBack), func(v float32) { c.banner = float64(v) })
}

func (c *Client) copySummary() {
	line := game.Summary(c.frame)
	if line == "" {
		return
	}
	if err := c.copy(line); err != nil {
		c.log.Warnf("cant copy to clipboard: %v", err)
		return
	}
	c.notice = "copied to clipboard"
	c.play(gween.New(0, 1, 0.2, ease.Linear), func(v float32) { c.noticeAlpha = float64(v) }).
		next(gween.New(1, 0, 1.5, ease.InQuad), func(v float32) { c.noticeAlpha = float64(v) }).
		addOnFinish(func() { c.notice = "" })
}

func (c *Client) update(screen *ebiten.Image) error {
	now := time.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	c.updateTweens(float32(dt))
	for _, ev := range c.uiEvents() {
		c.machine.Handle(ev)
	}
	c.machine.Update(c.input(), dt)
	if !c.machine.Running() {
		return ErrQuit
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	c.draw(screen)
	return nil
}

func (c *Client) say(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, c.face, x, y, clr)
}

func (c *Client) centered(dst *ebiten.Image, s string, y int, clr color.Color) {
	w := font.MeasureString(c.face, s).Ceil()
	c.say(dst, s, (c.width-w)/2, y, clr)
}

// buttons lays out the tappable entries of the current screen.
func (c *Client) buttons() []button {
	var entries []button
	add := func(label string, ev game.UIEvent) {
		entries = append(entries, button{label: label, ev: ev})
	}
	top := 180
	switch c.frame.State {
	case game.ST_MENU:
		add("Play", game.Event(game.UI_PLAY))
		add("Choose player", game.Event(game.UI_SELECT_PLAYER))
		add("Help", game.Event(game.UI_HELP))
		add("High scores", game.Event(game.UI_SCORES))
		add("Quit", game.Event(game.UI_QUIT))
	case game.ST_DIFFICULTY_SELECT:
		for i, r := range model.Rulesets {
			add(fmt.Sprintf("%d  %s", i+1, r.Name()), game.ChooseRuleset(r))
		}
		add("Back", game.Event(game.UI_BACK))
	case game.ST_PLAYER_SELECT:
		top = 260
		add("Back", game.Event(game.UI_BACK))
	case game.ST_HELP:
		top = c.height - 120
		add("Back", game.Event(game.UI_BACK))
	case game.ST_SCORE_BOARD:
		top = c.height - 180
		if c.frame.Confirming {
			add("Yes, reset", game.Event(game.UI_CONFIRM_YES))
			add("No", game.Event(game.UI_CONFIRM_NO))
		} else {
			add("Reset", game.Event(game.UI_RESET_SCORES))
			add("Back", game.Event(game.UI_BACK))
		}
	}
	const w, h, gap = 260, 40, 12
	for i := range entries {
		x := (c.width - w) / 2
		y := top + i*(h+gap)
		entries[i].rect = image.Rect(x, y, x+w, y+h)
	}
	return entries
}

// avatarRects are the tappable swatches of PLAYER_SELECT.
func (c *Client) avatarRects() []image.Rectangle {
	const side, gap = 56, 16
	total := game.AVATARS*side + (game.AVATARS-1)*gap
	x0 := (c.width - total) / 2
	rects := make([]image.Rectangle, game.AVATARS)
	for i := range rects {
		x := x0 + i*(side+gap)
		rects[i] = image.Rect(x, 160, x+side, 160+side)
	}
	return rects
}

func (c *Client) buttonAt(p image.Point) (game.UIEvent, bool) {
	for _, b := range c.buttons() {
		if p.In(b.rect) {
			return b.ev, true
		}
	}
	if c.frame.State == game.ST_PLAYER_SELECT {
		for i, r := range c.avatarRects() {
			if p.In(r) {
				return game.PickPlayer(i), true
			}
		}
	}
	return game.UIEvent{}, false
}

func (c *Client) drawPanel(screen *ebiten.Image, r image.Rectangle, alpha float64) {
	c.panel.Alpha = alpha
	c.panel.SetBounds(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.panel.Draw(screen)
}

func (c *Client) draw(screen *ebiten.Image) {
	if err := screen.Fill(COLOR_BACKGROUND.With(1)); err != nil {
		c.log.Warnf("%v", err)
	}
	f := c.frame
	ink := COLOR_TEXT.With(1)
	title := 80 + int(c.banner)

	switch f.State {
	case game.ST_INTRO:
		c.centered(screen, TITLE, c.height/2-20, ink)
		w := float64(c.width) * 0.6
		x := (float64(c.width) - w) / 2
		ebitenutil.DrawRect(screen, x, float64(c.height/2+10), w, 6, COLOR_HEDGE.With(1))
		ebitenutil.DrawRect(screen, x, float64(c.height/2+10), w*f.IntroProgress, 6, COLOR_EXIT.With(1))
	case game.ST_MENU:
		c.centered(screen, TITLE, title, COLOR_EXIT.With(1))
		music := "music off"
		if f.Music {
			music = "music on"
		}
		c.centered(screen, music, c.height-40, ink)
	case game.ST_DIFFICULTY_SELECT:
		c.centered(screen, "Choose difficulty", title, ink)
	case game.ST_PLAYER_SELECT:
		c.centered(screen, "Choose player", title, ink)
		for i, r := range c.avatarRects() {
			if i == f.Avatar {
				ebitenutil.DrawRect(screen, float64(r.Min.X-4), float64(r.Min.Y-4), float64(r.Dx()+8), float64(r.Dy()+8), ink)
			}
			ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), COLORS[i].With(1))
		}
	case game.ST_HELP:
		c.centered(screen, "How to play", title, ink)
		for i, l := range game.Help {
			c.centered(screen, l, 160+i*32, ink)
		}
	case game.ST_SCORE_BOARD:
		c.centered(screen, "High scores", title, ink)
		for i, l := range game.RecordLines(f) {
			c.centered(screen, l, 180+i*36, ink)
		}
		if f.Confirming {
			c.centered(screen, "Reset all records?", c.height-200, COLOR_PURSUER.With(1))
		}
	case game.ST_ACTIVE_SESSION, game.ST_SESSION_LOST, game.ST_SESSION_WON:
		if f.Snapshot != nil {
			c.drawSession(screen, f, f.Snapshot)
		}
	}

	for _, b := range c.buttons() {
		c.drawPanel(screen, b.rect, 1)
		w := font.MeasureString(c.face, b.label).Ceil()
		c.say(screen, b.label, b.rect.Min.X+(b.rect.Dx()-w)/2, b.rect.Max.Y-12, ink)
	}
	if c.notice != "" {
		c.centered(screen, c.notice, c.height-16, COLOR_TEXT.With(c.noticeAlpha))
	}
}

func (c *Client) box(screen *ebiten.Image, v model.ViewportConfig, at model.Vec, size float64, clr color.Color) {
	x, y := v.ToScreen(at)
	ebitenutil.DrawRect(screen, x, y, size*v.CellSize, size*v.CellSize, clr)
}

func (c *Client) drawSession(screen *ebiten.Image, f game.Frame, s *model.Snapshot) {
	g := s.Grid
	v := model.FitViewport(c.width, c.height, g.Cols, g.Rows, c.header)

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			cell := model.Cell{X: x, Y: y}
			clr := COLOR_PATH
			if !g.Open(cell) {
				clr = COLOR_HEDGE
			}
			c.box(screen, v, cell.Origin(), 1, clr.With(1))
		}
	}
	exit := COLOR_EXIT
	if s.Collected < s.KeysTotal {
		exit = COLOR_LOCKED
	}
	c.box(screen, v, s.Goal.Origin(), 1, exit.With(1))
	for _, k := range s.Keys {
		c.box(screen, v, k.Origin().Add(model.Vec{X: 0.3, Y: 0.3}), 0.4, COLOR_KEY.With(1))
	}
	for _, p := range s.Projectiles {
		c.box(screen, v, p, model.ProjectileSize, COLOR_SHOT.With(1))
	}
	for _, p := range s.Pursuers {
		c.box(screen, v, p, model.BodySize, COLOR_PURSUER.With(1))
	}
	c.box(screen, v, s.Player, model.BodySize, COLORS[f.Avatar].With(1))

	ink := COLOR_TEXT.With(1)
	if c.flash > 0 {
		ebitenutil.DrawRect(screen, 0, 0, float64(c.width), c.header, COLOR_KEY.With(c.flash*0.6))
	}
	hud := fmt.Sprintf("%s   %.1fs", s.Ruleset.Name(), s.Elapsed)
	if s.KeysTotal > 0 {
		hud += fmt.Sprintf("   keys %d/%d", s.Collected, s.KeysTotal)
	}
	c.say(screen, hud, 12, int(c.header)-16, ink)

	var msg string
	switch {
	case f.State == game.ST_SESSION_LOST:
		msg = "Caught!"
	case f.State == game.ST_SESSION_WON:
		msg = fmt.Sprintf("Escaped in %.2fs", s.Elapsed)
		if f.NewRecord {
			msg += "  new record!"
		}
	case f.Paused:
		msg = "Paused"
	default:
		return
	}
	y := c.height/2 - 60 + int(c.banner)
	c.drawPanel(screen, image.Rect(c.width/2-200, y, c.width/2+200, y+120), 0.95)
	c.centered(screen, msg, y+50, ink)
	if f.State != game.ST_ACTIVE_SESSION {
		c.centered(screen, "Enter for menu, C copies the result", y+90, ink)
	}
}

func main() {
	c, err := cfg.Load(cfg.Path())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	c.ApplyLogging()

	player := sound.New(c.Audio.Volume, c.Audio.Music)
	defer player.Close()

	client := NewClient(c)
	client.machine = game.New(c, client, player, score.Open(c.ScoreFile))
	if err := ebiten.Run(client.update, c.Window.Width, c.Window.Height, 1, TITLE); err != nil && err != ErrQuit {
		log.Fatal(err)
	}
}
