package model

import "math"

// ViewportConfig converts logical cell units to pixels. The simulation never
// sees pixels; renderers own one of these.
type ViewportConfig struct {
	CellSize     float64
	HeaderOffset float64
}

// FitViewport picks the largest whole-pixel cell that fits cols×rows below the header.
func FitViewport(width, height, cols, rows int, header float64) ViewportConfig {
	size := math.Min(float64(width/cols), float64((height-int(header))/rows))
	if size < 1 {
		size = 1
	}
	return ViewportConfig{CellSize: size, HeaderOffset: header}
}

func (v ViewportConfig) ToScreen(p Vec) (float64, float64) {
	return p.X * v.CellSize, p.Y*v.CellSize + v.HeaderOffset
}

func (v ViewportConfig) FromScreen(x, y float64) Vec {
	return Vec{X: x / v.CellSize, Y: (y - v.HeaderOffset) / v.CellSize}
}

func (v ViewportConfig) CellAt(x, y float64) Cell {
	return CellOf(v.FromScreen(x, y))
}

// Snapshot is the read-only view handed to render collaborators once per tick.
type Snapshot struct {
	SessionID   string
	Ruleset     Ruleset
	Grid        *Grid
	Start, Goal Cell
	Player      Vec
	Pursuers    []Vec
	Projectiles []Vec
	Keys        []Cell
	Collected   int
	KeysTotal   int
	Elapsed     float64
	Outcome     Outcome
	Controls    [4]Binding
}

// Setup and Frame are the wire form of a Snapshot: the maze is sent once per
// session, moving parts every tick.
type Setup struct {
	SessionID string
	Ruleset   Ruleset
	Cols      int
	Rows      int
	Layout    []string
	Start     Cell
	Goal      Cell
	KeysTotal int
}

type Frame struct {
	SessionID   string
	Player      Vec
	Pursuers    []Vec
	Projectiles []Vec
	Keys        []Cell
	Collected   int
	Elapsed     float64
	Outcome     Outcome
}

type ServerMessage struct {
	Setup  []Setup
	Frames []Frame
}

// ClientMessage is what a watcher may send: the ruleset name for the next demo.
type ClientMessage struct {
	Ruleset string
}

func (s Snapshot) Setup() Setup {
	return Setup{
		SessionID: s.SessionID,
		Ruleset:   s.Ruleset,
		Cols:      s.Grid.Cols,
		Rows:      s.Grid.Rows,
		Layout:    s.Grid.Layout(),
		Start:     s.Start,
		Goal:      s.Goal,
		KeysTotal: s.KeysTotal,
	}
}

func (s Snapshot) Frame() Frame {
	return Frame{
		SessionID:   s.SessionID,
		Player:      s.Player,
		Pursuers:    s.Pursuers,
		Projectiles: s.Projectiles,
		Keys:        s.Keys,
		Collected:   s.Collected,
		Elapsed:     s.Elapsed,
		Outcome:     s.Outcome,
	}
}
