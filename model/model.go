package model

import (
	"fmt"
	"math"
)

// Body sizes are in cell units. The source game used 28px cells with
// sprites shrunk by 6px, bullets of 6px and a goal probe inset by 10px.
const (
	BodySize       = 1 - 6.0/28
	ProjectileSize = 6.0 / 28
	GoalProbeInset = 10.0 / 28
	GoalProbeSize  = 13.0 / 28
)

type Tile uint8

const (
	Wall Tile = iota
	Open
)

type Cell struct {
	X, Y int
}

func (c Cell) Add(d Direction) Cell {
	s := d.Step()
	return Cell{X: c.X + s.X, Y: c.Y + s.Y}
}

// Origin is the continuous position of the cell's top-left corner.
func (c Cell) Origin() Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// CellOf floors a continuous position to the cell containing it.
func CellOf(v Vec) Cell {
	return Cell{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

type Rect struct {
	X, Y, W, H float64
}

func Square(at Vec, size float64) Rect {
	return Rect{X: at.X, Y: at.Y, W: size, H: size}
}

// Overlaps reports a strictly positive-area intersection; touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var Directions = [4]Direction{Up, Down, Left, Right}

// SearchOrder is the neighbor enumeration used by every grid search.
var SearchOrder = [4]Direction{Down, Right, Up, Left}

func (d Direction) Step() Cell {
	switch d {
	case Up:
		return Cell{0, -1}
	case Down:
		return Cell{0, 1}
	case Left:
		return Cell{-1, 0}
	case Right:
		return Cell{1, 0}
	default:
		return Cell{}
	}
}

func (d Direction) Unit() Vec {
	s := d.Step()
	return Vec{X: float64(s.X), Y: float64(s.Y)}
}

func (d Direction) Name() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

// Binding is a physical movement key. Which logical Direction it drives is
// decided per session by the control scheme.
type Binding int

const (
	ArrowUp Binding = iota
	ArrowDown
	ArrowLeft
	ArrowRight
)

var Bindings = [4]Binding{ArrowUp, ArrowDown, ArrowLeft, ArrowRight}

func (b Binding) Name() string {
	switch b {
	case ArrowUp:
		return "ARROW_UP"
	case ArrowDown:
		return "ARROW_DOWN"
	case ArrowLeft:
		return "ARROW_LEFT"
	case ArrowRight:
		return "ARROW_RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", b)
	}
}

type Ruleset int

const (
	Basic Ruleset = iota + 1
	Intermediate
	Advanced
)

var Rulesets = []Ruleset{Basic, Intermediate, Advanced}

// Known reports whether r is one of Rulesets.
func (r Ruleset) Known() bool {
	for _, x := range Rulesets {
		if x == r {
			return true
		}
	}
	return false
}

func (r Ruleset) Pursuers() int {
	switch r {
	case Intermediate, Advanced:
		return 3
	default:
		return 0
	}
}

func (r Ruleset) Shooting() bool {
	return r == Intermediate || r == Advanced
}

func (r Ruleset) KeysRequired() int {
	if r == Advanced {
		return 3
	}
	return 0
}

// Name is the label shown in menus and used as the score board key.
func (r Ruleset) Name() string {
	switch r {
	case Basic:
		return "MEDIUM"
	case Intermediate:
		return "HARD"
	case Advanced:
		return "EXTREME"
	default:
		return fmt.Sprintf("N/A(%d)", r)
	}
}

func ParseRuleset(name string) (Ruleset, bool) {
	for _, r := range Rulesets {
		if r.Name() == name {
			return r, true
		}
	}
	return 0, false
}

type Outcome int

const (
	Continue Outcome = iota
	PlayerCaught
	GoalReached
)

func (o Outcome) Terminal() bool {
	return o == PlayerCaught || o == GoalReached
}

func (o Outcome) Name() string {
	switch o {
	case Continue:
		return "CONTINUE"
	case PlayerCaught:
		return "PLAYER_CAUGHT"
	case GoalReached:
		return "GOAL_REACHED"
	default:
		return fmt.Sprintf("N/A(%d)", o)
	}
}

type SoundEvent int

const (
	ShotFired SoundEvent = iota + 1
	PursuerDestroyed
	KeyCollected
	Caught
	Escaped
)

func (e SoundEvent) Name() string {
	switch e {
	case ShotFired:
		return "shotFired"
	case PursuerDestroyed:
		return "pursuerDestroyed"
	case KeyCollected:
		return "keyCollected"
	case Caught:
		return "playerCaught"
	case Escaped:
		return "goalReached"
	default:
		return fmt.Sprintf("n/a:%d", e)
	}
}
