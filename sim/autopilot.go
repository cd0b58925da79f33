package sim

import (
	"github.com/zucenko/maize/model"
)

// bodySlack is how far a body can shift inside its cell without touching the next one.
const bodySlack = 1 - model.BodySize - 1e-9

// Autopilot plays a session by itself: it walks the shortest path to the
// nearest remaining key, then to the goal, and shoots pursuers that share a
// straight open corridor with the player. It presses keys through the
// session's control scheme exactly like a human would.
//
// It assumes one tick moves the player by less than the slack between the
// body and its cell (1 - model.BodySize).
type Autopilot struct {
	Shoot bool

	dest    model.Cell
	hasDest bool
	next    model.Cell
	path    []model.Cell
}

func NewAutopilot(shoot bool) *Autopilot {
	return &Autopilot{Shoot: shoot}
}

func (a *Autopilot) Steer(s *Session) Input {
	g := s.Grid()
	pos := s.Player()
	dest := a.destination(s)

	if !a.hasDest || dest != a.dest {
		from := model.CellOf(pos.Add(model.Vec{X: model.BodySize / 2, Y: model.BodySize / 2}))
		a.dest, a.hasDest = dest, true
		a.next = from
		a.path = ShortestPath(g, from, dest)
	}
	if inside(pos, a.next) && len(a.path) > 0 {
		a.next, a.path = a.path[0], a.path[1:]
	}

	dirs := make([]model.Direction, 0, 2)
	switch {
	case pos.X < float64(a.next.X):
		dirs = append(dirs, model.Right)
	case pos.X > float64(a.next.X)+bodySlack:
		dirs = append(dirs, model.Left)
	}
	switch {
	case pos.Y < float64(a.next.Y):
		dirs = append(dirs, model.Down)
	case pos.Y > float64(a.next.Y)+bodySlack:
		dirs = append(dirs, model.Up)
	}
	in := s.Controls().Press(dirs...)

	if a.Shoot && s.Ruleset().Shooting() {
		here := model.CellOf(pos)
		for _, p := range s.Pursuers().Positions() {
			if d, ok := lineOfSight(g, here, model.CellOf(p)); ok {
				in.Shoot[d] = true
			}
		}
	}
	return in
}

// destination is the closest remaining key by path length, or the goal.
func (a *Autopilot) destination(s *Session) model.Cell {
	snap := s.Snapshot()
	if len(snap.Keys) == 0 {
		return s.Goal()
	}
	from := model.CellOf(s.Player())
	best, bestLen := s.Goal(), -1
	for _, k := range snap.Keys {
		n := len(ShortestPath(s.Grid(), from, k))
		if bestLen < 0 || n < bestLen {
			best, bestLen = k, n
		}
	}
	return best
}

// inside reports whether a player body at pos lies entirely within cell c.
func inside(pos model.Vec, c model.Cell) bool {
	return pos.X >= float64(c.X) && pos.X <= float64(c.X)+bodySlack &&
		pos.Y >= float64(c.Y) && pos.Y <= float64(c.Y)+bodySlack
}

// lineOfSight finds the direction from a to b when both share a row or column
// with nothing but open cells in between.
func lineOfSight(g *model.Grid, a, b model.Cell) (model.Direction, bool) {
	if a == b || (a.X != b.X && a.Y != b.Y) {
		return model.Up, false
	}
	var d model.Direction
	switch {
	case b.X > a.X:
		d = model.Right
	case b.X < a.X:
		d = model.Left
	case b.Y > a.Y:
		d = model.Down
	default:
		d = model.Up
	}
	for c := a.Add(d); c != b; c = c.Add(d) {
		if !g.Open(c) {
			return d, false
		}
	}
	return d, true
}
