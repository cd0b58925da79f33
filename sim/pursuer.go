package sim

import (
	"fmt"
	"math"

	"github.com/zucenko/maize/model"
)

type PursuerState int

const (
	Idle PursuerState = iota
	Pursuing
	ArrivedAtHop
)

func (s PursuerState) Name() string {
	switch s {
	case Idle:
		return "IDLE"
	case Pursuing:
		return "PURSUING"
	case ArrivedAtHop:
		return "ARRIVED_AT_HOP"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Pursuer walks cell to cell toward a moving target. Pos always lies on the
// segment between From and Cell (the hop it is heading to).
type Pursuer struct {
	From  model.Cell
	Cell  model.Cell
	Pos   model.Vec
	Path  []model.Cell
	Speed float64
	State PursuerState

	// Recomputes counts path searches; one per change of the target's cell.
	Recomputes int

	goal    model.Cell
	hasGoal bool
}

func NewPursuer(at model.Cell, speed float64) *Pursuer {
	return &Pursuer{
		From:  at,
		Cell:  at,
		Pos:   at.Origin(),
		Speed: speed,
		State: Idle,
	}
}

// Advance moves the pursuer one tick toward target. The cached path is only
// rebuilt when the target has moved to another cell. State is ArrivedAtHop
// for the tick that snapped onto a hop and took the next one.
func (p *Pursuer) Advance(g *model.Grid, target model.Vec, dt float64) {
	if p.State == ArrivedAtHop {
		p.State = Pursuing
	}
	goal := model.CellOf(target)
	if !p.hasGoal || goal != p.goal {
		p.goal, p.hasGoal = goal, true
		p.Path = ShortestPath(g, p.Cell, goal)
		p.Recomputes++
		if len(p.Path) > 0 && p.State == Idle {
			p.State = Pursuing
		}
	}

	step := p.Speed * dt
	hop := p.Cell.Origin()
	if math.Abs(p.Pos.X-hop.X) < step && math.Abs(p.Pos.Y-hop.Y) < step {
		p.Pos = hop
		p.From = p.Cell
		if len(p.Path) > 0 {
			p.Cell, p.Path = p.Path[0], p.Path[1:]
			p.State = ArrivedAtHop
		} else {
			p.State = Idle
		}
	}
	p.Pos = approach(p.Pos, p.Cell.Origin(), step)
}

// Collides is a coarse circle test: strictly closer than threshold.
func (p *Pursuer) Collides(player model.Vec, threshold float64) bool {
	return p.Pos.Sub(player).Len() < threshold
}

func (p *Pursuer) Rect() model.Rect {
	return model.Square(p.Pos, model.BodySize)
}
