package sim

import (
	"math"

	"github.com/zucenko/maize/model"
)

// maxSubstep bounds a single collision probe so a fast mover cannot skip a wall.
const maxSubstep = 0.25

// TryMove moves a size×size box by delta, resolving X then Y independently:
// a diagonal move into a wall keeps whichever axis is free, which gives wall
// sliding. The returned box never overlaps a wall cell.
func TryMove(pos, delta model.Vec, size float64, g *model.Grid) model.Vec {
	if delta.IsZero() {
		return pos
	}
	steps := int(math.Ceil(math.Max(math.Abs(delta.X), math.Abs(delta.Y)) / maxSubstep))
	if steps < 1 {
		steps = 1
	}
	part := delta.Scale(1 / float64(steps))
	for i := 0; i < steps; i++ {
		if part.X != 0 {
			next := model.Vec{X: pos.X + part.X, Y: pos.Y}
			if !g.Blocked(model.Square(next, size)) {
				pos = next
			}
		}
		if part.Y != 0 {
			next := model.Vec{X: pos.X, Y: pos.Y + part.Y}
			if !g.Blocked(model.Square(next, size)) {
				pos = next
			}
		}
	}
	return pos
}

// approach moves from toward to by at most step on each axis without overshooting.
func approach(from, to model.Vec, step float64) model.Vec {
	return model.Vec{X: approach1(from.X, to.X, step), Y: approach1(from.Y, to.Y, step)}
}

func approach1(from, to, step float64) float64 {
	switch {
	case from < to:
		return from + math.Min(step, to-from)
	case from > to:
		return from - math.Min(step, from-to)
	default:
		return from
	}
}
