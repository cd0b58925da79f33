package sim

import (
	"math"

	"github.com/zucenko/maize/model"
)

const maxProjectileSubstep = 0.5

type Projectile struct {
	Pos model.Vec
	Dir model.Vec
}

// Projectiles owns every live shot. Nothing else keeps references to them.
type Projectiles struct {
	live []Projectile
}

func NewProjectiles() *Projectiles {
	return &Projectiles{live: make([]Projectile, 0)}
}

// Muzzle is where a shot leaves a player box at pos: the midpoint of the edge facing dir.
func Muzzle(pos model.Vec, d model.Direction) model.Vec {
	switch d {
	case model.Up:
		return model.Vec{X: pos.X + 0.5, Y: pos.Y}
	case model.Down:
		return model.Vec{X: pos.X + 0.5, Y: pos.Y + 1}
	case model.Left:
		return model.Vec{X: pos.X, Y: pos.Y + 0.5}
	default:
		return model.Vec{X: pos.X + 1, Y: pos.Y + 0.5}
	}
}

func (ps *Projectiles) Fire(origin model.Vec, d model.Direction) {
	ps.live = append(ps.live, Projectile{Pos: origin, Dir: d.Unit()})
}

// Advance moves every projectile by step. A projectile entering a wall cell
// (or leaving the grid) is dropped without hitting anything. Otherwise the
// first pursuer it overlaps, in arena order, is reported and the projectile
// is consumed. A pursuer is reported at most once per call.
func (ps *Projectiles) Advance(step float64, g *model.Grid, arena *Arena) []Handle {
	hits := make([]Handle, 0)
	hit := make(map[Handle]bool)
	survivors := ps.live[:0]

	substeps := int(math.Ceil(step / maxProjectileSubstep))
	if substeps < 1 {
		substeps = 1
	}
	part := step / float64(substeps)

	for _, p := range ps.live {
		alive := true
		for i := 0; i < substeps && alive; i++ {
			p.Pos = p.Pos.Add(p.Dir.Scale(part))
			if !g.Open(model.CellOf(p.Pos)) {
				alive = false
				break
			}
			box := model.Square(p.Pos, model.ProjectileSize)
			for _, h := range arena.Handles() {
				if hit[h] {
					continue
				}
				target, _ := arena.Get(h)
				if box.Overlaps(target.Rect()) {
					hit[h] = true
					hits = append(hits, h)
					alive = false
					break
				}
			}
		}
		if alive {
			survivors = append(survivors, p)
		}
	}
	ps.live = survivors
	return hits
}

func (ps *Projectiles) Len() int {
	return len(ps.live)
}

func (ps *Projectiles) Positions() []model.Vec {
	out := make([]model.Vec, len(ps.live))
	for i, p := range ps.live {
		out[i] = p.Pos
	}
	return out
}
