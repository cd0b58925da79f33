package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zucenko/maize/model"
)

const MinSize = 5

var (
	ErrInvalidDimensions = errors.New("maze: cols and rows must be odd and at least 5")
	ErrInvalidCell       = errors.New("maze: cell outside the carvable interior")
	ErrUnreachable       = errors.New("maze: open cell not reachable from start")
)

// two-cell jumps between rooms of the carving lattice
var jumps = [4]model.Cell{{X: 2, Y: 0}, {X: -2, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -2}}

// Generate carves a perfect maze from start by randomized depth-first search,
// then forces goal open and links it to the carved region if carving did not
// reach it. The returned grid is frozen and every open cell is reachable from start.
func Generate(cols, rows int, start, goal model.Cell, rng *rand.Rand) (*model.Grid, error) {
	if cols < MinSize || rows < MinSize || cols%2 == 0 || rows%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, cols, rows)
	}
	g := model.NewGrid(cols, rows)
	if !interior(g, start) {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidCell, start)
	}
	if !interior(g, goal) {
		return nil, fmt.Errorf("%w: goal %v", ErrInvalidCell, goal)
	}

	carve(g, start, rng)
	connect(g, start, goal)

	if !g.AllOpenReachable(start) {
		return nil, ErrUnreachable
	}
	g.Freeze()
	return g, nil
}

// interior keeps a one-cell wall border around the maze.
func interior(g *model.Grid, c model.Cell) bool {
	return c.X >= 1 && c.X < g.Cols-1 && c.Y >= 1 && c.Y < g.Rows-1
}

func carve(g *model.Grid, c model.Cell, rng *rand.Rand) {
	g.Set(c, model.Open)
	dirs := jumps
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	for _, d := range dirs {
		next := model.Cell{X: c.X + d.X, Y: c.Y + d.Y}
		if !interior(g, next) || g.Open(next) {
			continue
		}
		g.Set(model.Cell{X: c.X + d.X/2, Y: c.Y + d.Y/2}, model.Open)
		carve(g, next, rng)
	}
}

// connect opens goal and, when it is cut off, the shortest chain of interior
// cells between goal and the region reachable from start.
func connect(g *model.Grid, start, goal model.Cell) {
	g.Set(goal, model.Open)
	reach := g.Reachable(start)
	if reach.Has(goal) {
		return
	}

	parent := map[model.Cell]model.Cell{goal: goal}
	queue := []model.Cell{goal}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reach.Has(current) {
			for c := parent[current]; c != goal; c = parent[c] {
				g.Set(c, model.Open)
			}
			return
		}
		for _, n := range g.Neighbors4(current) {
			if _, seen := parent[n]; seen || !interior(g, n) {
				continue
			}
			parent[n] = current
			queue = append(queue, n)
		}
	}
}
