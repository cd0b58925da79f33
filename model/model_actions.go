package model

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

type Grid struct {
	Cols, Rows int
	tiles      []Tile
	frozen     bool
}

// NewGrid creates a grid with every cell set to Wall.
func NewGrid(cols, rows int) *Grid {
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		tiles: make([]Tile, cols*rows),
	}
}

func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// At returns Wall for cells outside the grid.
func (g *Grid) At(c Cell) Tile {
	if !g.InBounds(c) {
		return Wall
	}
	return g.tiles[c.Y*g.Cols+c.X]
}

func (g *Grid) Open(c Cell) bool {
	return g.At(c) == Open
}

func (g *Grid) Set(c Cell, t Tile) {
	if g.frozen {
		panic(fmt.Sprintf("grid: set %v on frozen grid", c))
	}
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: set %v out of bounds %dx%d", c, g.Cols, g.Rows))
	}
	g.tiles[c.Y*g.Cols+c.X] = t
}

// Freeze ends construction. Any later Set panics.
func (g *Grid) Freeze() {
	g.frozen = true
}

func (g *Grid) Frozen() bool {
	return g.frozen
}

// Neighbors4 lists the in-bounds neighbors of c in SearchOrder.
func (g *Grid) Neighbors4(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range SearchOrder {
		n := c.Add(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Reachable flood-fills the open region containing from.
func (g *Grid) Reachable(from Cell) mapset.Set[Cell] {
	visited := mapset.New[Cell]()
	if !g.Open(from) {
		return visited
	}
	queue := []Cell{from}
	visited.Put(from)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors4(current) {
			if g.Open(n) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

func (g *Grid) OpenCells() []Cell {
	cells := make([]Cell, 0)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.tiles[y*g.Cols+x] == Open {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// AllOpenReachable reports whether every open cell is connected to from.
func (g *Grid) AllOpenReachable(from Cell) bool {
	return g.Reachable(from).Size() == len(g.OpenCells())
}

func (g *Grid) CellRect(c Cell) Rect {
	return Rect{X: float64(c.X), Y: float64(c.Y), W: 1, H: 1}
}

// Blocked reports whether r overlaps any wall cell or leaves the grid.
func (g *Grid) Blocked(r Rect) bool {
	if r.X < 0 || r.Y < 0 || r.X+r.W > float64(g.Cols) || r.Y+r.H > float64(g.Rows) {
		return true
	}
	lo := CellOf(Vec{X: r.X, Y: r.Y})
	hi := CellOf(Vec{X: r.X + r.W, Y: r.Y + r.H})
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			c := Cell{X: x, Y: y}
			if !g.InBounds(c) || g.Open(c) {
				continue
			}
			if r.Overlaps(g.CellRect(c)) {
				return true
			}
		}
	}
	return false
}

// Clone returns an unfrozen copy.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{Cols: g.Cols, Rows: g.Rows, tiles: tiles}
}

// Layout returns one string per row, '#' for walls and '.' for open cells.
func (g *Grid) Layout() []string {
	lines := make([]string, 0, g.Rows)
	for y := 0; y < g.Rows; y++ {
		line := make([]byte, g.Cols)
		for x := 0; x < g.Cols; x++ {
			if g.tiles[y*g.Cols+x] == Open {
				line[x] = '.'
			} else {
				line[x] = '#'
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}

// ParseLayout is the inverse of Layout. Unknown characters are walls.
func ParseLayout(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("layout: no rows")
	}
	cols := len(lines[0])
	g := NewGrid(cols, len(lines))
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("layout: row %d has %d columns, want %d", y, len(line), cols)
		}
		for x, ch := range line {
			if ch == '.' {
				g.Set(Cell{X: x, Y: y}, Open)
			}
		}
	}
	return g, nil
}
