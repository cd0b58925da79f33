package sim

import "github.com/zucenko/maize/model"

// ShortestPath returns the cells after from up to and including to, following
// open cells only. Ties resolve in model.SearchOrder. An empty result means
// "hold position": from == to, to is a wall, or no connection exists.
func ShortestPath(g *model.Grid, from, to model.Cell) []model.Cell {
	if from == to || !g.Open(to) || !g.InBounds(from) {
		return nil
	}
	parent := map[model.Cell]model.Cell{from: from}
	queue := []model.Cell{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return unwind(parent, from, to)
		}
		for _, d := range model.SearchOrder {
			n := current.Add(d)
			if _, seen := parent[n]; seen || !g.Open(n) {
				continue
			}
			parent[n] = current
			queue = append(queue, n)
		}
	}
	return nil
}

func unwind(parent map[model.Cell]model.Cell, from, to model.Cell) []model.Cell {
	n := 0
	for c := to; c != from; c = parent[c] {
		n++
	}
	path := make([]model.Cell, n)
	for c := to; c != from; c = parent[c] {
		n--
		path[n] = c
	}
	return path
}
