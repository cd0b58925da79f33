package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/model"
)

const tick = 1.0 / 60

func TestPursuerRecomputesOncePerCellChange(t *testing.T) {
	g := mustLayout(t, corridor)
	p := NewPursuer(model.Cell{X: 5, Y: 3}, 4)

	target := model.Vec{X: 1, Y: 1}
	for i := 0; i < 10; i++ {
		p.Advance(g, target, tick)
	}
	assert.Equal(t, 1, p.Recomputes)

	// moving inside the same cell does not invalidate the path
	target = model.Vec{X: 1.6, Y: 1.1}
	p.Advance(g, target, tick)
	assert.Equal(t, 1, p.Recomputes)

	target = model.Vec{X: 2.05, Y: 1}
	for i := 0; i < 10; i++ {
		p.Advance(g, target, tick)
	}
	assert.Equal(t, 2, p.Recomputes)

	target = model.Vec{X: 3, Y: 1}
	p.Advance(g, target, tick)
	target = model.Vec{X: 4, Y: 1}
	p.Advance(g, target, tick)
	assert.Equal(t, 4, p.Recomputes)
}

func TestPursuerStaysOnHopSegment(t *testing.T) {
	g := mustLayout(t, corridor)
	p := NewPursuer(model.Cell{X: 5, Y: 3}, 4)
	target := model.Vec{X: 1, Y: 1}

	for i := 0; i < 200; i++ {
		p.Advance(g, target, tick)
		from, to := p.From.Origin(), p.Cell.Origin()
		require.True(t, from.X == to.X || from.Y == to.Y, "hop %v -> %v is not a straight segment", p.From, p.Cell)
		assert.True(t, between(p.Pos.X, from.X, to.X) && between(p.Pos.Y, from.Y, to.Y),
			"tick %d: %+v outside %v -> %v", i, p.Pos, p.From, p.Cell)
	}
	assert.Equal(t, model.Vec{X: 1, Y: 1}, p.Pos)
	assert.Equal(t, Idle, p.State)
}

func TestPursuerReportsArrivalForOneTick(t *testing.T) {
	g := mustLayout(t, corridor)
	p := NewPursuer(model.Cell{X: 5, Y: 3}, 4)
	target := model.Vec{X: 1, Y: 1}

	p.Advance(g, target, tick)
	assert.Equal(t, ArrivedAtHop, p.State)
	assert.Equal(t, model.Cell{X: 5, Y: 3}, p.From)
	assert.Equal(t, model.Cell{X: 5, Y: 2}, p.Cell)

	p.Advance(g, target, tick)
	assert.Equal(t, Pursuing, p.State)

	// (5,2) (5,1) (4,1) (3,1) (2,1) each hand over to the next hop, (1,1) ends it
	arrivals := 0
	for i := 0; i < 200 && p.State != Idle; i++ {
		from := p.From
		p.Advance(g, target, tick)
		if p.State == ArrivedAtHop {
			arrivals++
			assert.NotEqual(t, from, p.From)
		}
	}
	assert.Equal(t, 5, arrivals)
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, model.Cell{X: 1, Y: 1}, p.Cell)
}

func between(v, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a-1e-9 && v <= b+1e-9
}

func TestPursuerHoldsWhenUnreachable(t *testing.T) {
	g := mustLayout(t, corridor)
	p := NewPursuer(model.Cell{X: 5, Y: 3}, 4)
	for i := 0; i < 30; i++ {
		p.Advance(g, model.Vec{X: 0.5, Y: 0.5}, tick)
	}
	assert.Equal(t, model.Vec{X: 5, Y: 3}, p.Pos)
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, 1, p.Recomputes)
}

func TestPursuerCollidesIsStrict(t *testing.T) {
	p := NewPursuer(model.Cell{X: 5, Y: 5}, 4)
	assert.False(t, p.Collides(model.Vec{X: 6, Y: 5}, CatchDistance))
	assert.False(t, p.Collides(model.Vec{X: 5, Y: 4}, CatchDistance))
	assert.True(t, p.Collides(model.Vec{X: 5.999, Y: 5}, CatchDistance))
	assert.True(t, p.Collides(model.Vec{X: 5.5, Y: 5.5}, CatchDistance))
}

func TestPursuerStateNames(t *testing.T) {
	assert.Equal(t, "IDLE", Idle.Name())
	assert.Equal(t, "PURSUING", Pursuing.Name())
	assert.Equal(t, "ARRIVED_AT_HOP", ArrivedAtHop.Name())
	assert.Equal(t, "N/A(9)", PursuerState(9).Name())
}
