package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/maze"
	"github.com/zucenko/maize/model"
)

// corridor is a 7x5 map: one horizontal corridor on row 1, one vertical on column 5.
var corridor = []string{
	"#######",
	"#.....#",
	"#####.#",
	"#####.#",
	"#######",
}

func mustLayout(t *testing.T, lines []string) *model.Grid {
	t.Helper()
	g, err := model.ParseLayout(lines)
	require.NoError(t, err)
	g.Freeze()
	return g
}

func TestTryMoveZeroDelta(t *testing.T) {
	g := mustLayout(t, corridor)
	for _, pos := range []model.Vec{{X: 1, Y: 1}, {X: 2.1, Y: 1.05}, {X: 5, Y: 3}} {
		assert.Equal(t, pos, TryMove(pos, model.Vec{}, model.BodySize, g))
	}
}

func TestTryMoveSlidesAlongWall(t *testing.T) {
	g := mustLayout(t, corridor)
	start := model.Vec{X: 1, Y: 1}

	// each Y sub-step overruns the slack into the wall below, right is open:
	// the diagonal keeps only the X part
	got := TryMove(start, model.Vec{X: 0.1, Y: 0.5}, model.BodySize, g)
	assert.InDelta(t, 1.1, got.X, 1e-9)
	assert.Equal(t, start.Y, got.Y)

	// a small step down stays inside the cell
	got = TryMove(start, model.Vec{X: 0, Y: 0.1}, model.BodySize, g)
	assert.InDelta(t, 1.1, got.Y, 1e-9)

	// pushing straight into the wall above is a no-op
	got = TryMove(start, model.Vec{X: 0, Y: -0.3}, model.BodySize, g)
	assert.Equal(t, start, got)
}

func TestTryMoveDoesNotTunnel(t *testing.T) {
	g := mustLayout(t, corridor)
	got := TryMove(model.Vec{X: 1, Y: 1}, model.Vec{X: 20, Y: 0}, model.BodySize, g)
	assert.LessOrEqual(t, got.X+model.BodySize, 6.0)
	assert.False(t, g.Blocked(model.Square(got, model.BodySize)))

	got = TryMove(model.Vec{X: 1, Y: 1}, model.Vec{X: 0, Y: 10}, model.BodySize, g)
	assert.Equal(t, model.Vec{X: 1, Y: 1}, got)
}

func TestTryMoveNeverEntersWalls(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, err := maze.Generate(21, 21, model.Cell{X: 3, Y: 3}, model.Cell{X: 16, Y: 16}, rng)
	require.NoError(t, err)

	pos := model.Vec{X: 3, Y: 3}
	for i := 0; i < 5000; i++ {
		delta := model.Vec{X: rng.Float64()*1.2 - 0.6, Y: rng.Float64()*1.2 - 0.6}
		pos = TryMove(pos, delta, model.BodySize, g)
		require.False(t, g.Blocked(model.Square(pos, model.BodySize)), "step %d at %+v", i, pos)
	}
}

func TestApproachDoesNotOvershoot(t *testing.T) {
	got := approach(model.Vec{X: 0, Y: 0}, model.Vec{X: 0.05, Y: -1}, 0.1)
	assert.Equal(t, 0.05, got.X)
	assert.InDelta(t, -0.1, got.Y, 1e-12)
}
