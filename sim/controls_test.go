package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zucenko/maize/model"
)

func TestDefaultControls(t *testing.T) {
	cs := DefaultControls()
	var held [4]bool
	held[model.ArrowUp] = true
	assert.Equal(t, model.Vec{X: 0, Y: -1}, cs.Resolve(held))
	assert.Equal(t, model.Right, cs.DirectionFor(model.ArrowRight))
}

func TestShuffledControlsArePermutation(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cs := NewControlScheme(rand.New(rand.NewSource(seed)), true)
		seen := map[model.Binding]bool{}
		for _, d := range model.Directions {
			b := cs.BindingFor(d)
			assert.False(t, seen[b], "binding %s used twice", b.Name())
			seen[b] = true
			assert.Equal(t, d, cs.DirectionFor(b))

			var held [4]bool
			held[b] = true
			assert.Equal(t, d.Unit(), cs.Resolve(held))
		}
	}
}

func TestResolveSumsHeldKeys(t *testing.T) {
	cs := NewControlScheme(rand.New(rand.NewSource(3)), true)

	in := cs.Press(model.Up, model.Right)
	v := cs.Resolve(in.Move)
	assert.InDelta(t, math.Sqrt2, v.Len(), 1e-12)

	in = cs.Press(model.Left, model.Right)
	assert.True(t, cs.Resolve(in.Move).IsZero())
}

func TestControlSchemeUnshuffled(t *testing.T) {
	cs := NewControlScheme(rand.New(rand.NewSource(3)), false)
	assert.Equal(t, DefaultControls(), cs)
}
