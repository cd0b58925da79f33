package sim

import (
	"math/rand"

	"github.com/zucenko/maize/model"
)

// Input is one tick of player intent. Move is indexed by the physical key
// (model.Binding), Shoot by the logical model.Direction.
type Input struct {
	Move  [4]bool
	Shoot [4]bool
}

// ControlScheme maps each logical direction to the key that drives it.
type ControlScheme [4]model.Binding

func DefaultControls() ControlScheme {
	return ControlScheme{model.ArrowUp, model.ArrowDown, model.ArrowLeft, model.ArrowRight}
}

// NewControlScheme shuffles the four arrow keys over the four directions.
func NewControlScheme(rng *rand.Rand, shuffle bool) ControlScheme {
	cs := DefaultControls()
	if shuffle {
		rng.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
	}
	return cs
}

func (cs ControlScheme) BindingFor(d model.Direction) model.Binding {
	return cs[d]
}

func (cs ControlScheme) DirectionFor(b model.Binding) model.Direction {
	for _, d := range model.Directions {
		if cs[d] == b {
			return d
		}
	}
	return model.Up
}

// Resolve sums the unit vectors of every held direction, so two keys give a
// diagonal of length √2.
func (cs ControlScheme) Resolve(held [4]bool) model.Vec {
	var v model.Vec
	for _, d := range model.Directions {
		if held[cs[d]] {
			v = v.Add(d.Unit())
		}
	}
	return v
}

// Press builds an Input that holds the keys for the given directions.
func (cs ControlScheme) Press(dirs ...model.Direction) Input {
	var in Input
	for _, d := range dirs {
		in.Move[cs[d]] = true
	}
	return in
}
