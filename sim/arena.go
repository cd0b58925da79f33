package sim

import "github.com/zucenko/maize/model"

// Handle names a pursuer slot and the generation living in it. Replacing a
// pursuer bumps the generation, so handles to the destroyed one go stale.
type Handle struct {
	slot int
	gen  uint32
}

type arenaSlot struct {
	gen uint32
	p   *Pursuer
}

type Arena struct {
	slots []arenaSlot
}

func NewArena() *Arena {
	return &Arena{slots: make([]arenaSlot, 0, 4)}
}

func (a *Arena) Spawn(p *Pursuer) Handle {
	a.slots = append(a.slots, arenaSlot{gen: 1, p: p})
	return Handle{slot: len(a.slots) - 1, gen: 1}
}

func (a *Arena) Get(h Handle) (*Pursuer, bool) {
	if h.slot < 0 || h.slot >= len(a.slots) || a.slots[h.slot].gen != h.gen {
		return nil, false
	}
	return a.slots[h.slot].p, true
}

// Replace destroys the pursuer behind h and installs p in its slot.
func (a *Arena) Replace(h Handle, p *Pursuer) (Handle, bool) {
	if _, ok := a.Get(h); !ok {
		return Handle{}, false
	}
	s := &a.slots[h.slot]
	s.gen++
	s.p = p
	return Handle{slot: h.slot, gen: s.gen}, true
}

// Handles lists live handles in slot order.
func (a *Arena) Handles() []Handle {
	out := make([]Handle, len(a.slots))
	for i, s := range a.slots {
		out[i] = Handle{slot: i, gen: s.gen}
	}
	return out
}

func (a *Arena) Each(fn func(Handle, *Pursuer)) {
	for i, s := range a.slots {
		fn(Handle{slot: i, gen: s.gen}, s.p)
	}
}

func (a *Arena) Len() int {
	return len(a.slots)
}

func (a *Arena) Positions() []model.Vec {
	out := make([]model.Vec, 0, len(a.slots))
	for _, s := range a.slots {
		out = append(out, s.p.Pos)
	}
	return out
}
