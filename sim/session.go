package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/zucenko/maize/maze"
	"github.com/zucenko/maize/model"
)

// CatchDistance is the pursuer to player distance (in cells) below which the player is caught.
const CatchDistance = 1.0

type SessionOptions struct {
	Ruleset model.Ruleset
	Cols    int
	Rows    int
	Start   model.Cell
	Goal    model.Cell

	// Layout replaces maze generation with a fixed map ('#' wall, '.' open).
	Layout []string

	PlayerSpeed     float64
	PursuerSpeed    float64
	ProjectileSpeed float64
	ShotCooldown    float64
	MaxDT           float64

	ShuffleControls bool
	Seed            int64
	Logger          *log.Entry
}

func DefaultSessionOptions(r model.Ruleset) SessionOptions {
	return SessionOptions{
		Ruleset:         r,
		Cols:            21,
		Rows:            21,
		Start:           model.Cell{X: 3, Y: 3},
		Goal:            model.Cell{X: 16, Y: 16},
		PlayerSpeed:     8,
		PursuerSpeed:    4,
		ProjectileSpeed: 12,
		ShotCooldown:    0.15,
		MaxDT:           0.1,
		ShuffleControls: true,
	}
}

// Session owns one play of one maze. It is not safe for concurrent use.
type Session struct {
	id      string
	opts    SessionOptions
	rng     *rand.Rand
	log     *log.Entry
	grid    *model.Grid
	ruleset model.Ruleset

	player      model.Vec
	pursuers    *Arena
	projectiles *Projectiles
	cooldown    [4]float64

	keys      mapset.Set[model.Cell]
	keysTotal int
	collected int

	controls ControlScheme
	elapsed  float64
	outcome  model.Outcome
	events   []model.SoundEvent
}

func NewSession(opts SessionOptions) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var grid *model.Grid
	var err error
	if opts.Layout != nil {
		grid, err = model.ParseLayout(opts.Layout)
		if err != nil {
			return nil, fmt.Errorf("session layout: %w", err)
		}
		if !grid.Open(opts.Start) || !grid.Open(opts.Goal) || !grid.AllOpenReachable(opts.Start) {
			return nil, fmt.Errorf("session layout: %w", maze.ErrUnreachable)
		}
		grid.Freeze()
	} else {
		grid, err = maze.Generate(opts.Cols, opts.Rows, opts.Start, opts.Goal, rng)
		if err != nil {
			return nil, fmt.Errorf("session maze: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	id := uuid.New().String()

	s := &Session{
		id:          id,
		opts:        opts,
		rng:         rng,
		log:         logger.WithFields(log.Fields{"session": id, "ruleset": opts.Ruleset.Name()}),
		grid:        grid,
		ruleset:     opts.Ruleset,
		player:      opts.Start.Origin(),
		pursuers:    NewArena(),
		projectiles: NewProjectiles(),
		keys:        mapset.New[model.Cell](),
		controls:    NewControlScheme(rng, opts.ShuffleControls),
		outcome:     model.Continue,
		events:      make([]model.SoundEvent, 0),
	}
	s.placeKeys(opts.Ruleset.KeysRequired())
	s.spawnPursuers(opts.Ruleset.Pursuers())

	s.log.WithFields(log.Fields{
		"size":     fmt.Sprintf("%dx%d", grid.Cols, grid.Rows),
		"pursuers": s.pursuers.Len(),
		"keys":     s.keysTotal,
	}).Info("session started")
	return s, nil
}

func (s *Session) placeKeys(n int) {
	candidates := make([]model.Cell, 0)
	for _, c := range s.grid.OpenCells() {
		if c != s.opts.Start && c != s.opts.Goal {
			candidates = append(candidates, c)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, c := range candidates[:n] {
		s.keys.Put(c)
	}
	s.keysTotal = n
}

func (s *Session) spawnPursuers(n int) {
	if n == 0 {
		return
	}
	cols, rows := s.grid.Cols, s.grid.Rows
	spawns := []model.Cell{
		{X: cols / 2, Y: rows / 2},
		{X: cols - 2, Y: rows - 2},
		{X: cols / 2, Y: rows / 4},
	}
	for i := range spawns {
		spawns[i] = s.nearestOpen(spawns[i])
	}
	s.rng.Shuffle(len(spawns), func(i, j int) { spawns[i], spawns[j] = spawns[j], spawns[i] })
	for i := 0; i < n; i++ {
		s.pursuers.Spawn(NewPursuer(spawns[i%len(spawns)], s.opts.PursuerSpeed))
	}
}

// nearestOpen walks outward from c over every in-bounds cell until it meets
// an open one that is not the start cell.
func (s *Session) nearestOpen(c model.Cell) model.Cell {
	visited := mapset.New[model.Cell]()
	visited.Put(c)
	queue := []model.Cell{c}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if s.grid.Open(current) && current != s.opts.Start {
			return current
		}
		for _, n := range s.grid.Neighbors4(current) {
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return s.opts.Goal
}

func (s *Session) randomSpawn() model.Cell {
	avoid := model.CellOf(s.player)
	open := s.grid.OpenCells()
	for {
		c := open[s.rng.Intn(len(open))]
		if c != avoid || len(open) == 1 {
			return c
		}
	}
}

// Update advances the session by dt seconds. Once a terminal outcome has been
// returned the session is frozen and keeps returning it.
func (s *Session) Update(in Input, dt float64) model.Outcome {
	if s.outcome.Terminal() {
		return s.outcome
	}
	if dt < 0 {
		dt = 0
	}
	if s.opts.MaxDT > 0 && dt > s.opts.MaxDT {
		dt = s.opts.MaxDT
	}
	s.elapsed += dt

	// player
	dir := s.controls.Resolve(in.Move)
	s.player = TryMove(s.player, dir.Scale(s.opts.PlayerSpeed*dt), model.BodySize, s.grid)

	// projectiles
	if s.ruleset.Shooting() {
		s.fire(in.Shoot, dt)
		for _, h := range s.projectiles.Advance(s.opts.ProjectileSpeed*dt, s.grid, s.pursuers) {
			at := s.randomSpawn()
			if _, ok := s.pursuers.Replace(h, NewPursuer(at, s.opts.PursuerSpeed)); ok {
				s.events = append(s.events, model.PursuerDestroyed)
				s.log.WithField("spawn", at.String()).Debug("pursuer respawned")
			}
		}
	}

	// pursuers
	caught := false
	s.pursuers.Each(func(_ Handle, p *Pursuer) {
		if caught {
			return
		}
		p.Advance(s.grid, s.player, dt)
		caught = p.Collides(s.player, CatchDistance)
	})
	if caught {
		return s.finish(model.PlayerCaught)
	}

	// keys
	if here := model.CellOf(s.player); s.keys.Has(here) {
		s.keys.Remove(here)
		s.collected++
		s.events = append(s.events, model.KeyCollected)
		s.log.WithField("collected", s.collected).Info("key collected")
	}

	// goal
	probe := model.Square(s.player.Add(model.Vec{X: model.GoalProbeInset, Y: model.GoalProbeInset}), model.GoalProbeSize)
	if probe.Overlaps(s.grid.CellRect(s.opts.Goal)) && s.collected >= s.keysTotal {
		return s.finish(model.GoalReached)
	}
	return model.Continue
}

func (s *Session) fire(shoot [4]bool, dt float64) {
	for _, d := range model.Directions {
		if s.cooldown[d] > 0 {
			s.cooldown[d] -= dt
		}
		if !shoot[d] || s.cooldown[d] > 0 {
			continue
		}
		s.projectiles.Fire(Muzzle(s.player, d), d)
		s.cooldown[d] = s.opts.ShotCooldown
		s.events = append(s.events, model.ShotFired)
	}
}

func (s *Session) finish(o model.Outcome) model.Outcome {
	s.outcome = o
	switch o {
	case model.PlayerCaught:
		s.events = append(s.events, model.Caught)
	case model.GoalReached:
		s.events = append(s.events, model.Escaped)
	}
	s.log.WithFields(log.Fields{
		"outcome": o.Name(),
		"elapsed": fmt.Sprintf("%.2fs", s.elapsed),
	}).Info("session finished")
	return o
}

// DrainEvents returns the sound events queued since the last call.
func (s *Session) DrainEvents() []model.SoundEvent {
	out := s.events
	s.events = make([]model.SoundEvent, 0)
	return out
}

func (s *Session) Snapshot() model.Snapshot {
	keys := make([]model.Cell, 0, s.keys.Size())
	s.keys.Each(func(c model.Cell) {
		keys = append(keys, c)
	})
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return model.Snapshot{
		SessionID:   s.id,
		Ruleset:     s.ruleset,
		Grid:        s.grid,
		Start:       s.opts.Start,
		Goal:        s.opts.Goal,
		Player:      s.player,
		Pursuers:    s.pursuers.Positions(),
		Projectiles: s.projectiles.Positions(),
		Keys:        keys,
		Collected:   s.collected,
		KeysTotal:   s.keysTotal,
		Elapsed:     s.elapsed,
		Outcome:     s.outcome,
		Controls:    s.controls,
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Ruleset() model.Ruleset    { return s.ruleset }
func (s *Session) Grid() *model.Grid         { return s.grid }
func (s *Session) Player() model.Vec         { return s.player }
func (s *Session) Goal() model.Cell          { return s.opts.Goal }
func (s *Session) Elapsed() float64          { return s.elapsed }
func (s *Session) Collected() int            { return s.collected }
func (s *Session) KeysTotal() int            { return s.keysTotal }
func (s *Session) Controls() ControlScheme   { return s.controls }
func (s *Session) Outcome() model.Outcome    { return s.outcome }
func (s *Session) Pursuers() *Arena          { return s.pursuers }
func (s *Session) Projectiles() *Projectiles { return s.projectiles }
