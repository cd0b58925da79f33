package cfg

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zucenko/maize/maze"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

// ENV_CONFIG names the environment variable holding the config file path.
const ENV_CONFIG = "MAIZE_CONFIG"

const DEFAULT_PATH = "maize.yaml"

var ErrInvalid = errors.New("cfg: invalid configuration")

type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type Grid struct {
	Cols  int  `yaml:"cols"`
	Rows  int  `yaml:"rows"`
	Start Cell `yaml:"start"`
	Goal  Cell `yaml:"goal"`
}

type Speeds struct {
	Player     float64 `yaml:"player"`
	Pursuer    float64 `yaml:"pursuer"`
	Projectile float64 `yaml:"projectile"`
}

type Window struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
	Header   float64 `yaml:"header"`
	Font     string  `yaml:"font"`
	Panel    string  `yaml:"panel"`
}

type Audio struct {
	Music  bool    `yaml:"music"`
	Volume float64 `yaml:"volume"`
}

type Config struct {
	Grid            Grid    `yaml:"grid"`
	Speeds          Speeds  `yaml:"speeds"`
	ShotCooldown    float64 `yaml:"shot_cooldown"`
	MaxDT           float64 `yaml:"max_dt"`
	TickRate        int     `yaml:"tick_rate"`
	IntroDuration   float64 `yaml:"intro_duration"`
	Seed            int64   `yaml:"seed"`
	ShuffleControls bool    `yaml:"shuffle_controls"`
	ScoreFile       string  `yaml:"score_file"`
	Level           string  `yaml:"level"`
	Window          Window  `yaml:"window"`
	Audio           Audio   `yaml:"audio"`
}

func Defaults() Config {
	return Config{
		Grid: Grid{
			Cols:  21,
			Rows:  21,
			Start: Cell{X: 3, Y: 3},
			Goal:  Cell{X: 16, Y: 16},
		},
		Speeds: Speeds{
			Player:     8,
			Pursuer:    4,
			Projectile: 12,
		},
		ShotCooldown:    0.15,
		MaxDT:           0.1,
		TickRate:        60,
		IntroDuration:   13,
		ShuffleControls: true,
		ScoreFile:       "high_scores.json",
		Level:           "info",
		Window: Window{
			Width:    800,
			Height:   640,
			CellSize: 28,
			Header:   50,
			Font:     "data/font.ttf",
			Panel:    "data/panel.png",
		},
		Audio: Audio{
			Music:  true,
			Volume: 0.5,
		},
	}
}

// Path is the config file location: $MAIZE_CONFIG or maize.yaml.
func Path() string {
	if p := os.Getenv(ENV_CONFIG); p != "" {
		return p
	}
	return DEFAULT_PATH
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Info("no config file, using defaults")
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("cfg: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cfg: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	g := c.Grid
	if g.Cols < maze.MinSize || g.Rows < maze.MinSize || g.Cols%2 == 0 || g.Rows%2 == 0 {
		return fmt.Errorf("%w: grid %dx%d must be odd and at least %d", ErrInvalid, g.Cols, g.Rows, maze.MinSize)
	}
	for name, cell := range map[string]Cell{"start": g.Start, "goal": g.Goal} {
		if cell.X < 1 || cell.X >= g.Cols-1 || cell.Y < 1 || cell.Y >= g.Rows-1 {
			return fmt.Errorf("%w: %s (%d,%d) outside the maze interior", ErrInvalid, name, cell.X, cell.Y)
		}
	}
	if g.Start == g.Goal {
		return fmt.Errorf("%w: start and goal coincide", ErrInvalid)
	}
	if c.Speeds.Player <= 0 || c.Speeds.Pursuer <= 0 || c.Speeds.Projectile <= 0 {
		return fmt.Errorf("%w: speeds must be positive", ErrInvalid)
	}
	if c.ShotCooldown < 0 || c.MaxDT <= 0 || c.IntroDuration < 0 {
		return fmt.Errorf("%w: negative timing", ErrInvalid)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("%w: level %q", ErrInvalid, c.Level)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f not in [0,1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Session builds the simulation options for one play at ruleset r.
func (c Config) Session(r model.Ruleset, logger *log.Entry) sim.SessionOptions {
	return sim.SessionOptions{
		Ruleset:         r,
		Cols:            c.Grid.Cols,
		Rows:            c.Grid.Rows,
		Start:           model.Cell{X: c.Grid.Start.X, Y: c.Grid.Start.Y},
		Goal:            model.Cell{X: c.Grid.Goal.X, Y: c.Grid.Goal.Y},
		PlayerSpeed:     c.Speeds.Player,
		PursuerSpeed:    c.Speeds.Pursuer,
		ProjectileSpeed: c.Speeds.Projectile,
		ShotCooldown:    c.ShotCooldown,
		MaxDT:           c.MaxDT,
		ShuffleControls: c.ShuffleControls,
		Seed:            c.Seed,
		Logger:          logger,
	}
}

// ApplyLogging sets the logrus level and formatter the binaries share.
func (c Config) ApplyLogging() {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func (c Config) Viewport() model.ViewportConfig {
	return model.ViewportConfig{CellSize: c.Window.CellSize, HeaderOffset: c.Window.Header}
}
