package swarm

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs"
)

// EnvPrefix prefixes every swarm environment variable.
const EnvPrefix = "SWARM_"

// Config is the swarm configuration, read from the environment.
type Config struct {
	Bodies int           `env:"BODIES" envDefault:"24"`
	Frame  time.Duration `env:"FRAME" envDefault:"50ms"`
	Ticks  uint64        `env:"TICKS" envDefault:"0"` // 0 runs until interrupted
	Seed   uint64        `env:"SEED" envDefault:"1"`
	Speed  float64       `env:"SPEED" envDefault:"0.6"`
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Frame <= 0:
		return fmt.Errorf("frame must be positive, got %v", c.Frame)
	case c.Bodies < 0:
		return fmt.Errorf("bodies must not be negative, got %d", c.Bodies)
	case c.Speed < 0:
		return fmt.Errorf("speed must not be negative, got %v", c.Speed)
	}
	return nil
}

var palette = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorPurple,
	tcell.ColorRed,
}

const glyphs = "abcdefghijklmnopqrstuvwxyz0123456789@#$%&*"

// Spawn adds the world entity and cfg.Bodies randomly placed bodies to m.
func Spawn(m *metaecs.Metasystem, cfg Config, bounds Rect) (world *metaecs.Entity, bodies []*metaecs.Entity, err error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	world, err = m.Add(NewWorld(bounds))
	if err != nil {
		return nil, nil, err
	}
	bodies = make([]*metaecs.Entity, 0, cfg.Bodies)
	for range cfg.Bodies {
		pos := Vec{X: rng.Float64() * bounds.W, Y: rng.Float64() * bounds.H}
		vel := Vec{X: (rng.Float64()*2 - 1) * cfg.Speed, Y: (rng.Float64()*2 - 1) * cfg.Speed}
		glyph := rune(glyphs[rng.IntN(len(glyphs))])
		style := tcell.StyleDefault.Foreground(palette[rng.IntN(len(palette))])
		body, err := m.Add(NewBody(pos, vel, glyph, style))
		if err != nil {
			return nil, nil, err
		}
		bodies = append(bodies, body)
	}
	return world, bodies, nil
}
