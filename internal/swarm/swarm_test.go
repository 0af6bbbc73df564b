package swarm

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs"
)

func newMetasystem(t *testing.T) *metaecs.Metasystem {
	t.Helper()
	m := metaecs.New()
	if err := Install(m); err != nil {
		t.Fatalf("install: %v", err)
	}
	return m
}

func posOf(e *metaecs.Entity) Vec {
	p, _ := metaecs.Value[*Vec](e, Pos)
	return *p
}

func TestMovement(t *testing.T) {
	m := metaecs.New()
	if _, err := m.Add(Movement().Entity); err != nil {
		t.Fatalf("add: %v", err)
	}
	body, _ := m.Add(NewBody(Vec{X: 1, Y: 1}, Vec{X: 0.5, Y: 1}, 'a', tcell.StyleDefault))
	for range 2 {
		if err := m.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if got := posOf(body); got != (Vec{X: 2, Y: 3}) {
		t.Errorf("expected {2 3}, got %+v", got)
	}
}

func TestBounce(t *testing.T) {
	m := metaecs.New()
	if _, err := m.Add(Bounce().Entity); err != nil {
		t.Fatalf("add: %v", err)
	}
	body, _ := m.Add(NewBody(Vec{X: -1, Y: 10.5}, Vec{X: -1, Y: 1}, 'a', tcell.StyleDefault))

	t.Run("no world", func(t *testing.T) {
		if err := m.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
		if got := posOf(body); got.X != -1 {
			t.Errorf("expected no bounce without a world, got %+v", got)
		}
	})

	t.Run("edges", func(t *testing.T) {
		if _, err := m.Add(NewWorld(Rect{W: 10, H: 10})); err != nil {
			t.Fatalf("add world: %v", err)
		}
		if err := m.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
		vel, _ := metaecs.Value[*Vec](body, Vel)
		if got := posOf(body); got != (Vec{X: 1, Y: 7.5}) {
			t.Errorf("expected {1 7.5}, got %+v", got)
		}
		if *vel != (Vec{X: 1, Y: -1}) {
			t.Errorf("expected velocity {1 -1}, got %+v", *vel)
		}
	})
}

func TestReflect(t *testing.T) {
	cases := []struct {
		p, v, size float64
		wantP      float64
		wantV      float64
	}{
		{p: 5, v: 1, size: 10, wantP: 5, wantV: 1},
		{p: -2, v: -1, size: 10, wantP: 2, wantV: 1},
		{p: 11, v: 1, size: 10, wantP: 7, wantV: -1},
		{p: 100, v: 1, size: 10, wantP: 0, wantV: -1},
		{p: 3, v: 1, size: 0, wantP: 0, wantV: -1},
	}
	for _, c := range cases {
		p, v := reflect1(c.p, c.v, c.size)
		if p != c.wantP || v != c.wantV {
			t.Errorf("reflect1(%v, %v, %v) = %v, %v; want %v, %v", c.p, c.v, c.size, p, v, c.wantP, c.wantV)
		}
	}
}

func TestCollide(t *testing.T) {
	m := metaecs.New()
	if _, err := m.Add(Collide().Entity); err != nil {
		t.Fatalf("add: %v", err)
	}
	a, _ := m.Add(NewBody(Vec{X: 3.2, Y: 4.9}, Vec{}, 'a', tcell.StyleDefault))
	b, _ := m.Add(NewBody(Vec{X: 3.7, Y: 4.1}, Vec{}, 'b', tcell.StyleDefault))
	c, _ := m.Add(NewBody(Vec{X: 8, Y: 8}, Vec{}, 'c', tcell.StyleDefault))
	ghost, _ := m.Add(NewBody(Vec{X: 3, Y: 4}, Vec{}, 'g', tcell.StyleDefault))
	ghost.Delete(Solid)

	if err := m.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if HitsOf(a) != 1 || HitsOf(b) != 1 {
		t.Errorf("expected one hit each, got a=%d b=%d", HitsOf(a), HitsOf(b))
	}
	if HitsOf(c) != 0 || HitsOf(ghost) != 0 {
		t.Errorf("expected no hits, got c=%d ghost=%d", HitsOf(c), HitsOf(ghost))
	}
}

func TestRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	m := newMetasystem(t)
	if _, err := m.Add(NewScreen(screen)); err != nil {
		t.Fatalf("add screen: %v", err)
	}
	if _, err := m.Add(NewWorld(Rect{W: 20, H: 10})); err != nil {
		t.Fatalf("add world: %v", err)
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	body, _ := m.Add(NewBody(Vec{X: 4, Y: 2}, Vec{}, 'Q', style))

	if err := m.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	x, y := posOf(body).Cell()
	mainc, _, got, _ := screen.GetContent(x, y)
	if mainc != 'Q' {
		t.Errorf("expected 'Q' at (%d,%d), got %q", x, y, mainc)
	}
	if got != style {
		t.Errorf("expected the body's style to be used")
	}
}

func TestSpawn(t *testing.T) {
	m := newMetasystem(t)
	cfg := Config{Bodies: 16, Seed: 7, Speed: 1}
	bounds := Rect{W: 40, H: 20}
	world, bodies, err := Spawn(m, cfg, bounds)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(bodies) != cfg.Bodies || !m.Contains(world) {
		t.Fatalf("expected %d bodies and an owned world", cfg.Bodies)
	}
	// movement, bounce, collide, render systems plus the world and bodies
	if m.Len() != 4+1+cfg.Bodies {
		t.Errorf("expected %d entities, got %d", 4+1+cfg.Bodies, m.Len())
	}
	for range 50 {
		if err := m.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	// systems run in no particular order, so a body may have moved once since
	// it was last folded back
	slack := cfg.Speed
	for _, b := range bodies {
		p := posOf(b)
		if p.X < -slack || p.X > bounds.W-1+slack || p.Y < -slack || p.Y > bounds.H-1+slack {
			t.Errorf("body %v escaped the world: %+v", b, p)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Bodies: 8, Frame: 50 * time.Millisecond, Speed: 0.6}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected %+v to be valid: %v", valid, err)
	}
	for name, mutate := range map[string]func(*Config){
		"zero frame":      func(c *Config) { c.Frame = 0 },
		"negative frame":  func(c *Config) { c.Frame = -time.Millisecond },
		"negative bodies": func(c *Config) { c.Bodies = -1 },
		"negative speed":  func(c *Config) { c.Speed = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected %+v to be rejected", cfg)
			}
		})
	}
}
