package swarm

import (
	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs"
)

// Movement advances every body by its velocity.
func Movement() *metaecs.System {
	return metaecs.NewSystem(metaecs.Roles{
		"body": {Pos, Vel},
	}, func(m metaecs.Match) {
		body := m.Get("body")
		pos, _ := metaecs.Value[*Vec](body, Pos)
		vel, _ := metaecs.Value[*Vec](body, Vel)
		pos.X += vel.X
		pos.Y += vel.Y
	})
}

// Bounce reflects bodies that left the world back inside, reversing the
// offending velocity component.
func Bounce() *metaecs.System {
	return metaecs.NewSystem(metaecs.Roles{
		"body":  {Pos, Vel},
		"world": {Bounds},
	}, func(m metaecs.Match) {
		body := m.Get("body")
		pos, _ := metaecs.Value[*Vec](body, Pos)
		vel, _ := metaecs.Value[*Vec](body, Vel)
		bounds, _ := metaecs.Value[Rect](m.Get("world"), Bounds)
		pos.X, vel.X = reflect1(pos.X, vel.X, bounds.W)
		pos.Y, vel.Y = reflect1(pos.Y, vel.Y, bounds.H)
	})
}

// reflect1 folds p back into [0, size) along one axis.
func reflect1(p, v, size float64) (float64, float64) {
	limit := size - 1
	if limit < 0 {
		limit = 0
	}
	switch {
	case p < 0:
		p, v = -p, abs(v)
	case p > limit:
		p, v = 2*limit-p, -abs(v)
	}
	return min(max(p, 0), limit), v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Collide counts, on every solid body, how many other solid bodies share its
// cell. The pair is visited once in each order, so each side counts once.
func Collide() *metaecs.System {
	return metaecs.NewSystem(metaecs.Roles{
		"a": {Pos, Solid},
		"b": {Pos, Solid},
	}, func(m metaecs.Match) {
		a, b := m.Get("a"), m.Get("b")
		if a == b {
			return
		}
		pa, _ := metaecs.Value[*Vec](a, Pos)
		pb, _ := metaecs.Value[*Vec](b, Pos)
		ax, ay := pa.Cell()
		bx, by := pb.Cell()
		if ax == bx && ay == by {
			a.Set(Hits, HitsOf(a)+1)
		}
	})
}

// Render draws every sprite on every screen. Clearing and showing the screen
// is left to the caller, since systems run in no particular order.
func Render() *metaecs.System {
	return metaecs.NewSystem(metaecs.Roles{
		"screen": {Screen},
		"sprite": {Pos, Glyph},
	}, func(m metaecs.Match) {
		screen, _ := metaecs.Value[tcell.Screen](m.Get("screen"), Screen)
		sprite := m.Get("sprite")
		pos, _ := metaecs.Value[*Vec](sprite, Pos)
		glyph, _ := metaecs.Value[rune](sprite, Glyph)
		style, ok := metaecs.Value[tcell.Style](sprite, Style)
		if !ok {
			style = tcell.StyleDefault
		}
		x, y := pos.Cell()
		screen.SetContent(x, y, glyph, nil, style)
	})
}

// Install adds the swarm systems to m.
func Install(m *metaecs.Metasystem) error {
	for _, s := range []*metaecs.System{Movement(), Bounce(), Collide(), Render()} {
		if _, err := m.Add(s.Entity); err != nil {
			return err
		}
	}
	return nil
}
