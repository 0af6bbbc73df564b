// Package swarm is a small terminal simulation built on metaecs: bodies drift,
// bounce off the edges of the world, bump into each other and are drawn on a
// tcell screen.
package swarm

import (
	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs"
)

// Attribute names used by the swarm systems.
const (
	Pos    = "pos"    // *Vec
	Vel    = "vel"    // *Vec, cells per tick
	Glyph  = "glyph"  // rune
	Style  = "style"  // tcell.Style, optional
	Solid  = "solid"  // struct{}, takes part in collisions
	Hits   = "hits"   // int, collisions counted so far
	Bounds = "bounds" // Rect, on the world entity
	Screen = "screen" // tcell.Screen, on a screen entity
)

// Vec is a position or velocity in cell units.
type Vec struct {
	X, Y float64
}

// Cell returns the screen cell v falls in.
func (v Vec) Cell() (int, int) {
	return int(v.X), int(v.Y)
}

// Rect is the size of the world, in cells.
type Rect struct {
	W, H float64
}

// NewBody creates a solid drawable body.
func NewBody(pos, vel Vec, glyph rune, style tcell.Style) *metaecs.Entity {
	return metaecs.NewEntity(metaecs.Attributes{
		Pos:   &pos,
		Vel:   &vel,
		Glyph: glyph,
		Style: style,
		Solid: struct{}{},
	})
}

// NewWorld creates the entity holding the world bounds.
func NewWorld(bounds Rect) *metaecs.Entity {
	return metaecs.NewEntity(metaecs.Attributes{
		metaecs.NameAttr: "world",
		Bounds:           bounds,
	})
}

// NewScreen creates the entity the render system draws on.
func NewScreen(s tcell.Screen) *metaecs.Entity {
	return metaecs.NewEntity(metaecs.Attributes{
		metaecs.NameAttr: "screen",
		Screen:           s,
	})
}

// HitsOf returns how many collisions e took part in.
func HitsOf(e *metaecs.Entity) int {
	n, _ := metaecs.Value[int](e, Hits)
	return n
}
