package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// Tile is one cell of the grid. The occupant reference is weak: the
// population owns the animal entities, tiles only index them.
type Tile struct {
	X, Y     int
	Terrain  Terrain
	Resource *Resource

	occupant    ecs.Entity
	hasOccupant bool
}

// Occupied reports whether an animal stands on this tile.
func (t *Tile) Occupied() bool {
	return t.hasOccupant
}

// Occupant returns the occupying entity and whether one is present.
func (t *Tile) Occupant() (ecs.Entity, bool) {
	return t.occupant, t.hasOccupant
}

// SetOccupant records the entity standing on this tile.
func (t *Tile) SetOccupant(e ecs.Entity) {
	t.occupant = e
	t.hasOccupant = true
}

// ClearOccupant removes the occupant reference.
func (t *Tile) ClearOccupant() {
	t.occupant = ecs.Entity{}
	t.hasOccupant = false
}

// Passable reports whether an animal can move onto this tile:
// walkable terrain and no occupant.
func (t *Tile) Passable() bool {
	return t.Terrain.Walkable() && !t.hasOccupant
}

// World is a fixed-size 2-D grid of tiles. The shape is immutable for
// the lifetime of a simulation run.
type World struct {
	Width  int
	Height int
	tiles  []Tile
}

// New creates a world of the given dimensions with Plains terrain.
func New(width, height int) (*World, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("world: dimensions must be positive, got %dx%d", width, height)
	}
	w := &World{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := w.TileAt(x, y)
			t.X, t.Y = x, y
		}
	}
	return w, nil
}

// InBounds reports whether the coordinates lie inside the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// TileAt returns the tile at (x, y), or nil if out of bounds.
func (w *World) TileAt(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.tiles[y*w.Width+x]
}

// Adjacent reports whether two coordinates are cardinal neighbors.
func (w *World) Adjacent(x1, y1, x2, y2 int) bool {
	dx, dy := x1-x2, y1-y2
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// MoveCost returns the movement cost multiplier for entering (x, y).
// Out-of-bounds tiles report the maximum cost.
func (w *World) MoveCost(x, y int) float64 {
	t := w.TileAt(x, y)
	if t == nil {
		return Mountains.MoveCost()
	}
	return t.Terrain.MoveCost()
}

// RandomFreeTile picks a uniformly random passable tile, or nil when the
// world has none.
func (w *World) RandomFreeTile(rng *rand.Rand) *Tile {
	var free []*Tile
	for i := range w.tiles {
		if w.tiles[i].Passable() {
			free = append(free, &w.tiles[i])
		}
	}
	if len(free) == 0 {
		return nil
	}
	return free[rng.Intn(len(free))]
}

// ClearOccupants removes every occupant reference. Used between
// generations before the next population is placed.
func (w *World) ClearOccupants() {
	for i := range w.tiles {
		w.tiles[i].ClearOccupant()
	}
}

// EachTile calls fn for every tile in row-major order.
func (w *World) EachTile(fn func(*Tile)) {
	for i := range w.tiles {
		fn(&w.tiles[i])
	}
}
