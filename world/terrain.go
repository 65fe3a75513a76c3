// Package world provides the tile grid the simulation runs on.
package world

import "fmt"

// Terrain classifies a tile's ground type.
type Terrain uint8

const (
	Plains Terrain = iota
	Forest
	Jungle
	Water
	Swamp
	Mountains
)

// String returns the terrain's name.
func (t Terrain) String() string {
	switch t {
	case Plains:
		return "Plains"
	case Forest:
		return "Forest"
	case Jungle:
		return "Jungle"
	case Water:
		return "Water"
	case Swamp:
		return "Swamp"
	case Mountains:
		return "Mountains"
	default:
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
}

// Walkable reports whether animals can enter this terrain at all.
// Water and Mountains block movement regardless of occupancy.
func (t Terrain) Walkable() bool {
	return t != Water && t != Mountains
}

// MoveCost returns the terrain's movement cost multiplier (>= 1.0).
// Impassable terrain reports the highest cost; callers check Walkable first.
func (t Terrain) MoveCost() float64 {
	switch t {
	case Plains:
		return 1.0
	case Forest:
		return 1.2
	case Jungle:
		return 1.5
	case Swamp:
		return 2.0
	default:
		return 4.0
	}
}
