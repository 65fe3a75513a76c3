// Package systems implements the four phase engines of the weekly tick
// and the resolver that orchestrates them.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/actions"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/neural"
	"github.com/pthm-cable/menagerie/sim"
	"github.com/pthm-cable/menagerie/traits"
	"github.com/pthm-cable/menagerie/world"
)

// SensorInputs holds one animal's sensory vector before it is fed to
// the brain: normalized self vitals, current-tile resource flags, and
// four neighbor channels in N, E, S, W order.
type SensorInputs struct {
	Health float32
	Hunger float32
	Thirst float32
	Energy float32

	TileFood  float32
	TileWater float32

	// Per cardinal neighbor: movement cost, food, water, occupancy
	NeighborCost     [4]float32
	NeighborFood     [4]float32
	NeighborWater    [4]float32
	NeighborOccupied [4]float32
}

// AsSlice flattens the inputs in the order the network was trained on.
// The length must equal neural.NumInputs.
func (si *SensorInputs) AsSlice() []float32 {
	out := make([]float32, 0, neural.NumInputs)
	out = append(out, si.Health, si.Hunger, si.Thirst, si.Energy, si.TileFood, si.TileWater)
	for i := 0; i < 4; i++ {
		out = append(out, si.NeighborCost[i], si.NeighborFood[i], si.NeighborWater[i], si.NeighborOccupied[i])
	}
	return out
}

// ComputeSensors assembles the sensory vector for one animal. It reads
// world and animal state but never mutates either.
func ComputeSensors(s *sim.Simulation, e ecs.Entity) SensorInputs {
	cfg := config.Cfg()
	pos := s.PosMap.Get(e)
	vitals := s.VitalsMap.Get(e)
	meta := s.MetaMap.Get(e)

	si := SensorInputs{
		Hunger: vitals.Hunger / float32(cfg.Vitals.MaxHunger),
		Thirst: vitals.Thirst / float32(cfg.Vitals.MaxThirst),
		Energy: vitals.Energy / float32(cfg.Vitals.MaxEnergy),
	}
	if vitals.MaxHealth > 0 {
		si.Health = vitals.Health / vitals.MaxHealth
	}

	tile := s.Grid.TileAt(pos.X, pos.Y)
	if tile != nil && tile.Resource != nil && !tile.Resource.Depleted() {
		if edible(meta.Category, tile.Resource.Kind) {
			si.TileFood = 1
		}
		if tile.Resource.Kind == world.Spring {
			si.TileWater = 1
		}
	}

	for i, d := range actions.CardinalDeltas {
		nx, ny := pos.X+d[0], pos.Y+d[1]
		neighbor := s.Grid.TileAt(nx, ny)
		if neighbor == nil || !neighbor.Terrain.Walkable() {
			si.NeighborCost[i] = 1
			continue
		}
		// Normalize walkable costs from [1, 4] into [0, 1)
		si.NeighborCost[i] = float32((neighbor.Terrain.MoveCost() - 1.0) / 4.0)
		if neighbor.Resource != nil && !neighbor.Resource.Depleted() {
			if edible(meta.Category, neighbor.Resource.Kind) {
				si.NeighborFood[i] = 1
			}
			if neighbor.Resource.Kind == world.Spring {
				si.NeighborWater[i] = 1
			}
		}
		if neighbor.Occupied() {
			si.NeighborOccupied[i] = 1
		}
	}

	return si
}

// edible reports whether a category can eat a resource kind.
// Springs are drinkable by everyone but never count as food.
func edible(cat traits.Category, kind world.ResourceKind) bool {
	switch kind {
	case world.Plant:
		return cat == traits.Herbivore || cat == traits.Omnivore
	case world.Prey:
		return cat == traits.Carnivore || cat == traits.Omnivore
	default:
		return false
	}
}
