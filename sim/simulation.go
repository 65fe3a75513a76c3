// Package sim holds the shared simulation state threaded through the
// phase engines: the tile grid, the animal arena, the population and
// graveyard, and the tick counters.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/neural"
	"github.com/pthm-cable/menagerie/traits"
	"github.com/pthm-cable/menagerie/world"
)

// DeathCause records why an animal died.
type DeathCause uint8

const (
	Starvation DeathCause = iota
	Dehydration
	Slain
)

// String returns the cause's name.
func (c DeathCause) String() string {
	switch c {
	case Starvation:
		return "Starvation"
	case Dehydration:
		return "Dehydration"
	case Slain:
		return "Slain"
	default:
		return fmt.Sprintf("DeathCause(%d)", uint8(c))
	}
}

// Casualty is one death recorded during a tick.
type Casualty struct {
	ID    uint32
	Cause DeathCause
}

// Simulation owns the world grid and every animal for one run. Animals
// live in an ECS arena; tiles reference them weakly by entity id, the
// Population slice is the sole owner and fixes iteration order.
type Simulation struct {
	Grid *world.World
	ECS  *ecs.World
	RNG  *rand.Rand

	Week       int
	Generation int

	Population []ecs.Entity
	Graveyard  []ecs.Entity

	animals *ecs.Map7[
		components.Meta,
		components.Position,
		components.Vitals,
		components.TraitSet,
		components.EffectList,
		components.Score,
		components.Brain,
	]

	// Individual component mappers for lookups
	MetaMap    *ecs.Map1[components.Meta]
	PosMap     *ecs.Map1[components.Position]
	VitalsMap  *ecs.Map1[components.Vitals]
	TraitsMap  *ecs.Map1[components.TraitSet]
	EffectsMap *ecs.Map1[components.EffectList]
	ScoreMap   *ecs.Map1[components.Score]
	BrainMap   *ecs.Map1[components.Brain]

	nextID uint32
}

// New creates a simulation around a fully formed world.
func New(grid *world.World, rng *rand.Rand) *Simulation {
	w := ecs.NewWorld()
	return &Simulation{
		Grid: grid,
		ECS:  w,
		RNG:  rng,
		animals: ecs.NewMap7[
			components.Meta,
			components.Position,
			components.Vitals,
			components.TraitSet,
			components.EffectList,
			components.Score,
			components.Brain,
		](w),
		MetaMap:    ecs.NewMap1[components.Meta](w),
		PosMap:     ecs.NewMap1[components.Position](w),
		VitalsMap:  ecs.NewMap1[components.Vitals](w),
		TraitsMap:  ecs.NewMap1[components.TraitSet](w),
		EffectsMap: ecs.NewMap1[components.EffectList](w),
		ScoreMap:   ecs.NewMap1[components.Score](w),
		BrainMap:   ecs.NewMap1[components.Brain](w),
		nextID:     1,
	}
}

// Spawn creates an animal at the given tile. The tile must be passable;
// the spawn claims its occupant slot.
func (s *Simulation) Spawn(cat traits.Category, x, y int, ts traits.Set, brain *neural.FFNN) (ecs.Entity, error) {
	tile := s.Grid.TileAt(x, y)
	if tile == nil {
		return ecs.Entity{}, fmt.Errorf("sim: spawn at (%d, %d) is out of bounds", x, y)
	}
	if !tile.Passable() {
		return ecs.Entity{}, fmt.Errorf("sim: spawn tile (%d, %d) is not passable", x, y)
	}

	cfg := config.Cfg()
	meta := components.Meta{ID: s.nextID, Category: cat}
	s.nextID++

	pos := components.Position{X: x, Y: y}
	vitals := components.NewVitals(cfg, ts.Get(traits.Endurance))
	traitSet := components.TraitSet{Base: ts}
	effects := components.EffectList{}
	score := components.Score{}
	b := components.Brain{Net: brain}

	e := s.animals.NewEntity(&meta, &pos, &vitals, &traitSet, &effects, &score, &b)
	tile.SetOccupant(e)
	s.Population = append(s.Population, e)
	return e, nil
}

// SpawnRandom places an animal with rolled traits and a fresh brain on
// a random free tile.
func (s *Simulation) SpawnRandom(cat traits.Category) (ecs.Entity, error) {
	return s.SpawnWithBrain(cat, neural.NewFFNN(s.RNG))
}

// SpawnWithBrain places an animal with rolled traits and the given
// brain on a random free tile.
func (s *Simulation) SpawnWithBrain(cat traits.Category, brain *neural.FFNN) (ecs.Entity, error) {
	tile := s.Grid.RandomFreeTile(s.RNG)
	if tile == nil {
		return ecs.Entity{}, fmt.Errorf("sim: no free tile to spawn on")
	}
	cfg := config.Cfg()
	ts := traits.Roll(s.RNG, cat,
		cfg.Traits.StandardMin, cfg.Traits.StandardMax,
		cfg.Traits.PrimaryMin, cfg.Traits.PrimaryMax,
		cfg.Traits.PrimaryFloor)
	return s.Spawn(cat, tile.X, tile.Y, ts, brain)
}

// Kill moves an animal from the population to the graveyard, clears
// its tile occupant slot and marks it dead. The entity is never removed
// from the arena here: fitness stays readable post-mortem.
func (s *Simulation) Kill(e ecs.Entity) {
	vitals := s.VitalsMap.Get(e)
	if vitals != nil {
		vitals.Alive = false
	}
	if pos := s.PosMap.Get(e); pos != nil {
		if tile := s.Grid.TileAt(pos.X, pos.Y); tile != nil {
			if occ, ok := tile.Occupant(); ok && occ == e {
				tile.ClearOccupant()
			}
		}
	}
	for i, p := range s.Population {
		if p == e {
			s.Population = append(s.Population[:i], s.Population[i+1:]...)
			break
		}
	}
	s.Graveyard = append(s.Graveyard, e)
}

// Living returns a snapshot of the current population in stable order.
func (s *Simulation) Living() []ecs.Entity {
	snapshot := make([]ecs.Entity, len(s.Population))
	copy(snapshot, s.Population)
	return snapshot
}

// ClearGeneration removes every animal, living and dead, from the
// arena and clears all tile occupant slots. Called after evolution has
// read the outgoing generation.
func (s *Simulation) ClearGeneration() {
	for _, e := range s.Population {
		s.animals.Remove(e)
	}
	for _, e := range s.Graveyard {
		s.animals.Remove(e)
	}
	s.Population = s.Population[:0]
	s.Graveyard = s.Graveyard[:0]
	s.Grid.ClearOccupants()
}
