package sim

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/neural"
	"github.com/pthm-cable/menagerie/traits"
	"github.com/pthm-cable/menagerie/world"
)

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	config.MustInit("")

	grid, err := world.New(5, 5)
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	return New(grid, rand.New(rand.NewSource(42)))
}

func testTraits() traits.Set {
	return traits.Set{50, 50, 50, 50, 50}
}

func TestSpawnClaimsTile(t *testing.T) {
	s := newTestSim(t)

	e, err := s.Spawn(traits.Herbivore, 2, 2, testTraits(), neural.NewFFNN(s.RNG))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	tile := s.Grid.TileAt(2, 2)
	occ, ok := tile.Occupant()
	if !ok || occ != e {
		t.Error("spawn did not claim its tile")
	}
	if len(s.Population) != 1 || s.Population[0] != e {
		t.Error("spawn not recorded in the population")
	}
	if got := s.MetaMap.Get(e).Category; got != traits.Herbivore {
		t.Errorf("Category = %s, want Herbivore", got)
	}
}

func TestSpawnRejectsBadTiles(t *testing.T) {
	s := newTestSim(t)

	if _, err := s.Spawn(traits.Herbivore, -1, 0, testTraits(), nil); err == nil {
		t.Error("Spawn accepted an out-of-bounds tile")
	}

	s.Grid.TileAt(1, 1).Terrain = world.Water
	if _, err := s.Spawn(traits.Herbivore, 1, 1, testTraits(), nil); err == nil {
		t.Error("Spawn accepted a water tile")
	}

	if _, err := s.Spawn(traits.Herbivore, 2, 2, testTraits(), nil); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if _, err := s.Spawn(traits.Carnivore, 2, 2, testTraits(), nil); err == nil {
		t.Error("Spawn accepted an occupied tile")
	}
}

func TestKill(t *testing.T) {
	s := newTestSim(t)

	a, _ := s.Spawn(traits.Herbivore, 0, 0, testTraits(), nil)
	b, _ := s.Spawn(traits.Carnivore, 1, 0, testTraits(), nil)
	c, _ := s.Spawn(traits.Omnivore, 2, 0, testTraits(), nil)

	s.Kill(b)

	if s.VitalsMap.Get(b).Alive {
		t.Error("killed animal still marked alive")
	}
	if s.Grid.TileAt(1, 0).Occupied() {
		t.Error("killed animal still occupies its tile")
	}
	if len(s.Graveyard) != 1 || s.Graveyard[0] != b {
		t.Error("killed animal missing from graveyard")
	}
	// Population order is preserved for the survivors.
	if len(s.Population) != 2 || s.Population[0] != a || s.Population[1] != c {
		t.Error("population order disturbed by Kill")
	}
	// Post-mortem state stays readable for fitness scoring.
	if s.ScoreMap.Get(b) == nil {
		t.Error("dead animal's score no longer readable")
	}
}

func TestSpawnWithBrainRollsValidTraits(t *testing.T) {
	s := newTestSim(t)
	cfg := config.Cfg()

	e, err := s.SpawnWithBrain(traits.Carnivore, neural.NewFFNN(s.RNG))
	if err != nil {
		t.Fatalf("SpawnWithBrain failed: %v", err)
	}

	ts := s.TraitsMap.Get(e)
	if err := ts.Base.Validate(traits.Carnivore,
		cfg.Traits.StandardMin, cfg.Traits.StandardMax,
		cfg.Traits.PrimaryMin, cfg.Traits.PrimaryMax); err != nil {
		t.Errorf("rolled traits invalid: %v", err)
	}
	if ts.Base.Get(traits.Strength) < cfg.Traits.PrimaryFloor {
		t.Errorf("carnivore Strength %d below floor %d", ts.Base.Get(traits.Strength), cfg.Traits.PrimaryFloor)
	}
}

func TestClearGeneration(t *testing.T) {
	s := newTestSim(t)

	a, _ := s.Spawn(traits.Herbivore, 0, 0, testTraits(), nil)
	s.Spawn(traits.Carnivore, 1, 0, testTraits(), nil)
	s.Kill(a)

	s.ClearGeneration()

	if len(s.Population) != 0 || len(s.Graveyard) != 0 {
		t.Error("ClearGeneration left animals behind")
	}
	occupied := 0
	s.Grid.EachTile(func(tile *world.Tile) {
		if tile.Occupied() {
			occupied++
		}
	})
	if occupied != 0 {
		t.Errorf("%d tiles still occupied after ClearGeneration", occupied)
	}
}

func TestLivingIsSnapshot(t *testing.T) {
	s := newTestSim(t)

	a, _ := s.Spawn(traits.Herbivore, 0, 0, testTraits(), nil)
	s.Spawn(traits.Herbivore, 1, 0, testTraits(), nil)

	living := s.Living()
	s.Kill(a)

	if len(living) != 2 {
		t.Error("snapshot changed after Kill")
	}
	if len(s.Population) != 1 {
		t.Error("population not updated by Kill")
	}
}
