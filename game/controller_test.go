package game

import (
	"testing"

	"github.com/pthm-cable/menagerie/config"
)

func TestNewFoundingPopulation(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	ctrl, err := New(42, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := ctrl.Sim()
	if len(s.Population) != cfg.Population.Size {
		t.Fatalf("founding population = %d, want %d", len(s.Population), cfg.Population.Size)
	}

	// Every animal has a brain and stands on its claimed tile.
	for _, e := range s.Population {
		if s.BrainMap.Get(e).Net == nil {
			t.Fatal("animal spawned without a brain")
		}
		pos := s.PosMap.Get(e)
		tile := s.Grid.TileAt(pos.X, pos.Y)
		occ, ok := tile.Occupant()
		if !ok || occ != e {
			t.Fatal("animal position and tile occupancy disagree")
		}
	}
}

func TestRunGeneration(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	ctrl, err := New(42, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	summary, err := ctrl.RunGeneration()
	if err != nil {
		t.Fatalf("RunGeneration failed: %v", err)
	}

	if summary.WeeksCompleted < 1 || summary.WeeksCompleted > cfg.Population.WeeksPerGeneration {
		t.Errorf("WeeksCompleted = %d, want within [1, %d]", summary.WeeksCompleted, cfg.Population.WeeksPerGeneration)
	}
	if summary.Survivors+summary.Casualties != cfg.Population.Size {
		t.Errorf("survivors %d + casualties %d != population %d",
			summary.Survivors, summary.Casualties, cfg.Population.Size)
	}
}

func TestEvolveGenerationRespawns(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	ctrl, err := New(42, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := ctrl.RunGeneration(); err != nil {
		t.Fatalf("RunGeneration failed: %v", err)
	}

	if err := ctrl.EvolveGeneration(); err != nil {
		t.Fatalf("EvolveGeneration failed: %v", err)
	}

	s := ctrl.Sim()
	if len(s.Population) != cfg.Population.Size {
		t.Errorf("next generation size = %d, want %d", len(s.Population), cfg.Population.Size)
	}
	if len(s.Graveyard) != 0 {
		t.Error("graveyard not cleared between generations")
	}
	if s.Generation != 1 {
		t.Errorf("Generation = %d, want 1", s.Generation)
	}
	if s.Week != 0 {
		t.Errorf("Week = %d, want reset to 0", s.Week)
	}

	for _, e := range s.Population {
		if !s.VitalsMap.Get(e).Alive {
			t.Fatal("respawned animal not alive")
		}
		if s.ScoreMap.Get(e).Time != 0 {
			t.Fatal("respawned animal carries an old score")
		}
	}
}
