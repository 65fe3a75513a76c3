package world

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/config"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 5); err == nil {
		t.Error("New accepted zero width")
	}
	if _, err := New(5, -1); err == nil {
		t.Error("New accepted negative height")
	}
}

func TestTileAtBounds(t *testing.T) {
	w, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if tile := w.TileAt(3, 2); tile == nil {
		t.Error("TileAt rejected an in-bounds corner")
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if tile := w.TileAt(c[0], c[1]); tile != nil {
			t.Errorf("TileAt(%d, %d) returned a tile out of bounds", c[0], c[1])
		}
	}
}

func TestTerrainRules(t *testing.T) {
	cases := []struct {
		terrain  Terrain
		walkable bool
		cost     float64
	}{
		{Plains, true, 1.0},
		{Forest, true, 1.2},
		{Jungle, true, 1.5},
		{Swamp, true, 2.0},
		{Water, false, 4.0},
		{Mountains, false, 4.0},
	}
	for _, c := range cases {
		if got := c.terrain.Walkable(); got != c.walkable {
			t.Errorf("%s.Walkable() = %v, want %v", c.terrain, got, c.walkable)
		}
		if got := c.terrain.MoveCost(); got != c.cost {
			t.Errorf("%s.MoveCost() = %f, want %f", c.terrain, got, c.cost)
		}
	}
}

func TestMoveCostOutOfBounds(t *testing.T) {
	w, err := New(2, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := w.MoveCost(-1, 0); got != Mountains.MoveCost() {
		t.Errorf("out-of-bounds MoveCost = %f, want %f", got, Mountains.MoveCost())
	}
}

func TestResourceConsume(t *testing.T) {
	r := &Resource{Kind: Plant, Quantity: 15, UsesLeft: 2}

	gain, ok := r.Consume()
	if !ok || gain != 15 {
		t.Errorf("first Consume = (%f, %v), want (15, true)", gain, ok)
	}
	if r.Depleted() {
		t.Error("resource depleted after one of two uses")
	}

	r.Consume()
	if !r.Depleted() {
		t.Error("resource not depleted after last use")
	}

	// Consuming a depleted resource yields nothing and never goes negative.
	gain, ok = r.Consume()
	if ok || gain != 0 {
		t.Errorf("depleted Consume = (%f, %v), want (0, false)", gain, ok)
	}
	if r.UsesLeft != 0 {
		t.Errorf("UsesLeft = %d after depleted Consume, want 0", r.UsesLeft)
	}
}

func TestOccupancy(t *testing.T) {
	w, err := New(3, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tile := w.TileAt(1, 1)

	if tile.Occupied() {
		t.Error("fresh tile reports an occupant")
	}
	if !tile.Passable() {
		t.Error("fresh plains tile not passable")
	}

	tile.SetOccupant(ecs.Entity{})
	if !tile.Occupied() || tile.Passable() {
		t.Error("occupied tile should not be passable")
	}

	tile.ClearOccupant()
	if tile.Occupied() {
		t.Error("tile still occupied after ClearOccupant")
	}
}

func TestGenerate(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	w, err := Generate(cfg, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if w.Width != cfg.World.Width || w.Height != cfg.World.Height {
		t.Fatalf("world is %dx%d, want %dx%d", w.Width, w.Height, cfg.World.Width, cfg.World.Height)
	}

	w.EachTile(func(tile *Tile) {
		if tile.Terrain > Mountains {
			t.Errorf("tile (%d, %d) has invalid terrain %d", tile.X, tile.Y, tile.Terrain)
		}
		if tile.Resource != nil && !tile.Terrain.Walkable() {
			t.Errorf("resource on unwalkable tile (%d, %d)", tile.X, tile.Y)
		}
	})
}

func TestGenerateDeterministic(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	a, err := Generate(cfg, 99)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(cfg, 99)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	a.EachTile(func(tile *Tile) {
		other := b.TileAt(tile.X, tile.Y)
		if tile.Terrain != other.Terrain {
			t.Fatalf("terrain differs at (%d, %d) for the same seed", tile.X, tile.Y)
		}
	})
}

func TestScatterResourcesEligibility(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()

	w, err := New(16, 16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Half the board is water.
	w.EachTile(func(tile *Tile) {
		if tile.X < 8 {
			tile.Terrain = Water
		}
	})

	ScatterResources(w, cfg, rand.New(rand.NewSource(3)))

	w.EachTile(func(tile *Tile) {
		if tile.Resource == nil {
			return
		}
		if tile.Terrain == Water {
			t.Errorf("resource scattered onto water at (%d, %d)", tile.X, tile.Y)
		}
		if tile.Resource.Kind == Prey && tile.Terrain != Plains && tile.Terrain != Forest {
			t.Errorf("prey on %s at (%d, %d)", tile.Terrain, tile.X, tile.Y)
		}
	})
}
