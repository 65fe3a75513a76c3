package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/menagerie/config"
)

// Generate builds a world from config: opensimplex elevation noise for
// terrain, a second moisture noise for the walkable biomes, then seeded
// resource scattering. The core engines never call this; they consume
// the finished World.
func Generate(cfg *config.Config, seed int64) (*World, error) {
	w, err := New(cfg.World.Width, cfg.World.Height)
	if err != nil {
		return nil, err
	}

	elevation := opensimplex.New(seed)
	moisture := opensimplex.New(seed + 1)
	scale := cfg.World.NoiseScale

	w.EachTile(func(t *Tile) {
		e := elevation.Eval2(float64(t.X)*scale, float64(t.Y)*scale)
		switch {
		case e < cfg.World.WaterLevel:
			t.Terrain = Water
		case e > cfg.World.MountainLevel:
			t.Terrain = Mountains
		default:
			m := moisture.Eval2(float64(t.X)*scale, float64(t.Y)*scale)
			switch {
			case m < -0.3:
				t.Terrain = Plains
			case m < 0.1:
				t.Terrain = Forest
			case m < 0.4:
				t.Terrain = Jungle
			default:
				t.Terrain = Swamp
			}
		}
	})

	rng := rand.New(rand.NewSource(seed + 2))
	ScatterResources(w, cfg, rng)

	return w, nil
}

// ScatterResources seeds resources across walkable terrain. Plants grow
// on vegetated biomes, springs can surface anywhere walkable, prey
// roams open ground. Safe to call again between generations to restock.
func ScatterResources(w *World, cfg *config.Config, rng *rand.Rand) {
	uses := cfg.World.ResourceUses
	quantity := float32(cfg.World.ResourceQuantity)

	w.EachTile(func(t *Tile) {
		if !t.Terrain.Walkable() {
			return
		}
		t.Resource = nil

		roll := rng.Float64()
		switch {
		case (t.Terrain == Plains || t.Terrain == Forest || t.Terrain == Jungle) && roll < cfg.World.PlantDensity:
			t.Resource = &Resource{Kind: Plant, Quantity: quantity, UsesLeft: uses}
		case roll < cfg.World.PlantDensity+cfg.World.WaterDensity:
			t.Resource = &Resource{Kind: Spring, Quantity: quantity, UsesLeft: uses}
		case (t.Terrain == Plains || t.Terrain == Forest) && roll < cfg.World.PlantDensity+cfg.World.WaterDensity+cfg.World.PreyDensity:
			t.Resource = &Resource{Kind: Prey, Quantity: quantity, UsesLeft: uses}
		}
	})
}
