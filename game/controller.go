// Package game drives whole experiment runs: it owns the world, the
// simulation, the tick resolver and the evolver, and loops generations
// until the run is done.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/evolution"
	"github.com/pthm-cable/menagerie/neural"
	"github.com/pthm-cable/menagerie/sim"
	"github.com/pthm-cable/menagerie/systems"
	"github.com/pthm-cable/menagerie/telemetry"
	"github.com/pthm-cable/menagerie/traits"
	"github.com/pthm-cable/menagerie/world"
)

// GenerationSummary reports one finished generation.
type GenerationSummary struct {
	Generation     int
	WeeksCompleted int
	Survivors      int
	Casualties     int
}

// Controller runs the simulation generation by generation.
type Controller struct {
	sim      *sim.Simulation
	resolver *systems.Resolver
	evolver  *evolution.Evolver
	out      *telemetry.OutputManager
}

// New builds a controller: generates terrain from the seed, scatters
// resources and spawns the founding population with fresh brains.
func New(seed int64, out *telemetry.OutputManager) (*Controller, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(seed))

	grid, err := world.Generate(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("game: generating world: %w", err)
	}
	world.ScatterResources(grid, cfg, rng)

	c := &Controller{
		sim:      sim.New(grid, rng),
		resolver: systems.NewResolver(),
		evolver:  evolution.New(rng),
		out:      out,
	}

	for i := 0; i < cfg.Population.Size; i++ {
		if _, err := c.sim.SpawnRandom(c.categoryForSlot(i, cfg)); err != nil {
			return nil, fmt.Errorf("game: founding population: %w", err)
		}
	}
	return c, nil
}

// Sim exposes the underlying simulation, mainly for tests.
func (c *Controller) Sim() *sim.Simulation {
	return c.sim
}

// categoryForSlot deals out categories by the configured fractions:
// carnivores first, then omnivores, the remainder herbivores.
func (c *Controller) categoryForSlot(i int, cfg *config.Config) traits.Category {
	carn := int(float64(cfg.Population.Size) * cfg.Population.CarnivoreFraction)
	omn := int(float64(cfg.Population.Size) * cfg.Population.OmnivoreFraction)
	switch {
	case i < carn:
		return traits.Carnivore
	case i < carn+omn:
		return traits.Omnivore
	default:
		return traits.Herbivore
	}
}

// RunGeneration ticks the simulation for the configured number of
// weeks, or until every animal is dead.
func (c *Controller) RunGeneration() (GenerationSummary, error) {
	cfg := config.Cfg()
	summary := GenerationSummary{Generation: c.sim.Generation}
	casualties := 0

	for week := 0; week < cfg.Population.WeeksPerGeneration; week++ {
		res, err := c.resolver.Tick(c.sim)
		if err != nil {
			return summary, fmt.Errorf("game: generation %d week %d: %w", c.sim.Generation, week, err)
		}
		summary.WeeksCompleted++
		casualties += len(res.Casualties)

		rec := telemetry.NewTickRecord(c.sim.Generation, c.sim.Week, len(c.sim.Population), res)
		if err := c.out.WriteTick(rec); err != nil {
			return summary, err
		}

		if len(c.sim.Population) == 0 {
			slog.Info("population extinct", "generation", c.sim.Generation, "week", c.sim.Week)
			break
		}
	}

	summary.Survivors = len(c.sim.Population)
	summary.Casualties = casualties
	return summary, nil
}

// EvolveGeneration scores every animal of the finished generation,
// living and dead, breeds the next one and respawns it on a freshly
// restocked world.
func (c *Controller) EvolveGeneration() error {
	cfg := config.Cfg()

	members := append(c.sim.Living(), c.sim.Graveyard...)
	pop := make([]evolution.Individual, 0, len(members))
	fitness := make([]float64, 0, len(members))
	ids := make([]uint32, 0, len(members))

	for _, e := range members {
		brain := c.sim.BrainMap.Get(e)
		if brain == nil || brain.Net == nil {
			continue
		}
		f := telemetry.Fitness(*c.sim.ScoreMap.Get(e), cfg)
		pop = append(pop, evolution.Individual{
			Params:   brain.Net.Flatten(),
			Fitness:  f,
			Category: c.sim.MetaMap.Get(e).Category,
		})
		fitness = append(fitness, f)
		ids = append(ids, c.sim.MetaMap.Get(e).ID)
	}

	gs := telemetry.ComputeGenStats(c.sim.Generation, fitness, ids,
		len(c.sim.Population), len(c.sim.Graveyard))
	gs.LogStats()
	if err := c.out.WriteGeneration(gs); err != nil {
		return err
	}

	next, err := c.evolver.Evolve(pop)
	if err != nil {
		return fmt.Errorf("game: evolving generation %d: %w", c.sim.Generation, err)
	}

	c.sim.ClearGeneration()
	world.ScatterResources(c.sim.Grid, cfg, c.sim.RNG)

	for _, ind := range next {
		brain, err := neural.FromParams(ind.Params)
		if err != nil {
			return fmt.Errorf("game: rebuilding brain: %w", err)
		}
		if _, err := c.sim.SpawnWithBrain(ind.Category, brain); err != nil {
			return fmt.Errorf("game: respawning: %w", err)
		}
	}

	c.sim.Generation++
	c.sim.Week = 0
	return nil
}

// Run executes the full experiment: the given number of generations,
// each followed by an evolution step except the last.
func (c *Controller) Run(generations int) error {
	for g := 0; g < generations; g++ {
		summary, err := c.RunGeneration()
		if err != nil {
			return err
		}
		slog.Info("generation complete",
			"generation", summary.Generation,
			"weeks", summary.WeeksCompleted,
			"survivors", summary.Survivors,
			"casualties", summary.Casualties,
		)
		if g == generations-1 {
			break
		}
		if err := c.EvolveGeneration(); err != nil {
			return err
		}
	}
	return nil
}
