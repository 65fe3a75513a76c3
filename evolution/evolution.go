// Package evolution breeds the next generation of brains from the
// scored survivors and casualties of the last one. It operates on
// flattened parameter vectors so it never touches simulation state.
package evolution

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/traits"
)

// Individual is one scored genome: the flattened network parameters,
// the fitness the animal earned, and the category it competed as.
type Individual struct {
	Params   []float32
	Fitness  float64
	Category traits.Category
}

// Evolver applies elitism, tournament selection, one-point crossover
// and Gaussian mutation. All randomness comes from the injected source.
type Evolver struct {
	rng *rand.Rand
}

// New creates an evolver around a random source.
func New(rng *rand.Rand) *Evolver {
	return &Evolver{rng: rng}
}

// Evolve produces the next generation from the scored one. The output
// has exactly the same size as the input; elites carry their params
// over unchanged, the rest are bred. An empty population evolves into
// an empty one.
func (ev *Evolver) Evolve(pop []Individual) ([]Individual, error) {
	if len(pop) == 0 {
		return []Individual{}, nil
	}
	cfg := config.Cfg()

	ranked := make([]Individual, len(pop))
	copy(ranked, pop)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	elites := cfg.Derived.EliteCount
	if elites > len(ranked) {
		elites = len(ranked)
	}

	next := make([]Individual, 0, len(ranked))
	for i := 0; i < elites; i++ {
		next = append(next, Individual{
			Params:   cloneParams(ranked[i].Params),
			Category: ranked[i].Category,
		})
	}

	for len(next) < len(ranked) {
		a := ev.selectParent(ranked, cfg.Evolution.TournamentSize)
		b := ev.selectParent(ranked, cfg.Evolution.TournamentSize)

		child, err := ev.Crossover(a.Params, b.Params)
		if err != nil {
			return nil, err
		}
		ev.Mutate(child, cfg.Evolution.MutationRate, cfg.Evolution.MutationSigma)

		cat := a.Category
		if ev.rng.Intn(2) == 1 {
			cat = b.Category
		}
		next = append(next, Individual{Params: child, Category: cat})
	}

	return next, nil
}

// selectParent runs one tournament: sample k individuals with
// replacement and keep the fittest.
func (ev *Evolver) selectParent(ranked []Individual, k int) Individual {
	best := ranked[ev.rng.Intn(len(ranked))]
	for i := 1; i < k; i++ {
		c := ranked[ev.rng.Intn(len(ranked))]
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}

// Crossover splices two parent genomes at a single cut point drawn
// uniformly over the genome. The parents must have equal length; the
// inputs are never modified.
func (ev *Evolver) Crossover(a, b []float32) ([]float32, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("evolution: genome length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return []float32{}, nil
	}
	cut := ev.rng.Intn(len(a))
	child := make([]float32, len(a))
	copy(child[:cut], a[:cut])
	copy(child[cut:], b[cut:])
	return child, nil
}

// Mutate perturbs each gene independently with the given probability,
// adding Gaussian noise scaled by sigma. The genome is modified in
// place.
func (ev *Evolver) Mutate(params []float32, rate, sigma float64) {
	for i := range params {
		if ev.rng.Float64() < rate {
			params[i] += float32(ev.rng.NormFloat64() * sigma)
		}
	}
}

func cloneParams(p []float32) []float32 {
	out := make([]float32, len(p))
	copy(out, p)
	return out
}
