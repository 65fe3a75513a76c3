package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/actions"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/sim"
)

// Intent is one animal's decided action for this tick. Movement intents
// carry the destination cell; all other actions target the animal's
// current location.
type Intent struct {
	Entity  ecs.Entity
	ID      uint32
	Action  actions.Type
	TargetX int
	TargetY int
}

// DecisionEngine is phase 1: it produces exactly one intent per living
// animal. No decision may depend on another animal's decision from the
// same call, and nothing in world or animal state is mutated here.
type DecisionEngine struct{}

// NewDecisionEngine creates the phase-1 engine.
func NewDecisionEngine() *DecisionEngine {
	return &DecisionEngine{}
}

// Run collects one intent per living animal, in population order.
func (d *DecisionEngine) Run(s *sim.Simulation) ([]Intent, error) {
	cfg := config.Cfg()
	living := s.Living()
	intents := make([]Intent, 0, len(living))

	for _, e := range living {
		brain := s.BrainMap.Get(e)
		if brain == nil || brain.Net == nil {
			return intents, fmt.Errorf("decision: animal %d has no brain", s.MetaMap.Get(e).ID)
		}

		inputs := ComputeSensors(s, e)
		dist, err := brain.Net.Forward(inputs.AsSlice())
		if err != nil {
			return intents, fmt.Errorf("decision: animal %d: %w", s.MetaMap.Get(e).ID, err)
		}

		var action actions.Type
		if cfg.Decision.Sample {
			action = sampleAction(dist, s)
		} else {
			action = argmaxAction(dist)
		}

		pos := s.PosMap.Get(e)
		dx, dy := action.Delta()
		intents = append(intents, Intent{
			Entity:  e,
			ID:      s.MetaMap.Get(e).ID,
			Action:  action,
			TargetX: pos.X + dx,
			TargetY: pos.Y + dy,
		})
	}

	return intents, nil
}

// argmaxAction picks the most probable action; ties go to the lowest
// action index so the choice is deterministic.
func argmaxAction(dist [8]float32) actions.Type {
	best := 0
	for i := 1; i < len(dist); i++ {
		if dist[i] > dist[best] {
			best = i
		}
	}
	return actions.Type(best)
}

// sampleAction draws from the distribution using the simulation's
// injected random source, keeping runs reproducible from the seed.
func sampleAction(dist [8]float32, s *sim.Simulation) actions.Type {
	r := s.RNG.Float32()
	var cum float32
	for i, p := range dist {
		cum += p
		if r < cum {
			return actions.Type(i)
		}
	}
	return actions.Type(len(dist) - 1)
}
