package systems

import (
	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/sim"
)

// CleanupResult aggregates phase-4 counts.
type CleanupResult struct {
	Processed int
	Added     int
	Updated   int
	Removed   int
}

// CleanupEngine is phase 4: it matches each living animal's vitals
// against the effect rules, then ages every active effect. Rules are
// applied before aging, so an effect granted or refreshed this tick
// still has its full duration entering the next one.
type CleanupEngine struct{}

// NewCleanupEngine creates the phase-4 engine.
func NewCleanupEngine() *CleanupEngine {
	return &CleanupEngine{}
}

// Run evaluates the effect rules and ticks durations for every living
// animal.
func (ce *CleanupEngine) Run(s *sim.Simulation) (CleanupResult, error) {
	cfg := config.Cfg()
	var res CleanupResult

	for _, e := range s.Living() {
		vitals := s.VitalsMap.Get(e)
		if vitals == nil || !vitals.Alive {
			continue
		}
		res.Processed++
		effects := s.EffectsMap.Get(e)

		if rule := cfg.Effects.WellFed; vitals.Hunger >= float32(rule.Threshold) {
			ce.apply(effects, components.NewWellFed(rule.Duration, rule.Modifier), &res)
		}
		if rule := cfg.Effects.Exhausted; vitals.Energy <= float32(rule.Threshold) {
			ce.apply(effects, components.NewExhausted(rule.Duration, rule.Modifier), &res)
		}
		if rule := cfg.Effects.Adrenaline; vitals.Health <= float32(rule.Threshold) {
			ce.apply(effects, components.NewAdrenaline(rule.Duration, rule.Modifier), &res)
		}

		res.Removed += effects.TickAll()
	}

	return res, nil
}

func (ce *CleanupEngine) apply(effects *components.EffectList, e components.Effect, res *CleanupResult) {
	if effects.Apply(e) {
		res.Added++
	} else {
		res.Updated++
	}
}
