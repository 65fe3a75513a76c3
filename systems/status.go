package systems

import (
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/sim"
)

// StatusResult aggregates phase-2 counts and the animals that died
// from attrition this tick.
type StatusResult struct {
	Processed        int
	HungerDepletions int
	ThirstDepletions int
	EnergyRegens     int
	HealthLosses     int
	Casualties       []sim.Casualty
}

// StatusEngine is phase 2: passive drains, regeneration and attrition
// damage. Hunger and Thirst only ever decrease here; Energy regenerates
// while the animal is fed and decays otherwise; Health drops once
// Hunger or Thirst hit zero. Animals that die are removed immediately
// so phase 3 never executes an action for a corpse.
type StatusEngine struct{}

// NewStatusEngine creates the phase-2 engine.
func NewStatusEngine() *StatusEngine {
	return &StatusEngine{}
}

// Run applies the once-per-tick passive status change to every living
// animal. It also credits each processed animal's survival time.
func (se *StatusEngine) Run(s *sim.Simulation) (StatusResult, error) {
	cfg := config.Cfg()
	var res StatusResult

	for _, e := range s.Living() {
		vitals := s.VitalsMap.Get(e)
		if vitals == nil || !vitals.Alive {
			continue
		}
		res.Processed++

		// Survival time accrues for every animal alive entering this phase.
		s.ScoreMap.Get(e).Time++

		vitals.Hunger -= float32(cfg.Status.HungerDecay)
		if vitals.Hunger <= 0 {
			vitals.Hunger = 0
			res.HungerDepletions++
		}
		vitals.Thirst -= float32(cfg.Status.ThirstDecay)
		if vitals.Thirst <= 0 {
			vitals.Thirst = 0
			res.ThirstDepletions++
		}

		fed := vitals.Hunger > float32(cfg.Status.FedThreshold) &&
			vitals.Thirst > float32(cfg.Status.FedThreshold)
		if fed {
			vitals.GainEnergy(float32(cfg.Status.EnergyRegen), float32(cfg.Vitals.MaxEnergy))
			res.EnergyRegens++
		} else {
			vitals.Energy -= float32(cfg.Status.EnergyDecay)
			if vitals.Energy < 0 {
				vitals.Energy = 0
			}
		}

		// Starvation damage lands before dehydration; if both deplete in
		// the same tick and the animal dies, the recorded cause is
		// whichever strike actually brought Health to zero.
		var died bool
		var cause sim.DeathCause
		if vitals.Hunger == 0 {
			res.HealthLosses++
			if vitals.Damage(float32(cfg.Status.StarvationDamage)) {
				died, cause = true, sim.Starvation
			}
		}
		if !died && vitals.Thirst == 0 {
			res.HealthLosses++
			if vitals.Damage(float32(cfg.Status.DehydrationDamage)) {
				died, cause = true, sim.Dehydration
			}
		}

		if died {
			id := s.MetaMap.Get(e).ID
			s.Kill(e)
			res.Casualties = append(res.Casualties, sim.Casualty{ID: id, Cause: cause})
		}
	}

	return res, nil
}
