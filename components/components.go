// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/neural"
	"github.com/pthm-cable/menagerie/traits"
)

// Meta holds an animal's identity.
type Meta struct {
	ID       uint32
	Category traits.Category
}

// Position is an animal's tile coordinate. It must always reference a
// valid, in-bounds tile; only the execution phase mutates it.
type Position struct {
	X, Y int
}

// Vitals holds the bounded status values of an animal.
// Health is capped at MaxHealth, which is derived from Endurance.
type Vitals struct {
	Health    float32
	Hunger    float32
	Thirst    float32
	Energy    float32
	MaxHealth float32
	Alive     bool
}

// NewVitals creates full vitals for an animal with the given Endurance.
func NewVitals(cfg *config.Config, endurance int) Vitals {
	maxHealth := float32(cfg.Vitals.BaseHealth + float64(endurance)*cfg.Vitals.HealthPerEndurance)
	return Vitals{
		Health:    maxHealth,
		Hunger:    float32(cfg.Vitals.MaxHunger),
		Thirst:    float32(cfg.Vitals.MaxThirst),
		Energy:    float32(cfg.Vitals.MaxEnergy),
		MaxHealth: maxHealth,
		Alive:     true,
	}
}

// GainHunger adds to Hunger, clamped at the configured cap.
func (v *Vitals) GainHunger(amount, cap float32) {
	v.Hunger += amount
	if v.Hunger > cap {
		v.Hunger = cap
	}
}

// GainThirst adds to Thirst, clamped at the configured cap.
func (v *Vitals) GainThirst(amount, cap float32) {
	v.Thirst += amount
	if v.Thirst > cap {
		v.Thirst = cap
	}
}

// GainEnergy adds to Energy, clamped at the configured cap.
func (v *Vitals) GainEnergy(amount, cap float32) {
	v.Energy += amount
	if v.Energy > cap {
		v.Energy = cap
	}
}

// SpendEnergy deducts an action's cost. Returns false when the animal
// had less energy than the cost; energy still drains to zero.
func (v *Vitals) SpendEnergy(cost float32) bool {
	if v.Energy < cost {
		v.Energy = 0
		return false
	}
	v.Energy -= cost
	return true
}

// Damage reduces Health and reports whether the animal died from it.
func (v *Vitals) Damage(amount float32) bool {
	v.Health -= amount
	if v.Health <= 0 {
		v.Health = 0
		v.Alive = false
		return true
	}
	return false
}

// TraitSet holds an animal's five base trait values.
type TraitSet struct {
	Base traits.Set
}

// Effective returns base + active effect modifiers for a trait,
// clamped at zero.
func (ts *TraitSet) Effective(t traits.Trait, effects *EffectList) int {
	v := ts.Base.Get(t) + effects.ModifierSum(t)
	if v < 0 {
		return 0
	}
	return v
}

// Score holds the five fitness accumulators. Phases only ever add to
// them; the weighted scalar is computed by telemetry.
type Score struct {
	Time     float64 // Ticks survived
	Resource float64 // Vital points gained from resources
	Kill     float64 // Kills landed
	Distance float64 // Successful moves
	Event    float64 // Attacks survived
}

// Brain owns the animal's decision network.
type Brain struct {
	Net *neural.FFNN
}
