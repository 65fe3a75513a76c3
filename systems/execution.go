package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/actions"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/sim"
	"github.com/pthm-cable/menagerie/traits"
	"github.com/pthm-cable/menagerie/world"
)

// ActionOutcome records the result of one executed intent.
type ActionOutcome struct {
	ID      uint32
	Action  actions.Type
	Success bool
}

// ExecResult aggregates phase-3 counts, per-action outcomes and combat
// casualties.
type ExecResult struct {
	Executed          int
	Failed            int
	MovementConflicts int
	CombatEncounters  int
	Casualties        []sim.Casualty
	Outcomes          []ActionOutcome
}

// ExecutionEngine is phase 3: it executes the intents from phase 1,
// movement first, then everything else, both in decision order. This
// phase owns tile occupancy and resource depletion; a blocked move or a
// missing resource is a failed action, never an error.
type ExecutionEngine struct{}

// NewExecutionEngine creates the phase-3 engine.
func NewExecutionEngine() *ExecutionEngine {
	return &ExecutionEngine{}
}

// Run executes the surviving animals' intents. Intents of animals that
// died in phase 2 (or earlier in this phase) are dropped, not failed.
func (ee *ExecutionEngine) Run(s *sim.Simulation, intents []Intent) (ExecResult, error) {
	cfg := config.Cfg()
	var res ExecResult

	var movement, other []Intent
	for _, it := range intents {
		if it.Action.IsMovement() {
			movement = append(movement, it)
		} else {
			other = append(other, it)
		}
	}

	winners := ee.arbitrateMovement(s, movement, &res)

	for _, it := range movement {
		if !ee.alive(s, it.Entity) {
			continue
		}
		ok := ee.executeMove(s, cfg, it, winners[it.Entity])
		ee.record(&res, it, ok)
	}

	for _, it := range other {
		if !ee.alive(s, it.Entity) {
			continue
		}
		var ok bool
		switch it.Action {
		case actions.Eat:
			ok = ee.executeEat(s, cfg, it)
		case actions.Drink:
			ok = ee.executeDrink(s, cfg, it)
		case actions.Attack:
			ok = ee.executeAttack(s, cfg, it, &res)
		default:
			ok = ee.executeRest(s, cfg, it)
		}
		ee.record(&res, it, ok)
	}

	return res, nil
}

// arbitrateMovement resolves groups of moves contending for the same
// destination cell. The contender with the strictly higher effective
// Agility wins; exact ties go to the earlier intent in decision order.
func (ee *ExecutionEngine) arbitrateMovement(s *sim.Simulation, movement []Intent, res *ExecResult) map[ecs.Entity]bool {
	type group struct {
		winner  ecs.Entity
		bestAgi int
		size    int
	}
	groups := make(map[[2]int]*group)
	order := make([][2]int, 0, len(movement))

	for _, it := range movement {
		if !ee.alive(s, it.Entity) {
			continue
		}
		key := [2]int{it.TargetX, it.TargetY}
		agi := ee.effectiveTrait(s, it.Entity, traits.Agility)
		g, exists := groups[key]
		if !exists {
			groups[key] = &group{winner: it.Entity, bestAgi: agi, size: 1}
			order = append(order, key)
			continue
		}
		g.size++
		// Strictly greater replaces; a tie keeps the earlier contender.
		if agi > g.bestAgi {
			g.winner = it.Entity
			g.bestAgi = agi
		}
	}

	winners := make(map[ecs.Entity]bool, len(movement))
	for _, key := range order {
		g := groups[key]
		winners[g.winner] = true
		if g.size > 1 {
			res.MovementConflicts++
		}
	}
	return winners
}

// executeMove validates and performs one movement. Energy is deducted
// for the attempt whether or not the move lands, conflict losers
// included.
func (ee *ExecutionEngine) executeMove(s *sim.Simulation, cfg *config.Config, it Intent, won bool) bool {
	vitals := s.VitalsMap.Get(it.Entity)
	cost := float32(cfg.Actions.MoveCost * s.Grid.MoveCost(it.TargetX, it.TargetY))
	paid := vitals.SpendEnergy(cost)

	if !paid || !won {
		return false
	}
	dest := s.Grid.TileAt(it.TargetX, it.TargetY)
	if dest == nil || !dest.Passable() {
		return false
	}

	pos := s.PosMap.Get(it.Entity)
	if from := s.Grid.TileAt(pos.X, pos.Y); from != nil {
		if occ, ok := from.Occupant(); ok && occ == it.Entity {
			from.ClearOccupant()
		}
	}
	dest.SetOccupant(it.Entity)
	pos.X, pos.Y = it.TargetX, it.TargetY
	s.ScoreMap.Get(it.Entity).Distance++
	return true
}

// executeEat draws one use from the food resource on the animal's own
// tile. Draws are serialized by execution order, so only the acting
// animal depletes the resource it targets this tick.
func (ee *ExecutionEngine) executeEat(s *sim.Simulation, cfg *config.Config, it Intent) bool {
	vitals := s.VitalsMap.Get(it.Entity)
	paid := vitals.SpendEnergy(float32(cfg.Actions.EatCost))

	tile := s.Grid.TileAt(it.TargetX, it.TargetY)
	if !paid || tile == nil || tile.Resource == nil {
		return false
	}
	if !edible(s.MetaMap.Get(it.Entity).Category, tile.Resource.Kind) {
		return false
	}
	gain, ok := tile.Resource.Consume()
	if tile.Resource.Depleted() {
		tile.Resource = nil
	}
	if !ok {
		return false
	}
	vitals.GainHunger(gain, float32(cfg.Vitals.MaxHunger))
	s.ScoreMap.Get(it.Entity).Resource += float64(gain)
	return true
}

// executeDrink draws one use from a spring on the animal's own tile.
func (ee *ExecutionEngine) executeDrink(s *sim.Simulation, cfg *config.Config, it Intent) bool {
	vitals := s.VitalsMap.Get(it.Entity)
	paid := vitals.SpendEnergy(float32(cfg.Actions.DrinkCost))

	tile := s.Grid.TileAt(it.TargetX, it.TargetY)
	if !paid || tile == nil || tile.Resource == nil || tile.Resource.Kind != world.Spring {
		return false
	}
	gain, ok := tile.Resource.Consume()
	if tile.Resource.Depleted() {
		tile.Resource = nil
	}
	if !ok {
		return false
	}
	vitals.GainThirst(gain, float32(cfg.Vitals.MaxThirst))
	s.ScoreMap.Get(it.Entity).Resource += float64(gain)
	return true
}

// executeAttack strikes the first living occupant of a cardinal
// neighbor, in N, E, S, W order. Damage pits the attacker's Strength
// against the defender's Agility-based evasion. A kill removes the
// defender exactly like a phase-2 death.
func (ee *ExecutionEngine) executeAttack(s *sim.Simulation, cfg *config.Config, it Intent, res *ExecResult) bool {
	vitals := s.VitalsMap.Get(it.Entity)
	paid := vitals.SpendEnergy(float32(cfg.Actions.AttackCost))
	if !paid {
		return false
	}

	pos := s.PosMap.Get(it.Entity)
	for _, d := range actions.CardinalDeltas {
		tile := s.Grid.TileAt(pos.X+d[0], pos.Y+d[1])
		if tile == nil {
			continue
		}
		target, ok := tile.Occupant()
		if !ok || !ee.alive(s, target) {
			continue
		}

		res.CombatEncounters++
		strength := ee.effectiveTrait(s, it.Entity, traits.Strength)
		evasion := float64(ee.effectiveTrait(s, target, traits.Agility)) / cfg.Combat.EvasionDivisor
		damage := float64(strength) - evasion
		if damage < 0 {
			damage = 0
		}

		if s.VitalsMap.Get(target).Damage(float32(damage)) {
			id := s.MetaMap.Get(target).ID
			s.Kill(target)
			res.Casualties = append(res.Casualties, sim.Casualty{ID: id, Cause: sim.Slain})
			s.ScoreMap.Get(it.Entity).Kill++
		} else {
			// The defender lived through the attack.
			s.ScoreMap.Get(target).Event++
		}
		return true
	}
	return false
}

// executeRest grants energy back instead of costing it.
func (ee *ExecutionEngine) executeRest(s *sim.Simulation, cfg *config.Config, it Intent) bool {
	s.VitalsMap.Get(it.Entity).GainEnergy(float32(cfg.Actions.RestGain), float32(cfg.Vitals.MaxEnergy))
	return true
}

func (ee *ExecutionEngine) record(res *ExecResult, it Intent, success bool) {
	res.Outcomes = append(res.Outcomes, ActionOutcome{ID: it.ID, Action: it.Action, Success: success})
	if success {
		res.Executed++
	} else {
		res.Failed++
	}
}

func (ee *ExecutionEngine) alive(s *sim.Simulation, e ecs.Entity) bool {
	vitals := s.VitalsMap.Get(e)
	return vitals != nil && vitals.Alive
}

func (ee *ExecutionEngine) effectiveTrait(s *sim.Simulation, e ecs.Entity, t traits.Trait) int {
	return s.TraitsMap.Get(e).Effective(t, s.EffectsMap.Get(e))
}
