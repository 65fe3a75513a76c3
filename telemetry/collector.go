package telemetry

import (
	"github.com/pthm-cable/menagerie/systems"
)

// TickRecord is one weekly tick's counters, flattened for CSV output.
type TickRecord struct {
	Generation int `csv:"generation"`
	Week       int `csv:"week"`
	Population int `csv:"population"`

	ActionsProcessed  int `csv:"actions_processed"`
	ActionsExecuted   int `csv:"actions_executed"`
	ActionsFailed     int `csv:"actions_failed"`
	MovementConflicts int `csv:"movement_conflicts"`
	CombatEncounters  int `csv:"combat_encounters"`
	Casualties        int `csv:"casualties"`

	EffectsAdded   int `csv:"effects_added"`
	EffectsUpdated int `csv:"effects_updated"`
	EffectsRemoved int `csv:"effects_removed"`
}

// NewTickRecord flattens a tick result. Population is the living count
// after the tick.
func NewTickRecord(generation, week, population int, res systems.TickResult) TickRecord {
	return TickRecord{
		Generation:        generation,
		Week:              week,
		Population:        population,
		ActionsProcessed:  res.ActionsProcessed,
		ActionsExecuted:   res.Exec.Executed,
		ActionsFailed:     res.Exec.Failed,
		MovementConflicts: res.Exec.MovementConflicts,
		CombatEncounters:  res.Exec.CombatEncounters,
		Casualties:        len(res.Casualties),
		EffectsAdded:      res.Cleanup.Added,
		EffectsUpdated:    res.Cleanup.Updated,
		EffectsRemoved:    res.Cleanup.Removed,
	}
}
