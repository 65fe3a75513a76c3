package systems

import (
	"fmt"

	"github.com/pthm-cable/menagerie/sim"
)

// TickResult is the outcome of one full tick: top-level counters for
// the run loop plus the per-phase results for telemetry.
type TickResult struct {
	PhasesCompleted   int
	ActionsProcessed  int
	ConflictsResolved int
	Casualties        []sim.Casualty

	Status  StatusResult
	Exec    ExecResult
	Cleanup CleanupResult
}

// Resolver runs the four tick phases in their fixed order: decision,
// status, execution, cleanup. A phase error aborts the remaining
// phases; the partial result reports how far the tick got.
type Resolver struct {
	decision *DecisionEngine
	status   *StatusEngine
	exec     *ExecutionEngine
	cleanup  *CleanupEngine
}

// NewResolver creates a resolver with all four phase engines.
func NewResolver() *Resolver {
	return &Resolver{
		decision: NewDecisionEngine(),
		status:   NewStatusEngine(),
		exec:     NewExecutionEngine(),
		cleanup:  NewCleanupEngine(),
	}
}

// Tick advances the simulation by one week.
func (r *Resolver) Tick(s *sim.Simulation) (TickResult, error) {
	var res TickResult

	intents, err := r.decision.Run(s)
	if err != nil {
		return res, fmt.Errorf("resolver: decision phase: %w", err)
	}
	res.PhasesCompleted++

	res.Status, err = r.status.Run(s)
	if err != nil {
		return res, fmt.Errorf("resolver: status phase: %w", err)
	}
	res.PhasesCompleted++
	res.Casualties = append(res.Casualties, res.Status.Casualties...)

	res.Exec, err = r.exec.Run(s, intents)
	if err != nil {
		return res, fmt.Errorf("resolver: execution phase: %w", err)
	}
	res.PhasesCompleted++
	res.ActionsProcessed = res.Exec.Executed + res.Exec.Failed
	res.ConflictsResolved = res.Exec.MovementConflicts
	res.Casualties = append(res.Casualties, res.Exec.Casualties...)

	res.Cleanup, err = r.cleanup.Run(s)
	if err != nil {
		return res, fmt.Errorf("resolver: cleanup phase: %w", err)
	}
	res.PhasesCompleted++

	s.Week++
	return res, nil
}
