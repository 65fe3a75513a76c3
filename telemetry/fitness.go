// Package telemetry scores animals, aggregates per-generation
// statistics and writes experiment output as CSV.
package telemetry

import (
	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
)

// Fitness collapses an animal's score components into one weighted
// scalar. Resource intake is divided down first so a single kill stays
// worth more than a few meals.
func Fitness(sc components.Score, cfg *config.Config) float64 {
	f := cfg.Fitness
	return sc.Time*f.TimeWeight +
		sc.Resource/f.ResourceDivisor*f.ResourceWeight +
		sc.Kill*f.KillWeight +
		sc.Distance*f.DistanceWeight +
		sc.Event*f.EventWeight
}
