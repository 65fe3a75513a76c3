package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenStats holds the fitness distribution of one finished generation.
type GenStats struct {
	Generation int `csv:"generation"`
	Survivors  int `csv:"survivors"`
	Casualties int `csv:"casualties"`

	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessMax  float64 `csv:"fitness_max"`

	BestID uint32 `csv:"best_id"`
}

// ComputeGenStats aggregates a generation's fitness values. The ids
// slice pairs with fitness by index and names the best individual.
func ComputeGenStats(generation int, fitness []float64, ids []uint32, survivors, casualties int) GenStats {
	gs := GenStats{
		Generation: generation,
		Survivors:  survivors,
		Casualties: casualties,
	}
	if len(fitness) == 0 {
		return gs
	}

	best := 0
	for i, f := range fitness {
		if f > fitness[best] {
			best = i
		}
	}
	if best < len(ids) {
		gs.BestID = ids[best]
	}

	sorted := make([]float64, len(fitness))
	copy(sorted, fitness)
	sort.Float64s(sorted)

	gs.FitnessMean = stat.Mean(sorted, nil)
	gs.FitnessStd = stat.StdDev(sorted, nil)
	gs.FitnessMin = sorted[0]
	gs.FitnessMax = sorted[len(sorted)-1]
	gs.FitnessP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return gs
}

// LogStats logs the generation stats using slog.
func (gs GenStats) LogStats() {
	slog.Info("generation",
		"generation", gs.Generation,
		"survivors", gs.Survivors,
		"casualties", gs.Casualties,
		"fitness_mean", gs.FitnessMean,
		"fitness_std", gs.FitnessStd,
		"fitness_min", gs.FitnessMin,
		"fitness_p50", gs.FitnessP50,
		"fitness_max", gs.FitnessMax,
		"best_id", gs.BestID,
	)
}
