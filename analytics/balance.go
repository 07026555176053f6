package analytics

import (
	"math"
	"sort"

	"ticket-assigner/models"
)

func teamBalance(agents []*models.Agent) models.TeamBalance {
	if len(agents) == 0 {
		return models.TeamBalance{}
	}

	workloads := make([]float64, 0, len(agents))
	experiences := make([]float64, 0, len(agents))
	for _, a := range agents {
		workloads = append(workloads, float64(a.CurrentLoad))
		experiences = append(experiences, float64(a.ExperienceLevel))
	}

	tb := models.TeamBalance{
		Workload:   describe(workloads),
		Experience: describe(experiences),
	}
	tb.BalanceScore = tb.Workload.Stdev

	switch {
	case tb.BalanceScore < 1:
		tb.Category = "excellent"
	case tb.BalanceScore < 2:
		tb.Category = "good"
	case tb.BalanceScore < 3:
		tb.Category = "fair"
	default:
		tb.Category = "poor"
	}
	return tb
}

// describe computes mean, median, sample standard deviation, min and max.
// The standard deviation of fewer than two values is 0.
func describe(values []float64) models.Stats {
	if len(values) == 0 {
		return models.Stats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	n := float64(len(sorted))
	mean := sum / n

	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	stdev := 0.0
	if len(sorted) > 1 {
		ss := 0.0
		for _, v := range sorted {
			ss += (v - mean) * (v - mean)
		}
		stdev = math.Sqrt(ss / (n - 1))
	}

	return models.Stats{
		Mean:   mean,
		Median: median,
		Stdev:  stdev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
