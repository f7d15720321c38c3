package analysis

import (
	"math"

	"fightcamp/internal/store"
)

// Balance-metric directions and severities.
const (
	DirectionImproving = "improving"
	DirectionStable    = "stable"
	DirectionDeclining = "declining"

	SeverityNormal  = "normal"
	SeverityWarning = "warning"
	SeverityAlert   = "alert"
)

// balanceStableZ is the |z| band inside which a metric reads stable.
const balanceStableZ = 0.5

// BalanceMetric compares a 14-day wellness metric against its 60-day
// baseline.
type BalanceMetric struct {
	Metric     string  `json:"metric"`
	Recent14d  float64 `json:"recent14d"`
	Baseline60 float64 `json:"baseline60d"`
	ZScore     float64 `json:"zScore"`
	Direction  string  `json:"direction"`
	Severity   string  `json:"severity"`
}

// ComputeBalanceMetrics derives the 14d-vs-60d comparison for every
// metric the baseline has complete statistics for. For metrics where
// lower is better (soreness, fatigue, stress, daily load) the direction
// is inverted so that a drop reads as improving.
func ComputeBalanceMetrics(b *store.PersonalBaseline) []BalanceMetric {
	if b == nil {
		return nil
	}

	type metricDef struct {
		name        string
		mean14      *float64
		mean60      *float64
		std60       *float64
		lowerBetter bool
	}

	defs := []metricDef{
		{"sleep_hours", b.SleepHoursMean14d, b.SleepHoursMean60d, b.SleepHoursStd60d, false},
		{"soreness", b.SorenessMean14d, b.SorenessMean60d, b.SorenessStd60d, true},
		{"fatigue", b.FatigueMean14d, b.FatigueMean60d, b.FatigueStd60d, true},
		{"stress", b.StressMean14d, b.StressMean60d, b.StressStd60d, true},
		{"hooper_index", b.HooperMean14d, b.HooperMean60d, b.HooperStd60d, false},
		{"daily_load", b.DailyLoadMean14d, b.DailyLoadMean60d, b.DailyLoadStd60d, true},
	}

	var out []BalanceMetric
	for _, d := range defs {
		if d.mean14 == nil || d.mean60 == nil || d.std60 == nil {
			continue
		}
		z := ZScore(*d.mean14, *d.mean60, *d.std60)

		signed := z
		if d.lowerBetter {
			signed = -z
		}
		direction := DirectionStable
		if math.Abs(z) >= balanceStableZ {
			if signed > 0 {
				direction = DirectionImproving
			} else {
				direction = DirectionDeclining
			}
		}

		severity := SeverityNormal
		switch {
		case math.Abs(z) >= 2:
			severity = SeverityAlert
		case math.Abs(z) >= 1:
			severity = SeverityWarning
		}

		out = append(out, BalanceMetric{
			Metric:     d.name,
			Recent14d:  *d.mean14,
			Baseline60: *d.mean60,
			ZScore:     z,
			Direction:  direction,
			Severity:   severity,
		})
	}
	return out
}
