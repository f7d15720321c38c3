package analysis

import (
	"fmt"
	"math"

	"fightcamp/internal/store"
)

// Risk zones for the 0-100 overtraining score.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// OvertrainingRisk is an additive 0-100 risk score with the factors
// that contributed to it.
type OvertrainingRisk struct {
	Score   float64  `json:"score"`
	Zone    string   `json:"zone"`
	Factors []string `json:"factors"`
}

// OvertrainingInputs collects the signals the risk model weighs.
type OvertrainingInputs struct {
	Metrics         LoadMetrics
	Cal             Calibration
	AvgRPE7d        float64
	AvgSoreness7d   float64
	ConsecutiveHigh int
	SessionsLast7d  int
	Trends          Trends
}

// ComputeOvertraining sums the active risk factors and clamps to 0-100.
func ComputeOvertraining(in OvertrainingInputs) OvertrainingRisk {
	var score float64
	var factors []string

	ratio := in.Metrics.LoadRatio
	switch {
	case ratio > in.Cal.DangerRatio:
		score += 40
		factors = append(factors, fmt.Sprintf("Load ratio %.2f exceeds danger threshold %.2f", ratio, in.Cal.DangerRatio))
	case ratio > in.Cal.CautionRatio:
		score += MapRange(ratio, in.Cal.CautionRatio, in.Cal.DangerRatio, 15, 40)
		factors = append(factors, fmt.Sprintf("Load ratio %.2f is above caution threshold %.2f", ratio, in.Cal.CautionRatio))
	}

	if in.AvgRPE7d > in.Cal.RPECeiling {
		points := math.Round(Clamp(0, 25, (in.AvgRPE7d-in.Cal.RPECeiling)*10))
		if points > 0 {
			score += points
			factors = append(factors, fmt.Sprintf("7-day average RPE %.1f is above your ceiling of %.1f", in.AvgRPE7d, in.Cal.RPECeiling))
		}
	}

	if in.AvgSoreness7d > 6 {
		score += MapRange(in.AvgSoreness7d, 6, 10, 10, 25)
		factors = append(factors, fmt.Sprintf("7-day average soreness %.1f is elevated", in.AvgSoreness7d))
	}

	if in.ConsecutiveHigh >= 3 {
		score += 20
		factors = append(factors, fmt.Sprintf("%d consecutive high-strain days without recovery", in.ConsecutiveHigh))
	}

	if in.SessionsLast7d >= in.Cal.FrequencyAlert {
		score += 15
		factors = append(factors, fmt.Sprintf("%d sessions in the last 7 days", in.SessionsLast7d))
	}

	if in.Trends.SorenessRising {
		score += 10
		factors = append(factors, "Soreness is trending upward")
	}
	if in.Trends.SleepDeclining {
		score += 8
		factors = append(factors, "Sleep is trending downward")
	}
	if in.Trends.LoadEscalating {
		score += 8
		factors = append(factors, "Training load is escalating day over day")
	}

	score = Clamp(0, 100, score)
	return OvertrainingRisk{Score: score, Zone: RiskZoneFor(score), Factors: factors}
}

// RiskZoneFor buckets an overtraining score into its zone.
func RiskZoneFor(score float64) string {
	switch {
	case score <= 30:
		return RiskLow
	case score <= 60:
		return RiskModerate
	case score <= 80:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ApplyRestDayRecovery discounts the overtraining score for a logged
// rest day. A rest day with low soreness and good sleep earns the
// larger discount.
func ApplyRestDayRecovery(score, sorenessLevel float64, sleepQuality string) float64 {
	if sorenessLevel <= 4 && sleepQuality == store.SleepQualityGood {
		return math.Max(0, score*0.85)
	}
	return math.Max(0, score*0.95)
}

// RestDayReport captures the recovery detail of a logged rest day.
type RestDayReport struct {
	SorenessLevel float64
	SleepQuality  *string
	SleepHours    float64
	FatigueLevel  *float64
	MobilityDone  bool
}

// ApplyRestDayRecoveryReport discounts the overtraining score based on
// how restorative the rest day actually was. Each recovery signal earns
// a graduated credit on top of a base 5% discount; the total discount
// is capped at 25%.
func ApplyRestDayRecoveryReport(score float64, r RestDayReport) float64 {
	pct := 5.0

	if r.SleepQuality != nil {
		switch *r.SleepQuality {
		case store.SleepQualityGood:
			pct += 8
		case store.SleepQualityPoor:
			pct += 2
		}
	}

	switch {
	case r.SleepHours >= 8:
		pct += 5
	case r.SleepHours >= 7:
		pct += 3
	case r.SleepHours >= 6:
		pct += 1
	}

	switch {
	case r.SorenessLevel <= 2:
		pct += 5
	case r.SorenessLevel <= 4:
		pct += 3
	case r.SorenessLevel <= 6:
		pct += 1
	}

	fatigue := 10.0
	if r.FatigueLevel != nil {
		fatigue = *r.FatigueLevel
	}
	switch {
	case fatigue <= 3:
		pct += 4
	case fatigue <= 5:
		pct += 2
	case fatigue <= 7:
		pct += 1
	}

	if r.MobilityDone {
		pct += 3
	}

	pct = Clamp(5, 25, pct)
	return math.Max(0, score*(1-pct/100))
}
