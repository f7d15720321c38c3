package analysis

import (
	"math"
	"time"

	"fightcamp/internal/store"
)

// DefaultStrainDivisor is the strain curve divisor used when no
// calibrated divisor is available.
const DefaultStrainDivisor = 1000

// MaxStrain is the upper bound of the daily strain scale.
const MaxStrain = 21

// multiSessionMultiplier is the cumulative neuromuscular-fatigue penalty
// applied when more than one training session lands on the same day.
const multiSessionMultiplier = 1.1

// intensityMultipliers maps the 1-5 intensity level to a load multiplier.
var intensityMultipliers = map[int]float64{
	1: 0.8,
	2: 1.0,
	3: 1.15,
	4: 1.3,
	5: 1.5,
}

// intensityLevel resolves a session's 1-5 intensity level, falling back
// to the legacy text category for older rows.
func intensityLevel(s store.SessionRecord) int {
	if s.IntensityLevel != nil && *s.IntensityLevel >= 1 && *s.IntensityLevel <= 5 {
		return *s.IntensityLevel
	}
	switch s.Intensity {
	case "low":
		return 1
	case "high":
		return 5
	default:
		return 3
	}
}

// IsTrainingSession reports whether a session contributes load.
func IsTrainingSession(s store.SessionRecord) bool {
	return s.Type != store.SessionTypeRest && s.Type != store.SessionTypeRecovery
}

// SessionLoad returns rpe * minutes * intensity multiplier for a
// training session and 0 for Rest/Recovery sessions. Negative duration
// or RPE on a malformed row clamps to zero contribution rather than
// failing the window.
func SessionLoad(s store.SessionRecord) float64 {
	if !IsTrainingSession(s) {
		return 0
	}
	rpe := s.RPE
	if rpe < 0 {
		rpe = 0
	}
	minutes := float64(s.DurationMinutes)
	if minutes < 0 {
		minutes = 0
	}
	return rpe * minutes * intensityMultipliers[intensityLevel(s)]
}

// DayLoad sums session loads for one calendar day. Two or more training
// sessions on the same day are penalized with the multi-session
// multiplier.
func DayLoad(sessions []store.SessionRecord) float64 {
	var total float64
	training := 0
	for _, s := range sessions {
		if s.Type == store.SessionTypeRest {
			continue
		}
		training++
		total += SessionLoad(s)
	}
	if training > 1 {
		total *= multiSessionMultiplier
	}
	return total
}

// DayEntry is the derived daily load for one calendar day.
type DayEntry struct {
	Date     time.Time
	Load     float64
	Sessions []store.SessionRecord
}

// BuildDailyLoads groups sessions by calendar day into a 28-entry series
// ending at refDate (oldest first). Days with no sessions carry zero load.
func BuildDailyLoads(sessions []store.SessionRecord, refDate time.Time) []DayEntry {
	grouped := make(map[string][]store.SessionRecord)
	for _, s := range sessions {
		key := s.Date.Format("2006-01-02")
		grouped[key] = append(grouped[key], s)
	}

	days := make([]DayEntry, 0, 28)
	for i := 27; i >= 0; i-- {
		d := refDate.AddDate(0, 0, -i)
		daySessions := grouped[d.Format("2006-01-02")]
		days = append(days, DayEntry{
			Date:     d,
			Load:     DayLoad(daySessions),
			Sessions: daySessions,
		})
	}
	return days
}

// Strain maps a daily load onto the bounded 0-21 strain scale:
// 21 * (1 - e^(-load/divisor)). The curve is monotonic and concave, so
// equal load increments yield diminishing strain increments. A
// non-positive divisor falls back to DefaultStrainDivisor.
func Strain(load, divisor float64) float64 {
	if divisor <= 0 {
		divisor = DefaultStrainDivisor
	}
	strain := MaxStrain * (1 - math.Exp(-load/divisor))
	return Clamp(0, MaxStrain, strain)
}

// LoadMetrics holds the rolling load aggregates for a 28-day series.
type LoadMetrics struct {
	AcuteLoad   float64 // sum of the last 7 daily loads
	ChronicLoad float64 // 28-day average daily load
	LoadRatio   float64 // acute / (chronic + 1)
}

// ComputeLoadMetrics derives acute load, chronic load and their ratio
// from a daily-load series. The +1 in the denominator is the structural
// division-by-zero guard: an empty window yields ratio 0, not NaN.
func ComputeLoadMetrics(days []DayEntry) LoadMetrics {
	var acute, total float64
	for i, d := range days {
		total += d.Load
		if i >= len(days)-7 {
			acute += d.Load
		}
	}
	chronic := total / 28
	return LoadMetrics{
		AcuteLoad:   acute,
		ChronicLoad: chronic,
		LoadRatio:   acute / (chronic + 1),
	}
}
