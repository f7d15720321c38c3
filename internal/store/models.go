package store

import "time"

// Session types that carry zero training load. Any other type is a
// training session.
const (
	SessionTypeRest     = "Rest"
	SessionTypeRecovery = "Recovery"
)

// Sleep quality categories reported on rest days.
const (
	SleepQualityGood = "good"
	SleepQualityPoor = "poor"
)

// SessionRecord is one logged training (or rest) session. Rows are owned
// by the caller's storage and never mutated by the scoring engine.
type SessionRecord struct {
	ID              int64
	AthleteID       string
	Date            time.Time // calendar day
	Type            string    // free-text category; "Rest"/"Recovery" carry zero load
	DurationMinutes int
	RPE             float64 // 0-10 perceived exertion
	Intensity       string  // legacy "low"/"moderate"/"high"
	IntensityLevel  *int    // 1-5, preferred over Intensity when set
	SorenessLevel   float64 // 0-10
	SleepHours      float64
	CreatedAt       time.Time

	// Rest-day detail, present only on rest sessions
	FatigueLevel *float64
	SleepQuality *string
	MobilityDone *bool
}

// WellnessCheckIn is one subjective self-report per day. The four core
// ratings are on a 1-7 scale; HooperIndex is derived from them at
// creation time.
type WellnessCheckIn struct {
	AthleteID     string
	Date          time.Time
	SleepQuality  int // 1-7, higher is better
	StressLevel   int // 1-7, higher is worse
	FatigueLevel  int // 1-7, higher is worse
	SorenessLevel int // 1-7, higher is worse
	HooperIndex   int // 4-28, higher is better

	SleepHours  *float64
	EnergyLevel *int
	Motivation  *int
	Hydration   *int // 1-5 hydration feeling
	Appetite    *int

	// ReadinessScore is written back after scoring so the next day's
	// call can smooth against it.
	ReadinessScore *float64
}

// NutritionDay is the summed caloric intake logged for one day.
type NutritionDay struct {
	AthleteID string
	Date      time.Time
	Calories  float64
}

// PersonalBaseline holds the rolling 14-day / 60-day statistics for one
// athlete on one computation date. A nil field means insufficient
// history: callers must treat it as "no baseline", never as zero.
type PersonalBaseline struct {
	AthleteID string
	Date      time.Time

	// HistoryDays is the span in days from the oldest check-in in the
	// computation window to the baseline date, inclusive. Short spans
	// keep readiness scoring on the check-in-relative tier.
	HistoryDays int

	SleepHoursMean14d *float64
	SleepHoursStd14d  *float64
	SorenessMean14d   *float64
	SorenessStd14d    *float64
	FatigueMean14d    *float64
	FatigueStd14d     *float64
	StressMean14d     *float64
	StressStd14d      *float64
	HooperMean14d     *float64
	HooperStd14d      *float64
	DailyLoadMean14d  *float64
	DailyLoadStd14d   *float64

	SleepHoursMean60d *float64
	SleepHoursStd60d  *float64
	SorenessMean60d   *float64
	SorenessStd60d    *float64
	FatigueMean60d    *float64
	FatigueStd60d     *float64
	StressMean60d     *float64
	StressStd60d      *float64
	HooperMean60d     *float64
	HooperStd60d      *float64
	DailyLoadMean60d  *float64
	DailyLoadStd60d   *float64

	HooperCV14d *float64

	AvgDeficit7d  *float64
	AvgDeficit14d *float64
}
