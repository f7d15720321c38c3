package analysis

import (
	"math"

	"fightcamp/internal/store"
)

// Tier is an athlete's experience classification, used to pick default
// thresholds before enough personal data exists to override them.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierDeveloping   Tier = "developing"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Declared activity levels accepted from the athlete profile.
const (
	ActivityModerate = "moderately_active"
	ActivityVery     = "very_active"
	ActivityExtra    = "extra_active"
)

// Calibration is the set of personalized thresholds the scoring models
// consume. It is a pure function of its inputs and is never persisted.
type Calibration struct {
	Tier            Tier
	CautionRatio    float64 // load ratio above which balance degrades
	DangerRatio     float64 // load ratio treated as an acute spike
	RPECeiling      float64
	SessionsPerWeek float64
	StrainDivisor   float64
	FrequencyAlert  int // weekly session count that triggers the frequency factor
}

var tierDefaults = map[Tier]Calibration{
	TierBeginner:     {Tier: TierBeginner, CautionRatio: 1.1, DangerRatio: 1.3, RPECeiling: 6, SessionsPerWeek: 1, StrainDivisor: 700, FrequencyAlert: 3},
	TierDeveloping:   {Tier: TierDeveloping, CautionRatio: 1.2, DangerRatio: 1.4, RPECeiling: 7, SessionsPerWeek: 3, StrainDivisor: 900, FrequencyAlert: 4},
	TierIntermediate: {Tier: TierIntermediate, CautionRatio: 1.3, DangerRatio: 1.5, RPECeiling: 7, SessionsPerWeek: 4, StrainDivisor: 1100, FrequencyAlert: 6},
	TierAdvanced:     {Tier: TierAdvanced, CautionRatio: 1.4, DangerRatio: 1.6, RPECeiling: 8, SessionsPerWeek: 6, StrainDivisor: 1400, FrequencyAlert: 8},
}

// targetStrainForAverageSession is the strain the personalized divisor
// is solved to assign to the athlete's average session load.
const targetStrainForAverageSession = 8.5

// minTrainingDaysForOverride is the number of unique training days the
// window must contain before measured behavior overrides tier defaults.
const minTrainingDaysForOverride = 7

// DeriveCalibration maps a declared weekly session frequency and
// activity level to tier defaults, then overrides them with measured
// behavior once the 28-day window contains enough unique training days.
// A weeklyFrequency of 0 means "not declared".
func DeriveCalibration(weeklyFrequency int, activityLevel string, sessions []store.SessionRecord) Calibration {
	cal := tierDefaults[declaredTier(weeklyFrequency, activityLevel)]

	trainingDays := make(map[string]struct{})
	var rpes []float64
	var loads []float64
	for _, s := range sessions {
		if !IsTrainingSession(s) {
			continue
		}
		trainingDays[s.Date.Format("2006-01-02")] = struct{}{}
		rpes = append(rpes, s.RPE)
		loads = append(loads, SessionLoad(s))
	}

	if len(trainingDays) < minTrainingDaysForOverride {
		return cal
	}

	cal.RPECeiling = Clamp(4, 10, Mean(rpes)+1.5)
	cal.SessionsPerWeek = float64(len(trainingDays)) / 4 // 28-day window = 4 weeks
	cal.FrequencyAlert = int(math.Ceil(cal.SessionsPerWeek + 2))

	if divisor, ok := personalStrainDivisor(Mean(loads)); ok {
		cal.StrainDivisor = divisor
	}

	return cal
}

func declaredTier(weeklyFrequency int, activityLevel string) Tier {
	switch {
	case weeklyFrequency >= 6 || activityLevel == ActivityExtra:
		return TierAdvanced
	case weeklyFrequency >= 4 || activityLevel == ActivityVery:
		return TierIntermediate
	case weeklyFrequency >= 2 || activityLevel == ActivityModerate:
		return TierDeveloping
	default:
		return TierBeginner
	}
}

// personalStrainDivisor solves the strain curve so that the average
// session load maps to the target strain:
//
//	divisor = -avgLoad / ln(1 - target/21)
//
// A degenerate average load can push the intermediate result non-finite
// or non-positive; in that case the tier default stays in effect.
func personalStrainDivisor(avgLoad float64) (float64, bool) {
	divisor := -avgLoad / math.Log(1-targetStrainForAverageSession/MaxStrain)
	if math.IsNaN(divisor) || math.IsInf(divisor, 0) || divisor <= 0 {
		return 0, false
	}
	return Clamp(400, 2500, divisor), true
}
