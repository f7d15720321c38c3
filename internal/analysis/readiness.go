package analysis

import (
	"math"

	"fightcamp/internal/store"
)

// Readiness labels, keyed off the final smoothed score.
const (
	ReadinessPeaked     = "peaked"
	ReadinessReady      = "ready"
	ReadinessRecovering = "recovering"
	ReadinessStrained   = "strained"
)

// Breakdown is the per-tier component detail behind a readiness score.
// Exactly one of the three concrete tiers is produced per computation,
// depending on how much athlete data was available that day.
type Breakdown interface {
	// ReadinessTier reports which scoring tier produced this breakdown
	// (1 = sessions only, 2 = with check-in, 3 = with baseline).
	ReadinessTier() int
}

// Tier1Breakdown is the session-only breakdown, used when no wellness
// check-in exists for the day.
type Tier1Breakdown struct {
	Sleep       float64 `json:"sleep"`
	Soreness    float64 `json:"soreness"`
	LoadBalance float64 `json:"loadBalance"`
	Recovery    float64 `json:"recovery"`
	Consistency float64 `json:"consistency"`
}

func (Tier1Breakdown) ReadinessTier() int { return 1 }

// Tier2Breakdown adds the Hooper wellness component when a check-in
// exists but no personal baseline does.
type Tier2Breakdown struct {
	Wellness    float64 `json:"wellness"`
	Sleep       float64 `json:"sleep"`
	Soreness    float64 `json:"soreness"`
	LoadBalance float64 `json:"loadBalance"`
	Recovery    float64 `json:"recovery"`
	Consistency float64 `json:"consistency"`
}

func (Tier2Breakdown) ReadinessTier() int { return 2 }

// Tier3Breakdown is the full baseline-relative breakdown.
type Tier3Breakdown struct {
	Wellness       float64 `json:"wellness"`
	PriorReadiness float64 `json:"priorReadiness"`
	LoadBalance    float64 `json:"loadBalance"`
	Sleep          float64 `json:"sleep"`
	Soreness       float64 `json:"soreness"`
	DeficitImpact  float64 `json:"deficitImpact"`
	Stability      float64 `json:"stability"`
	Hydration      float64 `json:"hydration"`
	Recovery       float64 `json:"recovery"`
}

func (Tier3Breakdown) ReadinessTier() int { return 3 }

// Readiness is a 0-100 daily readiness score with its component detail.
type Readiness struct {
	Score     int       `json:"score"`
	Label     string    `json:"label"`
	Breakdown Breakdown `json:"breakdown"`
}

// ReadinessInputs carries everything the scorer may use. CheckIn,
// Baseline and PrevReadiness are optional; their presence selects the
// scoring tier.
type ReadinessInputs struct {
	Sessions      []store.SessionRecord
	Days          []DayEntry
	Metrics       LoadMetrics
	Cal           Calibration
	CheckIn       *store.WellnessCheckIn
	Baseline      *store.PersonalBaseline
	PrevReadiness *float64
}

// ComputeReadiness scores today's readiness at the highest tier the
// inputs support and smooths it against the prior day's score.
func ComputeReadiness(in ReadinessInputs) Readiness {
	sleep := sleepScore(in.Sessions)
	soreness := sorenessScore(in.Sessions)
	loadBalance := loadBalanceScore(in.Metrics.LoadRatio, in.Cal)
	recovery := recoveryScore(in.Sessions, in.Days, in.Cal)
	consistency := consistencyScore(in.Days)

	var raw float64
	var breakdown Breakdown

	switch {
	case in.CheckIn != nil && hasHooperBaseline(in.Baseline):
		b := Tier3Breakdown{
			Wellness:       baselineWellnessScore(in.CheckIn, in.Baseline),
			PriorReadiness: priorOr50(in.PrevReadiness),
			LoadBalance:    loadBalance,
			Sleep:          sleep,
			Soreness:       soreness,
			DeficitImpact:  DeficitImpactScore(in.Baseline.AvgDeficit7d),
			Stability:      StabilityScore(in.Baseline.HooperCV14d),
			Hydration:      hydrationScore(in.CheckIn),
			Recovery:       recovery,
		}
		raw = 0.30*b.Wellness + 0.15*b.PriorReadiness + 0.15*b.LoadBalance +
			0.10*b.Sleep + 0.10*b.Soreness + 0.08*b.DeficitImpact +
			0.05*b.Stability + 0.04*b.Hydration + 0.03*b.Recovery
		breakdown = b
	case in.CheckIn != nil:
		b := Tier2Breakdown{
			Wellness:    hooperWellnessScore(in.CheckIn),
			Sleep:       sleep,
			Soreness:    soreness,
			LoadBalance: loadBalance,
			Recovery:    recovery,
			Consistency: consistency,
		}
		raw = 0.25*b.Wellness + 0.20*b.Sleep + 0.20*b.Soreness +
			0.15*b.LoadBalance + 0.10*b.Recovery + 0.10*b.Consistency
		breakdown = b
	default:
		b := Tier1Breakdown{
			Sleep:       sleep,
			Soreness:    soreness,
			LoadBalance: loadBalance,
			Recovery:    recovery,
			Consistency: consistency,
		}
		raw = 0.30*b.Sleep + 0.25*b.Soreness + 0.25*b.LoadBalance +
			0.10*b.Recovery + 0.10*b.Consistency
		breakdown = b
	}

	score := raw
	if breakdown.ReadinessTier() > 1 && in.PrevReadiness != nil {
		score = SmoothScore(raw, *in.PrevReadiness)
	}
	rounded := int(math.Round(Clamp(0, 100, score)))

	return Readiness{
		Score:     rounded,
		Label:     readinessLabel(rounded),
		Breakdown: breakdown,
	}
}

func readinessLabel(score int) string {
	switch {
	case score >= 80:
		return ReadinessPeaked
	case score >= 55:
		return ReadinessReady
	case score >= 35:
		return ReadinessRecovering
	default:
		return ReadinessStrained
	}
}

// minBaselineHistoryDays is the shortest check-in history that makes
// baseline-relative scoring meaningful.
const minBaselineHistoryDays = 14

func hasHooperBaseline(b *store.PersonalBaseline) bool {
	return b != nil && b.HistoryDays >= minBaselineHistoryDays &&
		b.HooperMean60d != nil && b.HooperStd60d != nil && *b.HooperStd60d >= epsilon
}

func priorOr50(prev *float64) float64 {
	if prev == nil {
		return 50
	}
	return Clamp(0, 100, *prev)
}

// sleepScore compares recency-weighted recent sleep against the athlete's
// own 28-day average. Sleeping at or above average scores well; a full
// 3 hours under it bottoms out.
func sleepScore(sessions []store.SessionRecord) float64 {
	nights := recentDailyValues(sessions, func(s store.SessionRecord) float64 { return s.SleepHours }, 3)
	if len(nights) == 0 {
		return 50
	}
	var all []float64
	for _, s := range sessions {
		if s.SleepHours > 0 {
			all = append(all, s.SleepHours)
		}
	}
	avg := 8.0
	if len(all) > 0 {
		avg = Mean(all)
	}
	recent := RecencyWeighted(nights)
	return MapRange(recent, avg-3, avg+1, 0, 100)
}

// sorenessScore maps recency-weighted recent soreness onto the score
// scale, most recent day dominating; no soreness data reads as mildly
// fresh rather than perfect.
func sorenessScore(sessions []store.SessionRecord) float64 {
	values := recentDailyValues(sessions, func(s store.SessionRecord) float64 { return s.SorenessLevel }, 3)
	if len(values) == 0 {
		return 80
	}
	return MapRange(RecencyWeighted(values), 0, 10, 100, 0)
}

// loadBalanceScore rewards an acute:chronic ratio inside the athlete's
// calibrated window and penalizes both detraining and spiking.
func loadBalanceScore(ratio float64, cal Calibration) float64 {
	switch {
	case ratio < 0.8:
		return 70
	case ratio <= cal.CautionRatio:
		return 100
	case ratio <= cal.DangerRatio+0.3:
		return MapRange(ratio, cal.CautionRatio, cal.DangerRatio+0.3, 100, 0)
	default:
		return 0
	}
}

// recoveryScore scores rest-day frequency over the last 7 days against
// the athlete's calibrated schedule, with small credits for deliberate
// recovery work.
func recoveryScore(sessions []store.SessionRecord, days []DayEntry, cal Calibration) float64 {
	if len(days) == 0 {
		return 50
	}
	window := days
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	restDays := 0
	for _, d := range window {
		if nonRestCount(d.Sessions) == 0 {
			restDays++
		}
	}
	optimal := 7 - cal.SessionsPerWeek
	if optimal < 1 {
		optimal = 1
	}
	score := MapRange(float64(restDays), 0, float64(optimal), 20, 100)

	cutoff := window[0].Date
	for _, s := range sessions {
		if s.Date.Before(cutoff) {
			continue
		}
		if s.Type != store.SessionTypeRest {
			continue
		}
		if s.SleepQuality != nil && *s.SleepQuality == store.SleepQualityGood {
			score += 5
		}
		if s.MobilityDone != nil && *s.MobilityDone {
			score += 5
		}
	}
	return Clamp(0, 100, score)
}

// consistencyScore rewards an even load distribution across the last
// week. High variation between training days reads as erratic.
func consistencyScore(days []DayEntry) float64 {
	window := days
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	var loads []float64
	for _, d := range window {
		if d.Load > 0 {
			loads = append(loads, d.Load)
		}
	}
	if len(loads) < 2 {
		return 50
	}
	cv := CoefVariation(loads)
	return MapRange(cv, 0.15, 0.8, 100, 20)
}

// hooperWellnessScore maps the raw Hooper index (4..28, higher better)
// onto the score scale.
func hooperWellnessScore(c *store.WellnessCheckIn) float64 {
	return MapRange(float64(c.HooperIndex), 4, 28, 0, 100)
}

// baselineWellnessScore scores today's Hooper index relative to the
// athlete's own 60-day distribution: two standard deviations above
// baseline is peak wellness, two below is depleted.
func baselineWellnessScore(c *store.WellnessCheckIn, b *store.PersonalBaseline) float64 {
	z := ZScore(float64(c.HooperIndex), *b.HooperMean60d, *b.HooperStd60d)
	return MapRange(z, -2, 2, 0, 100)
}

// DeficitImpactScore converts a 7-day average caloric deficit into a
// recovery-impact score. Unknown intake is assumed neutral.
func DeficitImpactScore(avgDeficit *float64) float64 {
	if avgDeficit == nil {
		return 100
	}
	deficit := math.Abs(*avgDeficit)
	switch {
	case deficit <= 200:
		return 100
	case deficit >= 1200:
		return 10
	default:
		return MapRange(deficit, 200, 1200, 100, 10)
	}
}

// StabilityScore converts the 14-day Hooper coefficient of variation
// into a score; steadier wellness scores higher.
func StabilityScore(cv *float64) float64 {
	if cv == nil {
		return 50
	}
	return MapRange(*cv, 0.08, 0.35, 100, 20)
}

func hydrationScore(c *store.WellnessCheckIn) float64 {
	if c.Hydration == nil {
		return 50
	}
	return MapRange(float64(*c.Hydration), 1, 5, 20, 100)
}
