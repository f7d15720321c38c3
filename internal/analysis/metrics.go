package analysis

import (
	"time"

	"fightcamp/internal/store"
)

// highStrainThreshold marks a day as high-strain for the consecutive
// day counter.
const highStrainThreshold = 15.0

// maxRecentSessions caps the session excerpt handed to downstream
// interpretation layers.
const maxRecentSessions = 15

// Inputs is everything a single metrics computation reads. Sessions
// should cover at most the trailing 28 days ending at RefDate; CheckIn,
// Baseline and PrevReadiness are optional and upgrade the readiness
// tier when present.
type Inputs struct {
	Sessions        []store.SessionRecord
	CheckIn         *store.WellnessCheckIn
	Baseline        *store.PersonalBaseline
	PrevReadiness   *float64
	WeeklyFrequency int
	ActivityLevel   string
	RefDate         time.Time
}

// StrainEntry is one day of the strain history chart series.
type StrainEntry struct {
	Date         time.Time `json:"date"`
	Strain       float64   `json:"strain"`
	DailyLoad    float64   `json:"dailyLoad"`
	SessionCount int       `json:"sessionCount"`
}

// Metrics is the complete daily bundle handed to presentation and
// advice layers. It is a plain value; recipients cannot write back
// through it.
type Metrics struct {
	Strain      float64 `json:"strain"`
	DailyLoad   float64 `json:"dailyLoad"`
	AcuteLoad   float64 `json:"acuteLoad"`
	ChronicLoad float64 `json:"chronicLoad"`
	LoadRatio   float64 `json:"loadRatio"`
	LoadZone    string  `json:"loadZone"`

	Overtraining OvertrainingRisk `json:"overtraining"`
	Readiness    Readiness        `json:"readiness"`
	Trends       Trends           `json:"trends"`
	Calibration  Calibration      `json:"calibration"`

	StrainHistory []StrainEntry  `json:"strainHistory"`
	Forecast      ForecastResult `json:"forecast"`

	AvgSleep       float64 `json:"avgSleep"`
	LatestSleep    float64 `json:"latestSleep"`
	LatestSoreness float64 `json:"latestSoreness"`
	AvgRPE7d       float64 `json:"avgRPE7d"`
	AvgSoreness7d  float64 `json:"avgSoreness7d"`
	SessionsLast7d int     `json:"sessionsLast7d"`

	ConsecutiveHighDays int `json:"consecutiveHighDays"`

	HooperIndex   *int     `json:"hooperIndex,omitempty"`
	HooperLabel   string   `json:"hooperLabel,omitempty"`
	WellnessScore *float64 `json:"wellnessScore,omitempty"`

	DeficitImpact *float64 `json:"deficitImpactScore,omitempty"`
	Stability     *float64 `json:"stabilityScore,omitempty"`

	BalanceMetrics []BalanceMetric       `json:"balanceMetrics,omitempty"`
	RecentSessions []store.SessionRecord `json:"recentSessions"`
}

// ComputeAllMetrics runs the full scoring pipeline for one athlete-day.
// It is pure: same inputs, same bundle, no I/O.
func ComputeAllMetrics(in Inputs) Metrics {
	cal := DeriveCalibration(in.WeeklyFrequency, in.ActivityLevel, in.Sessions)
	days := BuildDailyLoads(in.Sessions, in.RefDate)
	loads := ComputeLoadMetrics(days)

	today := days[len(days)-1]
	strain := Strain(today.Load, cal.StrainDivisor)

	trends := DetectTrendsWithBaseline(in.Sessions, days, in.Baseline)

	avgRPE := avgRPE7d(in.Sessions, in.RefDate)
	avgSoreness := avgSoreness7d(in.Sessions, in.RefDate)
	sessions7d := sessionsLast7d(in.Sessions, in.RefDate)
	consecutiveHigh := consecutiveHighDays(days, cal.StrainDivisor)

	risk := ComputeOvertraining(OvertrainingInputs{
		Metrics:         loads,
		Cal:             cal,
		AvgRPE7d:        avgRPE,
		AvgSoreness7d:   avgSoreness,
		ConsecutiveHigh: consecutiveHigh,
		SessionsLast7d:  sessions7d,
		Trends:          trends,
	})

	if rest := todayRestSession(in.Sessions, in.RefDate); rest != nil {
		risk.Score = ApplyRestDayRecoveryReport(risk.Score, RestDayReport{
			SorenessLevel: rest.SorenessLevel,
			SleepQuality:  rest.SleepQuality,
			SleepHours:    rest.SleepHours,
			FatigueLevel:  rest.FatigueLevel,
			MobilityDone:  rest.MobilityDone != nil && *rest.MobilityDone,
		})
		risk.Zone = RiskZoneFor(risk.Score)
	}

	readiness := ComputeReadiness(ReadinessInputs{
		Sessions:      in.Sessions,
		Days:          days,
		Metrics:       loads,
		Cal:           cal,
		CheckIn:       in.CheckIn,
		Baseline:      in.Baseline,
		PrevReadiness: in.PrevReadiness,
	})

	m := Metrics{
		Strain:              strain,
		DailyLoad:           today.Load,
		AcuteLoad:           loads.AcuteLoad,
		ChronicLoad:         loads.ChronicLoad,
		LoadRatio:           loads.LoadRatio,
		LoadZone:            LoadZoneFor(loads.LoadRatio, cal),
		Overtraining:        risk,
		Readiness:           readiness,
		Trends:              trends,
		Calibration:         cal,
		StrainHistory:       strainHistory(days, cal.StrainDivisor),
		Forecast:            ComputeForecast(days, cal, risk.Score),
		AvgSleep:            avgSleep(in.Sessions),
		LatestSleep:         latestSleep(in.Sessions, in.RefDate),
		LatestSoreness:      latestSoreness(in.Sessions, in.RefDate),
		AvgRPE7d:            avgRPE,
		AvgSoreness7d:       avgSoreness,
		SessionsLast7d:      sessions7d,
		ConsecutiveHighDays: consecutiveHigh,
		RecentSessions:      recentSessions(in.Sessions, in.RefDate),
	}

	if in.CheckIn != nil {
		idx := in.CheckIn.HooperIndex
		m.HooperIndex = &idx
		m.HooperLabel = HooperLabel(idx)
		wellness := hooperWellnessScore(in.CheckIn)
		if hasHooperBaseline(in.Baseline) {
			wellness = baselineWellnessScore(in.CheckIn, in.Baseline)
		}
		m.WellnessScore = &wellness
	}

	if in.Baseline != nil {
		if in.Baseline.AvgDeficit7d != nil {
			v := DeficitImpactScore(in.Baseline.AvgDeficit7d)
			m.DeficitImpact = &v
		}
		if in.Baseline.HooperCV14d != nil {
			v := StabilityScore(in.Baseline.HooperCV14d)
			m.Stability = &v
		}
		m.BalanceMetrics = ComputeBalanceMetrics(in.Baseline)
	}

	return m
}

func strainHistory(days []DayEntry, divisor float64) []StrainEntry {
	window := days
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	out := make([]StrainEntry, 0, len(window))
	for _, d := range window {
		out = append(out, StrainEntry{
			Date:         d.Date,
			Strain:       Strain(d.Load, divisor),
			DailyLoad:    d.Load,
			SessionCount: nonRestCount(d.Sessions),
		})
	}
	return out
}

func nonRestCount(sessions []store.SessionRecord) int {
	count := 0
	for _, s := range sessions {
		if s.Type != store.SessionTypeRest {
			count++
		}
	}
	return count
}

func consecutiveHighDays(days []DayEntry, divisor float64) int {
	count := 0
	for i := len(days) - 1; i >= 0; i-- {
		if Strain(days[i].Load, divisor) <= highStrainThreshold {
			break
		}
		count++
	}
	return count
}

func withinLastDays(date, ref time.Time, n int) bool {
	cutoff := ref.AddDate(0, 0, -(n - 1))
	return !date.Before(cutoff) && !date.After(ref)
}

// avgRPE7d averages reported exertion across all non-rest sessions in
// the window; unlike load, Recovery sessions keep their RPE here.
func avgRPE7d(sessions []store.SessionRecord, ref time.Time) float64 {
	var values []float64
	for _, s := range sessions {
		if s.Type != store.SessionTypeRest && withinLastDays(s.Date, ref, 7) {
			values = append(values, s.RPE)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return Mean(values)
}

func avgSoreness7d(sessions []store.SessionRecord, ref time.Time) float64 {
	var values []float64
	for _, s := range sessions {
		if s.SorenessLevel > 0 && withinLastDays(s.Date, ref, 7) {
			values = append(values, s.SorenessLevel)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return Mean(values)
}

func sessionsLast7d(sessions []store.SessionRecord, ref time.Time) int {
	count := 0
	for _, s := range sessions {
		if s.Type != store.SessionTypeRest && withinLastDays(s.Date, ref, 7) {
			count++
		}
	}
	return count
}

// latestSleep scans the last 3 days for a logged sleep value and
// assumes a neutral 8 hours when none exists.
func latestSleep(sessions []store.SessionRecord, ref time.Time) float64 {
	for back := 0; back < 3; back++ {
		day := ref.AddDate(0, 0, -back)
		for _, s := range sessions {
			if sameDay(s.Date, day) && s.SleepHours > 0 {
				return s.SleepHours
			}
		}
	}
	return 8
}

func latestSoreness(sessions []store.SessionRecord, ref time.Time) float64 {
	for back := 0; back < 3; back++ {
		day := ref.AddDate(0, 0, -back)
		for _, s := range sessions {
			if sameDay(s.Date, day) && s.SorenessLevel > 0 {
				return s.SorenessLevel
			}
		}
	}
	return 0
}

func avgSleep(sessions []store.SessionRecord) float64 {
	var values []float64
	for _, s := range sessions {
		if s.SleepHours > 0 {
			values = append(values, s.SleepHours)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return Mean(values)
}

func recentSessions(sessions []store.SessionRecord, ref time.Time) []store.SessionRecord {
	var out []store.SessionRecord
	for _, s := range sessions {
		if withinLastDays(s.Date, ref, 7) {
			out = append(out, s)
		}
	}
	if len(out) > maxRecentSessions {
		out = out[:maxRecentSessions]
	}
	return out
}

func todayRestSession(sessions []store.SessionRecord, ref time.Time) *store.SessionRecord {
	for i := range sessions {
		s := &sessions[i]
		if s.Type == store.SessionTypeRest && sameDay(s.Date, ref) {
			return s
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
