package analysis

import (
	"math"
	"sort"

	"fightcamp/internal/store"
)

// Thresholds for the baseline-enhanced trend detectors. These values
// come from the engine's field tuning; they are exported so callers can
// reference them, but the detectors always use these defaults.
const (
	// WellnessDecliningZ flags the 14d-vs-60d Hooper z-score below
	// which wellness is considered declining.
	WellnessDecliningZ = -1.0
	// StabilityWorseningCV flags a 14-day Hooper coefficient of
	// variation above which day-to-day wellness is considered unstable.
	StabilityWorseningCV = 0.25
	// DeficitAlertKcal flags a 7-day average caloric deficit beyond
	// which recovery is considered impaired.
	DeficitAlertKcal = 500.0
)

// rpeCreepDelta is the minimum RPE rise between the last 3 sessions and
// the 3 before that to count as creeping effort.
const rpeCreepDelta = 1.5

// Trends holds the directional pattern flags for the recent window.
// Flags are independent and may co-occur; each active flag contributes
// one human-readable alert.
type Trends struct {
	SorenessRising bool
	SleepDeclining bool
	LoadEscalating bool
	RPECreeping    bool

	// Baseline-enhanced flags, only ever set when a personal baseline
	// was available.
	WellnessDeclining  bool
	StabilityWorsening bool
	DeficitImpacting   bool

	Alerts []string
}

// DetectTrends scans the session history and daily-load series for
// directional patterns.
func DetectTrends(sessions []store.SessionRecord, days []DayEntry) Trends {
	var t Trends

	if soreness := recentDailyValues(sessions, func(s store.SessionRecord) float64 { return s.SorenessLevel }, 4); len(soreness) >= 3 {
		if soreness[0] > soreness[1] && soreness[1] > soreness[2] {
			t.SorenessRising = true
			t.Alerts = append(t.Alerts, "Soreness has been rising for 3 straight days")
		}
	}

	if sleep := recentDailyValues(sessions, func(s store.SessionRecord) float64 { return s.SleepHours }, 4); len(sleep) >= 4 {
		if sleep[0] < sleep[1] && sleep[1] < sleep[2] && sleep[2] < sleep[3] {
			t.SleepDeclining = true
			t.Alerts = append(t.Alerts, "Sleep has been declining over the last 4 nights")
		}
	}

	if n := len(days); n >= 3 {
		a, b, c := days[n-3].Load, days[n-2].Load, days[n-1].Load
		if a > 0 && b > 0 && c > 0 && a < b && b < c {
			t.LoadEscalating = true
			t.Alerts = append(t.Alerts, "Training load is escalating day over day")
		}
	}

	if recent, prior, ok := splitRecentRPE(sessions); ok {
		if Mean(recent)-Mean(prior) >= rpeCreepDelta {
			t.RPECreeping = true
			t.Alerts = append(t.Alerts, "Session effort (RPE) is creeping upward")
		}
	}

	return t
}

// DetectTrendsWithBaseline runs the base detectors and adds the
// multi-timescale wellness checks that need a personal baseline. A nil
// baseline degrades to the base detectors.
func DetectTrendsWithBaseline(sessions []store.SessionRecord, days []DayEntry, b *store.PersonalBaseline) Trends {
	t := DetectTrends(sessions, days)
	if b == nil {
		return t
	}

	if b.HooperMean14d != nil && b.HooperMean60d != nil && b.HooperStd60d != nil {
		if ZScore(*b.HooperMean14d, *b.HooperMean60d, *b.HooperStd60d) < WellnessDecliningZ {
			t.WellnessDeclining = true
			t.Alerts = append(t.Alerts, "Wellness is trending below your 60-day baseline")
		}
	}

	if b.HooperCV14d != nil && *b.HooperCV14d > StabilityWorseningCV {
		t.StabilityWorsening = true
		t.Alerts = append(t.Alerts, "Day-to-day wellness is becoming less stable")
	}

	if b.AvgDeficit7d != nil && math.Abs(*b.AvgDeficit7d) > DeficitAlertKcal {
		t.DeficitImpacting = true
		t.Alerts = append(t.Alerts, "Sustained caloric deficit may be impairing recovery")
	}

	return t
}

// recentDailyValues collects one positive metric value per calendar day,
// most recent day first, up to limit days with data.
func recentDailyValues(sessions []store.SessionRecord, metric func(store.SessionRecord) float64, limit int) []float64 {
	byDay := make(map[string]float64)
	var keys []string
	for _, s := range sessions {
		v := metric(s)
		if v <= 0 {
			continue
		}
		key := s.Date.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			byDay[key] = v
			keys = append(keys, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	if len(keys) > limit {
		keys = keys[:limit]
	}
	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		values = append(values, byDay[k])
	}
	return values
}

// splitRecentRPE returns the RPE of the 3 most recent training sessions
// and of the 3 before those. Requires at least 6 training sessions.
func splitRecentRPE(sessions []store.SessionRecord) (recent, prior []float64, ok bool) {
	var training []store.SessionRecord
	for _, s := range sessions {
		if IsTrainingSession(s) {
			training = append(training, s)
		}
	}
	if len(training) < 6 {
		return nil, nil, false
	}
	sort.SliceStable(training, func(i, j int) bool {
		if !training[i].Date.Equal(training[j].Date) {
			return training[i].Date.After(training[j].Date)
		}
		return training[i].CreatedAt.After(training[j].CreatedAt)
	})
	for i := 0; i < 3; i++ {
		recent = append(recent, training[i].RPE)
		prior = append(prior, training[i+3].RPE)
	}
	return recent, prior, true
}
