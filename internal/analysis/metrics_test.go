package analysis

import (
	"testing"

	"fightcamp/internal/store"
)

func metricsInputs(sessions []store.SessionRecord) Inputs {
	return Inputs{
		Sessions:        sessions,
		WeeklyFrequency: 3,
		RefDate:         day(27),
	}
}

func TestComputeAllMetrics_EmptyHistory(t *testing.T) {
	m := ComputeAllMetrics(metricsInputs(nil))

	if m.Strain != 0 || m.DailyLoad != 0 {
		t.Errorf("strain/load = %v/%v, want zeros", m.Strain, m.DailyLoad)
	}
	if m.AcuteLoad != 0 || m.ChronicLoad != 0 || m.LoadRatio != 0 {
		t.Errorf("loads = %v/%v/%v, want zeros", m.AcuteLoad, m.ChronicLoad, m.LoadRatio)
	}
	if m.Overtraining.Zone != RiskLow {
		t.Errorf("zone = %q, want low", m.Overtraining.Zone)
	}
	if len(m.StrainHistory) != 7 {
		t.Fatalf("strain history length = %d, want 7", len(m.StrainHistory))
	}
	for i, e := range m.StrainHistory {
		if e.Strain != 0 || e.DailyLoad != 0 || e.SessionCount != 0 {
			t.Errorf("history entry %d not zero: %+v", i, e)
		}
	}
	if m.LatestSleep != 8 {
		t.Errorf("LatestSleep = %v, want default 8", m.LatestSleep)
	}
	if m.HooperIndex != nil || m.WellnessScore != nil {
		t.Error("Hooper fields must be absent without a check-in")
	}
}

func TestComputeAllMetrics_ConsecutiveHighDays(t *testing.T) {
	// 3 maximal days in a row: RPE 10, 120 min, level 5
	var sessions []store.SessionRecord
	for i := 25; i < 28; i++ {
		sessions = append(sessions, makeSession(day(i), "Sparring", 120, 10, 5))
	}

	m := ComputeAllMetrics(metricsInputs(sessions))
	if m.ConsecutiveHighDays < 3 {
		t.Errorf("ConsecutiveHighDays = %d, want >= 3", m.ConsecutiveHighDays)
	}
}

func highRiskWeek() []store.SessionRecord {
	var sessions []store.SessionRecord
	for i := 21; i < 28; i++ {
		morning := makeSession(day(i), "Sparring", 90, 9, 5)
		morning.SorenessLevel = 8
		evening := makeSession(day(i), "Strength", 60, 9, 4)
		evening.SorenessLevel = 8
		sessions = append(sessions, morning, evening)
	}
	return sessions
}

func TestComputeAllMetrics_OvertrainingWeek(t *testing.T) {
	m := ComputeAllMetrics(metricsInputs(highRiskWeek()))

	if m.Overtraining.Score <= 50 {
		t.Errorf("overtraining score = %v, want > 50", m.Overtraining.Score)
	}
	if m.Overtraining.Zone != RiskHigh && m.Overtraining.Zone != RiskCritical {
		t.Errorf("zone = %q, want high or critical", m.Overtraining.Zone)
	}
	if m.LoadRatio <= 1 {
		t.Errorf("load ratio = %v, want > 1 for a front-loaded week", m.LoadRatio)
	}
	if m.SessionsLast7d != 14 {
		t.Errorf("SessionsLast7d = %d, want 14", m.SessionsLast7d)
	}
}

func TestComputeAllMetrics_RestDayRecovery(t *testing.T) {
	base := ComputeAllMetrics(metricsInputs(highRiskWeek()))

	rested := highRiskWeek()
	rest := store.SessionRecord{
		Date:          day(27),
		Type:          store.SessionTypeRest,
		SorenessLevel: 2,
		SleepHours:    9,
		SleepQuality:  strPtr(store.SleepQualityGood),
		FatigueLevel:  floatPtr(2),
		MobilityDone:  boolPtr(true),
	}
	restedMetrics := ComputeAllMetrics(metricsInputs(append(rested, rest)))

	if restedMetrics.Overtraining.Score >= base.Overtraining.Score {
		t.Errorf("rest day should reduce the score: %v -> %v",
			base.Overtraining.Score, restedMetrics.Overtraining.Score)
	}
}

func TestComputeAllMetrics_CheckInFields(t *testing.T) {
	in := metricsInputs(nil)
	in.CheckIn = &store.WellnessCheckIn{
		SleepQuality:  6,
		StressLevel:   2,
		FatigueLevel:  2,
		SorenessLevel: 2,
		HooperIndex:   24,
	}

	m := ComputeAllMetrics(in)

	if m.HooperIndex == nil || *m.HooperIndex != 24 {
		t.Fatalf("HooperIndex = %v, want 24", m.HooperIndex)
	}
	if m.HooperLabel != "Great" {
		t.Errorf("HooperLabel = %q, want Great", m.HooperLabel)
	}
	if m.WellnessScore == nil {
		t.Fatal("expected a wellness score with a check-in")
	}
	if m.Readiness.Breakdown.ReadinessTier() != 2 {
		t.Errorf("tier = %d, want 2", m.Readiness.Breakdown.ReadinessTier())
	}
}

func TestComputeAllMetrics_BaselineFields(t *testing.T) {
	in := metricsInputs(nil)
	in.Baseline = fullBaseline()
	in.Baseline.HooperCV14d = floatPtr(0.1)
	in.Baseline.AvgDeficit7d = floatPtr(300)

	m := ComputeAllMetrics(in)

	if m.DeficitImpact == nil {
		t.Fatal("expected a deficit impact score")
	}
	if m.Stability == nil {
		t.Fatal("expected a stability score")
	}
	if len(m.BalanceMetrics) == 0 {
		t.Error("expected balance metrics from a full baseline")
	}
}

func TestAvgRPE7d(t *testing.T) {
	sessions := []store.SessionRecord{
		makeSession(day(27), "Sparring", 60, 8, 3),
		makeSession(day(27), "Recovery", 30, 2, 0),
		makeSession(day(26), "Rest", 0, 9, 0),
	}

	// Recovery effort counts even though it carries no load; Rest never does.
	if got := avgRPE7d(sessions, day(27)); got != 5 {
		t.Errorf("avgRPE7d = %v, want 5", got)
	}
}

func TestComputeAllMetrics_RecentSessionsCap(t *testing.T) {
	var sessions []store.SessionRecord
	for i := 0; i < 28; i++ {
		for j := 0; j < 3; j++ {
			sessions = append(sessions, makeSession(day(27), "Drill", 20, 3, 2))
		}
	}

	m := ComputeAllMetrics(metricsInputs(sessions))
	if len(m.RecentSessions) > 15 {
		t.Errorf("recent sessions = %d, want capped at 15", len(m.RecentSessions))
	}
}
