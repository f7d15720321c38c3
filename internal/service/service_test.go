package service

import (
	"testing"
	"time"

	"fightcamp/internal/store"
)

func testService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, Profile{WeeklyFrequency: 4, ActivityLevel: "very_active"}), st
}

func serviceDay(offset int) time.Time {
	return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func intPtr(v int) *int { return &v }

func TestNewDefaults(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(st, Profile{})
	if s.weeklyFrequency != DefaultWeeklyFrequency {
		t.Errorf("weeklyFrequency = %v, want %v", s.weeklyFrequency, DefaultWeeklyFrequency)
	}
	if s.activityLevel != DefaultActivityLevel {
		t.Errorf("activityLevel = %q, want %q", s.activityLevel, DefaultActivityLevel)
	}
}

func TestLogSessionAndDailyMetrics(t *testing.T) {
	s, _ := testService(t)

	level := 4
	for i := 0; i < 5; i++ {
		if _, err := s.LogSession(&store.SessionRecord{
			AthleteID:       "alice",
			Date:            serviceDay(-i),
			Type:            "Sparring",
			DurationMinutes: 60,
			RPE:             7,
			IntensityLevel:  &level,
		}); err != nil {
			t.Fatalf("LogSession: %v", err)
		}
	}

	m, err := s.DailyMetrics("alice", serviceDay(0))
	if err != nil {
		t.Fatalf("DailyMetrics: %v", err)
	}

	// 7 * 60 * 1.3 = 546 for today's single session
	if m.DailyLoad != 546 {
		t.Errorf("DailyLoad = %v, want 546", m.DailyLoad)
	}
	if m.Strain <= 0 {
		t.Errorf("Strain = %v, want positive", m.Strain)
	}
	if m.AcuteLoad <= m.ChronicLoad {
		t.Errorf("front-loaded week should have acute %v > chronic %v", m.AcuteLoad, m.ChronicLoad)
	}
	if len(m.StrainHistory) != 7 {
		t.Errorf("StrainHistory has %d entries, want 7", len(m.StrainHistory))
	}
	if m.SessionsLast7d != 5 {
		t.Errorf("SessionsLast7d = %v, want 5", m.SessionsLast7d)
	}

	// No check-in: Hooper fields absent, readiness stays tier 1
	if m.HooperIndex != nil {
		t.Errorf("HooperIndex = %v, want nil without a check-in", *m.HooperIndex)
	}
	if m.Readiness.Breakdown.ReadinessTier() != 1 {
		t.Errorf("readiness tier = %d, want 1", m.Readiness.Breakdown.ReadinessTier())
	}
}

func TestSubmitCheckInDerivesHooper(t *testing.T) {
	s, st := testService(t)

	c := &store.WellnessCheckIn{
		AthleteID:     "alice",
		Date:          serviceDay(0),
		SleepQuality:  6,
		StressLevel:   2,
		FatigueLevel:  3,
		SorenessLevel: 2,
	}
	if err := s.SubmitCheckIn(c); err != nil {
		t.Fatalf("SubmitCheckIn: %v", err)
	}

	// 6 + (8-2) + (8-3) + (8-2) = 23
	stored, err := st.CheckInOn("alice", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil {
		t.Fatal("check-in was not stored")
	}
	if stored.HooperIndex != 23 {
		t.Errorf("HooperIndex = %v, want 23", stored.HooperIndex)
	}
}

func TestDailyMetricsWithCheckIn(t *testing.T) {
	s, _ := testService(t)

	level := 3
	if _, err := s.LogSession(&store.SessionRecord{
		AthleteID:       "alice",
		Date:            serviceDay(0),
		Type:            "Bag Work",
		DurationMinutes: 45,
		RPE:             6,
		IntensityLevel:  &level,
	}); err != nil {
		t.Fatal(err)
	}

	sleepHours := 7.5
	if err := s.SubmitCheckIn(&store.WellnessCheckIn{
		AthleteID:     "alice",
		Date:          serviceDay(0),
		SleepQuality:  5,
		StressLevel:   3,
		FatigueLevel:  3,
		SorenessLevel: 3,
		SleepHours:    &sleepHours,
		Hydration:     intPtr(4),
	}); err != nil {
		t.Fatal(err)
	}

	m, err := s.DailyMetrics("alice", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}

	if m.HooperIndex == nil || *m.HooperIndex != 20 {
		t.Errorf("HooperIndex = %v, want 20", m.HooperIndex)
	}
	if m.HooperLabel != "Good" {
		t.Errorf("HooperLabel = %q, want %q", m.HooperLabel, "Good")
	}
	// A single check-in gives no baseline, so the check-in alone
	// reaches tier 2
	if m.Readiness.Breakdown.ReadinessTier() != 2 {
		t.Errorf("readiness tier = %d, want 2", m.Readiness.Breakdown.ReadinessTier())
	}
}

func TestDailyMetricsWritesBackReadiness(t *testing.T) {
	s, st := testService(t)

	if err := s.SubmitCheckIn(&store.WellnessCheckIn{
		AthleteID:     "alice",
		Date:          serviceDay(0),
		SleepQuality:  5,
		StressLevel:   3,
		FatigueLevel:  3,
		SorenessLevel: 3,
	}); err != nil {
		t.Fatal(err)
	}

	m, err := s.DailyMetrics("alice", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}

	stored, err := st.CheckInOn("alice", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}
	if stored.ReadinessScore == nil {
		t.Fatal("readiness score was not written back to the check-in")
	}
	if *stored.ReadinessScore != float64(m.Readiness.Score) {
		t.Errorf("persisted readiness = %v, want %v", *stored.ReadinessScore, m.Readiness.Score)
	}
}

func TestDailyMetricsSmoothsAgainstPreviousDay(t *testing.T) {
	s, st := testService(t)

	// Yesterday's check-in carries a low persisted score
	prev := 20.0
	if err := st.UpsertCheckIn(&store.WellnessCheckIn{
		AthleteID:      "alice",
		Date:           serviceDay(-1),
		SleepQuality:   3,
		StressLevel:    5,
		FatigueLevel:   5,
		SorenessLevel:  5,
		HooperIndex:    12,
		ReadinessScore: &prev,
	}); err != nil {
		t.Fatal(err)
	}

	// Today looks great
	if err := s.SubmitCheckIn(&store.WellnessCheckIn{
		AthleteID:     "alice",
		Date:          serviceDay(0),
		SleepQuality:  7,
		StressLevel:   1,
		FatigueLevel:  1,
		SorenessLevel: 1,
	}); err != nil {
		t.Fatal(err)
	}

	withPrev, err := s.DailyMetrics("alice", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}

	// Same day for an athlete with no history to smooth against
	if err := s.SubmitCheckIn(&store.WellnessCheckIn{
		AthleteID:     "bruno",
		Date:          serviceDay(0),
		SleepQuality:  7,
		StressLevel:   1,
		FatigueLevel:  1,
		SorenessLevel: 1,
	}); err != nil {
		t.Fatal(err)
	}
	fresh, err := s.DailyMetrics("bruno", serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}

	if withPrev.Readiness.Score >= fresh.Readiness.Score {
		t.Errorf("smoothed score %d should sit below unsmoothed %d after a low previous day",
			withPrev.Readiness.Score, fresh.Readiness.Score)
	}
}

func TestLogNutrition(t *testing.T) {
	s, st := testService(t)

	if err := s.LogNutrition("alice", serviceDay(0), 900); err != nil {
		t.Fatalf("LogNutrition: %v", err)
	}
	if err := s.LogNutrition("alice", serviceDay(0), 600); err != nil {
		t.Fatal(err)
	}

	totals, err := st.NutritionTotalsBetween("alice", serviceDay(0), serviceDay(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("got %d totals, want 1", len(totals))
	}
	if totals[0].Calories != 1500 {
		t.Errorf("day total = %v, want 1500", totals[0].Calories)
	}
}

func TestRecomputeBaseline(t *testing.T) {
	s, _ := testService(t)

	for i := 0; i < 4; i++ {
		if err := s.SubmitCheckIn(&store.WellnessCheckIn{
			AthleteID:     "alice",
			Date:          serviceDay(-i),
			SleepQuality:  5,
			StressLevel:   3,
			FatigueLevel:  3,
			SorenessLevel: 3,
		}); err != nil {
			t.Fatal(err)
		}
	}

	b, err := s.RecomputeBaseline("alice", serviceDay(0))
	if err != nil {
		t.Fatalf("RecomputeBaseline: %v", err)
	}
	if b == nil {
		t.Fatal("expected a baseline from 4 check-ins")
	}
	if b.HooperMean14d == nil || *b.HooperMean14d != 20 {
		t.Errorf("HooperMean14d = %v, want 20", b.HooperMean14d)
	}
}
