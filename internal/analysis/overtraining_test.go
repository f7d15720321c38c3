package analysis

import (
	"math"
	"testing"
)

func overtrainingInputs() OvertrainingInputs {
	return OvertrainingInputs{
		Cal: DeriveCalibration(3, "", nil), // developing: caution 1.2, danger 1.4, ceiling 7, alert 4
	}
}

func TestComputeOvertraining_Quiet(t *testing.T) {
	risk := ComputeOvertraining(overtrainingInputs())

	if risk.Score != 0 {
		t.Errorf("score = %v, want 0", risk.Score)
	}
	if risk.Zone != RiskLow {
		t.Errorf("zone = %q, want low", risk.Zone)
	}
	if len(risk.Factors) != 0 {
		t.Errorf("expected no factors, got %v", risk.Factors)
	}
}

func TestComputeOvertraining_DangerRatio(t *testing.T) {
	in := overtrainingInputs()
	in.Metrics.LoadRatio = 1.5 // above danger 1.4

	risk := ComputeOvertraining(in)
	if risk.Score != 40 {
		t.Errorf("score = %v, want 40", risk.Score)
	}
	if risk.Zone != RiskModerate {
		t.Errorf("zone = %q, want moderate", risk.Zone)
	}
	if len(risk.Factors) != 1 {
		t.Errorf("expected 1 factor, got %v", risk.Factors)
	}
}

func TestComputeOvertraining_CautionRatioProportional(t *testing.T) {
	in := overtrainingInputs()
	in.Metrics.LoadRatio = 1.3 // midway between 1.2 and 1.4

	risk := ComputeOvertraining(in)
	if math.Abs(risk.Score-27.5) > 1e-9 {
		t.Errorf("score = %v, want 27.5", risk.Score)
	}
}

func TestComputeOvertraining_RPEOverCeiling(t *testing.T) {
	in := overtrainingInputs()
	in.AvgRPE7d = 8.5 // ceiling 7 -> round(1.5 * 10) = 15

	risk := ComputeOvertraining(in)
	if risk.Score != 15 {
		t.Errorf("score = %v, want 15", risk.Score)
	}

	// Far past the ceiling the contribution caps at 25
	in.AvgRPE7d = 15
	risk = ComputeOvertraining(in)
	if risk.Score != 25 {
		t.Errorf("capped score = %v, want 25", risk.Score)
	}
}

func TestComputeOvertraining_Accumulation(t *testing.T) {
	// A brutal week: spiking ratio, high effort, constant soreness,
	// no recovery days, too many sessions.
	in := overtrainingInputs()
	in.Metrics.LoadRatio = 1.6 // +40
	in.AvgRPE7d = 9           // +20
	in.AvgSoreness7d = 8      // +17.5
	in.ConsecutiveHigh = 4    // +20
	in.SessionsLast7d = 8     // +15

	risk := ComputeOvertraining(in)
	if risk.Score != 100 {
		t.Errorf("score = %v, want clamped 100", risk.Score)
	}
	if risk.Zone != RiskCritical {
		t.Errorf("zone = %q, want critical", risk.Zone)
	}
	if len(risk.Factors) != 5 {
		t.Errorf("expected 5 factors, got %d: %v", len(risk.Factors), risk.Factors)
	}
}

func TestComputeOvertraining_TrendFlags(t *testing.T) {
	in := overtrainingInputs()
	in.Trends = Trends{SorenessRising: true, SleepDeclining: true, LoadEscalating: true}

	risk := ComputeOvertraining(in)
	if risk.Score != 26 { // 10 + 8 + 8
		t.Errorf("score = %v, want 26", risk.Score)
	}
}

func TestRiskZoneFor(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0, RiskLow},
		{30, RiskLow},
		{31, RiskModerate},
		{60, RiskModerate},
		{61, RiskHigh},
		{80, RiskHigh},
		{81, RiskCritical},
		{100, RiskCritical},
	}

	for _, tt := range tests {
		if got := RiskZoneFor(tt.score); got != tt.expected {
			t.Errorf("RiskZoneFor(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestApplyRestDayRecovery(t *testing.T) {
	// Good conditions: 15% reduction
	if got := ApplyRestDayRecovery(60, 3, "good"); math.Abs(got-51) > 1e-9 {
		t.Errorf("good conditions = %v, want 51", got)
	}
	// Poor conditions: 5% reduction
	if got := ApplyRestDayRecovery(60, 7, "poor"); math.Abs(got-57) > 1e-9 {
		t.Errorf("poor conditions = %v, want 57", got)
	}
	// High soreness voids the full discount even with good sleep
	if got := ApplyRestDayRecovery(60, 6, "good"); math.Abs(got-57) > 1e-9 {
		t.Errorf("sore but slept well = %v, want 57", got)
	}
	if got := ApplyRestDayRecovery(1, 1, "good"); got < 0 {
		t.Errorf("result went negative: %v", got)
	}
}

func TestApplyRestDayRecoveryReport(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		report   RestDayReport
		expected float64
	}{
		{
			// quality +8, 9h +5, soreness 1 +5, fatigue 2 +4, mobility +3
			// = 25 on base 5 -> capped at 25% -> 75
			name:  "ideal rest day caps at 25%",
			score: 100,
			report: RestDayReport{
				SorenessLevel: 1,
				SleepQuality:  strPtr("good"),
				SleepHours:    9,
				FatigueLevel:  floatPtr(2),
				MobilityDone:  true,
			},
			expected: 75,
		},
		{
			// no credits, base 5% only
			name:  "wasted rest day",
			score: 100,
			report: RestDayReport{
				SorenessLevel: 9,
				SleepHours:    5,
				FatigueLevel:  floatPtr(9),
			},
			expected: 95,
		},
		{
			// quality +8, 7h +3, soreness 4 +3, fatigue 5 +2 = base 5 + 16 = 21%
			name:  "mixed rest day",
			score: 80,
			report: RestDayReport{
				SorenessLevel: 4,
				SleepQuality:  strPtr("good"),
				SleepHours:    7,
				FatigueLevel:  floatPtr(5),
			},
			expected: 80 * 0.79,
		},
		{
			// nil fatigue reads as exhausted: no fatigue credit
			// quality +8, 8h +5, soreness 3 +3 = base 5 + 16 = 21%
			name:  "missing optional fields",
			score: 80,
			report: RestDayReport{
				SorenessLevel: 3,
				SleepQuality:  strPtr("good"),
				SleepHours:    8,
			},
			expected: 80 * 0.79,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRestDayRecoveryReport(tt.score, tt.report)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ApplyRestDayRecoveryReport = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestApplyRestDayRecoveryReport_SleepGradation(t *testing.T) {
	report := func(hours float64) RestDayReport {
		return RestDayReport{SorenessLevel: 5, SleepHours: hours, FatigueLevel: floatPtr(5)}
	}

	r8 := ApplyRestDayRecoveryReport(100, report(8))
	r7 := ApplyRestDayRecoveryReport(100, report(7))
	r6 := ApplyRestDayRecoveryReport(100, report(6))
	r5 := ApplyRestDayRecoveryReport(100, report(5))

	if !(r8 < r7 && r7 < r6 && r6 < r5) {
		t.Errorf("more sleep should mean more recovery: %v %v %v %v", r8, r7, r6, r5)
	}
}
