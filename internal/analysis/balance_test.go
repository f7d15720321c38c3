package analysis

import (
	"testing"

	"fightcamp/internal/store"
)

func fullBaseline() *store.PersonalBaseline {
	return &store.PersonalBaseline{
		SleepHoursMean14d: floatPtr(7.5),
		SleepHoursMean60d: floatPtr(7.0),
		SleepHoursStd60d:  floatPtr(0.5),

		SorenessMean14d: floatPtr(3),
		SorenessMean60d: floatPtr(5),
		SorenessStd60d:  floatPtr(1),

		FatigueMean14d: floatPtr(4),
		FatigueMean60d: floatPtr(4),
		FatigueStd60d:  floatPtr(1),

		StressMean14d: floatPtr(6),
		StressMean60d: floatPtr(3),
		StressStd60d:  floatPtr(1),

		HooperMean14d: floatPtr(20),
		HooperMean60d: floatPtr(18),
		HooperStd60d:  floatPtr(2),

		DailyLoadMean14d: floatPtr(500),
		DailyLoadMean60d: floatPtr(400),
		DailyLoadStd60d:  floatPtr(100),
	}
}

func metricByName(metrics []BalanceMetric, name string) *BalanceMetric {
	for i := range metrics {
		if metrics[i].Metric == name {
			return &metrics[i]
		}
	}
	return nil
}

func TestComputeBalanceMetrics(t *testing.T) {
	metrics := ComputeBalanceMetrics(fullBaseline())

	if len(metrics) != 6 {
		t.Fatalf("expected 6 metrics, got %d", len(metrics))
	}

	// Soreness dropped 2 std below baseline: lower is better, so this
	// is improving, and |z| = 2 makes it an alert.
	soreness := metricByName(metrics, "soreness")
	if soreness == nil {
		t.Fatal("missing soreness metric")
	}
	if soreness.Direction != DirectionImproving {
		t.Errorf("soreness direction = %q, want improving", soreness.Direction)
	}
	if soreness.Severity != SeverityAlert {
		t.Errorf("soreness severity = %q, want alert", soreness.Severity)
	}

	// Stress rose 3 std: declining, alert
	stress := metricByName(metrics, "stress")
	if stress.Direction != DirectionDeclining {
		t.Errorf("stress direction = %q, want declining", stress.Direction)
	}
	if stress.Severity != SeverityAlert {
		t.Errorf("stress severity = %q, want alert", stress.Severity)
	}

	// Sleep rose 1 std: higher is better -> improving, warning
	sleep := metricByName(metrics, "sleep_hours")
	if sleep.Direction != DirectionImproving {
		t.Errorf("sleep direction = %q, want improving", sleep.Direction)
	}
	if sleep.Severity != SeverityWarning {
		t.Errorf("sleep severity = %q, want warning", sleep.Severity)
	}

	// Fatigue unchanged: stable, normal
	fatigue := metricByName(metrics, "fatigue")
	if fatigue.Direction != DirectionStable {
		t.Errorf("fatigue direction = %q, want stable", fatigue.Direction)
	}
	if fatigue.Severity != SeverityNormal {
		t.Errorf("fatigue severity = %q, want normal", fatigue.Severity)
	}

	// Daily load rose 1 std: lower is better -> declining
	load := metricByName(metrics, "daily_load")
	if load.Direction != DirectionDeclining {
		t.Errorf("daily_load direction = %q, want declining", load.Direction)
	}
}

func TestComputeBalanceMetrics_MissingFields(t *testing.T) {
	b := fullBaseline()
	b.SleepHoursMean14d = nil                   // incomplete triple
	b.StressStd60d = nil                        // incomplete triple
	metrics := ComputeBalanceMetrics(b)

	if len(metrics) != 4 {
		t.Errorf("expected 4 metrics with 2 incomplete, got %d", len(metrics))
	}
	if metricByName(metrics, "sleep_hours") != nil {
		t.Error("sleep_hours should be skipped without its 14d mean")
	}
	if metricByName(metrics, "stress") != nil {
		t.Error("stress should be skipped without its 60d std")
	}
}

func TestComputeBalanceMetrics_NilBaseline(t *testing.T) {
	if got := ComputeBalanceMetrics(nil); got != nil {
		t.Errorf("nil baseline should produce nil, got %v", got)
	}
}
