package analysis

// Load-ratio zones relative to the athlete's calibrated thresholds.
const (
	ZoneUndertraining = "undertraining"
	ZoneOptimal       = "optimal"
	ZoneCaution       = "caution"
	ZoneDanger        = "danger"
)

// LoadZoneFor classifies an acute:chronic ratio against the calibrated
// caution and danger thresholds.
func LoadZoneFor(ratio float64, cal Calibration) string {
	switch {
	case ratio < 0.8:
		return ZoneUndertraining
	case ratio <= cal.CautionRatio:
		return ZoneOptimal
	case ratio <= cal.DangerRatio:
		return ZoneCaution
	default:
		return ZoneDanger
	}
}

// ForecastResult projects tomorrow's training state.
type ForecastResult struct {
	PredictedLoad         float64 `json:"predictedLoad"`
	PredictedStrain       float64 `json:"predictedStrain"`
	PredictedLoadRatio    float64 `json:"predictedLoadRatio"`
	PredictedLoadZone     string  `json:"predictedLoadZone"`
	PredictedOvertraining float64 `json:"predictedOvertraining"`
	IsRestDay             bool    `json:"isRestDay"`
}

// ComputeForecast predicts tomorrow's load from the athlete's weekly
// rhythm and folds it into the load ratio and overtraining projection.
//
// The primary estimate averages the load on the same weekday across the
// previous 3 weeks, using only weeks where that day carried load; when
// fewer than 2 such samples exist the estimate falls back to a
// recency-weighted average of the last 3 days.
func ComputeForecast(days []DayEntry, cal Calibration, currentOvertraining float64) ForecastResult {
	predicted := predictTomorrowLoad(days)

	divisor := cal.StrainDivisor
	predictedStrain := Strain(predicted, divisor)

	var acute6, total float64
	n := len(days)
	for i, d := range days {
		total += d.Load
		if i >= n-6 {
			acute6 += d.Load
		}
	}
	chronic := (total + predicted) / 29
	ratio := (acute6 + predicted) / (chronic + 1)

	var delta float64
	isRest := predicted == 0
	switch {
	case isRest:
		delta = -10
	case ratio > cal.CautionRatio:
		delta = MapRange(ratio, cal.CautionRatio, cal.DangerRatio, 5, 15)
	default:
		delta = -3
	}

	return ForecastResult{
		PredictedLoad:         predicted,
		PredictedStrain:       predictedStrain,
		PredictedLoadRatio:    ratio,
		PredictedLoadZone:     LoadZoneFor(ratio, cal),
		PredictedOvertraining: Clamp(0, 100, currentOvertraining+delta),
		IsRestDay:             isRest,
	}
}

// predictTomorrowLoad estimates tomorrow's load from the same weekday
// in the previous 3 weeks, falling back to recency weighting over the
// last 3 days when the weekly pattern is too sparse.
func predictTomorrowLoad(days []DayEntry) float64 {
	n := len(days)

	var samples []float64
	for _, back := range []int{7, 14, 21} {
		i := n - back
		if i < 0 {
			continue
		}
		if load := days[i].Load; load > 0 {
			samples = append(samples, load)
		}
	}
	if len(samples) >= 2 {
		return Mean(samples)
	}

	var last3 []float64
	for i := n - 1; i >= 0 && len(last3) < 3; i-- {
		last3 = append(last3, days[i].Load)
	}
	return RecencyWeighted(last3)
}
