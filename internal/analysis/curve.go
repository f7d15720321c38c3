package analysis

import "math"

// epsilon guards divisions in CV and z-score computations; denominators
// below it resolve to 0 rather than exploding.
const epsilon = 0.01

// Clamp limits v to the range [lo, hi].
func Clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapRange linearly maps v from [inLo, inHi] to [outLo, outHi], clamping
// v to the input range first. An inverted output range (outLo > outHi)
// is allowed and produces an inverse mapping.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	v = Clamp(inLo, inHi, v)
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std returns the population standard deviation (divisor n, not n-1),
// or 0 with fewer than 2 samples.
func Std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// CoefVariation returns std/mean, or 0 when the mean is below epsilon.
func CoefVariation(values []float64) float64 {
	m := Mean(values)
	if math.Abs(m) < epsilon {
		return 0
	}
	return Std(values) / m
}

// ZScore returns (value - mean) / std, or 0 when std is below epsilon.
func ZScore(value, mean, std float64) float64 {
	if std < epsilon {
		return 0
	}
	return (value - mean) / std
}

// recencyWeights bias the most recent of up to three samples.
var recencyWeights = [3]float64{0.5, 0.3, 0.2}

// RecencyWeighted averages up to the first three values with weights
// 0.5/0.3/0.2 (most recent first). With fewer than three values the
// used weights are renormalized. Empty input returns 0.
func RecencyWeighted(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := len(values)
	if n > 3 {
		n = 3
	}
	var sum, wsum float64
	for i := 0; i < n; i++ {
		sum += values[i] * recencyWeights[i]
		wsum += recencyWeights[i]
	}
	return sum / wsum
}

// SmoothScore applies one step of autoregressive smoothing toward the
// previous day's score: 0.6*raw + 0.4*previous.
func SmoothScore(raw, previous float64) float64 {
	return 0.6*raw + 0.4*previous
}
