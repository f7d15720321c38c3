package analysis

// HooperIndex derives the 4-28 composite wellness index from the four
// 1-7 check-in ratings: sleep quality counts directly (higher is better
// sleep) while stress, fatigue and soreness are inverted (higher ratings
// are worse). 28 means every rating is ideal.
func HooperIndex(sleepQuality, stress, fatigue, soreness int) int {
	return clampRating(sleepQuality) +
		(8 - clampRating(stress)) +
		(8 - clampRating(fatigue)) +
		(8 - clampRating(soreness))
}

// HooperLabel gives the qualitative band for a Hooper index.
func HooperLabel(index int) string {
	switch {
	case index >= 22:
		return "Great"
	case index >= 16:
		return "Good"
	case index >= 10:
		return "Fair"
	default:
		return "Poor"
	}
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 7 {
		return 7
	}
	return v
}
