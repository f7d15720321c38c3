package service

const (
	// Time windows
	ScoringWindowDays = 28 // trailing window the scoring engine reads

	// Defaults applied when the athlete profile is incomplete
	DefaultWeeklyFrequency = 3
	DefaultActivityLevel   = "moderately_active"
)
