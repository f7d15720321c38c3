package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"fightcamp/internal/analysis"
	"fightcamp/internal/baseline"
	"fightcamp/internal/store"
)

// Service orchestrates storage, baseline computation and the scoring
// engine. The engine itself stays pure; all I/O happens here.
type Service struct {
	store     *store.Store
	baselines *baseline.Computer

	weeklyFrequency int
	activityLevel   string
	tdee            float64
}

// Profile is the declared athlete profile the calibration starts from.
type Profile struct {
	WeeklyFrequency int
	ActivityLevel   string
	TDEE            float64 // maintenance calories; 0 disables deficit tracking
}

func New(st *store.Store, p Profile) *Service {
	if p.WeeklyFrequency == 0 {
		p.WeeklyFrequency = DefaultWeeklyFrequency
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = DefaultActivityLevel
	}
	return &Service{
		store:           st,
		baselines:       baseline.NewComputer(st),
		weeklyFrequency: p.WeeklyFrequency,
		activityLevel:   p.ActivityLevel,
		tdee:            p.TDEE,
	}
}

// DailyMetrics runs the full scoring pipeline for one athlete-day and
// writes the readiness score back onto the day's check-in so the next
// day can smooth against it.
func (s *Service) DailyMetrics(athleteID string, refDate time.Time) (*analysis.Metrics, error) {
	from := refDate.AddDate(0, 0, -(ScoringWindowDays - 1))
	sessions, err := s.store.SessionsBetween(athleteID, from, refDate)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	checkIn, err := s.store.CheckInOn(athleteID, refDate)
	if err != nil {
		return nil, fmt.Errorf("load check-in: %w", err)
	}

	// A failed baseline never blocks scoring; the readiness model
	// degrades to a lower tier instead.
	personal, err := s.baselines.LoadOrCompute(athleteID, refDate, s.tdee)
	if err != nil {
		log.WithError(err).WithField("athlete", athleteID).Warn("baseline unavailable")
		personal = nil
	}

	prev, err := s.previousReadiness(athleteID, refDate)
	if err != nil {
		log.WithError(err).Warn("previous readiness unavailable")
		prev = nil
	}

	m := analysis.ComputeAllMetrics(analysis.Inputs{
		Sessions:        sessions,
		CheckIn:         checkIn,
		Baseline:        personal,
		PrevReadiness:   prev,
		WeeklyFrequency: s.weeklyFrequency,
		ActivityLevel:   s.activityLevel,
		RefDate:         refDate,
	})

	if checkIn != nil {
		if err := s.store.SaveReadinessScore(athleteID, refDate, float64(m.Readiness.Score)); err != nil {
			log.WithError(err).Warn("readiness write-back failed")
		}
	}

	return &m, nil
}

func (s *Service) previousReadiness(athleteID string, refDate time.Time) (*float64, error) {
	prevDay, err := s.store.CheckInOn(athleteID, refDate.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	if prevDay == nil {
		return nil, nil
	}
	return prevDay.ReadinessScore, nil
}

// LogSession records one training or rest session.
func (s *Service) LogSession(r *store.SessionRecord) (int64, error) {
	id, err := s.store.InsertSession(r)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	log.WithFields(log.Fields{
		"athlete": r.AthleteID,
		"date":    r.Date.Format("2006-01-02"),
		"type":    r.Type,
	}).Info("session logged")
	return id, nil
}

// SubmitCheckIn derives the Hooper index from the four ratings, stores
// the check-in, and refreshes the athlete's baseline so tonight's
// scoring sees it.
func (s *Service) SubmitCheckIn(c *store.WellnessCheckIn) error {
	c.HooperIndex = analysis.HooperIndex(c.SleepQuality, c.StressLevel, c.FatigueLevel, c.SorenessLevel)
	if err := s.store.UpsertCheckIn(c); err != nil {
		return fmt.Errorf("upsert check-in: %w", err)
	}
	if _, err := s.baselines.ComputeAndStore(c.AthleteID, c.Date, s.tdee); err != nil {
		log.WithError(err).Warn("baseline refresh after check-in failed")
	}
	return nil
}

// LogNutrition records one caloric intake entry.
func (s *Service) LogNutrition(athleteID string, date time.Time, calories float64) error {
	if err := s.store.InsertNutritionLog(athleteID, date, calories); err != nil {
		return fmt.Errorf("insert nutrition log: %w", err)
	}
	return nil
}

// RecomputeBaseline forces a fresh baseline for the athlete as of
// refDate, bypassing the cache.
func (s *Service) RecomputeBaseline(athleteID string, refDate time.Time) (*store.PersonalBaseline, error) {
	return s.baselines.ComputeAndStore(athleteID, refDate, s.tdee)
}
