package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpsertCheckIn stores or replaces the check-in for one athlete and day.
func (s *Store) UpsertCheckIn(c *WellnessCheckIn) error {
	if c.AthleteID == "" {
		return ErrAthleteRequired
	}
	_, err := s.db.Exec(`
		INSERT INTO wellness_checkins (
			athlete_id, date, sleep_quality, stress_level, fatigue_level,
			soreness_level, hooper_index, sleep_hours, energy_level,
			motivation, hydration, appetite, readiness_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id, date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			stress_level = excluded.stress_level,
			fatigue_level = excluded.fatigue_level,
			soreness_level = excluded.soreness_level,
			hooper_index = excluded.hooper_index,
			sleep_hours = excluded.sleep_hours,
			energy_level = excluded.energy_level,
			motivation = excluded.motivation,
			hydration = excluded.hydration,
			appetite = excluded.appetite,
			readiness_score = excluded.readiness_score
	`,
		c.AthleteID, c.Date.Format(dayFormat), c.SleepQuality, c.StressLevel, c.FatigueLevel,
		c.SorenessLevel, c.HooperIndex, c.SleepHours, c.EnergyLevel,
		c.Motivation, c.Hydration, c.Appetite, c.ReadinessScore,
	)
	return err
}

// CheckInOn retrieves the check-in for one day, or nil if none exists.
func (s *Store) CheckInOn(athleteID string, date time.Time) (*WellnessCheckIn, error) {
	if athleteID == "" {
		return nil, ErrAthleteRequired
	}
	row := s.db.QueryRow(`
		SELECT athlete_id, date, sleep_quality, stress_level, fatigue_level,
			soreness_level, hooper_index, sleep_hours, energy_level,
			motivation, hydration, appetite, readiness_score
		FROM wellness_checkins
		WHERE athlete_id = ? AND date = ?
	`, athleteID, date.Format(dayFormat))

	c, err := scanCheckIn(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CheckInsBetween retrieves check-ins with from <= date <= to, ordered by
// date ascending.
func (s *Store) CheckInsBetween(athleteID string, from, to time.Time) ([]WellnessCheckIn, error) {
	if athleteID == "" {
		return nil, ErrAthleteRequired
	}
	rows, err := s.db.Query(`
		SELECT athlete_id, date, sleep_quality, stress_level, fatigue_level,
			soreness_level, hooper_index, sleep_hours, energy_level,
			motivation, hydration, appetite, readiness_score
		FROM wellness_checkins
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, athleteID, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []WellnessCheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, *c)
	}

	return checkIns, rows.Err()
}

// SaveReadinessScore writes the computed readiness score onto the day's
// check-in row. A missing row is not an error: there is simply nothing
// to smooth against tomorrow.
func (s *Store) SaveReadinessScore(athleteID string, date time.Time, score float64) error {
	if athleteID == "" {
		return ErrAthleteRequired
	}
	_, err := s.db.Exec(`
		UPDATE wellness_checkins SET readiness_score = ?
		WHERE athlete_id = ? AND date = ?
	`, score, athleteID, date.Format(dayFormat))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(row rowScanner) (*WellnessCheckIn, error) {
	var c WellnessCheckIn
	var date string
	err := row.Scan(
		&c.AthleteID, &date, &c.SleepQuality, &c.StressLevel, &c.FatigueLevel,
		&c.SorenessLevel, &c.HooperIndex, &c.SleepHours, &c.EnergyLevel,
		&c.Motivation, &c.Hydration, &c.Appetite, &c.ReadinessScore,
	)
	if err != nil {
		return nil, err
	}
	c.Date, err = parseDay(date)
	if err != nil {
		return nil, fmt.Errorf("parsing check-in date %q: %w", date, err)
	}
	return &c, nil
}
