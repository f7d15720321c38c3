package store

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// InsertSession stores one session row and returns its id.
func (s *Store) InsertSession(r *SessionRecord) (int64, error) {
	if r.AthleteID == "" {
		return 0, ErrAthleteRequired
	}
	res, err := s.db.Exec(`
		INSERT INTO training_sessions (
			athlete_id, date, session_type, duration_minutes, rpe,
			intensity, intensity_level, soreness_level, sleep_hours,
			fatigue_level, sleep_quality, mobility_done
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.AthleteID, r.Date.Format(dayFormat), r.Type, r.DurationMinutes, r.RPE,
		r.Intensity, r.IntensityLevel, r.SorenessLevel, r.SleepHours,
		r.FatigueLevel, r.SleepQuality, boolPtrToInt(r.MobilityDone),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SessionsBetween retrieves all sessions for an athlete with
// from <= date <= to, ordered by date ascending.
func (s *Store) SessionsBetween(athleteID string, from, to time.Time) ([]SessionRecord, error) {
	if athleteID == "" {
		return nil, ErrAthleteRequired
	}
	rows, err := s.db.Query(`
		SELECT id, athlete_id, date, session_type, duration_minutes, rpe,
			intensity, intensity_level, soreness_level, sleep_hours,
			fatigue_level, sleep_quality, mobility_done, created_at
		FROM training_sessions
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`, athleteID, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var date, createdAt string
		var mobility *int
		err := rows.Scan(
			&r.ID, &r.AthleteID, &date, &r.Type, &r.DurationMinutes, &r.RPE,
			&r.Intensity, &r.IntensityLevel, &r.SorenessLevel, &r.SleepHours,
			&r.FatigueLevel, &r.SleepQuality, &mobility, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		r.Date, err = parseDay(date)
		if err != nil {
			return nil, fmt.Errorf("parsing session date %q: %w", date, err)
		}
		r.CreatedAt, _ = parseTimestamp(createdAt)
		r.MobilityDone = intPtrToBool(mobility)
		sessions = append(sessions, r)
	}

	return sessions, rows.Err()
}

func parseDay(s string) (time.Time, error) {
	return time.Parse(dayFormat, s)
}

// parseTimestamp accepts either SQLite's CURRENT_TIMESTAMP format or RFC3339.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func boolPtrToInt(b *bool) *int {
	if b == nil {
		return nil
	}
	v := 0
	if *b {
		v = 1
	}
	return &v
}

func intPtrToBool(i *int) *bool {
	if i == nil {
		return nil
	}
	v := *i != 0
	return &v
}
