package store

import (
	"fmt"
	"time"
)

// InsertNutritionLog stores one nutrition log entry. Multiple entries per
// day are allowed; day totals are summed at query time.
func (s *Store) InsertNutritionLog(athleteID string, date time.Time, calories float64) error {
	if athleteID == "" {
		return ErrAthleteRequired
	}
	_, err := s.db.Exec(`
		INSERT INTO nutrition_logs (athlete_id, date, calories) VALUES (?, ?, ?)
	`, athleteID, date.Format(dayFormat), calories)
	return err
}

// NutritionTotalsBetween retrieves per-day caloric totals with
// from <= date <= to. Days with no log entries are absent from the
// result, not zero.
func (s *Store) NutritionTotalsBetween(athleteID string, from, to time.Time) ([]NutritionDay, error) {
	if athleteID == "" {
		return nil, ErrAthleteRequired
	}
	rows, err := s.db.Query(`
		SELECT athlete_id, date, SUM(calories)
		FROM nutrition_logs
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date ASC
	`, athleteID, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []NutritionDay
	for rows.Next() {
		var d NutritionDay
		var date string
		if err := rows.Scan(&d.AthleteID, &date, &d.Calories); err != nil {
			return nil, err
		}
		d.Date, err = parseDay(date)
		if err != nil {
			return nil, fmt.Errorf("parsing nutrition date %q: %w", date, err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}
