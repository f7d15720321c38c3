package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpsertBaseline stores the baseline row for one athlete and computation
// date, replacing an existing row for the same key (last write wins).
func (s *Store) UpsertBaseline(b *PersonalBaseline) error {
	if b.AthleteID == "" {
		return ErrAthleteRequired
	}
	_, err := s.db.Exec(`
		INSERT INTO personal_baselines (
			athlete_id, baseline_date, history_days,
			sleep_hours_mean_14d, sleep_hours_std_14d,
			soreness_mean_14d, soreness_std_14d,
			fatigue_mean_14d, fatigue_std_14d,
			stress_mean_14d, stress_std_14d,
			hooper_mean_14d, hooper_std_14d,
			daily_load_mean_14d, daily_load_std_14d,
			sleep_hours_mean_60d, sleep_hours_std_60d,
			soreness_mean_60d, soreness_std_60d,
			fatigue_mean_60d, fatigue_std_60d,
			stress_mean_60d, stress_std_60d,
			hooper_mean_60d, hooper_std_60d,
			daily_load_mean_60d, daily_load_std_60d,
			hooper_cv_14d, avg_deficit_7d, avg_deficit_14d, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(athlete_id, baseline_date) DO UPDATE SET
			history_days = excluded.history_days,
			sleep_hours_mean_14d = excluded.sleep_hours_mean_14d,
			sleep_hours_std_14d = excluded.sleep_hours_std_14d,
			soreness_mean_14d = excluded.soreness_mean_14d,
			soreness_std_14d = excluded.soreness_std_14d,
			fatigue_mean_14d = excluded.fatigue_mean_14d,
			fatigue_std_14d = excluded.fatigue_std_14d,
			stress_mean_14d = excluded.stress_mean_14d,
			stress_std_14d = excluded.stress_std_14d,
			hooper_mean_14d = excluded.hooper_mean_14d,
			hooper_std_14d = excluded.hooper_std_14d,
			daily_load_mean_14d = excluded.daily_load_mean_14d,
			daily_load_std_14d = excluded.daily_load_std_14d,
			sleep_hours_mean_60d = excluded.sleep_hours_mean_60d,
			sleep_hours_std_60d = excluded.sleep_hours_std_60d,
			soreness_mean_60d = excluded.soreness_mean_60d,
			soreness_std_60d = excluded.soreness_std_60d,
			fatigue_mean_60d = excluded.fatigue_mean_60d,
			fatigue_std_60d = excluded.fatigue_std_60d,
			stress_mean_60d = excluded.stress_mean_60d,
			stress_std_60d = excluded.stress_std_60d,
			hooper_mean_60d = excluded.hooper_mean_60d,
			hooper_std_60d = excluded.hooper_std_60d,
			daily_load_mean_60d = excluded.daily_load_mean_60d,
			daily_load_std_60d = excluded.daily_load_std_60d,
			hooper_cv_14d = excluded.hooper_cv_14d,
			avg_deficit_7d = excluded.avg_deficit_7d,
			avg_deficit_14d = excluded.avg_deficit_14d,
			updated_at = CURRENT_TIMESTAMP
	`,
		b.AthleteID, b.Date.Format(dayFormat), b.HistoryDays,
		b.SleepHoursMean14d, b.SleepHoursStd14d,
		b.SorenessMean14d, b.SorenessStd14d,
		b.FatigueMean14d, b.FatigueStd14d,
		b.StressMean14d, b.StressStd14d,
		b.HooperMean14d, b.HooperStd14d,
		b.DailyLoadMean14d, b.DailyLoadStd14d,
		b.SleepHoursMean60d, b.SleepHoursStd60d,
		b.SorenessMean60d, b.SorenessStd60d,
		b.FatigueMean60d, b.FatigueStd60d,
		b.StressMean60d, b.StressStd60d,
		b.HooperMean60d, b.HooperStd60d,
		b.DailyLoadMean60d, b.DailyLoadStd60d,
		b.HooperCV14d, b.AvgDeficit7d, b.AvgDeficit14d,
	)
	return err
}

// BaselineOn retrieves the baseline computed for one day, or nil if none
// exists.
func (s *Store) BaselineOn(athleteID string, date time.Time) (*PersonalBaseline, error) {
	if athleteID == "" {
		return nil, ErrAthleteRequired
	}
	row := s.db.QueryRow(`
		SELECT athlete_id, baseline_date, history_days,
			sleep_hours_mean_14d, sleep_hours_std_14d,
			soreness_mean_14d, soreness_std_14d,
			fatigue_mean_14d, fatigue_std_14d,
			stress_mean_14d, stress_std_14d,
			hooper_mean_14d, hooper_std_14d,
			daily_load_mean_14d, daily_load_std_14d,
			sleep_hours_mean_60d, sleep_hours_std_60d,
			soreness_mean_60d, soreness_std_60d,
			fatigue_mean_60d, fatigue_std_60d,
			stress_mean_60d, stress_std_60d,
			hooper_mean_60d, hooper_std_60d,
			daily_load_mean_60d, daily_load_std_60d,
			hooper_cv_14d, avg_deficit_7d, avg_deficit_14d
		FROM personal_baselines
		WHERE athlete_id = ? AND baseline_date = ?
	`, athleteID, date.Format(dayFormat))

	var b PersonalBaseline
	var day string
	err := row.Scan(
		&b.AthleteID, &day, &b.HistoryDays,
		&b.SleepHoursMean14d, &b.SleepHoursStd14d,
		&b.SorenessMean14d, &b.SorenessStd14d,
		&b.FatigueMean14d, &b.FatigueStd14d,
		&b.StressMean14d, &b.StressStd14d,
		&b.HooperMean14d, &b.HooperStd14d,
		&b.DailyLoadMean14d, &b.DailyLoadStd14d,
		&b.SleepHoursMean60d, &b.SleepHoursStd60d,
		&b.SorenessMean60d, &b.SorenessStd60d,
		&b.FatigueMean60d, &b.FatigueStd60d,
		&b.StressMean60d, &b.StressStd60d,
		&b.HooperMean60d, &b.HooperStd60d,
		&b.DailyLoadMean60d, &b.DailyLoadStd60d,
		&b.HooperCV14d, &b.AvgDeficit7d, &b.AvgDeficit14d,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Date, err = parseDay(day)
	if err != nil {
		return nil, fmt.Errorf("parsing baseline date %q: %w", day, err)
	}
	return &b, nil
}
