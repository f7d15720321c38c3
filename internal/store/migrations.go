package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Training sessions (including logged rest days)
		`CREATE TABLE IF NOT EXISTS training_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			athlete_id TEXT NOT NULL,
			date TEXT NOT NULL,
			session_type TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			rpe REAL NOT NULL DEFAULT 0,
			intensity TEXT NOT NULL DEFAULT '',
			intensity_level INTEGER,
			soreness_level REAL NOT NULL DEFAULT 0,
			sleep_hours REAL NOT NULL DEFAULT 0,
			fatigue_level REAL,
			sleep_quality TEXT,
			mobility_done INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_athlete_date ON training_sessions(athlete_id, date)`,

		// Daily wellness check-ins (one per athlete per day)
		`CREATE TABLE IF NOT EXISTS wellness_checkins (
			athlete_id TEXT NOT NULL,
			date TEXT NOT NULL,
			sleep_quality INTEGER NOT NULL,
			stress_level INTEGER NOT NULL,
			fatigue_level INTEGER NOT NULL,
			soreness_level INTEGER NOT NULL,
			hooper_index INTEGER NOT NULL,
			sleep_hours REAL,
			energy_level INTEGER,
			motivation INTEGER,
			hydration INTEGER,
			appetite INTEGER,
			readiness_score REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (athlete_id, date)
		)`,

		// Nutrition log entries; day totals are aggregated at query time
		`CREATE TABLE IF NOT EXISTS nutrition_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			athlete_id TEXT NOT NULL,
			date TEXT NOT NULL,
			calories REAL NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_nutrition_athlete_date ON nutrition_logs(athlete_id, date)`,

		// Rolling personal baselines, one row per athlete per computation date
		`CREATE TABLE IF NOT EXISTS personal_baselines (
			athlete_id TEXT NOT NULL,
			baseline_date TEXT NOT NULL,
			history_days INTEGER NOT NULL DEFAULT 0,
			sleep_hours_mean_14d REAL, sleep_hours_std_14d REAL,
			soreness_mean_14d REAL, soreness_std_14d REAL,
			fatigue_mean_14d REAL, fatigue_std_14d REAL,
			stress_mean_14d REAL, stress_std_14d REAL,
			hooper_mean_14d REAL, hooper_std_14d REAL,
			daily_load_mean_14d REAL, daily_load_std_14d REAL,
			sleep_hours_mean_60d REAL, sleep_hours_std_60d REAL,
			soreness_mean_60d REAL, soreness_std_60d REAL,
			fatigue_mean_60d REAL, fatigue_std_60d REAL,
			stress_mean_60d REAL, stress_std_60d REAL,
			hooper_mean_60d REAL, hooper_std_60d REAL,
			daily_load_mean_60d REAL, daily_load_std_60d REAL,
			hooper_cv_14d REAL,
			avg_deficit_7d REAL, avg_deficit_14d REAL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (athlete_id, baseline_date)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
