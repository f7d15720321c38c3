// Package baseline computes and persists rolling wellness statistics.
// It is the only part of the system that both reads history and writes
// derived rows; the scoring engine consumes its output read-only.
package baseline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"fightcamp/internal/analysis"
	"fightcamp/internal/store"
)

const (
	// minCheckIns is the fewest check-ins that make a baseline
	// meaningful at all.
	minCheckIns = 3

	// cacheTTL bounds baseline staleness; a recomputation is forced
	// once a day per athlete.
	cacheTTL = 24 * time.Hour

	cacheSizeBytes = 1024 * 1024

	dayFormat = "2006-01-02"
)

// Computer derives PersonalBaseline rows from up to 90 days of
// check-in, nutrition and session history.
type Computer struct {
	store *store.Store
	cache *freecache.Cache
}

func NewComputer(st *store.Store) *Computer {
	return &Computer{
		store: st,
		cache: freecache.NewCache(cacheSizeBytes),
	}
}

func cacheKey(athleteID string, date time.Time) []byte {
	return []byte("baseline::" + athleteID + "::" + date.Format(dayFormat))
}

// LoadOrCompute returns the cached baseline for the athlete and date
// when one is fresh, otherwise computes, persists and caches a new one.
// A nil baseline with nil error means there is not enough history yet.
func (c *Computer) LoadOrCompute(athleteID string, refDate time.Time, tdee float64) (*store.PersonalBaseline, error) {
	if raw, err := c.cache.Get(cacheKey(athleteID, refDate)); err == nil {
		var b store.PersonalBaseline
		if err := json.Unmarshal(raw, &b); err == nil {
			log.WithField("athlete", athleteID).Debug("baseline cache hit")
			return &b, nil
		}
		log.WithField("athlete", athleteID).Warn("discarding corrupt cached baseline")
		c.cache.Del(cacheKey(athleteID, refDate))
	}
	return c.ComputeAndStore(athleteID, refDate, tdee)
}

// ComputeAndStore recomputes the athlete's baseline as of refDate,
// upserts it keyed by (athlete, date) and caches it. Concurrent calls
// for the same athlete are idempotent: the computation is deterministic
// over the same window and the upsert is last-write-wins.
func (c *Computer) ComputeAndStore(athleteID string, refDate time.Time, tdee float64) (*store.PersonalBaseline, error) {
	from := refDate.AddDate(0, 0, -90)

	checkIns, err := c.store.CheckInsBetween(athleteID, from, refDate)
	if err != nil {
		return nil, fmt.Errorf("load check-ins: %w", err)
	}
	if len(checkIns) < minCheckIns {
		log.WithFields(log.Fields{"athlete": athleteID, "checkIns": len(checkIns)}).
			Debug("not enough check-ins for a baseline")
		return nil, nil
	}

	nutrition, err := c.store.NutritionTotalsBetween(athleteID, from, refDate)
	if err != nil {
		return nil, fmt.Errorf("load nutrition: %w", err)
	}
	sessions, err := c.store.SessionsBetween(athleteID, from, refDate)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	b := c.compute(athleteID, refDate, tdee, checkIns, nutrition, sessions)

	if err := c.store.UpsertBaseline(b); err != nil {
		return nil, fmt.Errorf("store baseline: %w", err)
	}

	if raw, err := json.Marshal(b); err == nil {
		if err := c.cache.Set(cacheKey(athleteID, refDate), raw, int(cacheTTL.Seconds())); err != nil {
			log.WithError(err).Warn("baseline cache write failed")
		}
	}

	log.WithFields(log.Fields{"athlete": athleteID, "date": refDate.Format(dayFormat)}).
		Info("baseline recomputed")
	return b, nil
}

func (c *Computer) compute(athleteID string, refDate time.Time, tdee float64,
	checkIns []store.WellnessCheckIn, nutrition []store.NutritionDay, sessions []store.SessionRecord) *store.PersonalBaseline {

	b := &store.PersonalBaseline{AthleteID: athleteID, Date: refDate}

	oldest := checkIns[0].Date
	for _, c := range checkIns {
		if c.Date.Before(oldest) {
			oldest = c.Date
		}
	}
	b.HistoryDays = int(refDate.Sub(oldest).Hours()/24) + 1

	recent14 := checkInsSince(checkIns, refDate.AddDate(0, 0, -14))
	recent60 := checkInsSince(checkIns, refDate.AddDate(0, 0, -60))

	fillWindow(recent14, &windowStats{
		sleep:    pair{&b.SleepHoursMean14d, &b.SleepHoursStd14d},
		soreness: pair{&b.SorenessMean14d, &b.SorenessStd14d},
		fatigue:  pair{&b.FatigueMean14d, &b.FatigueStd14d},
		stress:   pair{&b.StressMean14d, &b.StressStd14d},
		hooper:   pair{&b.HooperMean14d, &b.HooperStd14d},
	})
	fillWindow(recent60, &windowStats{
		sleep:    pair{&b.SleepHoursMean60d, &b.SleepHoursStd60d},
		soreness: pair{&b.SorenessMean60d, &b.SorenessStd60d},
		fatigue:  pair{&b.FatigueMean60d, &b.FatigueStd60d},
		stress:   pair{&b.StressMean60d, &b.StressStd60d},
		hooper:   pair{&b.HooperMean60d, &b.HooperStd60d},
	})

	if len(recent14) >= minCheckIns {
		var hooper []float64
		for _, c := range recent14 {
			hooper = append(hooper, float64(c.HooperIndex))
		}
		cv := analysis.CoefVariation(hooper)
		b.HooperCV14d = &cv
	}

	// Daily load windows are zero-filled: an unlogged day is a real
	// zero-load day, unlike nutrition where absence means unlogged.
	loadByDay := make(map[string]float64)
	for _, s := range sessions {
		loadByDay[s.Date.Format(dayFormat)] += analysis.SessionLoad(s)
	}
	var loads14, loads60 []float64
	for i := 0; i < 60; i++ {
		load := loadByDay[refDate.AddDate(0, 0, -i).Format(dayFormat)]
		if i < 14 {
			loads14 = append(loads14, load)
		}
		loads60 = append(loads60, load)
	}
	setStats(loads14, &b.DailyLoadMean14d, &b.DailyLoadStd14d)
	setStats(loads60, &b.DailyLoadMean60d, &b.DailyLoadStd60d)

	if tdee > 0 {
		intakeByDay := make(map[string]float64, len(nutrition))
		for _, n := range nutrition {
			intakeByDay[n.Date.Format(dayFormat)] = n.Calories
		}
		var deficits7, deficits14 []float64
		for i := 0; i < 14; i++ {
			intake, logged := intakeByDay[refDate.AddDate(0, 0, -i).Format(dayFormat)]
			if !logged {
				continue
			}
			deficit := tdee - intake // positive = eating under maintenance
			if i < 7 {
				deficits7 = append(deficits7, deficit)
			}
			deficits14 = append(deficits14, deficit)
		}
		if len(deficits7) > 0 {
			v := analysis.Mean(deficits7)
			b.AvgDeficit7d = &v
		}
		if len(deficits14) > 0 {
			v := analysis.Mean(deficits14)
			b.AvgDeficit14d = &v
		}
	}

	return b
}

type pair struct {
	mean **float64
	std  **float64
}

type windowStats struct {
	sleep    pair
	soreness pair
	fatigue  pair
	stress   pair
	hooper   pair
}

func fillWindow(checkIns []store.WellnessCheckIn, w *windowStats) {
	var sleep, soreness, fatigue, stress, hooper []float64
	for _, c := range checkIns {
		if c.SleepHours != nil {
			sleep = append(sleep, *c.SleepHours)
		}
		soreness = append(soreness, float64(c.SorenessLevel))
		fatigue = append(fatigue, float64(c.FatigueLevel))
		stress = append(stress, float64(c.StressLevel))
		hooper = append(hooper, float64(c.HooperIndex))
	}
	setStats(sleep, w.sleep.mean, w.sleep.std)
	setStats(soreness, w.soreness.mean, w.soreness.std)
	setStats(fatigue, w.fatigue.mean, w.fatigue.std)
	setStats(stress, w.stress.mean, w.stress.std)
	setStats(hooper, w.hooper.mean, w.hooper.std)
}

// setStats stores the mean when at least one sample exists and the
// standard deviation when at least two do; otherwise the fields stay
// nil, which downstream readers treat as "no baseline".
func setStats(values []float64, mean, std **float64) {
	if len(values) >= 1 {
		m := analysis.Mean(values)
		*mean = &m
	}
	if len(values) >= 2 {
		s := analysis.Std(values)
		*std = &s
	}
}

func checkInsSince(checkIns []store.WellnessCheckIn, cutoff time.Time) []store.WellnessCheckIn {
	var out []store.WellnessCheckIn
	for _, c := range checkIns {
		if !c.Date.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}
