package scoring

import (
	"math"
	"time"
)

// ScoreRule holds the point values for one prayer type. Unset always
// scores zero.
type ScoreRule struct {
	OnTime int
	Late   int
	Missed int
}

var defaultRule = ScoreRule{OnTime: 10, Late: 5, Missed: -10}

// Engine computes scores, statistics and risk over record sets. It is
// stateless apart from its injected clock and scoring rules, so a
// single instance is safe for concurrent use.
type Engine struct {
	clock Clock
	rules map[PrayerType]ScoreRule
}

// NewEngine returns an engine using the default scoring rules.
func NewEngine(clock Clock) *Engine {
	return &Engine{clock: clock, rules: map[PrayerType]ScoreRule{}}
}

// WithRule overrides the scoring rule for one prayer type.
func (e *Engine) WithRule(p PrayerType, rule ScoreRule) *Engine {
	e.rules[p] = rule
	return e
}

func (e *Engine) ruleFor(p PrayerType) ScoreRule {
	if r, ok := e.rules[p]; ok {
		return r
	}
	return defaultRule
}

// EffectiveStatus returns the status used for scoring and display: the
// stored status as-is, unless it is unset and the window has elapsed,
// in which case the prayer counts as missed. Pure; the stored record is
// never mutated by this inference.
func (e *Engine) EffectiveStatus(stored PrayerStatus, dateKey string, p PrayerType) PrayerStatus {
	if stored == StatusUnset && e.HasWindowElapsed(dateKey, p) {
		return StatusMissed
	}
	return stored
}

// PointsFor looks up the point value of a status for a prayer type.
func (e *Engine) PointsFor(p PrayerType, status PrayerStatus) int {
	rule := e.ruleFor(p)
	switch status {
	case StatusOnTime:
		return rule.OnTime
	case StatusLate:
		return rule.Late
	case StatusMissed:
		return rule.Missed
	}
	return 0
}

// MaxPointsFor is the best achievable value for a prayer type.
func (e *Engine) MaxPointsFor(p PrayerType) int {
	return e.ruleFor(p).OnTime
}

// emptyScore is returned when no prayer instance qualifies: a day (or
// month) with nothing due yet scores as perfect rather than empty,
// which also keeps the percentage division well-defined.
func emptyScore() Score {
	return Score{Total: 0, Max: 0, Percentage: 100, OutOfTen: 10}
}

func finishScore(total, max int, breakdown []ScoreEntry) Score {
	if max == 0 {
		return emptyScore()
	}
	pct := int(math.Round(float64(total) / float64(max) * 100))
	if pct < 0 {
		pct = 0 // raw points may go negative, the percentage never does
	}
	return Score{
		Total:      total,
		Max:        max,
		Percentage: pct,
		OutOfTen:   float64(pct) / 10,
		Breakdown:  breakdown,
	}
}

// DayScore scores a single calendar day. A prayer instance qualifies
// only once its window has elapsed or a status was explicitly logged;
// not-yet-due untouched instances contribute neither points nor max.
func (e *Engine) DayScore(record DayRecord, dateKey string) Score {
	total := 0
	max := 0
	var breakdown []ScoreEntry

	for _, p := range PrayerOrder {
		stored := record.StatusFor(p)
		elapsed := e.HasWindowElapsed(dateKey, p)
		logged := stored != StatusUnset
		if !elapsed && !logged {
			continue
		}

		effective := stored
		if stored == StatusUnset && elapsed {
			effective = StatusMissed
		}

		points := e.PointsFor(p, effective)
		total += points
		max += e.MaxPointsFor(p)
		breakdown = append(breakdown, ScoreEntry{Prayer: p, Status: effective, Points: points})
	}

	return finishScore(total, max, breakdown)
}

// MonthScore aggregates day scores over a calendar month, stopping
// before the first day strictly after today. No per-day breakdown.
func (e *Engine) MonthScore(records RecordSet, month time.Month, year int) Score {
	todayKey := e.clock.TodayKey()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	total := 0
	max := 0
	for day := 1; day <= lastDay; day++ {
		dateKey := FormatDateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		if dateKey > todayKey {
			break
		}
		dayScore := e.DayScore(records.Day(dateKey), dateKey)
		total += dayScore.Total
		max += dayScore.Max
	}

	return finishScore(total, max, nil)
}
