package scoring

import (
	"fmt"
	"time"
)

// PrayerType identifies one of the five daily prayers.
type PrayerType string

const (
	Fajr    PrayerType = "fajr"
	Dhuhr   PrayerType = "dhuhr"
	Asr     PrayerType = "asr"
	Maghrib PrayerType = "maghrib"
	Isha    PrayerType = "isha"
)

// PrayerOrder is the canonical display and breakdown order.
var PrayerOrder = []PrayerType{Fajr, Dhuhr, Asr, Maghrib, Isha}

// ArabicNames maps each prayer to its Arabic name, used by the report prompt.
var ArabicNames = map[PrayerType]string{
	Fajr:    "الفجر",
	Dhuhr:   "الظهر",
	Asr:     "العصر",
	Maghrib: "المغرب",
	Isha:    "العشاء",
}

func ParsePrayerType(s string) (PrayerType, error) {
	switch PrayerType(s) {
	case Fajr, Dhuhr, Asr, Maghrib, Isha:
		return PrayerType(s), nil
	}
	return "", fmt.Errorf("unknown prayer type: %q", s)
}

// PrayerStatus is the logged outcome for one prayer instance.
// StatusUnset means no decision has been recorded yet.
type PrayerStatus string

const (
	StatusOnTime PrayerStatus = "ontime"
	StatusLate   PrayerStatus = "late"
	StatusMissed PrayerStatus = "missed"
	StatusUnset  PrayerStatus = "unset"
)

func ParseStatus(s string) (PrayerStatus, error) {
	switch PrayerStatus(s) {
	case StatusOnTime, StatusLate, StatusMissed, StatusUnset:
		return PrayerStatus(s), nil
	}
	return "", fmt.Errorf("unknown prayer status: %q", s)
}

// DayRecord holds the stored statuses for a single calendar day.
type DayRecord map[PrayerType]PrayerStatus

// StatusFor returns the stored status for a prayer, defaulting to
// StatusUnset for any prayer the record has no entry for. This is the
// lazy back-fill: records written before a prayer type existed still
// read as unset for it.
func (r DayRecord) StatusFor(p PrayerType) PrayerStatus {
	if r == nil {
		return StatusUnset
	}
	if s, ok := r[p]; ok && s != "" {
		return s
	}
	return StatusUnset
}

// RecordSet is an individual's full history, keyed by "YYYY-MM-DD".
type RecordSet map[string]DayRecord

// Day returns the record for a date, which may be nil. A nil DayRecord
// reads as all-unset through StatusFor.
func (rs RecordSet) Day(dateKey string) DayRecord {
	if rs == nil {
		return nil
	}
	return rs[dateKey]
}

// DateKeyFormat is the local calendar date layout used everywhere.
const DateKeyFormat = "2006-01-02"

func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// ScoreEntry is one line of a day score breakdown.
type ScoreEntry struct {
	Prayer PrayerType   `json:"prayerType"`
	Status PrayerStatus `json:"status"`
	Points int          `json:"points"`
}

// Score is a derived point summary for a day or a month. Breakdown is
// only populated for single-day scores.
type Score struct {
	Total      int          `json:"total"`
	Max        int          `json:"max"`
	Percentage int          `json:"percentage"`
	OutOfTen   float64      `json:"scoreOutOfTen"`
	Breakdown  []ScoreEntry `json:"breakdown,omitempty"`
}

// StatusCounts are categorical tallies used by range statistics.
type StatusCounts struct {
	OnTime int `json:"ontime"`
	Late   int `json:"late"`
	Missed int `json:"missed"`
}

// RangeStats aggregates effective statuses over a date range.
type RangeStats struct {
	Total    StatusCounts                `json:"total"`
	ByPrayer map[PrayerType]StatusCounts `json:"byPrayer"`
}

// RiskStatus reports a trailing run of fully inactive days.
type RiskStatus struct {
	AtRisk                  bool `json:"isAtRisk"`
	ConsecutiveInactiveDays int  `json:"consecutiveInactiveDays"`
}
