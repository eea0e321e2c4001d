package models

import (
	"time"

	"github.com/NoorAlQalb/scoring"
)

// PrayerLog is one student-day row. Statuses are stored denormalized in
// five columns so a day is always written as a whole row; the unique
// key on (user_profile_id, prayer_date) makes the upsert a whole-value
// replacement.
type PrayerLog struct {
	Prayer_Log_ID   int       `json:"prayerLogId" db:"prayer_log_id" goqu:"skipinsert"`
	User_Profile_ID int       `json:"userProfileId" db:"user_profile_id"`
	Prayer_Date     string    `json:"prayerDate" db:"prayer_date"`
	Fajr            string    `json:"fajr" db:"fajr"`
	Dhuhr           string    `json:"dhuhr" db:"dhuhr"`
	Asr             string    `json:"asr" db:"asr"`
	Maghrib         string    `json:"maghrib" db:"maghrib"`
	Isha            string    `json:"isha" db:"isha"`
	Datetime_Create time.Time `json:"datetimeCreate" db:"datetime_create" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" db:"datetime_update" goqu:"skipinsert"`
}

// DayRecord converts the row into the engine's record shape. Unknown or
// empty column values read as unset rather than failing: historic rows
// never block scoring.
func (l PrayerLog) DayRecord() scoring.DayRecord {
	record := scoring.DayRecord{}
	for prayer, raw := range map[scoring.PrayerType]string{
		scoring.Fajr:    l.Fajr,
		scoring.Dhuhr:   l.Dhuhr,
		scoring.Asr:     l.Asr,
		scoring.Maghrib: l.Maghrib,
		scoring.Isha:    l.Isha,
	} {
		status, err := scoring.ParseStatus(raw)
		if err != nil {
			status = scoring.StatusUnset
		}
		record[prayer] = status
	}
	return record
}

// NewPrayerLog builds a row for a student-day from an engine record.
func NewPrayerLog(userID int, dateKey string, record scoring.DayRecord) PrayerLog {
	return PrayerLog{
		User_Profile_ID: userID,
		Prayer_Date:     dateKey,
		Fajr:            string(record.StatusFor(scoring.Fajr)),
		Dhuhr:           string(record.StatusFor(scoring.Dhuhr)),
		Asr:             string(record.StatusFor(scoring.Asr)),
		Maghrib:         string(record.StatusFor(scoring.Maghrib)),
		Isha:            string(record.StatusFor(scoring.Isha)),
	}
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// PrayerEntry is one prayer in the daily log response: the stored
// status plus the derived pieces the client needs to render and lock
// its controls.
type PrayerEntry struct {
	Prayer          scoring.PrayerType   `json:"prayerType"`
	StoredStatus    scoring.PrayerStatus `json:"storedStatus"`
	EffectiveStatus scoring.PrayerStatus `json:"effectiveStatus"`
	WindowState     scoring.WindowState  `json:"windowState"`
}

type DailyLogResponse struct {
	PrayerDate string        `json:"prayerDate"`
	Prayers    []PrayerEntry `json:"prayers"`
	Score      scoring.Score `json:"score"`
}

type ReportRequest struct {
	Start_Date string `json:"startDate" binding:"required"`
	End_Date   string `json:"endDate" binding:"required"`
}

type StudentRisk struct {
	UserProfileID int                `json:"userProfileId"`
	Username      string             `json:"username"`
	Name          string             `json:"name"`
	Risk          scoring.RiskStatus `json:"risk"`
}
