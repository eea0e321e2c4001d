package controllers

import (
	"fmt"

	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/models"
	"github.com/NoorAlQalb/scoring"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// engine is the shared scoring engine. main wires it with the system
// clock; tests swap in one with a fixed clock.
var engine = scoring.NewEngine(scoring.SystemClock{})

func SetEngine(e *scoring.Engine) { engine = e }

func currentUser(c *gin.Context) models.UserProfile {
	return c.MustGet("currentUser").(models.UserProfile)
}

// canAccessStudent allows admins anywhere and students on their own
// records only.
func canAccessStudent(c *gin.Context, studentID int) bool {
	if isAdmin, _ := c.Get("admin"); isAdmin == true {
		return true
	}
	return currentUser(c).User_Profile_ID == studentID
}

// loadRecordSet reads every prayer_log row of a student into the
// engine's record shape. A student with no rows yields an empty set,
// which the engine reads as all-unset days.
func loadRecordSet(studentID int) (scoring.RecordSet, error) {
	var rows []models.PrayerLog
	err := initializers.DB.From("prayer_log").
		Where(goqu.C("user_profile_id").Eq(studentID)).
		ScanStructs(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load prayer log: %w", err)
	}

	records := scoring.RecordSet{}
	for _, row := range rows {
		records[row.Prayer_Date] = row.DayRecord()
	}
	return records, nil
}

// loadDayRecord reads a single student-day. Missing rows return nil,
// which reads as all-unset; absence is never an error.
func loadDayRecord(studentID int, dateKey string) (scoring.DayRecord, error) {
	var row models.PrayerLog
	found, err := initializers.DB.From("prayer_log").
		Where(goqu.And(
			goqu.C("user_profile_id").Eq(studentID),
			goqu.C("prayer_date").Eq(dateKey),
		)).
		ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to load prayer log for %s: %w", dateKey, err)
	}
	if !found {
		return nil, nil
	}
	return row.DayRecord(), nil
}

func loadStudent(studentID int) (models.UserProfile, bool, error) {
	var student models.UserProfile
	found, err := initializers.DB.From("user_profile").Select("*").
		Where(goqu.C("user_profile_id").Eq(studentID)).
		ScanStruct(&student)
	return student, found, err
}

// dailyLogResponse assembles the per-prayer view of one day: stored and
// effective statuses, window lock states and the day score.
func dailyLogResponse(record scoring.DayRecord, dateKey string) models.DailyLogResponse {
	entries := make([]models.PrayerEntry, 0, len(scoring.PrayerOrder))
	for _, p := range scoring.PrayerOrder {
		stored := record.StatusFor(p)
		entries = append(entries, models.PrayerEntry{
			Prayer:          p,
			StoredStatus:    stored,
			EffectiveStatus: engine.EffectiveStatus(stored, dateKey, p),
			WindowState:     engine.WindowStateFor(dateKey, p),
		})
	}
	return models.DailyLogResponse{
		PrayerDate: dateKey,
		Prayers:    entries,
		Score:      engine.DayScore(record, dateKey),
	}
}
