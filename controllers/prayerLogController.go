package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/models"
	"github.com/NoorAlQalb/scoring"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// GetDailyLog returns the stored and effective statuses, window states
// and day score for one student-day.
// GET /students/:user_profile_id/prayers/:prayer_date
func GetDailyLog(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	dateKey := c.Param("prayer_date")
	if _, err := scoring.ParseDateKey(dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	record, err := loadDayRecord(studentID, dateKey)
	if err != nil {
		log.Printf("Failed to fetch daily log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily log"})
		return
	}

	c.JSON(http.StatusOK, dailyLogResponse(record, dateKey))
}

// UpdatePrayerStatus writes one prayer's status for a student-day. The
// whole day row is replaced in a single upsert.
// PUT /students/:user_profile_id/prayers/:prayer_date/:prayer_type
func UpdatePrayerStatus(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	dateKey := c.Param("prayer_date")
	if _, err := scoring.ParseDateKey(dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	prayer, err := scoring.ParsePrayerType(c.Param("prayer_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer type", "details": err.Error()})
		return
	}

	var body models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := scoring.ParseStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "details": err.Error()})
		return
	}

	if engine.WindowStateFor(dateKey, prayer) == scoring.WindowFuture {
		c.JSON(http.StatusConflict, gin.H{"error": "Prayer window has not opened yet"})
		return
	}

	record, err := loadDayRecord(studentID, dateKey)
	if err != nil {
		log.Printf("Failed to fetch daily log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily log"})
		return
	}
	if record == nil {
		record = scoring.DayRecord{}
	}
	record[prayer] = status

	row := models.NewPrayerLog(studentID, dateKey, record)
	upsert := initializers.DB.Insert("prayer_log").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_profile_id, prayer_date", goqu.Record{
			"fajr":            row.Fajr,
			"dhuhr":           row.Dhuhr,
			"asr":             row.Asr,
			"maghrib":         row.Maghrib,
			"isha":            row.Isha,
			"datetime_update": goqu.L("NOW()"),
		})).
		Executor()
	if _, err := upsert.Exec(); err != nil {
		log.Printf("Failed to save prayer status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prayer status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prayer status updated.",
		"day":     dailyLogResponse(record, dateKey),
	})
}

// ResetStudentRecords deletes a student's entire prayer history.
// DELETE /students/:user_profile_id/prayers
func ResetStudentRecords(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}

	_, found, err := loadStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	del := initializers.DB.Delete("prayer_log").
		Where(goqu.C("user_profile_id").Eq(studentID)).
		Executor()
	if _, err := del.Exec(); err != nil {
		log.Printf("Failed to reset records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student records reset."})
}
