package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/models"
	"github.com/NoorAlQalb/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// GetMonthScore aggregates a student's score over one calendar month.
// GET /students/:user_profile_id/score?month=3&year=2026
func GetMonthScore(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	records, err := loadRecordSet(studentID)
	if err != nil {
		log.Printf("Failed to load records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"year":  year,
		"score": engine.MonthScore(records, time.Month(month), year),
	})
}

// GetRangeStats returns categorical on-time/late/missed counts over an
// inclusive date range.
// GET /students/:user_profile_id/stats?start_date=...&end_date=...
func GetRangeStats(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	records, err := loadRecordSet(studentID)
	if err != nil {
		log.Printf("Failed to load records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	stats, err := engine.RangeStats(records, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetStudentRisk reports the trailing inactivity streak for one student.
// GET /students/:user_profile_id/risk
func GetStudentRisk(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	records, err := loadRecordSet(studentID)
	if err != nil {
		log.Printf("Failed to load records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"risk": engine.CheckRisk(records)})
}

// GetAtRiskStudents scans every student and returns those whose
// inactivity streak crossed the threshold.
// GET /risk/students (admin)
func GetAtRiskStudents(c *gin.Context) {
	var students []models.UserProfile
	err := initializers.DB.From("user_profile").
		Where(goqu.C("admin").IsFalse()).
		Order(goqu.C("user_profile_id").Asc()).
		ScanStructs(&students)
	if err != nil {
		log.Printf("Failed to load students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load students"})
		return
	}

	atRisk := []models.StudentRisk{}
	for _, student := range students {
		records, err := loadRecordSet(student.User_Profile_ID)
		if err != nil {
			log.Printf("Failed to load records for student %d: %v", student.User_Profile_ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
			return
		}

		risk := engine.CheckRisk(records)
		if risk.AtRisk {
			atRisk = append(atRisk, models.StudentRisk{
				UserProfileID: student.User_Profile_ID,
				Username:      student.Username,
				Name:          fmt.Sprintf("%s %s", student.First_Name, student.Last_Name),
				Risk:          risk,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"atRisk": atRisk})
}

// NudgeStudent sends an encouragement push to an at-risk student and an
// alert email to the configured teacher address.
// POST /students/:user_profile_id/risk/nudge (admin)
func NudgeStudent(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}

	student, found, err := loadStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	records, err := loadRecordSet(studentID)
	if err != nil {
		log.Printf("Failed to load records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	risk := engine.CheckRisk(records)
	if !risk.AtRisk {
		c.JSON(http.StatusConflict, gin.H{"error": "Student is not at risk", "risk": risk})
		return
	}

	studentName := fmt.Sprintf("%s %s", student.First_Name, student.Last_Name)
	channels := gin.H{}

	if err := services.GetPushNotificationService().SendNotificationToUser(studentID, services.NotificationPayload{
		Title: "We miss you",
		Body:  "Your prayer log has been quiet for a few days. One small step today counts.",
	}); err != nil {
		log.Printf("Push nudge failed for student %d: %v", studentID, err)
		channels["push"] = err.Error()
	} else {
		channels["push"] = "sent"
	}

	alertEmail := os.Getenv("ADMIN_ALERT_EMAIL")
	if alertEmail == "" {
		channels["email"] = "ADMIN_ALERT_EMAIL not configured"
	} else if err := services.GetEmailService().SendRiskAlertEmail(alertEmail, studentName, risk.ConsecutiveInactiveDays); err != nil {
		log.Printf("Email alert failed for student %d: %v", studentID, err)
		channels["email"] = err.Error()
	} else {
		channels["email"] = "sent"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Nudge processed.",
		"risk":     risk,
		"channels": channels,
	})
}
