package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/NoorAlQalb/models"
	"github.com/NoorAlQalb/scoring"
	"github.com/NoorAlQalb/services"
	"github.com/gin-gonic/gin"
)

// GenerateReport asks the report collaborator for a narrative progress
// report over a date range. Service failures surface to the caller; no
// retry here.
// POST /students/:user_profile_id/report
func GenerateReport(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID", "details": err.Error()})
		return
	}
	if !canAccessStudent(c, studentID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No access to this student's records"})
		return
	}

	var body models.ReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := scoring.ParseDateKey(body.Start_Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date", "details": err.Error()})
		return
	}
	if _, err := scoring.ParseDateKey(body.End_Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date", "details": err.Error()})
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

	forAdmin, _ := c.Get("admin")
	studentName := fmt.Sprintf("%s %s", student.First_Name, student.Last_Name)

	report, err := services.GetReportService().GenerateProgressReport(
		c.Request.Context(), studentName, records, body.Start_Date, body.End_Date, forAdmin == true)
	if err != nil {
		log.Printf("Report generation failed for student %d: %v", studentID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
