package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetMonthScore(t *testing.T) {
	t.Run("three perfect days", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		// 23:00 on March 3rd: days 1-3 all count, the rest of the month
		// lies in the future.
		defer SetupTestClock(t, "2026-03-03 23:00")()

		rows := PrayerLogRows()
		allOnTime := [5]string{"ontime", "ontime", "ontime", "ontime", "ontime"}
		AddPrayerLogRow(rows, 1, 1, "2026-03-01", allOnTime)
		AddPrayerLogRow(rows, 2, 1, "2026-03-02", allOnTime)
		AddPrayerLogRow(rows, 3, 1, "2026-03-03", allOnTime)
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/score?month=3&year=2026", nil)

		GetMonthScore(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		score := response["score"].(map[string]interface{})
		assert.Equal(t, float64(150), score["total"])
		assert.Equal(t, float64(150), score["max"])
		assert.Equal(t, float64(100), score["percentage"])
		assert.Equal(t, float64(10), score["scoreOutOfTen"])
	})

	t.Run("future month returns the sentinel", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-03 23:00")()

		mock.ExpectQuery("SELECT").WillReturnRows(PrayerLogRows())

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/score?month=4&year=2026", nil)

		GetMonthScore(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		score := response["score"].(map[string]interface{})
		assert.Equal(t, float64(0), score["total"])
		assert.Equal(t, float64(0), score["max"])
		assert.Equal(t, float64(100), score["percentage"])
	})

	t.Run("month out of range", func(t *testing.T) {
		_, _, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/score?month=13&year=2026", nil)

		GetMonthScore(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRangeStats(t *testing.T) {
	t.Run("week of fajr entries", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 20:00")()

		rows := PrayerLogRows()
		for day, key := range map[int]string{
			1: "2026-03-01", 2: "2026-03-02", 3: "2026-03-03",
			4: "2026-03-04", 5: "2026-03-05", 6: "2026-03-06", 7: "2026-03-07",
		} {
			AddPrayerLogRow(rows, day, 1, key,
				[5]string{"ontime", "unset", "unset", "unset", "unset"})
		}
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/stats?start_date=2026-03-01&end_date=2026-03-07", nil)

		GetRangeStats(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		stats := response["stats"].(map[string]interface{})
		total := stats["total"].(map[string]interface{})
		assert.Equal(t, float64(7), total["ontime"])
		assert.Equal(t, float64(0), total["late"])
		byPrayer := stats["byPrayer"].(map[string]interface{})
		fajr := byPrayer["fajr"].(map[string]interface{})
		assert.Equal(t, float64(7), fajr["ontime"])
		assert.Equal(t, float64(0), fajr["missed"])
	})

	t.Run("invalid range", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 20:00")()

		mock.ExpectQuery("SELECT").WillReturnRows(PrayerLogRows())

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/stats?start_date=bogus&end_date=2026-03-07", nil)

		GetRangeStats(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetStudentRisk(t *testing.T) {
	t.Run("empty history caps at fourteen days", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 12:00")()

		mock.ExpectQuery("SELECT").WillReturnRows(PrayerLogRows())

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/risk", nil)

		GetStudentRisk(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		risk := response["risk"].(map[string]interface{})
		assert.Equal(t, true, risk["isAtRisk"])
		assert.Equal(t, float64(14), risk["consecutiveInactiveDays"])
	})

	t.Run("active yesterday is not at risk", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 12:00")()

		rows := PrayerLogRows()
		AddPrayerLogRow(rows, 1, 1, "2026-03-14",
			[5]string{"unset", "late", "unset", "unset", "unset"})
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStudent(), false)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/students/1/risk", nil)

		GetStudentRisk(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		risk := response["risk"].(map[string]interface{})
		assert.Equal(t, false, risk["isAtRisk"])
		assert.Equal(t, float64(0), risk["consecutiveInactiveDays"])
	})
}

func TestGetAtRiskStudents(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	defer SetupTestClock(t, "2026-03-15 12:00")()

	active := MockStudent()
	inactive := MockStudent()
	inactive.User_Profile_ID = 3
	inactive.Username = "student3"
	mock.ExpectQuery("SELECT").WillReturnRows(UserProfileRows(active, inactive))

	// Student 1 prayed yesterday; student 3 has an empty history.
	activeRows := PrayerLogRows()
	AddPrayerLogRow(activeRows, 1, 1, "2026-03-14",
		[5]string{"ontime", "unset", "unset", "unset", "unset"})
	mock.ExpectQuery("SELECT").WillReturnRows(activeRows)
	mock.ExpectQuery("SELECT").WillReturnRows(PrayerLogRows())

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdmin(), true)
	c.Request = httptest.NewRequest("GET", "/risk/students", nil)

	GetAtRiskStudents(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		AtRisk []struct {
			UserProfileID int `json:"userProfileId"`
			Risk          struct {
				IsAtRisk                bool `json:"isAtRisk"`
				ConsecutiveInactiveDays int  `json:"consecutiveInactiveDays"`
			} `json:"risk"`
		} `json:"atRisk"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.AtRisk, 1)
	assert.Equal(t, 3, response.AtRisk[0].UserProfileID)
	assert.Equal(t, 14, response.AtRisk[0].Risk.ConsecutiveInactiveDays)
}

func TestNudgeStudent(t *testing.T) {
	t.Run("student not at risk", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 12:00")()

		mock.ExpectQuery("SELECT").WillReturnRows(UserProfileRows(MockStudent()))
		rows := PrayerLogRows()
		AddPrayerLogRow(rows, 1, 1, "2026-03-14",
			[5]string{"ontime", "unset", "unset", "unset", "unset"})
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdmin(), true)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("POST", "/students/1/risk/nudge", nil)

		NudgeStudent(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unconfigured channels report their errors", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		defer SetupTestClock(t, "2026-03-15 12:00")()

		mock.ExpectQuery("SELECT").WillReturnRows(UserProfileRows(MockStudent()))
		mock.ExpectQuery("SELECT").WillReturnRows(PrayerLogRows())

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdmin(), true)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("POST", "/students/1/risk/nudge", nil)

		NudgeStudent(c)

		// The nudge itself succeeds; each collaborator failure is
		// reported per channel instead of being swallowed.
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		channels := response["channels"].(map[string]interface{})
		assert.NotEqual(t, "sent", channels["push"])
		assert.NotEqual(t, "sent", channels["email"])
	})
}
