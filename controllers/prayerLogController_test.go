package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetDailyLog(t *testing.T) {
	tests := []struct {
		name           string
		studentID      string
		date           string
		asAdmin        bool
		ownRecords     bool
		hasRow         bool
		expectedStatus int
	}{
		{
			name:           "student reads own day",
			studentID:      "1",
			date:           "2026-03-10",
			ownRecords:     true,
			hasRow:         true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing day reads as all unset",
			studentID:      "1",
			date:           "2026-03-10",
			ownRecords:     true,
			hasRow:         false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin reads any student",
			studentID:      "1",
			date:           "2026-03-10",
			asAdmin:        true,
			hasRow:         true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "student cannot read another student",
			studentID:      "42",
			date:           "2026-03-10",
			ownRecords:     false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid date",
			studentID:      "1",
			date:           "10-03-2026",
			ownRecords:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid student id",
			studentID:      "abc",
			date:           "2026-03-10",
			ownRecords:     true,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			defer SetupTestClock(t, "2026-03-15 20:00")()

			if tt.expectedStatus == http.StatusOK {
				rows := PrayerLogRows()
				if tt.hasRow {
					AddPrayerLogRow(rows, 1, 1, tt.date,
						[5]string{"ontime", "late", "unset", "unset", "unset"})
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			}

			c, w := SetupTestContext()
			user := MockStudent()
			if tt.asAdmin {
				user = MockAdmin()
			}
			SetAuthenticatedUser(c, user, tt.asAdmin)
			c.Params = []gin.Param{
				{Key: "user_profile_id", Value: tt.studentID},
				{Key: "prayer_date", Value: tt.date},
			}
			c.Request = httptest.NewRequest("GET", "/students/"+tt.studentID+"/prayers/"+tt.date, nil)

			GetDailyLog(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, tt.date, response["prayerDate"])
				assert.Len(t, response["prayers"], 5)

				score := response["score"].(map[string]interface{})
				if tt.hasRow {
					// Past day: fajr ontime, dhuhr late, the rest
					// auto-missed. 10+5-30 = -15, floored percentage.
					assert.Equal(t, float64(-15), score["total"])
					assert.Equal(t, float64(50), score["max"])
					assert.Equal(t, float64(0), score["percentage"])
				} else {
					// Fully elapsed day with no row: all auto-missed.
					assert.Equal(t, float64(-50), score["total"])
				}
			}
		})
	}
}

func TestUpdatePrayerStatus(t *testing.T) {
	tests := []struct {
		name           string
		date           string
		prayer         string
		status         string
		now            string
		hasRow         bool
		expectWrite    bool
		expectedStatus int
	}{
		{
			name:           "log ontime inside open window",
			date:           "2026-03-15",
			prayer:         "dhuhr",
			status:         "ontime",
			now:            "2026-03-15 13:00",
			hasRow:         true,
			expectWrite:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "first write creates the day row",
			date:           "2026-03-14",
			prayer:         "fajr",
			status:         "late",
			now:            "2026-03-15 13:00",
			hasRow:         false,
			expectWrite:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "window not open yet",
			date:           "2026-03-15",
			prayer:         "isha",
			status:         "ontime",
			now:            "2026-03-15 13:00",
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "future date rejected",
			date:           "2026-03-20",
			prayer:         "fajr",
			status:         "ontime",
			now:            "2026-03-15 13:00",
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown prayer type",
			date:           "2026-03-15",
			prayer:         "tahajjud",
			status:         "ontime",
			now:            "2026-03-15 13:00",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown status",
			date:           "2026-03-15",
			prayer:         "dhuhr",
			status:         "done",
			now:            "2026-03-15 13:00",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			defer SetupTestClock(t, tt.now)()

			if tt.expectWrite {
				rows := PrayerLogRows()
				if tt.hasRow {
					AddPrayerLogRow(rows, 1, 1, tt.date,
						[5]string{"unset", "unset", "unset", "unset", "unset"})
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
				mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
			}

			body, _ := json.Marshal(map[string]string{"status": tt.status})

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockStudent(), false)
			c.Params = []gin.Param{
				{Key: "user_profile_id", Value: "1"},
				{Key: "prayer_date", Value: tt.date},
				{Key: "prayer_type", Value: tt.prayer},
			}
			c.Request = httptest.NewRequest("PUT",
				"/students/1/prayers/"+tt.date+"/"+tt.prayer, bytes.NewBuffer(body))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdatePrayerStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectWrite {
				assert.NoError(t, mock.ExpectationsWereMet())

				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				day := response["day"].(map[string]interface{})
				assert.Equal(t, tt.date, day["prayerDate"])
			}
		})
	}
}

func TestResetStudentRecords(t *testing.T) {
	t.Run("admin resets a student", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(UserProfileRows(MockStudent()))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 3))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdmin(), true)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "1"}}
		c.Request = httptest.NewRequest("DELETE", "/students/1/prayers", nil)

		ResetStudentRecords(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown student", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(UserProfileRows())

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdmin(), true)
		c.Params = []gin.Param{{Key: "user_profile_id", Value: "999"}}
		c.Request = httptest.NewRequest("DELETE", "/students/999/prayers", nil)

		ResetStudentRecords(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
