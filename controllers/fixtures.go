package controllers

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NoorAlQalb/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockStudent creates a sample student profile for testing
func MockStudent() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "student1",
		First_Name:      "Amina",
		Last_Name:       "Hassan",
		Email:           "amina@example.com",
		Admin:           false,
		Created_By:      2,
		Updated_By:      2,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockStudentWithPassword creates a student with a bcrypt hashed
// password. The plain password is "password123".
func MockStudentWithPassword() models.UserProfile {
	student := MockStudent()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	student.Password = string(hashed)
	return student
}

// MockAdmin creates a sample teacher/admin profile for testing
func MockAdmin() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "teacher",
		First_Name:      "Head",
		Last_Name:       "Teacher",
		Email:           "teacher@example.com",
		Admin:           true,
		Created_By:      2,
		Updated_By:      2,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

var prayerLogColumns = []string{
	"prayer_log_id", "user_profile_id", "prayer_date",
	"fajr", "dhuhr", "asr", "maghrib", "isha",
	"datetime_create", "datetime_update",
}

// PrayerLogRows builds a sqlmock result over the prayer_log columns.
func PrayerLogRows() *sqlmock.Rows {
	return sqlmock.NewRows(prayerLogColumns)
}

// AddPrayerLogRow appends one student-day row with the given statuses
// in prayer order.
func AddPrayerLogRow(rows *sqlmock.Rows, id, userID int, date string, statuses [5]string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, userID, date,
		statuses[0], statuses[1], statuses[2], statuses[3], statuses[4],
		now, now)
}

var userProfileColumns = []string{
	"user_profile_id", "username", "password", "email",
	"first_name", "last_name", "admin",
	"created_by", "datetime_create", "updated_by", "datetime_update",
}

// UserProfileRows builds a sqlmock result over the user_profile columns.
func UserProfileRows(users ...models.UserProfile) *sqlmock.Rows {
	rows := sqlmock.NewRows(userProfileColumns)
	for _, u := range users {
		rows.AddRow(u.User_Profile_ID, u.Username, u.Password, u.Email,
			u.First_Name, u.Last_Name, u.Admin,
			u.Created_By, u.Datetime_Create, u.Updated_By, u.Datetime_Update)
	}
	return rows
}
