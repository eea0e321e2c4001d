package controllers

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/models"
	"github.com/NoorAlQalb/scoring"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB swaps the global DB for a sqlmock-backed one.
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	originalDB := initializers.DB
	initializers.DB = goquDB

	cleanup := func() {
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestClock freezes the controllers' engine at the given local
// date and time ("2006-01-02 15:04"), restoring the system clock
// engine afterwards.
func SetupTestClock(t *testing.T, datetime string) func() {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", datetime)
	if err != nil {
		t.Fatalf("bad test datetime %q: %v", datetime, err)
	}

	original := engine
	SetEngine(scoring.NewEngine(scoring.NewFixedClock(ts)))
	return func() { SetEngine(original) }
}

// SetupTestContext creates a test Gin context with a response recorder.
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser simulates what the CheckAuth middleware does.
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile, isAdmin bool) {
	c.Set("currentUser", user)
	c.Set("admin", isAdmin)
}
