package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// UserLogin exchanges credentials for a signed JWT carrying the user's
// role.
func UserLogin(c *gin.Context) {
	var login models.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.UserProfile
	found, err := initializers.DB.From("user_profile").Select("*").
		Where(goqu.C("username").Eq(login.Username)).
		ScanStruct(&dbUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	role := "student"
	if dbUser.Admin {
		role = "admin"
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   dbUser.User_Profile_ID,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"role": role,
	})
	token, err := claims.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

// StudentSignup creates a student account. Admin only; students never
// self-register.
func StudentSignup(c *gin.Context) {
	var signup models.StudentSignup
	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := initializers.DB.From("user_profile").
		Where(goqu.C("username").Eq(signup.Username)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	admin := currentUser(c)
	newStudent := models.UserProfile{
		Username:   signup.Username,
		Password:   string(passwordHash),
		Email:      signup.Email,
		First_Name: signup.First_Name,
		Last_Name:  signup.Last_Name,
		Admin:      false,
		Created_By: admin.User_Profile_ID,
		Updated_By: admin.User_Profile_ID,
	}

	insert := initializers.DB.Insert("user_profile").Rows(newStudent).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Printf("Failed to create student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Student created successfully.",
		"username": signup.Username,
	})
}

// GetStudents lists every student account for the admin roster view.
func GetStudents(c *gin.Context) {
	var students []models.UserProfile
	err := initializers.DB.From("user_profile").
		Where(goqu.C("admin").IsFalse()).
		Order(goqu.C("username").Asc()).
		ScanStructs(&students)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func GetUserProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// CheckUsernameAvailability lets the admin form validate before submit.
func CheckUsernameAvailability(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	count, err := initializers.DB.From("user_profile").
		Where(goqu.C("username").Eq(username)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": count == 0})
}

// StorePushToken registers a device token for nudge notifications.
func StorePushToken(c *gin.Context) {
	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)

	upsert := initializers.DB.Insert("user_push_tokens").
		Rows(goqu.Record{
			"user_profile_id": user.User_Profile_ID,
			"push_token":      req.PushToken,
			"platform":        req.Platform,
		}).
		OnConflict(goqu.DoUpdate("user_profile_id, push_token", goqu.Record{
			"platform": req.Platform,
		})).
		Executor()
	if _, err := upsert.Exec(); err != nil {
		log.Printf("Failed to store push token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored."})
}
