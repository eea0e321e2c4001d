package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/NoorAlQalb/controllers"
	"github.com/NoorAlQalb/initializers"
	"github.com/NoorAlQalb/middlewares"
	"github.com/NoorAlQalb/scoring"
	"github.com/NoorAlQalb/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()

	engine := scoring.NewEngine(scoring.SystemClock{})
	controllers.SetEngine(engine)

	services.InitReportService(engine)
	services.InitEmailService()
	services.InitPushNotificationService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.GET("/check-username", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.CheckUsernameAvailability)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		// daily log routes
		auth.GET("/students/:user_profile_id/prayers/:prayer_date", controllers.GetDailyLog)
		auth.PUT("/students/:user_profile_id/prayers/:prayer_date/:prayer_type", controllers.UpdatePrayerStatus)

		// scoring and statistics routes
		auth.GET("/students/:user_profile_id/score", controllers.GetMonthScore)
		auth.GET("/students/:user_profile_id/stats", controllers.GetRangeStats)
		auth.GET("/students/:user_profile_id/risk", controllers.GetStudentRisk)

		// narrative report route
		auth.POST("/students/:user_profile_id/report", controllers.GenerateReport)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.POST("/students", controllers.StudentSignup)
			admin.GET("/students", controllers.GetStudents)
			admin.GET("/risk/students", controllers.GetAtRiskStudents)
			admin.POST("/students/:user_profile_id/risk/nudge", controllers.NudgeStudent)
			admin.DELETE("/students/:user_profile_id/prayers", controllers.ResetStudentRecords)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
