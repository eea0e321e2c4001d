package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin gates teacher-only routes. Runs after CheckAuth.
func CheckAdmin(c *gin.Context) {
	if isAdmin, _ := c.Get("admin"); isAdmin != true {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access required"})
	}
}
