package middleware

import (
	"errors"                  // Error comparison
	"islands/internal/domain" // Importing domain models
	"net/http"                // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// UserKey is the gin context key holding the authenticated *domain.User
const UserKey = "user"

// LoadUser resolves the authenticated user ID to its record on each request.
// A session for a user that no longer exists is cleared.
func LoadUser(db *gorm.DB, session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := UserID(c) // Get userID from context
		if !exists {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		var user domain.User // Fetch user from database
		err := db.WithContext(c.Request.Context()).First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account was deleted while the cookie was still valid
			session.Clear(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load user")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(UserKey, &user)
		c.Next()
	}
}

// User returns the record stored by LoadUser
func User(c *gin.Context) *domain.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
