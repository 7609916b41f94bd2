package middleware

import (
	"islands/internal/utils" // Session token utilities
	"net/http"               // HTTP status codes
	"time"                   // Cookie lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "userID"

// Session issues and checks the signed session cookie
type Session struct {
	CookieName string        // Cookie name
	Secret     string        // Token signing secret
	TTL        time.Duration // Cookie and token lifetime
	Secure     bool          // Send cookie over HTTPS only
}

// Set establishes the session for userID on the response
func (s *Session) Set(c *gin.Context, userID uint) error {
	token, err := utils.GenerateSessionToken(userID, s.Secret, s.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
	return nil
}

// Clear expires the session cookie
func (s *Session) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, "", -1, "/", "", s.Secure, true)
}

// RequireAuth validates the session cookie and redirects to the landing page when it is
// missing or invalid. On success the user ID is stored in the context.
func (s *Session) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(s.CookieName) // Read the session cookie
		if err != nil || tokenStr == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		claims, err := utils.ParseSessionToken(tokenStr, s.Secret)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path, // Requested path
				"error": err.Error(),        // Parse failure
			}).Warn("Rejected session cookie")
			s.Clear(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store userID in context
		c.Next()                        // Proceed to the next handler
	}
}

// UserID returns the authenticated user ID stored by RequireAuth
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
