package api

import (
	"islands/internal/domain"     // Importing domain models
	"islands/internal/middleware" // Session handling
	"islands/internal/service"    // Account operations
	"net/http"                    // HTTP status codes
	"strings"                     // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// AccountRequest is the signup and settings form
type AccountRequest struct {
	FirstName string `form:"firstName" binding:"required"`   // First name
	LastName  string `form:"lastName" binding:"required"`    // Last name
	Email     string `form:"email" binding:"required,email"` // Email address
	Password  string `form:"password" binding:"required"`    // Plain password, hashed before storage
}

func (r AccountRequest) input() service.AccountInput {
	return service.AccountInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Password: r.Password}
}

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"` // Email address
	Password string `form:"password" binding:"required"`    // Plain password
}

// DeleteRequest carries the confirmation checkbox of destructive forms
type DeleteRequest struct {
	Delete string `form:"delete"` // Checkbox value, empty when unticked
}

// Confirmed reports whether the checkbox was ticked
func (r DeleteRequest) Confirmed() bool {
	switch strings.ToLower(strings.TrimSpace(r.Delete)) {
	case "", "false", "0", "off":
		return false
	}
	return true
}

// IndexHandler renders the public landing page
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "main", gin.H{"title": "Welcome to Islands of Ireland"})
	}
}

// ShowSignupHandler renders the signup form
func ShowSignupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "signup", gin.H{"title": "Sign up for Islands of Ireland"})
	}
}

// ShowLoginHandler renders the login form
func ShowLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login", gin.H{"title": "Login to Islands of Ireland"})
	}
}

// SignupHandler creates an account and starts its session
func SignupHandler(accounts *service.Accounts, session *middleware.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AccountRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			req.Password = "" // Never echo the password back
			renderInvalid(c, "signup", gin.H{"title": "Sign up error", "payload": req}, err)
			return
		}
		user, err := accounts.Signup(c.Request.Context(), req.input())
		if err != nil {
			req.Password = ""
			renderFailure(c, "signup", gin.H{"title": "Sign up error", "payload": req}, err)
			return
		}
		if err := session.Set(c, user.ID); err != nil {
			renderFailure(c, "signup", gin.H{"title": "Sign up error"}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User signed up")
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

// LoginHandler authenticates a user and starts the session
func LoginHandler(accounts *service.Accounts, session *middleware.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			req.Password = ""
			renderInvalid(c, "login", gin.H{"title": "Sign in error", "payload": req}, err)
			return
		}
		user, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": strings.ToLower(req.Email), // Attempted email
				"error": err.Error(),                // Failure reason
			}).Warn("Login failed")
			req.Password = ""
			renderFailure(c, "login", gin.H{"title": "Sign in error", "payload": req}, err)
			return
		}
		if err := session.Set(c, user.ID); err != nil {
			renderFailure(c, "login", gin.H{"title": "Sign in error"}, err)
			return
		}
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

// settingsPayload is the form state shown on the settings page
func settingsPayload(u *domain.User) AccountRequest {
	if u == nil {
		return AccountRequest{}
	}
	return AccountRequest{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// ShowSettingsHandler renders the settings of the authenticated user
func ShowSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.User(c) // Loaded by LoadUser
		if user == nil {
			renderFailure(c, "login", gin.H{"title": "Login to Islands of Ireland"}, domain.ErrUserNotFound)
			return
		}
		c.HTML(http.StatusOK, "settings", gin.H{"title": "User Settings", "user": user, "payload": settingsPayload(user)})
	}
}

// UpdateSettingsHandler overwrites the authenticated user's details
func UpdateSettingsHandler(accounts *service.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.User(c)
		var req AccountRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			req.Password = ""
			renderInvalid(c, "settings", gin.H{"title": "Update settings error", "user": user, "payload": req}, err)
			return
		}
		updated, err := accounts.UpdateSettings(c.Request.Context(), user.ID, req.input())
		if err != nil {
			req.Password = ""
			renderFailure(c, "settings", gin.H{"title": "Update settings error", "user": user, "payload": req}, err)
			return
		}
		logrus.WithField("user_id", updated.ID).Info("User settings updated")
		c.Redirect(http.StatusFound, "/settings")
	}
}

// DeleteAccountHandler removes the authenticated user's account once confirmed
func DeleteAccountHandler(accounts *service.Accounts, session *middleware.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.User(c)
		var req DeleteRequest
		_ = c.ShouldBind(&req) // An unticked checkbox is simply absent
		data := gin.H{"title": "User Settings", "user": user, "payload": settingsPayload(user)}
		if err := accounts.DeleteAccount(c.Request.Context(), user.ID, req.Confirmed()); err != nil {
			renderFailure(c, "settings", data, err)
			return
		}
		session.Clear(c)
		logrus.WithField("user_id", user.ID).Info("User account deleted")
		c.HTML(http.StatusOK, "login", gin.H{
			"title":   "Login to Islands of Ireland",
			"success": "Your account has been deleted successfully",
		})
	}
}

// LogoutHandler clears the session and returns to the landing page
func LogoutHandler(session *middleware.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Clear(c)
		c.Redirect(http.StatusFound, "/")
	}
}
