package api

import (
	"errors"                      // Error kind checks
	"islands/internal/domain"     // Domain errors
	"islands/internal/validation" // Field error messages
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// statusFor maps an error kind to the status of the re-rendered view
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// renderInvalid re-renders a form view with every binding failure
func renderInvalid(c *gin.Context, view string, data gin.H, bindErr error) {
	data["errors"] = validation.Errors(bindErr)
	c.HTML(http.StatusBadRequest, view, data)
}

// renderFailure re-renders a view with the message of a handler failure.
// Unclassified errors are logged, the user only sees a generic message.
func renderFailure(c *gin.Context, view string, data gin.H, err error) {
	var classified *domain.Error
	if !errors.As(err, &classified) {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path, // Requested path
			"error": err.Error(),        // Error message
		}).Error("Request failed")
	}
	data["errors"] = []validation.FieldError{{Message: domain.Message(err)}}
	c.HTML(statusFor(err), view, data)
}
