// Package httperr is the one place where service errors become HTTP statuses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/pkg/response"
)

const serverError = "Server Error"

// Status returns the HTTP status and client message for err.
func Status(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindAuth:
		switch {
		case errors.Is(err, apperr.ErrMissingToken):
			return http.StatusUnauthorized, "No token, authorization denied"
		case errors.Is(err, apperr.ErrInvalidCredentials):
			return http.StatusBadRequest, "Invalid credentials"
		default:
			return http.StatusUnauthorized, "Token is not valid"
		}
	case apperr.KindValidation:
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return http.StatusBadRequest, "User already exists"
		}
		return http.StatusBadRequest, err.Error()
	case apperr.KindNotFound:
		switch {
		case errors.Is(err, apperr.ErrProfileNotFound):
			return http.StatusNotFound, "Profile not found"
		case errors.Is(err, apperr.ErrGithubNotFound):
			return http.StatusNotFound, "No Github profile found"
		case errors.Is(err, apperr.ErrUserNotFound):
			return http.StatusNotFound, "User not found"
		default:
			return http.StatusNotFound, "Not found"
		}
	default:
		return http.StatusInternalServerError, serverError
	}
}

// Write aborts the request with the mapped error body. Server errors are
// logged here and nowhere else.
func Write(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Fail(c, status, msg)
}
