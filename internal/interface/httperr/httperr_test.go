package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.ErrMissingToken, 401, "No token, authorization denied"},
		{helpers.ErrTokenExpired, 401, "Token is not valid"},
		{helpers.ErrInvalidSignature, 401, "Token is not valid"},
		{helpers.ErrMalformedToken, 401, "Token is not valid"},
		{apperr.ErrInvalidCredentials, 400, "Invalid credentials"},
		{apperr.ErrAlreadyExists, 400, "User already exists"},
		{apperr.ErrProfileNotFound, 404, "Profile not found"},
		{fmt.Errorf("wrapped: %w", apperr.ErrProfileNotFound), 404, "Profile not found"},
		{apperr.ErrGithubNotFound, 404, "No Github profile found"},
		{apperr.ErrUserNotFound, 404, "User not found"},
		{errors.New("db down"), 500, "Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, msg := Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestWrite_LogsOnlyServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	Write(c, logger, apperr.ErrProfileNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, hook.AllEntries())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	c.Set("request_id", "rid")
	Write(c, logger, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "rid", hook.LastEntry().Data["request_id"])
	assert.JSONEq(t, `{"errors":[{"msg":"Server Error"}],"request_id":"rid"}`, w.Body.String())
}
