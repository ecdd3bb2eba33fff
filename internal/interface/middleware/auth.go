package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/internal/interface/httperr"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

// DefaultTokenHeader carries the bearer token when no other header is configured.
const DefaultTokenHeader = "x-auth-token"

type userIDKey struct{}

// WithUserID returns a copy of ctx that carries the authenticated user id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID reads the id stored by Auth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// Authenticate extracts the token from header, falling back to an
// Authorization bearer token, and verifies it. The verifier's error is
// returned unchanged.
func Authenticate(r *http.Request, header string, jwt *helpers.JWTManager) (string, error) {
	if header == "" {
		header = DefaultTokenHeader
	}
	token := strings.TrimSpace(r.Header.Get(header))
	if token == "" {
		if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			token = strings.TrimSpace(h[7:])
		}
	}
	if token == "" {
		return "", apperr.ErrMissingToken
	}
	return jwt.Verify(token)
}

// Auth rejects requests without a valid token and sets userID in both the
// Gin context and the request context on success.
func Auth(jwt *helpers.JWTManager, header string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := Authenticate(c.Request, header, jwt)
		if err != nil {
			httperr.Write(c, logger, err)
			return
		}
		c.Set("userID", uid)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}
