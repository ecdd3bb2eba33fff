// Package apperr is the failure taxonomy shared by the services and the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"

	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is makes every NotFoundError match ErrNotFound regardless of resource.
func (e NotFoundError) Is(target error) bool {
	t, ok := target.(NotFoundError)
	return ok && (t.Resource == "" || t.Resource == e.Resource)
}

var (
	ErrNotFound        = NotFoundError{}
	ErrProfileNotFound = NotFoundError{Resource: "profile"}
	ErrUserNotFound    = NotFoundError{Resource: "user"}
	ErrGithubNotFound  = NotFoundError{Resource: "github profile"}

	ErrMissingToken       = errors.New("no token, authorization denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrUpstream           = errors.New("upstream request failed")
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrAlreadyExists):
		return KindValidation
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, helpers.ErrInvalidSignature),
		errors.Is(err, helpers.ErrTokenExpired),
		errors.Is(err, helpers.ErrMalformedToken):
		return KindAuth
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	default:
		return KindInternal
	}
}
