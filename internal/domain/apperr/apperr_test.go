package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{ErrAlreadyExists, KindValidation},
		{ErrMissingToken, KindAuth},
		{ErrInvalidCredentials, KindAuth},
		{helpers.ErrTokenExpired, KindAuth},
		{helpers.ErrInvalidSignature, KindAuth},
		{fmt.Errorf("verify: %w", helpers.ErrMalformedToken), KindAuth},
		{ErrProfileNotFound, KindNotFound},
		{fmt.Errorf("lookup: %w", ErrUserNotFound), KindNotFound},
		{ErrUpstream, KindUpstream},
		{errors.New("connection reset"), KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err), tc.err.Error())
	}
}

func TestNotFoundError_Is(t *testing.T) {
	assert.ErrorIs(t, ErrProfileNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrProfileNotFound, ErrProfileNotFound)
	assert.NotErrorIs(t, ErrProfileNotFound, ErrUserNotFound)
	assert.Equal(t, "profile not found", ErrProfileNotFound.Error())
}
