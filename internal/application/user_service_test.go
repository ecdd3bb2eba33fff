package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
	"github.com/oksasatya/devconnector-api/pkg/mailer/templates"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, tok, err := f.userSvc.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret1", u.Password)
	assert.Equal(t, helpers.GravatarURL("alice@x.com"), u.AvatarURL)

	sub, err := f.jwt.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)

	require.Len(t, f.pub.jobs, 1)
	assert.Equal(t, templates.Welcome, f.pub.jobs[0].Template)
	assert.Equal(t, "alice@x.com", f.pub.jobs[0].To)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.userSvc.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = f.userSvc.Register(ctx, "Impostor", "alice@x.com", "another")
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	assert.Equal(t, 1, f.users.Count(), "no second write")

	_, _, err = f.userSvc.Register(ctx, "Alice", "Alice@x.com", "secret1")
	assert.NoError(t, err, "email uniqueness is case-sensitive as stored")
}

func TestUserService_RegisterSurvivesBrokerOutage(t *testing.T) {
	f := newFixture()
	f.pub.err = errors.New("broker down")

	_, tok, err := f.userSvc.Register(context.Background(), "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
}

func TestUserService_Login(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u, _, err := f.userSvc.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	tok, err := f.userSvc.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	sub, err := f.jwt.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)

	_, wrongPassword := f.userSvc.Login(ctx, "alice@x.com", "wrong")
	_, unknownEmail := f.userSvc.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, wrongPassword, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperr.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail, "both failures are indistinguishable")
}

func TestUserService_Current(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u, _, err := f.userSvc.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	got, err := f.userSvc.Current(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = f.userSvc.Current(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestUserService_LoginCorruptDigest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{Name: "Bob", Email: "bob@x.com", Password: "not-a-bcrypt-digest"}))

	_, err := f.userSvc.Login(ctx, "bob@x.com", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, helpers.ErrCorruptHash)
	assert.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
