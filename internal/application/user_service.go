package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	repo "github.com/oksasatya/devconnector-api/internal/domain/repository"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
	"github.com/oksasatya/devconnector-api/pkg/mailer"
	tpl "github.com/oksasatya/devconnector-api/pkg/mailer/templates"
)

// UserService registers identities and exchanges credentials for tokens.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
	Pub    Publisher
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.PasswordHasher, logger *logrus.Logger, pub Publisher) *UserService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &UserService{Repo: users, JWT: jwt, Hasher: hasher, Logger: logger, Pub: pub}
}

// Token is what registration and login hand back to the client.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// Register creates a new identity and issues its first token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, Token, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		metrics.Add(metricRegisterTaken, 1)
		return nil, Token{}, apperr.ErrAlreadyExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, Token{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, Token{}, err
	}
	u := &entity.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		AvatarURL: helpers.GravatarURL(email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration; the unique index decided
		if errors.Is(err, repo.ErrDuplicate) {
			metrics.Add(metricRegisterTaken, 1)
			return nil, Token{}, apperr.ErrAlreadyExists
		}
		return nil, Token{}, err
	}

	tok, err := s.issue(u.ID)
	if err != nil {
		return nil, Token{}, err
	}
	metrics.Add(metricRegistered, 1)
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	s.enqueue(ctx, u, tpl.Welcome)
	return u, tok, nil
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.Add(metricLoginFailed, 1)
			return Token{}, apperr.ErrInvalidCredentials
		}
		return Token{}, err
	}
	ok, err := s.Hasher.Verify(u.Password, password)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored password hash unreadable")
		return Token{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		metrics.Add(metricLoginFailed, 1)
		return Token{}, apperr.ErrInvalidCredentials
	}
	metrics.Add(metricLoginOK, 1)
	return s.issue(u.ID)
}

// Current returns the token owner's identity.
func (s *UserService) Current(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) issue(userID string) (Token, error) {
	tok, exp, err := s.JWT.Issue(userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("generate token failed")
		return Token{}, err
	}
	return Token{Token: tok, ExpiresAt: exp}, nil
}

// enqueue is best effort: a broker outage never fails the request.
func (s *UserService) enqueue(ctx context.Context, u *entity.User, template string) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: tpl.NewAccountData(u.Name, u.Email)}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish email job")
	}
}
