package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	repo "github.com/oksasatya/devconnector-api/internal/domain/repository"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
	"github.com/oksasatya/devconnector-api/pkg/mailer"
	tpl "github.com/oksasatya/devconnector-api/pkg/mailer/templates"
)

// ProfileService owns the per-user profile aggregate. Every write takes the
// owner id recovered by the auth middleware, never one from the request body.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Github   RepoLister
	Index    ProfileIndexer
	Pub      Publisher
	Logger   *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, github RepoLister, index ProfileIndexer, pub Publisher, logger *logrus.Logger) *ProfileService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &ProfileService{Profiles: profiles, Users: users, Github: github, Index: index, Pub: pub, Logger: logger}
}

// Upsert creates the caller's profile or sets the supplied fields on the existing one.
// The owner must still exist: a token outlives a deleted account.
func (s *ProfileService) Upsert(ctx context.Context, ownerID string, fields entity.ProfileFields) (*entity.Profile, error) {
	if _, err := s.Users.GetByID(ctx, ownerID); err != nil {
		return nil, userErr(err)
	}
	p, err := s.Profiles.Upsert(ctx, ownerID, fields)
	if err != nil {
		return nil, userErr(err)
	}
	s.index(ctx, p)
	return s.populate(ctx, p)
}

// Me returns the caller's profile.
func (s *ProfileService) Me(ctx context.Context, ownerID string) (*entity.Profile, error) {
	return s.ByUser(ctx, ownerID)
}

// ByUser returns the profile owned by userID.
func (s *ProfileService) ByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileErr(err)
	}
	return s.populate(ctx, p)
}

// List returns every profile with its owner summary.
func (s *ProfileService) List(ctx context.Context) ([]*entity.Profile, error) {
	ps, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.UserID)
	}
	users, err := s.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		p.User = users[p.UserID].Summary()
	}
	return ps, nil
}

// DeleteAccount removes the profile and then the user. The two deletes are
// separate writes: if the second fails the profile is already gone.
func (s *ProfileService) DeleteAccount(ctx context.Context, ownerID string) error {
	u, err := s.Users.GetByID(ctx, ownerID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if err := s.Profiles.DeleteByUserID(ctx, ownerID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, ownerID); err != nil {
			s.Logger.WithError(err).WithField("user_id", ownerID).Warn("profile de-index failed")
		}
	}
	if err := s.Users.Delete(ctx, ownerID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		metrics.Add(metricDeletePartial, 1)
		s.Logger.WithError(err).WithField("user_id", ownerID).Error("profile removed but user delete failed")
		return err
	}
	metrics.Add(metricDeleted, 1)
	if u != nil && s.Pub != nil {
		job := mailer.EmailJob{To: u.Email, Template: tpl.Farewell, Data: tpl.NewAccountData(u.Name, u.Email)}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", ownerID).Warn("failed to publish email job")
		}
	}
	return nil
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddExperience puts a new entry at the front of the caller's experience list.
func (s *ProfileService) AddExperience(ctx context.Context, ownerID string, in ExperienceInput) (*entity.Profile, error) {
	e := entity.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	return s.write(ctx, func() (*entity.Profile, error) { return s.Profiles.PushExperience(ctx, ownerID, e) })
}

// RemoveExperience drops an entry by id; an unknown id leaves the list as is.
func (s *ProfileService) RemoveExperience(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return s.write(ctx, func() (*entity.Profile, error) { return s.Profiles.PullExperience(ctx, ownerID, entryID) })
}

func (s *ProfileService) AddEducation(ctx context.Context, ownerID string, in EducationInput) (*entity.Profile, error) {
	e := entity.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	return s.write(ctx, func() (*entity.Profile, error) { return s.Profiles.PushEducation(ctx, ownerID, e) })
}

func (s *ProfileService) RemoveEducation(ctx context.Context, ownerID, entryID string) (*entity.Profile, error) {
	return s.write(ctx, func() (*entity.Profile, error) { return s.Profiles.PullEducation(ctx, ownerID, entryID) })
}

// GithubRepos lists the five oldest repositories of a GitHub user. Any
// upstream failure is reported as not found.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]map[string]any, error) {
	if s.Github == nil {
		return nil, apperr.ErrGithubNotFound
	}
	repos, err := s.Github.ListRepos(ctx, username)
	if err != nil {
		s.Logger.WithError(err).WithField("username", username).Debug("github lookup failed")
		return nil, apperr.ErrGithubNotFound
	}
	return repos, nil
}

// Search queries the profile index. Without an index it returns no hits.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

func (s *ProfileService) write(ctx context.Context, op func() (*entity.Profile, error)) (*entity.Profile, error) {
	p, err := op()
	if err != nil {
		return nil, profileErr(err)
	}
	s.index(ctx, p)
	return s.populate(ctx, p)
}

func (s *ProfileService) populate(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	p.User = u.Summary()
	return p, nil
}

func (s *ProfileService) index(ctx context.Context, p *entity.Profile) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("profile index failed")
	}
}

// userErr maps a missing owner, including a Postgres FK violation on insert.
func userErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.ErrUserNotFound
	}
	return err
}

func profileErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.ErrProfileNotFound
	}
	return err
}
