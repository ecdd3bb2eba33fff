package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/memory"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
	"github.com/oksasatya/devconnector-api/pkg/mailer"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return p.err
}

type fakeLister struct {
	repos []map[string]any
	err   error
	calls []string
}

func (l *fakeLister) ListRepos(_ context.Context, username string) ([]map[string]any, error) {
	l.calls = append(l.calls, username)
	return l.repos, l.err
}

type fakeIndex struct {
	indexed map[string]*entity.Profile
	deleted []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]*entity.Profile{}} }

func (f *fakeIndex) Index(_ context.Context, p *entity.Profile) error {
	f.indexed[p.UserID] = p
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, userID string) error {
	delete(f.indexed, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, _ int) ([]map[string]any, error) {
	return []map[string]any{{"q": q}}, nil
}

// failingUsers wraps a user repository and fails Delete.
type failingUsers struct {
	*memory.UserRepository
}

func (failingUsers) Delete(context.Context, string) error { return errors.New("connection reset") }

type fixture struct {
	store    *memory.Store
	users    *memory.UserRepository
	profiles *memory.ProfileRepository
	jwt      *helpers.JWTManager
	pub      *fakePublisher
	index    *fakeIndex
	github   *fakeLister
	userSvc  *UserService
	profSvc  *ProfileService
}

func newFixture() *fixture {
	f := &fixture{
		store:  memory.NewStore(),
		jwt:    helpers.NewJWTManager("test-secret", 100*time.Hour),
		pub:    &fakePublisher{},
		index:  newFakeIndex(),
		github: &fakeLister{},
	}
	f.users = memory.NewUserRepository(f.store)
	f.profiles = memory.NewProfileRepository(f.store)
	f.userSvc = NewUserService(f.users, f.jwt, helpers.NewPasswordHasher(bcrypt.MinCost), nil, f.pub)
	f.profSvc = NewProfileService(f.profiles, f.users, f.github, f.index, f.pub, nil)
	return f
}

func strp(s string) *string { return &s }
