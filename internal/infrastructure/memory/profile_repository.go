package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/domain/repository"
)

type profileRow = entity.Profile

type ProfileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) *ProfileRepository {
	return &ProfileRepository{s: s}
}

// clone detaches the stored row from the caller's copy.
func clone(p profileRow) *entity.Profile {
	p.Skills = slices.Clone(p.Skills)
	p.Experience = slices.Clone(p.Experience)
	p.Education = slices.Clone(p.Education)
	return &p
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *ProfileRepository) List(_ context.Context) ([]*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, clone(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, userID string, fields entity.ProfileFields) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	p, ok := r.s.profiles[userID]
	if !ok {
		p = entity.Profile{
			ID:         newID(),
			UserID:     userID,
			Skills:     []string{},
			Experience: []entity.Experience{},
			Education:  []entity.Education{},
			CreatedAt:  now,
		}
	}
	fields.Apply(&p)
	p.UpdatedAt = now
	r.s.profiles[userID] = p
	return clone(p), nil
}

func (r *ProfileRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.profiles, userID)
	return nil
}

func (r *ProfileRepository) mutate(userID string, fn func(p *entity.Profile)) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = r.s.now()
	r.s.profiles[userID] = p
	return clone(p), nil
}

func (r *ProfileRepository) PushExperience(_ context.Context, userID string, e entity.Experience) (*entity.Profile, error) {
	return r.mutate(userID, func(p *entity.Profile) { p.Experience = entity.Prepend(p.Experience, e) })
}

func (r *ProfileRepository) PullExperience(_ context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.mutate(userID, func(p *entity.Profile) { p.Experience = entity.RemoveByID(p.Experience, entryID) })
}

func (r *ProfileRepository) PushEducation(_ context.Context, userID string, e entity.Education) (*entity.Profile, error) {
	return r.mutate(userID, func(p *entity.Profile) { p.Education = entity.Prepend(p.Education, e) })
}

func (r *ProfileRepository) PullEducation(_ context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.mutate(userID, func(p *entity.Profile) { p.Education = entity.RemoveByID(p.Education, entryID) })
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
