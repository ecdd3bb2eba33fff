package repository

import (
	"context"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
)

// ProfileRepository stores one profile document per user. Every method is a
// single atomic document operation; lookups that find nothing return ErrNotFound.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	// Upsert creates the profile when absent, otherwise sets only the supplied fields.
	Upsert(ctx context.Context, userID string, fields entity.ProfileFields) (*entity.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error

	PushExperience(ctx context.Context, userID string, e entity.Experience) (*entity.Profile, error)
	PullExperience(ctx context.Context, userID, entryID string) (*entity.Profile, error)
	PushEducation(ctx context.Context, userID string, e entity.Education) (*entity.Profile, error)
	PullEducation(ctx context.Context, userID, entryID string) (*entity.Profile, error)
}
