package repository

import (
	"context"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for identities.
// Create returns ErrDuplicate when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
