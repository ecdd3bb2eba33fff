package application

import (
	"context"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
)

// Publisher enqueues background jobs. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileIndexer mirrors profiles into a search index.
type ProfileIndexer interface {
	Index(ctx context.Context, p *entity.Profile) error
	Delete(ctx context.Context, userID string) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// RepoLister lists a GitHub user's public repositories.
type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]map[string]any, error)
}
