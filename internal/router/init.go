package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/config"
	"github.com/oksasatya/devconnector-api/internal/application"
	"github.com/oksasatya/devconnector-api/internal/container"
	repo "github.com/oksasatya/devconnector-api/internal/domain/repository"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/github"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/devconnector-api/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/devconnector-api/internal/infrastructure/postgres"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/devconnector-api/internal/interface/http"
	"github.com/oksasatya/devconnector-api/internal/interface/middleware"
	"github.com/oksasatya/devconnector-api/internal/router/modules"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

type repositories struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
}

// buildRepositories picks the store that main connected. The in-memory store
// is the fallback when neither database is available.
func buildRepositories(cfg *config.Config, logger *logrus.Logger) repositories {
	switch {
	case cfg.StoreDriver == "postgres" && container.GetPGPool() != nil:
		pool := container.GetPGPool()
		return repositories{Users: pginfra.NewUserRepository(pool), Profiles: pginfra.NewProfileRepository(pool)}
	case cfg.StoreDriver == "mongo" && container.GetMongo() != nil:
		db := container.GetMongo()
		return repositories{Users: mongoinfra.NewUserRepository(db), Profiles: mongoinfra.NewProfileRepository(db)}
	}
	if cfg.StoreDriver != "memory" {
		logger.WithField("driver", cfg.StoreDriver).Warn("store not connected; using in-memory store")
	}
	store := container.GetMemory()
	if store == nil {
		store = memory.NewStore()
		container.SetMemory(store)
	}
	return repositories{Users: memory.NewUserRepository(store), Profiles: memory.NewProfileRepository(store)}
}

// Services builds the application services from the container. The seed
// command shares it with the HTTP server.
func Services() (*application.UserService, *application.ProfileService) {
	d := buildDeps()
	return d.UserService, d.ProfileService
}

type appDeps struct {
	UserService    *application.UserService
	ProfileService *application.ProfileService
	Auth           gin.HandlerFunc
}

func buildDeps() appDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	if logger == nil {
		logger = helpers.NopLogger()
	}
	repos := buildRepositories(cfg, logger)

	// optional backends are only assigned when connected, so the interfaces stay nil otherwise
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil && cfg.MailSendEnabled {
		pub = p
	}
	var index application.ProfileIndexer
	if es := container.GetES(); es != nil {
		index = search.NewProfileIndex(es, cfg.ESProfilesIndex)
	}
	var rdb redis.Cmdable
	if r := container.GetRedis(); r != nil {
		rdb = r
	}
	gh := github.New(github.Config{
		BaseURL:      cfg.GithubAPIURL,
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubSecret,
		CacheTTL:     cfg.GithubCacheTTL,
	}, rdb, logger)

	hasher := container.GetHasher()
	if hasher == nil {
		hasher = helpers.NewPasswordHasher(cfg.BcryptCost)
	}

	return appDeps{
		UserService:    application.NewUserService(repos.Users, container.GetJWT(), hasher, logger, pub),
		ProfileService: application.NewProfileService(repos.Profiles, repos.Users, gh, index, pub, logger),
		Auth:           middleware.Auth(container.GetJWT(), cfg.TokenHeader, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Add(modules.NewUserModule(handlers.NewUserHandler(deps.UserService, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.UserService, logger), deps.Auth))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(deps.ProfileService, logger), deps.Auth))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
