package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/devconnector-api/config"
	"github.com/oksasatya/devconnector-api/internal/application"
	"github.com/oksasatya/devconnector-api/internal/container"
	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/router"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.StoreDriver == "memory" {
		log.Fatal("STORE_DRIVER=memory keeps nothing; seed a postgres or mongo store")
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	closeStore, err := container.ConnectStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))
	users, profiles := router.Services()

	email := "demo@devconnector.local"
	password := "password123"
	name := "Demo Developer"

	u, _, err := users.Register(ctx, name, email, password)
	switch {
	case errors.Is(err, apperr.ErrAlreadyExists):
		fmt.Printf("user %s already seeded\n", email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)

	status, company, gh := "Developer", "Acme", "octocat"
	if _, err := profiles.Upsert(ctx, u.ID, entity.ProfileFields{
		Status:         &status,
		Company:        &company,
		GithubUsername: &gh,
		Skills:         entity.ParseSkills("go, postgres, mongodb"),
	}); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	if _, err := profiles.AddExperience(ctx, u.ID, application.ExperienceInput{
		Title:   "Backend Engineer",
		Company: company,
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Current: true,
	}); err != nil {
		log.Fatalf("failed to seed experience: %v", err)
	}
	fmt.Println("seeded profile with one experience entry")
}
