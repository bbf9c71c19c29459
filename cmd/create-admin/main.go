package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/tilalcrm/tilal/internal/adapter/persistence"
	"github.com/tilalcrm/tilal/internal/config"
	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/service/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := persistence.Open(ctx, cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleTime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	username := "admin"
	userPassword := "admin123"
	name := "Administrator"

	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		userPassword = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	passwordService := password.NewBcryptPasswordService(10)
	hash, err := passwordService.HashPassword(userPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	userRepo := persistence.NewPostgresUserRepository(db)
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Admin user created: username=%s id=%s\n", username, user.ID)
}
