package main

import (
	"context"
	"log"
	"os"

	"defi_quest/internal/db"
	"defi_quest/internal/domain"
	"defi_quest/internal/repository"
	"defi_quest/internal/service"

	"github.com/joho/godotenv"
)

// Creates a dev user and prints a JWT for manual API testing.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	username := os.Getenv("SEED_USERNAME")
	if username == "" {
		username = "testuser"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "testpass"
	}

	u, err := repo.GetByUsername(ctx, username)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		hash, err := service.HashPassword(password)
		if err != nil {
			log.Fatalf("hash password failed: %v", err)
		}

		u = &domain.User{
			Username:     username,
			PasswordHash: hash,
			Level:        1,
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d username=%s\n", u.ID, u.Username)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
