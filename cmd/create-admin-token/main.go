package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository/postgres"
)

func main() {
	emailFlag := flag.String("email", "", "Admin email this token belongs to")
	labelFlag := flag.String("label", "", "Optional label (e.g. \"laptop\", \"ci\")")
	tokenFlag := flag.String("token", "", "Token value; generated randomly when omitted")
	flag.Parse()

	email := strings.TrimSpace(*emailFlag)
	if email == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin-token/main.go --email admin@example.com [--label laptop] [--token value]")
		os.Exit(1)
	}

	token := strings.TrimSpace(*tokenFlag)
	if token == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
			os.Exit(1)
		}
		token = hex.EncodeToString(buf)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if !cfg.IsEmailAuthorized(email) {
		fmt.Fprintf(os.Stderr, "Warning: %s is not on AUTHORIZED_EMAILS; the token will authenticate but requests will get 403.\n", email)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	tokenHash, err := postgres.HashToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash token: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	adminToken := &domain.AdminToken{
		ID:          uuid.New(),
		Email:       email,
		TokenHash:   tokenHash,
		TokenLookup: postgres.TokenLookupHash(token),
		IsActive:    true,
	}
	if label := strings.TrimSpace(*labelFlag); label != "" {
		adminToken.Label = &label
	}

	if err := repos.AdminToken.Create(context.Background(), adminToken); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin token created successfully!\n\n")
	fmt.Printf("Token ID: %s\n", adminToken.ID.String())
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Token: %s\n", token)
	fmt.Printf("\n⚠️  IMPORTANT: Save this token securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse it in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
