package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ensureDatabase(cfg.Database)

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationPath := filepath.Join("migrations", "000001_init_schema.up.sql")
	if len(os.Args) > 1 {
		migrationPath = os.Args[1]
	}

	sqlBytes, err := os.ReadFile(migrationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration file: %v\n", err)
		os.Exit(1)
	}

	// The schema uses IF NOT EXISTS throughout, so reruns are safe
	if _, err := db.Exec(string(sqlBytes)); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			fmt.Fprintf(os.Stderr, "Error executing migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migration already applied (some objects already exist)")
	}

	fmt.Println("Migration completed successfully!")
}

// ensureDatabase creates the target database when it does not exist yet,
// connecting through the postgres maintenance database.
func ensureDatabase(dbCfg config.DatabaseConfig) {
	maint := dbCfg
	maint.DBName = "postgres"

	db, err := postgres.NewConnection(maint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to maintenance database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbCfg.DBName,
	).Scan(&exists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to check database existence: %v\n", err)
		os.Exit(1)
	}
	if exists {
		return
	}

	fmt.Printf("Database '%s' does not exist. Creating...\n", dbCfg.DBName)
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", dbCfg.DBName)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Database '%s' created successfully.\n", dbCfg.DBName)
}
