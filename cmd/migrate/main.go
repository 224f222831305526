package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/repository/postgres"
)

func main() {
	cfg, err := config.LoadOptional()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// First, connect to postgres database to create the target database if needed
	adminCfg := cfg.Database
	adminCfg.DBName = "postgres"
	postgresDB, err := sql.Open("postgres", postgres.DSN(adminCfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to postgres database: %v\n", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	// Check if database exists, create if not
	var exists bool
	err = postgresDB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.DBName,
	).Scan(&exists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to check database existence: %v\n", err)
		os.Exit(1)
	}

	if !exists {
		fmt.Printf("Database '%s' does not exist. Creating...\n", cfg.Database.DBName)
		if _, err := postgresDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(cfg.Database.DBName)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database '%s' created successfully.\n", cfg.Database.DBName)
	}

	// Now connect to the target database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// A directory argument overrides the embedded schema
	if len(os.Args) > 1 {
		err = postgres.ApplyMigrations(db, os.DirFS(os.Args[1]), logger)
	} else {
		err = postgres.RunMigrations(db, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration completed successfully!")
}
