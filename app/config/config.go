package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
)

// Config holds runtime settings, read from the environment with a RESULTS_
// prefix. A .env file in the working directory is loaded first when present.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"matimbwa"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Debounce window for coalescing result changes per session, and the
	// upper bound after which a flush fires regardless of new events.
	RecomputeDebounce    time.Duration `envconfig:"RECOMPUTE_DEBOUNCE" default:"250ms"`
	RecomputeMaxCoalesce time.Duration `envconfig:"RECOMPUTE_MAX_COALESCE" default:"5s"`
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := &Config{}
	if err := envconfig.Process("RESULTS", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenDB opens and pings the Postgres connection described by the config.
func OpenDB(cfg *Config) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=10",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("Database connected successfully")
	return db, nil
}
