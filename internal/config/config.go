package config

import (
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

type Config struct {
	Port              string
	DBDSN             string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	LogFile           string
	LogLevel          string
	LegacyDBDSN       string // postgres source for the one-shot importer
}

func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "teamkasse.db" // sqlite file in project root
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	cfg := Config{
		Port:              port,
		DBDSN:             dsn,
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogFile:           os.Getenv("LOG_FILE"),
		LogLevel:          level,
		LegacyDBDSN:       os.Getenv("LEGACY_DB_DSN"),
	}
	zlog.Info().
		Str("port", cfg.Port).
		Str("db_dsn", cfg.DBDSN).
		Str("log_file", cfg.LogFile).
		Bool("admin_password_set", cfg.AdminPassword != "" || cfg.AdminPasswordHash != "").
		Msg("config loaded")
	return cfg
}
