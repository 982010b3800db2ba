// Package config loads all runtime settings from the environment.
//
// Every setting is an environment variable; a .env file in the working
// directory is loaded first (if present) so local development does not need
// to export anything. The full set:
//
//	PORT                 HTTP listen port (default 8080)
//	MONGO_URL            MongoDB connection string (required)
//	DB_NAME              database name (default placement_prep_db)
//	JWT_SECRET           token signing secret, >= 16 chars (required)
//	TOKEN_TTL            access token lifetime (default 168h = 7 days)
//	CORS_ORIGINS         comma-separated allowed origins (default *)
//	FRONTEND_URL         where OAuth callbacks redirect to (default http://localhost:3000)
//	GOOGLE_CLIENT_ID     Google OAuth client id (optional; sign-in disabled if unset)
//	GOOGLE_CLIENT_SECRET Google OAuth client secret
//	GOOGLE_CALLBACK_URL  Google OAuth redirect URL
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the resolved settings for one process.
type Config struct {
	Port     int
	MongoURL string
	DBName   string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

// Load reads the .env file (if any) and the process environment.
// It returns an error for missing required settings so the process can
// refuse to start instead of failing on the first request.
func Load() (*Config, error) {
	// Ignore a missing .env; in deployment everything comes from the
	// real environment.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	cfg := &Config{
		Port:               8080,
		MongoURL:           k.String("mongo_url"),
		DBName:             "placement_prep_db",
		JWTSecret:          k.String("jwt_secret"),
		TokenTTL:           7 * 24 * time.Hour,
		CORSOrigins:        []string{"*"},
		FrontendURL:        "http://localhost:3000",
		GoogleClientID:     k.String("google_client_id"),
		GoogleClientSecret: k.String("google_client_secret"),
		GoogleCallbackURL:  k.String("google_callback_url"),
	}

	if p := k.Int("port"); p != 0 {
		cfg.Port = p
	}
	if name := k.String("db_name"); name != "" {
		cfg.DBName = name
	}
	if ttl := k.String("token_ttl"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}
	if origins := k.String("cors_origins"); origins != "" {
		cfg.CORSOrigins = splitOrigins(origins)
	}
	if u := k.String("frontend_url"); u != "" {
		cfg.FrontendURL = u
	}
	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%d/api/auth/google-callback", cfg.Port)
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("config: MONGO_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
