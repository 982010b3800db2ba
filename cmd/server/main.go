package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/config"
	"github.com/tkonda/placement-prep/internal/repository/mongo"
	"github.com/tkonda/placement-prep/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongo.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			logger.Warn("closing database", slog.String("error", err.Error()))
		}
	}()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Deps{
		Repos: server.Repos{
			Users:            db.Users(),
			Sessions:         db.Sessions(),
			Quizzes:          db.Quizzes(),
			QuizResults:      db.QuizResults(),
			Challenges:       db.Challenges(),
			ChallengeResults: db.ChallengeResults(),
			Interviews:       db.Interviews(),
			Friends:          db.Friends(),
			Battles:          db.Battles(),
		},
		Tokens:      tokens,
		Passwords:   auth.NewPasswordService(),
		Google:      auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL),
		FrontendURL: cfg.FrontendURL,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	return server.New(router, cfg.Port, logger).Start()
}
