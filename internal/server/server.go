// Package server wires the dependency graph and owns the HTTP lifecycle.
// main.go stays minimal: load config, open the store, hand everything to
// New, call Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/handler"
	"github.com/tkonda/placement-prep/internal/middleware"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
	"github.com/tkonda/placement-prep/internal/service"
	"github.com/tkonda/placement-prep/internal/ws"
)

// Repos gathers the storage implementations behind one value so the
// router can be built against mongo in production and memory in tests.
type Repos struct {
	Users            repository.UserRepository
	Sessions         repository.SessionRepository
	Quizzes          repository.QuizRepository
	QuizResults      repository.QuizResultRepository
	Challenges       repository.ChallengeRepository
	ChallengeResults repository.ChallengeResultRepository
	Interviews       repository.InterviewRepository
	Friends          repository.FriendRepository
	Battles          repository.BattleRepository
}

// Deps is everything the router needs beyond storage.
type Deps struct {
	Repos       Repos
	Tokens      *auth.TokenService
	Passwords   *auth.PasswordService
	Google      *auth.GoogleProvider
	FrontendURL string
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter assembles the full route tree. This is the composition root:
// services are built from repositories, handlers from services, and the
// auth middleware guards every route that needs a signed-in user.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	authSvc := service.NewAuthService(d.Repos.Users, d.Repos.Sessions, d.Tokens, d.Passwords, d.Logger)
	quizSvc := service.NewQuizService(d.Repos.Quizzes, d.Repos.QuizResults, d.Repos.Users, d.Logger)
	challengeSvc := service.NewChallengeService(
		d.Repos.Challenges, d.Repos.ChallengeResults, d.Repos.Users,
		service.SimulatedRunner{}, d.Logger,
	)
	interviewSvc := service.NewInterviewService(d.Repos.Interviews, service.NewScriptedInterviewer(), d.Logger)
	friendSvc := service.NewFriendService(d.Repos.Friends, d.Repos.Users, d.Logger)
	leaderboardSvc := service.NewLeaderboardService(d.Repos.Users)
	adminSvc := service.NewAdminService(
		d.Repos.Users, d.Repos.Quizzes, d.Repos.QuizResults,
		d.Repos.Challenges, d.Repos.ChallengeResults,
	)
	battleSvc := service.NewBattleService(d.Repos.Battles, d.Repos.Challenges, d.Logger)

	cookieTTL := int(d.Tokens.TTL() / time.Second)
	authH := handler.NewAuthHandler(authSvc, d.Google, d.FrontendURL, cookieTTL, d.Logger)
	quizH := handler.NewQuizHandler(quizSvc)
	challengeH := handler.NewChallengeHandler(challengeSvc)
	interviewH := handler.NewInterviewHandler(interviewSvc)
	friendH := handler.NewFriendHandler(friendSvc)
	leaderboardH := handler.NewLeaderboardHandler(leaderboardSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	battleH := handler.NewBattleHandler(battleSvc)

	authMw := auth.NewMiddleware(d.Tokens, d.Repos.Users, d.Logger)

	r.Route("/api", func(r chi.Router) {
		// public
		r.Post("/auth/register", authH.HandleRegister)
		r.Post("/auth/login", authH.HandleLogin)
		r.Get("/auth/google-login", authH.HandleGoogleLogin)
		r.Get("/auth/google-callback", authH.HandleGoogleCallback)

		// signed-in users
		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth)

			r.Get("/auth/me", authH.HandleMe)
			r.Post("/auth/logout", authH.HandleLogout)

			r.Get("/quizzes", quizH.HandleList)
			r.Get("/quizzes/{id}", quizH.HandleGet)
			r.Post("/quizzes/submit", quizH.HandleSubmit)

			r.Get("/challenges", challengeH.HandleList)
			r.Get("/challenges/{id}", challengeH.HandleGet)
			r.Post("/challenges/submit", challengeH.HandleSubmit)

			r.Post("/mock-interview/start", interviewH.HandleStart)
			r.Post("/mock-interview/{id}/message", interviewH.HandleMessage)
			r.Get("/mock-interview/{id}", interviewH.HandleGet)
			r.Get("/mock-interview", interviewH.HandleList)

			r.Post("/friends/request", friendH.HandleRequest)
			r.Get("/friends", friendH.HandleList)
			r.Post("/friends/{id}/accept", friendH.HandleAccept)
			r.Delete("/friends/{id}", friendH.HandleRemove)

			r.Get("/leaderboard", leaderboardH.HandleList)

			r.Post("/battles/create", battleH.HandleCreate)
			r.Post("/battles/{id}/join", battleH.HandleJoin)
			r.Get("/battles/{id}", battleH.HandleGet)
			r.Get("/battles", battleH.HandleList)
		})

		// admins
		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth)
			r.Use(authMw.RequireRole(model.RoleAdmin))

			r.Post("/quizzes", quizH.HandleCreate)
			r.Delete("/quizzes/{id}", quizH.HandleDelete)
			r.Post("/challenges", challengeH.HandleCreate)
			r.Delete("/challenges/{id}", challengeH.HandleDelete)
			r.Get("/admin/users", adminH.HandleListUsers)
			r.Get("/admin/stats", adminH.HandleStats)
		})
	})

	// live battle relay; no auth gate, mirroring the HTTP battle reads
	wsHandler := ws.NewHandler(ws.NewRegistry(d.Logger), d.Logger)
	r.Get("/ws/battle/{battleId}", wsHandler.ServeBattle)

	return r
}

// Server owns the listener and shuts down gracefully on SIGINT/SIGTERM.
type Server struct {
	router *chi.Mux
	port   int
	logger *slog.Logger
}

func New(router *chi.Mux, port int, logger *slog.Logger) *Server {
	return &Server{router: router, port: port, logger: logger}
}

// Start blocks until the server fails or a shutdown signal arrives, then
// gives in-flight requests 30 seconds to finish.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.Int("port", s.port))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
