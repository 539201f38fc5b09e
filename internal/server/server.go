// Package server wires handlers, middleware, and routes, and owns the HTTP
// server lifecycle. It is the composition root: the dependency chain
// (sqlite.DB → services → handlers) is assembled here and nowhere else.
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

	"github.com/pranaykumar2/private-blog/internal/auth"
	"github.com/pranaykumar2/private-blog/internal/handler"
	"github.com/pranaykumar2/private-blog/internal/middleware"
	sqliteRepo "github.com/pranaykumar2/private-blog/internal/repository/sqlite"
	"github.com/pranaykumar2/private-blog/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	AllowedOrigins []string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, builds the token and password
// services, and wires every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests driving the full stack with
// httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection. Start calls this on shutdown;
// tests that use Handler directly should defer it themselves.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and the full route table.
//
// Route table (method, path → auth level, handler):
//
//	GET    /blogs/               public (optional token)  list all
//	POST   /blogs/create/        required                 create, author=caller
//	GET    /blogs/my-blogs/      required                 list caller's blogs
//	GET    /blogs/{id}/          public (optional token)  retrieve
//	GET    /blogs/{id}/update/   public (optional token)  retrieve
//	PUT    /blogs/{id}/update/   author only              update
//	PATCH  /blogs/{id}/update/   author only              update
//	DELETE /blogs/{id}/update/   author only              delete
//	POST   /users/register/      public                   register
//	POST   /users/login/         public                   token pair
//	POST   /users/login/refresh/ refresh token in body    new access token
//	GET    /users/profile/       required                 own profile
//	PUT    /users/profile/       required                 update own profile
//	GET    /users/{id}/          public                   public user fields
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Global middleware, in order: request ID, real IP, panic recovery,
	// request logging, CORS.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	blogService := service.NewBlogService(s.db, s.logger)
	userService := service.NewUserService(s.db, tokens, passwords, s.logger)

	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	required := auth.RequireAuth(tokens)
	optional := auth.OptionalAuth(tokens)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/blogs", func(r chi.Router) {
		r.With(optional).Get("/", blogHandler.HandleList)
		r.With(required).Post("/create/", blogHandler.HandleCreate)
		r.With(required).Get("/my-blogs/", blogHandler.HandleListMine)
		r.With(optional).Get("/{id}/", blogHandler.HandleGet)
		r.With(optional).Get("/{id}/update/", blogHandler.HandleGet)
		r.With(required).Put("/{id}/update/", blogHandler.HandleUpdate)
		r.With(required).Patch("/{id}/update/", blogHandler.HandleUpdate)
		r.With(required).Delete("/{id}/update/", blogHandler.HandleDelete)
	})

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/register/", userHandler.HandleRegister)
		r.Post("/login/", userHandler.HandleLogin)
		r.Post("/login/refresh/", userHandler.HandleRefresh)
		r.With(required).Get("/profile/", userHandler.HandleProfile)
		r.With(required).Put("/profile/", userHandler.HandleProfileUpdate)
		r.Get("/{id}/", userHandler.HandleDetail)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s, and
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
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
