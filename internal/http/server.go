package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/reelbase/reelbase/internal/auth"
	"github.com/reelbase/reelbase/internal/config"
	"github.com/reelbase/reelbase/internal/repository"
	"github.com/reelbase/reelbase/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    *store.Store
	repo     *repository.Repository
	tokens   *auth.TokenManager
	validate *validator.Validate
	logger   zerolog.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, tokens *auth.TokenManager, logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s := &Server{
		cfg:      cfg,
		store:    st,
		repo:     repo,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "Resource not found")
	})

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.handleListMovies)
			r.Post("/", s.handleCreateMovie)
			r.Route("/{movieId}", func(r chi.Router) {
				r.Get("/", s.handleGetMovie)
				r.Put("/", s.handleUpdateMovie)
				r.Delete("/", s.handleDeleteMovie)
				r.Post("/actors", s.handleAssociateActors)
				r.Put("/actors", s.handleUpdateActorAssociations)
				r.With(s.requireAuth).Post("/rating", s.handleSubmitRating)
			})
		})

		r.Route("/actors", func(r chi.Router) {
			r.Get("/", s.handleListActors)
			r.Post("/", s.handleCreateActor)
			r.Route("/{actorId}", func(r chi.Router) {
				r.Get("/", s.handleGetActor)
				r.Put("/", s.handleUpdateActor)
				r.Delete("/", s.handleDeleteActor)
			})
		})

		r.Get("/actors-movies", s.handleListActorsMovies)

		r.Get("/public/movies", s.handleListPublicMovies)
		r.Get("/public/movies/{movieId}", s.handleGetPublicMovie)

		r.Route("/user/{userId}/ratings", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListUserRatings)
			r.Get("/{movieId}", s.handleGetUserRating)
		})
	})

	s.router.Mount("/api/v1", s.catalogRouter())
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the handler tree, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
