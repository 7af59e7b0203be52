// Package mockapi is an in-memory reference implementation of the backend REST API
// the client talks to. It backs the gateway and app integration tests and can be run
// locally with `snsclone serve`. Nothing is persisted; a restart starts from scratch.
package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/snsclone-go/config"
)

// Server bundles the mock backend's state and handlers.
type Server struct {
	store  *memoryStore
	auth   *authService
	logger *zap.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
		s.auth.logger = logger
	}
}

// WithFastHashing lowers the bcrypt cost. Only meant for tests.
func WithFastHashing() Option {
	return func(s *Server) { s.auth.bcryptCost = bcrypt.MinCost }
}

// New creates a mock backend. cfg.JWTSecret must be set.
func New(cfg *config.MockConfig, opts ...Option) *Server {
	store := newMemoryStore()
	s := &Server{
		store:  store,
		auth:   &authService{store: store, cfg: cfg, logger: zap.NewNop(), bcryptCost: bcrypt.DefaultCost},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler serving the REST contract.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/authen/jwt/create/", s.handleCreateSession)
	r.Post("/api/register/", s.handleRegister)
	r.Get("/media/*", s.handleMedia)

	r.Group(func(r chi.Router) {
		r.Use(s.jwtMiddleware)

		r.Get("/api/myprofile/", s.handleMyProfile)

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleCreateProfile)
			r.Put("/{id}/", s.handleUpdateProfile)
		})

		r.Route("/api/post", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Post("/", s.handleCreatePost)
			r.Put("/{id}/", s.handleReplacePost)
			r.Patch("/{id}/", s.handlePatchPost)
		})

		r.Route("/api/comment", func(r chi.Router) {
			r.Get("/", s.handleListComments)
			r.Post("/", s.handleCreateComment)
		})
	})

	return r
}
