package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/urbanfresh/auth-api/internal/auth"
	"github.com/urbanfresh/auth-api/internal/config"
	"github.com/urbanfresh/auth-api/internal/http/handlers"
	"github.com/urbanfresh/auth-api/internal/middleware"
	"github.com/urbanfresh/auth-api/internal/models"
	"github.com/urbanfresh/auth-api/internal/service"
	"github.com/urbanfresh/auth-api/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, log zerolog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(0)
	svc := service.NewAuthService(store, hasher, tokens, log)

	router := NewRouter(cfg, svc, tokens, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the route tree. Registration and login stay public; every
// other API route sits behind the bearer-token gate.
func NewRouter(cfg config.Config, svc *service.AuthService, tokens *auth.TokenManager, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	handlers.NewHealthHandler(time.Now()).Register(r)
	handlers.NewAuthHandler(svc, log).Register(r)

	users := handlers.NewUsersHandler(svc, log)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(tokens))
		users.RegisterProtected(protected)

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			users.RegisterAdmin(admin)
		})
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
