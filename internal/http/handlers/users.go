package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/urbanfresh/auth-api/internal/http/respond"
	"github.com/urbanfresh/auth-api/internal/middleware"
	"github.com/urbanfresh/auth-api/internal/service"
)

// UsersHandler serves the authenticated profile and admin user listing.
type UsersHandler struct {
	svc *service.AuthService
	log zerolog.Logger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(svc *service.AuthService, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{svc: svc, log: log}
}

// RegisterProtected attaches routes that require authentication.
func (h *UsersHandler) RegisterProtected(r chi.Router) {
	r.Get("/api/users/me", h.handleMe)
}

// RegisterAdmin attaches routes that additionally require the ADMIN role.
func (h *UsersHandler) RegisterAdmin(r chi.Router) {
	r.Get("/api/admin/users", h.handleListUsers)
}

func (h *UsersHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Session expired or invalid token. Please log in again.")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"email": claims.Subject,
		"role":  claims.Role,
	})
}

func (h *UsersHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		respond.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}
