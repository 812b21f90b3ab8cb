package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/urbanfresh/auth-api/internal/http/respond"
	"github.com/urbanfresh/auth-api/internal/models/dto"
	"github.com/urbanfresh/auth-api/internal/service"
)

// AuthHandler owns the public register/login endpoints.
type AuthHandler struct {
	svc *service.AuthService
	log zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/api/auth/register", h.handleRegister)
	r.Post("/api/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		respond.ValidationError(w, fieldErrors)
		return
	}

	created, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		var dup *service.DuplicateEmailError
		if errors.As(err, &dup) {
			respond.Error(w, http.StatusConflict, dup.Error())
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		respond.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		ID:      created.ID,
		Name:    created.Name,
		Email:   created.Email,
		Phone:   created.Phone,
		Role:    created.Role.String(),
		Message: "Registration successful",
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		respond.ValidationError(w, fieldErrors)
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		respond.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Token:   token,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role.String(),
		Message: "Login successful",
	})
}
