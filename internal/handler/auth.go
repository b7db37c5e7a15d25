package handler

import (
	"errors"
	"net/http"

	"github.com/taskhaven/taskhaven-go/internal/middleware"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/service"
)

// AuthHandler exposes the auth.* procedures.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/rpc/auth.register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "email")
		case errors.Is(err, service.ErrPasswordTooShort), errors.Is(err, service.ErrPasswordTooLong):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "password")
		case errors.Is(err, service.ErrNameTooShort):
			writeFieldError(w, "VALIDATION_ERROR", err.Error(), "name")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "CONFLICT", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/rpc/auth.login requests. An unknown
// email and a wrong password surface with distinct codes.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, service.ErrInvalidPassword):
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/rpc/auth.me requests. The session
// resolver has already loaded the user record.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
