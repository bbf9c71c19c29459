package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilalcrm/tilal/internal/usecase"
	"github.com/tilalcrm/tilal/pkg/apperror"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
}

// Login handles credential checks and token issuing
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.authUseCase.Login(r.Context(), req, clientAddr(r))
	if err != nil {
		if errors.Is(err, usecase.ErrTooManyAttempts) {
			respondError(w, apperror.NewTooManyRequests(err.Error()))
			return
		}
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", resp)
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
