package handlers

import (
	"log/slog"
	"net/http"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides signup and login endpoints. Neither issues a session.
type AuthHandler struct {
	userService *services.UserService
	logger      *slog.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: logger}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, logger *slog.Logger) {
	handler := NewAuthHandler(userService, logger)

	r.Post("/signup", handler.Signup)
	r.Post("/login", handler.Login)
}

// Signup creates a new user account.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		respondError(w, r, h.logger, err, "failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, SignupResponse{Message: "user registered successfully", UserID: user.ID})
}

// Login verifies credentials and returns the account without its hash.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err, "server error, try again later")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "role", user.Role)
	writeJSON(w, http.StatusOK, LoginResponse{User: user})
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupResponse reports the ID of the created user.
type SignupResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user without its password hash.
type LoginResponse struct {
	User types.User `json:"user"`
}
