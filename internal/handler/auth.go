package handler

import (
	"errors"
	"net"
	"net/http"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

// AuthHandler handles authentication and profile HTTP requests.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *service.LoginLimiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *service.LoginLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"user": {...}, "accessToken": "..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with that email already exists.")
			return
		}
		writeDomainError(w, err, "register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":        toUserDTO(user),
		"accessToken": token,
	})
}

// HandleLogin processes a JSON login request. Attempts are rate limited per
// client IP.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}, "accessToken": "..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	key := clientIP(r)
	if h.limiter != nil && !h.limiter.Allow(key) {
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		writeDomainError(w, err, "login user")
		return
	}

	if h.limiter != nil {
		h.limiter.Reset(key)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        toUserDTO(user),
		"accessToken": token,
	})
}

// HandleProfile returns the currently authenticated user.
// GET /api/auth/profile
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleUpdateProfile applies a partial update to the authenticated user's
// profile. Absent fields are left unchanged.
// PATCH /api/auth/profile
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		ProfileImage *string `json:"profileImage"`
		Address      *string `json:"address"`
		Password     *string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := domain.UserPatch{
		Name:         req.Name,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
		Address:      req.Address,
		Password:     req.Password,
	}
	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, patch)
	if err != nil {
		writeDomainError(w, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(updated)})
}

// HandleAdminCheck confirms the caller holds the admin role. The admin
// middleware does the actual gating.
// GET /api/auth/admin
func (h *AuthHandler) HandleAdminCheck(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "You have admin access",
		"user":    toUserDTO(user),
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
