package handler

import (
	"log/slog"
	"net/http"

	"github.com/pranaykumar2/private-blog/internal/auth"
	"github.com/pranaykumar2/private-blog/internal/service"
)

// UserHandler serves the /users/ routes: registration, login, token refresh,
// and profile views.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleRegister creates a new user account.
//
// HTTP: POST /users/register/  (public)
// Body: {"username": "...", "email": "...", "password": "..."}
// Duplicate usernames/emails are validation errors (400).
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newProfileResponse(user))
}

// HandleLogin exchanges credentials for an access/refresh token pair.
//
// HTTP: POST /users/login/  (public)
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pair, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

// HandleRefresh exchanges a refresh token for a new access token.
//
// HTTP: POST /users/login/refresh/
// Body: {"refresh": "<jwt>"}
func (h *UserHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	access, err := h.users.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accessTokenResponse{Access: access})
}

// HandleProfile returns the caller's own record.
//
// HTTP: GET /users/profile/  (auth required)
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(user))
}

// HandleProfileUpdate updates the caller's own record. Only the caller's
// record is ever touched; the id comes from the token, not the request.
//
// HTTP: PUT /users/profile/  (auth required)
func (h *UserHandler) HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), callerID, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(user))
}

// HandleDetail returns another user's public fields.
//
// HTTP: GET /users/{id}/  (public)
func (h *UserHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authorResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
