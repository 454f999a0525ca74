package handler

import (
	"net/http"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/user"
)

// LoginRequest is the body of a login. An empty name gets a generated one.
type LoginRequest struct {
	Name string `json:"name" validate:"omitempty,max=64,nocontrol"`
}

// UserResponse describes the session
type UserResponse struct {
	LoggedIn bool             `json:"logged_in"`
	User     *domain.Identity `json:"user,omitempty"`
}

// UserHandler handles the mock identity
type UserHandler struct {
	svc user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetUser returns the current identity
// @Summary Current user
// @Tags user
// @Produce json
// @Success 200 {object} UserResponse
// @Router /user [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.svc.Current()
	if !ok {
		respondJSON(w, http.StatusOK, UserResponse{LoggedIn: false})
		return
	}
	respondJSON(w, http.StatusOK, UserResponse{LoggedIn: true, User: &id})
}

// Login stores a mock identity
// @Summary Log in
// @Description No credentials are checked. The identity is stored locally.
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest false "Display name"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, ErrMsgLoginFailed); err != nil {
		return
	}

	id, err := h.svc.Login(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, ErrMsgLoginFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, UserResponse{LoggedIn: true, User: &id})
}

// Logout forgets the identity
// @Summary Log out
// @Tags user
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /user/logout [delete]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respondServiceError(w, r, ErrMsgLogoutFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
}
