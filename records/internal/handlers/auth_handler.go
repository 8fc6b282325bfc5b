package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), &req, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		httputil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}
