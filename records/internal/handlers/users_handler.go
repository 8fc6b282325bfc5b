package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

type UsersHandler struct {
	service *service.AuthService
}

func NewUsersHandler(service *service.AuthService) *UsersHandler {
	return &UsersHandler{service: service}
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	user, err := h.service.CreateUser(r.Context(), &req, actor.ID, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteCreated(w, user)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	users, total, err := h.service.ListUsers(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, users, total, p)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	user, err := h.service.UpdateUser(r.Context(), r.PathValue("id"), &req, actor.ID, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// Disable deactivates an account. Outstanding tokens stop working on
// the user's next request.
func (h *UsersHandler) Disable(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	user, err := h.service.SetUserActive(r.Context(), r.PathValue("id"), false, actor.ID, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Enable(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	user, err := h.service.SetUserActive(r.Context(), r.PathValue("id"), true, actor.ID, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	if err := h.service.ResetPassword(r.Context(), r.PathValue("id"), &req, actor.ID, httputil.GetClientIP(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
