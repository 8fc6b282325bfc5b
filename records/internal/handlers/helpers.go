package handlers

import (
	"errors"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/repository"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// listResponse is the common envelope for paginated collections.
type listResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func writeList(w http.ResponseWriter, data interface{}, total int, p httputil.Pagination) {
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Data:  data,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// parseListRequest reads the shared page/limit/status query params.
func parseListRequest(r *http.Request) (models.ListRecordsRequest, httputil.Pagination) {
	p := httputil.ParsePagination(r, defaultPageLimit, maxPageLimit)
	return models.ListRecordsRequest{
		Page:   p.Page,
		Limit:  p.Limit,
		Status: r.URL.Query().Get("status"),
	}, p
}

// writeServiceError maps service and repository errors to HTTP
// statuses without leaking internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httputil.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		httputil.WriteError(w, http.StatusForbidden, "account disabled")
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrUserNotFound):
		httputil.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrUserExists):
		httputil.WriteError(w, http.StatusConflict, "username already taken")
	default:
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
