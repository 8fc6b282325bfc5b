package handlers

import (
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

type AuditHandler struct {
	service *service.RecordsService
}

func NewAuditHandler(service *service.RecordsService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns audit entries, optionally filtered by actor and action.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	p := httputil.ParsePagination(r, defaultPageLimit, maxPageLimit)
	req := models.ListAuditRequest{
		Page:    p.Page,
		Limit:   p.Limit,
		ActorID: r.URL.Query().Get("actor_id"),
		Action:  r.URL.Query().Get("action"),
	}

	entries, total, err := h.service.ListAudit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, entries, total, p)
}
