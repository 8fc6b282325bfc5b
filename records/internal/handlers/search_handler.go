package handlers

import (
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/search"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

type SearchHandler struct {
	service *service.RecordsService
}

func NewSearchHandler(service *service.RecordsService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search runs a full-text query across indexed records. Returns an
// empty result set when no search backend is configured.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		httputil.WriteError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	limit := httputil.ParseIntParam(r.URL.Query().Get("limit"), defaultPageLimit)
	hits, err := h.service.Search(r.Context(), q, limit)
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "search backend unavailable")
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": hits})
}
