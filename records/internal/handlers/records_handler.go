package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

// RecordsHandler serves the police record resources: arrests, wanted
// persons, incident reports and investigations.
type RecordsHandler struct {
	service *service.RecordsService
}

func NewRecordsHandler(service *service.RecordsService) *RecordsHandler {
	return &RecordsHandler{service: service}
}

// Arrests

func (h *RecordsHandler) CreateArrest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArrestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	arrest, err := h.service.CreateArrest(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, arrest)
}

func (h *RecordsHandler) ListArrests(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	arrests, total, err := h.service.ListArrests(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, arrests, total, p)
}

func (h *RecordsHandler) GetArrest(w http.ResponseWriter, r *http.Request) {
	arrest, err := h.service.GetArrest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, arrest)
}

// Wanted persons

func (h *RecordsHandler) CreateWanted(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWantedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	wanted, err := h.service.CreateWanted(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, wanted)
}

func (h *RecordsHandler) ListWanted(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	wanted, total, err := h.service.ListWanted(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, wanted, total, p)
}

func (h *RecordsHandler) GetWanted(w http.ResponseWriter, r *http.Request) {
	wanted, err := h.service.GetWanted(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wanted)
}

func (h *RecordsHandler) CaptureWanted(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	wanted, err := h.service.CaptureWanted(r.Context(), r.PathValue("id"), actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wanted)
}

// Incident reports (B.O.)

func (h *RecordsHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	report, err := h.service.CreateReport(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, report)
}

func (h *RecordsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	reports, total, err := h.service.ListReports(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, reports, total, p)
}

func (h *RecordsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *RecordsHandler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	report, err := h.service.ArchiveReport(r.Context(), r.PathValue("id"), actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// Investigations

func (h *RecordsHandler) CreateInvestigation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvestigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	inv, err := h.service.CreateInvestigation(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, inv)
}

func (h *RecordsHandler) ListInvestigations(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	invs, total, err := h.service.ListInvestigations(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, invs, total, p)
}

func (h *RecordsHandler) GetInvestigation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvestigation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inv)
}

func (h *RecordsHandler) FinalizeInvestigation(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	inv, err := h.service.FinalizeInvestigation(r.Context(), r.PathValue("id"), actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inv)
}

func (h *RecordsHandler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	var req models.AddEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	ev, err := h.service.AddEvidence(r.Context(), r.PathValue("id"), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, ev)
}

func (h *RecordsHandler) ListEvidence(w http.ResponseWriter, r *http.Request) {
	evidence, err := h.service.ListEvidence(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, evidence)
}
