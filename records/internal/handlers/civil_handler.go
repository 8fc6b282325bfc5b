package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/middleware"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

// CivilHandler serves fines, seizures, department assets, news and
// the staff side of license requests and quiz submissions.
type CivilHandler struct {
	service *service.RecordsService
}

func NewCivilHandler(service *service.RecordsService) *CivilHandler {
	return &CivilHandler{service: service}
}

// Fines

func (h *CivilHandler) CreateFine(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	fine, err := h.service.CreateFine(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, fine)
}

func (h *CivilHandler) ListFines(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	fines, total, err := h.service.ListFines(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, fines, total, p)
}

func (h *CivilHandler) GetFine(w http.ResponseWriter, r *http.Request) {
	fine, err := h.service.GetFine(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fine)
}

// Seizures

func (h *CivilHandler) CreateSeizure(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeizureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	seizure, err := h.service.CreateSeizure(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, seizure)
}

func (h *CivilHandler) ListSeizures(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	seizures, total, err := h.service.ListSeizures(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, seizures, total, p)
}

func (h *CivilHandler) GetSeizure(w http.ResponseWriter, r *http.Request) {
	seizure, err := h.service.GetSeizure(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, seizure)
}

// Assets

func (h *CivilHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	asset, err := h.service.CreateAsset(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, asset)
}

func (h *CivilHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	assets, total, err := h.service.ListAssets(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, assets, total, p)
}

func (h *CivilHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.service.GetAsset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}

func (h *CivilHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	asset, err := h.service.UpdateAsset(r.Context(), r.PathValue("id"), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}

// News

func (h *CivilHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	post, err := h.service.CreateNews(r.Context(), &req, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, post)
}

func (h *CivilHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	posts, total, err := h.service.ListNews(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, posts, total, p)
}

func (h *CivilHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetNews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// License requests (staff side)

func (h *CivilHandler) ListLicenseRequests(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	requests, total, err := h.service.ListLicenseRequests(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, requests, total, p)
}

func (h *CivilHandler) GetLicenseRequest(w http.ResponseWriter, r *http.Request) {
	lr, err := h.service.GetLicenseRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, lr)
}

func (h *CivilHandler) ApproveLicenseRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewLicense(w, r, true)
}

func (h *CivilHandler) DenyLicenseRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewLicense(w, r, false)
}

func (h *CivilHandler) reviewLicense(w http.ResponseWriter, r *http.Request, approve bool) {
	actor := middleware.UserFromContext(r.Context())
	lr, err := h.service.ReviewLicenseRequest(r.Context(), r.PathValue("id"), approve, actor, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, lr)
}

// Quiz submissions (staff side)

func (h *CivilHandler) ListQuizSubmissions(w http.ResponseWriter, r *http.Request) {
	req, p := parseListRequest(r)
	subs, total, err := h.service.ListQuizSubmissions(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, subs, total, p)
}
