package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
	"github.com/precinct-systems/precinct-stack/records/internal/service"
)

// PublicHandler serves the unauthenticated citizen-facing endpoints.
type PublicHandler struct {
	service *service.RecordsService
}

func NewPublicHandler(service *service.RecordsService) *PublicHandler {
	return &PublicHandler{service: service}
}

// Wanted returns the at-large wanted list ordered by danger level.
func (h *PublicHandler) Wanted(w http.ResponseWriter, r *http.Request) {
	wanted, err := h.service.PublicWanted(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": wanted})
}

// News returns published announcements, newest first.
func (h *PublicHandler) News(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.PublicNews(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": posts})
}

// QuizQuestions serves the recruitment quiz. Correct answers are
// stripped by the model's JSON tags.
func (h *PublicHandler) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.service.QuizQuestions(),
	})
}

func (h *PublicHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.SubmitQuiz(r.Context(), &req, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, sub)
}

// SubmitLicenseRequest handles the public weapons-license form.
func (h *PublicHandler) SubmitLicenseRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lr, err := h.service.SubmitLicenseRequest(r.Context(), &req, httputil.GetClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteCreated(w, lr)
}
