package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"exam-scoring-service/internal/app"
	"exam-scoring-service/internal/auth"
	"exam-scoring-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ExamHandler exposes submission and ranking use cases over HTTP.
type ExamHandler struct {
	service *app.ExamService
	log     *zap.Logger
}

func NewExamHandler(service *app.ExamService, log *zap.Logger) *ExamHandler {
	return &ExamHandler{service: service, log: log}
}

type submitRequest struct {
	Answers   []json.RawMessage `json:"answers"`
	TimeTaken *int              `json:"timeTaken"`
}

// Submit handles POST /tests/{testID}/submissions.
func (h *ExamHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, h.log, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}

	sub := domain.Submission{
		TestID:  chi.URLParam(r, "testID"),
		Answers: app.ParseAnswers(req.Answers),
	}
	if req.TimeTaken != nil {
		sub.TimeTaken = *req.TimeTaken
	}

	summary, err := h.service.Submit(r.Context(), auth.IdentityFromContext(r.Context()), sub)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// RankForTest handles GET /tests/{testID}/rank.
func (h *ExamHandler) RankForTest(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RankFor(r.Context(), auth.IdentityFromContext(r.Context()), chi.URLParam(r, "testID"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// RankForResult handles GET|POST /results/{resultID}/rank.
func (h *ExamHandler) RankForResult(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RankForResult(r.Context(), auth.IdentityFromContext(r.Context()), chi.URLParam(r, "resultID"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetResult handles GET /results/{resultID}.
func (h *ExamHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetResult(r.Context(), auth.IdentityFromContext(r.Context()), chi.URLParam(r, "resultID"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListResults handles GET /tests/{testID}/results.
func (h *ExamHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ListResults(r.Context(), auth.IdentityFromContext(r.Context()), chi.URLParam(r, "testID"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
