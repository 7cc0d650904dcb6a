package v1

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/kurochkinivan/defect_reporter/internal/pipeline"
)

type AnalysisQueue interface {
	Enqueue(ctx context.Context, fileID domain.ID) error
}

type JobsController interface {
	State(fileID domain.ID) (*domain.ProcessingJob, bool)
	Active(fileID domain.ID) bool
	Cancel(fileID domain.ID) bool
}

type JobsRepository interface {
	Job(ctx context.Context, fileID domain.ID) (*domain.TrackedJob, error)
}

type AnalysesRepository interface {
	LatestAnalysis(ctx context.Context, fileID domain.ID) (*domain.AnalysisRecord, error)
	Series(ctx context.Context, analysisID int64) ([]*domain.DimensionEntry, error)
	AnalysesByFile(ctx context.Context, fileID domain.ID, limit, offset uint64) ([]*domain.AnalysisRecord, int, error)
}

type AnalysisHandler struct {
	log                *slog.Logger
	queue              AnalysisQueue
	controller         JobsController
	jobsRepository     JobsRepository
	analysesRepository AnalysesRepository
}

func NewAnalysisHandler(
	log *slog.Logger,
	queue AnalysisQueue,
	controller JobsController,
	jobsRepository JobsRepository,
	analysesRepository AnalysesRepository,
) *AnalysisHandler {
	return &AnalysisHandler{
		log:                log,
		queue:              queue,
		controller:         controller,
		jobsRepository:     jobsRepository,
		analysesRepository: analysesRepository,
	}
}

type StartAnalysisResponse struct {
	FileID domain.ID `json:"file_id"`
	Status string    `json:"status"`
}

func (h *AnalysisHandler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	fileID := domain.ID(chi.URLParam(r, "file_id"))

	err := h.queue.Enqueue(r.Context(), fileID)
	switch {
	case errors.Is(err, pipeline.ErrEmptyFileID):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, pipeline.ErrQueueFull):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, StartAnalysisResponse{FileID: fileID, Status: "queued"})
}

type GetAnalysisResponse struct {
	Job      *domain.TrackedJob       `json:"job,omitempty"`
	Polling  bool                     `json:"polling"`
	Analysis *domain.AnalysisRecord   `json:"analysis,omitempty"`
	Series   []*domain.DimensionEntry `json:"series,omitempty"`
}

// GetAnalysis returns the freshest known job state, preferring the live
// snapshot over the stored one, and the latest stored analysis.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileID := domain.ID(chi.URLParam(r, "file_id"))

	resp := GetAnalysisResponse{Polling: h.controller.Active(fileID)}

	if job, ok := h.controller.State(fileID); ok {
		resp.Job = domain.NewTrackedJob(fileID, job)
	} else {
		job, err := h.jobsRepository.Job(ctx, fileID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			h.internalError(w, r, err)
			return
		default:
			resp.Job = job
		}
	}

	analysis, err := h.analysesRepository.LatestAnalysis(ctx, fileID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		h.internalError(w, r, err)
		return
	default:
		resp.Analysis = analysis

		resp.Series, err = h.analysesRepository.Series(ctx, analysis.ID)
		if err != nil {
			h.internalError(w, r, err)
			return
		}
	}

	if resp.Job == nil && resp.Analysis == nil {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) CancelAnalysis(w http.ResponseWriter, r *http.Request) {
	fileID := domain.ID(chi.URLParam(r, "file_id"))

	if !h.controller.Cancel(fileID) {
		http.Error(w, "no active analysis", http.StatusNotFound)
		return
	}

	h.log.InfoContext(r.Context(), "analysis cancelled", slog.String("file_id", fileID.String()))

	w.WriteHeader(http.StatusNoContent)
}

type GetHistoryResponse struct {
	Analyses   []*domain.AnalysisRecord `json:"analyses"`
	Pagination Pagination               `json:"pagination"`
}

func (h *AnalysisHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	fileID := domain.ID(chi.URLParam(r, "file_id"))

	page, limit, err := h.parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	offset := (page - 1) * limit

	analyses, total, err := h.analysesRepository.AnalysesByFile(r.Context(), fileID, limit, offset)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if analyses == nil {
		analyses = []*domain.AnalysisRecord{}
	}

	writeJSON(w, http.StatusOK, GetHistoryResponse{
		Analyses:   analyses,
		Pagination: NewPagination(page, limit, total),
	})
}

func (h *AnalysisHandler) parsePagination(r *http.Request) (page uint64, limit uint64, err error) {
	page, limit = 1, 10

	if p := r.URL.Query().Get("page"); p != "" {
		page, err = strconv.ParseUint(p, 10, 64)
		if err != nil || page == 0 {
			return 0, 0, errors.New("invalid page")
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 || limit > 100 {
			return 0, 0, errors.New("invalid limit, must be in [1;100]")
		}
	}

	return page, limit, nil
}

func (h *AnalysisHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
