package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"ausjobs/internal/delivery/http/dto"
	"ausjobs/internal/delivery/http/middleware"
	"ausjobs/internal/pipeline"
	"ausjobs/internal/pkg/response"
	"ausjobs/internal/store"
)

type RunsHandler struct {
	svc  *pipeline.Service
	runs store.RunStore
}

func NewRunsHandler(svc *pipeline.Service, runs store.RunStore) *RunsHandler {
	return &RunsHandler{svc: svc, runs: runs}
}

func (h *RunsHandler) RegisterRoutes(api fiber.Router) {
	if h == nil || api == nil {
		return
	}
	api.Post("/runs", h.HandleTrigger)
	api.Get("/runs/latest", h.HandleLatest)
}

// HandleTrigger runs a scrape synchronously and returns its result.
// Schedulers call this; a run can take minutes.
func (h *RunsHandler) HandleTrigger(c fiber.Ctx) error {
	var req dto.RunTriggerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	if strings.TrimSpace(req.Source) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "source is required", nil, nil)
	}
	if req.MaxJobs < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "max_jobs must not be negative", nil, nil)
	}

	res, err := h.svc.Run(c.Context(), pipeline.RunRequest{
		Source:  req.Source,
		MaxJobs: req.MaxJobs,
		Query:   req.Query,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	}

	out := dto.RunResultResponse{
		Success:        res.Success,
		Source:         res.Source,
		ScrapedCount:   res.Scraped,
		DuplicateCount: res.Duplicates,
		PatchedCount:   res.Patched,
		RejectedCount:  res.Rejected,
		ErrorCount:     res.Errors,
		Message:        res.Message,
	}
	return response.Success(c, fiber.StatusOK, "run completed", out)
}

func (h *RunsHandler) HandleLatest(c fiber.Ctx) error {
	src := strings.TrimSpace(c.Query("source"))
	if src == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "source is required", nil, nil)
	}

	run, err := h.runs.LatestRun(c.Context(), src)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	if run == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "no runs recorded for source", nil, nil)
	}

	out := dto.ScrapeRunResponse{
		ID:             run.ID.String(),
		Source:         run.Source,
		Status:         run.Status,
		StartedAt:      run.StartedAt.UTC().Format(time.RFC3339),
		ScrapedCount:   run.ScrapedCount,
		DuplicateCount: run.DuplicateCount,
		ErrorCount:     run.ErrorCount,
		Message:        run.Message,
	}
	if run.FinishedAt != nil {
		s := run.FinishedAt.UTC().Format(time.RFC3339)
		out.FinishedAt = &s
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
