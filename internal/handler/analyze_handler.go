package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/dto"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/fetcher"
	middleware "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/middleware"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service/scoring"
)

// Analyzer runs the analysis pipeline. *service.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, target string, opts service.AnalyzeOptions) (service.AnalysisResult, error)
}

// HistoryRecorder stores completed analyses. *service.HistoryService satisfies it.
type HistoryRecorder interface {
	Enabled() bool
	Record(ctx context.Context, owner string, result service.AnalysisResult) (*entity.Analysis, error)
}

// AnalyzeHandler exposes the analysis pipeline over HTTP.
type AnalyzeHandler struct {
	analyzer Analyzer
	history  HistoryRecorder
	logger   *zap.Logger
}

// NewAnalyzeHandler constructs the handler. history may be nil.
func NewAnalyzeHandler(analyzer Analyzer, history HistoryRecorder) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, history: history, logger: zap.L().Named("analyze")}
}

// Analyze handles POST /analyze requests.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return Error(c, http.StatusBadRequest, "url is required")
	}

	ctx := c.Request().Context()
	result, err := h.analyzer.Analyze(ctx, req.URL, service.AnalyzeOptions{SkipInsights: req.SkipInsights})
	if err != nil {
		return h.analysisError(c, result, err)
	}

	if owner := middleware.OwnerFromContext(c); owner != "" && h.history != nil && h.history.Enabled() {
		if _, err := h.history.Record(ctx, owner, result); err != nil {
			h.logger.Warn("failed to record analysis",
				zap.String("request_id", middleware.RequestIDFromContext(c)),
				zap.String("owner", owner),
				zap.Error(err))
		}
	}

	message := "analysis completed"
	if result.Degraded {
		message = "analysis completed without a reasoning backend"
	}
	return Success(c, http.StatusOK, message, result)
}

func (h *AnalyzeHandler) analysisError(c echo.Context, result service.AnalysisResult, err error) error {
	var (
		fetchErr   *fetcher.FetchError
		backendErr *scoring.BackendError
		parseErr   *scoring.ParseError
	)
	switch {
	case errors.As(err, &fetchErr):
		failure := dto.FetchFailure{
			URL:        fetchErr.URL,
			StatusCode: fetchErr.StatusCode,
			Timeout:    fetchErr.Timeout,
			Cause:      err.Error(),
		}
		return ErrorWithData(c, http.StatusUnprocessableEntity, "failed to fetch "+fetchErr.URL, failure)
	case errors.As(err, &backendErr):
		return backendFailure(c, backendErr.Backend, err, result)
	case errors.As(err, &parseErr):
		return backendFailure(c, parseErr.Backend, err, result)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Error(c, http.StatusGatewayTimeout, "analysis timed out")
	default:
		h.logger.Error("analysis failed",
			zap.String("request_id", middleware.RequestIDFromContext(c)),
			zap.Error(err))
		return Error(c, http.StatusInternalServerError, "analysis failed")
	}
}

func backendFailure(c echo.Context, backend string, err error, result service.AnalysisResult) error {
	return ErrorWithData(c, http.StatusBadGateway, "reasoning backend "+backend+" failed to score the lead", dto.BackendFailure{
		Backend: backend,
		Cause:   err.Error(),
		Profile: result.Profile,
	})
}
