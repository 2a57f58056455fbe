package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	middleware "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/middleware"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/repository"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service"
)

// HistoryReader lists stored analyses. *service.HistoryService satisfies it.
type HistoryReader interface {
	List(ctx context.Context, owner string, limit int) ([]entity.Analysis, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*entity.Analysis, error)
}

// HistoryHandler exposes the caller's analysis history.
type HistoryHandler struct {
	history HistoryReader
}

// NewHistoryHandler creates a new handler instance.
func NewHistoryHandler(history HistoryReader) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /analyses requests.
func (h *HistoryHandler) List(c echo.Context) error {
	owner := middleware.OwnerFromContext(c)
	if owner == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	items, err := h.history.List(c.Request().Context(), owner, parseIntDefault(c.QueryParam("limit"), 0))
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return Error(c, http.StatusServiceUnavailable, err.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to list analyses")
	}

	return Success(c, http.StatusOK, "analyses retrieved", items)
}

// Get handles GET /analyses/:id requests.
func (h *HistoryHandler) Get(c echo.Context) error {
	owner := middleware.OwnerFromContext(c)
	if owner == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid analysis id")
	}

	analysis, err := h.history.Get(c.Request().Context(), owner, id)
	switch {
	case errors.Is(err, repository.ErrAnalysisNotFound):
		return Error(c, http.StatusNotFound, "analysis not found")
	case errors.Is(err, service.ErrHistoryDisabled):
		return Error(c, http.StatusServiceUnavailable, err.Error())
	case err != nil:
		return Error(c, http.StatusInternalServerError, "failed to fetch analysis")
	}

	return Success(c, http.StatusOK, "analysis retrieved", analysis)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
