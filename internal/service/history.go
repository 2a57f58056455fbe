package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/repository"
)

// ErrHistoryDisabled is returned when no analyses store is configured.
var ErrHistoryDisabled = errors.New("analysis history is disabled")

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryService keeps per-caller analysis history on top of an AnalysesRepository.
type HistoryService struct {
	repo repository.AnalysesRepository
}

// NewHistoryService creates a history service. A nil repo disables history.
func NewHistoryService(repo repository.AnalysesRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Enabled reports whether analyses are persisted.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Record appends a completed analysis for owner. Failed fetches are not stored.
func (s *HistoryService) Record(ctx context.Context, owner string, result AnalysisResult) (*entity.Analysis, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, errors.New("owner is required")
	}
	if result.Profile.Failed() {
		return nil, errors.New("failed analyses are not recorded")
	}

	analysis := &entity.Analysis{
		Owner:    owner,
		Website:  result.Profile.Website,
		Profile:  result.Profile,
		Score:    result.Score,
		Insights: result.Insights,
	}
	if err := s.repo.Append(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// List returns the owner's most recent analyses.
func (s *HistoryService) List(ctx context.Context, owner string, limit int) ([]entity.Analysis, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	items, err := s.repo.ListByOwner(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Analysis{}
	}
	return items, nil
}

// Get returns one analysis owned by owner.
func (s *HistoryService) Get(ctx context.Context, owner string, id uuid.UUID) (*entity.Analysis, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	return s.repo.Get(ctx, owner, id)
}
