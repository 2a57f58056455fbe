package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
)

// AnalysesRepository stores completed analyses per owner identity.
type AnalysesRepository interface {
	Append(ctx context.Context, analysis *entity.Analysis) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]entity.Analysis, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*entity.Analysis, error)
}

// ErrAnalysisNotFound indicates there is no analysis with the given id for the owner.
var ErrAnalysisNotFound = errors.New("analysis not found")

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXAnalysesRepository implements AnalysesRepository using pgx.
type PGXAnalysesRepository struct {
	pool pgxPool
}

// NewPGXAnalysesRepository wires a pgx backed repository.
func NewPGXAnalysesRepository(pool *pgxpool.Pool) *PGXAnalysesRepository {
	return &PGXAnalysesRepository{pool: pool}
}

const analysisColumns = `id, owner, website, profile, lead_score, insights, created_at`

// Append inserts a new analysis. Missing id and timestamp are filled in.
func (r *PGXAnalysesRepository) Append(ctx context.Context, analysis *entity.Analysis) error {
	if analysis == nil {
		return fmt.Errorf("analysis payload is nil")
	}
	if strings.TrimSpace(analysis.Owner) == "" {
		return fmt.Errorf("analysis owner is required")
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	if analysis.Website == "" {
		analysis.Website = analysis.Profile.Website
	}

	profileJSON, err := json.Marshal(analysis.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	scoreJSON, err := nullableJSON(analysis.Score)
	if err != nil {
		return fmt.Errorf("marshal lead score: %w", err)
	}
	insightsJSON, err := nullableJSON(analysis.Insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	query := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7)
	`
	_, err = r.pool.Exec(ctx, query,
		analysis.ID,
		analysis.Owner,
		analysis.Website,
		string(profileJSON),
		scoreJSON,
		insightsJSON,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's analyses, newest first.
func (r *PGXAnalysesRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]entity.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE owner = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// Get returns one analysis owned by owner.
func (r *PGXAnalysesRepository) Get(ctx context.Context, owner string, id uuid.UUID) (*entity.Analysis, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE owner = $1 AND id = $2
	`
	analysis, err := scanAnalysis(r.pool.QueryRow(ctx, query, owner, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("fetch analysis: %w", err)
	}
	return analysis, nil
}

func scanAnalyses(rows pgx.Rows) ([]entity.Analysis, error) {
	var out []entity.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

func scanAnalysis(row pgx.Row) (*entity.Analysis, error) {
	var (
		record       entity.Analysis
		profileJSON  []byte
		scoreJSON    []byte
		insightsJSON []byte
	)
	if err := row.Scan(
		&record.ID,
		&record.Owner,
		&record.Website,
		&profileJSON,
		&scoreJSON,
		&insightsJSON,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(profileJSON, &record.Profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if hasJSON(scoreJSON) {
		record.Score = &entity.LeadScore{}
		if err := json.Unmarshal(scoreJSON, record.Score); err != nil {
			return nil, fmt.Errorf("unmarshal lead score: %w", err)
		}
	}
	if hasJSON(insightsJSON) {
		record.Insights = &entity.Insights{}
		if err := json.Unmarshal(insightsJSON, record.Insights); err != nil {
			return nil, fmt.Errorf("unmarshal insights: %w", err)
		}
	}
	return &record, nil
}

func nullableJSON[T any](value *T) (any, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func hasJSON(raw []byte) bool {
	return len(raw) > 0 && string(raw) != "null"
}
