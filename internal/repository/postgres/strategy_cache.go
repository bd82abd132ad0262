package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type strategyCacheRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStrategyCacheRepository creates a new strategy cache repository
func NewStrategyCacheRepository(db *sql.DB, logger *zap.Logger) *strategyCacheRepository {
	return &strategyCacheRepository{
		db:     db,
		logger: logger,
	}
}

func (r *strategyCacheRepository) Get(ctx context.Context, scope string) (*domain.StrategyCache, error) {
	query := `
		SELECT scope, content, updated_by, updated_at
		FROM strategy_cache
		WHERE scope = $1
	`

	var s domain.StrategyCache
	err := r.db.QueryRowContext(ctx, query, scope).Scan(&s.Scope, &s.Content, &s.UpdatedBy, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "strategy cache", ID: scope}
	}
	if err != nil {
		r.logger.Error("Failed to get strategy cache", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *strategyCacheRepository) Upsert(ctx context.Context, s *domain.StrategyCache) error {
	query := `
		INSERT INTO strategy_cache (scope, content, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (scope)
		DO UPDATE SET content = EXCLUDED.content, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`

	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, s.Scope, s.Content, s.UpdatedBy, s.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert strategy cache", zap.Error(err))
		return err
	}
	return nil
}
