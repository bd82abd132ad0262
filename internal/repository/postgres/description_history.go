package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
)

type descriptionHistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDescriptionHistoryRepository creates a new description history repository
func NewDescriptionHistoryRepository(db *sql.DB, logger *zap.Logger) *descriptionHistoryRepository {
	return &descriptionHistoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *descriptionHistoryRepository) Create(ctx context.Context, rev *domain.DescriptionRevision) error {
	query := `
		INSERT INTO description_history (id, product_id, original, rewritten, reasoning, requested_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		rev.ID,
		rev.ProductID,
		rev.Original,
		rev.Rewritten,
		rev.Reasoning,
		rev.RequestedBy,
		rev.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create description revision", zap.Error(err))
		return err
	}
	return nil
}

func (r *descriptionHistoryRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]*domain.DescriptionRevision, error) {
	query := `
		SELECT id, product_id, original, rewritten, reasoning, requested_by, created_at
		FROM description_history
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		r.logger.Error("Failed to list description history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var revs []*domain.DescriptionRevision
	for rows.Next() {
		var rev domain.DescriptionRevision
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Original, &rev.Rewritten, &rev.Reasoning, &rev.RequestedBy, &rev.CreatedAt); err != nil {
			r.logger.Error("Failed to scan description revision", zap.Error(err))
			return nil, err
		}
		revs = append(revs, &rev)
	}
	return revs, rows.Err()
}
