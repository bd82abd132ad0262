package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type productDraftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductDraftRepository creates a new product draft repository
func NewProductDraftRepository(db *sql.DB, logger *zap.Logger) *productDraftRepository {
	return &productDraftRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productDraftRepository) Create(ctx context.Context, d *domain.ProductDraft) error {
	query := `
		INSERT INTO ai_product_drafts (token, title, description, tags, price_cents, reasoning, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if d.Token == uuid.Nil {
		d.Token = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		d.Token,
		d.Title,
		d.Description,
		pq.Array(d.Tags),
		d.PriceCents,
		d.Reasoning,
		d.ExpiresAt,
		d.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product draft", zap.Error(err))
		return err
	}
	return nil
}

func (r *productDraftRepository) GetByToken(ctx context.Context, token uuid.UUID) (*domain.ProductDraft, error) {
	query := `
		SELECT token, title, description, tags, price_cents, reasoning, expires_at, created_at
		FROM ai_product_drafts
		WHERE token = $1 AND expires_at > NOW()
	`

	var d domain.ProductDraft
	var priceCents sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&d.Token,
		&d.Title,
		&d.Description,
		pq.Array(&d.Tags),
		&priceCents,
		&d.Reasoning,
		&d.ExpiresAt,
		&d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product draft", ID: token.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product draft", zap.Error(err))
		return nil, err
	}
	if priceCents.Valid {
		p := int(priceCents.Int64)
		d.PriceCents = &p
	}
	return &d, nil
}

func (r *productDraftRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM ai_product_drafts WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		r.logger.Error("Failed to delete expired drafts", zap.Error(err))
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
