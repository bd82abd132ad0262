package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

const uniqueViolationCode = "23505"

// conflictError converts a Postgres unique-constraint violation into a
// field-level validation error so duplicates surface as 400, not 500. Any
// other error passes through unchanged.
func conflictError(err error, field, message string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
		return &errors.ErrValidation{
			Message: "duplicate " + field,
			Fields:  map[string]string{field: message},
		}
	}
	return err
}

type pricingConfigRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPricingConfigRepository creates a new pricing config repository
func NewPricingConfigRepository(db *sql.DB, logger *zap.Logger) *pricingConfigRepository {
	return &pricingConfigRepository{
		db:     db,
		logger: logger,
	}
}

func (r *pricingConfigRepository) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	query := `
		SELECT id, name, size_oz, base_cost_cents, margin_pct, supplier, status, created_at, updated_at
		FROM vessels
		ORDER BY name ASC, size_oz ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list vessels", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var vessels []domain.Vessel
	for rows.Next() {
		var v domain.Vessel
		var supplier sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &v.SizeOz, &v.BaseCostCents, &v.MarginPct, &supplier, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan vessel", zap.Error(err))
			return nil, err
		}
		if supplier.Valid && supplier.String != "" {
			v.Supplier = &supplier.String
		}
		vessels = append(vessels, v)
	}
	return vessels, rows.Err()
}

func (r *pricingConfigRepository) GetVesselByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	query := `
		SELECT id, name, size_oz, base_cost_cents, margin_pct, supplier, status, created_at, updated_at
		FROM vessels
		WHERE id = $1
	`
	var v domain.Vessel
	var supplier sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.SizeOz, &v.BaseCostCents, &v.MarginPct, &supplier, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "vessel", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get vessel by ID", zap.Error(err))
		return nil, err
	}
	if supplier.Valid && supplier.String != "" {
		v.Supplier = &supplier.String
	}
	return &v, nil
}

func (r *pricingConfigRepository) CreateVessel(ctx context.Context, v *domain.Vessel) error {
	query := `
		INSERT INTO vessels (id, name, size_oz, base_cost_cents, margin_pct, supplier, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}
	if v.Status == "" {
		v.Status = domain.VesselStatusEnabled
	}

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.SizeOz, v.BaseCostCents, v.MarginPct, v.Supplier, v.Status, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create vessel", zap.Error(err))
		return conflictError(err, "vessel", fmt.Sprintf("a vessel named %s at %doz already exists", v.Name, v.SizeOz))
	}
	return nil
}

func (r *pricingConfigRepository) UpdateVessel(ctx context.Context, v *domain.Vessel) error {
	query := `
		UPDATE vessels
		SET name = $2, size_oz = $3, base_cost_cents = $4, margin_pct = $5, supplier = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	v.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.SizeOz, v.BaseCostCents, v.MarginPct, v.Supplier, v.Status, v.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update vessel", zap.Error(err))
		return conflictError(err, "vessel", fmt.Sprintf("a vessel named %s at %doz already exists", v.Name, v.SizeOz))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "vessel", ID: v.ID.String()}
	}
	return nil
}

func (r *pricingConfigRepository) ListWaxes(ctx context.Context) ([]domain.Wax, error) {
	query := `
		SELECT id, name, price_per_oz_cents, created_at, updated_at
		FROM waxes
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list waxes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var waxes []domain.Wax
	for rows.Next() {
		var w domain.Wax
		if err := rows.Scan(&w.ID, &w.Name, &w.PricePerOzCents, &w.CreatedAt, &w.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan wax", zap.Error(err))
			return nil, err
		}
		waxes = append(waxes, w)
	}
	return waxes, rows.Err()
}

func (r *pricingConfigRepository) CreateWax(ctx context.Context, w *domain.Wax) error {
	query := `
		INSERT INTO waxes (id, name, price_per_oz_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.PricePerOzCents, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create wax", zap.Error(err))
		return conflictError(err, "wax", fmt.Sprintf("a wax named %s already exists", w.Name))
	}
	return nil
}

func (r *pricingConfigRepository) UpdateWax(ctx context.Context, w *domain.Wax) error {
	query := `
		UPDATE waxes
		SET name = $2, price_per_oz_cents = $3, updated_at = $4
		WHERE id = $1
	`

	w.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.PricePerOzCents, w.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update wax", zap.Error(err))
		return conflictError(err, "wax", fmt.Sprintf("a wax named %s already exists", w.Name))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "wax", ID: w.ID.String()}
	}
	return nil
}

func (r *pricingConfigRepository) ListWicks(ctx context.Context) ([]domain.Wick, error) {
	query := `
		SELECT id, name, cost_cents, created_at, updated_at
		FROM wicks
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list wicks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wicks []domain.Wick
	for rows.Next() {
		var w domain.Wick
		if err := rows.Scan(&w.ID, &w.Name, &w.CostCents, &w.CreatedAt, &w.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan wick", zap.Error(err))
			return nil, err
		}
		wicks = append(wicks, w)
	}
	return wicks, rows.Err()
}

func (r *pricingConfigRepository) CreateWick(ctx context.Context, w *domain.Wick) error {
	query := `
		INSERT INTO wicks (id, name, cost_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.CostCents, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create wick", zap.Error(err))
		return conflictError(err, "wick", fmt.Sprintf("a wick named %s already exists", w.Name))
	}
	return nil
}

func (r *pricingConfigRepository) UpdateWick(ctx context.Context, w *domain.Wick) error {
	query := `
		UPDATE wicks
		SET name = $2, cost_cents = $3, updated_at = $4
		WHERE id = $1
	`

	w.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.CostCents, w.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update wick", zap.Error(err))
		return conflictError(err, "wick", fmt.Sprintf("a wick named %s already exists", w.Name))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "wick", ID: w.ID.String()}
	}
	return nil
}
