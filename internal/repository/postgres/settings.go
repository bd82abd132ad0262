package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type userSettingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserSettingRepository creates a new user setting repository
func NewUserSettingRepository(db *sql.DB, logger *zap.Logger) *userSettingRepository {
	return &userSettingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userSettingRepository) Get(ctx context.Context, email, key string) (*domain.UserSetting, error) {
	query := `
		SELECT email, key, value, updated_at
		FROM user_settings
		WHERE email = $1 AND key = $2
	`

	var s domain.UserSetting
	err := r.db.QueryRowContext(ctx, query, email, key).Scan(&s.Email, &s.Key, &s.Value, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user setting", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get user setting", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *userSettingRepository) Upsert(ctx context.Context, s *domain.UserSetting) error {
	query := `
		INSERT INTO user_settings (email, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, s.Email, s.Key, s.Value, s.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert user setting", zap.Error(err))
		return err
	}
	return nil
}
