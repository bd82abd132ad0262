package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type adminTokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminTokenRepository creates a new admin token repository
func NewAdminTokenRepository(db *sql.DB, logger *zap.Logger) *adminTokenRepository {
	return &adminTokenRepository{
		db:     db,
		logger: logger,
	}
}

// TokenLookupHash returns SHA256(token) hex, the indexed lookup column.
// bcrypt hashes are salted so the raw hash cannot be used for lookup.
func TokenLookupHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// HashToken hashes an admin token with bcrypt for storage.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (r *adminTokenRepository) GetByToken(ctx context.Context, token string) (*domain.AdminToken, error) {
	query := `
		SELECT id, email, token_hash, token_lookup, label, is_active, created_at
		FROM admin_tokens
		WHERE is_active = true AND token_lookup = $1
	`

	var t domain.AdminToken
	var label sql.NullString
	err := r.db.QueryRowContext(ctx, query, TokenLookupHash(token)).Scan(
		&t.ID,
		&t.Email,
		&t.TokenHash,
		&t.TokenLookup,
		&label,
		&t.IsActive,
		&t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrUnauthorized{Message: "invalid token"}
	}
	if err != nil {
		r.logger.Error("Failed to look up admin token", zap.Error(err))
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(t.TokenHash), []byte(token)) != nil {
		r.logger.Debug("Token lookup hit but bcrypt verification failed", zap.String("token_id", t.ID.String()))
		return nil, &errors.ErrUnauthorized{Message: "invalid token"}
	}

	if label.Valid {
		t.Label = &label.String
	}
	return &t, nil
}

func (r *adminTokenRepository) Create(ctx context.Context, t *domain.AdminToken) error {
	query := `
		INSERT INTO admin_tokens (id, email, token_hash, token_lookup, label, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Email,
		t.TokenHash,
		t.TokenLookup,
		t.Label,
		t.IsActive,
		t.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create admin token", zap.Error(err))
		return err
	}
	return nil
}

func (r *adminTokenRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE admin_tokens SET is_active = false WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate admin token", zap.Error(err))
		return err
	}
	return nil
}
