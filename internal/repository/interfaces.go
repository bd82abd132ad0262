package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
)

// AdminTokenRepository defines admin token data access methods
type AdminTokenRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.AdminToken, error)
	Create(ctx context.Context, t *domain.AdminToken) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PricingConfigRepository defines access to the vessel/wax/wick collections
type PricingConfigRepository interface {
	ListVessels(ctx context.Context) ([]domain.Vessel, error)
	GetVesselByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error)
	CreateVessel(ctx context.Context, v *domain.Vessel) error
	UpdateVessel(ctx context.Context, v *domain.Vessel) error

	ListWaxes(ctx context.Context) ([]domain.Wax, error)
	CreateWax(ctx context.Context, w *domain.Wax) error
	UpdateWax(ctx context.Context, w *domain.Wax) error

	ListWicks(ctx context.Context) ([]domain.Wick, error)
	CreateWick(ctx context.Context, w *domain.Wick) error
	UpdateWick(ctx context.Context, w *domain.Wick) error
}

// ProductDraftRepository defines AI product draft data access methods
type ProductDraftRepository interface {
	Create(ctx context.Context, d *domain.ProductDraft) error
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.ProductDraft, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StrategyCacheRepository defines strategy cache data access methods
type StrategyCacheRepository interface {
	Get(ctx context.Context, scope string) (*domain.StrategyCache, error)
	Upsert(ctx context.Context, s *domain.StrategyCache) error
}

// DescriptionHistoryRepository defines description rewrite history access
type DescriptionHistoryRepository interface {
	Create(ctx context.Context, rev *domain.DescriptionRevision) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]*domain.DescriptionRevision, error)
}

// UserSettingRepository defines per-admin settings access
type UserSettingRepository interface {
	Get(ctx context.Context, email, key string) (*domain.UserSetting, error)
	Upsert(ctx context.Context, s *domain.UserSetting) error
}

// Repositories aggregates all repositories
type Repositories struct {
	AdminToken         AdminTokenRepository
	PricingConfig      PricingConfigRepository
	ProductDraft       ProductDraftRepository
	StrategyCache      StrategyCacheRepository
	DescriptionHistory DescriptionHistoryRepository
	UserSetting        UserSettingRepository
}
