package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		AdminToken:         NewAdminTokenRepository(db, logger),
		PricingConfig:      NewPricingConfigRepository(db, logger),
		ProductDraft:       NewProductDraftRepository(db, logger),
		StrategyCache:      NewStrategyCacheRepository(db, logger),
		DescriptionHistory: NewDescriptionHistoryRepository(db, logger),
		UserSetting:        NewUserSettingRepository(db, logger),
	}
}
