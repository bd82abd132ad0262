package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

type strategyService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

// NewStrategyService creates a new strategy service
func NewStrategyService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *strategyService {
	return &strategyService{
		repos:  repos,
		rdb:    rdb,
		logger: logger,
	}
}

// Get reads a strategy document, cache-aside through Redis. Cache failures
// degrade to the database, never to an error.
func (s *strategyService) Get(ctx context.Context, scope string) (*domain.StrategyCache, error) {
	key := fmt.Sprintf(redisx.KeyStrategyCache, scope)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var entry domain.StrategyCache
			if err := json.Unmarshal(cached, &entry); err == nil {
				return &entry, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Strategy cache read failed", zap.String("scope", scope), zap.Error(err))
		}
	}

	entry, err := s.repos.StrategyCache.Get(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(entry); err == nil {
			if err := s.rdb.Set(ctx, key, data, redisx.TTLStrategyCache).Err(); err != nil {
				s.logger.Warn("Strategy cache write failed", zap.String("scope", scope), zap.Error(err))
			}
		}
	}
	return entry, nil
}

// Set writes the document to the database and invalidates the cache entry.
func (s *strategyService) Set(ctx context.Context, scope, content, updatedBy string) (*domain.StrategyCache, error) {
	entry := &domain.StrategyCache{
		Scope:     scope,
		Content:   content,
		UpdatedBy: updatedBy,
	}
	if err := s.repos.StrategyCache.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, fmt.Sprintf(redisx.KeyStrategyCache, scope)).Err(); err != nil {
			s.logger.Warn("Strategy cache invalidation failed", zap.String("scope", scope), zap.Error(err))
		}
	}
	return entry, nil
}
