// Package services содержит логику бизнес-уровня каталога специалистов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

type ProviderRepository interface {
	GetProvider(ctx context.Context, providerUID string) (*models.Provider, error)
	ListAvailableProviders(ctx context.Context) ([]*models.Provider, error)
}

type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type ProviderService struct {
	repo  ProviderRepository
	cache Cache
	log   *slog.Logger
}

// listCacheKey ключ кэша списка доступных специалистов.
// Короткий TTL: занятость слотов меняется при каждом бронировании.
const (
	listCacheKey = "providers:available"
	listCacheTTL = time.Minute
)

func NewProviderService(repo ProviderRepository, cache Cache, log *slog.Logger) *ProviderService {
	return &ProviderService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListAvailable возвращает доступных специалистов вместе с занятыми слотами.
// Список отдается из кэша, при промахе читается из базы и кэшируется.
func (s *ProviderService) ListAvailable(ctx context.Context) ([]*models.Provider, error) {
	const op = "provider.ListAvailable"

	var cached []*models.Provider
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read providers from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	providers, err := s.repo.ListAvailableProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, listCacheKey, providers, listCacheTTL); err != nil {
		s.log.Warn("failed to cache providers", slog.String("key", listCacheKey), sl.Err(err))
	}
	return providers, nil
}

// Get возвращает одного специалиста по идентификатору.
func (s *ProviderService) Get(ctx context.Context, providerUID string) (*models.Provider, error) {
	const op = "provider.Get"

	provider, err := s.repo.GetProvider(ctx, providerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return provider, nil
}

// InvalidateList сбрасывает кэш списка после изменения занятости слотов
// или состава специалистов.
func (s *ProviderService) InvalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate providers cache", slog.String("key", listCacheKey), sl.Err(err))
	}
}
