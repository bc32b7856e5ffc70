package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	"myfunzone/internal/domains/analytics/model/dto"
	"myfunzone/internal/domains/analytics/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
)

const (
	cacheRevenue          = "analytics:revenue"
	cacheCancellationRate = "analytics:cancellation_rate"
	cacheActiveUsers      = "analytics:active_users"
	cachePeakHours        = "analytics:peak_hours"
)

type Analytics interface {
	GetRevenue(ctx context.Context, query dto.RangeQuery) (dto.RevenueResponse, error)
	GetCancellationRate(ctx context.Context, query dto.RangeQuery) (dto.CancellationRateResponse, error)
	GetActiveUsers(ctx context.Context, query dto.RangeQuery) (dto.ActiveUsersResponse, error)
	GetPeakHours(ctx context.Context, query dto.RangeQuery) (dto.PeakHoursResponse, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save analytics to cache")
	}
}

func (s *serviceImpl) GetRevenue(ctx context.Context, query dto.RangeQuery) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRevenue, query.DateFrom, query.DateTo)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for revenue")

		return res, nil
	}

	models, err := s.repo.GetRevenue(ctx, query.DateFrom, query.DateTo)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue")

		return res, fmt.Errorf("failed to get revenue: %w", err)
	}

	res.FromModels(models)

	go s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetCancellationRate(ctx context.Context, query dto.RangeQuery) (res dto.CancellationRateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCancellationRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheCancellationRate, query.DateFrom, query.DateTo)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cancellation rate")

		return res, nil
	}

	counts, err := s.repo.GetBookingCounts(ctx, query.DateFrom, query.DateTo)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking counts")

		return res, fmt.Errorf("failed to get booking counts: %w", err)
	}

	res.FromModel(counts)

	go s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetActiveUsers(ctx context.Context, query dto.RangeQuery) (res dto.ActiveUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActiveUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheActiveUsers, query.DateFrom, query.DateTo)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for active users")

		return res, nil
	}

	activeUsers, err := s.repo.GetActiveUsers(ctx, query.DateFrom, query.DateTo)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active users")

		return res, fmt.Errorf("failed to get active users: %w", err)
	}

	res.ActiveUsers = activeUsers

	go s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetPeakHours(ctx context.Context, query dto.RangeQuery) (res dto.PeakHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPeakHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cachePeakHours, query.DateFrom, query.DateTo)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for peak hours")

		return res, nil
	}

	models, err := s.repo.GetPeakHours(ctx, query.DateFrom, query.DateTo)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak hours")

		return res, fmt.Errorf("failed to get peak hours: %w", err)
	}

	res.FromModels(models)

	go s.save(ctx, cacheKey, res)

	return res, nil
}
