package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"myfunzone/config"
	"myfunzone/infras/otel/mocks"
	analyticsMocks "myfunzone/internal/domains/analytics/mocks"
	"myfunzone/internal/domains/analytics/model"
	"myfunzone/internal/domains/analytics/model/dto"
	"myfunzone/internal/domains/analytics/service"
	cacheMocks "myfunzone/shared/cache/mocks"
)

func newService(ctrl *gomock.Controller) (service.Analytics, *analyticsMocks.MockAnalytics, *cacheMocks.MockRedisCache) {
	repo := analyticsMocks.NewMockAnalytics(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, redisCache, mocks.NewOtel()), repo, redisCache
}

func expectCacheMiss(redisCache *cacheMocks.MockRedisCache) {
	redisCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	redisCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestAnalyticsService_GetRevenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)
	query := dto.RangeQuery{DateFrom: "2026-08-01", DateTo: "2026-08-31"}

	t.Run("totals the daily amounts", func(t *testing.T) {
		expectCacheMiss(redisCache)

		repo.EXPECT().
			GetRevenue(gomock.Any(), query.DateFrom, query.DateTo).
			Return([]model.RevenueByDate{
				{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Amount: 150000},
				{Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Amount: 250000},
			}, nil)

		res, err := svc.GetRevenue(context.Background(), query)
		assert.NoError(t, err)
		assert.Equal(t, float64(400000), res.TotalRevenue)
		assert.Len(t, res.ByDate, 2)
		assert.Equal(t, "2026-08-01", res.ByDate[0].Date)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.GetRevenue(context.Background(), query)
		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		expectCacheMiss(redisCache)

		repo.EXPECT().
			GetRevenue(gomock.Any(), query.DateFrom, query.DateTo).
			Return(nil, errors.New("query failed"))

		_, err := svc.GetRevenue(context.Background(), query)
		assert.Error(t, err)
	})
}

func TestAnalyticsService_GetCancellationRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)
	query := dto.RangeQuery{DateFrom: "2026-08-01", DateTo: "2026-08-31"}

	t.Run("rate is a rounded percentage", func(t *testing.T) {
		expectCacheMiss(redisCache)

		repo.EXPECT().
			GetBookingCounts(gomock.Any(), query.DateFrom, query.DateTo).
			Return(model.BookingCounts{Total: 3, Cancelled: 1}, nil)

		res, err := svc.GetCancellationRate(context.Background(), query)
		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalBookings)
		assert.Equal(t, 1, res.CancelledBookings)
		assert.Equal(t, 33.33, res.CancellationRate)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("no bookings means a zero rate", func(t *testing.T) {
		expectCacheMiss(redisCache)

		repo.EXPECT().
			GetBookingCounts(gomock.Any(), query.DateFrom, query.DateTo).
			Return(model.BookingCounts{}, nil)

		res, err := svc.GetCancellationRate(context.Background(), query)
		assert.NoError(t, err)
		assert.Zero(t, res.CancellationRate)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestAnalyticsService_GetActiveUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)
	query := dto.RangeQuery{DateFrom: "2026-08-01"}

	expectCacheMiss(redisCache)

	repo.EXPECT().
		GetActiveUsers(gomock.Any(), query.DateFrom, query.DateTo).
		Return(42, nil)

	res, err := svc.GetActiveUsers(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, 42, res.ActiveUsers)

	time.Sleep(10 * time.Millisecond)
}

func TestAnalyticsService_GetPeakHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)
	query := dto.RangeQuery{}

	expectCacheMiss(redisCache)

	repo.EXPECT().
		GetPeakHours(gomock.Any(), query.DateFrom, query.DateTo).
		Return([]model.PeakHour{
			{Hour: 19, Bookings: 12},
			{Hour: 20, Bookings: 9},
		}, nil)

	res, err := svc.GetPeakHours(context.Background(), query)
	assert.NoError(t, err)
	assert.Len(t, res.PeakHours, 2)
	assert.Equal(t, 19, res.PeakHours[0].Hour)
	assert.Equal(t, 12, res.PeakHours[0].Bookings)

	time.Sleep(10 * time.Millisecond)
}
