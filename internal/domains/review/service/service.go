package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	bookingModel "myfunzone/internal/domains/booking/model"
	gameModel "myfunzone/internal/domains/game/model"
	"myfunzone/internal/domains/review/model"
	"myfunzone/internal/domains/review/model/dto"
	"myfunzone/internal/domains/review/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
)

const (
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"
	cacheRatingStats  = "review:stats"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) error
	GetByGame(ctx context.Context, gameID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetGameStats(ctx context.Context, gameID string) (dto.RatingStatsResponse, error)
}

// bookingDetailGetter is the slice of the booking repository reviews need:
// confirming the booking exists, belongs to the reviewer and has been used.
type bookingDetailGetter interface {
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (bookingModel.BookingDetail, error)
}

// gameChecker confirms the reviewed game exists before serving its stats.
type gameChecker interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingDetailGetter
	gameRepo    gameChecker
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Review, bookingRepo bookingDetailGetter, gameRepo gameChecker, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		gameRepo:    gameRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
	shared.InvalidateCaches(c, s.cache, cacheCountReview)
	shared.InvalidateCaches(c, s.cache, cacheRatingStats)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.Rating == nil && (req.Feedback == nil || *req.Feedback == constant.Empty) {
		return failure.BadRequestFromString("a rating or feedback is required") // nolint:wrapcheck
	}

	booking, err := s.bookingRepo.GetDetail(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if booking.Status != constant.BookingStatusCompleted {
		return failure.UnprocessableEntity("only completed bookings can be reviewed") // nolint:wrapcheck
	}

	reviewed, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    req.BookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return fmt.Errorf("failed to check existing review: %w", err)
	}

	if reviewed {
		return failure.Conflict("booking already has a review") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, booking.GameID)); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return fmt.Errorf("failed to create review: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetByGame(ctx context.Context, gameID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByGame")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGameID,
				Value:    gameID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetGameStats(ctx context.Context, gameID string) (res dto.RatingStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGameStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRatingStats, gameID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rating stats")

		return res, nil
	}

	gameExists, err := s.gameRepo.Exist(ctx, shared.FilterByID(gameID, gameModel.FieldID, gameModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if game exists")

		return res, fmt.Errorf("failed to check if game exists: %w", err)
	}

	if !gameExists {
		return res, failure.NotFound("game not found") // nolint:wrapcheck
	}

	stats, err := s.repo.GetGameRatingStats(ctx, gameID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rating stats")

		return res, fmt.Errorf("failed to get rating stats: %w", err)
	}

	res.FromModel(gameID, stats)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rating stats to cache")
		}
	}()

	return res, nil
}
