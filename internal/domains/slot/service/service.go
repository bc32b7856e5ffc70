package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	bookingModel "myfunzone/internal/domains/booking/model"
	gameModel "myfunzone/internal/domains/game/model"
	gameRepo "myfunzone/internal/domains/game/repository"
	"myfunzone/internal/domains/slot/model"
	"myfunzone/internal/domains/slot/model/dto"
	"myfunzone/internal/domains/slot/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
)

const (
	cacheGetAllSlot       = "slot:gets"
	cacheCountSlot        = "slot:count"
	CacheSlotAvailability = "slot:availability"
)

type Slot interface {
	Create(ctx context.Context, req dto.CreateSlotRequest) error
	CreateRange(ctx context.Context, req dto.CreateSlotRangeRequest) (dto.CreateSlotRangeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSlotsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetAvailability(ctx context.Context, query dto.AvailabilityQuery) (dto.GetAvailabilityResponse, error)
	Update(ctx context.Context, req dto.UpdateSlotRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Slot
	gameRepo    gameRepo.Game
	bookingRepo bookingExistChecker
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

// bookingExistChecker is the thin slice of the booking repository the slot
// domain needs: refusing to delete a slot that still holds live bookings.
type bookingExistChecker interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

func New(repo repository.Slot, gameRepo gameRepo.Game, bookingRepo bookingExistChecker, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:        repo,
		gameRepo:    gameRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// getGame loads the game a slot is created under. The returned row seeds
// the slot's capacity and price snapshot.
func (s *serviceImpl) getGame(ctx context.Context, gameID string) (gameModel.Game, error) {
	game, err := s.gameRepo.Get(ctx, shared.FilterByID(gameID, gameModel.FieldID, gameModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get game")

		return game, fmt.Errorf("failed to get game: %w", err)
	}

	if game.ID == constant.Empty {
		return game, failure.BadRequestFromString("game does not exist") // nolint:wrapcheck
	}

	return game, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllSlot)
	shared.InvalidateCaches(c, s.cache, cacheCountSlot)
	shared.InvalidateCaches(c, s.cache, CacheSlotAvailability)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}

	if req.StartTime >= req.EndTime {
		return failure.BadRequestFromString("start time must be before end time") // nolint:wrapcheck
	}

	slot, err := req.ToModel(user, game)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse slot request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to create slot")

		return fmt.Errorf("failed to create slot: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) CreateRange(ctx context.Context, req dto.CreateSlotRangeRequest) (res dto.CreateSlotRangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return res, err
	}

	if req.StartTime >= req.EndTime {
		return res, failure.BadRequestFromString("start time must be before end time") // nolint:wrapcheck
	}

	if req.StartDate > req.EndDate {
		return res, failure.BadRequestFromString("start date must not be after end date") // nolint:wrapcheck
	}

	slots, err := req.ToModels(user, game)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse slot range request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.InsertBulk(ctx, slots); err != nil {
		log.Error().Err(err).Msg("failed to create slots")

		return res, fmt.Errorf("failed to create slots: %w", err)
	}

	res.CreatedCount = len(slots)

	go s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slot count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAvailability(ctx context.Context, query dto.AvailabilityQuery) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheSlotAvailability, query.GameID, query.DateFrom, query.DateTo, fmt.Sprintf("%t", query.IncludeFull))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slot availability")

		return res, nil
	}

	models, err := s.repo.GetAvailability(ctx, query.GameID, query.DateFrom, query.DateTo, query.IncludeFull)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot availability")

		return res, fmt.Errorf("failed to get slot availability: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSlotRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateSlotRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if slot exists")

		return fmt.Errorf("failed to check if slot exists: %w", err)
	}

	if !exist {
		return failure.NotFound("slot not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update slot")

		return fmt.Errorf("failed to update slot: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if slot exists")

		return fmt.Errorf("failed to check if slot exists: %w", err)
	}

	if !exist {
		return failure.NotFound("slot not found") // nolint:wrapcheck
	}

	hasLiveBookings, err := s.bookingRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldSlotID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{constant.BookingStatusBooked, constant.BookingStatusCheckedIn},
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot bookings")

		return fmt.Errorf("failed to check slot bookings: %w", err)
	}

	if hasLiveBookings {
		return failure.Conflict("slot still has active bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}
