package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	"myfunzone/internal/domains/announcement/model"
	"myfunzone/internal/domains/announcement/model/dto"
	"myfunzone/internal/domains/announcement/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"
)

const (
	cacheGetAllAnnouncement = "announcement:gets"
	cacheReadStats          = "announcement:stats"
)

type Announcement interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetAnnouncementsResponse, error)
	Update(ctx context.Context, req dto.UpdateAnnouncementRequest, id string) error
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	ReadStats(ctx context.Context, id string) (dto.ReadStatsResponse, error)
}

type serviceImpl struct {
	repo  repository.Announcement
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Announcement, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Announcement {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllAnnouncement)
	shared.InvalidateCaches(c, s.cache, cacheReadStats)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAnnouncementRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	announcement, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse announcement request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid expiry date: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, announcement); err != nil {
		log.Error().Err(err).Msg("failed to create announcement")

		return fmt.Errorf("failed to create announcement: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetAnnouncementsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetAllAnnouncement, role, user, fmt.Sprintf("%d:%d", params.Page, params.Limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for announcements")

		return res, nil
	}

	total, err := s.repo.CountVisible(ctx, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to count announcements")

		return res, fmt.Errorf("failed to count announcements: %w", err)
	}

	models, err := s.repo.GetVisible(ctx, role, user, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcements")

		return res, fmt.Errorf("failed to get announcements: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save announcements to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAnnouncementRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateAnnouncementRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if announcement exists")

		return fmt.Errorf("failed to check if announcement exists: %w", err)
	}

	if !exist {
		return failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update announcement")

		return fmt.Errorf("failed to update announcement: %w", err)
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
		log.Error().Err(err).Msg("failed to check if announcement exists")

		return fmt.Errorf("failed to check if announcement exists: %w", err)
	}

	if !exist {
		return failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete announcement")

		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if announcement exists")

		return fmt.Errorf("failed to check if announcement exists: %w", err)
	}

	if !exist {
		return failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	read := model.AnnouncementRead{
		ID:             uuid.NewString(),
		AnnouncementID: id,
		UserID:         user,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.MarkRead(ctx, read); err != nil {
		log.Error().Err(err).Msg("failed to mark announcement as read")

		return fmt.Errorf("failed to mark announcement as read: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ReadStats(ctx context.Context, id string) (res dto.ReadStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReadStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheReadStats, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for read stats")

		return res, nil
	}

	announcement, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcement")

		return res, fmt.Errorf("failed to get announcement: %w", err)
	}

	if announcement.ID == constant.Empty {
		return res, failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	readers, err := s.repo.GetReaders(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get readers")

		return res, fmt.Errorf("failed to get readers: %w", err)
	}

	nonReaders, err := s.repo.GetNonReaders(ctx, id, announcement.TargetRole)
	if err != nil {
		log.Error().Err(err).Msg("failed to get non-readers")

		return res, fmt.Errorf("failed to get non-readers: %w", err)
	}

	res.FromModels(id, readers, nonReaders)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save read stats to cache")
		}
	}()

	return res, nil
}
