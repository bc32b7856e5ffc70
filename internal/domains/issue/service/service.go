package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	gameModel "myfunzone/internal/domains/game/model"
	"myfunzone/internal/domains/issue/model"
	"myfunzone/internal/domains/issue/model/dto"
	"myfunzone/internal/domains/issue/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
)

const (
	cacheGetAllIssue = "issue:gets"
	cacheCountIssue  = "issue:count"
)

type Issue interface {
	Create(ctx context.Context, req dto.CreateIssueRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetIssuesResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetIssuesResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateIssueStatusRequest) error
}

// gameChecker confirms the reported game exists before a report is filed.
type gameChecker interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type serviceImpl struct {
	repo     repository.Issue
	gameRepo gameChecker
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Issue, gameRepo gameChecker, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Issue {
	return &serviceImpl{
		repo:     repo,
		gameRepo: gameRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllIssue)
	shared.InvalidateCaches(c, s.cache, cacheCountIssue)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateIssueRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	gameExists, err := s.gameRepo.Exist(ctx, shared.FilterByID(req.GameID, gameModel.FieldID, gameModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if game exists")

		return fmt.Errorf("failed to check if game exists: %w", err)
	}

	if !gameExists {
		return failure.BadRequestFromString("game not found") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create issue report")

		return fmt.Errorf("failed to create issue report: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetIssuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllIssue, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for issue reports")

		return res, nil
	}

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count issue reports")

		return res, fmt.Errorf("failed to count issue reports: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get issue reports")

		return res, fmt.Errorf("failed to get issue reports: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save issue reports to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetIssuesResponse, err error) {
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

	return s.GetAll(ctx, params, filter)
}

// UpdateStatus moves an issue one step forward. Reports only ever move
// open to in_progress to resolved, never backwards.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateIssueStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	issue, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get issue report")

		return fmt.Errorf("failed to get issue report: %w", err)
	}

	if issue.ID == constant.Empty {
		return failure.NotFound("issue report not found") // nolint:wrapcheck
	}

	allowed := (req.Status == constant.IssueStatusInProgress && issue.Status == constant.IssueStatusOpen) ||
		(req.Status == constant.IssueStatusResolved && issue.Status == constant.IssueStatusInProgress)
	if !allowed {
		return failure.UnprocessableEntity( // nolint:wrapcheck
			fmt.Sprintf("cannot move a %s issue to %s", issue.Status, req.Status),
		)
	}

	statusFields := shared.TransformFields(dto.UpdateStatusFields{Status: req.Status}, user)
	if err = s.repo.Update(ctx, statusFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update issue status")

		return fmt.Errorf("failed to update issue status: %w", err)
	}

	go s.invalidate(ctx)

	return nil
}
