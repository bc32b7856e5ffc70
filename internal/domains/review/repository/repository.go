package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/review/model"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/logger"
	gRepo "myfunzone/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReviewDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetGameRatingStats(ctx context.Context, gameID string) (model.RatingStats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	detail gRepo.Repository[model.ReviewDetail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.ReviewDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReviewDetail, error) {
	return repo.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.detail.Count(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetGameRatingStats(ctx context.Context, gameID string) (res model.RatingStats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.GetGameRatingStats")
	defer scope.End()

	query := `
		SELECT
			COALESCE(AVG(rating), 0) AS average_rating,
			COUNT(*) AS total_reviews
		FROM reviews
		WHERE game_id = :game_id`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"game_id": gameID,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get rating stats: %w", err)
	}

	return res, nil
}
