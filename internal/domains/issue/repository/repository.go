package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/issue/model"
	gDto "myfunzone/shared/dto"
	gRepo "myfunzone/shared/repository"
)

type Issue interface {
	Insert(ctx context.Context, model model.IssueReport) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.IssueReport, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.IssueReportDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.IssueReport]
	detail gRepo.Repository[model.IssueReportDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Issue {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.IssueReport](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.IssueReportDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (repo *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.IssueReportDetail, error) {
	return repo.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.detail.Count(ctx, filter) //nolint:wrapcheck
}
