package repository

//go:generate go run go.uber.org/mock/mockgen -source=./checkin.go -destination=../mocks/checkin_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/booking/model"
	gRepo "myfunzone/shared/repository"
)

type Checkin interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Checkin) error
}

type checkinRepositoryImpl struct {
	gRepo.Repository[model.Checkin]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCheckin(db *postgres.Connection, otel otel.Otel) Checkin {
	return &checkinRepositoryImpl{
		Repository: gRepo.NewRepository[model.Checkin](model.CheckinEntityName, model.CheckinTableName, model.FieldCheckinID, db, otel),
		db:         db,
		otel:       otel,
	}
}
