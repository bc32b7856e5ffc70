package repository

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=../mocks/payment_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/booking/model"
	gDto "myfunzone/shared/dto"
	gRepo "myfunzone/shared/repository"
)

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type paymentRepositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.PaymentEntityName, model.PaymentTableName, model.FieldPaymentID, db, otel),
		db:         db,
		otel:       otel,
	}
}
