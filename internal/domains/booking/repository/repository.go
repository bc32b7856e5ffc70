package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/booking/model"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/logger"
	gRepo "myfunzone/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
	LockSlotOccupancy(ctx context.Context, tx *sqlx.Tx, slotID string) (model.SlotOccupancy, error)
	CancelBookedTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, id string) (bool, error)
	HasRefundedBooking(ctx context.Context, userID, slotID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.BookingDetail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	return repo.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return repo.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.detail.Count(ctx, filter) //nolint:wrapcheck
}

// LockSlotOccupancy reads one slot together with its game and the
// headcount already reserved, taking a row lock on the slot. Concurrent
// reservations against the same slot serialize on this lock, so the
// occupancy stays accurate until the surrounding transaction commits.
func (repo *repositoryImpl) LockSlotOccupancy(ctx context.Context, tx *sqlx.Tx, slotID string) (res model.SlotOccupancy, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LockSlotOccupancy")
	defer scope.End()

	query := `
		SELECT
			slots.id AS slot_id,
			slots.game_id,
			slots.slot_date,
			slots.start_time,
			slots.end_time,
			slots.active AS slot_active,
			games.active AS game_active,
			slots.price,
			slots.max_players,
			(
				SELECT COALESCE(SUM(number_of_players), 0)
				FROM bookings
				WHERE slot_id = slots.id AND status IN (:status_booked, :status_checked_in)
			) AS booked
		FROM slots
		JOIN games ON games.id = slots.game_id
		WHERE slots.id = :slot_id
		FOR UPDATE OF slots`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"slot_id":           slotID,
		"status_booked":     constant.BookingStatusBooked,
		"status_checked_in": constant.BookingStatusCheckedIn,
	}

	prepare, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &res, args)
	if errors.Is(err, sql.ErrNoRows) {
		return res, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to lock slot occupancy: %w", err)
	}

	return res, nil
}

// CancelBookedTx applies the cancellation fields only while the booking
// still holds the booked status, reporting whether a row changed. A
// check-in that lands between the guard read and this update leaves the
// row untouched instead of being overwritten.
func (repo *repositoryImpl) CancelBookedTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CancelBookedTx")
	defer scope.End()

	set := make([]string, 0, len(fields))
	args := map[string]any{
		"booking_id":    id,
		"status_booked": constant.BookingStatusBooked,
	}

	for col, val := range fields {
		set = append(set, fmt.Sprintf("%s = :%s", col, col))
		args[col] = val
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = :booking_id AND status = :status_booked",
		model.TableName, strings.Join(set, ", "),
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read cancelled rows: %w", err)
	}

	return affected > 0, nil
}

// HasRefundedBooking reports whether the user already holds a cancelled,
// refunded booking for the slot.
func (repo *repositoryImpl) HasRefundedBooking(ctx context.Context, userID, slotID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasRefundedBooking")
	defer scope.End()

	query := `
		SELECT EXISTS(
			SELECT 1
			FROM bookings
			JOIN payments ON payments.booking_id = bookings.id
			WHERE bookings.user_id = :user_id
				AND bookings.slot_id = :slot_id
				AND bookings.status = :status_cancelled
				AND payments.status = :payment_refunded
		)`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"user_id":          userID,
		"slot_id":          slotID,
		"status_cancelled": constant.BookingStatusCancelled,
		"payment_refunded": constant.PaymentStatusRefunded,
	}

	exist := false

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exist, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check refunded booking: %w", err)
	}

	return exist, nil
}
