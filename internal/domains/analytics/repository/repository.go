package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/analytics/model"
	"myfunzone/shared/constant"
	"myfunzone/shared/logger"
)

type Analytics interface {
	GetRevenue(ctx context.Context, dateFrom, dateTo string) ([]model.RevenueByDate, error)
	GetBookingCounts(ctx context.Context, dateFrom, dateTo string) (model.BookingCounts, error)
	GetActiveUsers(ctx context.Context, dateFrom, dateTo string) (int, error)
	GetPeakHours(ctx context.Context, dateFrom, dateTo string) ([]model.PeakHour, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// rangeConditions appends slot-date bounds when they are set. Bounds are
// inclusive on both sides.
func rangeConditions(dateFrom, dateTo string, args map[string]any) []string {
	conditions := []string{}

	if dateFrom != constant.Empty {
		conditions = append(conditions, "slots.slot_date >= :date_from")
		args["date_from"] = dateFrom
	}

	if dateTo != constant.Empty {
		conditions = append(conditions, "slots.slot_date <= :date_to")
		args["date_to"] = dateTo
	}

	return conditions
}

func (repo *repositoryImpl) selectAll(ctx context.Context, scope otel.Scope, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query %s: %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) selectOne(ctx context.Context, scope otel.Scope, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query %s: %w", model.EntityName, err)
	}

	return nil
}

// GetRevenue sums payment amounts per slot date. Cancelled and no-show
// bookings are excluded, their money either never settled or was refunded.
func (repo *repositoryImpl) GetRevenue(ctx context.Context, dateFrom, dateTo string) (res []model.RevenueByDate, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.GetRevenue")
	defer scope.End()

	args := map[string]any{
		"status_booked":     constant.BookingStatusBooked,
		"status_checked_in": constant.BookingStatusCheckedIn,
		"status_completed":  constant.BookingStatusCompleted,
	}

	conditions := []string{"bookings.status IN (:status_booked, :status_checked_in, :status_completed)"}
	conditions = append(conditions, rangeConditions(dateFrom, dateTo, args)...)

	query := fmt.Sprintf(`
		SELECT slots.slot_date, SUM(payments.amount) AS amount
		FROM bookings
		JOIN payments ON payments.booking_id = bookings.id
		JOIN slots ON slots.id = bookings.slot_id
		WHERE %s
		GROUP BY slots.slot_date
		ORDER BY slots.slot_date`, strings.Join(conditions, " AND "))

	res = []model.RevenueByDate{}
	if err = repo.selectAll(ctx, scope, query, args, &res); err != nil {
		return nil, err
	}

	return res, nil
}

func (repo *repositoryImpl) GetBookingCounts(ctx context.Context, dateFrom, dateTo string) (res model.BookingCounts, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.GetBookingCounts")
	defer scope.End()

	args := map[string]any{
		"status_cancelled": constant.BookingStatusCancelled,
	}

	conditions := []string{"TRUE"}
	conditions = append(conditions, rangeConditions(dateFrom, dateTo, args)...)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE bookings.status = :status_cancelled) AS cancelled
		FROM bookings
		JOIN slots ON slots.id = bookings.slot_id
		WHERE %s`, strings.Join(conditions, " AND "))

	if err = repo.selectOne(ctx, scope, query, args, &res); err != nil {
		return res, err
	}

	return res, nil
}

func (repo *repositoryImpl) GetActiveUsers(ctx context.Context, dateFrom, dateTo string) (res int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.GetActiveUsers")
	defer scope.End()

	args := map[string]any{}

	conditions := []string{"TRUE"}
	conditions = append(conditions, rangeConditions(dateFrom, dateTo, args)...)

	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT bookings.user_id)
		FROM bookings
		JOIN slots ON slots.id = bookings.slot_id
		WHERE %s`, strings.Join(conditions, " AND "))

	if err = repo.selectOne(ctx, scope, query, args, &res); err != nil {
		return 0, err
	}

	return res, nil
}

func (repo *repositoryImpl) GetPeakHours(ctx context.Context, dateFrom, dateTo string) (res []model.PeakHour, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.GetPeakHours")
	defer scope.End()

	args := map[string]any{}

	conditions := []string{"TRUE"}
	conditions = append(conditions, rangeConditions(dateFrom, dateTo, args)...)

	query := fmt.Sprintf(`
		SELECT EXTRACT(HOUR FROM slots.start_time)::int AS hour, COUNT(*) AS bookings
		FROM bookings
		JOIN slots ON slots.id = bookings.slot_id
		WHERE %s
		GROUP BY hour
		ORDER BY bookings DESC, hour ASC`, strings.Join(conditions, " AND "))

	res = []model.PeakHour{}
	if err = repo.selectAll(ctx, scope, query, args, &res); err != nil {
		return nil, err
	}

	return res, nil
}
