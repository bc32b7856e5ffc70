package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/slot/model"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/logger"
	gRepo "myfunzone/shared/repository"
)

type Slot interface {
	Insert(ctx context.Context, model model.Slot) error
	InsertBulk(ctx context.Context, models []model.Slot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetAvailability(ctx context.Context, gameID, dateFrom, dateTo string, includeFull bool) ([]model.SlotAvailability, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetAvailability lists slots with their remaining headcount. Only
// bookings still holding capacity (booked or checked in) count against a
// slot. Full slots are hidden unless includeFull is set.
func (repo *repositoryImpl) GetAvailability(ctx context.Context, gameID, dateFrom, dateTo string, includeFull bool) ([]model.SlotAvailability, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetAvailability")
	defer scope.End()

	args := map[string]any{
		"status_booked":     constant.BookingStatusBooked,
		"status_checked_in": constant.BookingStatusCheckedIn,
	}

	conditions := []string{"slots.active = TRUE", "games.active = TRUE"}

	if gameID != "" {
		conditions = append(conditions, "slots.game_id = :game_id")
		args["game_id"] = gameID
	}

	if dateFrom != "" {
		conditions = append(conditions, "slots.slot_date >= :date_from")
		args["date_from"] = dateFrom
	}

	if dateTo != "" {
		conditions = append(conditions, "slots.slot_date <= :date_to")
		args["date_to"] = dateTo
	}

	if !includeFull {
		conditions = append(conditions, "slots.max_players - COALESCE(booked.players, 0) > 0")
	}

	query := fmt.Sprintf(`
		SELECT
			slots.id,
			slots.game_id,
			games.name AS game_name,
			slots.price,
			slots.max_players,
			slots.slot_date,
			slots.start_time,
			slots.end_time,
			COALESCE(booked.players, 0) AS booked,
			slots.max_players - COALESCE(booked.players, 0) AS available
		FROM slots
		JOIN games ON games.id = slots.game_id
		LEFT JOIN (
			SELECT slot_id, SUM(number_of_players) AS players
			FROM bookings
			WHERE status IN (:status_booked, :status_checked_in)
			GROUP BY slot_id
		) booked ON booked.slot_id = slots.id
		WHERE %s
		ORDER BY slots.slot_date, slots.start_time`, strings.Join(conditions, " AND "))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []model.SlotAvailability

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get slot availability: %w", err)
	}

	return models, nil
}
