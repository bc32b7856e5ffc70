package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/kafka"
	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/booking/model"
	"myfunzone/internal/domains/booking/model/dto"
	"myfunzone/internal/domains/booking/repository"
	slotService "myfunzone/internal/domains/slot/service"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
	"myfunzone/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) error
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.CheckInResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) error
}

type serviceImpl struct {
	repo        repository.Booking
	paymentRepo repository.Payment
	checkinRepo repository.Checkin
	txer        postgres.Txer
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
}

func New(
	repo repository.Booking,
	paymentRepo repository.Payment,
	checkinRepo repository.Checkin,
	txer postgres.Txer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:        repo,
		paymentRepo: paymentRepo,
		checkinRepo: checkinRepo,
		txer:        txer,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
	}
}

func filterByQRCode(qrCode string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldQRCode,
				Value:    qrCode,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func filterByPaymentBookingID(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPaymentBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.PaymentTableName,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetBooking)
	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	shared.InvalidateCaches(c, s.cache, slotService.CacheSlotAvailability)
}

// publish sends a booking lifecycle event when the Kafka integration is
// enabled. Events are fire and forget, the booking state change has
// already committed by the time this runs.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, amount float64) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.BookingEvent{
			Type:            eventType,
			BookingID:       booking.ID,
			UserID:          booking.UserID,
			SlotID:          booking.SlotID,
			NumberOfPlayers: booking.NumberOfPlayers,
			Status:          booking.Status,
			Amount:          amount,
			OccurredAt:      timezone.Now().Format(constant.DateFormat),
		}

		err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{
			Key:   booking.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if s.cfg.App.Booking.BlockRebookAfterRefund {
		refunded, err := s.repo.HasRefundedBooking(ctx, user, req.SlotID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check refunded bookings")

			return res, fmt.Errorf("failed to check refunded bookings: %w", err)
		}

		if refunded {
			return res, failure.Forbidden("this slot can no longer be booked after a refund") // nolint:wrapcheck
		}
	}

	booking := req.ToModel(user)

	var payment model.Payment

	err = s.txer.WithTx(ctx, func(tx *sqlx.Tx) error {
		occupancy, err := s.repo.LockSlotOccupancy(ctx, tx, req.SlotID)
		if err != nil {
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if occupancy.SlotID == constant.Empty {
			return failure.NotFound("slot not found") // nolint:wrapcheck
		}

		if !occupancy.SlotActive || !occupancy.GameActive {
			return failure.UnprocessableEntity("slot is not open for booking") // nolint:wrapcheck
		}

		if req.NumberOfPlayers > occupancy.Available() {
			return failure.Conflict("not enough capacity left in this slot") // nolint:wrapcheck
		}

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		payment = dto.ToPaymentModel(booking.ID, user, occupancy.Price*float64(req.NumberOfPlayers))
		if err = s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("slotID", req.SlotID).Msg("failed to book slot")

		return res, err
	}

	res.FromModels(booking, payment)

	s.publish(ctx, dto.EventBookingCreated, booking, payment.Amount)

	go s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if role == constant.RoleUser && res.UserID != user {
			return dto.BookingResponse{}, failure.ResourceRestrictedError // nolint:wrapcheck
		}

		return res, nil
	}

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role == constant.RoleUser && detail.UserID != user {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	res.FromModel(detail)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
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

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && detail.UserID != user {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if detail.Status == constant.BookingStatusCancelled {
		return failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	if detail.Status != constant.BookingStatusBooked {
		return failure.UnprocessableEntity("only booked bookings can be cancelled") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin {
		// Slot starts are minute-granular, so the cutoff is too: a slot
		// starting exactly at the window edge is still cancellable.
		window := time.Duration(s.cfg.App.Booking.CancelWindowHours) * time.Hour
		cutoff := timezone.Now().Truncate(time.Minute).Add(window)

		if detail.StartsAt(timezone.GetLocation()).Before(cutoff) {
			return failure.UnprocessableEntity( // nolint:wrapcheck
				fmt.Sprintf("bookings can only be cancelled at least %d hours before the slot starts", s.cfg.App.Booking.CancelWindowHours),
			)
		}
	}

	err = s.txer.WithTx(ctx, func(tx *sqlx.Tx) error {
		statusFields := shared.TransformFields(dto.UpdateStatusFields{Status: constant.BookingStatusCancelled}, user)

		cancelled, err := s.repo.CancelBookedTx(ctx, tx, statusFields, id)
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		// The guards above ran on a plain read; a check-in may have
		// landed since, in which case the conditional update misses.
		if !cancelled {
			return failure.Conflict("booking is no longer in a cancellable state") // nolint:wrapcheck
		}

		if detail.PaymentStatus == constant.PaymentStatusPaid {
			refundFields := shared.TransformFields(dto.UpdateStatusFields{Status: constant.PaymentStatusRefunded}, user)
			if err := s.paymentRepo.UpdateTx(ctx, tx, refundFields, filterByPaymentBookingID(id)); err != nil {
				return fmt.Errorf("failed to refund payment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return err
	}

	s.publish(ctx, dto.EventBookingCancelled, model.Booking{
		ID:              detail.ID,
		UserID:          detail.UserID,
		SlotID:          detail.SlotID,
		NumberOfPlayers: detail.NumberOfPlayers,
		Status:          constant.BookingStatusCancelled,
	}, detail.PaymentAmount)

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && booking.UserID != user {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if booking.Status != constant.BookingStatusBooked {
		return failure.UnprocessableEntity("only booked bookings can be rescheduled") // nolint:wrapcheck
	}

	if req.NewSlotID == booking.SlotID {
		return failure.BadRequestFromString("booking already uses this slot") // nolint:wrapcheck
	}

	err = s.txer.WithTx(ctx, func(tx *sqlx.Tx) error {
		occupancy, err := s.repo.LockSlotOccupancy(ctx, tx, req.NewSlotID)
		if err != nil {
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if occupancy.SlotID == constant.Empty {
			return failure.NotFound("slot not found") // nolint:wrapcheck
		}

		if !occupancy.SlotActive || !occupancy.GameActive {
			return failure.UnprocessableEntity("slot is not open for booking") // nolint:wrapcheck
		}

		if booking.NumberOfPlayers > occupancy.Available() {
			return failure.Conflict("not enough capacity left in this slot") // nolint:wrapcheck
		}

		slotFields := shared.TransformFields(dto.UpdateSlotFields{SlotID: req.NewSlotID}, user)
		if err = s.repo.UpdateTx(ctx, tx, slotFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to move booking: %w", err)
		}

		amountFields := shared.TransformFields(struct {
			Amount float64 `db:"amount"`
		}{Amount: occupancy.Price * float64(booking.NumberOfPlayers)}, user)
		if err = s.paymentRepo.UpdateTx(ctx, tx, amountFields, filterByPaymentBookingID(id)); err != nil {
			return fmt.Errorf("failed to update payment amount: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to reschedule booking")

		return err
	}

	booking.SlotID = req.NewSlotID
	s.publish(ctx, dto.EventBookingRescheduled, booking, 0)

	go s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyUserID).(string)

	detail, err := s.repo.GetDetail(ctx, filterByQRCode(req.QRCode))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up QR code")

		return res, fmt.Errorf("failed to look up QR code: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("invalid QR code") // nolint:wrapcheck
	}

	switch detail.Status {
	case constant.BookingStatusCheckedIn:
		return res, failure.Conflict("booking is already checked in") // nolint:wrapcheck
	case constant.BookingStatusCancelled:
		return res, failure.UnprocessableEntity("booking has been cancelled") // nolint:wrapcheck
	case constant.BookingStatusCompleted:
		return res, failure.UnprocessableEntity("booking is already completed") // nolint:wrapcheck
	case constant.BookingStatusNoShow:
		return res, failure.UnprocessableEntity("booking was marked as a no-show") // nolint:wrapcheck
	}

	err = s.txer.WithTx(ctx, func(tx *sqlx.Tx) error {
		statusFields := shared.TransformFields(dto.UpdateStatusFields{Status: constant.BookingStatusCheckedIn}, staff)
		if err := s.repo.UpdateTx(ctx, tx, statusFields, shared.FilterByID(detail.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to check in booking: %w", err)
		}

		if err := s.checkinRepo.InsertTx(ctx, tx, dto.ToCheckinModel(detail.ID, staff)); err != nil {
			return fmt.Errorf("failed to record check-in: %w", err)
		}

		if detail.PaymentStatus == constant.PaymentStatusPending {
			paidFields := shared.TransformFields(dto.UpdateStatusFields{Status: constant.PaymentStatusPaid}, staff)
			if err := s.paymentRepo.UpdateTx(ctx, tx, paidFields, filterByPaymentBookingID(detail.ID)); err != nil {
				return fmt.Errorf("failed to settle payment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", detail.ID).Msg("failed to check in booking")

		return res, err
	}

	res.FromModel(detail)

	s.publish(ctx, dto.EventBookingCheckedIn, model.Booking{
		ID:              detail.ID,
		UserID:          detail.UserID,
		SlotID:          detail.SlotID,
		NumberOfPlayers: detail.NumberOfPlayers,
		Status:          constant.BookingStatusCheckedIn,
	}, detail.PaymentAmount)

	go s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	allowed := (req.Status == constant.BookingStatusCompleted && booking.Status == constant.BookingStatusCheckedIn) ||
		(req.Status == constant.BookingStatusNoShow && booking.Status == constant.BookingStatusBooked)
	if !allowed {
		return failure.UnprocessableEntity( // nolint:wrapcheck
			fmt.Sprintf("cannot mark a %s booking as %s", booking.Status, req.Status),
		)
	}

	statusFields := shared.TransformFields(dto.UpdateStatusFields{Status: req.Status}, user)
	if err = s.repo.Update(ctx, statusFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status
	s.publish(ctx, dto.EventBookingClosed, booking, 0)

	go s.invalidate(ctx)

	return nil
}
