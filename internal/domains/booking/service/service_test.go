package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"myfunzone/config"
	"myfunzone/infras/otel/mocks"
	postgresMocks "myfunzone/infras/postgres/mocks"
	bookingMocks "myfunzone/internal/domains/booking/mocks"
	"myfunzone/internal/domains/booking/model"
	"myfunzone/internal/domains/booking/model/dto"
	"myfunzone/internal/domains/booking/service"
	cacheMocks "myfunzone/shared/cache/mocks"
	"myfunzone/shared/constant"
	"myfunzone/shared/failure"
	"myfunzone/shared/timezone"
)

const (
	testUserID  = "user-id-123"
	testStaffID = "staff-id-456"
	testSlotID  = "1f0e9c4a-5b3d-4c2e-8f7a-9d6b5a4c3e2d"
)

type testDeps struct {
	repo        *bookingMocks.MockBooking
	paymentRepo *bookingMocks.MockPayment
	checkinRepo *bookingMocks.MockCheckin
	cache       *cacheMocks.MockRedisCache
	cfg         *config.Config
	svc         service.Booking
}

func newTestDeps(t *testing.T, ctrl *gomock.Controller) *testDeps {
	t.Helper()

	deps := &testDeps{
		repo:        bookingMocks.NewMockBooking(ctrl),
		paymentRepo: bookingMocks.NewMockPayment(ctrl),
		checkinRepo: bookingMocks.NewMockCheckin(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		cfg:         &config.Config{},
	}

	deps.cfg.Cache.TTL = 3600
	deps.cfg.App.Booking.CancelWindowHours = 24

	deps.svc = service.New(
		deps.repo,
		deps.paymentRepo,
		deps.checkinRepo,
		postgresMocks.NewTxer(),
		deps.cfg,
		deps.cache,
		mocks.NewOtel(),
		nil,
	)

	return deps
}

// expectInvalidate tolerates the asynchronous cache invalidation that runs
// after every successful mutation.
func (d *testDeps) expectInvalidate() {
	d.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func openOccupancy(maxPlayers, booked int) model.SlotOccupancy {
	return model.SlotOccupancy{
		SlotID:     testSlotID,
		GameID:     "game-id-1",
		SlotDate:   timezone.Now().AddDate(0, 0, 7),
		StartTime:  "14:00",
		EndTime:    "15:00",
		SlotActive: true,
		GameActive: true,
		Price:      50000,
		MaxPlayers: maxPlayers,
		Booked:     booked,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	req := dto.CreateBookingRequest{
		SlotID:          testSlotID,
		NumberOfPlayers: 4,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful booking",
			setupMock: func() {
				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(openOccupancy(10, 4), nil)

				deps.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.paymentRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "exactly fills remaining capacity",
			setupMock: func() {
				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(openOccupancy(10, 6), nil)

				deps.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.paymentRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "not enough capacity",
			setupMock: func() {
				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(openOccupancy(10, 7), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "slot not found",
			setupMock: func() {
				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(model.SlotOccupancy{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "slot closed for booking",
			setupMock: func() {
				occupancy := openOccupancy(10, 0)
				occupancy.SlotActive = false

				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(occupancy, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "game deactivated",
			setupMock: func() {
				occupancy := openOccupancy(10, 0)
				occupancy.GameActive = false

				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(occupancy, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "lock error",
			setupMock: func() {
				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
					Return(model.SlotOccupancy{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := deps.svc.Create(userContext(testUserID, constant.RoleUser), req)

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, testSlotID, res.SlotID)
				assert.Equal(t, constant.BookingStatusBooked, res.Status)
				assert.Equal(t, float64(200000), res.Amount)
				assert.Equal(t, constant.PaymentStatusPending, res.PaymentStatus)
				assert.Contains(t, res.QRCode, constant.QRCodePrefix)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestBookingService_Create_RefundBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)
	deps.cfg.App.Booking.BlockRebookAfterRefund = true

	req := dto.CreateBookingRequest{
		SlotID:          testSlotID,
		NumberOfPlayers: 2,
	}

	t.Run("refunded booking blocks rebooking", func(t *testing.T) {
		deps.repo.EXPECT().
			HasRefundedBooking(gomock.Any(), testUserID, testSlotID).
			Return(true, nil)

		_, err := deps.svc.Create(userContext(testUserID, constant.RoleUser), req)
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("no refund history proceeds", func(t *testing.T) {
		deps.repo.EXPECT().
			HasRefundedBooking(gomock.Any(), testUserID, testSlotID).
			Return(false, nil)

		deps.repo.EXPECT().
			LockSlotOccupancy(gomock.Any(), gomock.Any(), testSlotID).
			Return(openOccupancy(10, 0), nil)

		deps.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		deps.paymentRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		deps.expectInvalidate()

		_, err := deps.svc.Create(userContext(testUserID, constant.RoleUser), req)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func bookedDetail(startsIn time.Duration) model.BookingDetail {
	return bookedDetailAt(timezone.Now().Add(startsIn))
}

func bookedDetailAt(startsAt time.Time) model.BookingDetail {
	return model.BookingDetail{
		ID:              "booking-id-1",
		UserID:          testUserID,
		SlotID:          testSlotID,
		NumberOfPlayers: 4,
		Status:          constant.BookingStatusBooked,
		QRCode:          constant.QRCodePrefix + "payload",
		SlotDate:        time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, timezone.GetLocation()),
		StartTime:       startsAt.Format("15:04"),
		EndTime:         startsAt.Add(time.Hour).Format("15:04"),
		PaymentStatus:   constant.PaymentStatusPaid,
		PaymentAmount:   200000,
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner cancels well before the slot",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(48*time.Hour), nil)

				deps.repo.EXPECT().
					CancelBookedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.paymentRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "owner cancels at exactly the window boundary",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				startsAt := timezone.Now().Truncate(time.Minute).Add(24 * time.Hour)

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetailAt(startsAt), nil)

				deps.repo.EXPECT().
					CancelBookedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.paymentRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "too close to the slot start",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(23*time.Hour), nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "admin ignores the cancellation window",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(1*time.Hour), nil)

				deps.repo.EXPECT().
					CancelBookedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.paymentRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "checked in while the cancel was in flight",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(48*time.Hour), nil)

				deps.repo.EXPECT().
					CancelBookedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "booking not found",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(model.BookingDetail{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "someone else's booking",
			ctx:  userContext("other-user", constant.RoleUser),
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(48*time.Hour), nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "already cancelled",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				detail := bookedDetail(48 * time.Hour)
				detail.Status = constant.BookingStatusCancelled

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "checked in bookings cannot be cancelled",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				detail := bookedDetail(48 * time.Hour)
				detail.Status = constant.BookingStatusCheckedIn

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := deps.svc.Cancel(tt.ctx, "booking-id-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestBookingService_Cancel_PendingPaymentIsNotRefunded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	detail := bookedDetail(48 * time.Hour)
	detail.PaymentStatus = constant.PaymentStatusPending

	deps.repo.EXPECT().
		GetDetail(gomock.Any(), gomock.Any()).
		Return(detail, nil)

	deps.repo.EXPECT().
		CancelBookedTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)

	deps.expectInvalidate()

	err := deps.svc.Cancel(userContext(testUserID, constant.RoleUser), "booking-id-1")
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_Reschedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	newSlotID := "2a1b0c9d-8e7f-4a5b-9c8d-7e6f5a4b3c2d"

	booked := model.Booking{
		ID:              "booking-id-1",
		UserID:          testUserID,
		SlotID:          testSlotID,
		NumberOfPlayers: 4,
		Status:          constant.BookingStatusBooked,
	}

	newOccupancy := openOccupancy(10, 2)
	newOccupancy.SlotID = newSlotID

	tests := []struct {
		name      string
		req       dto.RescheduleBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful reschedule",
			req:  dto.RescheduleBookingRequest{NewSlotID: newSlotID},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booked, nil)

				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), newSlotID).
					Return(newOccupancy, nil)

				deps.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.paymentRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "same slot",
			req:  dto.RescheduleBookingRequest{NewSlotID: testSlotID},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booked, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "target slot is full",
			req:  dto.RescheduleBookingRequest{NewSlotID: newSlotID},
			setupMock: func() {
				full := openOccupancy(4, 2)
				full.SlotID = newSlotID

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booked, nil)

				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), newSlotID).
					Return(full, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cancelled booking cannot move",
			req:  dto.RescheduleBookingRequest{NewSlotID: newSlotID},
			setupMock: func() {
				cancelled := booked
				cancelled.Status = constant.BookingStatusCancelled

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "target slot not found",
			req:  dto.RescheduleBookingRequest{NewSlotID: newSlotID},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booked, nil)

				deps.repo.EXPECT().
					LockSlotOccupancy(gomock.Any(), gomock.Any(), newSlotID).
					Return(model.SlotOccupancy{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := deps.svc.Reschedule(userContext(testUserID, constant.RoleUser), "booking-id-1", tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	req := dto.CheckInRequest{QRCode: constant.QRCodePrefix + "payload"}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful check-in settles pending payment",
			setupMock: func() {
				detail := bookedDetail(1 * time.Hour)
				detail.PaymentStatus = constant.PaymentStatusPending

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)

				deps.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.checkinRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.paymentRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "paid booking skips the payment update",
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(bookedDetail(1*time.Hour), nil)

				deps.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.checkinRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name: "unknown code",
			setupMock: func() {
				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(model.BookingDetail{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "already checked in",
			setupMock: func() {
				detail := bookedDetail(1 * time.Hour)
				detail.Status = constant.BookingStatusCheckedIn

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cancelled booking",
			setupMock: func() {
				detail := bookedDetail(1 * time.Hour)
				detail.Status = constant.BookingStatusCancelled

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "no-show booking",
			setupMock: func() {
				detail := bookedDetail(1 * time.Hour)
				detail.Status = constant.BookingStatusNoShow

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := deps.svc.CheckIn(userContext(testStaffID, constant.RoleStaff), req)

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id-1", res.BookingID)
				assert.Equal(t, constant.BookingStatusCheckedIn, res.Status)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	booking := func(status string) model.Booking {
		return model.Booking{
			ID:     "booking-id-1",
			UserID: testUserID,
			SlotID: testSlotID,
			Status: status,
		}
	}

	tests := []struct {
		name      string
		newStatus string
		current   string
		wantErr   bool
		wantCode  int
	}{
		{name: "checked in to completed", newStatus: constant.BookingStatusCompleted, current: constant.BookingStatusCheckedIn},
		{name: "booked to no-show", newStatus: constant.BookingStatusNoShow, current: constant.BookingStatusBooked},
		{name: "booked to completed is blocked", newStatus: constant.BookingStatusCompleted, current: constant.BookingStatusBooked, wantErr: true, wantCode: 422},
		{name: "checked in to no-show is blocked", newStatus: constant.BookingStatusNoShow, current: constant.BookingStatusCheckedIn, wantErr: true, wantCode: 422},
		{name: "cancelled stays closed", newStatus: constant.BookingStatusCompleted, current: constant.BookingStatusCancelled, wantErr: true, wantCode: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking(tt.current), nil)

			if !tt.wantErr {
				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			}

			err := deps.svc.UpdateStatus(userContext(testStaffID, constant.RoleStaff), "booking-id-1", dto.UpdateBookingStatusRequest{Status: tt.newStatus})

			if !tt.wantErr {
				assert.NoError(t, err)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	detail := bookedDetail(48 * time.Hour)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner reads their booking",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "staff reads any booking",
			ctx:  userContext(testStaffID, constant.RoleStaff),
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "another user is rejected",
			ctx:  userContext("other-user", constant.RoleUser),
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "not found",
			ctx:  userContext(testUserID, constant.RoleUser),
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(model.BookingDetail{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := deps.svc.Get(tt.ctx, "booking-id-1")

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, detail.ID, res.ID)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
