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
	bookingMocks "myfunzone/internal/domains/booking/mocks"
	gameMocks "myfunzone/internal/domains/game/mocks"
	gameModel "myfunzone/internal/domains/game/model"
	slotMocks "myfunzone/internal/domains/slot/mocks"
	"myfunzone/internal/domains/slot/model"
	"myfunzone/internal/domains/slot/model/dto"
	"myfunzone/internal/domains/slot/service"
	cacheMocks "myfunzone/shared/cache/mocks"
	"myfunzone/shared/constant"
	"myfunzone/shared/failure"
	"myfunzone/shared/timezone"
)

const testGameID = "3c2b1a0f-9e8d-4c7b-a6f5-e4d3c2b1a0f9"

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func laserTag() gameModel.Game {
	return gameModel.Game{
		ID:         testGameID,
		Name:       "Laser Tag",
		Price:      50000,
		MaxPlayers: 10,
		Active:     true,
	}
}

func TestSlotService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockGameRepo := gameMocks.NewMockGame(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockGameRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateSlotRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "capacity and price copied from the game",
			req: dto.CreateSlotRequest{
				GameID:    testGameID,
				SlotDate:  "2026-09-15",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(laserTag(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, slot model.Slot) error {
						assert.Equal(t, 10, slot.MaxPlayers)
						assert.Equal(t, float64(50000), slot.Price)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "request overrides capacity and price",
			req: dto.CreateSlotRequest{
				GameID:     testGameID,
				SlotDate:   "2026-09-15",
				StartTime:  "14:00",
				EndTime:    "15:00",
				MaxPlayers: intPtr(5),
				Price:      floatPtr(500),
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(laserTag(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, slot model.Slot) error {
						assert.Equal(t, 5, slot.MaxPlayers)
						assert.Equal(t, float64(500), slot.Price)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "unknown game",
			req: dto.CreateSlotRequest{
				GameID:    testGameID,
				SlotDate:  "2026-09-15",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(gameModel.Game{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "start time after end time",
			req: dto.CreateSlotRequest{
				GameID:    testGameID,
				SlotDate:  "2026-09-15",
				StartTime: "16:00",
				EndTime:   "15:00",
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(laserTag(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(adminContext(), tt.req)

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

func TestSlotService_CreateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockGameRepo := gameMocks.NewMockGame(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockGameRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateSlotRangeRequest
		setupMock func()
		wantErr   bool
		wantCount int
	}{
		{
			name: "one slot per day over a week",
			req: dto.CreateSlotRangeRequest{
				GameID:    testGameID,
				StartDate: "2026-09-14",
				EndDate:   "2026-09-20",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(laserTag(), nil)

				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Len(7)).
					DoAndReturn(func(_ context.Context, slots []model.Slot) error {
						for _, slot := range slots {
							assert.Equal(t, 10, slot.MaxPlayers)
							assert.Equal(t, float64(50000), slot.Price)
						}

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantCount: 7,
		},
		{
			name: "start date after end date",
			req: dto.CreateSlotRangeRequest{
				GameID:    testGameID,
				StartDate: "2026-09-20",
				EndDate:   "2026-09-14",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			setupMock: func() {
				mockGameRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(laserTag(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreateRange(adminContext(), tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, res.CreatedCount)

				time.Sleep(10 * time.Millisecond)

				return
			}

			assert.Error(t, err)
		})
	}
}

func TestSlotService_GetAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockGameRepo := gameMocks.NewMockGame(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockGameRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	slots := []model.SlotAvailability{
		{
			ID:         "slot-id-1",
			GameID:     testGameID,
			GameName:   "Laser Tag",
			Price:      50000,
			MaxPlayers: 10,
			SlotDate:   timezone.Now().AddDate(0, 0, 1),
			StartTime:  "14:00",
			EndTime:    "15:00",
			Booked:     4,
			Available:  6,
		},
	}

	t.Run("availability from repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAvailability(gomock.Any(), testGameID, "", "", false).
			Return(slots, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAvailability(context.Background(), dto.AvailabilityQuery{GameID: testGameID})
		assert.NoError(t, err)
		assert.Len(t, res.Slots, 1)
		assert.Equal(t, 6, res.Slots[0].Available)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAvailability(gomock.Any(), testGameID, "", "", false).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAvailability(context.Background(), dto.AvailabilityQuery{GameID: testGameID})
		assert.Error(t, err)
	})
}

func TestSlotService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockGameRepo := gameMocks.NewMockGame(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockGameRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "slot not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "slot still has live bookings",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(adminContext(), "slot-id-1")

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

func TestSlotService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockGameRepo := gameMocks.NewMockGame(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockGameRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	active := false

	t.Run("deactivate a slot", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Update(adminContext(), dto.UpdateSlotRequest{Active: &active}, "slot-id-1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		err := svc.Update(adminContext(), dto.UpdateSlotRequest{}, "slot-id-1")
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
