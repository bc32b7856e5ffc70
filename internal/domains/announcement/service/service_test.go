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
	announcementMocks "myfunzone/internal/domains/announcement/mocks"
	"myfunzone/internal/domains/announcement/model"
	"myfunzone/internal/domains/announcement/model/dto"
	"myfunzone/internal/domains/announcement/service"
	cacheMocks "myfunzone/shared/cache/mocks"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
)

const (
	testAdminID        = "admin-id-123"
	testUserID         = "user-id-456"
	testAnnouncementID = "7a6b5c4d-3e2f-4a1b-9c8d-7e6f5a4b3c2d"
)

type testDeps struct {
	repo  *announcementMocks.MockAnnouncement
	cache *cacheMocks.MockRedisCache
	svc   service.Announcement
}

func newTestDeps(ctrl *gomock.Controller) testDeps {
	repo := announcementMocks.NewMockAnnouncement(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return testDeps{
		repo:  repo,
		cache: redisCache,
		svc:   service.New(repo, cfg, redisCache, mocks.NewOtel()),
	}
}

func (d testDeps) expectInvalidate() {
	d.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testAdminID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func userContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func TestAnnouncementService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("success defaults target role to all", func(t *testing.T) {
		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, announcement model.Announcement) error {
				assert.Equal(t, constant.TargetRoleAll, announcement.TargetRole)
				assert.True(t, announcement.Active)

				return nil
			})
		deps.expectInvalidate()

		err := deps.svc.Create(adminContext(), dto.CreateAnnouncementRequest{
			Title: "Maintenance window",
			Body:  "The venue closes early on Friday.",
		})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("invalid expiry date", func(t *testing.T) {
		err := deps.svc.Create(adminContext(), dto.CreateAnnouncementRequest{
			Title:     "Holiday hours",
			Body:      "Open late.",
			ExpiresAt: "31-12-2026",
		})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		err := deps.svc.Create(adminContext(), dto.CreateAnnouncementRequest{
			Title: "Broken",
			Body:  "body",
		})
		assert.Error(t, err)
	})
}

func TestAnnouncementService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("visible announcements for the caller role", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			CountVisible(gomock.Any(), constant.RoleUser).
			Return(2, nil)

		deps.repo.EXPECT().
			GetVisible(gomock.Any(), constant.RoleUser, testUserID, params).
			Return([]model.AnnouncementWithRead{
				{Announcement: model.Announcement{ID: "a1", Title: "Pinned", IsPinned: true}, IsRead: true},
				{Announcement: model.Announcement{ID: "a2", Title: "Fresh"}},
			}, nil)

		deps.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := deps.svc.GetAll(userContext(), params)
		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Announcements, 2)
		assert.True(t, res.Announcements[0].IsRead)
		assert.False(t, res.Announcements[1].IsRead)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := deps.svc.GetAll(userContext(), params)
		assert.NoError(t, err)
	})
}

func TestAnnouncementService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	pinned := true

	tests := []struct {
		name      string
		req       dto.UpdateAnnouncementRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "pin an announcement",
			req:  dto.UpdateAnnouncementRequest{IsPinned: &pinned},
			setupMock: func() {
				deps.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.expectInvalidate()
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateAnnouncementRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "announcement not found",
			req:  dto.UpdateAnnouncementRequest{IsPinned: &pinned},
			setupMock: func() {
				deps.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := deps.svc.Update(adminContext(), tt.req, testAnnouncementID)

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

func TestAnnouncementService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		deps.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		deps.expectInvalidate()

		err := deps.svc.Delete(adminContext(), testAnnouncementID)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("announcement not found", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := deps.svc.Delete(adminContext(), testAnnouncementID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAnnouncementService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("success records the reader", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		deps.repo.EXPECT().
			MarkRead(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, read model.AnnouncementRead) error {
				assert.Equal(t, testAnnouncementID, read.AnnouncementID)
				assert.Equal(t, testUserID, read.UserID)

				return nil
			})

		deps.expectInvalidate()

		err := deps.svc.MarkRead(userContext(), testAnnouncementID)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("announcement not found", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := deps.svc.MarkRead(userContext(), testAnnouncementID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAnnouncementService_ReadStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("stats split readers and non-readers", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		readAt := time.Now()

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Announcement{ID: testAnnouncementID, TargetRole: constant.RoleStaff}, nil)

		deps.repo.EXPECT().
			GetReaders(gomock.Any(), testAnnouncementID).
			Return([]model.Reader{
				{UserID: "staff-1", Username: "alice", Role: constant.RoleStaff, ReadAt: &readAt},
			}, nil)

		deps.repo.EXPECT().
			GetNonReaders(gomock.Any(), testAnnouncementID, constant.RoleStaff).
			Return([]model.Reader{
				{UserID: "staff-2", Username: "bob", Role: constant.RoleStaff},
			}, nil)

		deps.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := deps.svc.ReadStats(adminContext(), testAnnouncementID)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalReaders)
		assert.Len(t, res.Readers, 1)
		assert.Len(t, res.NonReaders, 1)
		assert.NotNil(t, res.Readers[0].ReadAt)
		assert.Nil(t, res.NonReaders[0].ReadAt)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("announcement not found", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Announcement{}, nil)

		_, err := deps.svc.ReadStats(adminContext(), testAnnouncementID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
