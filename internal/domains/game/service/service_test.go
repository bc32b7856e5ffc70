package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"myfunzone/config"
	"myfunzone/infras/otel/mocks"
	s3Mocks "myfunzone/infras/s3/mocks"
	gameMocks "myfunzone/internal/domains/game/mocks"
	"myfunzone/internal/domains/game/model"
	"myfunzone/internal/domains/game/model/dto"
	"myfunzone/internal/domains/game/service"
	cacheMocks "myfunzone/shared/cache/mocks"
	"myfunzone/shared/constant"
	"myfunzone/shared/failure"
)

const (
	testAdminID = "admin-id-123"
	testGameID  = "3c2b1a0f-9e8d-4c7b-a6f5-e4d3c2b1a0f9"
	testBucket  = "funzone-assets"
)

type testDeps struct {
	repo  *gameMocks.MockGame
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Game
}

func newTestDeps(ctrl *gomock.Controller) testDeps {
	repo := gameMocks.NewMockGame(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = testBucket

	return testDeps{
		repo:  repo,
		cache: redisCache,
		s3:    mockS3,
		svc:   service.New(repo, cfg, redisCache, mocks.NewOtel(), mockS3),
	}
}

func (d testDeps) expectInvalidate() {
	d.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	d.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testAdminID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestGameService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("create without an image", func(t *testing.T) {
		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, game model.Game) error {
				assert.Equal(t, "Laser Tag", game.Name)
				assert.Equal(t, 60, game.DurationMinutes)
				assert.True(t, game.Active)

				return nil
			})
		deps.expectInvalidate()

		err := deps.svc.Create(adminContext(), dto.CreateGameRequest{
			Name:       "Laser Tag",
			Price:      75000,
			MaxPlayers: 10,
		})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("uploaded image is removed when the insert fails", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "arena.png"}

		deps.s3.EXPECT().
			UploadFile(gomock.Any(), testBucket, model.EntityName, gomock.Any(), header, gomock.Any()).
			Return("https://cdn.example.com/game/arena.png", nil)

		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		deps.s3.EXPECT().
			DeleteFile(gomock.Any(), testBucket, model.EntityName, gomock.Any()).
			Return(nil)

		err := deps.svc.Create(adminContext(), dto.CreateGameRequest{
			Name:       "Archery",
			MaxPlayers: 4,
			Image:      header,
		})
		assert.Error(t, err)
	})

	t.Run("upload failure aborts the create", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "arena.jpg"}

		deps.s3.EXPECT().
			UploadFile(gomock.Any(), testBucket, model.EntityName, gomock.Any(), header, gomock.Any()).
			Return("", errors.New("upload failed"))

		err := deps.svc.Create(adminContext(), dto.CreateGameRequest{
			Name:       "Archery",
			MaxPlayers: 4,
			Image:      header,
		})
		assert.Error(t, err)
	})
}

func TestGameService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("success", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Game{ID: testGameID, Name: "Bowling", MaxPlayers: 6, Active: true}, nil)

		deps.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := deps.svc.Get(context.Background(), testGameID)
		assert.NoError(t, err)
		assert.Equal(t, "Bowling", res.Name)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("game not found", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Game{}, nil)

		_, err := deps.svc.Get(context.Background(), testGameID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestGameService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(ctrl)

	t.Run("replacing the image drops the old object", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "new.png"}
		oldURL := "https://cdn.example.com/game/old.png"

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Game{ID: testGameID, Name: "Bowling", Image: oldURL}, nil)

		deps.s3.EXPECT().
			UploadFile(gomock.Any(), testBucket, model.EntityName, gomock.Any(), header, gomock.Any()).
			Return("https://cdn.example.com/game/new.png", nil)

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		deps.s3.EXPECT().
			GetObjectNameFromURL(testBucket, oldURL).
			Return("old.png")

		deps.s3.EXPECT().
			DeleteFile(gomock.Any(), testBucket, model.EntityName, "old.png").
			Return(nil)

		deps.expectInvalidate()

		err := deps.svc.Update(adminContext(), dto.UpdateGameRequest{Image: header}, testGameID)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("game not found", func(t *testing.T) {
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Game{}, nil)

		err := deps.svc.Update(adminContext(), dto.UpdateGameRequest{Name: "Renamed"}, testGameID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestGameService_Delete(t *testing.T) {
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

		err := deps.svc.Delete(adminContext(), testGameID)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("game not found", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := deps.svc.Delete(adminContext(), testGameID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
