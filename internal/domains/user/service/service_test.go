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
	userMocks "myfunzone/internal/domains/user/mocks"
	"myfunzone/internal/domains/user/model"
	"myfunzone/internal/domains/user/model/dto"
	"myfunzone/internal/domains/user/service"
	cacheMocks "myfunzone/shared/cache/mocks"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
	"myfunzone/shared/password"
)

const (
	testAdminID  = "admin-id-123"
	testTargetID = "9a8b7c6d-5e4f-4321-8a9b-0c1d2e3f4a5b"
)

func newService(ctrl *gomock.Controller) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	repo := userMocks.NewMockUser(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, redisCache, mocks.NewOtel()), repo, redisCache
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testAdminID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestUserService_AddStaff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)

	req := dto.AddStaffRequest{
		Username:    "new.staff",
		PhoneNumber: "+6281234567890",
	}

	t.Run("staff account starts with a temporary password", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		var inserted model.User

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, staff model.User) error {
				inserted = staff

				return nil
			})

		redisCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.AddStaff(adminContext(), req)
		assert.NoError(t, err)
		assert.Equal(t, constant.RoleStaff, res.User.Role)
		assert.True(t, res.User.MustChangePassword)
		assert.Len(t, res.TemporaryPassword, 12)
		assert.NoError(t, password.Verify(res.TemporaryPassword, inserted.Password))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("username already in use", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.AddStaff(adminContext(), req)
		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestUserService_SetActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)

	active := false

	t.Run("deactivate an account", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		redisCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		redisCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.SetActive(adminContext(), dto.UpdateActiveRequest{Active: &active}, testTargetID)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("user not found", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.SetActive(adminContext(), dto.UpdateActiveRequest{Active: &active}, testTargetID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)

	t.Run("success", func(t *testing.T) {
		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{
				ID:       testTargetID,
				Username: "alice",
				Role:     constant.RoleUser,
				Active:   true,
			}, nil)

		redisCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), testTargetID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", res.Username)
		assert.True(t, res.Active)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("user not found", func(t *testing.T) {
		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), testTargetID)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), testTargetID)
		assert.NoError(t, err)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	redisCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	repo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.User{
			{ID: "u1", Username: "alice", Role: constant.RoleUser},
			{ID: "u2", Username: "bob", Role: constant.RoleStaff},
		}, nil)

	redisCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Users, 2)

	time.Sleep(10 * time.Millisecond)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, redisCache := newService(ctrl)

	userContext := func() context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testTargetID)

		return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
	}

	email := "alice@example.com"
	phone := "+6281234567891"

	t.Run("update contact details", func(t *testing.T) {
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: testTargetID, Username: "alice"}, nil)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, email, *fields["email"].(*string))
				assert.Equal(t, phone, *fields["phone_number"].(*string))

				return nil
			})

		redisCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		redisCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.UpdateProfile(userContext(), dto.UpdateProfileRequest{Email: &email, PhoneNumber: &phone})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("empty request", func(t *testing.T) {
		err := svc.UpdateProfile(userContext(), dto.UpdateProfileRequest{})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("user not found", func(t *testing.T) {
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		err := svc.UpdateProfile(userContext(), dto.UpdateProfileRequest{Email: &email})
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("contact already in use by another account", func(t *testing.T) {
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: testTargetID, Username: "alice"}, nil)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.UpdateProfile(userContext(), dto.UpdateProfileRequest{PhoneNumber: &phone})
		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}
