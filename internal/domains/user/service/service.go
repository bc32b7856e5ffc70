package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/otel"
	"myfunzone/internal/domains/user/model"
	"myfunzone/internal/domains/user/model/dto"
	"myfunzone/internal/domains/user/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
	"myfunzone/shared/password"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"

	temporaryPasswordLength = 12
)

type User interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	AddStaff(ctx context.Context, req dto.AddStaffRequest) (dto.AddStaffResponse, error)
	SetActive(ctx context.Context, req dto.UpdateActiveRequest, id string) error
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AddStaff(ctx context.Context, req dto.AddStaffRequest) (res dto.AddStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkUnique(ctx, req); err != nil {
		return res, err
	}

	tempPassword, err := password.GenerateTemporary(temporaryPasswordLength)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate temporary password")

		return res, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hashedPassword, err := password.Hash(tempPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash temporary password")

		return res, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	staff := req.ToModel(user, hashedPassword)

	if err = s.repo.Insert(ctx, staff); err != nil {
		log.Error().Err(err).Msg("failed to create staff account")

		return res, fmt.Errorf("failed to create staff account: %w", err)
	}

	res.User.FromModel(staff)
	res.TemporaryPassword = tempPassword

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return res, nil
}

func (s *serviceImpl) checkUnique(ctx context.Context, req dto.AddStaffRequest) error {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldUsername,
			Operator: gDto.FilterOperatorEq,
			Value:    req.Username,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "unique_phone",
			Field:    model.FieldPhoneNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    req.PhoneNumber,
			Table:    model.TableName,
		},
	}

	if req.Email != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "unique_email",
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    *req.Email,
			Table:    model.TableName,
		})
	}

	exists, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters:  filters,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check staff uniqueness")

		return fmt.Errorf("failed to check staff uniqueness: %w", err)
	}

	if exists {
		return failure.Conflict("username, phone number or email already in use") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) SetActive(ctx context.Context, req dto.UpdateActiveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user active state")

		return fmt.Errorf("failed to update user active state: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return nil
}

// UpdateProfile lets the authenticated user change their own contact
// details. Phone and email stay unique across accounts.
func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = s.checkContactUnique(ctx, req, userID); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user.Username)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()

	return nil
}

func (s *serviceImpl) checkContactUnique(ctx context.Context, req dto.UpdateProfileRequest, userID string) error {
	contactFilters := []any{}

	if req.PhoneNumber != nil {
		contactFilters = append(contactFilters, gDto.Filter{
			ArgName:  "unique_phone",
			Field:    model.FieldPhoneNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    *req.PhoneNumber,
			Table:    model.TableName,
		})
	}

	if req.Email != nil {
		contactFilters = append(contactFilters, gDto.Filter{
			ArgName:  "unique_email",
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    *req.Email,
			Table:    model.TableName,
		})
	}

	if len(contactFilters) == 0 {
		return nil
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "self_id",
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters:  contactFilters,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check contact uniqueness")

		return fmt.Errorf("failed to check contact uniqueness: %w", err)
	}

	if taken {
		return failure.Conflict("phone number or email already in use") // nolint:wrapcheck
	}

	return nil
}
