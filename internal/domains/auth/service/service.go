package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"myfunzone/config"
	"myfunzone/infras/jwt"
	"myfunzone/infras/otel"
	"myfunzone/internal/domains/auth/model/dto"
	userModel "myfunzone/internal/domains/user/model"
	userRepo "myfunzone/internal/domains/user/repository"
	"myfunzone/shared"
	"myfunzone/shared/cache"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/failure"
	"myfunzone/shared/otp"
	"myfunzone/shared/password"
	"myfunzone/shared/timezone"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	RequestOTP(ctx context.Context, req dto.RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func filterByUsername(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    username,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	uniqueFilters := []any{
		gDto.Filter{
			Field:    userModel.FieldUsername,
			Operator: gDto.FilterOperatorEq,
			Value:    req.Username,
			Table:    userModel.TableName,
		},
		gDto.Filter{
			ArgName:  "unique_phone",
			Field:    userModel.FieldPhoneNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    req.PhoneNumber,
			Table:    userModel.TableName,
		},
	}

	if req.Email != nil {
		uniqueFilters = append(uniqueFilters, gDto.Filter{
			ArgName:  "unique_email",
			Field:    userModel.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    *req.Email,
			Table:    userModel.TableName,
		})
	}

	exists, err := s.userRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters:  uniqueFilters,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("username, phone number or email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := filterByUsername(req.Username)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	return s.issueTokens(ctx, user, filter)
}

func (s *serviceImpl) issueTokens(ctx context.Context, user userModel.User, filter gDto.FilterGroup) (res dto.LoginResponse, err error) {
	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	email := constant.Empty
	if user.Email != nil {
		email = *user.Email
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.Username)

	if err := s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.MustChangePassword = user.MustChangePassword

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	mustChange := false
	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword, MustChangePassword: &mustChange}
	updatedFields := shared.TransformFields(updatePassword, user.Username)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) RequestOTP(ctx context.Context, req dto.RequestOTPRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestOTP")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, filterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if !user.Active {
		return failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	code, err := otp.Generate()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate otp")

		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err = s.cache.Save(ctx, otp.CacheKey(user.ID), code, s.cfg.App.OTP.TTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to store otp")

		return fmt.Errorf("failed to store otp: %w", err)
	}

	// Stand-in for an SMS gateway. The code only reaches the log, never
	// the API response.
	log.Info().Str("phone_number", user.PhoneNumber).Msg("otp generated for user")

	return nil
}

func (s *serviceImpl) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyOTP")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := filterByUsername(req.Username)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("invalid or expired code") // nolint:wrapcheck
	}

	var storedCode string
	if err = s.cache.Get(ctx, otp.CacheKey(user.ID), &storedCode); err != nil {
		log.Warn().Str("username", req.Username).Msg("otp verification with no pending code")

		return res, failure.Unauthorized("invalid or expired code") // nolint:wrapcheck
	}

	if storedCode != req.Code {
		return res, failure.Unauthorized("invalid or expired code") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, otp.CacheKey(user.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete used otp")
		}
	}()

	return s.issueTokens(ctx, user, filter)
}
