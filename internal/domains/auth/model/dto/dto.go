package dto

import (
	"myfunzone/infras/jwt"
	userModel "myfunzone/internal/domains/user/model"
	"myfunzone/shared/constant"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username    string  `json:"username"            validate:"required,max=100"`
	Password    string  `json:"password"            validate:"required,userpassword"`
	PhoneNumber string  `json:"phone_number"        validate:"required,phone"`
	Email       *string `json:"email,omitempty"     validate:"omitempty,email"`
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:          uuid.NewString(),
		Username:    r.Username,
		Password:    hashedPassword,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		FullName:    r.FullName,
		Role:        constant.RoleUser,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  r.Username,
			ModifiedBy: r.Username,
		},
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	ExpiresIn          int64  `json:"expires_in"`
	MustChangePassword bool   `json:"must_change_password"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,userpassword"`
}

type UpdatePasswordRequest struct {
	Password           string `db:"password"             json:"password" validate:"required"`
	MustChangePassword *bool  `db:"must_change_password" json:"-"`
}

type RequestOTPRequest struct {
	Username string `json:"username" validate:"required"`
}

type VerifyOTPRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code"     validate:"required,len=6"`
}
