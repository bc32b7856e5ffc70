package dto

import (
	"myfunzone/internal/domains/user/model"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"

	"github.com/google/uuid"
)

type AddStaffRequest struct {
	Username    string  `json:"username"     validate:"required,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,phone"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	FullName    *string `json:"full_name"    validate:"omitempty,max=255"`
}

// ToModel builds a staff account with a pre-hashed temporary password.
// The account is flagged so the owner must change it on first login.
func (a *AddStaffRequest) ToModel(user, hashedPassword string) model.User {
	return model.User{
		ID:                 uuid.NewString(),
		Username:           a.Username,
		Password:           hashedPassword,
		Email:              a.Email,
		PhoneNumber:        a.PhoneNumber,
		FullName:           a.FullName,
		Role:               constant.RoleStaff,
		MustChangePassword: true,
		Active:             true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type AddStaffResponse struct {
	User              UserResponse `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}

type UpdateProfileRequest struct {
	Email       *string `db:"email"        json:"email"        validate:"omitempty,email"`
	PhoneNumber *string `db:"phone_number" json:"phone_number" validate:"omitempty,phone"`
	FullName    *string `db:"full_name"    json:"full_name"    validate:"omitempty,max=255"`
}

type UpdateActiveRequest struct {
	Active *bool `db:"active" json:"active" validate:"required"`
}

type UserResponse struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username"`
	Email              *string `json:"email,omitempty"`
	PhoneNumber        string  `json:"phone_number"`
	FullName           *string `json:"full_name,omitempty"`
	Role               string  `json:"role"`
	MustChangePassword bool    `json:"must_change_password"`
	LastLogin          *string `json:"last_login,omitempty"`
	Active             bool    `json:"active"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Username = model.Username
	u.Email = model.Email
	u.PhoneNumber = model.PhoneNumber
	u.FullName = model.FullName
	u.Role = model.Role
	u.MustChangePassword = model.MustChangePassword
	u.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		u.LastLogin = &lastLogin
	}

	u.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		g.Users[i].FromModel(mod)
	}
}
