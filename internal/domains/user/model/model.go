package model

import (
	"time"

	"myfunzone/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                 = "id"
	FieldUsername           = "username"
	FieldPassword           = "password"
	FieldEmail              = "email"
	FieldPhoneNumber        = "phone_number"
	FieldFullName           = "full_name"
	FieldRole               = "role"
	FieldMustChangePassword = "must_change_password"
	FieldLastLogin          = "last_login"
	FieldActive             = "active"
)

type User struct {
	ID                 string     `db:"id"`
	Username           string     `db:"username"`
	Password           string     `db:"password"`
	Email              *string    `db:"email"`
	PhoneNumber        string     `db:"phone_number"`
	FullName           *string    `db:"full_name"`
	Role               string     `db:"role"`
	MustChangePassword bool       `db:"must_change_password"`
	LastLogin          *time.Time `db:"last_login"`
	Active             bool       `db:"active"`
	model.Metadata
}
