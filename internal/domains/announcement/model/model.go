package model

import (
	"time"

	"myfunzone/shared/model"
)

const (
	TableName  = "announcements"
	EntityName = "announcement"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldBody       = "body"
	FieldTargetRole = "target_role"
	FieldIsPinned   = "is_pinned"
	FieldExpiresAt  = "expires_at"
	FieldActive     = "active"
)

const (
	ReadTableName  = "announcement_reads"
	ReadEntityName = "announcement_read"
)

type Announcement struct {
	ID         string     `db:"id"`
	Title      string     `db:"title"`
	Body       string     `db:"body"`
	TargetRole string     `db:"target_role"`
	IsPinned   bool       `db:"is_pinned"`
	ExpiresAt  *time.Time `db:"expires_at"`
	Active     bool       `db:"active"`
	model.Metadata
}

type AnnouncementRead struct {
	ID             string `db:"id"`
	AnnouncementID string `db:"announcement_id"`
	UserID         string `db:"user_id"`
	model.Metadata
}

// AnnouncementWithRead is an announcement as one reader sees it.
type AnnouncementWithRead struct {
	Announcement
	IsRead bool `db:"is_read"`
}

// Reader is one user in an announcement's read stats. ReadAt is nil for
// users the announcement targets who have not opened it yet.
type Reader struct {
	UserID   string     `db:"user_id"`
	Username string     `db:"username"`
	Role     string     `db:"role"`
	ReadAt   *time.Time `db:"read_at"`
}
