package dto

import (
	"time"

	"github.com/google/uuid"

	"myfunzone/internal/domains/announcement/model"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"
)

type CreateAnnouncementRequest struct {
	Title      string `json:"title"       validate:"required,max=255"`
	Body       string `json:"body"        validate:"required"`
	TargetRole string `json:"target_role" validate:"omitempty,oneof=all admin staff user"`
	IsPinned   bool   `json:"is_pinned"`
	ExpiresAt  string `json:"expires_at"  validate:"omitempty,datetime=2006-01-02"`
}

func (c *CreateAnnouncementRequest) ToModel(user string) (model.Announcement, error) {
	targetRole := c.TargetRole
	if targetRole == constant.Empty {
		targetRole = constant.TargetRoleAll
	}

	var expiresAt *time.Time

	if c.ExpiresAt != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, c.ExpiresAt)
		if err != nil {
			return model.Announcement{}, err // nolint:wrapcheck
		}

		expiresAt = &parsed
	}

	return model.Announcement{
		ID:         uuid.NewString(),
		Title:      c.Title,
		Body:       c.Body,
		TargetRole: targetRole,
		IsPinned:   c.IsPinned,
		ExpiresAt:  expiresAt,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateAnnouncementRequest struct {
	Title      *string `json:"title"       db:"title"       validate:"omitempty,max=255"`
	Body       *string `json:"body"        db:"body"`
	TargetRole *string `json:"target_role" db:"target_role" validate:"omitempty,oneof=all admin staff user"`
	IsPinned   *bool   `json:"is_pinned"   db:"is_pinned"`
	ExpiresAt  *string `json:"expires_at"  db:"expires_at"  validate:"omitempty,datetime=2006-01-02"`
	Active     *bool   `json:"active"      db:"active"`
}

type AnnouncementResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	TargetRole string  `json:"target_role"`
	IsPinned   bool    `json:"is_pinned"`
	ExpiresAt  *string `json:"expires_at"`
	Active     bool    `json:"active"`
	IsRead     bool    `json:"is_read"`
	gDto.Metadata
}

func (a *AnnouncementResponse) FromModel(mod model.AnnouncementWithRead) {
	a.ID = mod.ID
	a.Title = mod.Title
	a.Body = mod.Body
	a.TargetRole = mod.TargetRole
	a.IsPinned = mod.IsPinned
	a.Active = mod.Active
	a.IsRead = mod.IsRead
	a.Metadata.FromModel(mod.Metadata)

	if mod.ExpiresAt != nil {
		expiresAt := timezone.Format(*mod.ExpiresAt, constant.DateOnlyFormat)
		a.ExpiresAt = &expiresAt
	}
}

type GetAnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (g *GetAnnouncementsResponse) FromModels(models []model.AnnouncementWithRead, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Announcements = make([]AnnouncementResponse, len(models))
	for i, mod := range models {
		g.Announcements[i].FromModel(mod)
	}
}

type ReaderResponse struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	ReadAt   *string `json:"read_at,omitempty"`
}

func readerResponses(models []model.Reader) []ReaderResponse {
	res := make([]ReaderResponse, len(models))

	for i, mod := range models {
		res[i] = ReaderResponse{
			UserID:   mod.UserID,
			Username: mod.Username,
			Role:     mod.Role,
		}

		if mod.ReadAt != nil {
			readAt := timezone.Format(*mod.ReadAt, constant.DateFormat)
			res[i].ReadAt = &readAt
		}
	}

	return res
}

type ReadStatsResponse struct {
	AnnouncementID string           `json:"announcement_id"`
	TotalReaders   int              `json:"total_readers"`
	Readers        []ReaderResponse `json:"readers"`
	NonReaders     []ReaderResponse `json:"non_readers"`
}

func (r *ReadStatsResponse) FromModels(announcementID string, readers, nonReaders []model.Reader) {
	r.AnnouncementID = announcementID
	r.TotalReaders = len(readers)
	r.Readers = readerResponses(readers)
	r.NonReaders = readerResponses(nonReaders)
}
