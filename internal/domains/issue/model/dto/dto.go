package dto

import (
	"github.com/google/uuid"

	"myfunzone/internal/domains/issue/model"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"
)

type CreateIssueRequest struct {
	GameID      string `json:"game_id"     validate:"required,uuid"`
	Category    string `json:"category"    validate:"omitempty,max=50"`
	Description string `json:"description" validate:"required,max=5000"`
}

func (c *CreateIssueRequest) ToModel(user string) model.IssueReport {
	return model.IssueReport{
		ID:          uuid.NewString(),
		UserID:      user,
		GameID:      c.GameID,
		Category:    c.Category,
		Description: c.Description,
		Status:      constant.IssueStatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateIssueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress resolved"`
}

type UpdateStatusFields struct {
	Status string `db:"status"`
}

type IssueResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	GameID      string `json:"game_id"`
	GameName    string `json:"game_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (i *IssueResponse) FromModel(detail model.IssueReportDetail) {
	i.ID = detail.ID
	i.UserID = detail.UserID
	i.Username = detail.Username
	i.GameID = detail.GameID
	i.GameName = detail.GameName
	i.Category = detail.Category
	i.Description = detail.Description
	i.Status = detail.Status
	i.Metadata.FromModel(detail.Metadata)
}

type GetIssuesResponse struct {
	Issues    []IssueResponse `json:"issues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetIssuesResponse) FromModels(models []model.IssueReportDetail, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Issues = make([]IssueResponse, len(models))
	for i, mod := range models {
		g.Issues[i].FromModel(mod)
	}
}
