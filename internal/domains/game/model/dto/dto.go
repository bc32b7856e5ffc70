package dto

import (
	"mime/multipart"

	"myfunzone/internal/domains/game/model"
	"myfunzone/shared"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"

	"github.com/google/uuid"
)

type CreateGameRequest struct {
	Name            string                `json:"name"             validate:"required,max=100"`
	Description     string                `json:"description"      validate:"omitempty"`
	Category        string                `json:"category"         validate:"omitempty,max=50"`
	Price           float64               `json:"price"            validate:"omitempty,min=0"`
	MaxPlayers      int                   `json:"max_players"      validate:"required,min=1"`
	DurationMinutes int                   `json:"duration_minutes" validate:"omitempty,min=1"`
	Image           *multipart.FileHeader `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	Active          *bool                 `json:"active"           validate:"omitempty"`
}

func (c *CreateGameRequest) ToModel(user string, imageURL string) model.Game {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	duration := c.DurationMinutes
	if duration == 0 {
		duration = 60
	}

	return model.Game{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Description:     c.Description,
		Category:        c.Category,
		Price:           c.Price,
		MaxPlayers:      c.MaxPlayers,
		DurationMinutes: duration,
		Image:           imageURL,
		Active:          active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGameRequest struct {
	Name            string                `db:"name"             json:"name"        validate:"omitempty,max=100"`
	Description     string                `db:"description"      json:"description" validate:"omitempty"`
	Category        string                `db:"category"         json:"category"    validate:"omitempty,max=50"`
	Price           *float64              `db:"price"            json:"price"       validate:"omitempty,min=0"`
	MaxPlayers      *int                  `db:"max_players"      json:"max_players" validate:"omitempty,min=1"`
	DurationMinutes *int                  `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,min=1"`
	Image           *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	Active          *bool                 `db:"active"           json:"active"      validate:"omitempty"`
}

type GameResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	MaxPlayers      int     `json:"max_players"`
	DurationMinutes int     `json:"duration_minutes"`
	Image           string  `json:"image"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (g *GameResponse) FromModel(model model.Game) {
	g.ID = model.ID
	g.Name = model.Name
	g.Description = model.Description
	g.Category = model.Category
	g.Price = model.Price
	g.MaxPlayers = model.MaxPlayers
	g.DurationMinutes = model.DurationMinutes
	g.Image = model.Image
	g.Active = model.Active
	g.Metadata.FromModel(model.Metadata)
}

type GetGamesResponse struct {
	Games     []GameResponse `json:"games"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetGamesResponse) FromModels(models []model.Game, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Games = make([]GameResponse, len(models))
	for i, mod := range models {
		g.Games[i].FromModel(mod)
	}
}
