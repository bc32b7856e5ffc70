package dto

import (
	"time"

	gameModel "myfunzone/internal/domains/game/model"
	"myfunzone/internal/domains/slot/model"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	GameID     string   `json:"game_id"     validate:"required,uuid"`
	SlotDate   string   `json:"slot_date"   validate:"required,datetime=2006-01-02"`
	StartTime  string   `json:"start_time"  validate:"required,datetime=15:04"`
	EndTime    string   `json:"end_time"    validate:"required,datetime=15:04"`
	MaxPlayers *int     `json:"max_players" validate:"omitempty,min=1"`
	Price      *float64 `json:"price"       validate:"omitempty,min=0"`
	Active     *bool    `json:"active"      validate:"omitempty"`
}

// ToModel snapshots the game's capacity and price onto the slot unless the
// request overrides them.
func (c *CreateSlotRequest) ToModel(user string, game gameModel.Game) (model.Slot, error) {
	slotDate, err := time.Parse(constant.DateOnlyFormat, c.SlotDate)
	if err != nil {
		return model.Slot{}, err //nolint:wrapcheck
	}

	maxPlayers := game.MaxPlayers
	if c.MaxPlayers != nil {
		maxPlayers = *c.MaxPlayers
	}

	price := game.Price
	if c.Price != nil {
		price = *c.Price
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Slot{
		ID:         uuid.NewString(),
		GameID:     c.GameID,
		SlotDate:   slotDate,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		MaxPlayers: maxPlayers,
		Price:      price,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type CreateSlotRangeRequest struct {
	GameID     string   `json:"game_id"     validate:"required,uuid"`
	StartDate  string   `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date"    validate:"required,datetime=2006-01-02"`
	StartTime  string   `json:"start_time"  validate:"required,datetime=15:04"`
	EndTime    string   `json:"end_time"    validate:"required,datetime=15:04"`
	MaxPlayers *int     `json:"max_players" validate:"omitempty,min=1"`
	Price      *float64 `json:"price"       validate:"omitempty,min=0"`
}

// ToModels expands the date range into one slot per day, bounds inclusive.
// Capacity and price follow the same snapshot rule as single creation.
func (c *CreateSlotRangeRequest) ToModels(user string, game gameModel.Game) ([]model.Slot, error) {
	startDate, err := time.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	endDate, err := time.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	maxPlayers := game.MaxPlayers
	if c.MaxPlayers != nil {
		maxPlayers = *c.MaxPlayers
	}

	price := game.Price
	if c.Price != nil {
		price = *c.Price
	}

	var models []model.Slot
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		models = append(models, model.Slot{
			ID:         uuid.NewString(),
			GameID:     c.GameID,
			SlotDate:   day,
			StartTime:  c.StartTime,
			EndTime:    c.EndTime,
			MaxPlayers: maxPlayers,
			Price:      price,
			Active:     true,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		})
	}

	return models, nil
}

type CreateSlotRangeResponse struct {
	CreatedCount int `json:"created_count"`
}

type UpdateSlotRequest struct {
	SlotDate  string `db:"slot_date"  json:"slot_date"  validate:"omitempty,datetime=2006-01-02"`
	StartTime string `db:"start_time" json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   string `db:"end_time"   json:"end_time"   validate:"omitempty,datetime=15:04"`
	Active    *bool  `db:"active"     json:"active"     validate:"omitempty"`
}

type AvailabilityQuery struct {
	GameID      string
	DateFrom    string
	DateTo      string
	IncludeFull bool
}

type SlotResponse struct {
	ID         string  `json:"id"`
	GameID     string  `json:"game_id"`
	SlotDate   string  `json:"slot_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	MaxPlayers int     `json:"max_players"`
	Price      float64 `json:"price"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (s *SlotResponse) FromModel(model model.Slot) {
	s.ID = model.ID
	s.GameID = model.GameID
	s.SlotDate = timezone.Format(model.SlotDate, constant.DateOnlyFormat)
	s.StartTime = model.StartTime
	s.EndTime = model.EndTime
	s.MaxPlayers = model.MaxPlayers
	s.Price = model.Price
	s.Active = model.Active
	s.Metadata.FromModel(model.Metadata)
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetSlotsResponse) FromModels(models []model.Slot, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		g.Slots[i].FromModel(mod)
	}
}

type SlotAvailabilityResponse struct {
	ID         string  `json:"id"`
	GameID     string  `json:"game_id"`
	GameName   string  `json:"game_name"`
	Price      float64 `json:"price"`
	MaxPlayers int     `json:"max_players"`
	SlotDate   string  `json:"slot_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Booked     int     `json:"booked"`
	Available  int     `json:"available"`
}

func (s *SlotAvailabilityResponse) FromModel(model model.SlotAvailability) {
	s.ID = model.ID
	s.GameID = model.GameID
	s.GameName = model.GameName
	s.Price = model.Price
	s.MaxPlayers = model.MaxPlayers
	s.SlotDate = timezone.Format(model.SlotDate, constant.DateOnlyFormat)
	s.StartTime = model.StartTime
	s.EndTime = model.EndTime
	s.Booked = model.Booked
	s.Available = model.Available
}

type GetAvailabilityResponse struct {
	Slots []SlotAvailabilityResponse `json:"slots"`
}

func (g *GetAvailabilityResponse) FromModels(models []model.SlotAvailability) {
	g.Slots = make([]SlotAvailabilityResponse, len(models))
	for i, mod := range models {
		g.Slots[i].FromModel(mod)
	}
}
