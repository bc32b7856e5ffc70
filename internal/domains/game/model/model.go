package model

import "myfunzone/shared/model"

const (
	TableName  = "games"
	EntityName = "game"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldPrice           = "price"
	FieldMaxPlayers      = "max_players"
	FieldDurationMinutes = "duration_minutes"
	FieldImage           = "image"
	FieldActive          = "active"
)

type Game struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	Category        string  `db:"category"`
	Price           float64 `db:"price"`
	MaxPlayers      int     `db:"max_players"`
	DurationMinutes int     `db:"duration_minutes"`
	Image           string  `db:"image"`
	Active          bool    `db:"active"`
	model.Metadata
}
