package model

import (
	"time"

	"myfunzone/shared/model"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID         = "id"
	FieldGameID     = "game_id"
	FieldSlotDate   = "slot_date"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldMaxPlayers = "max_players"
	FieldPrice      = "price"
	FieldActive     = "active"
)

// Slot carries its own capacity and price. Both are copied from the game
// at creation, so later game edits never reprice or resize existing slots.
type Slot struct {
	ID         string    `db:"id"`
	GameID     string    `db:"game_id"`
	SlotDate   time.Time `db:"slot_date"`
	StartTime  string    `db:"start_time"`
	EndTime    string    `db:"end_time"`
	MaxPlayers int       `db:"max_players"`
	Price      float64   `db:"price"`
	Active     bool      `db:"active"`
	model.Metadata
}

// SlotAvailability is the read model for the public schedule: a slot
// joined with its game and the headcount already reserved against it.
type SlotAvailability struct {
	ID         string    `db:"id"`
	GameID     string    `db:"game_id"`
	GameName   string    `db:"game_name"`
	Price      float64   `db:"price"`
	MaxPlayers int       `db:"max_players"`
	SlotDate   time.Time `db:"slot_date"`
	StartTime  string    `db:"start_time"`
	EndTime    string    `db:"end_time"`
	Booked     int       `db:"booked"`
	Available  int       `db:"available"`
}
