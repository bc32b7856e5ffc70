package model

import (
	"time"

	"myfunzone/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldSlotID          = "slot_id"
	FieldNumberOfPlayers = "number_of_players"
	FieldStatus          = "status"
	FieldQRCode          = "qr_code"
)

const (
	PaymentTableName  = "payments"
	PaymentEntityName = "payment"

	FieldPaymentID        = "id"
	FieldPaymentBookingID = "booking_id"
	FieldPaymentAmount    = "amount"
	FieldPaymentMethod    = "method"
	FieldPaymentStatus    = "status"
)

const (
	CheckinTableName  = "qr_checkins"
	CheckinEntityName = "qr_checkin"

	FieldCheckinID        = "id"
	FieldCheckinBookingID = "booking_id"
	FieldCheckinStaffID   = "staff_id"
)

type Booking struct {
	ID              string `db:"id"`
	UserID          string `db:"user_id"`
	SlotID          string `db:"slot_id"`
	NumberOfPlayers int    `db:"number_of_players"`
	Status          string `db:"status"`
	QRCode          string `db:"qr_code"`
	model.Metadata
}

type Payment struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	Amount    float64 `db:"amount"`
	Method    string  `db:"method"`
	Status    string  `db:"status"`
	model.Metadata
}

type Checkin struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	StaffID   string `db:"staff_id"`
	model.Metadata
}

// SlotOccupancy is the row-locked view of a slot used while reserving
// capacity. Booked counts only bookings still holding seats.
type SlotOccupancy struct {
	SlotID     string    `db:"slot_id"`
	GameID     string    `db:"game_id"`
	SlotDate   time.Time `db:"slot_date"`
	StartTime  string    `db:"start_time"`
	EndTime    string    `db:"end_time"`
	SlotActive bool      `db:"slot_active"`
	GameActive bool      `db:"game_active"`
	Price      float64   `db:"price"`
	MaxPlayers int       `db:"max_players"`
	Booked     int       `db:"booked"`
}

// Available returns the headcount the slot can still take.
func (o *SlotOccupancy) Available() int {
	return o.MaxPlayers - o.Booked
}

// StartsAt combines the slot date and start time into a single instant in
// the given location.
func (o *SlotOccupancy) StartsAt(loc *time.Location) time.Time {
	start, err := time.Parse("15:04", o.StartTime)
	if err != nil {
		start, err = time.Parse("15:04:05", o.StartTime)
		if err != nil {
			return o.SlotDate
		}
	}

	return time.Date(
		o.SlotDate.Year(), o.SlotDate.Month(), o.SlotDate.Day(),
		start.Hour(), start.Minute(), 0, 0, loc,
	)
}

type BookingDetail struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	SlotID          string    `db:"slot_id"`
	NumberOfPlayers int       `db:"number_of_players"`
	Status          string    `db:"status"`
	QRCode          string    `db:"qr_code"`
	Username        string    `db:"username"        table:"users"`
	GameID          string    `db:"game_id"         table:"slots"`
	GameName        string    `db:"game_name"       table:"games"    column:"name"`
	SlotDate        time.Time `db:"slot_date"       table:"slots"`
	StartTime       string    `db:"start_time"      table:"slots"`
	EndTime         string    `db:"end_time"        table:"slots"`
	PaymentID       string    `db:"payment_id"      table:"payments" column:"id"`
	PaymentAmount   float64   `db:"amount"          table:"payments"`
	PaymentMethod   string    `db:"method"          table:"payments"`
	PaymentStatus   string    `db:"payment_status"  table:"payments" column:"status"`
	model.Metadata
}

// StartsAt combines the slot date and start time into a single instant in
// the given location.
func (b *BookingDetail) StartsAt(loc *time.Location) time.Time {
	start, err := time.Parse("15:04", b.StartTime)
	if err != nil {
		start, err = time.Parse("15:04:05", b.StartTime)
		if err != nil {
			return b.SlotDate
		}
	}

	return time.Date(
		b.SlotDate.Year(), b.SlotDate.Month(), b.SlotDate.Day(),
		start.Hour(), start.Minute(), 0, 0, loc,
	)
}

func (BookingDetail) GetJoinQuery() string {
	return `JOIN users ON users.id = bookings.user_id
		JOIN slots ON slots.id = bookings.slot_id
		JOIN games ON games.id = slots.game_id
		JOIN payments ON payments.booking_id = bookings.id`
}
