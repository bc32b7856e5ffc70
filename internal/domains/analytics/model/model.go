package model

import "time"

const EntityName = "analytics"

// RevenueByDate is one day's worth of recognized revenue. Only bookings
// still holding or having used their slot count toward revenue.
type RevenueByDate struct {
	Date   time.Time `db:"slot_date"`
	Amount float64   `db:"amount"`
}

// BookingCounts aggregates booking totals for the cancellation rate.
type BookingCounts struct {
	Total     int `db:"total"`
	Cancelled int `db:"cancelled"`
}

// PeakHour is the number of bookings whose slot starts within one hour
// of the day.
type PeakHour struct {
	Hour     int `db:"hour"`
	Bookings int `db:"bookings"`
}
