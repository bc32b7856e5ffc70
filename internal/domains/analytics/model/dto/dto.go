package dto

import (
	"math"

	"myfunzone/internal/domains/analytics/model"
	"myfunzone/shared/constant"
	"myfunzone/shared/timezone"
)

// RangeQuery bounds an analytics question to an inclusive slot-date range.
// Empty bounds leave that side open.
type RangeQuery struct {
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
}

type RevenueByDate struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type RevenueResponse struct {
	TotalRevenue float64         `json:"total_revenue"`
	ByDate       []RevenueByDate `json:"by_date"`
}

func (r *RevenueResponse) FromModels(models []model.RevenueByDate) {
	r.ByDate = make([]RevenueByDate, len(models))

	for i, mod := range models {
		r.ByDate[i] = RevenueByDate{
			Date:   timezone.Format(mod.Date, constant.DateOnlyFormat),
			Amount: mod.Amount,
		}
		r.TotalRevenue += mod.Amount
	}
}

type CancellationRateResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	CancellationRate  float64 `json:"cancellation_rate"`
}

func (c *CancellationRateResponse) FromModel(counts model.BookingCounts) {
	c.TotalBookings = counts.Total
	c.CancelledBookings = counts.Cancelled

	if counts.Total == 0 {
		c.CancellationRate = 0

		return
	}

	rate := float64(counts.Cancelled) / float64(counts.Total) * 100
	c.CancellationRate = math.Round(rate*100) / 100
}

type ActiveUsersResponse struct {
	ActiveUsers int `json:"active_users"`
}

type PeakHour struct {
	Hour     int `json:"hour"`
	Bookings int `json:"bookings"`
}

type PeakHoursResponse struct {
	PeakHours []PeakHour `json:"peak_hours"`
}

func (p *PeakHoursResponse) FromModels(models []model.PeakHour) {
	p.PeakHours = make([]PeakHour, len(models))

	for i, mod := range models {
		p.PeakHours[i] = PeakHour{Hour: mod.Hour, Bookings: mod.Bookings}
	}
}
