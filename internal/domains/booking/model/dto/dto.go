package dto

import (
	"myfunzone/internal/domains/booking/model"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID          string `json:"slot_id"           validate:"required,uuid"`
	NumberOfPlayers int    `json:"number_of_players" validate:"required,min=1"`
}

// ToModel builds the booking in its initial state with a fresh opaque QR
// payload. Check-in later matches on the exact string.
func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          user,
		SlotID:          c.SlotID,
		NumberOfPlayers: c.NumberOfPlayers,
		Status:          constant.BookingStatusBooked,
		QRCode:          constant.QRCodePrefix + uuid.NewString(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToPaymentModel builds the pending online payment that accompanies every
// new booking. Amount is the game price times the headcount.
func ToPaymentModel(bookingID, user string, amount float64) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Amount:    amount,
		Method:    constant.PaymentMethodOnline,
		Status:    constant.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func ToCheckinModel(bookingID, staffID string) model.Checkin {
	return model.Checkin{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		StaffID:   staffID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staffID,
			ModifiedBy: staffID,
		},
	}
}

type CreateBookingResponse struct {
	ID              string  `json:"id"`
	SlotID          string  `json:"slot_id"`
	NumberOfPlayers int     `json:"number_of_players"`
	Status          string  `json:"status"`
	QRCode          string  `json:"qr_code"`
	Amount          float64 `json:"amount"`
	PaymentStatus   string  `json:"payment_status"`
}

func (c *CreateBookingResponse) FromModels(booking model.Booking, payment model.Payment) {
	c.ID = booking.ID
	c.SlotID = booking.SlotID
	c.NumberOfPlayers = booking.NumberOfPlayers
	c.Status = booking.Status
	c.QRCode = booking.QRCode
	c.Amount = payment.Amount
	c.PaymentStatus = payment.Status
}

type RescheduleBookingRequest struct {
	NewSlotID string `json:"new_slot_id" validate:"required,uuid"`
}

type CheckInRequest struct {
	QRCode string `json:"qr_code" validate:"required"`
}

type CheckInResponse struct {
	BookingID       string `json:"booking_id"`
	Username        string `json:"username"`
	GameName        string `json:"game_name"`
	SlotDate        string `json:"slot_date"`
	StartTime       string `json:"start_time"`
	NumberOfPlayers int    `json:"number_of_players"`
	Status          string `json:"status"`
}

func (c *CheckInResponse) FromModel(detail model.BookingDetail) {
	c.BookingID = detail.ID
	c.Username = detail.Username
	c.GameName = detail.GameName
	c.SlotDate = timezone.Format(detail.SlotDate, constant.DateOnlyFormat)
	c.StartTime = detail.StartTime
	c.NumberOfPlayers = detail.NumberOfPlayers
	c.Status = constant.BookingStatusCheckedIn
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed no_show"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	SlotID          string  `json:"slot_id"`
	GameID          string  `json:"game_id"`
	GameName        string  `json:"game_name"`
	SlotDate        string  `json:"slot_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	NumberOfPlayers int     `json:"number_of_players"`
	Status          string  `json:"status"`
	QRCode          string  `json:"qr_code"`
	PaymentAmount   float64 `json:"payment_amount"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentStatus   string  `json:"payment_status"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(detail model.BookingDetail) {
	b.ID = detail.ID
	b.UserID = detail.UserID
	b.Username = detail.Username
	b.SlotID = detail.SlotID
	b.GameID = detail.GameID
	b.GameName = detail.GameName
	b.SlotDate = timezone.Format(detail.SlotDate, constant.DateOnlyFormat)
	b.StartTime = detail.StartTime
	b.EndTime = detail.EndTime
	b.NumberOfPlayers = detail.NumberOfPlayers
	b.Status = detail.Status
	b.QRCode = detail.QRCode
	b.PaymentAmount = detail.PaymentAmount
	b.PaymentMethod = detail.PaymentMethod
	b.PaymentStatus = detail.PaymentStatus
	b.Metadata.FromModel(detail.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

type UpdateStatusFields struct {
	Status string `db:"status"`
}

type UpdateSlotFields struct {
	SlotID string `db:"slot_id"`
}

// BookingEvent is the payload published to the booking events topic after
// a state change commits.
type BookingEvent struct {
	Type            string  `json:"type"`
	BookingID       string  `json:"booking_id"`
	UserID          string  `json:"user_id"`
	SlotID          string  `json:"slot_id"`
	NumberOfPlayers int     `json:"number_of_players"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount,omitempty"`
	OccurredAt      string  `json:"occurred_at"`
}

const (
	EventBookingCreated     = "booking.created"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingCheckedIn   = "booking.checked_in"
	EventBookingClosed      = "booking.closed"
)
