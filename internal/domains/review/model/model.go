package model

import "myfunzone/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldUserID    = "user_id"
	FieldGameID    = "game_id"
	FieldRating    = "rating"
	FieldFeedback  = "feedback"
)

type Review struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	UserID    string  `db:"user_id"`
	GameID    string  `db:"game_id"`
	Rating    *int    `db:"rating"`
	Feedback  *string `db:"feedback"`
	model.Metadata
}

type ReviewDetail struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	UserID    string  `db:"user_id"`
	GameID    string  `db:"game_id"`
	Rating    *int    `db:"rating"`
	Feedback  *string `db:"feedback"`
	Username  string  `db:"username"  table:"users"`
	GameName  string  `db:"game_name" table:"games" column:"name"`
	model.Metadata
}

func (ReviewDetail) GetJoinQuery() string {
	return `JOIN users ON users.id = reviews.user_id
		JOIN games ON games.id = reviews.game_id`
}

// RatingStats is the aggregate view of a game's reviews. AverageRating
// counts only reviews that carry a rating, TotalReviews counts them all.
type RatingStats struct {
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int     `db:"total_reviews"`
}
