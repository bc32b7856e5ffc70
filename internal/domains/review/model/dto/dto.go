package dto

import (
	"math"

	"github.com/google/uuid"

	"myfunzone/internal/domains/review/model"
	"myfunzone/shared"
	gDto "myfunzone/shared/dto"
	gModel "myfunzone/shared/model"
	"myfunzone/shared/timezone"
)

type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid"`
	Rating    *int    `json:"rating"     validate:"omitempty,min=1,max=5"`
	Feedback  *string `json:"feedback"   validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user, gameID string) model.Review {
	return model.Review{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		UserID:    user,
		GameID:    gameID,
		Rating:    c.Rating,
		Feedback:  c.Feedback,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	GameID    string  `json:"game_id"`
	GameName  string  `json:"game_name"`
	Rating    *int    `json:"rating"`
	Feedback  *string `json:"feedback"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(detail model.ReviewDetail) {
	r.ID = detail.ID
	r.BookingID = detail.BookingID
	r.UserID = detail.UserID
	r.Username = detail.Username
	r.GameID = detail.GameID
	r.GameName = detail.GameName
	r.Rating = detail.Rating
	r.Feedback = detail.Feedback
	r.Metadata.FromModel(detail.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (g *GetReviewsResponse) FromModels(models []model.ReviewDetail, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		g.Reviews[i].FromModel(mod)
	}
}

type RatingStatsResponse struct {
	GameID        string  `json:"game_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

func (r *RatingStatsResponse) FromModel(gameID string, stats model.RatingStats) {
	r.GameID = gameID
	r.AverageRating = math.Round(stats.AverageRating*100) / 100
	r.TotalReviews = stats.TotalReviews
}
