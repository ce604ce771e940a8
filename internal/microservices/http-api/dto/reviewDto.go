package dto

import (
	"time"

	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/service"
)

// CreateReviewRequest for POST /api/reviews. The author comes from the bearer token.
type CreateReviewRequest struct {
	AlbumID int64    `json:"album_id" binding:"required"`
	Title   string   `json:"title"`
	Content string   `json:"content" binding:"required"`
	Rating  *float64 `json:"rating" binding:"required,min=0,max=5"`
}

func (r CreateReviewRequest) ToInput() service.CreateReviewInput {
	return service.CreateReviewInput{
		AlbumID: r.AlbumID,
		Title:   r.Title,
		Content: r.Content,
		Rating:  r.Rating,
	}
}

// UpdateReviewRequest for PUT /api/reviews/:review_id. The rating cannot be changed.
type UpdateReviewRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (r UpdateReviewRequest) ToInput() service.UpdateReviewInput {
	return service.UpdateReviewInput{Title: r.Title, Content: r.Content}
}

type ReviewResponse struct {
	ID        int64         `json:"id"`
	AlbumID   int64         `json:"album_id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Rating    float64       `json:"rating"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Author    *UserSummary  `json:"author,omitempty"`
	Album     *AlbumSummary `json:"album,omitempty"`
}

func FromModelToReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		AlbumID:   review.AlbumID,
		UserID:    review.UserID,
		Title:     review.Title,
		Content:   review.Content,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		Author:    fromModelToUserSummary(review.User),
		Album:     fromModelToAlbumSummary(review.Album),
	}
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromModelToReviewResponse(&reviews[i]))
	}
	return out
}
