package service

import (
	"context"
	"errors"
	"fmt"

	"musify/internal/microservices/http-api/repository"
)

// RatingAggregator keeps Album.Rating equal to the mean of the album's stored review ratings.
type RatingAggregator struct{}

func NewRatingAggregator() *RatingAggregator {
	return &RatingAggregator{}
}

// Recompute reloads every rating for the album through tx and persists their mean.
// It must run inside the transaction that changed the review set; an error aborts that transaction.
func (a *RatingAggregator) Recompute(ctx context.Context, tx *repository.Repositories, albumID int64) (float64, error) {
	ratings, err := tx.Reviews.RatingsByAlbum(ctx, albumID)
	if err != nil {
		return 0, err
	}

	mean := MeanRating(ratings)
	if err := tx.Albums.UpdateRating(ctx, albumID, mean); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrAlbumNotFound
		}
		return 0, fmt.Errorf("recompute rating for album %d: %w", albumID, err)
	}
	return mean, nil
}

// MeanRating is the arithmetic mean of ratings, or 0 when there are none. No rounding is applied.
func MeanRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}
