package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"musify/internal/microservices/http-api/cache"
	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/repository"
)

type CreateReviewInput struct {
	AlbumID int64
	Title   string
	Content string
	Rating  *float64
}

// UpdateReviewInput has no rating: a review's rating is fixed once submitted.
type UpdateReviewInput struct {
	Title   string
	Content string
}

type ReviewService interface {
	CreateReview(ctx context.Context, caller Identity, in CreateReviewInput) (*models.Review, error)
	GetReview(ctx context.Context, reviewID int64) (*models.Review, error)
	UpdateReview(ctx context.Context, caller Identity, reviewID int64, in UpdateReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, caller Identity, reviewID int64) error
}

type reviewService struct {
	store      repository.Store
	aggregator *RatingAggregator
	cache      cache.AlbumCache
	logger     *slog.Logger
}

func NewReviewService(store repository.Store, aggregator *RatingAggregator, albumCache cache.AlbumCache, logger *slog.Logger) ReviewService {
	return &reviewService{
		store:      store,
		aggregator: aggregator,
		cache:      albumCache,
		logger:     logger,
	}
}

// CreateReview stores the caller's review and recomputes the album rating in the same transaction.
// A second review of the same album by the same user fails with ErrAlreadyReviewed and changes nothing.
func (s *reviewService) CreateReview(ctx context.Context, caller Identity, in CreateReviewInput) (*models.Review, error) {
	if err := firstError(required("content", in.Content), validateRating(in.Rating)); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:  caller.UserID,
		AlbumID: in.AlbumID,
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
		Rating:  *in.Rating,
	}

	var rating float64
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Albums.GetByID(ctx, in.AlbumID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAlbumNotFound
			}
			return err
		}
		if _, err := tx.Users.FindByID(ctx, caller.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Reviews.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyReviewed
			}
			return err
		}

		var err error
		rating, err = s.aggregator.Recompute(ctx, tx, in.AlbumID)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateAlbums(ctx, s.cache, s.logger, in.AlbumID)
	s.logger.Info("review created",
		"review_id", review.ID,
		"album_id", review.AlbumID,
		"user_id", review.UserID,
		"album_rating", rating,
	)
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID int64) (*models.Review, error) {
	review, err := s.store.Repos().Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// UpdateReview edits title and content of the caller's own review.
func (s *reviewService) UpdateReview(ctx context.Context, caller Identity, reviewID int64, in UpdateReviewInput) (*models.Review, error) {
	if err := firstError(required("title", in.Title), required("content", in.Content)); err != nil {
		return nil, err
	}

	var updated *models.Review
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		review, err := s.ownedReview(ctx, tx, caller, reviewID)
		if err != nil {
			return err
		}
		if err := tx.Reviews.UpdateText(ctx, reviewID, strings.TrimSpace(in.Title), strings.TrimSpace(in.Content)); err != nil {
			return err
		}
		// rating is unchanged but every review write recomputes
		if _, err := s.aggregator.Recompute(ctx, tx, review.AlbumID); err != nil {
			return err
		}
		updated, err = tx.Reviews.GetByID(ctx, reviewID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	invalidateAlbums(ctx, s.cache, s.logger, updated.AlbumID)
	return updated, nil
}

// DeleteReview removes the caller's own review and recomputes the album from the remaining reviews.
func (s *reviewService) DeleteReview(ctx context.Context, caller Identity, reviewID int64) error {
	var albumID int64
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		review, err := s.ownedReview(ctx, tx, caller, reviewID)
		if err != nil {
			return err
		}
		albumID = review.AlbumID
		if err := tx.Reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
		_, err = s.aggregator.Recompute(ctx, tx, albumID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	invalidateAlbums(ctx, s.cache, s.logger, albumID)
	s.logger.Info("review deleted", "review_id", reviewID, "album_id", albumID, "user_id", caller.UserID)
	return nil
}

func (s *reviewService) ownedReview(ctx context.Context, tx *repository.Repositories, caller Identity, reviewID int64) (*models.Review, error) {
	review, err := tx.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != caller.UserID {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}
