package repository

import (
	"context"
	"fmt"

	"musify/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	UpdateText(ctx context.Context, reviewID int64, title, content string) error
	Delete(ctx context.Context, reviewID int64) error
	DeleteByAlbum(ctx context.Context, albumID int64) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	ListByAlbum(ctx context.Context, albumID int64) ([]models.Review, error)
	RatingsByAlbum(ctx context.Context, albumID int64) ([]float64, error)
	AlbumIDsByUser(ctx context.Context, userID string) ([]int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. A second review for the same (user, album) pair fails with ErrDuplicate.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", translate(err))
	}
	return nil
}

// UpdateText changes title and content only; the rating is fixed at creation.
func (r *reviewRepository) UpdateText(ctx context.Context, reviewID int64, title, content string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]any{"title": title, "content": content})
	if result.Error != nil {
		return fmt.Errorf("update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, reviewID int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return fmt.Errorf("delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteByAlbum(ctx context.Context, albumID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("album_id = ?", albumID).Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete album reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *reviewRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete user reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

// ListByAlbum returns an album's reviews with their authors, newest first.
func (r *reviewRepository) ListByAlbum(ctx context.Context, albumID int64) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list album reviews: %w", err)
	}
	return reviews, nil
}

// RatingsByAlbum reads the current rating set for an album straight from storage.
func (r *reviewRepository) RatingsByAlbum(ctx context.Context, albumID int64) ([]float64, error) {
	ratings := make([]float64, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("album_id = ?", albumID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, fmt.Errorf("load album ratings: %w", err)
	}
	return ratings, nil
}

// AlbumIDsByUser lists the distinct albums a user has reviewed.
func (r *reviewRepository) AlbumIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("album_id").
		Pluck("album_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load reviewed albums: %w", err)
	}
	return ids, nil
}
