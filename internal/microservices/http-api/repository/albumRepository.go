package repository

import (
	"context"
	"fmt"

	"musify/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type AlbumRepository interface {
	Create(ctx context.Context, album *models.Album) error
	Update(ctx context.Context, album *models.Album) error
	UpdateRating(ctx context.Context, albumID int64, rating float64) error
	Delete(ctx context.Context, albumID int64) error
	GetByID(ctx context.Context, albumID int64) (*models.Album, error)
	List(ctx context.Context) ([]models.Album, error)
	ExistsByTitleAndArtist(ctx context.Context, title, artist string) (bool, error)
}

type albumRepository struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *models.Album) error {
	if err := r.db.WithContext(ctx).Create(album).Error; err != nil {
		return fmt.Errorf("create album: %w", translate(err))
	}
	// GORM will populate album.ID and album.CreatedAt
	return nil
}

// Update writes the editable catalogue fields. The derived rating column is never touched here.
func (r *albumRepository) Update(ctx context.Context, album *models.Album) error {
	result := r.db.WithContext(ctx).
		Model(&models.Album{ID: album.ID}).
		Select("title", "artist", "description", "image_url").
		Updates(album)
	if result.Error != nil {
		return fmt.Errorf("update album: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRating stores a freshly computed average without bumping updated_at.
func (r *albumRepository) UpdateRating(ctx context.Context, albumID int64, rating float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("id = ?", albumID).
		UpdateColumn("rating", rating)
	if result.Error != nil {
		return fmt.Errorf("update album rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *albumRepository) Delete(ctx context.Context, albumID int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Album{}, albumID)
	if result.Error != nil {
		return fmt.Errorf("delete album: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *albumRepository) GetByID(ctx context.Context, albumID int64) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).First(&album, albumID).Error; err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

func (r *albumRepository) List(ctx context.Context) ([]models.Album, error) {
	list := make([]models.Album, 0)
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return list, nil
}

// ExistsByTitleAndArtist matches case-insensitively.
func (r *albumRepository) ExistsByTitleAndArtist(ctx context.Context, title, artist string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("LOWER(title) = LOWER(?) AND LOWER(artist) = LOWER(?)", title, artist).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("find album by title and artist: %w", err)
	}
	return count > 0, nil
}
