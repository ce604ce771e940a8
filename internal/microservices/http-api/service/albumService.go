package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"musify/internal/microservices/http-api/cache"
	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/repository"

	"golang.org/x/sync/singleflight"
)

type AlbumInput struct {
	Title       string
	Artist      string
	Description string
	ImageURL    string
}

func (in AlbumInput) validate() error {
	return firstError(
		required("title", in.Title),
		required("artist", in.Artist),
		required("description", in.Description),
		required("image url", in.ImageURL),
	)
}

func (in AlbumInput) apply(album *models.Album) {
	album.Title = strings.TrimSpace(in.Title)
	album.Artist = strings.TrimSpace(in.Artist)
	album.Description = strings.TrimSpace(in.Description)
	album.ImageURL = strings.TrimSpace(in.ImageURL)
}

type AlbumService interface {
	CreateAlbum(ctx context.Context, in AlbumInput) (*models.Album, error)
	UpdateAlbum(ctx context.Context, albumID int64, in AlbumInput) (*models.Album, error)
	DeleteAlbum(ctx context.Context, albumID int64) error
	ListAlbums(ctx context.Context) ([]models.Album, error)
	GetAlbum(ctx context.Context, albumID int64) (*models.Album, error)
	ListAlbumReviews(ctx context.Context, albumID int64) ([]models.Review, error)
}

type albumService struct {
	store  repository.Store
	cache  cache.AlbumCache
	logger *slog.Logger
	// collapses concurrent cache misses into one database read
	loads singleflight.Group
}

func NewAlbumService(store repository.Store, albumCache cache.AlbumCache, logger *slog.Logger) AlbumService {
	return &albumService{store: store, cache: albumCache, logger: logger}
}

// CreateAlbum adds an album to the catalogue. New albums always start unrated.
func (s *albumService) CreateAlbum(ctx context.Context, in AlbumInput) (*models.Album, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	album := &models.Album{}
	in.apply(album)
	album.Rating = 0

	if err := s.store.Repos().Albums.Create(ctx, album); err != nil {
		return nil, err
	}
	invalidateAlbums(ctx, s.cache, s.logger)

	s.logger.Info("album created", "album_id", album.ID, "title", album.Title)
	return album, nil
}

// UpdateAlbum edits catalogue fields. The rating is owned by the aggregator and is left alone.
func (s *albumService) UpdateAlbum(ctx context.Context, albumID int64, in AlbumInput) (*models.Album, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var updated *models.Album
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		album, err := tx.Albums.GetByID(ctx, albumID)
		if err != nil {
			return err
		}
		in.apply(album)
		if err := tx.Albums.Update(ctx, album); err != nil {
			return err
		}
		updated, err = tx.Albums.GetByID(ctx, albumID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}

	invalidateAlbums(ctx, s.cache, s.logger, albumID)
	return updated, nil
}

// DeleteAlbum removes the album and its reviews in one transaction.
// Every failure, including a missing album, is reported as ErrAlbumNotDeleted.
func (s *albumService) DeleteAlbum(ctx context.Context, albumID int64) error {
	var removedReviews int64
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		n, err := tx.Reviews.DeleteByAlbum(ctx, albumID)
		if err != nil {
			return err
		}
		removedReviews = n
		return tx.Albums.Delete(ctx, albumID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("album delete: album not found", "album_id", albumID)
		} else {
			s.logger.Error("album delete failed", "album_id", albumID, "error", err)
		}
		return ErrAlbumNotDeleted
	}

	invalidateAlbums(ctx, s.cache, s.logger, albumID)
	s.logger.Info("album deleted", "album_id", albumID, "reviews_removed", removedReviews)
	return nil
}

func (s *albumService) ListAlbums(ctx context.Context) ([]models.Album, error) {
	if albums, err := s.cache.GetAlbumList(ctx); err == nil {
		return albums, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("album list cache read failed", "error", err)
	}

	// A fill that began before a write's post-commit Invalidate can land after it.
	// The stale list then lives until CACHE_TTL expires.
	v, err, _ := s.loads.Do("albums", func() (any, error) {
		albums, err := s.store.Repos().Albums.List(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetAlbumList(ctx, albums); err != nil {
			s.logger.Warn("album list cache write failed", "error", err)
		}
		return albums, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]models.Album)
	return append([]models.Album(nil), shared...), nil
}

func (s *albumService) GetAlbum(ctx context.Context, albumID int64) (*models.Album, error) {
	if album, err := s.cache.GetAlbum(ctx, albumID); err == nil {
		return album, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("album cache read failed", "album_id", albumID, "error", err)
	}

	// Same fill-after-invalidate window as ListAlbums.
	v, err, _ := s.loads.Do(fmt.Sprintf("album:%d", albumID), func() (any, error) {
		album, err := s.store.Repos().Albums.GetByID(ctx, albumID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetAlbum(ctx, album); err != nil {
			s.logger.Warn("album cache write failed", "album_id", albumID, "error", err)
		}
		return album, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	album := *v.(*models.Album)
	return &album, nil
}

// ListAlbumReviews returns the album's reviews with their authors. An album without reviews yields an empty list.
func (s *albumService) ListAlbumReviews(ctx context.Context, albumID int64) ([]models.Review, error) {
	repos := s.store.Repos()
	if _, err := repos.Albums.GetByID(ctx, albumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	return repos.Reviews.ListByAlbum(ctx, albumID)
}

// invalidateAlbums drops cached copies after a committed write. Failures only shorten freshness to the cache TTL.
func invalidateAlbums(ctx context.Context, albumCache cache.AlbumCache, logger *slog.Logger, albumIDs ...int64) {
	if err := albumCache.Invalidate(ctx, albumIDs...); err != nil {
		logger.Warn("album cache invalidation failed", "album_ids", albumIDs, "error", err)
	}
}
