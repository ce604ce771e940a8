package dto

import (
	"time"

	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/service"
)

// AlbumRequest used for POST /api/albums and PUT /api/albums/:album_id
type AlbumRequest struct {
	Title       string `json:"title" binding:"required"`
	Artist      string `json:"artist" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
}

func (r AlbumRequest) ToInput() service.AlbumInput {
	return service.AlbumInput{
		Title:       r.Title,
		Artist:      r.Artist,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type AlbumResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AlbumSummary is the album as embedded in a user's review list.
type AlbumSummary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	ImageURL string  `json:"image_url"`
	Rating   float64 `json:"rating"`
}

func FromModelToAlbumResponse(album *models.Album) AlbumResponse {
	return AlbumResponse{
		ID:          album.ID,
		Title:       album.Title,
		Artist:      album.Artist,
		Description: album.Description,
		ImageURL:    album.ImageURL,
		Rating:      album.Rating,
		CreatedAt:   album.CreatedAt,
		UpdatedAt:   album.UpdatedAt,
	}
}

func FromModelsToAlbumResponses(albums []models.Album) []AlbumResponse {
	out := make([]AlbumResponse, 0, len(albums))
	for i := range albums {
		out = append(out, FromModelToAlbumResponse(&albums[i]))
	}
	return out
}

func fromModelToAlbumSummary(album *models.Album) *AlbumSummary {
	if album == nil {
		return nil
	}
	return &AlbumSummary{
		ID:       album.ID,
		Title:    album.Title,
		Artist:   album.Artist,
		ImageURL: album.ImageURL,
		Rating:   album.Rating,
	}
}
