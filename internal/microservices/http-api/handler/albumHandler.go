package handler

import (
	"log/slog"
	"net/http"
	"time"

	"musify/internal/microservices/http-api/dto"
	"musify/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AlbumHandler struct {
	albumService service.AlbumService
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewAlbumHandler(albumService service.AlbumService, logger *slog.Logger, writeTimeout time.Duration) *AlbumHandler {
	return &AlbumHandler{albumService: albumService, logger: logger, writeTimeout: writeTimeout}
}

// ListAlbums handles GET /api/albums
func (h *AlbumHandler) ListAlbums(c *gin.Context) {
	albums, err := h.albumService.ListAlbums(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToAlbumResponses(albums))
}

// GetAlbum handles GET /api/albums/:album_id
func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	albumID, ok := parseID(c, "album_id")
	if !ok {
		return
	}

	album, err := h.albumService.GetAlbum(c.Request.Context(), albumID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToAlbumResponse(album))
}

// ListAlbumReviews handles GET /api/albums/:album_id/reviews
func (h *AlbumHandler) ListAlbumReviews(c *gin.Context) {
	albumID, ok := parseID(c, "album_id")
	if !ok {
		return
	}

	reviews, err := h.albumService.ListAlbumReviews(c.Request.Context(), albumID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToReviewResponses(reviews))
}

// CreateAlbum handles POST /api/albums (admin)
func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	var req dto.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	album, err := h.albumService.CreateAlbum(ctx, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToAlbumResponse(album))
}

// UpdateAlbum handles PUT /api/albums/:album_id (admin)
func (h *AlbumHandler) UpdateAlbum(c *gin.Context) {
	albumID, ok := parseID(c, "album_id")
	if !ok {
		return
	}

	var req dto.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	album, err := h.albumService.UpdateAlbum(ctx, albumID, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToAlbumResponse(album))
}

// DeleteAlbum handles DELETE /api/albums/:album_id (admin)
func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	albumID, ok := parseID(c, "album_id")
	if !ok {
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	if err := h.albumService.DeleteAlbum(ctx, albumID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album deleted"})
}
