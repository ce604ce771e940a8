package handler

import (
	"log/slog"
	"net/http"
	"time"

	"musify/internal/microservices/http-api/dto"
	"musify/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
	writeTimeout  time.Duration
}

func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger, writeTimeout time.Duration) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger, writeTimeout: writeTimeout}
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	review, err := h.reviewService.CreateReview(ctx, caller, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

// GetReview handles GET /api/reviews/:review_id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// UpdateReview handles PUT /api/reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	review, err := h.reviewService.UpdateReview(ctx, caller, reviewID, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// DeleteReview handles DELETE /api/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	if err := h.reviewService.DeleteReview(ctx, caller, reviewID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
