package handler

import (
	"log/slog"
	"net/http"
	"time"

	"musify/internal/microservices/http-api/dto"
	"musify/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  service.UserService
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewUserHandler(userService service.UserService, logger *slog.Logger, writeTimeout time.Duration) *UserHandler {
	return &UserHandler{userService: userService, logger: logger, writeTimeout: writeTimeout}
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetCurrentUser(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToProfileResponse(user))
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToUserResponses(users))
}

// UpdateUser handles PUT /api/users/:user_id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, caller, c.Param("user_id"), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// DeleteUser handles DELETE /api/users/:user_id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	ctx, cancel := writeContext(c, h.writeTimeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, caller, c.Param("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
