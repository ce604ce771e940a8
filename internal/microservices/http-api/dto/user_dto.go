package dto

import (
	"time"

	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/service"
)

// UpdateUserRequest for PUT /api/users/:user_id. Password is optional.
type UpdateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}

func (r UpdateUserRequest) ToInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserResponse carries the public user fields. The password hash is never included.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileResponse is the current user with their reviews.
type ProfileResponse struct {
	UserResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// UserSummary identifies a review's author.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func FromModelsToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromModelToUserResponse(&users[i]))
	}
	return out
}

func FromModelToProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		UserResponse: FromModelToUserResponse(user),
		Reviews:      FromModelsToReviewResponses(user.Reviews),
	}
}

func fromModelToUserSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{ID: user.ID, Username: user.Username}
}
