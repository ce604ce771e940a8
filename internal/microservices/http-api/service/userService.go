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
	"musify/internal/middleware/auth"
)

type UpdateUserInput struct {
	Username string
	Email    string
	// Password is re-hashed when non-nil.
	Password *string
}

type UserService interface {
	GetCurrentUser(ctx context.Context, caller Identity) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, caller Identity, userID string, in UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, caller Identity, userID string) error
}

type userService struct {
	store      repository.Store
	aggregator *RatingAggregator
	cache      cache.AlbumCache
	logger     *slog.Logger
}

func NewUserService(store repository.Store, aggregator *RatingAggregator, albumCache cache.AlbumCache, logger *slog.Logger) UserService {
	return &userService{
		store:      store,
		aggregator: aggregator,
		cache:      albumCache,
		logger:     logger,
	}
}

// GetCurrentUser loads the caller with their reviews, each carrying its album.
func (s *userService) GetCurrentUser(ctx context.Context, caller Identity) (*models.User, error) {
	user, err := s.store.Repos().Users.FindByIDWithReviews(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Repos().Users.List(ctx)
}

// UpdateUser changes username and email, and the password when one is supplied.
func (s *userService) UpdateUser(ctx context.Context, caller Identity, userID string, in UpdateUserInput) (*models.User, error) {
	if !caller.CanManageUser(userID) {
		return nil, ErrNotAccountOwner
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	errs := []error{required("username", username), required("email", email)}
	if in.Password != nil {
		errs = append(errs, validatePassword(*in.Password))
	}
	if err := firstError(errs...); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := ensureAvailable(ctx, tx.Users, userID, username, email); err != nil {
			return err
		}

		user.Username = username
		user.Email = email
		if in.Password != nil {
			hashed, err := auth.HashPassword(*in.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.Password = hashed
		}

		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		updated, err = tx.Users.FindByID(ctx, userID)
		return err
	})
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrAccountTaken
	default:
		return nil, err
	}
}

// ensureAvailable rejects a username or email held by another account.
func ensureAvailable(ctx context.Context, users repository.UserRepository, userID, username, email string) error {
	if other, err := users.FindByUsername(ctx, username); err == nil && other.ID != userID {
		return ErrNameInUse
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if other, err := users.FindByEmail(ctx, email); err == nil && other.ID != userID {
		return ErrEmailInUse
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// DeleteUser removes the account and its reviews, then recomputes every album those reviews touched.
// All of it commits together or not at all.
func (s *userService) DeleteUser(ctx context.Context, caller Identity, userID string) error {
	if !caller.CanManageUser(userID) {
		return ErrNotAccountOwner
	}

	var affected []int64
	err := s.store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		albumIDs, err := tx.Reviews.AlbumIDsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.Reviews.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Users.Delete(ctx, userID); err != nil {
			return err
		}
		for _, albumID := range albumIDs {
			if _, err := s.aggregator.Recompute(ctx, tx, albumID); err != nil {
				return err
			}
		}
		affected = albumIDs
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	invalidateAlbums(ctx, s.cache, s.logger, affected...)
	s.logger.Info("user deleted", "user_id", userID, "albums_recomputed", len(affected), "by", caller.UserID)
	return nil
}
