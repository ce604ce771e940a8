package service

import (
	"context"

	"musify/internal/microservices/http-api/cache"
	"musify/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithReviews(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockAlbumRepository mocks the AlbumRepository interface
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) Create(ctx context.Context, album *models.Album) error {
	return m.Called(ctx, album).Error(0)
}

func (m *MockAlbumRepository) Update(ctx context.Context, album *models.Album) error {
	return m.Called(ctx, album).Error(0)
}

func (m *MockAlbumRepository) UpdateRating(ctx context.Context, albumID int64, rating float64) error {
	return m.Called(ctx, albumID, rating).Error(0)
}

func (m *MockAlbumRepository) Delete(ctx context.Context, albumID int64) error {
	return m.Called(ctx, albumID).Error(0)
}

func (m *MockAlbumRepository) GetByID(ctx context.Context, albumID int64) (*models.Album, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockAlbumRepository) List(ctx context.Context) ([]models.Album, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) ExistsByTitleAndArtist(ctx context.Context, title, artist string) (bool, error) {
	args := m.Called(ctx, title, artist)
	return args.Bool(0), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) UpdateText(ctx context.Context, reviewID int64, title, content string) error {
	return m.Called(ctx, reviewID, title, content).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, reviewID int64) error {
	return m.Called(ctx, reviewID).Error(0)
}

func (m *MockReviewRepository) DeleteByAlbum(ctx context.Context, albumID int64) (int64, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByAlbum(ctx context.Context, albumID int64) ([]models.Review, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) RatingsByAlbum(ctx context.Context, albumID int64) ([]float64, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockReviewRepository) AlbumIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// recordingCache is an in-memory AlbumCache that remembers invalidations.
type recordingCache struct {
	albums      map[int64]models.Album
	list        []models.Album
	invalidated [][]int64
}

func newRecordingCache() *recordingCache {
	return &recordingCache{albums: make(map[int64]models.Album)}
}

func (c *recordingCache) GetAlbum(_ context.Context, albumID int64) (*models.Album, error) {
	album, ok := c.albums[albumID]
	if !ok {
		return nil, cache.ErrMiss
	}
	return &album, nil
}

func (c *recordingCache) SetAlbum(_ context.Context, album *models.Album) error {
	c.albums[album.ID] = *album
	return nil
}

func (c *recordingCache) GetAlbumList(context.Context) ([]models.Album, error) {
	if c.list == nil {
		return nil, cache.ErrMiss
	}
	return c.list, nil
}

func (c *recordingCache) SetAlbumList(_ context.Context, albums []models.Album) error {
	c.list = albums
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, albumIDs ...int64) error {
	c.invalidated = append(c.invalidated, albumIDs)
	c.list = nil
	for _, id := range albumIDs {
		delete(c.albums, id)
	}
	return nil
}

func (c *recordingCache) Close() error { return nil }
