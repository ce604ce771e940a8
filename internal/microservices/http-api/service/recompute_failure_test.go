package service

import (
	"context"
	"errors"

	"musify/internal/logging"
	"musify/internal/microservices/http-api/repository"
	"musify/internal/testutil"
)

var errRatingWrite = errors.New("rating write failed")

// failingRatingStore runs real transactions but fails UpdateRating for one album.
type failingRatingStore struct {
	repository.Store
	failAlbumID int64
}

func (f *failingRatingStore) WithinTransaction(ctx context.Context, fn func(tx *repository.Repositories) error) error {
	return f.Store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		tx.Albums = &failingRatingAlbums{AlbumRepository: tx.Albums, failAlbumID: f.failAlbumID}
		return fn(tx)
	})
}

type failingRatingAlbums struct {
	repository.AlbumRepository
	failAlbumID int64
}

func (a *failingRatingAlbums) UpdateRating(ctx context.Context, albumID int64, rating float64) error {
	if albumID == a.failAlbumID {
		return errRatingWrite
	}
	return a.AlbumRepository.UpdateRating(ctx, albumID, rating)
}

// failingServices wires review and user services to a store that cannot write albumID's rating.
func (s *ServiceSuite) failingServices(albumID int64) (ReviewService, UserService) {
	store := &failingRatingStore{Store: s.store, failAlbumID: albumID}
	aggregator := NewRatingAggregator()
	logger := logging.Discard()
	return NewReviewService(store, aggregator, s.cache, logger), NewUserService(store, aggregator, s.cache, logger)
}

func (s *ServiceSuite) TestDeleteUserRollsBackWhenRecomputeFails() {
	x := testutil.SeedAlbum(s.T(), s.db, "X")
	y := testutil.SeedAlbum(s.T(), s.db, "Y")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	s.review(a, x, 5)
	s.review(a, y, 1)
	s.review(b, x, 3)
	s.review(b, y, 2)
	invalidations := len(s.cache.invalidated)

	_, users := s.failingServices(y.ID)
	err := users.DeleteUser(s.ctx, identityOf(a), a.ID)
	s.ErrorIs(err, errRatingWrite)

	_, err = s.store.Repos().Users.FindByID(s.ctx, a.ID)
	s.NoError(err)
	ids, err := s.store.Repos().Reviews.AlbumIDsByUser(s.ctx, a.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]int64{x.ID, y.ID}, ids)
	s.Equal(4.0, s.albumRating(x.ID))
	s.Equal(1.5, s.albumRating(y.ID))
	s.Len(s.cache.invalidated, invalidations)
}

func (s *ServiceSuite) TestCreateReviewFailsWhenRecomputeFails() {
	album := testutil.SeedAlbum(s.T(), s.db, "Head Hunters")
	a := testutil.SeedUser(s.T(), s.db, "a")

	reviews, _ := s.failingServices(album.ID)
	_, err := reviews.CreateReview(s.ctx, identityOf(a), CreateReviewInput{
		AlbumID: album.ID,
		Content: "funk",
		Rating:  rating(4),
	})
	s.ErrorIs(err, errRatingWrite)

	list, err := s.albums.ListAlbumReviews(s.ctx, album.ID)
	s.Require().NoError(err)
	s.Empty(list)
	s.Zero(s.albumRating(album.ID))
}

func (s *ServiceSuite) TestDeleteReviewFailsWhenRecomputeFails() {
	album := testutil.SeedAlbum(s.T(), s.db, "Thrust")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	ra := s.review(a, album, 4)
	s.review(b, album, 2)

	reviews, _ := s.failingServices(album.ID)
	s.ErrorIs(reviews.DeleteReview(s.ctx, identityOf(a), ra.ID), errRatingWrite)

	_, err := s.reviews.GetReview(s.ctx, ra.ID)
	s.NoError(err)
	s.Equal(3.0, s.albumRating(album.ID))
}
