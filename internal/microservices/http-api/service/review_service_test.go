package service

import (
	"musify/internal/testutil"
)

func (s *ServiceSuite) TestRatingFollowsReviewSet() {
	album := testutil.SeedAlbum(s.T(), s.db, "Kind of Blue")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")

	s.Equal(0.0, s.albumRating(album.ID))

	reviewA := s.review(a, album, 4)
	s.Equal(4.0, s.albumRating(album.ID))

	s.review(b, album, 2)
	s.Equal(3.0, s.albumRating(album.ID))

	s.Require().NoError(s.reviews.DeleteReview(s.ctx, identityOf(a), reviewA.ID))
	s.Equal(2.0, s.albumRating(album.ID))
}

func (s *ServiceSuite) TestDuplicateReviewIsConflictAndLeavesRating() {
	album := testutil.SeedAlbum(s.T(), s.db, "Blue Train")
	a := testutil.SeedUser(s.T(), s.db, "a")
	s.review(a, album, 4)

	_, err := s.reviews.CreateReview(s.ctx, identityOf(a), CreateReviewInput{
		AlbumID: album.ID,
		Content: "changed my mind",
		Rating:  rating(1),
	})
	s.ErrorIs(err, ErrAlreadyReviewed)
	s.ErrorIs(err, ErrConflict)
	s.Equal(4.0, s.albumRating(album.ID))

	reviews, err := s.albums.ListAlbumReviews(s.ctx, album.ID)
	s.Require().NoError(err)
	s.Len(reviews, 1)
}

func (s *ServiceSuite) TestCreateReviewValidation() {
	album := testutil.SeedAlbum(s.T(), s.db, "Giant Steps")
	a := testutil.SeedUser(s.T(), s.db, "a")

	cases := map[string]CreateReviewInput{
		"missing content":  {AlbumID: album.ID, Rating: rating(3)},
		"missing rating":   {AlbumID: album.ID, Content: "great"},
		"rating too high":  {AlbumID: album.ID, Content: "great", Rating: rating(5.5)},
		"rating negative":  {AlbumID: album.ID, Content: "great", Rating: rating(-1)},
		"not a half point": {AlbumID: album.ID, Content: "great", Rating: rating(3.3)},
	}
	for name, in := range cases {
		_, err := s.reviews.CreateReview(s.ctx, identityOf(a), in)
		s.ErrorIs(err, ErrValidation, name)
	}
	s.Equal(0.0, s.albumRating(album.ID))
	s.Empty(s.cache.invalidated)
}

func (s *ServiceSuite) TestCreateReviewUnknownAlbum() {
	a := testutil.SeedUser(s.T(), s.db, "a")

	_, err := s.reviews.CreateReview(s.ctx, identityOf(a), CreateReviewInput{
		AlbumID: 404,
		Content: "where is it",
		Rating:  rating(3),
	})
	s.ErrorIs(err, ErrAlbumNotFound)
}

func (s *ServiceSuite) TestCreateReviewUnknownUser() {
	album := testutil.SeedAlbum(s.T(), s.db, "Ghost")

	_, err := s.reviews.CreateReview(s.ctx, Identity{UserID: "gone", Role: "user"}, CreateReviewInput{
		AlbumID: album.ID,
		Content: "who am i",
		Rating:  rating(3),
	})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestCreateReviewInvalidatesAlbumCache() {
	album := testutil.SeedAlbum(s.T(), s.db, "Cached")
	a := testutil.SeedUser(s.T(), s.db, "a")

	_, err := s.albums.GetAlbum(s.ctx, album.ID)
	s.Require().NoError(err)
	s.Contains(s.cache.albums, album.ID)

	s.review(a, album, 5)
	s.NotContains(s.cache.albums, album.ID)
	s.Equal([]int64{album.ID}, s.cache.invalidated[len(s.cache.invalidated)-1])

	got, err := s.albums.GetAlbum(s.ctx, album.ID)
	s.Require().NoError(err)
	s.Equal(5.0, got.Rating)
}

func (s *ServiceSuite) TestUpdateReview() {
	album := testutil.SeedAlbum(s.T(), s.db, "Mingus Ah Um")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	review := s.review(a, album, 3.5)

	updated, err := s.reviews.UpdateReview(s.ctx, identityOf(a), review.ID, UpdateReviewInput{
		Title:   "  Revisited ",
		Content: "Even better now",
	})
	s.Require().NoError(err)
	s.Equal("Revisited", updated.Title)
	s.Equal("Even better now", updated.Content)
	s.Equal(3.5, updated.Rating)
	s.Equal(3.5, s.albumRating(album.ID))

	_, err = s.reviews.UpdateReview(s.ctx, identityOf(b), review.ID, UpdateReviewInput{Title: "x", Content: "y"})
	s.ErrorIs(err, ErrNotReviewOwner)
	s.ErrorIs(err, ErrForbidden)

	_, err = s.reviews.UpdateReview(s.ctx, identityOf(a), review.ID, UpdateReviewInput{Title: "", Content: "y"})
	s.ErrorIs(err, ErrValidation)

	_, err = s.reviews.UpdateReview(s.ctx, identityOf(a), 9999, UpdateReviewInput{Title: "x", Content: "y"})
	s.ErrorIs(err, ErrReviewNotFound)
}

func (s *ServiceSuite) TestDeleteReviewRules() {
	album := testutil.SeedAlbum(s.T(), s.db, "Head Hunters")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	review := s.review(a, album, 5)

	err := s.reviews.DeleteReview(s.ctx, identityOf(b), review.ID)
	s.ErrorIs(err, ErrForbidden)
	s.Equal(5.0, s.albumRating(album.ID))

	s.Require().NoError(s.reviews.DeleteReview(s.ctx, identityOf(a), review.ID))
	s.Equal(0.0, s.albumRating(album.ID))

	s.ErrorIs(s.reviews.DeleteReview(s.ctx, identityOf(a), review.ID), ErrReviewNotFound)
	_, err = s.reviews.GetReview(s.ctx, review.ID)
	s.ErrorIs(err, ErrReviewNotFound)
}
